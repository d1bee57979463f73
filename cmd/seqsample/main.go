// cmd/seqsample/main.go
package main

import (
	"seqsample/internal/app"
	"seqsample/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
