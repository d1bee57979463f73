package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"seqsample/internal/appcore"
	"seqsample/internal/cli"
	"seqsample/internal/output"
	"seqsample/internal/sampler"
)

// Exit statuses.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitOutput   = 3
	exitCanceled = 130
)

// RunContext executes the seqsample command line and returns its exit status.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(argv)
	return exitCode(root.ExecuteContext(parent), stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case output.IsBrokenPipe(err):
		return exitOK
	case errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(stderr, "interrupted")
		return exitCanceled
	}

	_, _ = color.New(color.FgRed, color.Bold).Fprint(stderr, "error: ")
	_, _ = fmt.Fprintln(stderr, err)

	var oe *appcore.OutputError
	switch {
	case errors.Is(err, cli.ErrUsage):
		_, _ = fmt.Fprintln(stderr, "Run 'seqsample --help' for usage.")
		return exitUsage
	case errors.Is(err, sampler.ErrInvalidConfiguration):
		return exitUsage
	case errors.As(err, &oe):
		return exitOutput
	}
	return exitFailure
}
