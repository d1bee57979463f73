package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seqsample/internal/appcore"
	"seqsample/internal/cli"
	"seqsample/internal/stats"
	"seqsample/internal/stats/logger"
	promstats "seqsample/internal/stats/prometheus"
)

// runEnv owns the logger and metrics of one command invocation.
type runEnv struct {
	appcore.Env
	registry    *prometheus.Registry
	metricsPath string
}

func newRunEnv(stderr io.Writer, g *cli.Global, command string) *runEnv {
	e := &runEnv{metricsPath: g.MetricsTextfile}
	e.Logger = newLogger(stderr, g.Verbose)
	switch {
	case g.MetricsTextfile != "":
		e.registry = prometheus.NewRegistry()
		e.Stats = promstats.New(e.registry, command)
	case g.Verbose:
		e.Stats = logger.New(e.Logger)
	default:
		e.Stats = stats.NewNoop()
	}
	return e
}

// newLogger logs human-readable lines to w: warnings and errors by
// default, everything with verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// withRunEnv validates g and runs fn with a fresh environment. A metrics
// textfile that cannot be written fails the command as an output error.
func withRunEnv(cmd *cobra.Command, g *cli.Global, fn func(*runEnv) error) error {
	if err := g.Validate(); err != nil {
		return err
	}
	env := newRunEnv(cmd.ErrOrStderr(), g, cmd.Name())
	err := fn(env)
	if cerr := env.close(); cerr != nil && err == nil {
		err = &appcore.OutputError{Err: fmt.Errorf("metrics textfile: %w", cerr)}
	}
	return err
}

// close flushes aggregated stats and writes the metrics textfile, if one
// was requested.
func (e *runEnv) close() error {
	if f, ok := e.Stats.(stats.Flusher); ok {
		f.Flush()
	}
	_ = e.Logger.Sync()
	if e.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(e.metricsPath, e.registry)
}
