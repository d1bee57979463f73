// Package blast drives the NCBI BLAST+ command line tools as external
// processes.
package blast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrToolFailed wraps every failure of an external tool.
var ErrToolFailed = errors.New("external tool failed")

// Runner runs one external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, forwarding their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrToolFailed, name, err)
	}
	return nil
}

// Config names the tools and where their results go.
type Config struct {
	MakeDB string // default "makeblastdb"
	BlastN string // default "blastn"
	OutDir string // default "blast_results"
}

func (c Config) withDefaults() Config {
	if c.MakeDB == "" {
		c.MakeDB = "makeblastdb"
	}
	if c.BlastN == "" {
		c.BlastN = "blastn"
	}
	if c.OutDir == "" {
		c.OutDir = "blast_results"
	}
	return c
}

// Aligner builds a nucleotide database from a targets FASTA and aligns a
// query against it.
type Aligner struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

// New returns an Aligner. A nil logger disables logging.
func New(cfg Config, runner Runner, logger *zap.Logger) *Aligner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aligner{cfg: cfg.withDefaults(), runner: runner, logger: logger}
}

// Align runs makeblastdb on targets, then blastn for query with pairwise
// output and a single alignment per subject. One report covers every
// record of both files and is named after their stems. It returns the path
// of the alignment report. Any non-zero exit aborts; nothing is retried.
func (a *Aligner) Align(ctx context.Context, query, targets string) (string, error) {
	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return "", err
	}
	db := filepath.Join(a.cfg.OutDir, "targets_db")
	a.logger.Info("building database", zap.String("targets", targets), zap.String("db", db))
	if err := a.runner.Run(ctx, a.cfg.MakeDB,
		"-dbtype", "nucl",
		"-in", targets,
		"-out", db,
	); err != nil {
		return "", err
	}

	report := filepath.Join(a.cfg.OutDir, stem(query)+"_vs_"+stem(targets)+".txt")
	a.logger.Info("aligning", zap.String("query", query), zap.String("report", report))
	if err := a.runner.Run(ctx, a.cfg.BlastN,
		"-query", query,
		"-db", db,
		"-out", report,
		"-outfmt", "0",
		"-num_alignments", "1",
	); err != nil {
		return "", err
	}
	return report, nil
}

// stem strips directories and sequence/compression extensions from path.
func stem(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst", ".fasta", ".fa", ".fna"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
