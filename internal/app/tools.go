package app

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"seqsample/internal/blast"
	"seqsample/internal/cli"
	"seqsample/internal/cliutil"
	"seqsample/internal/dna"
	"seqsample/internal/kmercount"
	"seqsample/internal/readfilter"
	"seqsample/internal/seqio"
)

// newBlastRunner is replaced in tests.
var newBlastRunner = func(cmd *cobra.Command) blast.Runner {
	return blast.ExecRunner{Stdout: cmd.ErrOrStderr(), Stderr: cmd.ErrOrStderr()}
}

func newReadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reads FILE...",
		Short: "Print the reads of FASTA/FASTQ files, one per line",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return cli.Usagef("%v", err)
			}
			bw := bufio.NewWriter(cmd.OutOrStdout())
			for _, p := range paths {
				err := seqio.ForEach(cmd.Context(), p, func(seq []byte) error {
					if _, err := bw.Write(seq); err != nil {
						return err
					}
					return bw.WriteByte('\n')
				})
				if err != nil {
					return err
				}
			}
			return bw.Flush()
		},
	}
}

func newKmtricksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kmtricks-canonical COUNTS",
		Short: "Rewrite 'kmer count' lines with kmtricks canonical k-mers",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := seqio.OpenRaw(args[0])
			if err != nil {
				return err
			}
			defer rc.Close()
			bw := bufio.NewWriter(cmd.OutOrStdout())
			if _, err := kmercount.ConvertCanonical(rc, bw, dna.Kmtricks); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return bw.Flush()
		},
	}
}

func newFilterReadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter-reads FILE THRESHOLD",
		Short: "Keep two-line records whose header ends in a score of at least THRESHOLD",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return cli.Usagef("threshold %q: not a number", args[1])
			}
			rc, err := seqio.OpenRaw(args[0])
			if err != nil {
				return err
			}
			defer rc.Close()
			bw := bufio.NewWriter(cmd.OutOrStdout())
			if _, err := readfilter.Filter(rc, bw, threshold); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return bw.Flush()
		},
	}
}

func newBlastCmd(g *cli.Global) *cobra.Command {
	var cfg blast.Config
	var query, targets string
	cmd := &cobra.Command{
		Use:   "blast",
		Short: "Align a query FASTA against a targets FASTA with BLAST+",
		Long: `Build a nucleotide database from --targets with makeblastdb, then align
--query against it with blastn (pairwise report, one alignment per subject).
Both tools must be on PATH.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if query == "" || targets == "" {
				return cli.Usagef("--query and --targets are required")
			}
			return withRunEnv(cmd, g, func(env *runEnv) error {
				a := blast.New(cfg, newBlastRunner(cmd), env.Logger)
				report, err := a.Align(cmd.Context(), query, targets)
				if err != nil {
					return err
				}
				if !g.Quiet {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "BLAST results saved to %s\n", report)
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&query, "query", "", "query FASTA `file`")
	f.StringVar(&targets, "targets", "", "targets FASTA `file` (the database)")
	f.StringVar(&cfg.OutDir, "out-dir", "blast_results", "directory for the database and report")
	f.StringVar(&cfg.MakeDB, "makeblastdb", "makeblastdb", "makeblastdb executable")
	f.StringVar(&cfg.BlastN, "blastn", "blastn", "blastn executable")
	return cmd
}
