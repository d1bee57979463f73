package app

import (
	"io"

	"github.com/spf13/cobra"

	"seqsample/internal/cli"
	"seqsample/internal/version"
)

// NewRootCommand assembles the seqsample command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var g cli.Global
	root := &cobra.Command{
		Use:   "seqsample",
		Short: "Random k-mer and subsequence sampling from FASTA/FASTQ reads",
		Long: `seqsample loads the reads of a FASTA or FASTQ file (optionally gzip or
zstd compressed) and writes randomly drawn k-mers or subsequences as FASTA.

Examples:
  # 1000 canonical 31-mers from a gzipped FASTQ
  seqsample kmers reads.fq.gz 31 1000 kmers.fa --canonical

  # 500 subsequences of 50 to 200 bases
  seqsample sequences --input reads.fa --min_size 50 --max_size 200 --num 500 --output sub.fa

  # reads sharing at least half of their 31-mers with kmers.fa
  seqsample match --in_kmers kmers.fa --in_sequences reads.fq.gz --out_sequences kept.fa -m 50

  # rewrite a k-mer count table in kmtricks canonical form
  seqsample kmtricks-canonical counts.txt`,
		Version:       version.Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usagef("%v", err)
	})
	cli.RegisterGlobal(root.PersistentFlags(), &g)

	root.AddCommand(
		newKmersCmd(&g),
		newSequencesCmd(&g),
		newReadsCmd(),
		newKmtricksCmd(),
		newFilterReadsCmd(),
		newMatchCmd(&g),
		newBlastCmd(&g),
		newVersionCmd(),
	)
	return root
}

// usageArgs marks positional-argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return cli.Usagef("%v", err)
		}
		return nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte("seqsample version " + version.Version + "\n"))
			return err
		},
	}
}
