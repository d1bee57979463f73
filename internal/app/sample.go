package app

import (
	"context"

	"github.com/spf13/cobra"

	"seqsample/internal/appcore"
	"seqsample/internal/cli"
	"seqsample/internal/sampler"
)

func newKmersCmd(g *cli.Global) *cobra.Command {
	var o cli.KmerOptions
	cmd := &cobra.Command{
		Use:   "kmers INPUT K COUNT OUTPUT",
		Short: "Extract random k-mers from a FASTA/FASTQ file",
		Long: `Extract COUNT random k-mers of size K from the reads of INPUT and write
them to OUTPUT as FASTA records numbered from 0. Reads shorter than K are
never sampled. OUTPUT may be "-" for stdout; a .gz or .zst suffix compresses it.`,
		Args: usageArgs(cobra.ExactArgs(4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ParseKmerArgs(&o, args); err != nil {
				return err
			}
			req, err := o.Request()
			if err != nil {
				return err
			}
			return runSampling(cmd, g, o.Input, o.Output, "k-mers",
				func(ctx context.Context, s *sampler.Sampler, emit func([]byte) error) (int, error) {
					return s.Kmers(ctx, req, emit)
				})
		},
	}
	cli.RegisterKmer(cmd.Flags(), &o)
	return cmd
}

func newSequencesCmd(g *cli.Global) *cobra.Command {
	var o cli.SequenceOptions
	cmd := &cobra.Command{
		Use:   "sequences",
		Short: "Extract random variable-length subsequences from a FASTA/FASTQ file",
		Long: `Extract --num random subsequences whose lengths lie between --min_size and
--max_size. A subsequence never runs past the end of its read, so its length
is also bounded by the read.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := o.Request()
			if err != nil {
				return err
			}
			return runSampling(cmd, g, o.Input, o.Output, "sequences",
				func(ctx context.Context, s *sampler.Sampler, emit func([]byte) error) (int, error) {
					return s.Sequences(ctx, req, emit)
				})
		},
	}
	cli.RegisterSequence(cmd.Flags(), &o)
	return cmd
}

func runSampling(cmd *cobra.Command, g *cli.Global, input, out, what string, draw appcore.DrawFunc) error {
	var n int
	err := withRunEnv(cmd, g, func(env *runEnv) error {
		var err error
		n, err = appcore.Run(cmd.Context(), env.Env, appcore.Options{
			Input:  input,
			Output: out,
			Stdout: cmd.OutOrStdout(),
			Seed:   g.Seed,
		}, draw)
		return err
	})
	if err != nil {
		return err
	}
	if !g.Quiet {
		appcore.Summary(cmd.ErrOrStderr(), n, what, out)
	}
	return nil
}
