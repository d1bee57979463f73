package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqsample/internal/appcore"
	"seqsample/internal/cli"
)

func newMatchCmd(g *cli.Global) *cobra.Command {
	var o cli.MatchOptions
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Keep the reads that share k-mers with a reference set",
		Long: `Index the k-mers of --in_kmers, then scan reads window by window. A read
is kept when the percentage of its k-mers found in the index lies in
]--min_threshold, --max_threshold]; kept reads are written as FASTA with
the hit count and percentage appended to their header. --out_kmers
receives every indexed k-mer with the number of times reads hit it.

Unless --stranded is set, a k-mer and its reverse complement are one entry.`,
		Example: `  seqsample match --in_kmers kmers.fa --in_sequences reads.fq.gz --out_sequences kept.fa
  seqsample match --in_kmers kmers.fa --in_filelist reads.txt --out_filelist kept.txt --out_kmers counts.txt -k 25`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			idxOpts, scanOpts, err := o.Validate()
			if err != nil {
				return err
			}
			inputs, outputs, err := o.Inputs()
			if err != nil {
				return err
			}
			return withRunEnv(cmd, g, func(env *runEnv) error {
				if o.QueryReverse && !o.Stranded {
					env.Logger.Warn("--query_reverse has no effect on hits without --stranded")
				}
				res, err := appcore.Match(cmd.Context(), env.Env, appcore.MatchOptions{
					Kmers:          o.InKmers,
					Index:          idxOpts,
					Scan:           scanOpts,
					Inputs:         inputs,
					Outputs:        outputs,
					KmerCounts:     o.OutKmers,
					CountThreshold: o.CountedKmerThreshold,
					Stdout:         cmd.OutOrStdout(),
				})
				if err != nil {
					return err
				}
				if g.Quiet {
					return nil
				}
				w := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(w, "%d of %d reads share k-mers with %s (%d distinct k-mers)\n",
					res.Totals.Kept, res.Totals.Reads, o.InKmers, res.Indexed)
				if o.OutKmers != "" {
					_, _ = fmt.Fprintf(w, "%d k-mer counts saved to %s\n", res.Counted, o.OutKmers)
				}
				return nil
			})
		},
	}
	cli.RegisterMatch(cmd.Flags(), &o)
	return cmd
}
