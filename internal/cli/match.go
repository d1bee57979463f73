package cli

import (
	"github.com/spf13/pflag"

	"seqsample/internal/cliutil"
	"seqsample/internal/dna"
	"seqsample/internal/kmerindex"
)

// MatchOptions are the flags of the k-mer match command.
type MatchOptions struct {
	InKmers     string
	InSequences string
	InFilelist  string

	OutSequences string
	OutFilelist  string
	OutKmers     string

	CountedKmerThreshold   int
	OutputKmerPositions    bool
	OutputMappingPositions bool

	K            int
	MinThreshold float64
	MaxThreshold float64
	Stranded     bool
	QueryReverse bool
	NoLowComplex bool
	Order        string
}

// RegisterMatch wires the match flags onto fs.
func RegisterMatch(fs *pflag.FlagSet, o *MatchOptions) {
	fs.StringVar(&o.InKmers, "in_kmers", "", "FASTA/FASTQ file holding the k-mers to search [*]")
	fs.StringVar(&o.InSequences, "in_sequences", "", "FASTA/FASTQ [.gz|.zst] reads to scan (default stdin)")
	fs.StringVar(&o.InFilelist, "in_filelist", "", "text file listing one read file per line (needs --out_filelist)")
	fs.StringVar(&o.OutSequences, "out_sequences", "", "FASTA file receiving the kept reads")
	fs.StringVar(&o.OutFilelist, "out_filelist", "", "text file listing one output file per --in_filelist entry")
	fs.StringVar(&o.OutKmers, "out_kmers", "", "text file receiving each indexed k-mer with its count")
	fs.IntVar(&o.CountedKmerThreshold, "counted_kmer_threshold", 0, "write only k-mers seen at least this many times to --out_kmers")
	fs.BoolVar(&o.OutputKmerPositions, "output_kmer_positions", false, "write (read,position,forward) hits instead of counts to --out_kmers")
	fs.BoolVar(&o.OutputMappingPositions, "output_mapping_positions", false, "append hit positions to the headers of kept reads")
	fs.IntVarP(&o.K, "kmer_size", "k", 31, "k-mer size")
	fs.Float64VarP(&o.MinThreshold, "min_threshold", "m", 0, "keep reads sharing more than this percentage of k-mers")
	fs.Float64Var(&o.MaxThreshold, "max_threshold", 100, "keep reads sharing at most this percentage of k-mers")
	fs.BoolVar(&o.Stranded, "stranded", false, "match k-mers on their own strand only")
	fs.BoolVar(&o.QueryReverse, "query_reverse", false, "scan the reverse complement of reads (meant for --stranded)")
	fs.BoolVar(&o.NoLowComplex, "no_low_complexity", false, "do not index k-mers with a Shannon entropy below 1")
	fs.StringVar(&o.Order, "order", "lex", "canonical order: lex | kmtricks")
}

// Validate checks flag combinations and returns the index and scan
// settings they describe.
func (o MatchOptions) Validate() (kmerindex.Options, kmerindex.ScanOptions, error) {
	var (
		idx  kmerindex.Options
		scan kmerindex.ScanOptions
	)
	switch {
	case o.InKmers == "":
		return idx, scan, Usagef("--in_kmers is required")
	case o.InFilelist != "" && o.InSequences != "":
		return idx, scan, Usagef("--in_filelist and --in_sequences are exclusive")
	case (o.InFilelist == "") != (o.OutFilelist == ""):
		return idx, scan, Usagef("--in_filelist and --out_filelist go together")
	case o.InFilelist != "" && o.OutSequences != "":
		return idx, scan, Usagef("use --out_filelist, not --out_sequences, with --in_filelist")
	case o.OutSequences == "" && o.OutFilelist == "" && o.OutKmers == "":
		return idx, scan, Usagef("no output requested: set --out_sequences, --out_filelist or --out_kmers")
	case o.K <= 0:
		return idx, scan, Usagef("--kmer_size must be > 0, got %d", o.K)
	case o.MinThreshold > o.MaxThreshold:
		return idx, scan, Usagef("--min_threshold %g is above --max_threshold %g", o.MinThreshold, o.MaxThreshold)
	case o.CountedKmerThreshold < 0:
		return idx, scan, Usagef("--counted_kmer_threshold must be >= 0")
	}
	ord, err := dna.ParseOrdering(o.Order)
	if err != nil {
		return idx, scan, Usagef("--order: %v", err)
	}
	idx = kmerindex.Options{
		K:                 o.K,
		Stranded:          o.Stranded,
		Ordering:          ord,
		SkipLowComplexity: o.NoLowComplex,
		RecordPositions:   o.OutputKmerPositions,
	}
	scan = kmerindex.ScanOptions{
		Min:          o.MinThreshold,
		Max:          o.MaxThreshold,
		QueryReverse: o.QueryReverse,
		Positions:    o.OutputMappingPositions,
	}
	return idx, scan, nil
}

// Inputs returns the read files to scan and the output for each: the
// single --in_sequences (stdin when empty), or the pairs listed in the
// --in_filelist and --out_filelist files.
func (o MatchOptions) Inputs() (in, out []string, err error) {
	if o.InFilelist == "" {
		in = []string{o.InSequences}
		if in[0] == "" {
			in[0] = "-"
		}
		return in, []string{o.OutSequences}, nil
	}
	if in, err = cliutil.ReadFileList(o.InFilelist); err != nil {
		return nil, nil, err
	}
	if out, err = cliutil.ReadFileList(o.OutFilelist); err != nil {
		return nil, nil, err
	}
	if len(in) != len(out) {
		return nil, nil, Usagef("%s lists %d files but %s lists %d", o.InFilelist, len(in), o.OutFilelist, len(out))
	}
	return in, out, nil
}
