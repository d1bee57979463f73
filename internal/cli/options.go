package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"seqsample/internal/dna"
	"seqsample/internal/sampler"
)

// ErrUsage marks command-line mistakes (exit status 2).
var ErrUsage = errors.New("usage")

// Usagef formats a usage error.
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

// Global holds flags shared by every subcommand.
type Global struct {
	Verbose         bool
	Quiet           bool
	Seed            uint64 // 0 = seed from the runtime
	MetricsTextfile string
}

// RegisterGlobal wires the shared flags onto fs.
func RegisterGlobal(fs *pflag.FlagSet, g *Global) {
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "debug logging on stderr")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "suppress the summary line")
	fs.Uint64Var(&g.Seed, "seed", 0, "random seed (0 = random)")
	fs.StringVar(&g.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file when done")
}

// Validate checks the shared flags.
func (g Global) Validate() error {
	if g.MetricsTextfile == "-" {
		return Usagef("--metrics-textfile needs a file path")
	}
	return nil
}

// KmerOptions are the arguments of the fixed-length sampler.
type KmerOptions struct {
	Input     string
	K         int
	Count     int
	Output    string
	Canonical bool
	Order     string
}

// RegisterKmer wires the k-mer flags onto fs.
func RegisterKmer(fs *pflag.FlagSet, o *KmerOptions) {
	fs.BoolVar(&o.Canonical, "canonical", false, "extract k-mers in their canonical form")
	fs.StringVar(&o.Order, "order", "lex", "canonical order: lex | kmtricks")
}

// ParseKmerArgs fills the positional INPUT K COUNT OUTPUT arguments.
func ParseKmerArgs(o *KmerOptions, args []string) error {
	if len(args) != 4 {
		return Usagef("want INPUT K COUNT OUTPUT, got %d argument(s)", len(args))
	}
	k, err := strconv.Atoi(args[1])
	if err != nil {
		return Usagef("k-mer size %q is not an integer", args[1])
	}
	n, err := strconv.Atoi(args[2])
	if err != nil {
		return Usagef("count %q is not an integer", args[2])
	}
	o.Input, o.K, o.Count, o.Output = args[0], k, n, args[3]
	return nil
}

// Request validates o and converts it to a sampling request.
func (o KmerOptions) Request() (sampler.FixedRequest, error) {
	ord, err := dna.ParseOrdering(o.Order)
	if err != nil {
		return sampler.FixedRequest{}, Usagef("--order: %v", err)
	}
	req := sampler.FixedRequest{K: o.K, Count: o.Count, Canonical: o.Canonical, Ordering: ord}
	return req, req.Validate()
}

// SequenceOptions are the flags of the variable-length sampler.
type SequenceOptions struct {
	Input     string
	MinSize   int
	MaxSize   int
	Count     int
	Output    string
	Canonical bool
	Order     string
}

// RegisterSequence wires the variable-length sampler flags onto fs.
func RegisterSequence(fs *pflag.FlagSet, o *SequenceOptions) {
	fs.StringVar(&o.Input, "input", "", "input FASTA/FASTQ file, can be gzipped [*]")
	fs.IntVar(&o.MinSize, "min_size", 0, "minimal size of sequences to extract [*]")
	fs.IntVar(&o.MaxSize, "max_size", 0, "maximal size of sequences to extract [*]")
	fs.IntVar(&o.Count, "num", -1, "number of sequences to extract [*]")
	fs.StringVar(&o.Output, "output", "", "output FASTA file [*]")
	fs.BoolVar(&o.Canonical, "canonical", false, "extract sequences in their canonical form")
	fs.StringVar(&o.Order, "order", "lex", "canonical order: lex | kmtricks")
}

// Request validates o and converts it to a sampling request.
func (o SequenceOptions) Request() (sampler.VariableRequest, error) {
	switch {
	case o.Input == "":
		return sampler.VariableRequest{}, Usagef("--input is required")
	case o.Output == "":
		return sampler.VariableRequest{}, Usagef("--output is required")
	case o.Count < 0:
		return sampler.VariableRequest{}, Usagef("--num is required")
	}
	ord, err := dna.ParseOrdering(o.Order)
	if err != nil {
		return sampler.VariableRequest{}, Usagef("--order: %v", err)
	}
	req := sampler.VariableRequest{
		MinSize: o.MinSize, MaxSize: o.MaxSize, Count: o.Count,
		Canonical: o.Canonical, Ordering: ord,
	}
	return req, req.Validate()
}
