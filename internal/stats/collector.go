// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the tool.
const (
	// Input metrics.
	MetricReadsLoaded = "seqsample_reads_loaded_total"
	MetricReadBases   = "seqsample_read_bases_total"

	// Sampling metrics.
	MetricSamplesEmitted  = "seqsample_samples_emitted_total"
	MetricSampleLength    = "seqsample_sample_length"
	MetricEligibleReads   = "seqsample_eligible_reads"
	MetricCollectionReads = "seqsample_collection_reads"

	// K-mer matching metrics.
	MetricIndexedKmers   = "seqsample_indexed_kmers"
	MetricReadsScanned   = "seqsample_match_reads_scanned_total"
	MetricReadsKept      = "seqsample_match_reads_kept_total"
	MetricKmerHits       = "seqsample_match_kmer_hits_total"
	MetricSharedKmersPct = "seqsample_match_shared_kmers_percent"
)

// Help describes each metric for exposition formats that carry help text.
var Help = map[string]string{
	MetricReadsLoaded:     "Reads loaded from the input before sampling.",
	MetricReadBases:       "Bases in the loaded reads.",
	MetricSamplesEmitted:  "Sequences written by the sampler.",
	MetricSampleLength:    "Length of each sampled sequence.",
	MetricEligibleReads:   "Reads long enough to be sampled.",
	MetricCollectionReads: "Reads in the sampled collection.",
	MetricIndexedKmers:    "Distinct k-mers in the match index.",
	MetricReadsScanned:    "Reads scanned against the k-mer index.",
	MetricReadsKept:       "Reads whose shared k-mer percentage was within the thresholds.",
	MetricKmerHits:        "Read positions whose k-mer is in the index.",
	MetricSharedKmersPct:  "Percentage of indexed k-mers per scanned read.",
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// Flusher is implemented by collectors that report once at the end of a run.
type Flusher interface {
	Flush()
}
