package sampler

import (
	"errors"
	"fmt"

	"seqsample/internal/dna"
)

var (
	// ErrInvalidConfiguration reports contradictory or out-of-range sizes.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInsufficientData reports that the reads cannot satisfy a request.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNoReads is the ErrInsufficientData raised for an input with no records.
	ErrNoReads = fmt.Errorf("%w: input has no reads", ErrInsufficientData)
)

// FixedRequest asks for Count k-mers of length K.
type FixedRequest struct {
	K         int
	Count     int
	Canonical bool
	Ordering  dna.Ordering
}

// Validate checks the request before any input is read.
func (r FixedRequest) Validate() error {
	switch {
	case r.K <= 0:
		return fmt.Errorf("%w: k-mer size must be > 0, got %d", ErrInvalidConfiguration, r.K)
	case r.Count < 0:
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfiguration, r.Count)
	}
	return nil
}

// VariableRequest asks for Count subsequences whose lengths lie in
// [MinSize, MaxSize].
type VariableRequest struct {
	MinSize   int
	MaxSize   int
	Count     int
	Canonical bool
	Ordering  dna.Ordering
}

// Validate checks the request before any input is read.
func (r VariableRequest) Validate() error {
	switch {
	case r.MinSize <= 0:
		return fmt.Errorf("%w: min size must be > 0, got %d", ErrInvalidConfiguration, r.MinSize)
	case r.MaxSize < r.MinSize:
		return fmt.Errorf("%w: max size (%d) is smaller than min size (%d)", ErrInvalidConfiguration, r.MaxSize, r.MinSize)
	case r.Count < 0:
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfiguration, r.Count)
	}
	return nil
}
