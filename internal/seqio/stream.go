package seqio

import (
	"bytes"
	"context"
)

// Record is one sequence with its header, as passed to ForEachRecord. Both
// slices are only valid during the callback.
type Record struct {
	Header []byte
	Seq    []byte
}

// ForEachRecord opens path and calls emit for every record in order.
// Cancellation via ctx is honored between records. Return a non-nil error
// from emit to stop early.
func ForEachRecord(ctx context.Context, path string, emit func(rec Record) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for r.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := emit(Record{Header: r.Header(), Seq: r.Seq()}); err != nil {
			return err
		}
	}
	return r.Err()
}

// ForEach is ForEachRecord for callers that only need sequences. emit must
// copy seq if it keeps it.
func ForEach(ctx context.Context, path string, emit func(seq []byte) error) error {
	return ForEachRecord(ctx, path, func(rec Record) error { return emit(rec.Seq) })
}

// ReadAll materializes every sequence of path in memory.
func ReadAll(ctx context.Context, path string) ([][]byte, error) {
	var reads [][]byte
	err := ForEach(ctx, path, func(seq []byte) error {
		reads = append(reads, bytes.Clone(seq))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reads, nil
}
