package pipeline

import "errors"

// Pipeline failure modes.
var (
	// ErrDecodeFailure marks input bytes that are not a decodable
	// raster image. Recoverable per item.
	ErrDecodeFailure = errors.New("input is not a decodable image")

	// ErrNoMergeInput is returned when none of the inputs to a merge
	// could be decoded and the output would be empty.
	ErrNoMergeInput = errors.New("no merge input could be decoded")

	// ErrNoPages is returned when a composition would produce a PDF
	// with zero pages.
	ErrNoPages = errors.New("no pages could be composed")
)

// ItemOutcome records the fate of one input to a best-effort
// multi-item operation.
type ItemOutcome struct {
	Index int
	Err   error // nil on success
}

// OK reports whether the item was processed.
func (o ItemOutcome) OK() bool { return o.Err == nil }

// Report aggregates per-item outcomes for a compose or merge run.
// A run that produced output with a non-empty Dropped list is a
// success annotated with which items were lost, never a silent skip.
type Report struct {
	Items []ItemOutcome
}

func (r *Report) add(index int, err error) {
	r.Items = append(r.Items, ItemOutcome{Index: index, Err: err})
}

// Succeeded returns the number of items that were processed.
func (r *Report) Succeeded() int {
	n := 0
	for _, it := range r.Items {
		if it.OK() {
			n++
		}
	}
	return n
}

// Dropped returns the indices of inputs that were skipped.
func (r *Report) Dropped() []int {
	var out []int
	for _, it := range r.Items {
		if !it.OK() {
			out = append(out, it.Index)
		}
	}
	return out
}
