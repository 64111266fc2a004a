package metadata

import (
	"cmp"
	"log/slog"
	"slices"
)

// Candidate is an unresolved search match ranked by its position in the
// source result list.
type Candidate struct {
	Index    int
	URL      string
	Language string
}

// Result is the outcome of resolving one candidate.
type Result struct {
	Index  int
	Record Record
	Err    error
}

func Success(index int, rec Record) Result {
	return Result{Index: index, Record: rec}
}

func Failure(index int, err error) Result {
	return Result{Index: index, Err: err}
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Aggregate drops failed results and returns the remaining records in
// candidate order, whatever order they completed in.
func Aggregate(results []Result) []Record {
	succeeded := make([]Result, 0, len(results))
	for _, res := range results {
		if !res.OK() {
			slog.Warn("Dropping candidate", "index", res.Index, "error", res.Err)
			continue
		}
		succeeded = append(succeeded, res)
	}

	slices.SortStableFunc(succeeded, func(a, b Result) int {
		return cmp.Compare(a.Index, b.Index)
	})

	records := make([]Record, 0, len(succeeded))
	for _, res := range succeeded {
		records = append(records, res.Record)
	}
	return records
}
