// Package report defines the per-(test case, run mode) result record and the
// console reporter that renders results and the final summary.
package report

import (
	"fmt"
	"io"

	"github.com/specialistvlad/simspec/internal/model"
)

// Status is the outcome of one (test case, run mode) execution. Skipped
// cases are neither passes nor failures and are counted separately.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	}
	return "UNKNOWN"
}

// Result is one outcome record. For failures, StatementIndex is the 1-based
// position of the failing statement within the executable sequence (0 when
// the failure precedes statement execution, e.g. a definitions compile
// failure), Statement is its source form, and Expected/Actual carry the
// mismatched payloads.
type Result struct {
	Suite string
	Case  string
	Mode  model.RunMode

	Status         Status
	Reason         string
	StatementIndex int
	Statement      string
	Expected       string
	Actual         string
}

// ID returns the stable "suite::case" identifier.
func (r Result) ID() string {
	return r.Suite + "::" + r.Case
}

// Summary aggregates results by status.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

// HasFailures reports whether any result in the run failed.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Write renders one line per result plus failure detail, then the summary,
// and returns the aggregated counts.
func Write(w io.Writer, results []Result) Summary {
	var sum Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			sum.Passed++
			fmt.Fprintf(w, "PASS %s [%s]\n", r.ID(), r.Mode)
		case StatusSkip:
			sum.Skipped++
			fmt.Fprintf(w, "SKIP %s (%s)\n", r.ID(), r.Reason)
		case StatusFail:
			sum.Failed++
			fmt.Fprintf(w, "FAIL %s [%s]: %s\n", r.ID(), r.Mode, r.Reason)
			if r.Statement != "" {
				fmt.Fprintf(w, "  statement %d: %s\n", r.StatementIndex, r.Statement)
			}
			if r.Expected != "" || r.Actual != "" {
				fmt.Fprintf(w, "  expected: %q\n", r.Expected)
				fmt.Fprintf(w, "  actual:   %q\n", r.Actual)
			}
		}
	}
	fmt.Fprintf(w, "passed %d, failed %d, skipped %d\n", sum.Passed, sum.Failed, sum.Skipped)
	return sum
}
