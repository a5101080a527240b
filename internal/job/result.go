package job

import (
	"time"

	"github.com/raoulx24/tempsweep/internal/deleter"
	"github.com/raoulx24/tempsweep/internal/pruner"
)

// Outcomes reported in Result.Outcome.
const (
	OutcomeOK       = "ok"
	OutcomePartial  = "partial"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Result summarizes one run. In dry-run mode Deleted and DirsPruned count
// what would have been removed.
type Result struct {
	RunID       string
	Reason      string
	Root        string
	DaysAgo     int
	DryRun      bool
	RequestedAt time.Time // zero when the caller built the Request by hand
	StartedAt   time.Time
	FinishedAt  time.Time

	Scanned     int
	ScanSkipped int
	Eligible    int
	Deleted     int
	Failed      int
	DirsPruned  int
	DirErrors   int

	Canceled bool
	Err      error

	Failures    []deleter.Failure
	DirFailures []pruner.DirError
}

func (r Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r Result) Outcome() string {
	switch {
	case r.Err != nil:
		return OutcomeError
	case r.Canceled:
		return OutcomeCanceled
	case r.Failed > 0 || r.DirErrors > 0 || r.ScanSkipped > 0:
		return OutcomePartial
	default:
		return OutcomeOK
	}
}
