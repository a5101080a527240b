package status

import (
	"time"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/service"
)

type statusView struct {
	Name    string      `json:"name"`
	State   string      `json:"state"`
	Queued  bool        `json:"queued"`
	Paused  bool        `json:"paused"`
	NextRun *time.Time  `json:"nextRun,omitempty"`
	LastRun *resultView `json:"lastRun,omitempty"`
}

type resultView struct {
	RunID       string    `json:"runId"`
	Reason      string    `json:"reason"`
	Outcome     string    `json:"outcome"`
	Root        string    `json:"root"`
	DaysAgo     int       `json:"daysAgo"`
	DryRun      bool      `json:"dryRun"`
	RequestedAt time.Time `json:"requestedAt"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	Scanned     int       `json:"scanned"`
	ScanSkipped int       `json:"scanSkipped"`
	Eligible    int       `json:"eligible"`
	Deleted     int       `json:"deleted"`
	Failed      int       `json:"failed"`
	DirsPruned  int       `json:"dirsPruned"`
	DirErrors   int       `json:"dirErrors"`
	Error       string    `json:"error,omitempty"`
}

func viewOf(st service.Status) statusView {
	v := statusView{Name: st.Name, State: st.State, Queued: st.Queued, Paused: st.Paused}
	if !st.NextRun.IsZero() {
		next := st.NextRun
		v.NextRun = &next
	}
	if st.Last != nil {
		v.LastRun = resultViewOf(*st.Last)
	}
	return v
}

func resultViewOf(r job.Result) *resultView {
	rv := &resultView{
		RunID:       r.RunID,
		Reason:      r.Reason,
		Outcome:     r.Outcome(),
		Root:        r.Root,
		DaysAgo:     r.DaysAgo,
		DryRun:      r.DryRun,
		RequestedAt: r.RequestedAt,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Scanned:     r.Scanned,
		ScanSkipped: r.ScanSkipped,
		Eligible:    r.Eligible,
		Deleted:     r.Deleted,
		Failed:      r.Failed,
		DirsPruned:  r.DirsPruned,
		DirErrors:   r.DirErrors,
	}
	if r.Err != nil {
		rv.Error = r.Err.Error()
	}
	return rv
}
