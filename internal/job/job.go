// Package job runs one scan, filter, delete and prune pass over the sweep root.
package job

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/raoulx24/tempsweep/internal/config"
	"github.com/raoulx24/tempsweep/internal/deleter"
	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/pruner"
	"github.com/raoulx24/tempsweep/internal/retention"
	"github.com/raoulx24/tempsweep/internal/scanner"
)

// Recorder receives run level observations. *metrics.Metrics implements it.
type Recorder interface {
	deleter.Observer
	RunStarted()
	RunFinished(result string, scanned, pruned, dirErrors int, dur time.Duration, at time.Time)
}

// Settings is the immutable part of a job, fixed at startup.
type Settings struct {
	Root      string
	Pattern   string
	Recursive bool
	Policy    retention.Policy
	KeepRoot  bool
	DryRun    bool
}

// SettingsFromConfig converts validated configuration.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	strategy, err := retention.ParseStrategy(cfg.Sweep.Strategy)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Root:      cfg.Sweep.Root,
		Pattern:   cfg.Sweep.Pattern,
		Recursive: cfg.Sweep.Recursive,
		Policy:    retention.Policy{DaysAgo: cfg.Sweep.DaysAgo, Strategy: strategy},
		KeepRoot:  cfg.Sweep.KeepRoot,
		DryRun:    cfg.Sweep.DryRun,
	}, nil
}

// Job is the sweep. It holds no state between runs.
type Job struct {
	settings Settings
	log      logging.Logger
	rec      Recorder

	scanner   *scanner.Scanner
	retention *retention.Engine
	deleter   *deleter.Deleter
	pruner    *pruner.Pruner

	now func() time.Time
}

// New wires a job. filesystem and rec may be nil.
func New(s Settings, log logging.Logger, filesystem fs.FS, rec Recorder) *Job {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Job{
		settings:  s,
		log:       log,
		rec:       rec,
		scanner:   scanner.New(filesystem, log),
		retention: retention.New(filesystem, log),
		deleter:   deleter.New(filesystem, log, rec, s.DryRun),
		pruner:    pruner.New(filesystem, log, pruner.Options{KeepRoot: s.KeepRoot, DryRun: s.DryRun}),
		now:       time.Now,
	}
}

// Run executes one full pass. It never panics on filesystem errors; they are
// logged and counted in the returned Result.
func (j *Job) Run(ctx context.Context, req Request) Result {
	res := Result{
		RunID:       uuid.NewString(),
		Reason:      req.Reason,
		RequestedAt: req.RequestedAt,
		Root:        j.settings.Root,
		DaysAgo:     j.settings.Policy.DaysAgo,
		DryRun:      j.settings.DryRun,
		StartedAt:   j.now(),
	}

	policy := j.settings.Policy
	if req.DaysAgo != nil {
		if *req.DaysAgo >= 0 {
			policy.DaysAgo = *req.DaysAgo
			res.DaysAgo = policy.DaysAgo
		} else {
			j.log.Warn("ignoring negative daysAgo override", "runId", res.RunID, "daysAgo", *req.DaysAgo)
		}
	}

	args := []any{
		"runId", res.RunID,
		"reason", req.Reason,
		"root", res.Root,
		"daysAgo", policy.DaysAgo,
		"strategy", policy.Strategy.String(),
		"dryRun", res.DryRun,
	}
	if !req.RequestedAt.IsZero() {
		args = append(args, "queuedFor", res.StartedAt.Sub(req.RequestedAt).Round(time.Millisecond))
	}

	j.rec.RunStarted()
	j.log.Info("sweep started", args...)

	j.sweep(ctx, policy, &res)
	res.FinishedAt = j.now()

	j.finish(&res)
	j.rec.RunFinished(res.Outcome(), res.Scanned, res.DirsPruned, res.DirErrors, res.Duration(), res.FinishedAt)
	return res
}

func (j *Job) sweep(ctx context.Context, policy retention.Policy, res *Result) {
	root, err := filepath.EvalSymlinks(j.settings.Root)
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			res.Err = err
		}
		j.log.Info("sweep root unavailable, nothing to do", "runId", res.RunID, "root", j.settings.Root, "error", err)
		return
	}
	res.Root = root

	scan, err := j.scanner.Scan(ctx, scanner.Options{
		Root:      root,
		Pattern:   j.settings.Pattern,
		Recursive: j.settings.Recursive,
	})
	res.Scanned = len(scan.Paths)
	res.ScanSkipped = scan.Skipped
	if err != nil {
		j.abort(ctx, err, res)
		return
	}

	candidates, err := j.retention.Filter(ctx, policy, j.now(), scan.Paths)
	res.Eligible = len(candidates)
	if err != nil {
		j.abort(ctx, err, res)
		return
	}

	del := j.deleter.Delete(ctx, candidates)
	res.Deleted = del.Deleted
	res.Failed = len(del.Failures)
	res.Failures = del.Failures
	if del.Canceled {
		res.Canceled = true
		return
	}

	pr := j.pruner.Prune(ctx, root)
	res.DirsPruned = len(pr.Pruned)
	res.DirErrors = len(pr.Errors)
	res.DirFailures = pr.Errors
	res.Canceled = pr.Canceled
}

func (j *Job) abort(ctx context.Context, err error, res *Result) {
	if ctx.Err() != nil {
		res.Canceled = true
		return
	}
	res.Err = err
}

// finish logs the per-run summaries.
func (j *Job) finish(res *Result) {
	if res.DirErrors > 0 {
		j.log.Warn("some directories could not be pruned", "runId", res.RunID, "count", res.DirErrors)
		for _, de := range res.DirFailures {
			j.log.Debug("prune error", "runId", res.RunID, "path", de.Path, "op", de.Op, "reason", fs.Reason(de.Err), "error", de.Err)
		}
	}

	args := []any{
		"runId", res.RunID,
		"outcome", res.Outcome(),
		"scanned", res.Scanned,
		"eligible", res.Eligible,
		"deleted", res.Deleted,
		"failed", res.Failed,
		"dirsPruned", res.DirsPruned,
		"duration", res.Duration(),
	}
	switch {
	case res.Err != nil:
		j.log.Error("sweep failed", append(args, "error", res.Err)...)
	case res.Canceled:
		j.log.Warn("sweep canceled", args...)
	default:
		j.log.Info("sweep finished", args...)
	}
}

type nopRecorder struct{}

func (nopRecorder) FileDeleted()                                                {}
func (nopRecorder) FileFailed(string)                                           {}
func (nopRecorder) RunStarted()                                                 {}
func (nopRecorder) RunFinished(string, int, int, int, time.Duration, time.Time) {}
