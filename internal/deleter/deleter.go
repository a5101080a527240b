// Package deleter removes expired files one at a time.
package deleter

import (
	"context"
	"time"

	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/retention"
)

// Failure records a file that could not be removed.
type Failure struct {
	Path   string
	Reason string
	Err    error
}

type Result struct {
	Deleted  int
	Failures []Failure
	Canceled bool
}

// Observer receives per-file outcomes, e.g. metrics.
type Observer interface {
	FileDeleted()
	FileFailed(reason string)
}

type Deleter struct {
	fs     fs.FS
	log    logging.Logger
	obs    Observer
	dryRun bool
	now    func() time.Time
}

// New creates a deleter. obs may be nil.
func New(filesystem fs.FS, log logging.Logger, obs Observer, dryRun bool) *Deleter {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Deleter{fs: filesystem, log: log, obs: obs, dryRun: dryRun, now: time.Now}
}

// Delete makes one attempt per candidate. A failure never stops the rest.
// ctx is checked before every file.
func (d *Deleter) Delete(ctx context.Context, candidates []retention.Candidate) Result {
	var res Result

	for _, c := range candidates {
		if ctx.Err() != nil {
			res.Canceled = true
			d.log.Warn("deletion interrupted", "remaining", len(candidates)-res.Deleted-len(res.Failures))
			return res
		}

		if d.dryRun {
			d.log.Info("would delete file", "path", c.Path, "ageDays", c.AgeDays)
			res.Deleted++
			continue
		}

		if err := d.fs.Remove(c.Path); err != nil {
			reason := fs.Reason(err)
			d.log.Error("deleting file failed", "path", c.Path, "reason", reason, "error", err)
			res.Failures = append(res.Failures, Failure{Path: c.Path, Reason: reason, Err: err})
			if d.obs != nil {
				d.obs.FileFailed(reason)
			}
			continue
		}

		d.log.Info("file deleted", "path", c.Path, "ageDays", c.AgeDays, "at", d.now().UTC())
		res.Deleted++
		if d.obs != nil {
			d.obs.FileDeleted()
		}
	}

	return res
}
