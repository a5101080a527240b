// Package scheduler fires sweep requests on a fixed interval.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
)

// Submitter is satisfied by *worker.Worker.
type Submitter interface {
	Submit(req job.Request) bool
}

type Scheduler struct {
	cron     *cron.Cron
	entry    cron.EntryID
	interval time.Duration
	target   Submitter
	log      logging.Logger
	paused   atomic.Bool
}

// New schedules a tick every interval (rounded down to whole seconds, at least one).
func New(interval time.Duration, target Submitter, log logging.Logger) *Scheduler {
	cl := logging.CronLogger(log)
	s := &Scheduler{
		interval: interval,
		target:   target,
		log:      log,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	s.entry = s.cron.Schedule(cron.Every(interval), cron.FuncJob(s.tick))
	return s
}

func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "interval", s.interval)
	s.cron.Start()
}

// Stop halts future ticks and waits for a tick in progress, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

// Pause makes ticks no-ops until Resume.
func (s *Scheduler) Pause()  { s.paused.Store(true) }
func (s *Scheduler) Resume() { s.paused.Store(false) }

func (s *Scheduler) Paused() bool { return s.paused.Load() }

// Next returns the time of the next tick; zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

func (s *Scheduler) tick() {
	if s.paused.Load() {
		s.log.Info("scheduled run skipped, service paused")
		return
	}
	if s.target.Submit(job.NewRequest(job.ReasonSchedule)) {
		s.log.Warn("a run is already pending, scheduled run coalesced")
	}
}
