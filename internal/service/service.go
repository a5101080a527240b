// Package service ties the scheduler and worker into a start/stop lifecycle.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/mailbox"
	"github.com/raoulx24/tempsweep/internal/scheduler"
	"github.com/raoulx24/tempsweep/internal/worker"
)

var ErrAlreadyStarted = errors.New("service already started")

type Options struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
}

// Status is a point-in-time view for the status endpoint.
type Status struct {
	Name    string
	State   string
	Queued  bool // a request is waiting behind the current run
	Paused  bool
	NextRun time.Time
	Last    *job.Result
}

type Service struct {
	opts   Options
	log    logging.Logger
	worker *worker.Worker
	sched  *scheduler.Scheduler

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(opts Options, runner worker.Runner, log logging.Logger) *Service {
	w := worker.New(runner, log, mailbox.New[job.Request]())
	return &Service{
		opts:   opts,
		log:    log,
		worker: w,
		sched:  scheduler.New(opts.Interval, w, log),
	}
}

// Start launches the worker loop and the scheduler. ctx bounds the service
// lifetime; Stop ends it early.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.worker.Start(ctx)
	}()

	s.sched.Start()
	if s.opts.RunOnStart {
		s.worker.Submit(job.NewRequest(job.ReasonStartup))
	}

	s.log.Info("service started", "name", s.opts.Name)
	return nil
}

// Stop stops scheduling, cancels an in-flight run and waits for the worker
// to exit or ctx to expire.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	s.sched.Stop(ctx)
	s.worker.Cancel()
	cancel()

	select {
	case <-done:
		s.log.Info("service stopped", "name", s.opts.Name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pause suspends scheduled runs. Manual runs still execute.
func (s *Service) Pause() {
	s.sched.Pause()
	s.log.Info("service paused", "name", s.opts.Name)
}

// Continue resumes scheduled runs.
func (s *Service) Continue() {
	s.sched.Resume()
	s.log.Info("service continued", "name", s.opts.Name)
}

// RunNow queues an immediate run; true if it replaced a pending one.
func (s *Service) RunNow(req job.Request) bool {
	return s.worker.Submit(req)
}

// Cancel interrupts the in-flight run.
func (s *Service) Cancel() bool {
	return s.worker.Cancel()
}

func (s *Service) Status() Status {
	st := Status{
		Name:    s.opts.Name,
		State:   s.worker.State().String(),
		Queued:  s.worker.Queued(),
		Paused:  s.sched.Paused(),
		NextRun: s.sched.Next(),
	}
	if last, ok := s.worker.LastResult(); ok {
		st.Last = &last
	}
	return st
}
