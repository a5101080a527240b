// Package worker executes sweep requests one at a time.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/mailbox"
)

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Runner is satisfied by *job.Job.
type Runner interface {
	Run(ctx context.Context, req job.Request) job.Result
}

// Worker takes requests from the mailbox and runs them sequentially.
// A request submitted while a run is in flight waits in the mailbox;
// further submissions replace it, so overlapping ticks collapse into one run.
type Worker struct {
	mu     sync.RWMutex
	runner Runner
	log    logging.Logger
	mb     *mailbox.Mailbox[job.Request]

	state  State
	cancel context.CancelFunc
	last   *job.Result
}

// New creates a worker using the runner and mailbox.
func New(r Runner, log logging.Logger, mb *mailbox.Mailbox[job.Request]) *Worker {
	log.Debug("creating worker")
	if mb == nil {
		mb = mailbox.New[job.Request]()
	}
	return &Worker{
		runner: r,
		log:    log,
		mb:     mb,
	}
}

// Start runs the worker loop until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")
	for {
		req, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}
		w.Handle(ctx, req)
	}
}

// Submit queues a run request. It reports true when it replaced one that
// was already pending.
func (w *Worker) Submit(req job.Request) bool {
	replaced := w.mb.Put(req)
	if replaced {
		w.log.Debug("pending run replaced", "reason", req.Reason)
	}
	return replaced
}

// Cancel interrupts the in-flight run, if any.
func (w *Worker) Cancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel == nil {
		return false
	}
	w.cancel()
	return true
}

func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Queued reports whether a request is waiting for the current run to end.
func (w *Worker) Queued() bool {
	return w.mb.Pending()
}

// LastResult returns the most recently finished run.
func (w *Worker) LastResult() (job.Result, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.last == nil {
		return job.Result{}, false
	}
	return *w.last, true
}

// Handle runs one request synchronously.
func (w *Worker) Handle(ctx context.Context, req job.Request) (res job.Result) {
	runCtx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	w.state = Running
	w.cancel = cancel
	w.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			w.log.Error("worker: run panicked", "panic", fmt.Sprint(r))
			res = job.Result{Reason: req.Reason, Err: fmt.Errorf("run panicked: %v", r)}
		}
		cancel()

		w.mu.Lock()
		w.state = Idle
		w.cancel = nil
		w.last = &res
		w.mu.Unlock()
	}()

	return w.runner.Run(runCtx, req)
}
