package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/mailbox"
)

// blockingRunner holds each run open until released or canceled.
type blockingRunner struct {
	mu      sync.Mutex
	reasons []string
	started chan struct{}
	release chan struct{}
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{}, 10), release: make(chan struct{}, 10)}
}

func (b *blockingRunner) Run(ctx context.Context, req job.Request) job.Result {
	b.mu.Lock()
	b.reasons = append(b.reasons, req.Reason)
	b.mu.Unlock()

	b.started <- struct{}{}
	select {
	case <-b.release:
		return job.Result{Reason: req.Reason}
	case <-ctx.Done():
		return job.Result{Reason: req.Reason, Canceled: true}
	}
}

func (b *blockingRunner) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.reasons...)
}

func waitStarted(t *testing.T, b *blockingRunner) {
	t.Helper()
	select {
	case <-b.started:
	case <-time.After(time.Second):
		t.Fatal("run did not start")
	}
}

func TestWorkerCoalescesOverlappingRequests(t *testing.T) {
	r := newBlockingRunner()
	w := New(r, logging.Nop(), mailbox.New[job.Request]())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Submit(job.NewRequest("first"))
	waitStarted(t, r)
	assert.Equal(t, Running, w.State())

	assert.False(t, w.Queued())
	assert.False(t, w.Submit(job.NewRequest("tick-1")))
	assert.True(t, w.Submit(job.NewRequest("tick-2")))
	assert.True(t, w.Queued())

	r.release <- struct{}{}
	waitStarted(t, r)
	r.release <- struct{}{}

	require.Eventually(t, func() bool { return w.State() == Idle && len(r.seen()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"first", "tick-2"}, r.seen())
	assert.False(t, w.Queued())

	last, ok := w.LastResult()
	require.True(t, ok)
	assert.Equal(t, "tick-2", last.Reason)
}

func TestWorkerCancelInFlight(t *testing.T) {
	r := newBlockingRunner()
	w := New(r, logging.Nop(), nil)

	assert.False(t, w.Cancel(), "nothing to cancel while idle")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Submit(job.NewRequest(job.ReasonManual))
	waitStarted(t, r)
	require.True(t, w.Cancel())

	require.Eventually(t, func() bool {
		last, ok := w.LastResult()
		return ok && last.Canceled
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, Idle, w.State())
}

func TestWorkerStopsWithContext(t *testing.T) {
	w := New(newBlockingRunner(), logging.Nop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

type panicRunner struct{}

func (panicRunner) Run(context.Context, job.Request) job.Result { panic("boom") }

func TestWorkerRecoversPanics(t *testing.T) {
	w := New(panicRunner{}, logging.Nop(), nil)

	res := w.Handle(context.Background(), job.NewRequest(job.ReasonManual))

	require.Error(t, res.Err)
	assert.Equal(t, job.OutcomeError, res.Outcome())
	assert.Equal(t, Idle, w.State())
}
