package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/tempsweep/internal/job"
	"github.com/raoulx24/tempsweep/internal/logging"
)

type captureSubmitter struct {
	mu   sync.Mutex
	reqs []job.Request
}

func (c *captureSubmitter) Submit(req job.Request) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
	return false
}

func (c *captureSubmitter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reqs)
}

func TestTickSubmitsScheduledRequest(t *testing.T) {
	sub := &captureSubmitter{}
	s := New(time.Hour, sub, logging.Nop())

	s.tick()

	require.Equal(t, 1, sub.count())
	assert.Equal(t, job.ReasonSchedule, sub.reqs[0].Reason)
	assert.Nil(t, sub.reqs[0].DaysAgo, "scheduled runs use the configured policy")
}

func TestPauseSuppressesTicks(t *testing.T) {
	sub := &captureSubmitter{}
	s := New(time.Hour, sub, logging.Nop())

	s.Pause()
	assert.True(t, s.Paused())
	s.tick()
	assert.Zero(t, sub.count())

	s.Resume()
	s.tick()
	assert.Equal(t, 1, sub.count())
}

func TestStartSchedulesNextTick(t *testing.T) {
	s := New(36*time.Hour, &captureSubmitter{}, logging.Nop())
	assert.True(t, s.Next().IsZero())

	s.Start()
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return !s.Next().IsZero() }, time.Second, 5*time.Millisecond)
	assert.WithinDuration(t, time.Now().Add(36*time.Hour), s.Next(), time.Minute)
}

func TestIntervalFires(t *testing.T) {
	sub := &captureSubmitter{}
	s := New(time.Second, sub, logging.Nop())
	s.Start()
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return sub.count() >= 1 }, 3*time.Second, 20*time.Millisecond)
}
