package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestWins(t *testing.T) {
	m := New[int]()

	assert.False(t, m.Put(1))
	assert.True(t, m.Put(2), "second put replaces the pending item")
	assert.True(t, m.Pending())

	v, ok := m.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.False(t, m.Pending())
	assert.Nil(t, m.TryTake())
}

func TestTakeBlocksUntilPut(t *testing.T) {
	m := New[string]()
	got := make(chan string, 1)

	go func() {
		v, _ := m.Take(context.Background())
		got <- v
	}()

	select {
	case <-got:
		t.Fatal("Take returned before Put")
	case <-time.After(20 * time.Millisecond):
	}

	m.Put("run")

	select {
	case v := <-got:
		assert.Equal(t, "run", v)
	case <-time.After(time.Second):
		t.Fatal("Take did not wake up")
	}
}

func TestTakeHonorsContext(t *testing.T) {
	m := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := m.Take(ctx)
	assert.False(t, ok)
}

func TestStaleNotifyDoesNotReturnEmpty(t *testing.T) {
	m := New[int]()
	m.Put(1)
	require.NotNil(t, m.TryTake()) // leaves a notify token behind

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok := m.Take(ctx)
	assert.False(t, ok, "a leftover wake-up must not produce a zero item")
}
