package mailbox

import (
	"context"
	"sync"
)

// Mailbox is a single-slot buffer where the latest request always wins.
// It is NOT a queue. It holds at most one pending item.
// Put() overwrites any existing item. Take() blocks until one is available.
type Mailbox[T any] struct {
	mu     sync.Mutex
	item   *T
	notify chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{notify: make(chan struct{}, 1)}
}

// Put stores an item, replacing any pending one. It never blocks.
// It reports whether a pending item was replaced.
func (m *Mailbox[T]) Put(v T) (replaced bool) {
	m.mu.Lock()
	replaced = m.item != nil
	m.item = &v
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}: // wake up the taker if waiting
	default:
	}
	return replaced
}

// Take blocks until an item is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		if v := m.TryTake(); v != nil {
			return *v, true
		}
		select {
		case <-m.notify:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// TryTake returns the item if present, or nil if empty.
// It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.item == nil {
		return nil
	}

	v := m.item
	m.item = nil
	return v
}

// Pending reports whether an item is currently waiting.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item != nil
}
