// Package queue provides the shared intent queue drained once per tick.
package queue

import (
	"sync"
)

// Queue is a mutex-guarded FIFO. Producers push from any goroutine; the
// tick drains everything pending in one swap.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// New creates a new empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		items: make([]T, 0),
	}
}

// Push appends items in order.
func (q *Queue[T]) Push(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
}

// Drain swaps out and returns every pending item. Items pushed afterwards
// land in the next drain.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := q.items
	q.items = make([]T, 0, cap(q.items))
	return result
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty returns true if nothing is pending.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}
