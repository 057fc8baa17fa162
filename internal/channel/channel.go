// Package channel provides the one-shot handoff used by background workers
// to return a single result to the tick.
package channel

import "sync"

// Sender provides write access to a one-shot channel.
type Sender[T any] interface {
	Send(T) bool
}

// Receiver provides non-blocking read access to a one-shot channel.
type Receiver[T any] interface {
	TryReceive() (T, bool)
}

// Oneshot carries at most one value from a single producer to a single
// consumer. Send never blocks; TryReceive never blocks.
type Oneshot[T any] struct {
	ch   chan T
	once sync.Once
}

// NewOneshot creates an empty one-shot channel.
func NewOneshot[T any]() *Oneshot[T] {
	return &Oneshot[T]{ch: make(chan T, 1)}
}

// Send delivers v. Only the first call has an effect; it reports whether v
// was the delivered value.
func (o *Oneshot[T]) Send(v T) bool {
	sent := false
	o.once.Do(func() {
		o.ch <- v
		sent = true
	})
	return sent
}

// TryReceive returns the value if one has been sent and not yet taken.
func (o *Oneshot[T]) TryReceive() (T, bool) {
	select {
	case v := <-o.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}
