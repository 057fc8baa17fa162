// Package loop drains the intent queue once per tick and routes each event
// to its registered handler.
package loop

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghostline/recorder/internal/events"
	"github.com/ghostline/recorder/internal/queue"
)

// HandlerFunc applies an event and returns follow-up events for the next tick.
type HandlerFunc func(events.Event) []events.Event

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Loop routes queued events to handlers. Push is safe from any goroutine;
// Process must only be called from the tick.
type Loop struct {
	handlers map[events.Kind]HandlerFunc
	queue    *queue.Queue[events.Event]
	logger   Logger

	pending   metric.Int64ObservableGauge
	processed metric.Int64Counter
	followups metric.Int64Counter
	unhandled metric.Int64Counter
}

// New creates a loop with an empty queue.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Loop, error) {
	l := &Loop{
		handlers: make(map[events.Kind]HandlerFunc),
		queue:    queue.New[events.Event](),
		logger:   logger,
	}

	m := meter()

	var err error

	l.pending, err = m.Int64ObservableGauge(
		"loop.queue.pending",
		metric.WithDescription("Events waiting for the next tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pending gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(l.pending, int64(l.queue.Len()))
			return nil
		},
		l.pending,
	)
	if err != nil {
		return nil, fmt.Errorf("registering pending callback: %w", err)
	}

	l.processed, err = m.Int64Counter(
		"loop.events.processed",
		metric.WithDescription("Total events handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	l.followups, err = m.Int64Counter(
		"loop.events.followups",
		metric.WithDescription("Events enqueued by handlers for the next tick"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating followups counter: %w", err)
	}

	l.unhandled, err = m.Int64Counter(
		"loop.events.unhandled",
		metric.WithDescription("Events dropped for lack of a handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating unhandled counter: %w", err)
	}

	return l, nil
}

// Register sets the handler for kind, replacing any previous one.
func (l *Loop) Register(kind events.Kind, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h
	if cfg.logged {
		handler = l.withLogging(kind, handler)
	}
	l.handlers[kind] = handler
}

// HasHandler returns true if a handler is registered for kind.
func (l *Loop) HasHandler(kind events.Kind) bool {
	_, ok := l.handlers[kind]
	return ok
}

// Push enqueues events for the next Process call.
func (l *Loop) Push(evs ...events.Event) {
	l.queue.Push(evs...)
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	return l.queue.Len()
}

// Process runs one tick: it takes every queued event, handles them in
// arrival order and queues their follow-ups behind anything pushed
// meanwhile. Follow-ups never run in the tick that produced them.
// It returns the number of events handled.
func (l *Loop) Process(ctx context.Context) int {
	batch := l.queue.Drain()
	if len(batch) == 0 {
		return 0
	}

	var next []events.Event
	handled := 0
	for _, ev := range batch {
		kindAttr := metric.WithAttributes(attribute.String("kind", string(ev.Kind())))

		h, ok := l.handlers[ev.Kind()]
		if !ok {
			l.logger.Error("no handler for event", "kind", ev.Kind())
			l.unhandled.Add(ctx, 1, kindAttr)
			continue
		}

		follow := h(ev)
		handled++
		l.processed.Add(ctx, 1, kindAttr)
		if len(follow) > 0 {
			l.followups.Add(ctx, int64(len(follow)), kindAttr)
			next = append(next, follow...)
		}
	}

	l.queue.Push(next...)
	return handled
}

func (l *Loop) withLogging(kind events.Kind, h HandlerFunc) HandlerFunc {
	return func(ev events.Event) []events.Event {
		start := time.Now()
		l.logger.Debug("handling event", "kind", kind)

		follow := h(ev)

		l.logger.Debug("event complete", "kind", kind, "duration", time.Since(start), "followups", len(follow))
		return follow
	}
}
