// Package dialog runs blocking user dialogs off the tick and hands their
// result back through a polled one-shot channel.
package dialog

import (
	"context"

	"github.com/ghostline/recorder/internal/channel"
)

// Mode selects the kind of file dialog.
type Mode uint8

const (
	Open Mode = iota
	Save
)

func (m Mode) String() string {
	if m == Save {
		return "save"
	}
	return "open"
}

// Request describes a file dialog.
type Request struct {
	Mode      Mode
	Title     string
	Dir       string
	Extension string
}

// Picker shows a blocking file dialog. An empty path with a nil error means
// the user closed the dialog without choosing.
type Picker interface {
	Pick(ctx context.Context, req Request) (string, error)
}

// Selection is the outcome of a dialog.
type Selection struct {
	Path string
	Err  error
}

// Chosen reports whether the user picked a file.
func (s Selection) Chosen() bool {
	return s.Err == nil && s.Path != ""
}

// State is the phase of a pending-operation slot.
type State uint8

const (
	Idle State = iota
	Awaiting
)

func (s State) String() string {
	if s == Awaiting {
		return "awaiting"
	}
	return "idle"
}

// Slot holds at most one in-flight background operation. It is owned by the
// tick goroutine; only the one-shot channel is shared with the worker.
type Slot struct {
	rx channel.Receiver[Selection]
}

// State reports whether an operation is in flight.
func (s *Slot) State() State {
	if s.rx == nil {
		return Idle
	}
	return Awaiting
}

// Poll advances the slot. When idle it starts run on a new goroutine and
// returns false. When awaiting it checks for a result without blocking;
// once a result arrives the slot returns to idle and Poll reports true.
func (s *Slot) Poll(run func() Selection) (Selection, bool) {
	if s.rx == nil {
		ch := channel.NewOneshot[Selection]()
		s.rx = ch
		go func() {
			ch.Send(run())
		}()
		return Selection{}, false
	}

	sel, ok := s.rx.TryReceive()
	if !ok {
		return Selection{}, false
	}
	s.rx = nil
	return sel, true
}

// Show wraps a picker call as a slot operation.
func Show(ctx context.Context, p Picker, req Request) func() Selection {
	return func() Selection {
		path, err := p.Pick(ctx, req)
		return Selection{Path: path, Err: err}
	}
}
