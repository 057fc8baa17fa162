// Package render holds the dirty flags shared with the presentation layer.
package render

import (
	"strings"
	"sync/atomic"
)

// Dirty is a set of visual categories needing a rebuild.
type Dirty uint32

const (
	Paths Dirty = 1 << iota
	Triggers
	Teleports
	Shapes

	All = Paths | Triggers | Teleports | Shapes
)

// Has reports whether every category in o is set in d.
func (d Dirty) Has(o Dirty) bool {
	return d&o == o && o != 0
}

func (d Dirty) String() string {
	if d == 0 {
		return "none"
	}
	var parts []string
	for _, c := range []struct {
		flag Dirty
		name string
	}{{Paths, "paths"}, {Triggers, "triggers"}, {Teleports, "teleports"}, {Shapes, "shapes"}} {
		if d&c.flag != 0 {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "|")
}

// Flags are written by the tick and consumed by the presentation layer,
// possibly from another goroutine.
type Flags struct {
	v atomic.Uint32
}

// Mark ORs d into the flags.
func (f *Flags) Mark(d Dirty) {
	for {
		old := f.v.Load()
		if f.v.CompareAndSwap(old, old|uint32(d)) {
			return
		}
	}
}

// Peek returns the current flags without clearing them.
func (f *Flags) Peek() Dirty {
	return Dirty(f.v.Load())
}

// Consume clears d and reports which of its categories were set.
func (f *Flags) Consume(d Dirty) Dirty {
	for {
		old := f.v.Load()
		if f.v.CompareAndSwap(old, old&^uint32(d)) {
			return Dirty(old) & d
		}
	}
}
