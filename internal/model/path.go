// Package model holds recorded paths and the collections that order them.
package model

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Segment is a contiguous run of recorded points.
type Segment []mgl32.Vec3

// Path is one continuous recorded trace. Segments are split by pauses; Times
// holds the duration of each closed segment.
type Path struct {
	ID       uuid.UUID
	Segments []Segment
	Times    []time.Duration
}

// NewPath returns an empty path with a fresh id.
func NewPath() *Path {
	return &Path{ID: uuid.New()}
}

// open reports whether the last segment can still take nodes.
func (p *Path) open() bool {
	return len(p.Times) < len(p.Segments)
}

// AddNode appends pos to the open segment, creating the first segment on
// demand. Once the last segment is closed this is a no-op.
func (p *Path) AddNode(pos mgl32.Vec3) {
	if len(p.Segments) == 0 {
		p.Segments = append(p.Segments, Segment{})
	}
	if !p.open() {
		return
	}
	last := len(p.Segments) - 1
	p.Segments[last] = append(p.Segments[last], pos)
}

// EndSegment closes the open segment with d and opens a new empty one.
func (p *Path) EndSegment(d time.Duration) {
	if len(p.Segments) == 0 {
		p.Segments = append(p.Segments, Segment{})
	}
	p.Times = append(p.Times, d)
	p.Segments = append(p.Segments, Segment{})
}

// EndPath closes the last segment with d without opening another.
func (p *Path) EndPath(d time.Duration) {
	if len(p.Segments) == 0 {
		p.Segments = append(p.Segments, Segment{})
	}
	p.Times = append(p.Times, d)
}

// Time is the sum of all recorded segment durations.
func (p *Path) Time() time.Duration {
	var total time.Duration
	for _, t := range p.Times {
		total += t
	}
	return total
}

// NodeCount returns the number of points across all segments.
func (p *Path) NodeCount() int {
	n := 0
	for _, s := range p.Segments {
		n += len(s)
	}
	return n
}

// First returns the first recorded point, if any.
func (p *Path) First() (mgl32.Vec3, bool) {
	for _, s := range p.Segments {
		if len(s) > 0 {
			return s[0], true
		}
	}
	return mgl32.Vec3{}, false
}

// Clear drops all nodes and times, keeping the id.
func (p *Path) Clear() {
	p.Segments = nil
	p.Times = nil
}

// Equal compares paths by id only.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}
