// Package memory keeps run history for the lifetime of the process.
package memory

import (
	"slices"
	"sync"

	"github.com/ghostline/recorder/internal/model"
)

// Backend stores runs in a slice.
type Backend struct {
	mu     sync.RWMutex
	runs   []model.Run
	nextID uint
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init() error  { return nil }
func (b *Backend) Close() error { return nil }

// RecordRun assigns the next ID and keeps a copy of r.
func (b *Backend) RecordRun(r *model.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	r.ID = b.nextID
	b.runs = append(b.runs, *r)
	return nil
}

// Runs returns the latest runs, newest first.
func (b *Backend) Runs(limit int) ([]model.Run, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := slices.Clone(b.runs)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
