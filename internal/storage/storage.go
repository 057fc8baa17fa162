// Package storage defines the run history backend contract and builds Run
// values from finished paths.
package storage

import (
	"time"

	"github.com/ghostline/recorder/internal/geo"
	"github.com/ghostline/recorder/internal/model"
)

// Backend is the interface all run history implementations satisfy.
type Backend interface {
	Init() error
	Close() error

	// RecordRun stores r and assigns its ID when the backend can do so
	// synchronously.
	RecordRun(r *model.Run) error
	// Runs lists stored runs newest first. limit <= 0 means all.
	Runs(limit int) ([]model.Run, error)
}

// NewRun describes a finished path. collection may be nil when no
// collection accepted the path.
func NewRun(path *model.Path, collection *model.PathCollection, mode string, recordedAt time.Time) *model.Run {
	r := &model.Run{
		PathID:       path.ID,
		Mode:         mode,
		Duration:     path.Time(),
		SegmentTimes: append([]time.Duration(nil), path.Times...),
		NodeCount:    path.NodeCount(),
		Length:       geo.Length(path),
		Track:        geo.Track(path),
		RecordedAt:   recordedAt,
	}
	if collection != nil {
		r.CollectionID = collection.ID
		r.CollectionName = collection.Name
	}
	return r
}
