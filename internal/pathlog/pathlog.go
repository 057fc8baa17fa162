// Package pathlog owns the live recording, the two main triggers and every
// path collection, and advances the trigger state machine once per tick.
package pathlog

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/model"
)

// DirectCollectionName is the fixed name of the direct-mode collection.
const DirectCollectionName = "Direct"

const (
	// StartTrigger is the index of the trigger that primes and starts a run.
	StartTrigger = 0
	// EndTrigger is the index of the trigger that finishes a run.
	EndTrigger = 1
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a PathLog.
type Option func(*PathLog)

// WithClock replaces time.Now, mainly for deterministic replays and tests.
func WithClock(c Clock) Option {
	return func(l *PathLog) {
		l.now = c
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *PathLog) {
		l.log = log
	}
}

// PathLog is the aggregate root of the recording engine. It is not safe for
// concurrent use; the owner serializes access.
type PathLog struct {
	directMode bool
	autosave   bool
	filePath   string

	// recordingStart is non-nil exactly while recording.
	recordingStart *time.Time
	primed         bool
	recordingPath  *model.Path

	latestTime time.Duration
	latestPath *model.Path

	direct      *model.PathCollection
	collections []*model.PathCollection
	active      uuid.UUID
	triggers    [2]*collider.BoxCollider
	filters     map[uuid.UUID]*model.HighPassFilter

	muted    map[uuid.UUID]bool
	soloed   map[uuid.UUID]bool
	selected uuid.UUID
	visible  map[uuid.UUID][]*model.Path

	now Clock
	log *slog.Logger
}

// New creates an idle PathLog with no triggers and no user collections.
func New(opts ...Option) *PathLog {
	l := &PathLog{
		recordingPath: model.NewPath(),
		direct:        model.NewCollection(DirectCollectionName),
		filters:       make(map[uuid.UUID]*model.HighPassFilter),
		muted:         make(map[uuid.UUID]bool),
		soloed:        make(map[uuid.UUID]bool),
		visible:       make(map[uuid.UUID][]*model.Path),
		now:           time.Now,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Recording reports whether a run is in progress.
func (l *PathLog) Recording() bool {
	return l.recordingStart != nil
}

// Primed reports whether the tracked point is waiting inside the start trigger.
func (l *PathLog) Primed() bool {
	return l.primed
}

// RecordingPath returns the live path.
func (l *PathLog) RecordingPath() *model.Path {
	return l.recordingPath
}

// LatestTime returns the time of the last finished run.
func (l *PathLog) LatestTime() time.Duration {
	return l.latestTime
}

// LatestPath returns the last finished path, or nil.
func (l *PathLog) LatestPath() *model.Path {
	return l.latestPath
}

// DirectMode reports whether start/stop are driven by events instead of triggers.
func (l *PathLog) DirectMode() bool {
	return l.directMode
}

// SetDirectMode switches mode, discarding any run in progress.
func (l *PathLog) SetDirectMode(on bool) {
	if l.directMode == on {
		return
	}
	l.Reset()
	l.primed = false
	l.directMode = on
}

// Autosave reports whether finished runs are written to FilePath immediately.
func (l *PathLog) Autosave() bool {
	return l.autosave
}

// SetAutosave toggles autosave.
func (l *PathLog) SetAutosave(on bool) {
	l.autosave = on
}

// FilePath returns the current comparison file, or "".
func (l *PathLog) FilePath() string {
	return l.filePath
}

// SetFilePath sets the current comparison file.
func (l *PathLog) SetFilePath(path string) {
	l.filePath = path
}

// Trigger returns trigger i, or nil when unset.
func (l *PathLog) Trigger(i int) *collider.BoxCollider {
	if i < 0 || i >= len(l.triggers) {
		return nil
	}
	return l.triggers[i]
}

// TriggersSet reports whether both triggers are placed.
func (l *PathLog) TriggersSet() bool {
	return l.triggers[StartTrigger] != nil && l.triggers[EndTrigger] != nil
}
