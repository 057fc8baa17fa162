// Package app owns the recorder state and wires every intent event to the
// path log. The host calls Tick once per frame.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/dialog"
	"github.com/ghostline/recorder/internal/events"
	"github.com/ghostline/recorder/internal/influx"
	"github.com/ghostline/recorder/internal/logging"
	"github.com/ghostline/recorder/internal/loop"
	"github.com/ghostline/recorder/internal/model"
	"github.com/ghostline/recorder/internal/pathlog"
	"github.com/ghostline/recorder/internal/render"
	"github.com/ghostline/recorder/internal/storage"
	"github.com/ghostline/recorder/pkg/host"
)

// Dependencies holds everything the service needs. Only LogManager is
// required; a nil Backend, Influx, Picker or Actuator disables that feature.
type Dependencies struct {
	LogManager *logging.SlogManager
	Backend    storage.Backend
	Influx     *influx.Manager
	Picker     dialog.Picker
	Actuator   host.Actuator
	// LogState is stamped onto log records when it was registered with the
	// log manager. A fresh one is used when nil.
	LogState *LogState

	Clock       pathlog.Clock
	TriggerSize mgl32.Vec3
	Recording   config.RecordingConfig
}

// Bookmark is a named teleport destination.
type Bookmark struct {
	Name   string
	Pose   host.Pose
	Camera *mgl32.Vec2
}

// Teleport returns the event that moves the player back to the bookmark.
func (b Bookmark) Teleport() events.Teleport {
	return events.Teleport{Position: b.Pose.Position, Rotation: b.Pose.Rotation, Camera: b.Camera}
}

// Service runs the tick. Tick and the event handlers run on the host's
// frame goroutine; View, Flags and Notices may be called from anywhere.
type Service struct {
	deps  Dependencies
	ctx   context.Context
	log   *slog.Logger
	loop  *loop.Loop
	state *LogState

	mu        sync.RWMutex
	paths     *pathlog.PathLog
	pose      host.Pose
	bookmarks []Bookmark

	flags    render.Flags
	saveSlot dialog.Slot
	loadSlot dialog.Slot

	notices noticeBoard
}

// NewService builds the path log from deps and registers all handlers. ctx
// is handed to dialog pickers.
func NewService(ctx context.Context, deps Dependencies) (*Service, error) {
	log := deps.LogManager.Logger().With("component", "app")

	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.TriggerSize == (mgl32.Vec3{}) {
		deps.TriggerSize = config.DefaultTriggerSize
	}
	if deps.LogState == nil {
		deps.LogState = &LogState{}
	}

	l, err := loop.New(logging.NewLoopLogger(deps.LogManager.Logger()))
	if err != nil {
		return nil, err
	}

	paths := pathlog.New(pathlog.WithClock(deps.Clock), pathlog.WithLogger(log))
	paths.SetAutosave(deps.Recording.Autosave)
	paths.SetDirectMode(deps.Recording.DirectMode)

	s := &Service{
		deps:  deps,
		ctx:   ctx,
		log:   log,
		loop:  l,
		state: deps.LogState,
		paths: paths,
	}
	s.register()
	s.syncState()
	s.flags.Mark(render.All)
	return s, nil
}

// Push queues events for the next Tick. Safe from any goroutine.
func (s *Service) Push(evs ...events.Event) {
	s.loop.Push(evs...)
}

// Pending returns the number of queued events.
func (s *Service) Pending() int {
	return s.loop.Pending()
}

// Tick feeds the host pose to the state machine and then drains the event
// queue once. A finished run is recorded before the queue is drained.
// Returns the number of events handled.
func (s *Service) Tick(ctx context.Context, pose host.Pose) int {
	s.mu.Lock()
	s.pose = pose
	tr := s.paths.Update(pose.Position, pose.Rotation)
	run := s.runOf(tr.Finished)
	s.syncState()
	s.mu.Unlock()

	s.state.ticks.Add(1)
	if tr.Finished != nil {
		s.finished(ctx, tr.Finished, run)
	}
	if tr.Changed() {
		s.loop.Push(events.Changed(render.Paths))
	}
	return s.loop.Process(ctx)
}

// View calls fn with the path log under a read lock. fn must not keep
// references past its return or call back into the service.
func (s *Service) View(fn func(*pathlog.PathLog)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.paths)
}

// Flags are the render-dirty flags for the presentation layer.
func (s *Service) Flags() *render.Flags {
	return &s.flags
}

// Bookmarks returns a copy of the teleport bookmarks.
func (s *Service) Bookmarks() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Bookmark(nil), s.bookmarks...)
}

// Notices returns the user-visible messages, oldest first.
func (s *Service) Notices() []Notice {
	return s.notices.list()
}

// DismissNotices clears the notice list.
func (s *Service) DismissNotices() {
	s.notices.clear()
}

// runOf builds the stored run for fin while the lock is held.
func (s *Service) runOf(fin *pathlog.Finished) *model.Run {
	if fin == nil {
		return nil
	}
	mode := model.ModeTriggered
	if fin.Direct {
		mode = model.ModeDirect
	}
	var collection *model.PathCollection
	if fin.Direct {
		collection = s.paths.DirectPaths()
	} else if len(fin.Admitted) > 0 {
		collection = s.paths.Collection(fin.Admitted[0])
	}
	return storage.NewRun(fin.Path, collection, mode, s.deps.Clock())
}

// finished reports a closed run. Storage errors are logged and never stop
// the tick.
func (s *Service) finished(ctx context.Context, fin *pathlog.Finished, run *model.Run) {
	s.log.Info("run finished",
		"time", fin.Time,
		"nodes", fin.Path.NodeCount(),
		"admitted", len(fin.Admitted),
		"direct", fin.Direct,
	)

	if fin.SaveErr != nil {
		s.notices.add(slog.LevelError, "Autosave failed: "+fin.SaveErr.Error())
	} else if fin.Saved {
		s.notices.add(slog.LevelInfo, "Autosaved")
	}

	if s.deps.Backend != nil {
		if err := s.deps.Backend.RecordRun(run); err != nil {
			s.log.Error("failed to record run", "path", run.PathID, "error", err)
		}
	}
	if s.deps.Influx != nil {
		if err := s.deps.Influx.WriteRun(run); err != nil {
			s.log.Warn("failed to write run point", "path", run.PathID, "error", err)
		}
	}
}
