package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/events"
	"github.com/ghostline/recorder/internal/loop"
	"github.com/ghostline/recorder/internal/render"
)

func (s *Service) register() {
	s.loop.Register(events.KindDeletePath, s.handleDeletePath, loop.Logged())
	s.loop.Register(events.KindToggleMute, s.handleToggleMute)
	s.loop.Register(events.KindToggleSolo, s.handleToggleSolo)
	s.loop.Register(events.KindSelectPath, s.handleSelectPath)
	s.loop.Register(events.KindStartRecording, s.handleStartRecording, loop.Logged())
	s.loop.Register(events.KindStopRecording, s.handleStopRecording, loop.Logged())
	s.loop.Register(events.KindResetRecording, s.handleResetRecording, loop.Logged())
	s.loop.Register(events.KindCreateCollection, s.handleCreateCollection, loop.Logged())
	s.loop.Register(events.KindRenameCollection, s.handleRenameCollection)
	s.loop.Register(events.KindDeleteCollection, s.handleDeleteCollection, loop.Logged())
	s.loop.Register(events.KindToggleActiveCollection, s.handleToggleActiveCollection)
	s.loop.Register(events.KindSetFilter, s.handleSetFilter)
	s.loop.Register(events.KindToggleDirectMode, s.handleToggleDirectMode, loop.Logged())
	s.loop.Register(events.KindToggleAutosave, s.handleToggleAutosave)
	s.loop.Register(events.KindCreateTrigger, s.handleCreateTrigger, loop.Logged())
	s.loop.Register(events.KindClearTriggers, s.handleClearTriggers, loop.Logged())
	s.loop.Register(events.KindSaveComparison, s.handleSaveComparison)
	s.loop.Register(events.KindLoadComparison, s.handleLoadComparison)
	s.loop.Register(events.KindTeleport, s.handleTeleport)
	s.loop.Register(events.KindTeleportToPath, s.handleTeleportToPath)
	s.loop.Register(events.KindSpawnTeleport, s.handleSpawnTeleport)
	s.loop.Register(events.KindPathsChanged, s.handlePathsChanged)
}

// changedIf returns a PathsChanged follow-up when ok is set.
func changedIf(ok bool, d render.Dirty) []events.Event {
	if !ok {
		return nil
	}
	return []events.Event{events.Changed(d)}
}

func (s *Service) handleDeletePath(ev events.Event) []events.Event {
	e := ev.(events.DeletePath)
	s.mu.Lock()
	ok := s.paths.DeletePath(e.CollectionID, e.PathID)
	s.mu.Unlock()
	if !ok {
		s.log.Debug("delete path: unknown id", "collection", e.CollectionID, "path", e.PathID)
	}
	return changedIf(ok, render.Paths)
}

func (s *Service) handleToggleMute(ev events.Event) []events.Event {
	e := ev.(events.ToggleMute)
	s.mu.Lock()
	_, ok := s.paths.ToggleMute(e.PathID)
	s.mu.Unlock()
	return changedIf(ok, render.Paths)
}

func (s *Service) handleToggleSolo(ev events.Event) []events.Event {
	e := ev.(events.ToggleSolo)
	s.mu.Lock()
	_, ok := s.paths.ToggleSolo(e.PathID)
	s.mu.Unlock()
	return changedIf(ok, render.Paths)
}

func (s *Service) handleSelectPath(ev events.Event) []events.Event {
	e := ev.(events.SelectPath)
	s.mu.Lock()
	ok := s.paths.Select(e.PathID)
	s.mu.Unlock()
	return changedIf(ok, render.Paths)
}

func (s *Service) handleStartRecording(events.Event) []events.Event {
	s.mu.Lock()
	ok := s.paths.Start()
	s.syncState()
	s.mu.Unlock()
	return changedIf(ok, render.Paths)
}

func (s *Service) handleStopRecording(events.Event) []events.Event {
	s.mu.Lock()
	fin := s.paths.Stop()
	run := s.runOf(fin)
	s.syncState()
	s.mu.Unlock()
	if fin == nil {
		return nil
	}
	s.finished(s.ctx, fin, run)
	return changedIf(true, render.Paths)
}

func (s *Service) handleResetRecording(events.Event) []events.Event {
	s.mu.Lock()
	ok := s.paths.Reset()
	s.syncState()
	s.mu.Unlock()
	return changedIf(ok, render.Paths)
}

func (s *Service) handleCreateCollection(ev events.Event) []events.Event {
	e := ev.(events.CreateCollection)
	s.mu.Lock()
	c := s.paths.CreateCollection(e.Name)
	s.syncState()
	s.mu.Unlock()
	s.log.Info("collection created", "id", c.ID, "name", c.Name)
	return changedIf(true, render.Paths)
}

func (s *Service) handleRenameCollection(ev events.Event) []events.Event {
	e := ev.(events.RenameCollection)
	s.mu.Lock()
	ok := s.paths.RenameCollection(e.CollectionID, e.Name)
	s.mu.Unlock()
	if !ok {
		s.log.Debug("rename collection: unknown id", "collection", e.CollectionID)
	}
	return changedIf(ok, render.Paths)
}

func (s *Service) handleDeleteCollection(ev events.Event) []events.Event {
	e := ev.(events.DeleteCollection)
	s.mu.Lock()
	ok := s.paths.DeleteCollection(e.CollectionID)
	s.syncState()
	s.mu.Unlock()
	if !ok {
		s.log.Debug("delete collection: unknown id", "collection", e.CollectionID)
	}
	return changedIf(ok, render.Paths)
}

func (s *Service) handleToggleActiveCollection(ev events.Event) []events.Event {
	e := ev.(events.ToggleActiveCollection)
	s.mu.Lock()
	ok := s.paths.ToggleActiveCollection(e.CollectionID)
	s.mu.Unlock()
	if !ok {
		s.log.Debug("toggle active collection: unknown id", "collection", e.CollectionID)
	}
	return changedIf(ok, render.Paths)
}

func (s *Service) handleSetFilter(ev events.Event) []events.Event {
	e := ev.(events.SetFilter)
	s.mu.Lock()
	ok := s.paths.SetFilter(e.CollectionID, e.Filter)
	s.mu.Unlock()
	if !ok {
		s.log.Debug("set filter: unknown id", "collection", e.CollectionID)
		return nil
	}
	s.log.Info("filter set", "collection", e.CollectionID, "filter", e.Filter.String())
	return nil
}

func (s *Service) handleToggleDirectMode(events.Event) []events.Event {
	s.mu.Lock()
	on := !s.paths.DirectMode()
	s.paths.SetDirectMode(on)
	s.syncState()
	s.mu.Unlock()
	s.log.Info("direct mode", "enabled", on)
	return changedIf(true, render.Paths|render.Triggers)
}

func (s *Service) handleToggleAutosave(events.Event) []events.Event {
	s.mu.Lock()
	on := !s.paths.Autosave()
	s.paths.SetAutosave(on)
	s.mu.Unlock()
	s.log.Info("autosave", "enabled", on)
	return nil
}

func (s *Service) handleCreateTrigger(ev events.Event) []events.Event {
	e := ev.(events.CreateTrigger)
	s.mu.Lock()
	ok := s.paths.CreateTrigger(e.Index, s.pose.Position, s.pose.Rotation, s.deps.TriggerSize)
	s.syncState()
	s.mu.Unlock()
	if !ok {
		s.log.Debug("create trigger refused", "index", e.Index)
	}
	return changedIf(ok, render.Triggers)
}

func (s *Service) handleClearTriggers(events.Event) []events.Event {
	s.mu.Lock()
	ok := s.paths.ClearTriggers()
	s.syncState()
	s.mu.Unlock()
	if !ok {
		s.log.Debug("clear triggers refused: collections hold paths")
	}
	return changedIf(ok, render.Triggers)
}

func (s *Service) handleTeleport(ev events.Event) []events.Event {
	e := ev.(events.Teleport)
	if s.deps.Actuator == nil {
		s.log.Warn("teleport ignored: no actuator")
		return nil
	}
	s.deps.Actuator.Teleport(e.Position, e.Rotation)
	if e.Camera != nil {
		s.deps.Actuator.SetCameraRotation(*e.Camera)
	}
	return nil
}

// handleTeleportToPath moves the player so its tracked point lands on the
// first node of the path. Rotation and camera are kept.
func (s *Service) handleTeleportToPath(ev events.Event) []events.Event {
	e := ev.(events.TeleportToPath)
	s.mu.RLock()
	rot := s.pose.Rotation
	var first mgl32.Vec3
	found := false
	if c := s.paths.Collection(e.CollectionID); c != nil {
		if p := c.Path(e.PathID); p != nil {
			first, found = p.First()
		}
	}
	s.mu.RUnlock()
	if !found {
		s.log.Debug("teleport to path: no such path or empty", "collection", e.CollectionID, "path", e.PathID)
		return nil
	}
	return []events.Event{events.Teleport{
		Position: first.Sub(collider.LocalUp(rot)),
		Rotation: rot,
	}}
}

func (s *Service) handleSpawnTeleport(ev events.Event) []events.Event {
	e := ev.(events.SpawnTeleport)
	s.mu.Lock()
	s.bookmarks = append(s.bookmarks, Bookmark{Name: e.Name, Pose: s.pose, Camera: e.Camera})
	s.mu.Unlock()
	return changedIf(true, render.Teleports)
}

func (s *Service) handlePathsChanged(ev events.Event) []events.Event {
	e := ev.(events.PathsChanged)
	if e.Dirty&render.Paths != 0 {
		s.mu.Lock()
		s.paths.RefreshVisible()
		s.mu.Unlock()
	}
	s.flags.Mark(e.Dirty)
	return nil
}
