package app

import (
	"errors"
	"log/slog"

	"github.com/ghostline/recorder/internal/compfile"
	"github.com/ghostline/recorder/internal/dialog"
	"github.com/ghostline/recorder/internal/events"
	"github.com/ghostline/recorder/internal/render"
)

// handleSaveComparison saves to the event's path, to the current file, or
// through a save dialog. While the dialog is open the event is re-queued
// every tick and the slot is polled without blocking.
func (s *Service) handleSaveComparison(ev events.Event) []events.Event {
	e := ev.(events.SaveComparison)

	path := e.Path
	if path == "" && !e.Dialog {
		s.mu.RLock()
		path = s.paths.FilePath()
		s.mu.RUnlock()
	}
	if path != "" {
		s.save(compfile.WithExtension(path))
		return nil
	}

	sel, done, ok := s.pick(&s.saveSlot, dialog.Save, "Save comparison")
	if !ok {
		return nil
	}
	if !done {
		return []events.Event{ev}
	}
	if sel.Chosen() {
		s.save(compfile.WithExtension(sel.Path))
	}
	return nil
}

// handleLoadComparison loads the event's path or one chosen in an open dialog.
func (s *Service) handleLoadComparison(ev events.Event) []events.Event {
	e := ev.(events.LoadComparison)
	if e.Path != "" {
		return s.load(e.Path)
	}

	sel, done, ok := s.pick(&s.loadSlot, dialog.Open, "Load comparison")
	if !ok {
		return nil
	}
	if !done {
		return []events.Event{ev}
	}
	if sel.Chosen() {
		return s.load(sel.Path)
	}
	return nil
}

// pick polls slot, starting the dialog when it is idle. ok is false when
// there is no picker. A failed dialog is treated like a cancel.
func (s *Service) pick(slot *dialog.Slot, mode dialog.Mode, title string) (sel dialog.Selection, done, ok bool) {
	if s.deps.Picker == nil {
		s.notices.add(slog.LevelWarn, "No file dialog available")
		return sel, false, false
	}

	sel, done = slot.Poll(dialog.Show(s.ctx, s.deps.Picker, dialog.Request{
		Mode:      mode,
		Title:     title,
		Dir:       s.deps.Recording.ComparisonDir,
		Extension: compfile.Extension,
	}))
	if done && sel.Err != nil {
		s.log.Warn("file dialog failed", "mode", mode, "error", sel.Err)
	}
	return sel, done, true
}

func (s *Service) save(path string) {
	s.mu.Lock()
	err := s.paths.SaveComparison(path)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("failed to save comparison", "path", path, "error", err)
		s.notices.add(slog.LevelError, "Save failed: "+err.Error())
		return
	}
	s.log.Info("comparison saved", "path", path)
	s.notices.add(slog.LevelInfo, "Saved "+path)
}

func (s *Service) load(path string) []events.Event {
	s.mu.Lock()
	err := s.paths.LoadComparison(path)
	s.syncState()
	s.mu.Unlock()

	if err != nil {
		s.log.Error("failed to load comparison", "path", path, "error", err)
		msg := "Load failed: "
		if errors.Is(err, compfile.ErrDecode) || errors.Is(err, compfile.ErrUnknownVersion) {
			msg = "Not a comparison file: "
		}
		s.notices.add(slog.LevelError, msg+err.Error())
		return nil
	}
	s.log.Info("comparison loaded", "path", path)
	s.notices.add(slog.LevelInfo, "Loaded "+path)
	return []events.Event{events.Changed(render.All)}
}
