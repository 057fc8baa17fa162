package app

import (
	"fmt"
	"time"

	"github.com/ghostline/recorder/internal/dialog"
)

// Status is a snapshot of the recorder for status displays.
type Status struct {
	Recording   bool
	Primed      bool
	DirectMode  bool
	Autosave    bool
	TriggersSet bool
	Time        time.Duration
	LatestTime  time.Duration
	FilePath    string
	Collections int
	Paths       int
	Pending     int
	SaveDialog  dialog.State
	LoadDialog  dialog.State
}

// Status collects the current state. Call it from the tick goroutine: the
// dialog slots are owned by the tick.
func (s *Service) Status() Status {
	s.mu.RLock()
	st := Status{
		Recording:   s.paths.Recording(),
		Primed:      s.paths.Primed(),
		DirectMode:  s.paths.DirectMode(),
		Autosave:    s.paths.Autosave(),
		TriggersSet: s.paths.TriggersSet(),
		Time:        s.paths.Time(),
		LatestTime:  s.paths.LatestTime(),
		FilePath:    s.paths.FilePath(),
		Collections: len(s.paths.Collections()),
		Paths:       s.paths.DirectPaths().Len(),
	}
	for _, c := range s.paths.Collections() {
		st.Paths += c.Len()
	}
	s.mu.RUnlock()

	st.Pending = s.loop.Pending()
	st.SaveDialog = s.saveSlot.State()
	st.LoadDialog = s.loadSlot.State()
	return st
}

// Lines renders the status as display lines.
func (st Status) Lines() []string {
	state := "idle"
	switch {
	case st.Recording:
		state = "recording"
	case st.Primed:
		state = "primed"
	}
	file := st.FilePath
	if file == "" {
		file = "(unsaved)"
	}
	return []string{
		fmt.Sprintf("State: %s  Direct: %t  Autosave: %t", state, st.DirectMode, st.Autosave),
		fmt.Sprintf("Time: %s  Last: %s", st.Time.Round(time.Millisecond), st.LatestTime.Round(time.Millisecond)),
		fmt.Sprintf("Triggers set: %t", st.TriggersSet),
		fmt.Sprintf("Collections: %d  Paths: %d", st.Collections, st.Paths),
		fmt.Sprintf("File: %s", file),
		fmt.Sprintf("Queued events: %d  Dialogs: save %s, load %s", st.Pending, st.SaveDialog, st.LoadDialog),
	}
}
