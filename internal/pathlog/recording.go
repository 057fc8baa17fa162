package pathlog

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/model"
)

// Finished describes a run closed by Stop.
type Finished struct {
	Path   *model.Path
	Time   time.Duration
	Direct bool
	// Admitted lists the collections that accepted the path.
	Admitted []uuid.UUID
	Saved    bool
	SaveErr  error
}

// Transition reports what a tick changed.
type Transition struct {
	Primed   bool
	Reset    bool
	Started  bool
	Finished *Finished
}

// Changed reports whether the tick altered recording state.
func (t Transition) Changed() bool {
	return t.Primed || t.Reset || t.Started || t.Finished != nil
}

// Update advances the state machine with the host's current pose. Trigger
// transitions run only outside direct mode and only when both triggers are
// placed; the tracked point is appended to the live path afterwards.
func (l *PathLog) Update(position, rotation mgl32.Vec3) Transition {
	var tr Transition
	point := collider.TrackedPoint(position, rotation)

	if !l.directMode && l.TriggersSet() {
		inStart := l.triggers[StartTrigger].CheckPointCollision(point)
		inEnd := l.triggers[EndTrigger].CheckPointCollision(point)

		if inStart && !l.primed {
			tr.Reset = l.Reset()
			l.primed = true
			tr.Primed = true
		} else if !inStart && l.primed {
			l.primed = false
			tr.Started = l.Start()
		}

		if inEnd && l.Recording() {
			tr.Finished = l.Stop()
		}
	}

	if l.Recording() {
		l.recordingPath.AddNode(point)
	}
	return tr
}

// Start begins a run. It is a no-op while recording.
func (l *PathLog) Start() bool {
	if l.Recording() {
		return false
	}
	now := l.now()
	l.recordingStart = &now
	l.log.Debug("recording started")
	return true
}

// Reset discards the run in progress without saving it. It is a no-op when
// not recording.
func (l *PathLog) Reset() bool {
	if !l.Recording() {
		return false
	}
	l.recordingPath.Clear()
	l.recordingStart = nil
	l.log.Debug("recording reset")
	return true
}

// Stop finalizes the run in progress and files it. In direct mode the path
// goes to the direct collection unfiltered; otherwise the active collection
// applies its filter. Returns nil when not recording.
func (l *PathLog) Stop() *Finished {
	if !l.Recording() {
		return nil
	}

	elapsed := l.now().Sub(*l.recordingStart)
	path := l.recordingPath
	path.EndPath(elapsed - path.Time())
	l.latestTime = elapsed
	l.latestPath = path

	fin := &Finished{Path: path, Time: elapsed, Direct: l.directMode}
	if l.directMode {
		l.direct.Add(path, nil)
		fin.Admitted = append(fin.Admitted, l.direct.ID)
	} else {
		for _, c := range l.collections {
			if c.ID == l.active && c.Add(path, l.filters[c.ID]) {
				fin.Admitted = append(fin.Admitted, c.ID)
			}
		}
		if l.autosave && len(fin.Admitted) > 0 && l.filePath != "" {
			fin.SaveErr = l.SaveComparison(l.filePath)
			fin.Saved = fin.SaveErr == nil
			if fin.SaveErr != nil {
				l.log.Error("autosave failed", "path", l.filePath, "error", fin.SaveErr)
			}
		}
	}

	l.log.Debug("recording stopped", "time", elapsed, "nodes", path.NodeCount(), "admitted", len(fin.Admitted))

	l.recordingPath = model.NewPath()
	l.recordingStart = nil
	if len(fin.Admitted) > 0 {
		l.RefreshVisible()
	}
	return fin
}

// Time returns the elapsed run time while recording, else the last run's time.
func (l *PathLog) Time() time.Duration {
	if l.Recording() {
		return l.now().Sub(*l.recordingStart)
	}
	return l.latestTime
}

// CreateTrigger places trigger index at the host pose, offset the same way as
// the per-tick tracked point. Refused once any collection holds a path.
func (l *PathLog) CreateTrigger(index int, position, rotation, size mgl32.Vec3) bool {
	if index != StartTrigger && index != EndTrigger {
		l.log.Warn("invalid trigger index", "index", index)
		return false
	}
	if l.hasRecordedPaths() {
		return false
	}
	l.Reset()
	l.primed = false
	l.triggers[index] = collider.New(collider.TrackedPoint(position, rotation), rotation, size)
	return true
}

// ClearTriggers removes both triggers. Refused once any collection holds a path.
func (l *PathLog) ClearTriggers() bool {
	if l.hasRecordedPaths() {
		return false
	}
	l.Reset()
	l.primed = false
	l.triggers = [2]*collider.BoxCollider{}
	return true
}

// hasRecordedPaths ignores the direct collection, which never depends on
// trigger placement.
func (l *PathLog) hasRecordedPaths() bool {
	for _, c := range l.collections {
		if !c.Empty() {
			return true
		}
	}
	return false
}
