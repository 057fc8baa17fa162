// Package events defines the intent events consumed by the tick loop.
package events

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/model"
	"github.com/ghostline/recorder/internal/render"
)

// Kind names an event variant; handlers are registered per kind.
type Kind string

const (
	KindDeletePath             Kind = "delete_path"
	KindToggleMute             Kind = "toggle_mute"
	KindToggleSolo             Kind = "toggle_solo"
	KindSelectPath             Kind = "select_path"
	KindStartRecording         Kind = "start_recording"
	KindStopRecording          Kind = "stop_recording"
	KindResetRecording         Kind = "reset_recording"
	KindCreateCollection       Kind = "create_collection"
	KindRenameCollection       Kind = "rename_collection"
	KindDeleteCollection       Kind = "delete_collection"
	KindToggleActiveCollection Kind = "toggle_active_collection"
	KindSetFilter              Kind = "set_filter"
	KindToggleDirectMode       Kind = "toggle_direct_mode"
	KindToggleAutosave         Kind = "toggle_autosave"
	KindCreateTrigger          Kind = "create_trigger"
	KindClearTriggers          Kind = "clear_triggers"
	KindSaveComparison         Kind = "save_comparison"
	KindLoadComparison         Kind = "load_comparison"
	KindTeleport               Kind = "teleport"
	KindTeleportToPath         Kind = "teleport_to_path"
	KindSpawnTeleport          Kind = "spawn_teleport"
	KindPathsChanged           Kind = "paths_changed"
)

// Event is a single user or system intent.
type Event interface {
	Kind() Kind
}

type DeletePath struct {
	CollectionID uuid.UUID
	PathID       uuid.UUID
}

type ToggleMute struct{ PathID uuid.UUID }

type ToggleSolo struct{ PathID uuid.UUID }

// SelectPath selects a path; uuid.Nil clears the selection.
type SelectPath struct{ PathID uuid.UUID }

type StartRecording struct{}

type StopRecording struct{}

type ResetRecording struct{}

type CreateCollection struct{ Name string }

type RenameCollection struct {
	CollectionID uuid.UUID
	Name         string
}

type DeleteCollection struct{ CollectionID uuid.UUID }

type ToggleActiveCollection struct{ CollectionID uuid.UUID }

// SetFilter sets the admission policy of a collection; nil clears it.
type SetFilter struct {
	CollectionID uuid.UUID
	Filter       *model.HighPassFilter
}

type ToggleDirectMode struct{}

type ToggleAutosave struct{}

// CreateTrigger places trigger Index (0 start, 1 end) at the current host
// pose with the configured size.
type CreateTrigger struct{ Index int }

type ClearTriggers struct{}

// SaveComparison writes the comparison file. With an empty Path the current
// file is used, or a save dialog is shown when there is none.
type SaveComparison struct {
	Path   string
	Dialog bool
}

// LoadComparison reads a comparison file. With an empty Path an open dialog
// is shown.
type LoadComparison struct{ Path string }

// Teleport moves the player. A nil Camera leaves the camera where it is.
type Teleport struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Camera   *mgl32.Vec2
}

type TeleportToPath struct {
	CollectionID uuid.UUID
	PathID       uuid.UUID
}

// SpawnTeleport bookmarks the current host pose under Name, with the camera
// if the host reports one.
type SpawnTeleport struct {
	Name   string
	Camera *mgl32.Vec2
}

// PathsChanged marks visual categories dirty for the presentation layer.
type PathsChanged struct{ Dirty render.Dirty }

func (DeletePath) Kind() Kind             { return KindDeletePath }
func (ToggleMute) Kind() Kind             { return KindToggleMute }
func (ToggleSolo) Kind() Kind             { return KindToggleSolo }
func (SelectPath) Kind() Kind             { return KindSelectPath }
func (StartRecording) Kind() Kind         { return KindStartRecording }
func (StopRecording) Kind() Kind          { return KindStopRecording }
func (ResetRecording) Kind() Kind         { return KindResetRecording }
func (CreateCollection) Kind() Kind       { return KindCreateCollection }
func (RenameCollection) Kind() Kind       { return KindRenameCollection }
func (DeleteCollection) Kind() Kind       { return KindDeleteCollection }
func (ToggleActiveCollection) Kind() Kind { return KindToggleActiveCollection }
func (SetFilter) Kind() Kind              { return KindSetFilter }
func (ToggleDirectMode) Kind() Kind       { return KindToggleDirectMode }
func (ToggleAutosave) Kind() Kind         { return KindToggleAutosave }
func (CreateTrigger) Kind() Kind          { return KindCreateTrigger }
func (ClearTriggers) Kind() Kind          { return KindClearTriggers }
func (SaveComparison) Kind() Kind         { return KindSaveComparison }
func (LoadComparison) Kind() Kind         { return KindLoadComparison }
func (Teleport) Kind() Kind               { return KindTeleport }
func (TeleportToPath) Kind() Kind         { return KindTeleportToPath }
func (SpawnTeleport) Kind() Kind          { return KindSpawnTeleport }
func (PathsChanged) Kind() Kind           { return KindPathsChanged }

// Changed is a PathsChanged event for the given categories.
func Changed(d render.Dirty) Event {
	return PathsChanged{Dirty: d}
}
