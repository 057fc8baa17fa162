package pathlog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/compfile"
	"github.com/ghostline/recorder/internal/model"
)

// ErrTriggersUnset is returned when saving a comparison without both triggers.
var ErrTriggersUnset = errors.New("both triggers must be set")

// Comparison snapshots the triggers and user collections into a file value.
func (l *PathLog) Comparison() (*compfile.File, error) {
	if !l.TriggersSet() {
		return nil, ErrTriggersUnset
	}
	return &compfile.File{
		Version: compfile.CurrentVersion,
		Triggers: [2]collider.Snapshot{
			l.triggers[StartTrigger].Snapshot(),
			l.triggers[EndTrigger].Snapshot(),
		},
		Collections: l.collections,
	}, nil
}

// SaveComparison writes the comparison to path and makes it the current file.
func (l *PathLog) SaveComparison(path string) error {
	f, err := l.Comparison()
	if err != nil {
		return err
	}
	if err := compfile.Save(path, f); err != nil {
		return fmt.Errorf("save comparison: %w", err)
	}
	l.filePath = path
	return nil
}

// LoadComparison reads path and replaces the triggers and collections.
// The PathLog is unchanged when the file cannot be read.
func (l *PathLog) LoadComparison(path string) error {
	f, err := compfile.Load(path)
	if err != nil {
		return fmt.Errorf("load comparison: %w", err)
	}
	l.ApplyComparison(f)
	l.filePath = path
	return nil
}

// ApplyComparison replaces triggers and collections with the file contents
// and drops all per-path and per-collection bookkeeping.
func (l *PathLog) ApplyComparison(f *compfile.File) {
	l.Reset()
	l.primed = false
	l.triggers = [2]*collider.BoxCollider{
		collider.FromSnapshot(f.Triggers[StartTrigger]),
		collider.FromSnapshot(f.Triggers[EndTrigger]),
	}
	l.collections = append([]*model.PathCollection(nil), f.Collections...)
	l.active = uuid.Nil
	clear(l.filters)
	clear(l.muted)
	clear(l.soloed)
	l.selected = uuid.Nil
	l.latestPath = nil
	l.latestTime = 0
	l.RefreshVisible()
}
