package pathlog

import (
	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/model"
)

// Collections returns the user collections in creation order.
func (l *PathLog) Collections() []*model.PathCollection {
	return l.collections
}

// DirectPaths returns the collection that receives direct-mode runs.
func (l *PathLog) DirectPaths() *model.PathCollection {
	return l.direct
}

// Collection returns the user or direct collection with id, or nil.
func (l *PathLog) Collection(id uuid.UUID) *model.PathCollection {
	if id == l.direct.ID {
		return l.direct
	}
	for _, c := range l.collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Active returns the id of the active collection, or uuid.Nil.
func (l *PathLog) Active() uuid.UUID {
	return l.active
}

// FindPath locates a path in any collection.
func (l *PathLog) FindPath(id uuid.UUID) (*model.Path, *model.PathCollection) {
	for _, c := range append([]*model.PathCollection{l.direct}, l.collections...) {
		if p := c.Path(id); p != nil {
			return p, c
		}
	}
	return nil, nil
}

// CreateCollection appends an empty collection.
func (l *PathLog) CreateCollection(name string) *model.PathCollection {
	c := model.NewCollection(name)
	l.collections = append(l.collections, c)
	l.visible[c.ID] = nil
	return c
}

// RenameCollection renames a user collection.
func (l *PathLog) RenameCollection(id uuid.UUID, name string) bool {
	for _, c := range l.collections {
		if c.ID == id {
			c.Name = name
			return true
		}
	}
	l.log.Warn("rename of unknown collection", "collection", id)
	return false
}

// DeleteCollection removes a user collection together with its filter,
// active status and the mute, solo and selection state of its paths.
func (l *PathLog) DeleteCollection(id uuid.UUID) bool {
	for i, c := range l.collections {
		if c.ID != id {
			continue
		}
		for _, p := range c.Paths {
			l.forgetPath(p.ID)
		}
		l.collections = append(l.collections[:i], l.collections[i+1:]...)
		delete(l.filters, id)
		delete(l.visible, id)
		if l.active == id {
			l.active = uuid.Nil
		}
		return true
	}
	l.log.Warn("delete of unknown collection", "collection", id)
	return false
}

// ToggleActiveCollection makes id the active collection, or clears the
// active collection when id already is.
func (l *PathLog) ToggleActiveCollection(id uuid.UUID) bool {
	if l.active == id {
		l.active = uuid.Nil
		return true
	}
	for _, c := range l.collections {
		if c.ID == id {
			l.active = id
			return true
		}
	}
	l.log.Warn("activation of unknown collection", "collection", id)
	return false
}

// Filter returns the high-pass filter of a collection, or nil.
func (l *PathLog) Filter(id uuid.UUID) *model.HighPassFilter {
	return l.filters[id]
}

// SetFilter installs or, with nil, removes the filter of a user collection.
// A path-pinned filter must name a path in that collection.
func (l *PathLog) SetFilter(id uuid.UUID, f *model.HighPassFilter) bool {
	var c *model.PathCollection
	for _, uc := range l.collections {
		if uc.ID == id {
			c = uc
			break
		}
	}
	if c == nil {
		l.log.Warn("filter on unknown collection", "collection", id)
		return false
	}
	if f == nil {
		delete(l.filters, id)
		return true
	}
	if f.Kind == model.FilterPath && c.Path(f.PathID) == nil {
		l.log.Warn("filter pinned to unknown path", "collection", id, "path", f.PathID)
		return false
	}
	l.filters[id] = f
	return true
}

// DeletePath removes a path from a collection. A filter pinned to the removed
// path is dropped with it.
func (l *PathLog) DeletePath(collectionID, pathID uuid.UUID) bool {
	c := l.Collection(collectionID)
	if c == nil {
		l.log.Warn("path delete in unknown collection", "collection", collectionID, "path", pathID)
		return false
	}
	if !c.Remove(pathID) {
		l.log.Warn("delete of unknown path", "collection", collectionID, "path", pathID)
		return false
	}
	if f := l.filters[collectionID]; f != nil && f.Kind == model.FilterPath && f.PathID == pathID {
		delete(l.filters, collectionID)
	}
	if l.latestPath != nil && l.latestPath.ID == pathID {
		l.latestPath = nil
	}
	l.forgetPath(pathID)
	l.RefreshVisible()
	return true
}

func (l *PathLog) forgetPath(id uuid.UUID) {
	delete(l.muted, id)
	delete(l.soloed, id)
	if l.selected == id {
		l.selected = uuid.Nil
	}
}

// ToggleMute flips the mute state of a path and returns the new state. ok is
// false when no collection holds the path.
func (l *PathLog) ToggleMute(id uuid.UUID) (muted, ok bool) {
	return l.toggle(l.muted, id, "mute")
}

// ToggleSolo flips the solo state of a path and returns the new state.
func (l *PathLog) ToggleSolo(id uuid.UUID) (soloed, ok bool) {
	return l.toggle(l.soloed, id, "solo")
}

func (l *PathLog) toggle(set map[uuid.UUID]bool, id uuid.UUID, op string) (bool, bool) {
	if p, _ := l.FindPath(id); p == nil {
		l.log.Warn(op+" of unknown path", "path", id)
		return false, false
	}
	if set[id] {
		delete(set, id)
	} else {
		set[id] = true
	}
	l.RefreshVisible()
	return set[id], true
}

// Muted reports whether a path is muted.
func (l *PathLog) Muted(id uuid.UUID) bool {
	return l.muted[id]
}

// Soloed reports whether a path is soloed.
func (l *PathLog) Soloed(id uuid.UUID) bool {
	return l.soloed[id]
}

// Select marks a path as selected; uuid.Nil clears the selection. Unknown
// ids leave the selection unchanged.
func (l *PathLog) Select(id uuid.UUID) bool {
	if id != uuid.Nil {
		if p, _ := l.FindPath(id); p == nil {
			l.log.Warn("select of unknown path", "path", id)
			return false
		}
	}
	l.selected = id
	return true
}

// Selected returns the selected path id, or uuid.Nil.
func (l *PathLog) Selected() uuid.UUID {
	return l.selected
}

// RefreshVisible rebuilds the per-collection visible path cache. When any
// path is soloed only soloed paths are visible; otherwise every path that is
// not muted is.
func (l *PathLog) RefreshVisible() {
	clear(l.visible)
	for _, c := range append([]*model.PathCollection{l.direct}, l.collections...) {
		paths := make([]*model.Path, 0, c.Len())
		for _, p := range c.Paths {
			if l.isVisible(p.ID) {
				paths = append(paths, p)
			}
		}
		l.visible[c.ID] = paths
	}
}

func (l *PathLog) isVisible(id uuid.UUID) bool {
	if len(l.soloed) > 0 {
		return l.soloed[id]
	}
	return !l.muted[id]
}

// Visible returns the cached visible paths of a collection.
func (l *PathLog) Visible(id uuid.UUID) []*model.Path {
	return l.visible[id]
}
