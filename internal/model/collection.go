package model

import (
	"slices"

	"github.com/google/uuid"
)

// PathCollection is a named list of finalized paths kept in policy order.
type PathCollection struct {
	ID    uuid.UUID
	Name  string
	Paths []*Path
}

// NewCollection returns an empty collection with a fresh id.
func NewCollection(name string) *PathCollection {
	return &PathCollection{ID: uuid.New(), Name: name}
}

// Add inserts path according to filter and reports whether it was admitted.
func (c *PathCollection) Add(path *Path, filter *HighPassFilter) bool {
	idx, ok := c.insertIndex(path, filter)
	if !ok {
		return false
	}
	c.Paths = slices.Insert(c.Paths, idx, path)
	return true
}

func (c *PathCollection) insertIndex(path *Path, filter *HighPassFilter) (int, bool) {
	t := path.Time()

	if filter != nil && filter.Kind == FilterGold {
		if len(c.Paths) == 0 || t < c.Paths[0].Time() {
			return 0, true
		}
		return 0, false
	}

	for i, existing := range c.Paths {
		if existing.Time() > t {
			return i, true
		}
		if filter != nil && filter.Kind == FilterPath && existing.ID == filter.PathID {
			return 0, false
		}
	}
	return len(c.Paths), true
}

// Remove deletes the path with id, reporting whether it was present.
func (c *PathCollection) Remove(id uuid.UUID) bool {
	for i, p := range c.Paths {
		if p.ID == id {
			c.Paths = slices.Delete(c.Paths, i, i+1)
			return true
		}
	}
	return false
}

// Path returns the path with id, or nil.
func (c *PathCollection) Path(id uuid.UUID) *Path {
	for _, p := range c.Paths {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Len returns the number of paths in the collection.
func (c *PathCollection) Len() int {
	return len(c.Paths)
}

// Empty reports whether the collection holds no paths.
func (c *PathCollection) Empty() bool {
	return len(c.Paths) == 0
}

// Best returns the fastest path, or nil for an empty collection.
func (c *PathCollection) Best() *Path {
	if len(c.Paths) == 0 {
		return nil
	}
	return c.Paths[0]
}
