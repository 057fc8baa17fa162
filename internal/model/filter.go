package model

import (
	"fmt"

	"github.com/google/uuid"
)

// FilterKind selects a collection admission policy.
type FilterKind uint8

const (
	// FilterGold only admits a path faster than the current best.
	FilterGold FilterKind = iota + 1
	// FilterPath pins comparison against one reference path.
	FilterPath
)

// HighPassFilter is the admission/ordering policy of a collection. A nil
// filter means plain time-ordered insertion.
type HighPassFilter struct {
	Kind   FilterKind
	PathID uuid.UUID
}

// Gold returns the best-time filter.
func Gold() *HighPassFilter {
	return &HighPassFilter{Kind: FilterGold}
}

// PinnedTo returns a filter anchored on the path with the given id.
func PinnedTo(id uuid.UUID) *HighPassFilter {
	return &HighPassFilter{Kind: FilterPath, PathID: id}
}

func (f *HighPassFilter) String() string {
	if f == nil {
		return "none"
	}
	switch f.Kind {
	case FilterGold:
		return "gold"
	case FilterPath:
		return fmt.Sprintf("path(%s)", f.PathID)
	default:
		return fmt.Sprintf("unknown(%d)", f.Kind)
	}
}
