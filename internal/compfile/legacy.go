package compfile

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/ghostline/recorder/internal/model"
)

// OldPath is a pre-segment path: one node list and one duration.
type OldPath struct {
	ID    uuid.UUID
	Time  time.Duration
	Nodes []mgl32.Vec3
}

// OldPathCollection is a collection of pre-segment paths.
type OldPathCollection struct {
	ID    uuid.UUID
	Name  string
	Paths []OldPath
}

// Migrate converts an old path into a single-segment path.
func (o OldPath) Migrate() *model.Path {
	nodes := make(model.Segment, len(o.Nodes))
	copy(nodes, o.Nodes)
	return &model.Path{
		ID:       o.ID,
		Segments: []model.Segment{nodes},
		Times:    []time.Duration{o.Time},
	}
}

// Migrate converts the collection, keeping id, name and path order.
func (o OldPathCollection) Migrate() *model.PathCollection {
	c := &model.PathCollection{ID: o.ID, Name: o.Name}
	for _, p := range o.Paths {
		c.Paths = append(c.Paths, p.Migrate())
	}
	return c
}

func decodeLegacy(d *decoder, f *File) {
	decodeTriggers(d, f)

	n := d.length(16 + 8 + 8)
	for i := 0; i < n && d.err == nil; i++ {
		old := OldPathCollection{ID: d.id(), Name: d.str()}
		count := d.length(16 + durationSize + 8)
		for j := 0; j < count && d.err == nil; j++ {
			old.Paths = append(old.Paths, OldPath{
				ID:    d.id(),
				Time:  d.duration(),
				Nodes: d.points(),
			})
		}
		f.Collections = append(f.Collections, old.Migrate())
	}
}
