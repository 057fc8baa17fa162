// Package geo converts recorded paths to simplefeatures geometries so runs
// can be persisted as WKB and measured.
package geo

import (
	"github.com/go-gl/mathgl/mgl32"
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/ghostline/recorder/internal/model"
)

// Point converts a world position to an XYZ point.
func Point(v mgl32.Vec3) geom.Point {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: float64(v[0]), Y: float64(v[1])},
		Z:    float64(v[2]),
		Type: geom.DimXYZ,
	})
}

// LineString converts one segment to an XYZ line string. Segments with
// fewer than two nodes yield an empty line string.
func LineString(s model.Segment) geom.LineString {
	if len(s) < 2 {
		return geom.LineString{}.ForceCoordinatesType(geom.DimXYZ)
	}
	flat := make([]float64, 0, len(s)*3)
	for _, v := range s {
		flat = append(flat, float64(v[0]), float64(v[1]), float64(v[2]))
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXYZ))
}

// Track converts every segment of a path to one member line string.
func Track(p *model.Path) geom.MultiLineString {
	lines := make([]geom.LineString, 0, len(p.Segments))
	for _, s := range p.Segments {
		lines = append(lines, LineString(s))
	}
	return geom.NewMultiLineString(lines).ForceCoordinatesType(geom.DimXYZ)
}

// Segments is the inverse of Track. Empty member line strings come back as
// empty segments.
func Segments(mls geom.MultiLineString) []model.Segment {
	out := make([]model.Segment, 0, mls.NumLineStrings())
	for i := 0; i < mls.NumLineStrings(); i++ {
		seq := mls.LineStringN(i).Coordinates()
		seg := make(model.Segment, 0, seq.Length())
		for j := 0; j < seq.Length(); j++ {
			c := seq.Get(j)
			seg = append(seg, mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)})
		}
		out = append(out, seg)
	}
	return out
}

// Length is the 3D distance travelled along all segments. Gaps between
// segments are not counted.
func Length(p *model.Path) float64 {
	var total float64
	for _, s := range p.Segments {
		for i := 1; i < len(s); i++ {
			total += float64(s[i].Sub(s[i-1]).Len())
		}
	}
	return total
}
