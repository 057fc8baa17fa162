package host

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyTrace is returned for a trace without pose rows.
var ErrEmptyTrace = errors.New("trace has no poses")

// Trace replays recorded poses as a MovementSource. Position and Rotation
// report the current pose; Next advances to the following one.
type Trace struct {
	poses []Pose
	i     int
}

// NewTrace wraps poses. It panics on an empty slice.
func NewTrace(poses []Pose) *Trace {
	if len(poses) == 0 {
		panic("host: empty trace")
	}
	return &Trace{poses: poses}
}

// ReadTrace parses CSV rows of x,y,z,rx,ry,rz. A first row that does not
// parse as numbers is treated as a header. Blank lines are skipped.
func ReadTrace(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var poses []Pose
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		pose, err := parsePose(rec)
		if err != nil {
			if line == 1 {
				continue
			}
			row, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("trace row %d: %w", row, err)
		}
		poses = append(poses, pose)
	}
	if len(poses) == 0 {
		return nil, ErrEmptyTrace
	}
	return &Trace{poses: poses}, nil
}

// LoadTrace reads a trace file.
func LoadTrace(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrace(f)
}

func parsePose(rec []string) (Pose, error) {
	var v [6]float32
	for i, s := range rec {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return Pose{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		v[i] = float32(f)
	}
	return Pose{
		Position: mgl32.Vec3{v[0], v[1], v[2]},
		Rotation: mgl32.Vec3{v[3], v[4], v[5]},
	}, nil
}

// Len returns the number of poses.
func (t *Trace) Len() int { return len(t.poses) }

// Index returns the position of the current pose.
func (t *Trace) Index() int { return t.i }

// Next moves to the next pose, reporting false at the end.
func (t *Trace) Next() bool {
	if t.i+1 >= len(t.poses) {
		return false
	}
	t.i++
	return true
}

func (t *Trace) Position() mgl32.Vec3 { return t.poses[t.i].Position }
func (t *Trace) Rotation() mgl32.Vec3 { return t.poses[t.i].Rotation }
