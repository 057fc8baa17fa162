package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// Run modes.
const (
	ModeTriggered = "triggered"
	ModeDirect    = "direct"
)

// Run is one finished recording as kept in run history.
type Run struct {
	ID             uint
	PathID         uuid.UUID
	CollectionID   uuid.UUID
	CollectionName string
	Mode           string
	Duration       time.Duration
	SegmentTimes   []time.Duration
	NodeCount      int
	Length         float64
	Track          geom.MultiLineString
	RecordedAt     time.Time
}

// DatabaseModels lists the tables of the run history schema.
var DatabaseModels = []any{
	&RunRecord{},
}

// RunRecord is the gorm row for a Run. The track is stored as WKB so the
// same schema works on sqlite and postgres without PostGIS.
type RunRecord struct {
	ID             uint   `gorm:"primarykey;autoIncrement"`
	PathID         string `gorm:"size:36;index"`
	CollectionID   string `gorm:"size:36;index"`
	CollectionName string `gorm:"size:128"`
	Mode           string `gorm:"size:16"`
	DurationMs     int64
	SegmentTimes   datatypes.JSONSlice[int64]
	NodeCount      int
	Length         float64
	Track          []byte
	RecordedAt     time.Time `gorm:"index"`
}

// TableName fixes the table name.
func (*RunRecord) TableName() string {
	return "runs"
}

// ToRecord converts a Run to its row form.
func (r *Run) ToRecord() RunRecord {
	times := make([]int64, len(r.SegmentTimes))
	for i, d := range r.SegmentTimes {
		times[i] = d.Milliseconds()
	}
	var track []byte
	if !r.Track.IsEmpty() {
		track = r.Track.AsBinary()
	}
	return RunRecord{
		ID:             r.ID,
		PathID:         r.PathID.String(),
		CollectionID:   r.CollectionID.String(),
		CollectionName: r.CollectionName,
		Mode:           r.Mode,
		DurationMs:     r.Duration.Milliseconds(),
		SegmentTimes:   times,
		NodeCount:      r.NodeCount,
		Length:         r.Length,
		Track:          track,
		RecordedAt:     r.RecordedAt,
	}
}

// ToRun converts a row back to a Run.
func (rec *RunRecord) ToRun() (Run, error) {
	pathID, err := uuid.Parse(rec.PathID)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: path id: %w", rec.ID, err)
	}
	var collectionID uuid.UUID
	if rec.CollectionID != "" {
		if collectionID, err = uuid.Parse(rec.CollectionID); err != nil {
			return Run{}, fmt.Errorf("run %d: collection id: %w", rec.ID, err)
		}
	}
	times := make([]time.Duration, len(rec.SegmentTimes))
	for i, ms := range rec.SegmentTimes {
		times[i] = time.Duration(ms) * time.Millisecond
	}
	run := Run{
		ID:             rec.ID,
		PathID:         pathID,
		CollectionID:   collectionID,
		CollectionName: rec.CollectionName,
		Mode:           rec.Mode,
		Duration:       time.Duration(rec.DurationMs) * time.Millisecond,
		SegmentTimes:   times,
		NodeCount:      rec.NodeCount,
		Length:         rec.Length,
		RecordedAt:     rec.RecordedAt,
	}
	if len(rec.Track) > 0 {
		g, err := geom.UnmarshalWKB(rec.Track)
		if err != nil {
			return Run{}, fmt.Errorf("run %d: track: %w", rec.ID, err)
		}
		mls, ok := g.AsMultiLineString()
		if !ok {
			return Run{}, fmt.Errorf("run %d: track is %s, not a multilinestring", rec.ID, g.Type())
		}
		run.Track = mls
	}
	return run, nil
}
