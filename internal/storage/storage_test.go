package storage

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/database"
	"github.com/ghostline/recorder/internal/model"
	"github.com/ghostline/recorder/internal/storage/memory"
	sqlitestorage "github.com/ghostline/recorder/internal/storage/sqlite"
)

var (
	_ Backend = (*memory.Backend)(nil)
	_ Backend = (*sqlitestorage.Backend)(nil)
)

func TestNewRun(t *testing.T) {
	p := model.NewPath()
	p.AddNode(mgl32.Vec3{0, 0, 0})
	p.AddNode(mgl32.Vec3{0, 0, 5})
	p.EndPath(1500 * time.Millisecond)
	c := model.NewCollection("laps")
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	r := NewRun(p, c, model.ModeTriggered, at)
	assert.Equal(t, p.ID, r.PathID)
	assert.Equal(t, c.ID, r.CollectionID)
	assert.Equal(t, "laps", r.CollectionName)
	assert.Equal(t, 1500*time.Millisecond, r.Duration)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, r.SegmentTimes)
	assert.Equal(t, 2, r.NodeCount)
	assert.InDelta(t, 5.0, r.Length, 1e-6)
	assert.Equal(t, 1, r.Track.NumLineStrings())
	assert.Equal(t, at, r.RecordedAt)

	orphan := NewRun(p, nil, model.ModeDirect, at)
	assert.Empty(t, orphan.CollectionName)
}

func TestNewBackend(t *testing.T) {
	m := database.NewManager(zerolog.Nop())
	log := slog.Default()

	b, err := NewBackend(config.StorageConfig{Type: "memory"}, m, config.DBConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	b, err = NewBackend(config.StorageConfig{Type: "sqlite"}, m, config.DBConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &sqlitestorage.Backend{}, b)

	_, err = NewBackend(config.StorageConfig{Type: "mongo"}, m, config.DBConfig{}, log)
	assert.Error(t, err)
}
