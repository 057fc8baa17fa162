package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/model"
)

func newManager() *Manager {
	return NewManager(zerolog.Nop())
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host: "db", Port: "5433", Username: "u", Password: "p", Database: "runs",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=runs sslmode=disable", dsn)
}

func TestSqlite_MemoryIsPrivate(t *testing.T) {
	m := newManager()
	a, err := m.Sqlite("")
	require.NoError(t, err)
	b, err := m.Sqlite("")
	require.NoError(t, err)

	require.NoError(t, m.Migrate(a))
	assert.True(t, a.Migrator().HasTable(&model.RunRecord{}))
	assert.False(t, b.Migrator().HasTable(&model.RunRecord{}))
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	m := newManager()
	db, err := m.Sqlite("")
	require.NoError(t, err)
	require.NoError(t, m.Migrate(db))

	rec := model.RunRecord{
		PathID:     uuid.NewString(),
		Mode:       model.ModeTriggered,
		DurationMs: 1234,
		RecordedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&rec).Error)

	path := filepath.Join(t.TempDir(), "runs.db")
	_, err = DumpMemoryDBToDisk(db, path)
	require.NoError(t, err)

	// a second dump replaces the first
	_, err = DumpMemoryDBToDisk(db, path)
	require.NoError(t, err)

	disk, err := m.Sqlite(path)
	require.NoError(t, err)
	var got []model.RunRecord
	require.NoError(t, disk.Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1234), got[0].DurationMs)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	db, err := newManager().Sqlite("")
	require.NoError(t, err)
	_, err = DumpMemoryDBToDisk(db, "")
	assert.ErrorIs(t, err, ErrNoDumpPath)
}
