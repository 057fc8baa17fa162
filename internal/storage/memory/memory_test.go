package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostline/recorder/internal/model"
)

func TestRecordRun_AssignsIDs(t *testing.T) {
	b := New()
	require.NoError(t, b.Init())
	defer b.Close()

	for i := 0; i < 3; i++ {
		r := &model.Run{PathID: uuid.New(), Duration: time.Duration(i) * time.Second}
		require.NoError(t, b.RecordRun(r))
		assert.Equal(t, uint(i+1), r.ID)
	}

	runs, err := b.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []uint{3, 2, 1}, []uint{runs[0].ID, runs[1].ID, runs[2].ID})
}

func TestRuns_Limit(t *testing.T) {
	b := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, b.RecordRun(&model.Run{PathID: uuid.New()}))
	}

	runs, err := b.Runs(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, uint(5), runs[0].ID)

	all, err := b.Runs(10)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRuns_ReturnsCopy(t *testing.T) {
	b := New()
	require.NoError(t, b.RecordRun(&model.Run{PathID: uuid.New(), CollectionName: "a"}))

	runs, _ := b.Runs(0)
	runs[0].CollectionName = "changed"

	again, _ := b.Runs(0)
	assert.Equal(t, "a", again[0].CollectionName)
}
