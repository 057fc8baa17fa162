package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTrace(t *testing.T) {
	input := `x,y,z,rx,ry,rz
# start line
0, 0, 0, 0, 0, 0
1.5,0,-2,0,1.57,0

3,0,0,0,0,0.5
`
	tr, err := ReadTrace(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, tr.Len())

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, tr.Position())
	require.True(t, tr.Next())
	assert.Equal(t, mgl32.Vec3{1.5, 0, -2}, tr.Position())
	assert.InDelta(t, 1.57, tr.Rotation()[1], 1e-6)
	require.True(t, tr.Next())
	assert.Equal(t, 2, tr.Index())
	assert.False(t, tr.Next())
	assert.Equal(t, 2, tr.Index())

	pose := Sample(tr)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, pose.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.5}, pose.Rotation)
}

func TestReadTrace_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "x,y,z,rx,ry,rz\n"},
		{"bad value", "0,0,0,0,0,0\n1,2,x,0,0,0\n"},
		{"wrong columns", "0,0,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTrace(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := ReadTrace(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyTrace)
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3,0,0,0\n"), 0644))

	tr, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position())

	_, err = LoadTrace(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRecordingActuator(t *testing.T) {
	var a RecordingActuator
	a.Teleport(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0})
	a.SetCameraRotation(mgl32.Vec2{0.5, 0.25})

	require.Len(t, a.Moves, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, a.Moves[0].Pose.Position)
	assert.Equal(t, mgl32.Vec2{0.5, 0.25}, a.Moves[0].Camera)
}
