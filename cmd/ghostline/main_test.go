package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostline/recorder/internal/collider"
	"github.com/ghostline/recorder/internal/compfile"
	"github.com/ghostline/recorder/internal/model"
)

// setupConfig writes a config file into a temp dir and returns that dir.
func setupConfig(t *testing.T, storage string) string {
	t.Helper()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := fmt.Sprintf(`{
	"logLevel": "debug",
	"logsDir": %q,
	"trigger": {"size": [1, 1, 1]},
	"storage": %s
}`, filepath.Join(dir, "logs"), storage)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName()), []byte(cfg), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTrace(t *testing.T, xs ...float32) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("x,y,z,rx,ry,rz\n")
	for _, x := range xs {
		fmt.Fprintf(&b, "%g,0,0,0,0,0\n", x)
	}
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

// courseTrace places the start trigger at x=0 and the end trigger at x=10
// (rows 0 and 1), then runs from the start to the end.
func courseTrace(t *testing.T) string {
	return writeTrace(t, 0, 10, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

func sampleFile() *compfile.File {
	p := model.NewPath()
	p.AddNode(mgl32.Vec3{0, 1, 0})
	p.AddNode(mgl32.Vec3{3, 1, 4})
	p.EndPath(1500 * time.Millisecond)

	c := model.NewCollection("course")
	c.Add(p, nil)
	return &compfile.File{
		Triggers: [2]collider.Snapshot{
			{Size: mgl32.Vec3{1, 1, 1}},
			{Position: mgl32.Vec3{10, 0, 0}, Size: mgl32.Vec3{1, 1, 1}},
		},
		Collections: []*model.PathCollection{c},
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.gcomp")
	require.NoError(t, compfile.Save(path, sampleFile()))

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Regexp(t, `version\s+0\.5`, out)
	assert.Contains(t, out, `collection "course"`)
	assert.Contains(t, out, "1 paths")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "5.0m")
}

func TestInspect_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gcomp")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))

	_, err := execute(t, "inspect", path)
	assert.ErrorIs(t, err, compfile.ErrDecode)
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gcomp")
	require.NoError(t, compfile.Save(in, sampleFile()))

	out, err := execute(t, "migrate", in, filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Contains(t, out, "version 0.5")

	f, err := compfile.Load(filepath.Join(dir, "out.gcomp"))
	require.NoError(t, err)
	require.Len(t, f.Collections, 1)
	assert.Equal(t, "course", f.Collections[0].Name)
	assert.Equal(t, 1500*time.Millisecond, f.Collections[0].Paths[0].Time())
}

func TestReplay_TriggeredRun(t *testing.T) {
	dir := setupConfig(t, `{"type": "memory"}`)
	comp := filepath.Join(t.TempDir(), "course")

	out, err := execute(t, "replay", "--config", dir,
		"--trace", courseTrace(t), "--start", "0", "--end", "1", "--dt", "100ms", "--out", comp)
	require.NoError(t, err)

	// the run starts at x=2, the first tick outside the start trigger, and
	// stops at x=9 on the face of the end trigger
	assert.Contains(t, out, "run 1")
	assert.Contains(t, out, "700ms")
	assert.Contains(t, out, "7 nodes")
	assert.Contains(t, out, "replay")

	f, err := compfile.Load(comp + ".gcomp")
	require.NoError(t, err)
	require.Len(t, f.Collections, 1)
	assert.Equal(t, 1, f.Collections[0].Len())

	// a second pass against the saved comparison adds to the same collection
	out, err = execute(t, "replay", "--config", dir,
		"--trace", writeTrace(t, 0, 2, 4, 6, 8, 10), "--comp", comp+".gcomp", "--dt", "100ms", "--out", comp)
	require.NoError(t, err)
	assert.Contains(t, out, "400ms")

	f, err = compfile.Load(comp + ".gcomp")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Collections[0].Len())
	assert.Equal(t, 400*time.Millisecond, f.Collections[0].Paths[0].Time())
}

func TestReplay_Direct(t *testing.T) {
	dir := setupConfig(t, `{"type": "memory"}`)

	out, err := execute(t, "replay", "--config", dir,
		"--trace", writeTrace(t, 0, 1, 2, 3, 4, 5), "--direct", "--start", "1", "--end", "4", "--dt", "100ms")
	require.NoError(t, err)
	assert.Contains(t, out, "direct")
	assert.Contains(t, out, "300ms")
	assert.Contains(t, out, "3 nodes")
}

func TestReplay_NoRuns(t *testing.T) {
	dir := setupConfig(t, `{"type": "memory"}`)

	out, err := execute(t, "replay", "--config", dir, "--trace", writeTrace(t, 0, 1, 2))
	require.NoError(t, err)
	assert.Contains(t, out, "no finished runs")
}

func TestReplay_Errors(t *testing.T) {
	dir := setupConfig(t, `{"type": "memory"}`)

	_, err := execute(t, "replay", "--config", dir)
	assert.Error(t, err, "trace is required")

	_, err = execute(t, "replay", "--config", dir, "--trace", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = execute(t, "replay", "--config", dir, "--trace", writeTrace(t, 0), "--dt", "0s")
	assert.Error(t, err)

	_, err = execute(t, "replay", "--config", dir,
		"--trace", writeTrace(t, 0), "--comp", filepath.Join(t.TempDir(), "missing.gcomp"))
	assert.Error(t, err)
}

func TestRuns_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	dir := setupConfig(t, fmt.Sprintf(`{"type": "sqlite", "sqlite": {"path": %q}}`, db))

	_, err := execute(t, "replay", "--config", dir,
		"--trace", courseTrace(t), "--start", "0", "--end", "1", "--dt", "100ms")
	require.NoError(t, err)

	out, err := execute(t, "runs", "--config", dir, "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "RECORDED")
	assert.Contains(t, lines[1], "triggered")
	assert.Contains(t, lines[1], "replay")
	assert.Contains(t, lines[1], "700ms")
}
