package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timedPath(d time.Duration) *Path {
	p := NewPath()
	p.EndPath(d)
	return p
}

func times(c *PathCollection) []time.Duration {
	out := make([]time.Duration, 0, len(c.Paths))
	for _, p := range c.Paths {
		out = append(out, p.Time())
	}
	return out
}

func TestAdd_Unfiltered_SortedWithStableTies(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCollection("plain")

	var added []*Path
	for i := 0; i < 200; i++ {
		p := timedPath(time.Duration(rng.Intn(20)) * time.Second)
		require.True(t, c.Add(p, nil))
		added = append(added, p)
	}

	require.Len(t, c.Paths, len(added))
	order := make(map[uuid.UUID]int, len(added))
	for i, p := range added {
		order[p.ID] = i
	}
	for i := 1; i < len(c.Paths); i++ {
		prev, cur := c.Paths[i-1], c.Paths[i]
		require.LessOrEqual(t, prev.Time(), cur.Time())
		if prev.Time() == cur.Time() {
			assert.Less(t, order[prev.ID], order[cur.ID], "ties keep insertion order")
		}
	}
}

func TestAdd_Gold_KeepsMinimumAtFront(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := NewCollection("gold")

	best := time.Duration(1<<62 - 1)
	for i := 0; i < 200; i++ {
		d := time.Duration(rng.Intn(1000)) * time.Millisecond
		admitted := c.Add(timedPath(d), Gold())

		assert.Equal(t, d < best, admitted)
		if d < best {
			best = d
		}
		assert.Equal(t, best, c.Paths[0].Time())
	}
	for i := 1; i < len(c.Paths); i++ {
		assert.Less(t, c.Paths[i-1].Time(), c.Paths[i].Time())
	}
}

func TestAdd_Gold_RejectsTie(t *testing.T) {
	c := NewCollection("gold")
	require.True(t, c.Add(timedPath(time.Second), Gold()))
	assert.False(t, c.Add(timedPath(time.Second), Gold()))
	assert.Equal(t, 1, c.Len())
}

func TestAdd_PathFilter(t *testing.T) {
	c := NewCollection("pinned")
	fast := timedPath(1 * time.Second)
	ref := timedPath(3 * time.Second)
	slow := timedPath(5 * time.Second)
	for _, p := range []*Path{fast, ref, slow} {
		require.True(t, c.Add(p, nil))
	}
	filter := PinnedTo(ref.ID)

	tests := []struct {
		name     string
		time     time.Duration
		admitted bool
		index    int
	}{
		{"faster than everything", 500 * time.Millisecond, true, 0},
		{"between best and reference", 2 * time.Second, true, 2},
		{"ties the reference", 3 * time.Second, false, -1},
		{"slower than reference", 4 * time.Second, false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := timedPath(tt.time)
			before := c.Len()
			assert.Equal(t, tt.admitted, c.Add(p, filter))
			if tt.admitted {
				assert.Equal(t, before+1, c.Len())
				assert.Equal(t, p, c.Paths[tt.index])
			} else {
				assert.Equal(t, before, c.Len())
				assert.Nil(t, c.Path(p.ID))
			}
		})
	}
}

func TestAdd_PathFilter_AbsentReferenceIsOrderedInsert(t *testing.T) {
	c := NewCollection("pinned")
	ref := timedPath(2 * time.Second)
	require.True(t, c.Add(timedPath(time.Second), nil))
	require.True(t, c.Add(ref, nil))
	require.True(t, c.Remove(ref.ID))

	filter := PinnedTo(ref.ID)
	assert.True(t, c.Add(timedPath(10*time.Second), filter))
	assert.True(t, c.Add(timedPath(5*time.Second), filter))
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 10 * time.Second}, times(c))
}

func TestRemoveAndLookup(t *testing.T) {
	c := NewCollection("c")
	a := timedPath(time.Second)
	b := timedPath(2 * time.Second)
	c.Add(a, nil)
	c.Add(b, nil)

	assert.Equal(t, a, c.Path(a.ID))
	assert.Equal(t, a, c.Best())
	assert.True(t, c.Remove(a.ID))
	assert.False(t, c.Remove(a.ID))
	assert.Nil(t, c.Path(a.ID))
	assert.Equal(t, b, c.Best())
	assert.False(t, c.Empty())
}

func TestFilterString(t *testing.T) {
	var none *HighPassFilter
	assert.Equal(t, "none", none.String())
	assert.Equal(t, "gold", Gold().String())
	id := uuid.New()
	assert.Equal(t, "path("+id.String()+")", PinnedTo(id).String())
}
