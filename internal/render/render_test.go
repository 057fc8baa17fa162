package render

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_MarkAndConsume(t *testing.T) {
	var f Flags
	assert.Equal(t, Dirty(0), f.Peek())

	f.Mark(Paths)
	f.Mark(Triggers)
	assert.True(t, f.Peek().Has(Paths|Triggers))

	got := f.Consume(Paths | Teleports)
	assert.Equal(t, Paths, got)
	assert.Equal(t, Triggers, f.Peek())

	assert.Equal(t, Dirty(0), f.Consume(Paths))
}

func TestFlags_ConcurrentMark(t *testing.T) {
	var f Flags
	var wg sync.WaitGroup
	for _, d := range []Dirty{Paths, Triggers, Teleports, Shapes} {
		wg.Add(1)
		go func(d Dirty) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				f.Mark(d)
			}
		}(d)
	}
	wg.Wait()
	assert.Equal(t, All, f.Peek())
}

func TestDirty_String(t *testing.T) {
	assert.Equal(t, "none", Dirty(0).String())
	assert.Equal(t, "paths|shapes", (Paths | Shapes).String())
	assert.False(t, Paths.Has(0))
}
