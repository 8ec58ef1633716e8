package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSeed(seed int64) func(o *Options) {
	return func(o *Options) {
		o.RandomSeed = &seed
	}
}

func TestCreate(t *testing.T) {
	v := New(4, withSeed(1))

	e := v.Create("cat")
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Count)
	assert.Len(t, e.Location, 4)
	assert.Len(t, e.Context, 4)
	assert.Equal(t, []float64{0, 0, 0, 0}, e.Location)

	// Duplicate create returns the existing entry unchanged.
	e.Count = 7
	again := v.Create("cat")
	assert.Same(t, e, again)
	assert.Equal(t, 7, again.Count)
	assert.Equal(t, 1, v.Len())
}

func TestSeed(t *testing.T) {
	t.Run("Range", func(t *testing.T) {
		v := New(64, withSeed(42))
		e := v.Create("word")
		v.Seed(e)

		for i := 0; i < 64; i++ {
			assert.Greater(t, e.Location[i], -0.5)
			assert.LessOrEqual(t, e.Location[i], 0.5)
			assert.Greater(t, e.Context[i], -0.5)
			assert.LessOrEqual(t, e.Context[i], 0.5)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a := New(8, withSeed(99))
		b := New(8, withSeed(99))

		ea := a.Create("w")
		eb := b.Create("w")
		a.Seed(ea)
		b.Seed(eb)

		assert.Equal(t, ea.Location, eb.Location)
		assert.Equal(t, ea.Context, eb.Context)
	})
}

func TestCompact(t *testing.T) {
	v := New(2, withSeed(1))

	v.Create("cat").Count = 50
	v.Create("dog").Count = 5

	removed := v.Compact(16)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, v.Len())

	_, ok := v.Get("cat")
	assert.True(t, ok)
	_, ok = v.Get("dog")
	assert.False(t, ok)
}

func TestCompactPartition(t *testing.T) {
	v := New(2, withSeed(1))
	counts := map[string]int{"a": 1, "b": 3, "c": 3, "d": 10, "e": 2}
	for w, c := range counts {
		v.Create(w).Count = c
	}

	v.Compact(3)

	// Every retained entry has count >= 3; every removed entry had count < 3.
	v.Range(func(word string, e *Entry) bool {
		assert.GreaterOrEqual(t, e.Count, 3)
		return true
	})
	for w, c := range counts {
		_, ok := v.Get(w)
		assert.Equal(t, c >= 3, ok, "word %q", w)
	}
}

func TestRestore(t *testing.T) {
	loc := []float64{1, 2}
	ctx := []float64{3, 4}

	t.Run("AbsentWord", func(t *testing.T) {
		v := New(2, withSeed(1))
		v.Restore("king", 40, loc, ctx, true)

		e, ok := v.Get("king")
		require.True(t, ok)
		assert.Equal(t, 40, e.Count)
		assert.Equal(t, loc, e.Location)
		assert.Equal(t, ctx, e.Context)
	})

	t.Run("DiscardCountKeepsScanned", func(t *testing.T) {
		v := New(2, withSeed(1))
		e := v.Create("king")
		e.Count = 7

		v.Restore("king", 40, loc, ctx, true)
		assert.Equal(t, 7, e.Count)
		assert.Equal(t, loc, e.Location)
		assert.Equal(t, ctx, e.Context)
	})

	t.Run("RestoreCount", func(t *testing.T) {
		v := New(2, withSeed(1))
		e := v.Create("king")
		e.Count = 7

		v.Restore("king", 40, loc, ctx, false)
		assert.Equal(t, 40, e.Count)
	})
}

func TestWords(t *testing.T) {
	v := New(2, withSeed(1))
	v.Create("a")
	v.Create("b")
	assert.ElementsMatch(t, []string{"a", "b"}, v.Words())
}
