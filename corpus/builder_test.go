package corpus

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/wordvec/vocab"
)

func newVocab(t *testing.T, dims int) *vocab.Vocabulary {
	t.Helper()
	seed := int64(42)
	return vocab.New(dims, func(o *vocab.Options) {
		o.RandomSeed = &seed
	})
}

func TestLearn(t *testing.T) {
	v := newVocab(t, 4)
	b := NewBuilder(v, func(o *Options) {
		o.MinCount = 1
	})

	corpus := "the cat sat\nthe cat ran\nthe dog barked\n"
	require.NoError(t, b.Learn(context.Background(), strings.NewReader(corpus)))

	e, ok := v.Get("the")
	require.True(t, ok)
	assert.Equal(t, 3, e.Count)

	e, ok = v.Get("cat")
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)

	e, ok = v.Get("barked")
	require.True(t, ok)
	assert.Equal(t, 1, e.Count)

	// New entries are seeded at creation.
	assert.NotEqual(t, make([]float64, 4), e.Location)
}

func TestLearnFinalCompaction(t *testing.T) {
	v := newVocab(t, 2)
	b := NewBuilder(v, func(o *Options) {
		o.MinCount = 2
	})

	require.NoError(t, b.Learn(context.Background(), strings.NewReader("a a b\n")))

	_, ok := v.Get("a")
	assert.True(t, ok)
	_, ok = v.Get("b")
	assert.False(t, ok, "singleton should be pruned by the final compaction")
}

func TestLearnBoundsVocabulary(t *testing.T) {
	v := newVocab(t, 2)
	b := NewBuilder(v, func(o *Options) {
		o.MaxVocab = 3
		o.MinCount = 2
	})

	// "common" repeats; the one-off words trip the incremental compaction.
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("common unique")
		sb.WriteString(string(rune('a' + i%26)))
		sb.WriteString(string(rune('a' + i/26)))
		sb.WriteString(" common\n")
	}
	require.NoError(t, b.Learn(context.Background(), strings.NewReader(sb.String())))

	_, ok := v.Get("common")
	assert.True(t, ok)
	assert.LessOrEqual(t, v.Len(), 4)
}

func TestLearnFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nhello again\n"), 0o644))

	v := newVocab(t, 2)
	b := NewBuilder(v, func(o *Options) {
		o.MinCount = 1
	})

	var final float64
	b.opts.Progress = func(f float64) { final = f }

	require.NoError(t, b.LearnFile(context.Background(), path))
	assert.Equal(t, 1.0, final)

	e, ok := v.Get("hello")
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)
}

func TestLearnFileMissing(t *testing.T) {
	v := newVocab(t, 2)
	b := NewBuilder(v)

	err := b.LearnFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, v.Len())
}

func TestLearnFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("alpha beta\nalpha gamma\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	v := newVocab(t, 2)
	b := NewBuilder(v, func(o *Options) {
		o.MinCount = 1
	})
	require.NoError(t, b.LearnFile(context.Background(), path))

	e, ok := v.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 2, e.Count)
}
