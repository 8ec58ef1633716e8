package wordvec_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/wordvec"
	"github.com/hupe1980/wordvec/blobstore"
)

const testCorpus = `the cat sat on the mat
the dog sat on the log
the cat chased the dog
`

func newTestStore(t *testing.T, optFns ...func(b wordvec.Builder) wordvec.Builder) *wordvec.Store {
	t.Helper()

	b := wordvec.New(8).
		MinCount(1).
		RandomSeed(42).
		BlobStore(blobstore.NewMemoryStore())

	for _, fn := range optFns {
		b = fn(b)
	}

	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func TestLearn(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Learn(ctx, strings.NewReader(testCorpus)))

	assert.Equal(t, 8, s.Len())

	count, ok := s.Count("the")
	require.True(t, ok)
	assert.Equal(t, 6, count)

	count, ok = s.Count("cat")
	require.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok = s.Count("bird")
	assert.False(t, ok)
}

func TestLearnMinCountPruning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, func(b wordvec.Builder) wordvec.Builder {
		return b.MinCount(2)
	})

	require.NoError(t, s.Learn(ctx, strings.NewReader(testCorpus)))

	_, ok := s.Count("the")
	assert.True(t, ok)
	_, ok = s.Count("chased")
	assert.False(t, ok, "singleton words must be pruned")
}

func TestLearnFileMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.LearnFile(context.Background(), "does-not-exist.txt")
	assert.ErrorIs(t, err, wordvec.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestNearestAnalogy(t *testing.T) {
	ctx := context.Background()
	s := wordvec.New(2).
		BlobStore(blobstore.NewMemoryStore()).
		MustBuild()

	v := s.Vocab()
	for word, loc := range map[string][]float64{
		"king":  {2, 2},
		"man":   {2, 0},
		"woman": {1, 2},
		"queen": {0.5, 2},
	} {
		e := v.Create(word)
		copy(e.Location, loc)
	}

	// king - man + woman = (1, 4); queen is collinear with the query.
	results, err := s.Nearest(ctx, "king man: woman", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "queen", results[0].Word)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "woman", results[1].Word)
}

func TestNearestSentinelSlots(t *testing.T) {
	ctx := context.Background()
	s := wordvec.New(2).
		BlobStore(blobstore.NewMemoryStore()).
		MustBuild()

	e := s.Vocab().Create("solo")
	copy(e.Location, []float64{1, 0})

	results, err := s.Nearest(ctx, "solo", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "solo", results[0].Word)
	for _, r := range results[1:] {
		assert.Empty(t, r.Word)
		assert.Equal(t, float64(-1), r.Score)
	}
}

func TestNearestInvalidK(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Nearest(context.Background(), "anything", 0)
	assert.ErrorIs(t, err, wordvec.ErrInvalidK)
}

func TestSimilarity(t *testing.T) {
	s := wordvec.New(2).
		BlobStore(blobstore.NewMemoryStore()).
		MustBuild()

	v := s.Vocab()
	a := v.Create("a")
	copy(a.Location, []float64{1, 0})
	b := v.Create("b")
	copy(b.Location, []float64{0, 1})
	c := v.Create("c")
	copy(c.Location, []float64{2, 0})

	sim, err := s.Similarity("a", "c")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = s.Similarity("a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	_, err = s.Similarity("a", "missing")
	assert.ErrorIs(t, err, wordvec.ErrNotFound)
}

func TestSaveAndLoadModel(t *testing.T) {
	ctx := context.Background()
	blob := blobstore.NewMemoryStore()

	src := wordvec.New(8).
		MinCount(1).
		RandomSeed(42).
		BlobStore(blob).
		MustBuild()
	require.NoError(t, src.Learn(ctx, strings.NewReader(testCorpus)))
	require.NoError(t, src.SaveModel(ctx))

	dst := wordvec.New(8).
		BlobStore(blob).
		MustBuild()
	require.NoError(t, dst.LoadModel(ctx, false))

	assert.Equal(t, src.Len(), dst.Len())

	want, err := src.Similarity("cat", "dog")
	require.NoError(t, err)
	got, err := dst.Similarity("cat", "dog")
	require.NoError(t, err)
	assert.Equal(t, want, got, "restored vectors must match saved vectors")
}

func TestLoadModelDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	blob := blobstore.NewMemoryStore()

	src := wordvec.New(8).
		MinCount(1).
		BlobStore(blob).
		MustBuild()
	require.NoError(t, src.Learn(ctx, strings.NewReader(testCorpus)))
	require.NoError(t, src.SaveModel(ctx))

	dst := wordvec.New(16).
		BlobStore(blob).
		MustBuild()
	err := dst.LoadModel(ctx, false)

	var mismatch *wordvec.ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 16, mismatch.Expected)
	assert.Equal(t, 8, mismatch.Actual)
	assert.Equal(t, 0, dst.Len())
}

func TestLoadModelMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.LoadModel(context.Background(), false)
	assert.ErrorIs(t, err, wordvec.ErrNotFound)
}

func TestBackups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Learn(ctx, strings.NewReader(testCorpus)))
	require.NoError(t, s.SaveModel(ctx))
	require.NoError(t, s.SaveModel(ctx))

	backups, err := s.Backups(ctx)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestBigramsAndTokenize(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.LoadBigrams(ctx, strings.NewReader("new_york\nsan_francisco\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"i", "love", "new_york"}, s.Tokenize("i love new york"))

	// Loaded tokens join the vocabulary at the prune threshold, seeded.
	count, ok := s.Count("new_york")
	require.True(t, ok)
	assert.Equal(t, 1, count)
	e, _ := s.Vocab().Get("new_york")
	assert.NotEqual(t, make([]float64, 8), e.Location)
}

func TestLearnRegistersJoinedTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Learn(ctx, strings.NewReader("visit new_york today\nnew_york never sleeps\n")))

	assert.Equal(t, []string{"visit", "new_york"}, s.Tokenize("visit new york"))
}

func TestSearchCorpus(t *testing.T) {
	ctx := context.Background()

	s := newTestStore(t, func(b wordvec.Builder) wordvec.Builder {
		return b.IndexCorpus()
	})
	require.NoError(t, s.Learn(ctx, strings.NewReader(testCorpus)))

	matches, err := s.SearchCorpus("cat sat", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "the cat sat on the mat", matches[0].Text)

	matches, err = s.SearchCorpus("bird", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)

	plain := newTestStore(t)
	_, err = plain.SearchCorpus("cat", 10)
	assert.ErrorIs(t, err, wordvec.ErrIndexDisabled)
}

func TestMetricsCollection(t *testing.T) {
	ctx := context.Background()
	metrics := &wordvec.BasicMetricsCollector{}

	s := newTestStore(t, func(b wordvec.Builder) wordvec.Builder {
		return b.Metrics(metrics)
	})

	require.NoError(t, s.Learn(ctx, strings.NewReader(testCorpus)))
	_, err := s.Nearest(ctx, "cat", 3)
	require.NoError(t, err)
	require.NoError(t, s.SaveModel(ctx))
	require.NoError(t, s.LoadModel(ctx, false))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LearnCount)
	assert.Equal(t, int64(1), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Zero(t, stats.SearchErrors)
}
