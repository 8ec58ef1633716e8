package wordvec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/wordvec/bigram"
	"github.com/hupe1980/wordvec/blobstore"
	"github.com/hupe1980/wordvec/corpus"
	"github.com/hupe1980/wordvec/persistence"
	"github.com/hupe1980/wordvec/search"
	"github.com/hupe1980/wordvec/vocab"
)

// Result is one (word, score) pair of a nearest-neighbor query.
type Result = search.Result

// Match is one corpus line returned by SearchCorpus.
type Match = corpus.Match

// Store is a word embedding store. It owns the vocabulary, the bigram
// substitution table, and the persistence manager; queries go through an
// exact brute-force search engine.
//
// Store is not safe for concurrent mutation: learning and loading must
// complete before queries start.
type Store struct {
	vocab    *vocab.Vocabulary
	table    *bigram.Table
	engine   *search.Engine
	scanner  *corpus.Builder
	manager  *persistence.Manager
	index    *corpus.Index
	minCount int
	metrics  MetricsCollector
	logger   *Logger
}

// newStore is the internal constructor used by the builder.
// External users should use wordvec.New(dimension).Build() instead.
func newStore(b Builder, blob blobstore.Store, optFns ...Option) (*Store, error) {
	opts := applyOptions(optFns)

	v := vocab.New(b.dimension, func(o *vocab.Options) {
		o.RandomSeed = b.randomSeed
	})

	table := bigram.New()

	s := &Store{
		vocab:    v,
		table:    table,
		engine:   search.New(v, table),
		minCount: b.minCount,
		metrics:  opts.metrics,
		logger:   opts.logger,
	}

	if b.indexCorpus {
		s.index = corpus.NewIndex()
	}

	s.scanner = corpus.NewBuilder(v, func(o *corpus.Options) {
		o.MinCount = b.minCount
		o.MaxVocab = b.maxVocab
		o.Progress = b.progress
		if s.index != nil {
			o.LineFunc = s.index.Add
		}
	})

	s.manager = persistence.NewManager(blob, func(o *persistence.Options) {
		if b.modelName != "" {
			o.ModelName = b.modelName
		}
		o.CompressBackups = b.compressBackups
	})

	return s, nil
}

// Dimension returns the fixed vector dimensionality.
func (s *Store) Dimension() int {
	return s.vocab.Dims()
}

// Len returns the number of words in the vocabulary.
func (s *Store) Len() int {
	return s.vocab.Len()
}

// Count returns the occurrence count recorded for word.
func (s *Store) Count(word string) (int, bool) {
	e, ok := s.vocab.Get(word)
	if !ok {
		return 0, false
	}
	return e.Count, true
}

// Vocab returns the underlying vocabulary for advanced use such as
// training loops that mutate vectors in place.
func (s *Store) Vocab() *vocab.Vocabulary {
	return s.vocab
}

// Bigrams returns the bigram substitution table.
func (s *Store) Bigrams() *bigram.Table {
	return s.table
}

// LearnFile scans the corpus file at path and learns word frequencies into
// the vocabulary. New words get freshly seeded vectors; words already
// present only have their counts incremented. Gzip and zstd corpora are
// decompressed transparently based on the file extension.
func (s *Store) LearnFile(ctx context.Context, path string) error {
	start := time.Now()
	err := s.scanner.LearnFile(ctx, path)
	if err == nil {
		s.table.RegisterWords(s.vocab.Words())
	}
	s.metrics.RecordLearn(s.vocab.Len(), time.Since(start), err)
	s.logger.LogLearn(ctx, path, s.vocab.Len(), err)
	return translateError(err)
}

// Learn scans an already opened corpus stream. Progress is reported as 0
// throughout since the total size is unknown.
func (s *Store) Learn(ctx context.Context, r io.Reader) error {
	start := time.Now()
	err := s.scanner.Learn(ctx, r)
	if err == nil {
		s.table.RegisterWords(s.vocab.Words())
	}
	s.metrics.RecordLearn(s.vocab.Len(), time.Since(start), err)
	s.logger.LogLearn(ctx, "stream", s.vocab.Len(), err)
	return translateError(err)
}

// LoadBigrams reads one joined phrase token per line from r (e.g.
// "new_york") and registers a substitution for each. Tokens not yet in the
// vocabulary are created with the prune threshold as their count, so a
// later compaction pass does not remove them, and seeded immediately.
// Returns the number of tokens read.
func (s *Store) LoadBigrams(ctx context.Context, r io.Reader) (int, error) {
	tokens, err := s.table.Load(r)
	s.logger.LogBigrams(ctx, len(tokens), err)
	if err != nil {
		return 0, translateError(err)
	}

	for _, token := range tokens {
		if _, ok := s.vocab.Get(token); ok {
			continue
		}
		e := s.vocab.Create(token)
		e.Count = s.minCount
		s.vocab.Seed(e)
	}
	return len(tokens), nil
}

// LoadBigramsFile reads joined phrase tokens from the file at path.
// A missing file is not an error; the table is simply left as is.
func (s *Store) LoadBigramsFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		s.logger.LogBigrams(ctx, 0, err)
		return 0, translateError(err)
	}
	defer f.Close()

	return s.LoadBigrams(ctx, f)
}

// Tokenize applies the bigram substitution table to phrase and splits the
// result on whitespace.
func (s *Store) Tokenize(phrase string) []string {
	return s.table.Tokenize(phrase)
}

// NearestOptions contains options for nearest-neighbor queries.
type NearestOptions struct {
	// UseContext scores candidates against their context vectors instead
	// of their location vectors.
	UseContext bool
}

// Nearest returns the k words most similar to the composed query vector.
//
// The phrase is tokenized through the bigram table; each resolved token's
// location vector contributes to the query, negated when the token carries
// a trailing ":" exclusion marker. Unknown tokens are skipped. Exactly k
// results are returned in descending score order; slots no word claimed
// carry an empty word and score -1.
func (s *Store) Nearest(ctx context.Context, phrase string, k int, optFns ...func(o *NearestOptions)) ([]Result, error) {
	start := time.Now()
	opts := NearestOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	results, err := s.engine.Nearest(phrase, k, opts.UseContext)
	duration := time.Since(start)
	err = translateError(err)
	s.metrics.RecordSearch(k, duration, err)
	s.logger.LogSearch(ctx, k, len(results), err)
	return results, err
}

// Similarity returns the cosine similarity of two words' location vectors.
// An unknown word yields ErrNotFound.
func (s *Store) Similarity(a, b string) (float64, error) {
	ea, ok := s.vocab.Get(a)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, a)
	}
	eb, ok := s.vocab.Get(b)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, b)
	}
	return s.engine.Similarity(ea.Location, eb.Location), nil
}

// SaveModel writes the vocabulary to the configured blob store. An existing
// model blob is rotated to a timestamped backup first.
func (s *Store) SaveModel(ctx context.Context) error {
	start := time.Now()
	err := s.manager.Save(ctx, s.vocab)
	s.metrics.RecordSave(s.vocab.Len(), time.Since(start), err)
	s.logger.LogSave(ctx, s.manager.ModelName(), s.vocab.Len(), err)
	return translateError(err)
}

// LoadModel reads the model blob from the configured blob store into the
// vocabulary. Vectors are restored verbatim and never re-seeded.
//
// A dimensionality mismatch is reported as *ErrDimensionMismatch and leaves
// the vocabulary unpopulated; callers typically log it and continue with a
// fresh model. When discardCount is set (fresh retrain), persisted counts
// yield to counts from the current corpus scan.
func (s *Store) LoadModel(ctx context.Context, discardCount bool) error {
	start := time.Now()
	err := s.manager.Load(ctx, s.vocab, discardCount)
	if err == nil {
		s.table.RegisterWords(s.vocab.Words())
	}
	s.metrics.RecordLoad(s.vocab.Len(), time.Since(start), err)
	s.logger.LogLoad(ctx, s.manager.ModelName(), s.vocab.Len(), err)
	return translateError(err)
}

// Backups lists rotated model backups in the blob store.
func (s *Store) Backups(ctx context.Context) ([]string, error) {
	names, err := s.manager.Backups(ctx)
	return names, translateError(err)
}

// SearchCorpus returns up to limit indexed corpus lines containing every
// word of the query. Requires the store to be built with IndexCorpus.
func (s *Store) SearchCorpus(query string, limit int) ([]Match, error) {
	if s.index == nil {
		return nil, ErrIndexDisabled
	}
	return s.index.Search(query, limit), nil
}
