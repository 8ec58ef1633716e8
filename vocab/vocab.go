package vocab

import (
	"math/rand"
	"time"
)

// Entry is a word's embedding record.
//
// Location holds the "what this word is" embedding, Context the "what
// surrounds this word" embedding. Both vectors always have exactly the
// vocabulary's dimensionality; there are no partial vectors.
type Entry struct {
	// Count is the word's occurrence frequency in the corpus.
	Count int
	// Location is the location embedding vector.
	Location []float64
	// Context is the context embedding vector.
	Context []float64
}

// Options contains configuration options for a Vocabulary.
type Options struct {
	// RandomSeed is the seed for the generator used to seed entry vectors.
	// If nil, a time-based seed is used.
	RandomSeed *int64
}

// DefaultOptions contains the default configuration options for a Vocabulary.
var DefaultOptions = Options{
	RandomSeed: nil,
}

// Vocabulary is the owned mapping from word to embedding entry.
//
// The vocabulary exclusively owns every entry; callers may mutate entry
// vectors in place (the trainer does) but must not retain entries across
// a compaction pass.
type Vocabulary struct {
	dims    int
	entries map[string]*Entry
	rng     *rand.Rand
}

// New creates a new empty Vocabulary with the given fixed dimensionality.
// The dimensionality is immutable for the lifetime of the vocabulary.
func New(dims int, optFns ...func(o *Options)) *Vocabulary {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	seed := time.Now().UnixNano()
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}

	return &Vocabulary{
		dims:    dims,
		entries: make(map[string]*Entry),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Dims returns the fixed vector dimensionality.
func (v *Vocabulary) Dims() int {
	return v.dims
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Get returns the entry for word, if present.
func (v *Vocabulary) Get(word string) (*Entry, bool) {
	e, ok := v.entries[word]
	return e, ok
}

// Create inserts a fresh entry for word with Count 1 and zero vectors.
// If an entry already exists it is returned unchanged; a vocabulary never
// contains two entries with the same key.
func (v *Vocabulary) Create(word string) *Entry {
	if e, ok := v.entries[word]; ok {
		return e
	}
	e := &Entry{
		Count:    1,
		Location: make([]float64, v.dims),
		Context:  make([]float64, v.dims),
	}
	v.entries[word] = e
	return e
}

// Seed initializes the entry's vectors with pseudo-random values drawn
// independently and uniformly from (-0.5, 0.5]. Seeding happens once, at
// entry creation time; loaded entries are never re-seeded.
func (v *Vocabulary) Seed(e *Entry) {
	for i := 0; i < v.dims; i++ {
		e.Location[i] = 0.5 - v.rng.Float64()
		e.Context[i] = 0.5 - v.rng.Float64()
	}
}

// Compact removes every entry whose count is below minCount and returns the
// number of removed entries. It is used incrementally during the corpus scan
// to bound memory and once more at the end of the build phase.
func (v *Vocabulary) Compact(minCount int) int {
	removed := 0
	for word, e := range v.entries {
		if e.Count < minCount {
			delete(v.entries, word)
			removed++
		}
	}
	return removed
}

// Range calls fn for every entry until fn returns false.
// Iteration order is unspecified and not stable across runs.
func (v *Vocabulary) Range(fn func(word string, e *Entry) bool) {
	for word, e := range v.entries {
		if !fn(word, e) {
			return
		}
	}
}

// Words returns all words currently in the vocabulary, in unspecified order.
func (v *Vocabulary) Words() []string {
	words := make([]string, 0, len(v.entries))
	for word := range v.entries {
		words = append(words, word)
	}
	return words
}

// Restore reinstates a persisted entry. Vectors are restored verbatim. If
// the word is already present (from a fresh corpus scan) and discardCount is
// true, the freshly scanned count wins; otherwise the persisted count is
// restored. Restored entries are never re-seeded.
func (v *Vocabulary) Restore(word string, count int, location, context []float64, discardCount bool) {
	if e, ok := v.entries[word]; ok {
		copy(e.Location, location)
		copy(e.Context, context)
		if !discardCount {
			e.Count = count
		}
		return
	}

	e := &Entry{
		Count:    count,
		Location: make([]float64, v.dims),
		Context:  make([]float64, v.dims),
	}
	copy(e.Location, location)
	copy(e.Context, context)
	v.entries[word] = e
}
