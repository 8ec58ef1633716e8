package search

import (
	"errors"
	"strings"

	"github.com/hupe1980/wordvec/bigram"
	"github.com/hupe1980/wordvec/distance"
	"github.com/hupe1980/wordvec/vocab"
)

// ExclusionMarker is the trailing marker that flips the sign of a query
// token's contribution, enabling analogy-style vector arithmetic:
// "king man: woman" composes location(king) - location(man) + location(woman).
const ExclusionMarker = ":"

// SentinelScore fills result slots that no entry claimed.
const SentinelScore = -1

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// Result is one (word, score) pair of a nearest-neighbor query.
// Unfilled slots carry SentinelScore and an empty word.
type Result struct {
	Word  string
	Score float64
}

// Engine answers similarity queries over a vocabulary. The vocabulary must
// be structurally frozen while the engine is in use; the engine never
// mutates it.
type Engine struct {
	vocab *vocab.Vocabulary
	table *bigram.Table
}

// New creates a search engine over v. The bigram table is used to collapse
// multi-word phrases in queries; it may be empty.
func New(v *vocab.Vocabulary, table *bigram.Table) *Engine {
	return &Engine{
		vocab: v,
		table: table,
	}
}

// Similarity returns the cosine similarity of two vectors. A zero-magnitude
// vector yields 0 rather than an error.
func (e *Engine) Similarity(a, b []float64) float64 {
	return distance.Cosine(a, b)
}

// Compose tokenizes phrase and sums the location vectors of all resolved
// tokens into a single query vector. A token with a trailing exclusion
// marker contributes with a negative sign; tokens not in the vocabulary are
// silently skipped.
func (e *Engine) Compose(phrase string) []float64 {
	query := make([]float64, e.vocab.Dims())

	for _, token := range e.table.Tokenize(phrase) {
		sign := 1.0
		if strings.HasSuffix(token, ExclusionMarker) {
			sign = -1.0
			token = strings.TrimSuffix(token, ExclusionMarker)
		}

		entry, ok := e.vocab.Get(token)
		if !ok {
			continue
		}
		distance.AddScaled(query, entry.Location, sign)
	}

	return query
}

// Nearest returns the k entries most similar to the composed query vector.
//
// Every store entry is scanned and scored with cosine similarity against
// its location vector, or its context vector when useContext is set. The k
// highest scores are kept in descending order; on an exact score tie the
// first-seen entry wins. Exactly k results are always returned; slots no
// entry claimed keep the sentinel score and an empty word.
func (e *Engine) Nearest(phrase string, k int, useContext bool) ([]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	query := e.Compose(phrase)

	results := make([]Result, k)
	for i := range results {
		results[i] = Result{Score: SentinelScore}
	}

	e.vocab.Range(func(word string, entry *vocab.Entry) bool {
		vec := entry.Location
		if useContext {
			vec = entry.Context
		}
		score := distance.Cosine(query, vec)

		for i := 0; i < k; i++ {
			if score > results[i].Score {
				copy(results[i+1:], results[i:k-1])
				results[i] = Result{Word: word, Score: score}
				break
			}
		}
		return true
	})

	return results, nil
}
