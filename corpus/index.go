package corpus

import (
	"bufio"
	"io"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Match is one corpus line matching a search query.
type Match struct {
	// Line is the zero-based line number in the corpus.
	Line int
	// Text is the full line content.
	Text string
}

// Index is an in-memory inverted index over corpus lines, used by
// interactive consumers to show example contexts for a word or phrase.
// Per word it keeps a roaring bitmap of the line numbers containing it;
// a query intersects the bitmaps of its words.
type Index struct {
	lines    []string
	postings map[string]*roaring.Bitmap
}

// NewIndex creates an empty line index.
func NewIndex() *Index {
	return &Index{
		postings: make(map[string]*roaring.Bitmap),
	}
}

// Len returns the number of indexed lines.
func (idx *Index) Len() int {
	return len(idx.lines)
}

// Add indexes one corpus line.
func (idx *Index) Add(line string) {
	n := uint32(len(idx.lines))
	idx.lines = append(idx.lines, line)

	for _, tok := range strings.Fields(strings.ToLower(line)) {
		bm, ok := idx.postings[tok]
		if !ok {
			bm = roaring.New()
			idx.postings[tok] = bm
		}
		bm.Add(n)
	}
}

// Load indexes every line read from r.
func (idx *Index) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		idx.Add(sc.Text())
	}
	return sc.Err()
}

// Search returns up to limit lines containing every word of the query.
// Matching is case-insensitive on whole tokens. A limit <= 0 means no limit.
func (idx *Index) Search(query string, limit int) []Match {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	var acc *roaring.Bitmap
	for _, w := range words {
		bm, ok := idx.postings[w]
		if !ok {
			return nil
		}
		if acc == nil {
			acc = bm.Clone()
			continue
		}
		acc.And(bm)
		if acc.IsEmpty() {
			return nil
		}
	}

	var matches []Match
	it := acc.Iterator()
	for it.HasNext() {
		n := it.Next()
		matches = append(matches, Match{Line: int(n), Text: idx.lines[n]})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}
