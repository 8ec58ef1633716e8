package bigram

import (
	"bufio"
	"io"
	"strings"
)

// Joiner is the character joining the words of a collapsed phrase token.
const Joiner = "_"

// substitution is one spaced-form to joined-token replacement.
type substitution struct {
	spaced string
	joined string
}

// Table maps space-joined phrases to their canonical joined-token form.
//
// Substitutions are applied in registration order. With overlapping
// candidate phrases this produces order-dependent tokenization; the
// behavior is kept deliberately (no longest-match priority) to stay
// compatible with the phrase preprocessing pipeline.
type Table struct {
	subs  []substitution
	index map[string]string
}

// New creates an empty Table.
func New() *Table {
	return &Table{
		index: make(map[string]string),
	}
}

// Len returns the number of registered substitutions.
func (t *Table) Len() int {
	return len(t.subs)
}

// Register adds a substitution for the given joined token. Tokens without
// the joiner and duplicates are ignored.
func (t *Table) Register(joined string) {
	if !strings.Contains(joined, Joiner) {
		return
	}
	spaced := strings.ReplaceAll(joined, Joiner, " ")
	if _, ok := t.index[spaced]; ok {
		return
	}
	t.index[spaced] = joined
	t.subs = append(t.subs, substitution{spaced: spaced, joined: joined})
}

// Lookup returns the joined token registered for a space-joined phrase.
func (t *Table) Lookup(spaced string) (string, bool) {
	joined, ok := t.index[spaced]
	return joined, ok
}

// Load reads one joined token per line from r, registers each, and returns
// the tokens in file order. Blank lines are skipped.
func (t *Table) Load(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		t.Register(tok)
		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// RegisterWords registers a substitution for every word that contains the
// joiner. Used to pick up joined tokens already present in a vocabulary.
func (t *Table) RegisterWords(words []string) {
	for _, w := range words {
		t.Register(w)
	}
}

// Tokenize applies every registered substitution to phrase by literal
// string replacement, one substitution per table entry in table order, then
// splits the result on whitespace. It is a no-op split when the table is
// empty, deterministic given a fixed table, and idempotent: re-tokenizing
// already-substituted output changes nothing.
func (t *Table) Tokenize(phrase string) []string {
	for _, s := range t.subs {
		phrase = strings.ReplaceAll(phrase, s.spaced, s.joined)
	}
	return strings.Fields(phrase)
}
