// Package vocab implements the word vocabulary of an embedding store: the
// owned mapping from word to embedding entry, entry creation and seeding,
// and the compaction pass that bounds memory by pruning low-frequency words.
package vocab
