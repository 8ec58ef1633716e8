// Package corpus implements corpus-facing helpers of the embedding store:
// the streaming vocabulary builder that learns word frequencies from a
// line-oriented corpus with bounded memory, and an inverted line index for
// simple conjunctive text search over the corpus.
package corpus
