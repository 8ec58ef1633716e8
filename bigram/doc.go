// Package bigram implements the multi-word phrase table of an embedding
// store. Phrases detected by an external preprocessing step are collapsed
// into single joined tokens (words joined by an underscore); the table maps
// the human-readable space-joined form back to the joined token so that
// query phrases tokenize to the same vocabulary keys the corpus produced.
package bigram
