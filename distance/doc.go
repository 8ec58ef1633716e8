// Package distance provides vector distance and similarity calculations
// for word embeddings. All functions operate on float64 vectors to match
// the on-disk model precision.
package distance
