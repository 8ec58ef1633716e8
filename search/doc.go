// Package search implements similarity queries over an embedding
// vocabulary: cosine scoring and bounded top-k nearest-neighbor search by
// brute-force scan. No index is built; a query is O(vocabulary size x
// dimensionality), which is the intended trade-off for offline and
// interactive exploratory use.
package search
