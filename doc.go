// Package wordvec provides an embedded word embedding store for Go.
//
// Wordvec scans a plain-text corpus, learns a frequency-pruned vocabulary
// with a pair of embedding vectors per word (location and context), and
// answers cosine-similarity queries over it, including analogy-style
// vector arithmetic. Models persist to a compact binary format through a
// pluggable blob store (local disk, S3, MinIO, in-memory).
//
// # Quick Start
//
//	ctx := context.Background()
//	store, err := wordvec.New(128).
//	    MinCount(16).
//	    Local("./data").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := store.LearnFile(ctx, "corpus.txt"); err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := store.Nearest(ctx, "king", 10)
//
// # Analogy Queries
//
// A trailing colon flips the sign of a query token's contribution, so
// classic analogies compose directly:
//
//	// location(king) - location(man) + location(woman)
//	results, err := store.Nearest(ctx, "king man: woman", 10)
//
// # Persistence
//
// Models are written through a blobstore.Store. An existing model blob is
// rotated to a timestamped backup before every save:
//
//	if err := store.SaveModel(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// later, or on another host
//	if err := store.LoadModel(ctx, false); err != nil {
//	    log.Fatal(err)
//	}
//
// Cloud mode works the same way through the s3 or minio subpackages:
//
//	blob := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "models/")
//	store, _ := wordvec.New(128).BlobStore(blob).Build()
//
// # Key Features
//
//   - Streaming corpus scan with incremental vocabulary pruning
//   - Phrase tokenization via an ordered bigram substitution table
//   - Exact brute-force top-k cosine search over location or context vectors
//   - Little-endian binary model format with timestamped backup rotation
//   - Cloud-native storage (S3/MinIO via BlobStore) with lz4-compressed backups
//   - Optional roaring-bitmap line index for showing example contexts
package wordvec
