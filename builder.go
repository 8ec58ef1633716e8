// Package wordvec provides functionalities for an embedded word embedding store.
//
// This file implements the fluent builder API for creating and configuring
// Store instances. The builder is immutable - each method returns a new
// builder with the updated configuration.
package wordvec

import (
	"github.com/hupe1980/wordvec/blobstore"
	"github.com/hupe1980/wordvec/corpus"
)

// New creates a new store builder with the specified vector dimensionality.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	store, err := wordvec.New(128).
//	    MinCount(16).
//	    MaxVocab(1_000_000).
//	    Local("./data").
//	    Build()
func New(dimension int) Builder {
	return Builder{
		dimension: dimension,
		minCount:  corpus.DefaultOptions.MinCount,
		maxVocab:  corpus.DefaultOptions.MaxVocab,
	}
}

// Builder is an immutable fluent builder for creating Store instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	dimension       int
	minCount        int
	maxVocab        int
	randomSeed      *int64
	progress        corpus.ProgressFunc
	indexCorpus     bool
	blob            blobstore.Store
	localPath       string
	modelName       string
	compressBackups bool
	logger          *Logger
	metrics         MetricsCollector
}

// MinCount sets the minimum occurrence count a word needs to survive
// vocabulary compaction.
// Default: 16.
func (b Builder) MinCount(n int) Builder {
	b.minCount = n
	return b
}

// MaxVocab sets the vocabulary size that triggers an incremental compaction
// pass during the corpus scan, bounding memory on very large corpora.
// Default: 1,000,000.
func (b Builder) MaxVocab(n int) Builder {
	b.maxVocab = n
	return b
}

// RandomSeed sets the seed for deterministic vector initialization.
// If not set, a random seed (time-based) is used.
func (b Builder) RandomSeed(seed int64) Builder {
	b.randomSeed = &seed
	return b
}

// Progress sets a callback receiving fractional corpus scan progress in [0, 1].
func (b Builder) Progress(fn corpus.ProgressFunc) Builder {
	b.progress = fn
	return b
}

// IndexCorpus enables the in-memory line index during corpus scans, making
// SearchCorpus available for showing example contexts. Costs memory
// proportional to the corpus size.
func (b Builder) IndexCorpus() Builder {
	b.indexCorpus = true
	return b
}

// Local persists models to the local filesystem under path.
// This is the default, with path ".".
func (b Builder) Local(path string) Builder {
	b.localPath = path
	b.blob = nil
	return b
}

// BlobStore persists models through the given blob store (e.g. s3.New or
// minio.New for cloud storage, blobstore.NewMemoryStore for tests).
func (b Builder) BlobStore(store blobstore.Store) Builder {
	b.blob = store
	return b
}

// ModelName sets the blob name models are saved under.
// Default: "model.bin".
func (b Builder) ModelName(name string) Builder {
	b.modelName = name
	return b
}

// CompressBackups writes rotated model backups lz4-compressed.
func (b Builder) CompressBackups() Builder {
	b.compressBackups = true
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Build creates the Store instance.
func (b Builder) Build() (*Store, error) {
	if b.dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: b.dimension}
	}

	blob := b.blob
	if blob == nil {
		path := b.localPath
		if path == "" {
			path = "."
		}
		var err error
		blob, err = blobstore.NewLocalStore(path)
		if err != nil {
			return nil, err
		}
	}

	var opts []Option
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}

	return newStore(b, blob, opts...)
}

// MustBuild creates the Store instance, panicking on error.
func (b Builder) MustBuild() *Store {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
