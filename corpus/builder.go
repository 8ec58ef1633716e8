package corpus

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/wordvec/vocab"
)

// maxLineSize bounds the scanner buffer for very long corpus lines.
const maxLineSize = 1 << 20 // 1MB

// ProgressFunc receives fractional scan progress in [0, 1].
// Progress is an observable side effect only; callbacks must not mutate
// the vocabulary.
type ProgressFunc func(fraction float64)

// Options contains configuration options for the vocabulary builder.
type Options struct {
	// MaxVocab is the vocabulary size that triggers an incremental
	// compaction pass, bounding memory on very large corpora.
	MaxVocab int

	// MinCount is the minimum occurrence count an entry needs to survive
	// compaction.
	MinCount int

	// Progress, if set, receives fractional progress during the scan.
	Progress ProgressFunc

	// ProgressInterval is the minimum interval between progress callbacks.
	ProgressInterval time.Duration

	// LineFunc, if set, receives every raw corpus line as it is scanned.
	// Used to feed auxiliary consumers such as a line index.
	LineFunc func(line string)
}

// DefaultOptions contains the default configuration options for the
// vocabulary builder.
var DefaultOptions = Options{
	MaxVocab:         1_000_000,
	MinCount:         16,
	ProgressInterval: 250 * time.Millisecond,
}

// Builder streams a corpus and learns word frequencies into a vocabulary.
type Builder struct {
	vocab *vocab.Vocabulary
	opts  Options
}

// NewBuilder creates a vocabulary builder writing into v.
func NewBuilder(v *vocab.Vocabulary, optFns ...func(o *Options)) *Builder {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Builder{
		vocab: v,
		opts:  opts,
	}
}

// LearnFile learns the vocabulary from the corpus file at path.
//
// The corpus is line-oriented with whitespace-delimited tokens; gzip and
// zstd compressed corpora are decompressed transparently based on the file
// extension. A missing file error propagates to the caller and aborts only
// the build step; the vocabulary is left unchanged.
func (b *Builder) LearnFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	counting := &countingReader{r: f}
	r, closeFn, err := decompress(counting, path)
	if err != nil {
		return err
	}
	defer closeFn()

	return b.learn(ctx, r, func() float64 {
		if fi.Size() == 0 {
			return 1
		}
		return float64(counting.BytesRead()) / float64(fi.Size())
	})
}

// Learn learns the vocabulary from an already opened corpus stream.
// Progress is reported as 0 throughout since the total size is unknown.
func (b *Builder) Learn(ctx context.Context, r io.Reader) error {
	return b.learn(ctx, r, func() float64 { return 0 })
}

func (b *Builder) learn(ctx context.Context, r io.Reader, progress func() float64) error {
	limiter := rate.NewLimiter(rate.Every(b.opts.ProgressInterval), 1)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := sc.Text()
		if b.opts.LineFunc != nil {
			b.opts.LineFunc(line)
		}

		for _, token := range strings.Fields(line) {
			if e, ok := b.vocab.Get(token); ok {
				e.Count++
				continue
			}
			e := b.vocab.Create(token)
			b.vocab.Seed(e)

			if b.vocab.Len() > b.opts.MaxVocab {
				b.vocab.Compact(b.opts.MinCount)
			}
		}

		if b.opts.Progress != nil && limiter.Allow() {
			b.opts.Progress(progress())
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	b.vocab.Compact(b.opts.MinCount)

	if b.opts.Progress != nil {
		b.opts.Progress(1)
	}
	return nil
}
