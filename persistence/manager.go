package persistence

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/wordvec/blobstore"
	"github.com/hupe1980/wordvec/vocab"
)

// Options contains configuration options for the persistence manager.
type Options struct {
	// ModelName is the blob name models are saved under.
	ModelName string

	// CompressBackups writes rotated backups lz4-compressed
	// (model_<timestamp>.bak.lz4). The live model blob is never
	// compressed; its format is the compatibility contract.
	CompressBackups bool

	// Clock supplies backup timestamps. Injectable for tests.
	Clock func() time.Time
}

// DefaultOptions contains the default configuration options for the
// persistence manager.
var DefaultOptions = Options{
	ModelName: DefaultModelName,
	Clock:     time.Now,
}

// Manager saves and loads models through a blob store, rotating a
// timestamped backup before every overwrite.
type Manager struct {
	store blobstore.Store
	opts  Options
}

// NewManager creates a persistence manager writing through store.
func NewManager(store blobstore.Store, optFns ...func(o *Options)) *Manager {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ModelName == "" {
		opts.ModelName = DefaultModelName
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Manager{
		store: store,
		opts:  opts,
	}
}

// ModelName returns the blob name models are saved under.
func (m *Manager) ModelName() string {
	return m.opts.ModelName
}

// backupName derives the rotation target for the current model blob:
// model_<timestamp>.bak, with an .lz4 suffix when backups are compressed.
func (m *Manager) backupName() string {
	stem := strings.TrimSuffix(m.opts.ModelName, filepath.Ext(m.opts.ModelName))
	name := fmt.Sprintf("%s_%d%s", stem, m.opts.Clock().UnixNano(), BackupSuffix)
	if m.opts.CompressBackups {
		name += ".lz4"
	}
	return name
}

// Save writes the vocabulary as a model blob. An existing model blob is
// first rotated to a timestamped backup; it is never silently overwritten.
func (m *Manager) Save(ctx context.Context, v *vocab.Vocabulary) error {
	if err := m.rotate(ctx); err != nil {
		return err
	}

	w, err := m.store.Create(ctx, m.opts.ModelName)
	if err != nil {
		return err
	}

	buf := bufio.NewWriterSize(w, 256*1024)
	bw := NewWriter(buf)

	if err := bw.WriteHeader(v.Len(), v.Dims()); err != nil {
		_ = w.Close()
		return err
	}

	var writeErr error
	v.Range(func(word string, e *vocab.Entry) bool {
		writeErr = bw.WriteEntry(word, e.Count, e.Location, e.Context)
		return writeErr == nil
	})
	if writeErr != nil {
		_ = w.Close()
		return writeErr
	}

	if err := buf.Flush(); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// rotate moves an existing model blob aside before a save.
func (m *Manager) rotate(ctx context.Context) error {
	exists, err := blobstore.Exists(ctx, m.store, m.opts.ModelName)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if !m.opts.CompressBackups {
		return m.store.Rename(ctx, m.opts.ModelName, m.backupName())
	}

	b, err := m.store.Open(ctx, m.opts.ModelName)
	if err != nil {
		return err
	}
	data, err := blobstore.ReadAll(ctx, b)
	_ = b.Close()
	if err != nil {
		return err
	}

	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	if err := m.store.Put(ctx, m.backupName(), compressed.Bytes()); err != nil {
		return err
	}
	return m.store.Delete(ctx, m.opts.ModelName)
}

// Load reads the model blob into v.
//
// A dimensionality mismatch between the persisted header and v is reported
// as *ErrFormatMismatch and leaves v unpopulated. When discardCount is set
// (fresh retrain), persisted counts yield to counts from the current
// corpus scan; vectors are restored verbatim either way and entries are
// never re-seeded.
func (m *Manager) Load(ctx context.Context, v *vocab.Vocabulary, discardCount bool) error {
	b, err := m.store.Open(ctx, m.opts.ModelName)
	if err != nil {
		return err
	}
	defer b.Close()

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return err
	}
	defer rc.Close()

	r := NewReader(bufio.NewReaderSize(rc, 256*1024))

	entryCount, dims, err := r.ReadHeader()
	if err != nil {
		return err
	}
	if dims != v.Dims() {
		return &ErrFormatMismatch{Expected: v.Dims(), Actual: dims}
	}

	for i := 0; i < entryCount; i++ {
		word, count, location, context, err := r.ReadEntry(dims)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrCorruptModel, i, err)
		}
		v.Restore(word, count, location, context, discardCount)
	}
	return nil
}

// Backups lists rotated backup blobs, oldest first.
func (m *Manager) Backups(ctx context.Context) ([]string, error) {
	stem := strings.TrimSuffix(m.opts.ModelName, filepath.Ext(m.opts.ModelName))
	return m.store.List(ctx, stem+"_")
}
