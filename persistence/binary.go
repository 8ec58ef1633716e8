package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer writes the binary model format.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	buf   [8]byte
}

// NewWriter creates a model writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		order: binary.LittleEndian,
	}
}

// WriteHeader writes the entry count and dimensionality.
func (w *Writer) WriteHeader(entryCount, dims int) error {
	if err := w.writeInt32(int32(entryCount)); err != nil {
		return err
	}
	return w.writeInt32(int32(dims))
}

// WriteEntry writes one vocabulary entry.
func (w *Writer) WriteEntry(key string, count int, location, context []float64) error {
	if err := w.writeString(key); err != nil {
		return err
	}
	if err := w.writeInt32(int32(count)); err != nil {
		return err
	}
	if err := w.writeFloat64Slice(location); err != nil {
		return err
	}
	return w.writeFloat64Slice(context)
}

func (w *Writer) writeInt32(v int32) error {
	w.order.PutUint32(w.buf[:4], uint32(v))
	_, err := w.w.Write(w.buf[:4])
	return err
}

func (w *Writer) writeString(s string) error {
	if err := w.writeInt32(int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, s)
	return err
}

func (w *Writer) writeFloat64Slice(vec []float64) error {
	for _, v := range vec {
		w.order.PutUint64(w.buf[:8], math.Float64bits(v))
		if _, err := w.w.Write(w.buf[:8]); err != nil {
			return err
		}
	}
	return nil
}

// Reader reads the binary model format.
type Reader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

// NewReader creates a model reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:     r,
		order: binary.LittleEndian,
	}
}

// ReadHeader reads the entry count and dimensionality.
func (r *Reader) ReadHeader() (entryCount, dims int, err error) {
	c, err := r.readInt32()
	if err != nil {
		return 0, 0, err
	}
	d, err := r.readInt32()
	if err != nil {
		return 0, 0, err
	}
	if c < 0 || d < 0 {
		return 0, 0, fmt.Errorf("%w: negative header field", ErrCorruptModel)
	}
	return int(c), int(d), nil
}

// ReadEntry reads one vocabulary entry with the given dimensionality.
func (r *Reader) ReadEntry(dims int) (key string, count int, location, context []float64, err error) {
	key, err = r.readString()
	if err != nil {
		return "", 0, nil, nil, err
	}
	c, err := r.readInt32()
	if err != nil {
		return "", 0, nil, nil, err
	}
	location, err = r.readFloat64Slice(dims)
	if err != nil {
		return "", 0, nil, nil, err
	}
	context, err = r.readFloat64Slice(dims)
	if err != nil {
		return "", 0, nil, nil, err
	}
	return key, int(c), location, context, nil
}

func (r *Reader) readInt32() (int32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(r.buf[:4])), nil
}

func (r *Reader) readString() (string, error) {
	n, err := r.readInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length", ErrCorruptModel)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) readFloat64Slice(n int) ([]float64, error) {
	vec := make([]float64, n)
	for i := range vec {
		if _, err := io.ReadFull(r.r, r.buf[:8]); err != nil {
			return nil, err
		}
		vec[i] = math.Float64frombits(r.order.Uint64(r.buf[:8]))
	}
	return vec, nil
}
