package codec

// Big-endian field codec used by every DIS record and PDU.

import (
	"encoding/binary"
	"errors"
	"math"
)

// AppendUint16 appends a big-endian uint16 to dst.
func AppendUint16(dst []byte, value uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, value)
}

// AppendUint32 appends a big-endian uint32 to dst.
func AppendUint32(dst []byte, value uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, value)
}

// AppendUint64 appends a big-endian uint64 to dst.
func AppendUint64(dst []byte, value uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, value)
}

// Pad returns the number of zero bytes needed to bring n up to a multiple of align.
func Pad(n, align int) int {
	if r := n % align; r != 0 {
		return align - r
	}
	return 0
}

// Writer appends fields to a byte slice. Range problems are recorded with
// Fail and stick; once failed, further writes are dropped.
type Writer struct {
	buf   []byte
	start int
	err   error
}

// NewWriter returns a Writer appending to dst.
func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst, start: len(dst)}
}

// Bytes returns dst with everything written so far appended.
func (w *Writer) Bytes() []byte { return w.buf }

// Len is the number of bytes written since the writer was created.
func (w *Writer) Len() int { return len(w.buf) - w.start }

// Err returns the first failure recorded.
func (w *Writer) Err() error { return w.err }

// Fail records err unless an earlier failure is already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) Uint8(v uint8) {
	if w.err == nil {
		w.buf = append(w.buf, v)
	}
}

func (w *Writer) Uint16(v uint16) {
	if w.err == nil {
		w.buf = AppendUint16(w.buf, v)
	}
}

func (w *Writer) Uint32(v uint32) {
	if w.err == nil {
		w.buf = AppendUint32(w.buf, v)
	}
}

func (w *Writer) Uint64(v uint64) {
	if w.err == nil {
		w.buf = AppendUint64(w.buf, v)
	}
}

func (w *Writer) Int8(v int8)       { w.Uint8(uint8(v)) }
func (w *Writer) Int16(v int16)     { w.Uint16(uint16(v)) }
func (w *Writer) Int32(v int32)     { w.Uint32(uint32(v)) }
func (w *Writer) Int64(v int64)     { w.Uint64(uint64(v)) }
func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }
func (w *Writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

// Write appends raw bytes.
func (w *Writer) Write(b []byte) {
	if w.err == nil {
		w.buf = append(w.buf, b...)
	}
}

// Zero appends n padding bytes.
func (w *Writer) Zero(n int) {
	if w.err == nil {
		for i := 0; i < n; i++ {
			w.buf = append(w.buf, 0)
		}
	}
}

// Align pads with zeros until Len is a multiple of n.
func (w *Writer) Align(n int) {
	w.Zero(Pad(w.Len(), n))
}

// Count8 writes a slice length into an 8-bit count field.
func (w *Writer) Count8(what string, n int) {
	if n > math.MaxUint8 {
		w.Fail(OutOfRange(what, n, math.MaxUint8))
		return
	}
	w.Uint8(uint8(n))
}

// Count16 writes a slice length into a 16-bit count field.
func (w *Writer) Count16(what string, n int) {
	if n > math.MaxUint16 {
		w.Fail(OutOfRange(what, n, math.MaxUint16))
		return
	}
	w.Uint16(uint16(n))
}

// Count32 writes a slice length into a 32-bit count field.
func (w *Writer) Count32(what string, n int) {
	if uint64(n) > math.MaxUint32 {
		w.Fail(OutOfRange(what, n, math.MaxUint32))
		return
	}
	w.Uint32(uint32(n))
}

// Reader consumes fields from a bounded byte slice. The first short read
// records an ErrTruncated error; every later read returns zero.
type Reader struct {
	buf  []byte
	off  int
	base int
	err  error
}

// NewReader reads b from its first byte.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// NewReaderAt reads b, reporting offsets as if b started at base within a
// larger message.
func NewReaderAt(b []byte, base int) *Reader {
	return &Reader{buf: b, base: base}
}

// Err returns the first failure recorded.
func (r *Reader) Err() error { return r.err }

// Offset is the absolute offset of the next unread byte.
func (r *Reader) Offset() int { return r.base + r.off }

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.buf) - r.off
}

// Fail records err unless an earlier failure is already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf)-r.off < n {
		r.err = Truncated("", n, len(r.buf)-r.off, r.Offset())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *Reader) Uint16() uint16 {
	if b := r.take(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}
	return 0
}

func (r *Reader) Uint32() uint32 {
	if b := r.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (r *Reader) Uint64() uint64 {
	if b := r.take(8); b != nil {
		return binary.BigEndian.Uint64(b)
	}
	return 0
}

func (r *Reader) Int8() int8       { return int8(r.Uint8()) }
func (r *Reader) Int16() int16     { return int16(r.Uint16()) }
func (r *Reader) Int32() int32     { return int32(r.Uint32()) }
func (r *Reader) Int64() int64     { return int64(r.Uint64()) }
func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }
func (r *Reader) Float64() float64 { return math.Float64frombits(r.Uint64()) }

// Bytes returns a copy of the next n bytes, or nil when n is zero.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Read fills dst from the input.
func (r *Reader) Read(dst []byte) {
	if b := r.take(len(dst)); b != nil {
		copy(dst, b)
	}
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Align skips padding until Offset is a multiple of n.
func (r *Reader) Align(n int) {
	r.Skip(Pad(r.Offset(), n))
}

// Rest returns a copy of every unread byte.
func (r *Reader) Rest() []byte {
	return r.Bytes(r.Remaining())
}

// Count checks that n elements of at least min bytes each can still be read.
// Counts that overrun the input are malformed records rather than truncation:
// the bytes are there, the declared size is wrong.
func (r *Reader) Count(what string, n, min int) int {
	if r.err != nil {
		return 0
	}
	if n*min > len(r.buf)-r.off {
		r.err = Malformed(what, r.Offset(), "%d entries of %d bytes exceed %d remaining", n, min, len(r.buf)-r.off)
		return 0
	}
	return n
}

// Sub carves the next n bytes out as a child reader for a self-describing
// record. A size larger than what remains is a malformed record.
func (r *Reader) Sub(what string, n int) *Reader {
	child := &Reader{base: r.Offset()}
	if r.err != nil {
		child.err = r.err
		return child
	}
	if n < 0 || n > len(r.buf)-r.off {
		r.err = Malformed(what, r.Offset(), "declared size %d exceeds %d remaining", n, len(r.buf)-r.off)
		child.err = r.err
		return child
	}
	child.buf = r.buf[r.off : r.off+n]
	r.off += n
	return child
}

// Merge folds a child reader's failure into r. Running out of bytes inside a
// record whose size was declared up front means the declared size was wrong.
func (r *Reader) Merge(child *Reader, what string) {
	err := child.Err()
	if err == nil {
		return
	}
	if errors.Is(err, ErrTruncated) {
		err = Malformed(what, child.Offset(), "declared size too small for its fields")
	}
	r.Fail(err)
}
