package codec

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestAppendUint(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"uint16 zero", AppendUint16(nil, 0), []byte{0x00, 0x00}},
		{"uint16", AppendUint16(nil, 0x0102), []byte{0x01, 0x02}},
		{"uint16 DIS port", AppendUint16(nil, 3000), []byte{0x0B, 0xB8}},
		{"uint32", AppendUint32(nil, 0x01020304), []byte{0x01, 0x02, 0x03, 0x04}},
		{"uint32 max", AppendUint32(nil, math.MaxUint32), []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"uint64", AppendUint64(nil, 0x0102030405060708), []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}},
		{"appends to existing", AppendUint16([]byte{0xAA}, 0x0102), []byte{0xAA, 0x01, 0x02}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		n, align, want int
	}{
		{0, 8, 0},
		{1, 8, 7},
		{8, 8, 0},
		{9, 8, 7},
		{6, 4, 2},
		{12, 4, 0},
	}
	for _, tt := range tests {
		if got := Pad(tt.n, tt.align); got != tt.want {
			t.Errorf("Pad(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}

func TestWriterFields(t *testing.T) {
	w := NewWriter([]byte{0xEE})
	w.Uint8(1)
	w.Int16(-2)
	w.Float32(1.5)
	w.Float64(-0.25)
	w.Write([]byte{9, 9})
	w.Zero(2)

	want := []byte{
		0xEE,
		0x01,
		0xFF, 0xFE,
		0x3F, 0xC0, 0x00, 0x00,
		0xBF, 0xD0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x09, 0x09,
		0x00, 0x00,
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = %v, want %v", w.Bytes(), want)
	}
	if w.Len() != len(want)-1 {
		t.Errorf("Len() = %d, want %d", w.Len(), len(want)-1)
	}
}

func TestWriterAlignIsRelativeToStart(t *testing.T) {
	w := NewWriter([]byte{1, 2, 3})
	w.Uint8(7)
	w.Align(4)
	if w.Len() != 4 {
		t.Errorf("Len() = %d, want 4", w.Len())
	}
}

func TestWriterCountOverflow(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
	}{
		{"count8", func(w *Writer) { w.Count8("beams", 256) }},
		{"count16", func(w *Writer) { w.Count16("records", 70000) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(nil)
			tt.write(w)
			w.Uint8(1)
			if !errors.Is(w.Err(), ErrValueOutOfRange) {
				t.Fatalf("Err() = %v, want ErrValueOutOfRange", w.Err())
			}
			if w.Len() != 0 {
				t.Errorf("Len() = %d, want writes dropped after failure", w.Len())
			}
		})
	}
}

func TestReaderFields(t *testing.T) {
	r := NewReader([]byte{
		0x01,
		0xFF, 0xFE,
		0x3F, 0xC0, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2A,
		0x05, 0x06,
	})
	if got := r.Uint8(); got != 1 {
		t.Errorf("Uint8() = %d, want 1", got)
	}
	if got := r.Int16(); got != -2 {
		t.Errorf("Int16() = %d, want -2", got)
	}
	if got := r.Float32(); got != 1.5 {
		t.Errorf("Float32() = %v, want 1.5", got)
	}
	if got := r.Uint64(); got != 42 {
		t.Errorf("Uint64() = %d, want 42", got)
	}
	if got := r.Rest(); !bytes.Equal(got, []byte{5, 6}) {
		t.Errorf("Rest() = %v, want [5 6]", got)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestReaderTruncationIsSticky(t *testing.T) {
	r := NewReaderAt([]byte{0x01, 0x02, 0x03}, 12)
	r.Uint16()
	if got := r.Uint32(); got != 0 {
		t.Errorf("Uint32() = %d, want 0 after short read", got)
	}
	if got := r.Uint8(); got != 0 {
		t.Errorf("Uint8() = %d, want 0 after failure", got)
	}

	var e *Error
	if !errors.As(r.Err(), &e) {
		t.Fatalf("Err() = %v, want *Error", r.Err())
	}
	if !errors.Is(e, ErrTruncated) {
		t.Errorf("Kind = %v, want ErrTruncated", e.Kind)
	}
	if e.Need != 4 || e.Have != 1 || e.Offset != 14 {
		t.Errorf("Need/Have/Offset = %d/%d/%d, want 4/1/14", e.Need, e.Have, e.Offset)
	}
}

func TestReaderBytesZeroIsNil(t *testing.T) {
	r := NewReader([]byte{1})
	if got := r.Bytes(0); got != nil {
		t.Errorf("Bytes(0) = %v, want nil", got)
	}
}

func TestReaderCount(t *testing.T) {
	r := NewReader(make([]byte, 16))
	if got := r.Count("supplies", 2, 8); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if got := r.Count("supplies", 3, 8); got != 0 {
		t.Errorf("Count() = %d, want 0 on overrun", got)
	}
	if !errors.Is(r.Err(), ErrMalformedRecord) {
		t.Errorf("Err() = %v, want ErrMalformedRecord", r.Err())
	}
}

func TestReaderSub(t *testing.T) {
	r := NewReaderAt([]byte{0xAA, 0x01, 0x02, 0x03, 0xBB}, 12)
	r.Uint8()
	sub := r.Sub("system", 3)
	if sub.Offset() != 13 {
		t.Errorf("sub.Offset() = %d, want 13", sub.Offset())
	}
	if got := sub.Uint16(); got != 0x0102 {
		t.Errorf("sub.Uint16() = %#x, want 0x0102", got)
	}
	if got := r.Uint8(); got != 0xBB {
		t.Errorf("parent resumed at %#x, want 0xBB", got)
	}

	sub.Uint16()
	r.Merge(sub, "system")
	if !errors.Is(r.Err(), ErrMalformedRecord) {
		t.Errorf("Merge: Err() = %v, want ErrMalformedRecord", r.Err())
	}
}

func TestReaderSubOverrun(t *testing.T) {
	r := NewReader([]byte{1, 2})
	sub := r.Sub("beam", 4)
	if !errors.Is(r.Err(), ErrMalformedRecord) {
		t.Errorf("Err() = %v, want ErrMalformedRecord", r.Err())
	}
	if sub.Err() == nil {
		t.Error("child reader should carry the failure")
	}
}

func TestReaderAlign(t *testing.T) {
	r := NewReaderAt([]byte{1, 0, 0, 0, 7}, 12)
	r.Uint8()
	r.Align(4)
	if got := r.Uint8(); got != 7 {
		t.Errorf("after Align got %d, want 7", got)
	}
}

func TestAnnotate(t *testing.T) {
	err := Annotate(Truncated("", 4, 1, 20), "Acknowledge")
	if got := err.Error(); got != "Acknowledge truncated at offset 20: 1 bytes available (need 4)" {
		t.Errorf("Error() = %q", got)
	}

	err = Annotate(Malformed("datum", 30, "bad"), "Data")
	var e *Error
	errors.As(err, &e)
	if e.What != "datum" {
		t.Errorf("What = %q, want existing name kept", e.What)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"truncated", Truncated("header", 12, 3, 0), ErrTruncated},
		{"unsupported", Unsupported(200), ErrUnsupportedPDUType},
		{"length_mismatch", LengthMismatch("Comment", 40, 32), ErrLengthMismatch},
		{"out_of_range", OutOfRange("pdu length", 70000, 65535), ErrValueOutOfRange},
		{"malformed", Malformed("beam", 40, "short"), ErrMalformedRecord},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
			wrapped := fmt.Errorf("decode: %w", tt.err)
			if got := KindName(wrapped); got != tt.name {
				t.Errorf("KindName = %q, want %q", got, tt.name)
			}
		})
	}
	if got := KindName(errors.New("socket closed")); got != "other" {
		t.Errorf("KindName(non-codec) = %q, want other", got)
	}
}
