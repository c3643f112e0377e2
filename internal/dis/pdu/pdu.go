// Package pdu models the 72 DIS PDU types and encodes and decodes them.
//
// Every PDU is a pointer to a struct that embeds the common Header. Build
// one with its constructor (NewEntityState, NewFire, ...) or with New,
// change the fields, and call Marshal. Decode, Unmarshal and UnmarshalBody
// go the other way. Counts, lengths and presence flags are derived from the
// fields when encoding and are not stored separately.
//
// All functions are stateless and safe for concurrent use on distinct
// values.
package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

// PDU is implemented by the 72 body types of this package and by nothing
// else.
type PDU interface {
	Header() *Header
	Type() enums.PduType

	bodyLength() int
	marshalBody(w *codec.Writer)
	unmarshalBody(r *codec.Reader)
}

type base struct {
	hdr Header
}

func newBase(t enums.PduType) base { return base{hdr: newHeader(t)} }

func (b *base) Header() *Header { return &b.hdr }

func (b *base) Type() enums.PduType { return b.hdr.pduType }

// ready sets the declared length of a freshly built PDU.
func ready[P PDU](p P) P {
	p.Header().length = uint16(Length(p))
	return p
}

func name(t enums.PduType) string { return t.String() + " PDU" }

// Length returns the number of bytes Marshal will produce for p.
func Length(p PDU) int {
	return HeaderSize + p.bodyLength()
}

// Marshal encodes p into a new buffer.
func Marshal(p PDU) ([]byte, error) {
	return Append(nil, p)
}

// Append encodes p after the contents of dst. The header length is
// recomputed and stored in p. On failure dst is returned unchanged.
func Append(dst []byte, p PDU) ([]byte, error) {
	h := p.Header()
	what := name(h.pduType)
	n := Length(p)
	if n > MaxLength {
		return dst, codec.OutOfRange(what+" length", n, MaxLength)
	}
	hdr := *h
	hdr.length = uint16(n)
	w := codec.NewWriter(dst)
	hdr.marshal(w)
	p.marshalBody(w)
	if err := w.Err(); err != nil {
		return dst, codec.Annotate(err, what)
	}
	if w.Len() != n {
		return dst, codec.LengthMismatch(what, n, w.Len())
	}
	h.length = hdr.length
	return w.Bytes(), nil
}

// Unmarshal decodes the PDU at the start of b. Bytes past the declared
// length are ignored.
func Unmarshal(b []byte) (PDU, error) {
	p, _, err := Decode(b)
	return p, err
}

// Decode decodes the PDU at the start of b and reports how many bytes it
// occupied, so a buffer of concatenated PDUs can be walked.
func Decode(b []byte) (PDU, int, error) {
	h, _, err := DecodeHeader(b)
	if err != nil {
		return nil, 0, err
	}
	if !supported(h.pduType) {
		return nil, 0, codec.Unsupported(uint8(h.pduType))
	}
	n := int(h.length)
	if n < HeaderSize {
		return nil, 0, codec.LengthMismatch(name(h.pduType), n, HeaderSize)
	}
	if n > len(b) {
		return nil, 0, codec.Truncated(name(h.pduType), n, len(b), 0)
	}
	p, err := UnmarshalBody(h, b[HeaderSize:n])
	if err != nil {
		return nil, 0, err
	}
	return p, n, nil
}

// DecodeAll decodes every PDU packed into b, as DIS applications do when
// they bundle several PDUs into one datagram. Fewer than HeaderSize bytes
// left over after the last PDU are treated as padding. On error the PDUs
// decoded so far are returned with it.
func DecodeAll(b []byte) ([]PDU, error) {
	var out []PDU
	for len(b) >= HeaderSize {
		p, n, err := Decode(b)
		if err != nil {
			return out, err
		}
		out = append(out, p)
		b = b[n:]
	}
	if len(out) == 0 {
		return nil, codec.Truncated("header", HeaderSize, len(b), 0)
	}
	return out, nil
}

// UnmarshalBody decodes a body whose header was already read. body starts
// right after the header; h.Length bounds how much of it is consumed.
func UnmarshalBody(h Header, body []byte) (PDU, error) {
	p, err := New(h.pduType)
	if err != nil {
		return nil, err
	}
	what := name(h.pduType)
	n := int(h.length) - HeaderSize
	if n < 0 {
		return nil, codec.LengthMismatch(what, int(h.length), HeaderSize)
	}
	if len(body) < n {
		return nil, codec.Truncated(what, int(h.length), HeaderSize+len(body), HeaderSize+len(body))
	}
	body = body[:n]
	r := codec.NewReaderAt(body, HeaderSize)
	p.unmarshalBody(r)
	if err := r.Err(); err != nil {
		return nil, codec.Annotate(err, what)
	}
	if left := r.Remaining(); left != 0 {
		return nil, codec.LengthMismatch(what, int(h.length), int(h.length)-left)
	}
	*p.Header() = h
	return p, nil
}

// Peek returns the type code of the PDU at the start of b without decoding
// it. Unknown codes are returned as is.
func Peek(b []byte) (enums.PduType, error) {
	if len(b) < 3 {
		return 0, codec.Truncated("header", 3, len(b), 0)
	}
	return enums.PduType(b[2]), nil
}

// SupportedTypes lists every type New and Decode accept.
func SupportedTypes() []enums.PduType {
	return enums.PduTypes()
}

func supported(t enums.PduType) bool {
	return t >= enums.PduTypeEntityState && t <= enums.MaxPduType
}
