package pdu

import (
	"fmt"
	"math"
	"time"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

const (
	// HeaderSize is the size of the common PDU header.
	HeaderSize = 12
	// MaxLength is the largest length the header can declare.
	MaxLength = math.MaxUint16
)

// Header is the 12-byte prefix shared by every PDU.
//
// The type, family and length identify the body and are kept consistent by
// the package: the type is fixed when the PDU is built or decoded and the
// length is recomputed on every Marshal.
type Header struct {
	ProtocolVersion enums.ProtocolVersion
	ExerciseID      uint8
	pduType         enums.PduType
	family          enums.ProtocolFamily
	Timestamp       Timestamp
	length          uint16
	// Status is the PDU status record. Bits without a meaning for the
	// type are carried unchanged. For live entity PDUs this byte is the
	// subprotocol number.
	Status  uint8
	Padding uint8
}

func newHeader(t enums.PduType) Header {
	return Header{
		ProtocolVersion: enums.ProtocolVersionIEEE1278_1_2012,
		pduType:         t,
		family:          enums.FamilyOf(t),
	}
}

func (h *Header) PduType() enums.PduType { return h.pduType }

func (h *Header) ProtocolFamily() enums.ProtocolFamily { return h.family }

// Length is the total PDU length as last declared: the value computed by
// the most recent Marshal, or the value read off the wire.
func (h *Header) Length() int { return int(h.length) }

// SetProtocolFamily overrides the family byte. Families other than the
// standard one for the PDU type are only accepted when they are outside
// the known family table, so vendor families can be tagged.
func (h *Header) SetProtocolFamily(f enums.ProtocolFamily) error {
	if f.IsKnown() && f != enums.FamilyOf(h.pduType) {
		return codec.OutOfRangef("protocol family", "%s does not carry %s PDUs", f, h.pduType)
	}
	h.family = f
	return nil
}

// FamilyConsistent reports whether the family byte is the one the standard
// assigns to the PDU type. Decoding never fails on a mismatch.
func (h *Header) FamilyConsistent() bool {
	return h.family == enums.FamilyOf(h.pduType)
}

// TransferredEntity is the TEI status bit.
func (h *Header) TransferredEntity() bool { return h.Status&0x01 != 0 }

// LVC is the live/virtual/constructive indicator (0 none, 1 live, 2
// virtual, 3 constructive).
func (h *Header) LVC() uint8 { return h.Status >> 1 & 0x03 }

// CoupledExtension is the CEI status bit.
func (h *Header) CoupledExtension() bool { return h.Status&0x08 != 0 }

// TypeStatus returns bits 4-5 of the status record. Depending on the PDU
// type this is the fire type (FTI), detonation type (DTI), radio attached
// (RAI), intercom attached (IAI) or IFF mode (ISM/AII) indicator.
func (h *Header) TypeStatus() uint8 { return h.Status >> 4 & 0x03 }

// Subprotocol is the live entity subprotocol number.
func (h *Header) Subprotocol() uint8 { return h.Status }

func (h Header) String() string {
	return fmt.Sprintf("%s exercise=%d family=%s len=%d ts=%s", h.pduType, h.ExerciseID, h.family, h.length, h.Timestamp)
}

func (h *Header) marshal(w *codec.Writer) {
	w.Uint8(uint8(h.ProtocolVersion))
	w.Uint8(h.ExerciseID)
	w.Uint8(uint8(h.pduType))
	w.Uint8(uint8(h.family))
	w.Uint32(uint32(h.Timestamp))
	w.Uint16(h.length)
	w.Uint8(h.Status)
	w.Uint8(h.Padding)
}

// AppendTo appends the header as declared, without recomputing the length.
func (h Header) AppendTo(dst []byte) []byte {
	w := codec.NewWriter(dst)
	h.marshal(w)
	return w.Bytes()
}

// DecodeHeader reads the common header from the start of b. The family byte
// is informational and never rejected.
func DecodeHeader(b []byte) (Header, int, error) {
	if len(b) < HeaderSize {
		return Header{}, 0, codec.Truncated("header", HeaderSize, len(b), 0)
	}
	r := codec.NewReader(b[:HeaderSize])
	h := Header{
		ProtocolVersion: enums.ProtocolVersion(r.Uint8()),
		ExerciseID:      r.Uint8(),
		pduType:         enums.PduType(r.Uint8()),
		family:          enums.ProtocolFamily(r.Uint8()),
		Timestamp:       Timestamp(r.Uint32()),
		length:          r.Uint16(),
		Status:          r.Uint8(),
		Padding:         r.Uint8(),
	}
	return h, HeaderSize, nil
}

// Timestamp is the DIS time stamp: 31 bits of time past the hour in units
// of 3600/2^31 seconds, with the low bit set for absolute time.
type Timestamp uint32

const timestampUnits = 1 << 31

// NewTimestamp encodes an offset into the hour. Offsets of an hour or more
// wrap.
func NewTimestamp(pastHour time.Duration, absolute bool) Timestamp {
	pastHour %= time.Hour
	if pastHour < 0 {
		pastHour += time.Hour
	}
	units := uint64(float64(pastHour) / float64(time.Hour) * timestampUnits)
	if units >= timestampUnits {
		units = timestampUnits - 1
	}
	ts := Timestamp(units << 1)
	if absolute {
		ts |= 1
	}
	return ts
}

// TimestampAt encodes t as an absolute time stamp.
func TimestampAt(t time.Time) Timestamp {
	t = t.UTC()
	return NewTimestamp(t.Sub(t.Truncate(time.Hour)), true)
}

func (t Timestamp) Absolute() bool { return t&1 == 1 }

// Units is the 31-bit time past the hour.
func (t Timestamp) Units() uint32 { return uint32(t) >> 1 }

// PastHour converts the units back to a duration.
func (t Timestamp) PastHour() time.Duration {
	return time.Duration(float64(t.Units()) / timestampUnits * float64(time.Hour))
}

func (t Timestamp) String() string {
	kind := "rel"
	if t.Absolute() {
		kind = "abs"
	}
	return fmt.Sprintf("%s+%s", kind, t.PastHour().Round(time.Microsecond))
}
