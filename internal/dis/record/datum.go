package record

import "github.com/tturner/disgo/internal/dis/codec"

const (
	FixedDatumSize          = 8
	VariableDatumHeaderSize = 8
	DatumSpecificationSize  = 8
)

// FixedDatum is a datum ID with a 32-bit value.
type FixedDatum struct {
	ID    uint32
	Value uint32
}

func (d FixedDatum) Marshal(w *codec.Writer) {
	w.Uint32(d.ID)
	w.Uint32(d.Value)
}

func (d *FixedDatum) Unmarshal(r *codec.Reader) {
	d.ID = r.Uint32()
	d.Value = r.Uint32()
}

func (FixedDatum) Length() int { return FixedDatumSize }

// VariableDatum is a datum ID with a payload of LengthBits bits. Value holds
// exactly ceil(LengthBits/8) bytes; padding to the next 64-bit boundary is
// added on the wire and stripped on read.
type VariableDatum struct {
	ID         uint32
	LengthBits uint32
	Value      []byte
}

// NewVariableDatum wraps a whole-byte payload.
func NewVariableDatum(id uint32, value []byte) VariableDatum {
	return VariableDatum{ID: id, LengthBits: uint32(len(value)) * 8, Value: value}
}

func (d VariableDatum) valueBytes() int {
	return int((uint64(d.LengthBits) + 7) / 8)
}

func (d VariableDatum) Marshal(w *codec.Writer) {
	if len(d.Value) != d.valueBytes() {
		w.Fail(codec.OutOfRangef("variable datum", "%d bits need %d bytes, value has %d", d.LengthBits, d.valueBytes(), len(d.Value)))
		return
	}
	w.Uint32(d.ID)
	w.Uint32(d.LengthBits)
	w.Write(d.Value)
	w.Zero(codec.Pad(len(d.Value), 8))
}

func (d *VariableDatum) Unmarshal(r *codec.Reader) {
	d.ID = r.Uint32()
	d.LengthBits = r.Uint32()
	n := d.valueBytes()
	if r.Count("variable datum", 1, n+codec.Pad(n, 8)) == 0 {
		return
	}
	d.Value = r.Bytes(n)
	r.Skip(codec.Pad(n, 8))
}

// Length is the padded wire size.
func (d VariableDatum) Length() int {
	n := len(d.Value)
	return VariableDatumHeaderSize + n + codec.Pad(n, 8)
}

// DatumSpecification is a fixed datum list followed by a variable datum
// list, each preceded by a 32-bit count.
type DatumSpecification struct {
	Fixed    []FixedDatum
	Variable []VariableDatum
}

func (s DatumSpecification) Marshal(w *codec.Writer) {
	w.Count32("fixed datum records", len(s.Fixed))
	w.Count32("variable datum records", len(s.Variable))
	for _, d := range s.Fixed {
		d.Marshal(w)
	}
	for _, d := range s.Variable {
		d.Marshal(w)
	}
}

func (s *DatumSpecification) Unmarshal(r *codec.Reader) {
	nf := int(r.Uint32())
	nv := int(r.Uint32())
	nf = r.Count("fixed datum records", nf, FixedDatumSize)
	s.Fixed = nil
	for i := 0; i < nf; i++ {
		var d FixedDatum
		d.Unmarshal(r)
		s.Fixed = append(s.Fixed, d)
	}
	nv = r.Count("variable datum records", nv, VariableDatumHeaderSize)
	s.Variable = nil
	for i := 0; i < nv && r.Err() == nil; i++ {
		var d VariableDatum
		d.Unmarshal(r)
		s.Variable = append(s.Variable, d)
	}
}

func (s DatumSpecification) Length() int {
	n := DatumSpecificationSize + FixedDatumSize*len(s.Fixed)
	for _, d := range s.Variable {
		n += d.Length()
	}
	return n
}
