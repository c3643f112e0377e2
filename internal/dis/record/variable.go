package record

import (
	"math"

	"github.com/tturner/disgo/internal/dis/codec"
)

const (
	VariableRecordHeaderSize = 6
	SupplyQuantitySize       = 12
	DirectedEnergyDamageSize = 40

	// DirectedEnergyDamageType is the record type of a DE damage description.
	DirectedEnergyDamageType = 4500
)

// VariableRecord is the standard variable record: a 32-bit type, a 16-bit
// length covering the whole record, and the record value. Any padding the
// record type requires is part of Value.
//
// Attribute records, directed energy records, variable transmitter
// parameters and IO records all share this layout.
type VariableRecord struct {
	RecordType uint32
	Value      []byte
}

func (v VariableRecord) Marshal(w *codec.Writer) {
	n := v.Length()
	if n > math.MaxUint16 {
		w.Fail(codec.OutOfRange("variable record length", n, math.MaxUint16))
		return
	}
	w.Uint32(v.RecordType)
	w.Uint16(uint16(n))
	w.Write(v.Value)
}

func (v *VariableRecord) Unmarshal(r *codec.Reader) {
	off := r.Offset()
	v.RecordType = r.Uint32()
	n := int(r.Uint16())
	if r.Err() != nil {
		return
	}
	if n < VariableRecordHeaderSize {
		r.Fail(codec.Malformed("variable record", off, "length %d is shorter than the record header", n))
		return
	}
	v.Value = r.Sub("variable record", n-VariableRecordHeaderSize).Rest()
}

func (v VariableRecord) Length() int { return VariableRecordHeaderSize + len(v.Value) }

// MarshalVariableRecords writes records back to back. The count is written
// by the enclosing PDU.
func MarshalVariableRecords(w *codec.Writer, recs []VariableRecord) {
	for _, v := range recs {
		v.Marshal(w)
	}
}

// UnmarshalVariableRecords reads n records.
func UnmarshalVariableRecords(r *codec.Reader, n int) []VariableRecord {
	n = r.Count("variable records", n, VariableRecordHeaderSize)
	var out []VariableRecord
	for i := 0; i < n && r.Err() == nil; i++ {
		var v VariableRecord
		v.Unmarshal(r)
		out = append(out, v)
	}
	return out
}

// VariableRecordsLength sums the encoded size of recs.
func VariableRecordsLength(recs []VariableRecord) int {
	n := 0
	for _, v := range recs {
		n += v.Length()
	}
	return n
}

// SupplyQuantity is a supply type and the amount offered or received.
type SupplyQuantity struct {
	SupplyType EntityType
	Quantity   float32
}

func (s SupplyQuantity) Marshal(w *codec.Writer) {
	s.SupplyType.Marshal(w)
	w.Float32(s.Quantity)
}

func (s *SupplyQuantity) Unmarshal(r *codec.Reader) {
	s.SupplyType.Unmarshal(r)
	s.Quantity = r.Float32()
}

func (SupplyQuantity) Length() int { return SupplyQuantitySize }

// UnmarshalSupplies reads n supply quantity records.
func UnmarshalSupplies(r *codec.Reader, n int) []SupplyQuantity {
	n = r.Count("supplies", n, SupplyQuantitySize)
	var out []SupplyQuantity
	for i := 0; i < n; i++ {
		var s SupplyQuantity
		s.Unmarshal(r)
		out = append(out, s)
	}
	return out
}

// DirectedEnergyDamage describes damage caused by a directed energy weapon.
// Its record type and length are fixed and validated on read.
type DirectedEnergyDamage struct {
	DamageLocation     Vector3Float
	BeamDiameter       float32
	Temperature        float32
	ComponentID        uint8
	DamageStatus       uint8
	VisualDamageStatus uint8
	VisualSmokeColor   uint8
	FireEventID        EventID
}

func (d DirectedEnergyDamage) Marshal(w *codec.Writer) {
	w.Uint32(DirectedEnergyDamageType)
	w.Uint16(DirectedEnergyDamageSize)
	w.Zero(2)
	d.DamageLocation.Marshal(w)
	w.Float32(d.BeamDiameter)
	w.Float32(d.Temperature)
	w.Uint8(d.ComponentID)
	w.Uint8(d.DamageStatus)
	w.Uint8(d.VisualDamageStatus)
	w.Uint8(d.VisualSmokeColor)
	d.FireEventID.Marshal(w)
	w.Zero(2)
}

func (d *DirectedEnergyDamage) Unmarshal(r *codec.Reader) {
	off := r.Offset()
	typ := r.Uint32()
	n := r.Uint16()
	if r.Err() != nil {
		return
	}
	if typ != DirectedEnergyDamageType || n != DirectedEnergyDamageSize {
		r.Fail(codec.Malformed("directed energy damage", off, "record type %d length %d, want type %d length %d", typ, n, DirectedEnergyDamageType, DirectedEnergyDamageSize))
		return
	}
	r.Skip(2)
	d.DamageLocation.Unmarshal(r)
	d.BeamDiameter = r.Float32()
	d.Temperature = r.Float32()
	d.ComponentID = r.Uint8()
	d.DamageStatus = r.Uint8()
	d.VisualDamageStatus = r.Uint8()
	d.VisualSmokeColor = r.Uint8()
	d.FireEventID.Unmarshal(r)
	r.Skip(2)
}

func (DirectedEnergyDamage) Length() int { return DirectedEnergyDamageSize }
