// Package record holds the data-type records shared by DIS PDU bodies.
//
// Records marshal themselves field by field in standard order onto a
// codec.Writer and read themselves back from a codec.Reader. Length reports
// the exact encoded size without encoding.
package record

import (
	"fmt"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

const (
	SimulationAddressSize  = 4
	EntityIDSize           = 6
	EventIDSize            = 6
	Vector3FloatSize       = 12
	Vector3DoubleSize      = 24
	EulerAnglesSize        = 12
	EntityTypeSize         = 8
	ClockTimeSize          = 8
	EntityMarkingSize      = 12
	DeadReckoningSize      = 40
	VariableParameterSize  = 16
	MunitionDescriptorSize = 16
)

// SimulationAddress identifies a simulation application at a site.
type SimulationAddress struct {
	Site        uint16
	Application uint16
}

func (a SimulationAddress) Marshal(w *codec.Writer) {
	w.Uint16(a.Site)
	w.Uint16(a.Application)
}

func (a *SimulationAddress) Unmarshal(r *codec.Reader) {
	a.Site = r.Uint16()
	a.Application = r.Uint16()
}

func (SimulationAddress) Length() int { return SimulationAddressSize }

func (a SimulationAddress) String() string {
	return fmt.Sprintf("%d:%d", a.Site, a.Application)
}

// EntityID identifies an entity within a simulation application.
type EntityID struct {
	Site        uint16
	Application uint16
	Entity      uint16
}

func (e EntityID) Marshal(w *codec.Writer) {
	w.Uint16(e.Site)
	w.Uint16(e.Application)
	w.Uint16(e.Entity)
}

func (e *EntityID) Unmarshal(r *codec.Reader) {
	e.Site = r.Uint16()
	e.Application = r.Uint16()
	e.Entity = r.Uint16()
}

func (EntityID) Length() int { return EntityIDSize }

func (e EntityID) String() string {
	return fmt.Sprintf("%d:%d:%d", e.Site, e.Application, e.Entity)
}

// EventID correlates related events, e.g. a fire and its detonation.
type EventID struct {
	Site        uint16
	Application uint16
	Event       uint16
}

func (e EventID) Marshal(w *codec.Writer) {
	w.Uint16(e.Site)
	w.Uint16(e.Application)
	w.Uint16(e.Event)
}

func (e *EventID) Unmarshal(r *codec.Reader) {
	e.Site = r.Uint16()
	e.Application = r.Uint16()
	e.Event = r.Uint16()
}

func (EventID) Length() int { return EventIDSize }

// SimulationIdentifier names a simulation application with a reference
// number. It shares the EntityID layout.
type SimulationIdentifier = EntityID

// ObjectID names a synthetic environment object or environmental process.
type ObjectID = EntityID

// AggregateID names an aggregate entity.
type AggregateID = EntityID

// Vector3Float is a single-precision vector.
type Vector3Float struct {
	X, Y, Z float32
}

func (v Vector3Float) Marshal(w *codec.Writer) {
	w.Float32(v.X)
	w.Float32(v.Y)
	w.Float32(v.Z)
}

func (v *Vector3Float) Unmarshal(r *codec.Reader) {
	v.X = r.Float32()
	v.Y = r.Float32()
	v.Z = r.Float32()
}

func (Vector3Float) Length() int { return Vector3FloatSize }

// Vector3Double is a double-precision vector, used for world coordinates.
type Vector3Double struct {
	X, Y, Z float64
}

func (v Vector3Double) Marshal(w *codec.Writer) {
	w.Float64(v.X)
	w.Float64(v.Y)
	w.Float64(v.Z)
}

func (v *Vector3Double) Unmarshal(r *codec.Reader) {
	v.X = r.Float64()
	v.Y = r.Float64()
	v.Z = r.Float64()
}

func (Vector3Double) Length() int { return Vector3DoubleSize }

// EulerAngles is an orientation in radians.
type EulerAngles struct {
	Psi, Theta, Phi float32
}

func (e EulerAngles) Marshal(w *codec.Writer) {
	w.Float32(e.Psi)
	w.Float32(e.Theta)
	w.Float32(e.Phi)
}

func (e *EulerAngles) Unmarshal(r *codec.Reader) {
	e.Psi = r.Float32()
	e.Theta = r.Float32()
	e.Phi = r.Float32()
}

func (EulerAngles) Length() int { return EulerAnglesSize }

// EntityType is the seven-part entity classification.
type EntityType struct {
	Kind        enums.EntityKind
	Domain      uint8
	Country     uint16
	Category    uint8
	Subcategory uint8
	Specific    uint8
	Extra       uint8
}

func (e EntityType) Marshal(w *codec.Writer) {
	w.Uint8(uint8(e.Kind))
	w.Uint8(e.Domain)
	w.Uint16(e.Country)
	w.Uint8(e.Category)
	w.Uint8(e.Subcategory)
	w.Uint8(e.Specific)
	w.Uint8(e.Extra)
}

func (e *EntityType) Unmarshal(r *codec.Reader) {
	e.Kind = enums.EntityKind(r.Uint8())
	e.Domain = r.Uint8()
	e.Country = r.Uint16()
	e.Category = r.Uint8()
	e.Subcategory = r.Uint8()
	e.Specific = r.Uint8()
	e.Extra = r.Uint8()
}

func (EntityType) Length() int { return EntityTypeSize }

func (e EntityType) String() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d.%d.%d", e.Kind, e.Domain, e.Country, e.Category, e.Subcategory, e.Specific, e.Extra)
}

// ClockTime is hours since 1970 plus a timestamp-format offset into the hour.
type ClockTime struct {
	Hour         int32
	TimePastHour uint32
}

func (c ClockTime) Marshal(w *codec.Writer) {
	w.Int32(c.Hour)
	w.Uint32(c.TimePastHour)
}

func (c *ClockTime) Unmarshal(r *codec.Reader) {
	c.Hour = r.Int32()
	c.TimePastHour = r.Uint32()
}

func (ClockTime) Length() int { return ClockTimeSize }

// EntityMarking is a character set code and 11 bytes of marking text.
type EntityMarking struct {
	CharacterSet uint8
	Characters   [11]byte
}

// NewEntityMarking builds an ASCII marking, truncating s to 11 bytes.
func NewEntityMarking(s string) EntityMarking {
	m := EntityMarking{CharacterSet: 1}
	copy(m.Characters[:], s)
	return m
}

// Text returns the marking up to the first NUL.
func (m EntityMarking) Text() string {
	return cString(m.Characters[:])
}

func (m EntityMarking) Marshal(w *codec.Writer) {
	w.Uint8(m.CharacterSet)
	w.Write(m.Characters[:])
}

func (m *EntityMarking) Unmarshal(r *codec.Reader) {
	m.CharacterSet = r.Uint8()
	r.Read(m.Characters[:])
}

func (EntityMarking) Length() int { return EntityMarkingSize }

// DeadReckoningParameters tells receivers how to extrapolate an entity.
type DeadReckoningParameters struct {
	Algorithm          enums.DeadReckoningAlgorithm
	OtherParameters    [15]byte
	LinearAcceleration Vector3Float
	AngularVelocity    Vector3Float
}

func (d DeadReckoningParameters) Marshal(w *codec.Writer) {
	w.Uint8(uint8(d.Algorithm))
	w.Write(d.OtherParameters[:])
	d.LinearAcceleration.Marshal(w)
	d.AngularVelocity.Marshal(w)
}

func (d *DeadReckoningParameters) Unmarshal(r *codec.Reader) {
	d.Algorithm = enums.DeadReckoningAlgorithm(r.Uint8())
	r.Read(d.OtherParameters[:])
	d.LinearAcceleration.Unmarshal(r)
	d.AngularVelocity.Unmarshal(r)
}

func (DeadReckoningParameters) Length() int { return DeadReckoningSize }

// VariableParameter is a 16-byte typed record attached to an entity
// (articulated part, attached part, separation, ...). The 15 bytes after the
// type are kept raw; their layout depends on RecordType.
type VariableParameter struct {
	RecordType enums.VariableParameterType
	Data       [15]byte
}

func (v VariableParameter) Marshal(w *codec.Writer) {
	w.Uint8(uint8(v.RecordType))
	w.Write(v.Data[:])
}

func (v *VariableParameter) Unmarshal(r *codec.Reader) {
	v.RecordType = enums.VariableParameterType(r.Uint8())
	r.Read(v.Data[:])
}

func (VariableParameter) Length() int { return VariableParameterSize }

// MunitionDescriptor describes a fired munition. Burst descriptors share
// this layout.
type MunitionDescriptor struct {
	MunitionType EntityType
	Warhead      uint16
	Fuse         uint16
	Quantity     uint16
	Rate         uint16
}

func (m MunitionDescriptor) Marshal(w *codec.Writer) {
	m.MunitionType.Marshal(w)
	w.Uint16(m.Warhead)
	w.Uint16(m.Fuse)
	w.Uint16(m.Quantity)
	w.Uint16(m.Rate)
}

func (m *MunitionDescriptor) Unmarshal(r *codec.Reader) {
	m.MunitionType.Unmarshal(r)
	m.Warhead = r.Uint16()
	m.Fuse = r.Uint16()
	m.Quantity = r.Uint16()
	m.Rate = r.Uint16()
}

func (MunitionDescriptor) Length() int { return MunitionDescriptorSize }

// MarshalVariableParameters writes a list of variable parameter records. The count
// field is written by the enclosing PDU.
func MarshalVariableParameters(w *codec.Writer, params []VariableParameter) {
	for _, p := range params {
		p.Marshal(w)
	}
}

// UnmarshalVariableParameters reads n variable parameter records.
func UnmarshalVariableParameters(r *codec.Reader, n int) []VariableParameter {
	n = r.Count("variable parameters", n, VariableParameterSize)
	var out []VariableParameter
	for i := 0; i < n; i++ {
		var p VariableParameter
		p.Unmarshal(r)
		out = append(out, p)
	}
	return out
}
