package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// Live entity PDUs carry optional fields selected by flag bytes. A nil
// field is left out and its flag bit cleared; flags are always derived from
// the fields on encode.

type unmarshaler[T any] interface {
	*T
	Unmarshal(r *codec.Reader)
}

func readIf[T any, PT unmarshaler[T]](r *codec.Reader, present bool) *T {
	if !present || r.Err() != nil {
		return nil
	}
	v := PT(new(T))
	v.Unmarshal(r)
	return (*T)(v)
}

func uint16If(r *codec.Reader, present bool) *uint16 {
	if !present || r.Err() != nil {
		return nil
	}
	v := r.Uint16()
	return &v
}

func uint32If(r *codec.Reader, present bool) *uint32 {
	if !present || r.Err() != nil {
		return nil
	}
	v := r.Uint32()
	return &v
}

func bit(set bool, n uint) uint8 {
	if set {
		return 1 << n
	}
	return 0
}

func size(set bool, n int) int {
	if set {
		return n
	}
	return 0
}

// TSPI reports time, space and position information for a live entity.
type TSPI struct {
	base
	LiveEntityID     record.EntityID
	Location         record.RelativeWorldCoordinates
	LinearVelocity   *record.LEVector
	Orientation      *record.LEEulerAngles
	PositionError    *record.LEPositionError
	OrientationError *record.LEOrientationError
	DeadReckoning    *record.LEDeadReckoning
	MeasuredSpeed    *uint16
	SystemData       []byte
}

func NewTSPI() *TSPI {
	return ready(&TSPI{base: newBase(enums.PduTypeTSPI)})
}

// Flags returns the flag byte the current optional fields encode to.
func (p *TSPI) Flags() uint8 {
	return bit(p.LinearVelocity != nil, 0) |
		bit(p.Orientation != nil, 1) |
		bit(p.PositionError != nil, 2) |
		bit(p.OrientationError != nil, 3) |
		bit(p.DeadReckoning != nil, 4) |
		bit(p.MeasuredSpeed != nil, 5)
}

func (p *TSPI) bodyLength() int {
	return 16 +
		size(p.LinearVelocity != nil, record.LEVectorSize) +
		size(p.Orientation != nil, record.LEEulerAnglesSize) +
		size(p.PositionError != nil, record.LEPositionErrorSize) +
		size(p.OrientationError != nil, record.LEOrientationErrorSize) +
		size(p.DeadReckoning != nil, record.LEDeadReckoningSize) +
		size(p.MeasuredSpeed != nil, 2) +
		len(p.SystemData)
}

func (p *TSPI) marshalBody(w *codec.Writer) {
	p.LiveEntityID.Marshal(w)
	w.Uint8(p.Flags())
	p.Location.Marshal(w)
	if p.LinearVelocity != nil {
		p.LinearVelocity.Marshal(w)
	}
	if p.Orientation != nil {
		p.Orientation.Marshal(w)
	}
	if p.PositionError != nil {
		p.PositionError.Marshal(w)
	}
	if p.OrientationError != nil {
		p.OrientationError.Marshal(w)
	}
	if p.DeadReckoning != nil {
		p.DeadReckoning.Marshal(w)
	}
	if p.MeasuredSpeed != nil {
		w.Uint16(*p.MeasuredSpeed)
	}
	w.Count8("system specific data length", len(p.SystemData))
	w.Write(p.SystemData)
}

func (p *TSPI) unmarshalBody(r *codec.Reader) {
	p.LiveEntityID.Unmarshal(r)
	flags := r.Uint8()
	p.Location.Unmarshal(r)
	p.LinearVelocity = readIf[record.LEVector](r, flags&0x01 != 0)
	p.Orientation = readIf[record.LEEulerAngles](r, flags&0x02 != 0)
	p.PositionError = readIf[record.LEPositionError](r, flags&0x04 != 0)
	p.OrientationError = readIf[record.LEOrientationError](r, flags&0x08 != 0)
	p.DeadReckoning = readIf[record.LEDeadReckoning](r, flags&0x10 != 0)
	p.MeasuredSpeed = uint16If(r, flags&0x20 != 0)
	n := int(r.Uint8())
	p.SystemData = r.Bytes(r.Count("system specific data", n, 1))
}

// Appearance reports the appearance of a live entity. A second flag byte
// follows the first when any of its fields are present.
type Appearance struct {
	base
	LiveEntityID        record.EntityID
	ForceID             *enums.ForceID
	EntityType          *record.EntityType
	AlternateEntityType *record.EntityType
	Marking             *record.EntityMarking
	Capabilities        *uint32
	VisualAppearance    *uint32
	IRAppearance        *uint32
	EMAppearance        *uint32
	AudioAppearance     *uint32
}

func NewAppearance() *Appearance {
	return ready(&Appearance{base: newBase(enums.PduTypeAppearance)})
}

// Flags returns the two flag bytes the current optional fields encode to.
// Bit 7 of the first byte is set when the second byte is sent. Bit 0 of the
// second byte is unused; EM and audio are bits 1 and 2.
func (p *Appearance) Flags() (uint8, uint8) {
	f2 := bit(p.EMAppearance != nil, 1) | bit(p.AudioAppearance != nil, 2)
	f1 := bit(p.ForceID != nil, 0) |
		bit(p.EntityType != nil, 1) |
		bit(p.AlternateEntityType != nil, 2) |
		bit(p.Marking != nil, 3) |
		bit(p.Capabilities != nil, 4) |
		bit(p.VisualAppearance != nil, 5) |
		bit(p.IRAppearance != nil, 6) |
		bit(f2 != 0, 7)
	return f1, f2
}

func (p *Appearance) bodyLength() int {
	_, f2 := p.Flags()
	return 7 +
		size(f2 != 0, 1) +
		size(p.ForceID != nil, 1) +
		size(p.EntityType != nil, record.EntityTypeSize) +
		size(p.AlternateEntityType != nil, record.EntityTypeSize) +
		size(p.Marking != nil, record.EntityMarkingSize) +
		size(p.Capabilities != nil, 4) +
		size(p.VisualAppearance != nil, 4) +
		size(p.IRAppearance != nil, 4) +
		size(p.EMAppearance != nil, 4) +
		size(p.AudioAppearance != nil, 4)
}

func (p *Appearance) marshalBody(w *codec.Writer) {
	f1, f2 := p.Flags()
	p.LiveEntityID.Marshal(w)
	w.Uint8(f1)
	if f2 != 0 {
		w.Uint8(f2)
	}
	if p.ForceID != nil {
		w.Uint8(uint8(*p.ForceID))
	}
	if p.EntityType != nil {
		p.EntityType.Marshal(w)
	}
	if p.AlternateEntityType != nil {
		p.AlternateEntityType.Marshal(w)
	}
	if p.Marking != nil {
		p.Marking.Marshal(w)
	}
	for _, v := range []*uint32{p.Capabilities, p.VisualAppearance, p.IRAppearance, p.EMAppearance, p.AudioAppearance} {
		if v != nil {
			w.Uint32(*v)
		}
	}
}

func (p *Appearance) unmarshalBody(r *codec.Reader) {
	p.LiveEntityID.Unmarshal(r)
	f1 := r.Uint8()
	var f2 uint8
	if f1&0x80 != 0 {
		f2 = r.Uint8()
	}
	p.ForceID = nil
	if f1&0x01 != 0 && r.Err() == nil {
		f := enums.ForceID(r.Uint8())
		p.ForceID = &f
	}
	p.EntityType = readIf[record.EntityType](r, f1&0x02 != 0)
	p.AlternateEntityType = readIf[record.EntityType](r, f1&0x04 != 0)
	p.Marking = readIf[record.EntityMarking](r, f1&0x08 != 0)
	p.Capabilities = uint32If(r, f1&0x10 != 0)
	p.VisualAppearance = uint32If(r, f1&0x20 != 0)
	p.IRAppearance = uint32If(r, f1&0x40 != 0)
	p.EMAppearance = uint32If(r, f2&0x02 != 0)
	p.AudioAppearance = uint32If(r, f2&0x04 != 0)
}

// ArticulatedParts reports the articulated and attached parts of a live
// entity.
type ArticulatedParts struct {
	base
	LiveEntityID       record.EntityID
	VariableParameters []record.VariableParameter
}

func NewArticulatedParts() *ArticulatedParts {
	return ready(&ArticulatedParts{base: newBase(enums.PduTypeArticulatedParts)})
}

func (p *ArticulatedParts) bodyLength() int {
	return 7 + record.VariableParameterSize*len(p.VariableParameters)
}

func (p *ArticulatedParts) marshalBody(w *codec.Writer) {
	p.LiveEntityID.Marshal(w)
	w.Count8("variable parameters", len(p.VariableParameters))
	record.MarshalVariableParameters(w, p.VariableParameters)
}

func (p *ArticulatedParts) unmarshalBody(r *codec.Reader) {
	p.LiveEntityID.Unmarshal(r)
	p.VariableParameters = record.UnmarshalVariableParameters(r, int(r.Uint8()))
}

// LEFire is the compact fire PDU for live entities.
type LEFire struct {
	base
	FiringEntityID record.EntityID
	TargetEntityID *record.EntityID
	MunitionID     *record.EntityID
	EventID        record.EventID
	Location       record.RelativeWorldCoordinates
	Descriptor     *record.MunitionDescriptor
	Velocity       record.LEVector
	Range          *uint16
}

func NewLEFire() *LEFire {
	return ready(&LEFire{base: newBase(enums.PduTypeLEFire)})
}

// Flags returns the flag byte the current optional fields encode to.
func (p *LEFire) Flags() uint8 {
	return bit(p.TargetEntityID != nil, 0) |
		bit(p.MunitionID != nil, 1) |
		bit(p.Descriptor != nil, 2) |
		bit(p.Range != nil, 3)
}

func (p *LEFire) bodyLength() int {
	return 27 +
		size(p.TargetEntityID != nil, record.EntityIDSize) +
		size(p.MunitionID != nil, record.EntityIDSize) +
		size(p.Descriptor != nil, record.MunitionDescriptorSize) +
		size(p.Range != nil, 2)
}

func (p *LEFire) marshalBody(w *codec.Writer) {
	p.FiringEntityID.Marshal(w)
	w.Uint8(p.Flags())
	if p.TargetEntityID != nil {
		p.TargetEntityID.Marshal(w)
	}
	if p.MunitionID != nil {
		p.MunitionID.Marshal(w)
	}
	p.EventID.Marshal(w)
	p.Location.Marshal(w)
	if p.Descriptor != nil {
		p.Descriptor.Marshal(w)
	}
	p.Velocity.Marshal(w)
	if p.Range != nil {
		w.Uint16(*p.Range)
	}
}

func (p *LEFire) unmarshalBody(r *codec.Reader) {
	p.FiringEntityID.Unmarshal(r)
	flags := r.Uint8()
	p.TargetEntityID = readIf[record.EntityID](r, flags&0x01 != 0)
	p.MunitionID = readIf[record.EntityID](r, flags&0x02 != 0)
	p.EventID.Unmarshal(r)
	p.Location.Unmarshal(r)
	p.Descriptor = readIf[record.MunitionDescriptor](r, flags&0x04 != 0)
	p.Velocity.Unmarshal(r)
	p.Range = uint16If(r, flags&0x08 != 0)
}

// LEDetonation is the compact detonation PDU for live entities.
type LEDetonation struct {
	base
	FiringEntityID      record.EntityID
	TargetEntityID      *record.EntityID
	MunitionID          *record.EntityID
	EventID             record.EventID
	WorldLocation       record.RelativeWorldCoordinates
	Velocity            record.LEVector
	MunitionOrientation *record.LEEulerAngles
	Descriptor          *record.MunitionDescriptor
	EntityLocation      *record.LEVector
	Result              enums.DetonationResult
}

func NewLEDetonation() *LEDetonation {
	return ready(&LEDetonation{base: newBase(enums.PduTypeLEDetonation)})
}

// Flags returns the flag byte the current optional fields encode to.
func (p *LEDetonation) Flags() uint8 {
	return bit(p.TargetEntityID != nil, 0) |
		bit(p.MunitionID != nil, 1) |
		bit(p.MunitionOrientation != nil, 2) |
		bit(p.Descriptor != nil, 3) |
		bit(p.EntityLocation != nil, 4)
}

func (p *LEDetonation) bodyLength() int {
	return 28 +
		size(p.TargetEntityID != nil, record.EntityIDSize) +
		size(p.MunitionID != nil, record.EntityIDSize) +
		size(p.MunitionOrientation != nil, record.LEEulerAnglesSize) +
		size(p.Descriptor != nil, record.MunitionDescriptorSize) +
		size(p.EntityLocation != nil, record.LEVectorSize)
}

func (p *LEDetonation) marshalBody(w *codec.Writer) {
	p.FiringEntityID.Marshal(w)
	w.Uint8(p.Flags())
	if p.TargetEntityID != nil {
		p.TargetEntityID.Marshal(w)
	}
	if p.MunitionID != nil {
		p.MunitionID.Marshal(w)
	}
	p.EventID.Marshal(w)
	p.WorldLocation.Marshal(w)
	p.Velocity.Marshal(w)
	if p.MunitionOrientation != nil {
		p.MunitionOrientation.Marshal(w)
	}
	if p.Descriptor != nil {
		p.Descriptor.Marshal(w)
	}
	if p.EntityLocation != nil {
		p.EntityLocation.Marshal(w)
	}
	w.Uint8(uint8(p.Result))
}

func (p *LEDetonation) unmarshalBody(r *codec.Reader) {
	p.FiringEntityID.Unmarshal(r)
	flags := r.Uint8()
	p.TargetEntityID = readIf[record.EntityID](r, flags&0x01 != 0)
	p.MunitionID = readIf[record.EntityID](r, flags&0x02 != 0)
	p.EventID.Unmarshal(r)
	p.WorldLocation.Unmarshal(r)
	p.Velocity.Unmarshal(r)
	p.MunitionOrientation = readIf[record.LEEulerAngles](r, flags&0x04 != 0)
	p.Descriptor = readIf[record.MunitionDescriptor](r, flags&0x08 != 0)
	p.EntityLocation = readIf[record.LEVector](r, flags&0x10 != 0)
	p.Result = enums.DetonationResult(r.Uint8())
}
