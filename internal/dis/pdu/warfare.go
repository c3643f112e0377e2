package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// Fire reports a weapon being fired.
type Fire struct {
	base
	FiringEntityID   record.EntityID
	TargetEntityID   record.EntityID
	MunitionID       record.EntityID
	EventID          record.EventID
	FireMissionIndex uint32
	Location         record.Vector3Double
	Descriptor       record.MunitionDescriptor
	Velocity         record.Vector3Float
	Range            float32
}

func NewFire() *Fire {
	return ready(&Fire{base: newBase(enums.PduTypeFire)})
}

func (p *Fire) bodyLength() int { return 84 }

func (p *Fire) marshalBody(w *codec.Writer) {
	p.FiringEntityID.Marshal(w)
	p.TargetEntityID.Marshal(w)
	p.MunitionID.Marshal(w)
	p.EventID.Marshal(w)
	w.Uint32(p.FireMissionIndex)
	p.Location.Marshal(w)
	p.Descriptor.Marshal(w)
	p.Velocity.Marshal(w)
	w.Float32(p.Range)
}

func (p *Fire) unmarshalBody(r *codec.Reader) {
	p.FiringEntityID.Unmarshal(r)
	p.TargetEntityID.Unmarshal(r)
	p.MunitionID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.FireMissionIndex = r.Uint32()
	p.Location.Unmarshal(r)
	p.Descriptor.Unmarshal(r)
	p.Velocity.Unmarshal(r)
	p.Range = r.Float32()
}

// Detonation reports a munition detonating or impacting.
type Detonation struct {
	base
	FiringEntityID     record.EntityID
	TargetEntityID     record.EntityID
	MunitionID         record.EntityID
	EventID            record.EventID
	Velocity           record.Vector3Float
	Location           record.Vector3Double
	Descriptor         record.MunitionDescriptor
	EntityLocation     record.Vector3Float
	Result             enums.DetonationResult
	VariableParameters []record.VariableParameter
}

func NewDetonation() *Detonation {
	return ready(&Detonation{base: newBase(enums.PduTypeDetonation)})
}

func (p *Detonation) bodyLength() int {
	return 92 + record.VariableParameterSize*len(p.VariableParameters)
}

func (p *Detonation) marshalBody(w *codec.Writer) {
	p.FiringEntityID.Marshal(w)
	p.TargetEntityID.Marshal(w)
	p.MunitionID.Marshal(w)
	p.EventID.Marshal(w)
	p.Velocity.Marshal(w)
	p.Location.Marshal(w)
	p.Descriptor.Marshal(w)
	p.EntityLocation.Marshal(w)
	w.Uint8(uint8(p.Result))
	w.Count8("variable parameters", len(p.VariableParameters))
	w.Zero(2)
	record.MarshalVariableParameters(w, p.VariableParameters)
}

func (p *Detonation) unmarshalBody(r *codec.Reader) {
	p.FiringEntityID.Unmarshal(r)
	p.TargetEntityID.Unmarshal(r)
	p.MunitionID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.Velocity.Unmarshal(r)
	p.Location.Unmarshal(r)
	p.Descriptor.Unmarshal(r)
	p.EntityLocation.Unmarshal(r)
	p.Result = enums.DetonationResult(r.Uint8())
	n := int(r.Uint8())
	r.Skip(2)
	p.VariableParameters = record.UnmarshalVariableParameters(r, n)
}

// DirectedEnergyFire reports the firing of a directed energy weapon.
type DirectedEnergyFire struct {
	base
	FiringEntityID           record.EntityID
	EventID                  record.EventID
	MunitionType             record.EntityType
	ShotStartTime            record.ClockTime
	CumulativeShotTime       float32
	ApertureLocation         record.Vector3Float
	ApertureDiameter         float32
	Wavelength               float32
	PeakIrradiance           float32
	PulseRepetitionFrequency float32
	PulseWidth               int32
	Flags                    uint16
	PulseShape               uint8
	Records                  []record.VariableRecord
}

func NewDirectedEnergyFire() *DirectedEnergyFire {
	return ready(&DirectedEnergyFire{base: newBase(enums.PduTypeDirectedEnergyFire)})
}

func (p *DirectedEnergyFire) bodyLength() int {
	return 76 + record.VariableRecordsLength(p.Records)
}

func (p *DirectedEnergyFire) marshalBody(w *codec.Writer) {
	p.FiringEntityID.Marshal(w)
	p.EventID.Marshal(w)
	p.MunitionType.Marshal(w)
	p.ShotStartTime.Marshal(w)
	w.Float32(p.CumulativeShotTime)
	p.ApertureLocation.Marshal(w)
	w.Float32(p.ApertureDiameter)
	w.Float32(p.Wavelength)
	w.Float32(p.PeakIrradiance)
	w.Float32(p.PulseRepetitionFrequency)
	w.Int32(p.PulseWidth)
	w.Uint16(p.Flags)
	w.Uint8(p.PulseShape)
	w.Zero(7)
	w.Count16("directed energy records", len(p.Records))
	record.MarshalVariableRecords(w, p.Records)
}

func (p *DirectedEnergyFire) unmarshalBody(r *codec.Reader) {
	p.FiringEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.MunitionType.Unmarshal(r)
	p.ShotStartTime.Unmarshal(r)
	p.CumulativeShotTime = r.Float32()
	p.ApertureLocation.Unmarshal(r)
	p.ApertureDiameter = r.Float32()
	p.Wavelength = r.Float32()
	p.PeakIrradiance = r.Float32()
	p.PulseRepetitionFrequency = r.Float32()
	p.PulseWidth = r.Int32()
	p.Flags = r.Uint16()
	p.PulseShape = r.Uint8()
	r.Skip(7)
	p.Records = record.UnmarshalVariableRecords(r, int(r.Uint16()))
}

// EntityDamageStatus reports damage to an entity from directed energy.
type EntityDamageStatus struct {
	base
	DamagedEntityID record.EntityID
	Damage          []record.DirectedEnergyDamage
}

func NewEntityDamageStatus() *EntityDamageStatus {
	return ready(&EntityDamageStatus{base: newBase(enums.PduTypeEntityDamageStatus)})
}

func (p *EntityDamageStatus) bodyLength() int {
	return 12 + record.DirectedEnergyDamageSize*len(p.Damage)
}

func (p *EntityDamageStatus) marshalBody(w *codec.Writer) {
	p.DamagedEntityID.Marshal(w)
	w.Zero(4)
	w.Count16("damage description records", len(p.Damage))
	for _, d := range p.Damage {
		d.Marshal(w)
	}
}

func (p *EntityDamageStatus) unmarshalBody(r *codec.Reader) {
	p.DamagedEntityID.Unmarshal(r)
	r.Skip(4)
	n := r.Count("damage description records", int(r.Uint16()), record.DirectedEnergyDamageSize)
	p.Damage = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var d record.DirectedEnergyDamage
		d.Unmarshal(r)
		p.Damage = append(p.Damage, d)
	}
}
