package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// ElectromagneticEmission describes the active emitters of an entity.
type ElectromagneticEmission struct {
	base
	EmittingEntityID record.EntityID
	EventID          record.EventID
	StateUpdate      uint8
	Systems          []record.EmissionSystem
}

func NewElectromagneticEmission() *ElectromagneticEmission {
	return ready(&ElectromagneticEmission{base: newBase(enums.PduTypeElectromagneticEmission)})
}

func (p *ElectromagneticEmission) bodyLength() int {
	n := 16
	for _, s := range p.Systems {
		n += s.Length()
	}
	return n
}

func (p *ElectromagneticEmission) marshalBody(w *codec.Writer) {
	p.EmittingEntityID.Marshal(w)
	p.EventID.Marshal(w)
	w.Uint8(p.StateUpdate)
	w.Count8("emission systems", len(p.Systems))
	w.Zero(2)
	for _, s := range p.Systems {
		s.Marshal(w)
	}
}

func (p *ElectromagneticEmission) unmarshalBody(r *codec.Reader) {
	p.EmittingEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.StateUpdate = r.Uint8()
	n := int(r.Uint8())
	r.Skip(2)
	n = r.Count("emission systems", n, record.EmissionSystemSize)
	p.Systems = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var s record.EmissionSystem
		s.Unmarshal(r)
		p.Systems = append(p.Systems, s)
	}
}

// Designator reports a laser designator spot.
type Designator struct {
	base
	DesignatingEntityID      record.EntityID
	CodeName                 uint16
	DesignatedEntityID       record.EntityID
	DesignatorCode           uint16
	Power                    float32
	Wavelength               float32
	SpotRelativeLocation     record.Vector3Float
	SpotLocation             record.Vector3Double
	DeadReckoningAlgorithm   enums.DeadReckoningAlgorithm
	EntityLinearAcceleration record.Vector3Float
}

func NewDesignator() *Designator {
	return ready(&Designator{base: newBase(enums.PduTypeDesignator)})
}

func (p *Designator) bodyLength() int { return 76 }

func (p *Designator) marshalBody(w *codec.Writer) {
	p.DesignatingEntityID.Marshal(w)
	w.Uint16(p.CodeName)
	p.DesignatedEntityID.Marshal(w)
	w.Uint16(p.DesignatorCode)
	w.Float32(p.Power)
	w.Float32(p.Wavelength)
	p.SpotRelativeLocation.Marshal(w)
	p.SpotLocation.Marshal(w)
	w.Uint8(uint8(p.DeadReckoningAlgorithm))
	w.Zero(3)
	p.EntityLinearAcceleration.Marshal(w)
}

func (p *Designator) unmarshalBody(r *codec.Reader) {
	p.DesignatingEntityID.Unmarshal(r)
	p.CodeName = r.Uint16()
	p.DesignatedEntityID.Unmarshal(r)
	p.DesignatorCode = r.Uint16()
	p.Power = r.Float32()
	p.Wavelength = r.Float32()
	p.SpotRelativeLocation.Unmarshal(r)
	p.SpotLocation.Unmarshal(r)
	p.DeadReckoningAlgorithm = enums.DeadReckoningAlgorithm(r.Uint8())
	r.Skip(3)
	p.EntityLinearAcceleration.Unmarshal(r)
}

// UnderwaterAcoustic describes the acoustic signature of a surface or
// subsurface platform.
type UnderwaterAcoustic struct {
	base
	EmittingEntityID record.EntityID
	EventID          record.EventID
	StateChange      uint8
	PassiveParameter uint16
	PropulsionPlant  uint8
	Shafts           []record.UAShaft
	APAs             []record.UAAPA
	Systems          []record.UAEmitterSystem
}

func NewUnderwaterAcoustic() *UnderwaterAcoustic {
	return ready(&UnderwaterAcoustic{base: newBase(enums.PduTypeUnderwaterAcoustic)})
}

func (p *UnderwaterAcoustic) bodyLength() int {
	n := 20 + record.UAShaftSize*len(p.Shafts) + record.UAAPASize*len(p.APAs)
	for _, s := range p.Systems {
		n += s.Length()
	}
	return n
}

func (p *UnderwaterAcoustic) marshalBody(w *codec.Writer) {
	p.EmittingEntityID.Marshal(w)
	p.EventID.Marshal(w)
	w.Uint8(p.StateChange)
	w.Zero(1)
	w.Uint16(p.PassiveParameter)
	w.Uint8(p.PropulsionPlant)
	w.Count8("shafts", len(p.Shafts))
	w.Count8("additional passive activities", len(p.APAs))
	w.Count8("acoustic systems", len(p.Systems))
	for _, s := range p.Shafts {
		s.Marshal(w)
	}
	for _, a := range p.APAs {
		a.Marshal(w)
	}
	for _, s := range p.Systems {
		s.Marshal(w)
	}
}

func (p *UnderwaterAcoustic) unmarshalBody(r *codec.Reader) {
	p.EmittingEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.StateChange = r.Uint8()
	r.Skip(1)
	p.PassiveParameter = r.Uint16()
	p.PropulsionPlant = r.Uint8()
	nShafts := int(r.Uint8())
	nAPAs := int(r.Uint8())
	nSystems := int(r.Uint8())

	nShafts = r.Count("shafts", nShafts, record.UAShaftSize)
	p.Shafts = nil
	for i := 0; i < nShafts && r.Err() == nil; i++ {
		var s record.UAShaft
		s.Unmarshal(r)
		p.Shafts = append(p.Shafts, s)
	}
	nAPAs = r.Count("additional passive activities", nAPAs, record.UAAPASize)
	p.APAs = nil
	for i := 0; i < nAPAs && r.Err() == nil; i++ {
		var a record.UAAPA
		a.Unmarshal(r)
		p.APAs = append(p.APAs, a)
	}
	nSystems = r.Count("acoustic systems", nSystems, record.UAEmitterSystemSize)
	p.Systems = nil
	for i := 0; i < nSystems && r.Err() == nil; i++ {
		var s record.UAEmitterSystem
		s.Unmarshal(r)
		p.Systems = append(p.Systems, s)
	}
}

// IFF reports an identification friend or foe transponder or interrogator.
// Layer 1 is always present; Layer2 is encoded only when set.
type IFF struct {
	base
	EmittingEntityID        record.EntityID
	EventID                 record.EventID
	RelativeAntennaLocation record.Vector3Float
	SystemID                record.IFFSystemID
	SystemDesignator        uint8
	SystemSpecificData      uint8
	OperationalData         record.IFFOperationalData
	Layer2                  *record.IFFLayer2
}

func NewIFF() *IFF {
	return ready(&IFF{base: newBase(enums.PduTypeIFF)})
}

func (p *IFF) bodyLength() int {
	n := 48
	if p.Layer2 != nil {
		n += p.Layer2.Length()
	}
	return n
}

func (p *IFF) marshalBody(w *codec.Writer) {
	p.EmittingEntityID.Marshal(w)
	p.EventID.Marshal(w)
	p.RelativeAntennaLocation.Marshal(w)
	p.SystemID.Marshal(w)
	w.Uint8(p.SystemDesignator)
	w.Uint8(p.SystemSpecificData)
	p.OperationalData.Marshal(w)
	if p.Layer2 != nil {
		p.Layer2.Marshal(w)
	}
}

func (p *IFF) unmarshalBody(r *codec.Reader) {
	p.EmittingEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.RelativeAntennaLocation.Unmarshal(r)
	p.SystemID.Unmarshal(r)
	p.SystemDesignator = r.Uint8()
	p.SystemSpecificData = r.Uint8()
	p.OperationalData.Unmarshal(r)
	p.Layer2 = nil
	if r.Err() == nil && r.Remaining() > 0 {
		p.Layer2 = new(record.IFFLayer2)
		p.Layer2.Unmarshal(r)
	}
}

// SupplementalEmission reports infrared, radar cross section and
// propulsion data for an entity.
type SupplementalEmission struct {
	base
	OriginatingEntityID    record.EntityID
	InfraredSignatureIndex uint16
	AcousticSignatureIndex uint16
	RadarCrossSectionIndex uint16
	PropulsionSystems      []record.PropulsionSystem
	VectoringNozzles       []record.VectoringNozzle
}

func NewSupplementalEmission() *SupplementalEmission {
	return ready(&SupplementalEmission{base: newBase(enums.PduTypeSupplementalEmission)})
}

func (p *SupplementalEmission) bodyLength() int {
	return 16 + record.PropulsionSystemSize*len(p.PropulsionSystems) +
		record.VectoringNozzleSize*len(p.VectoringNozzles)
}

func (p *SupplementalEmission) marshalBody(w *codec.Writer) {
	p.OriginatingEntityID.Marshal(w)
	w.Uint16(p.InfraredSignatureIndex)
	w.Uint16(p.AcousticSignatureIndex)
	w.Uint16(p.RadarCrossSectionIndex)
	w.Count16("propulsion systems", len(p.PropulsionSystems))
	w.Count16("vectoring nozzles", len(p.VectoringNozzles))
	for _, s := range p.PropulsionSystems {
		s.Marshal(w)
	}
	for _, v := range p.VectoringNozzles {
		v.Marshal(w)
	}
}

func (p *SupplementalEmission) unmarshalBody(r *codec.Reader) {
	p.OriginatingEntityID.Unmarshal(r)
	p.InfraredSignatureIndex = r.Uint16()
	p.AcousticSignatureIndex = r.Uint16()
	p.RadarCrossSectionIndex = r.Uint16()
	nProp := int(r.Uint16())
	nNozzle := int(r.Uint16())

	nProp = r.Count("propulsion systems", nProp, record.PropulsionSystemSize)
	p.PropulsionSystems = nil
	for i := 0; i < nProp && r.Err() == nil; i++ {
		var s record.PropulsionSystem
		s.Unmarshal(r)
		p.PropulsionSystems = append(p.PropulsionSystems, s)
	}
	nNozzle = r.Count("vectoring nozzles", nNozzle, record.VectoringNozzleSize)
	p.VectoringNozzles = nil
	for i := 0; i < nNozzle && r.Err() == nil; i++ {
		var v record.VectoringNozzle
		v.Unmarshal(r)
		p.VectoringNozzles = append(p.VectoringNozzles, v)
	}
}
