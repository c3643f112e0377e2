package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// EntityState carries the full state of an entity.
type EntityState struct {
	base
	EntityID              record.EntityID
	ForceID               enums.ForceID
	EntityType            record.EntityType
	AlternativeEntityType record.EntityType
	LinearVelocity        record.Vector3Float
	Location              record.Vector3Double
	Orientation           record.EulerAngles
	Appearance            uint32
	DeadReckoning         record.DeadReckoningParameters
	Marking               record.EntityMarking
	Capabilities          uint32
	VariableParameters    []record.VariableParameter
}

func NewEntityState() *EntityState {
	return ready(&EntityState{base: newBase(enums.PduTypeEntityState)})
}

func (p *EntityState) bodyLength() int {
	return 132 + record.VariableParameterSize*len(p.VariableParameters)
}

func (p *EntityState) marshalBody(w *codec.Writer) {
	p.EntityID.Marshal(w)
	w.Uint8(uint8(p.ForceID))
	w.Count8("variable parameters", len(p.VariableParameters))
	p.EntityType.Marshal(w)
	p.AlternativeEntityType.Marshal(w)
	p.LinearVelocity.Marshal(w)
	p.Location.Marshal(w)
	p.Orientation.Marshal(w)
	w.Uint32(p.Appearance)
	p.DeadReckoning.Marshal(w)
	p.Marking.Marshal(w)
	w.Uint32(p.Capabilities)
	record.MarshalVariableParameters(w, p.VariableParameters)
}

func (p *EntityState) unmarshalBody(r *codec.Reader) {
	p.EntityID.Unmarshal(r)
	p.ForceID = enums.ForceID(r.Uint8())
	n := int(r.Uint8())
	p.EntityType.Unmarshal(r)
	p.AlternativeEntityType.Unmarshal(r)
	p.LinearVelocity.Unmarshal(r)
	p.Location.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.Appearance = r.Uint32()
	p.DeadReckoning.Unmarshal(r)
	p.Marking.Unmarshal(r)
	p.Capabilities = r.Uint32()
	p.VariableParameters = record.UnmarshalVariableParameters(r, n)
}

// Collision reports an inelastic collision between two entities.
type Collision struct {
	base
	IssuingEntityID   record.EntityID
	CollidingEntityID record.EntityID
	EventID           record.EventID
	CollisionType     enums.CollisionType
	Velocity          record.Vector3Float
	Mass              float32
	Location          record.Vector3Float
}

func NewCollision() *Collision {
	return ready(&Collision{base: newBase(enums.PduTypeCollision)})
}

func (p *Collision) bodyLength() int { return 48 }

func (p *Collision) marshalBody(w *codec.Writer) {
	p.IssuingEntityID.Marshal(w)
	p.CollidingEntityID.Marshal(w)
	p.EventID.Marshal(w)
	w.Uint8(uint8(p.CollisionType))
	w.Zero(1)
	p.Velocity.Marshal(w)
	w.Float32(p.Mass)
	p.Location.Marshal(w)
}

func (p *Collision) unmarshalBody(r *codec.Reader) {
	p.IssuingEntityID.Unmarshal(r)
	p.CollidingEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	p.CollisionType = enums.CollisionType(r.Uint8())
	r.Skip(1)
	p.Velocity.Unmarshal(r)
	p.Mass = r.Float32()
	p.Location.Unmarshal(r)
}

// CollisionElastic reports an elastic collision with the data needed to
// compute the resulting motion.
type CollisionElastic struct {
	base
	IssuingEntityID          record.EntityID
	CollidingEntityID        record.EntityID
	EventID                  record.EventID
	ContactVelocity          record.Vector3Float
	Mass                     float32
	Location                 record.Vector3Float
	InertiaTensorXX          float32
	InertiaTensorXY          float32
	InertiaTensorXZ          float32
	InertiaTensorYY          float32
	InertiaTensorYZ          float32
	InertiaTensorZZ          float32
	UnitSurfaceNormal        record.Vector3Float
	CoefficientOfRestitution float32
}

func NewCollisionElastic() *CollisionElastic {
	return ready(&CollisionElastic{base: newBase(enums.PduTypeCollisionElastic)})
}

func (p *CollisionElastic) bodyLength() int { return 88 }

func (p *CollisionElastic) marshalBody(w *codec.Writer) {
	p.IssuingEntityID.Marshal(w)
	p.CollidingEntityID.Marshal(w)
	p.EventID.Marshal(w)
	w.Zero(2)
	p.ContactVelocity.Marshal(w)
	w.Float32(p.Mass)
	p.Location.Marshal(w)
	w.Float32(p.InertiaTensorXX)
	w.Float32(p.InertiaTensorXY)
	w.Float32(p.InertiaTensorXZ)
	w.Float32(p.InertiaTensorYY)
	w.Float32(p.InertiaTensorYZ)
	w.Float32(p.InertiaTensorZZ)
	p.UnitSurfaceNormal.Marshal(w)
	w.Float32(p.CoefficientOfRestitution)
}

func (p *CollisionElastic) unmarshalBody(r *codec.Reader) {
	p.IssuingEntityID.Unmarshal(r)
	p.CollidingEntityID.Unmarshal(r)
	p.EventID.Unmarshal(r)
	r.Skip(2)
	p.ContactVelocity.Unmarshal(r)
	p.Mass = r.Float32()
	p.Location.Unmarshal(r)
	p.InertiaTensorXX = r.Float32()
	p.InertiaTensorXY = r.Float32()
	p.InertiaTensorXZ = r.Float32()
	p.InertiaTensorYY = r.Float32()
	p.InertiaTensorYZ = r.Float32()
	p.InertiaTensorZZ = r.Float32()
	p.UnitSurfaceNormal.Unmarshal(r)
	p.CoefficientOfRestitution = r.Float32()
}

// EntityStateUpdate is the abbreviated entity state sent between full
// updates.
type EntityStateUpdate struct {
	base
	EntityID           record.EntityID
	LinearVelocity     record.Vector3Float
	Location           record.Vector3Double
	Orientation        record.EulerAngles
	Appearance         uint32
	VariableParameters []record.VariableParameter
}

func NewEntityStateUpdate() *EntityStateUpdate {
	return ready(&EntityStateUpdate{base: newBase(enums.PduTypeEntityStateUpdate)})
}

func (p *EntityStateUpdate) bodyLength() int {
	return 60 + record.VariableParameterSize*len(p.VariableParameters)
}

func (p *EntityStateUpdate) marshalBody(w *codec.Writer) {
	p.EntityID.Marshal(w)
	w.Zero(1)
	w.Count8("variable parameters", len(p.VariableParameters))
	p.LinearVelocity.Marshal(w)
	p.Location.Marshal(w)
	p.Orientation.Marshal(w)
	w.Uint32(p.Appearance)
	record.MarshalVariableParameters(w, p.VariableParameters)
}

func (p *EntityStateUpdate) unmarshalBody(r *codec.Reader) {
	p.EntityID.Unmarshal(r)
	r.Skip(1)
	n := int(r.Uint8())
	p.LinearVelocity.Unmarshal(r)
	p.Location.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.Appearance = r.Uint32()
	p.VariableParameters = record.UnmarshalVariableParameters(r, n)
}

// AttributeRecordSet is the attribute records reported for one entity.
type AttributeRecordSet struct {
	EntityID record.EntityID
	Records  []record.VariableRecord
}

func (s AttributeRecordSet) length() int {
	return record.EntityIDSize + 2 + record.VariableRecordsLength(s.Records)
}

// Attribute carries attribute records that extend another PDU type.
type Attribute struct {
	base
	OriginatingSimulation record.SimulationAddress
	RecordPduType         enums.PduType
	RecordProtocolVersion enums.ProtocolVersion
	MasterRecordType      uint32
	ActionCode            uint8
	RecordSets            []AttributeRecordSet
}

func NewAttribute() *Attribute {
	return ready(&Attribute{base: newBase(enums.PduTypeAttribute)})
}

func (p *Attribute) bodyLength() int {
	n := 20
	for _, s := range p.RecordSets {
		n += s.length()
	}
	return n
}

func (p *Attribute) marshalBody(w *codec.Writer) {
	p.OriginatingSimulation.Marshal(w)
	w.Zero(6)
	w.Uint8(uint8(p.RecordPduType))
	w.Uint8(uint8(p.RecordProtocolVersion))
	w.Uint32(p.MasterRecordType)
	w.Uint8(p.ActionCode)
	w.Zero(1)
	w.Count16("attribute record sets", len(p.RecordSets))
	for _, s := range p.RecordSets {
		s.EntityID.Marshal(w)
		w.Count16("attribute records", len(s.Records))
		record.MarshalVariableRecords(w, s.Records)
	}
}

func (p *Attribute) unmarshalBody(r *codec.Reader) {
	p.OriginatingSimulation.Unmarshal(r)
	r.Skip(6)
	p.RecordPduType = enums.PduType(r.Uint8())
	p.RecordProtocolVersion = enums.ProtocolVersion(r.Uint8())
	p.MasterRecordType = r.Uint32()
	p.ActionCode = r.Uint8()
	r.Skip(1)
	n := r.Count("attribute record sets", int(r.Uint16()), record.EntityIDSize+2)
	p.RecordSets = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var s AttributeRecordSet
		s.EntityID.Unmarshal(r)
		s.Records = record.UnmarshalVariableRecords(r, int(r.Uint16()))
		p.RecordSets = append(p.RecordSets, s)
	}
}
