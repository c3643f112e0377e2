package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// AggregateState reports the state of a unit made of entities and
// subordinate aggregates.
type AggregateState struct {
	base
	AggregateID            record.AggregateID
	ForceID                enums.ForceID
	State                  enums.AggregateState
	AggregateType          record.EntityType
	Formation              enums.Formation
	Marking                record.AggregateMarking
	Dimensions             record.Vector3Float
	Orientation            record.EulerAngles
	CenterOfMass           record.Vector3Double
	Velocity               record.Vector3Float
	AggregateIDs           []record.AggregateID
	EntityIDs              []record.EntityID
	SilentAggregateSystems []record.SilentAggregateSystem
	SilentEntitySystems    []record.SilentEntitySystem
	VariableDatums         []record.VariableDatum
}

func NewAggregateState() *AggregateState {
	return ready(&AggregateState{base: newBase(enums.PduTypeAggregateState)})
}

func (p *AggregateState) bodyLength() int {
	ids := record.EntityIDSize * (len(p.AggregateIDs) + len(p.EntityIDs))
	n := 120 + ids + codec.Pad(ids, 4)
	n += record.SilentAggregateSystemSize * len(p.SilentAggregateSystems)
	for _, s := range p.SilentEntitySystems {
		n += s.Length()
	}
	n += 4
	for _, d := range p.VariableDatums {
		n += d.Length()
	}
	return n
}

func (p *AggregateState) marshalBody(w *codec.Writer) {
	p.AggregateID.Marshal(w)
	w.Uint8(uint8(p.ForceID))
	w.Uint8(uint8(p.State))
	p.AggregateType.Marshal(w)
	w.Uint32(uint32(p.Formation))
	p.Marking.Marshal(w)
	p.Dimensions.Marshal(w)
	p.Orientation.Marshal(w)
	p.CenterOfMass.Marshal(w)
	p.Velocity.Marshal(w)
	w.Count16("aggregate IDs", len(p.AggregateIDs))
	w.Count16("entity IDs", len(p.EntityIDs))
	w.Count16("silent aggregate systems", len(p.SilentAggregateSystems))
	w.Count16("silent entity systems", len(p.SilentEntitySystems))
	for _, id := range p.AggregateIDs {
		id.Marshal(w)
	}
	for _, id := range p.EntityIDs {
		id.Marshal(w)
	}
	w.Align(4)
	for _, s := range p.SilentAggregateSystems {
		s.Marshal(w)
	}
	for _, s := range p.SilentEntitySystems {
		s.Marshal(w)
	}
	w.Count32("variable datums", len(p.VariableDatums))
	for _, d := range p.VariableDatums {
		d.Marshal(w)
	}
}

func (p *AggregateState) unmarshalBody(r *codec.Reader) {
	p.AggregateID.Unmarshal(r)
	p.ForceID = enums.ForceID(r.Uint8())
	p.State = enums.AggregateState(r.Uint8())
	p.AggregateType.Unmarshal(r)
	p.Formation = enums.Formation(r.Uint32())
	p.Marking.Unmarshal(r)
	p.Dimensions.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.CenterOfMass.Unmarshal(r)
	p.Velocity.Unmarshal(r)
	nAgg := int(r.Uint16())
	nEnt := int(r.Uint16())
	nSilentAgg := int(r.Uint16())
	nSilentEnt := int(r.Uint16())

	p.AggregateIDs = record.UnmarshalEntityIDs(r, "aggregate IDs", nAgg)
	p.EntityIDs = record.UnmarshalEntityIDs(r, "entity IDs", nEnt)
	r.Align(4)

	nSilentAgg = r.Count("silent aggregate systems", nSilentAgg, record.SilentAggregateSystemSize)
	p.SilentAggregateSystems = nil
	for i := 0; i < nSilentAgg && r.Err() == nil; i++ {
		var s record.SilentAggregateSystem
		s.Unmarshal(r)
		p.SilentAggregateSystems = append(p.SilentAggregateSystems, s)
	}
	nSilentEnt = r.Count("silent entity systems", nSilentEnt, record.SilentEntitySystemSize)
	p.SilentEntitySystems = nil
	for i := 0; i < nSilentEnt && r.Err() == nil; i++ {
		var s record.SilentEntitySystem
		s.Unmarshal(r)
		p.SilentEntitySystems = append(p.SilentEntitySystems, s)
	}

	n := r.Count("variable datums", int(r.Uint32()), record.VariableDatumHeaderSize)
	p.VariableDatums = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var d record.VariableDatum
		d.Unmarshal(r)
		p.VariableDatums = append(p.VariableDatums, d)
	}
}

// IsGroupOf reports entities grouped under one entity ID. Member
// descriptions depend on the grouped entity category and are kept as raw
// bytes.
type IsGroupOf struct {
	base
	GroupEntityID      record.EntityID
	Category           uint8
	GroupedEntityCount uint8
	Latitude           float64
	Longitude          float64
	Descriptions       []byte
}

func NewIsGroupOf() *IsGroupOf {
	return ready(&IsGroupOf{base: newBase(enums.PduTypeIsGroupOf)})
}

func (p *IsGroupOf) bodyLength() int { return 28 + len(p.Descriptions) }

func (p *IsGroupOf) marshalBody(w *codec.Writer) {
	p.GroupEntityID.Marshal(w)
	w.Uint8(p.Category)
	w.Uint8(p.GroupedEntityCount)
	w.Zero(4)
	w.Float64(p.Latitude)
	w.Float64(p.Longitude)
	w.Write(p.Descriptions)
}

func (p *IsGroupOf) unmarshalBody(r *codec.Reader) {
	p.GroupEntityID.Unmarshal(r)
	p.Category = r.Uint8()
	p.GroupedEntityCount = r.Uint8()
	r.Skip(4)
	p.Latitude = r.Float64()
	p.Longitude = r.Float64()
	p.Descriptions = r.Rest()
}

// TransferOwnership hands control of an entity to another simulation.
type TransferOwnership struct {
	base
	OriginatingID    record.SimulationIdentifier
	ReceivingID      record.SimulationIdentifier
	RequestID        uint32
	Reliability      enums.ReliabilityService
	TransferType     enums.TransferType
	TransferEntityID record.EntityID
	RecordSets       []record.RecordSet
}

func NewTransferOwnership() *TransferOwnership {
	return ready(&TransferOwnership{base: newBase(enums.PduTypeTransferOwnership)})
}

func (p *TransferOwnership) bodyLength() int { return 28 + record.RecordSetsLength(p.RecordSets) }

func (p *TransferOwnership) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint8(uint8(p.Reliability))
	w.Uint8(uint8(p.TransferType))
	p.TransferEntityID.Marshal(w)
	marshalRecordSets(w, p.RecordSets)
}

func (p *TransferOwnership) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	p.TransferType = enums.TransferType(r.Uint8())
	p.TransferEntityID.Unmarshal(r)
	p.RecordSets = record.UnmarshalRecordSets(r, int(r.Uint32()))
}

// IsPartOf attaches one entity to another, e.g. a carried aircraft.
type IsPartOf struct {
	base
	OriginatingID  record.SimulationIdentifier
	ReceivingID    record.SimulationIdentifier
	Relationship   record.Relationship
	PartLocation   record.Vector3Float
	NamedLocation  record.NamedLocation
	PartEntityType record.EntityType
}

func NewIsPartOf() *IsPartOf {
	return ready(&IsPartOf{base: newBase(enums.PduTypeIsPartOf)})
}

func (p *IsPartOf) bodyLength() int { return 40 }

func (p *IsPartOf) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.Relationship.Marshal(w)
	p.PartLocation.Marshal(w)
	p.NamedLocation.Marshal(w)
	p.PartEntityType.Marshal(w)
}

func (p *IsPartOf) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Relationship.Unmarshal(r)
	p.PartLocation.Unmarshal(r)
	p.NamedLocation.Unmarshal(r)
	p.PartEntityType.Unmarshal(r)
}
