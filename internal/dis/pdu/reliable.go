package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// The -R PDUs mirror simulation management with a required reliability
// service field added.

type CreateEntityR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Reliability   enums.ReliabilityService
	RequestID     uint32
}

func NewCreateEntityR() *CreateEntityR {
	return ready(&CreateEntityR{base: newBase(enums.PduTypeCreateEntityR)})
}

func (p *CreateEntityR) bodyLength() int { return 20 }

func (p *CreateEntityR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
}

func (p *CreateEntityR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
}

type RemoveEntityR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Reliability   enums.ReliabilityService
	RequestID     uint32
}

func NewRemoveEntityR() *RemoveEntityR {
	return ready(&RemoveEntityR{base: newBase(enums.PduTypeRemoveEntityR)})
}

func (p *RemoveEntityR) bodyLength() int { return 20 }

func (p *RemoveEntityR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
}

func (p *RemoveEntityR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
}

type StartResumeR struct {
	base
	OriginatingID  record.SimulationIdentifier
	ReceivingID    record.SimulationIdentifier
	RealWorldTime  record.ClockTime
	SimulationTime record.ClockTime
	Reliability    enums.ReliabilityService
	RequestID      uint32
}

func NewStartResumeR() *StartResumeR {
	return ready(&StartResumeR{base: newBase(enums.PduTypeStartResumeR)})
}

func (p *StartResumeR) bodyLength() int { return 36 }

func (p *StartResumeR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.RealWorldTime.Marshal(w)
	p.SimulationTime.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
}

func (p *StartResumeR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RealWorldTime.Unmarshal(r)
	p.SimulationTime.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
}

type StopFreezeR struct {
	base
	OriginatingID  record.SimulationIdentifier
	ReceivingID    record.SimulationIdentifier
	RealWorldTime  record.ClockTime
	Reason         enums.StopFreezeReason
	FrozenBehavior uint8
	Reliability    enums.ReliabilityService
	RequestID      uint32
}

func NewStopFreezeR() *StopFreezeR {
	return ready(&StopFreezeR{base: newBase(enums.PduTypeStopFreezeR)})
}

func (p *StopFreezeR) bodyLength() int { return 28 }

func (p *StopFreezeR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.RealWorldTime.Marshal(w)
	w.Uint8(uint8(p.Reason))
	w.Uint8(p.FrozenBehavior)
	w.Uint8(uint8(p.Reliability))
	w.Zero(1)
	w.Uint32(p.RequestID)
}

func (p *StopFreezeR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RealWorldTime.Unmarshal(r)
	p.Reason = enums.StopFreezeReason(r.Uint8())
	p.FrozenBehavior = r.Uint8()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(1)
	p.RequestID = r.Uint32()
}

type AcknowledgeR struct {
	base
	OriginatingID   record.SimulationIdentifier
	ReceivingID     record.SimulationIdentifier
	AcknowledgeFlag enums.AcknowledgeFlag
	ResponseFlag    enums.AcknowledgeResponse
	RequestID       uint32
}

func NewAcknowledgeR() *AcknowledgeR {
	return ready(&AcknowledgeR{base: newBase(enums.PduTypeAcknowledgeR)})
}

func (p *AcknowledgeR) bodyLength() int { return 20 }

func (p *AcknowledgeR) marshalBody(w *codec.Writer) {
	marshalAcknowledge(w, p.OriginatingID, p.ReceivingID, p.AcknowledgeFlag, p.ResponseFlag, p.RequestID)
}

func (p *AcknowledgeR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.AcknowledgeFlag = enums.AcknowledgeFlag(r.Uint16())
	p.ResponseFlag = enums.AcknowledgeResponse(r.Uint16())
	p.RequestID = r.Uint32()
}

type ActionRequestR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Reliability   enums.ReliabilityService
	RequestID     uint32
	ActionID      uint32
	Datums        record.DatumSpecification
}

func NewActionRequestR() *ActionRequestR {
	return ready(&ActionRequestR{base: newBase(enums.PduTypeActionRequestR)})
}

func (p *ActionRequestR) bodyLength() int { return 24 + p.Datums.Length() }

func (p *ActionRequestR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
	w.Uint32(p.ActionID)
	p.Datums.Marshal(w)
}

func (p *ActionRequestR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
	p.ActionID = r.Uint32()
	p.Datums.Unmarshal(r)
}

type ActionResponseR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	RequestStatus enums.RequestStatus
	Datums        record.DatumSpecification
}

func NewActionResponseR() *ActionResponseR {
	return ready(&ActionResponseR{base: newBase(enums.PduTypeActionResponseR)})
}

func (p *ActionResponseR) bodyLength() int { return 20 + p.Datums.Length() }

func (p *ActionResponseR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint32(uint32(p.RequestStatus))
	p.Datums.Marshal(w)
}

func (p *ActionResponseR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.RequestStatus = enums.RequestStatus(r.Uint32())
	p.Datums.Unmarshal(r)
}

type DataQueryR struct {
	base
	OriginatingID    record.SimulationIdentifier
	ReceivingID      record.SimulationIdentifier
	Reliability      enums.ReliabilityService
	RequestID        uint32
	TimeInterval     uint32
	FixedDatumIDs    []uint32
	VariableDatumIDs []uint32
}

func NewDataQueryR() *DataQueryR {
	return ready(&DataQueryR{base: newBase(enums.PduTypeDataQueryR)})
}

func (p *DataQueryR) bodyLength() int {
	return 32 + 4*(len(p.FixedDatumIDs)+len(p.VariableDatumIDs))
}

func (p *DataQueryR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
	w.Uint32(p.TimeInterval)
	marshalDatumIDs(w, p.FixedDatumIDs, p.VariableDatumIDs)
}

func (p *DataQueryR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
	p.TimeInterval = r.Uint32()
	p.FixedDatumIDs, p.VariableDatumIDs = unmarshalDatumIDs(r)
}

type SetDataR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Reliability   enums.ReliabilityService
	RequestID     uint32
	Datums        record.DatumSpecification
}

func NewSetDataR() *SetDataR {
	return ready(&SetDataR{base: newBase(enums.PduTypeSetDataR)})
}

func (p *SetDataR) bodyLength() int { return 20 + p.Datums.Length() }

func (p *SetDataR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	w.Uint32(p.RequestID)
	p.Datums.Marshal(w)
}

func (p *SetDataR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.RequestID = r.Uint32()
	p.Datums.Unmarshal(r)
}

type DataR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	Reliability   enums.ReliabilityService
	Datums        record.DatumSpecification
}

func NewDataR() *DataR {
	return ready(&DataR{base: newBase(enums.PduTypeDataR)})
}

func (p *DataR) bodyLength() int { return 20 + p.Datums.Length() }

func (p *DataR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint8(uint8(p.Reliability))
	w.Zero(3)
	p.Datums.Marshal(w)
}

func (p *DataR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(3)
	p.Datums.Unmarshal(r)
}

type EventReportR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	EventType     enums.EventType
	Datums        record.DatumSpecification
}

func NewEventReportR() *EventReportR {
	return ready(&EventReportR{base: newBase(enums.PduTypeEventReportR)})
}

func (p *EventReportR) bodyLength() int { return 20 + p.Datums.Length() }

func (p *EventReportR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(uint32(p.EventType))
	w.Zero(4)
	p.Datums.Marshal(w)
}

func (p *EventReportR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.EventType = enums.EventType(r.Uint32())
	r.Skip(4)
	p.Datums.Unmarshal(r)
}

type CommentR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Datums        record.DatumSpecification
}

func NewCommentR() *CommentR {
	return ready(&CommentR{base: newBase(enums.PduTypeCommentR)})
}

func (p *CommentR) bodyLength() int { return 12 + p.Datums.Length() }

func (p *CommentR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.Datums.Marshal(w)
}

func (p *CommentR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Datums.Unmarshal(r)
}

// RecordR answers a record query or set record request.
type RecordR struct {
	base
	OriginatingID        record.SimulationIdentifier
	ReceivingID          record.SimulationIdentifier
	RequestID            uint32
	Reliability          enums.ReliabilityService
	EventType            uint16
	ResponseSerialNumber uint32
	RecordSets           []record.RecordSet
}

func NewRecordR() *RecordR {
	return ready(&RecordR{base: newBase(enums.PduTypeRecordR)})
}

func (p *RecordR) bodyLength() int { return 28 + record.RecordSetsLength(p.RecordSets) }

func (p *RecordR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint8(uint8(p.Reliability))
	w.Zero(1)
	w.Uint16(p.EventType)
	w.Uint32(p.ResponseSerialNumber)
	marshalRecordSets(w, p.RecordSets)
}

func (p *RecordR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(1)
	p.EventType = r.Uint16()
	p.ResponseSerialNumber = r.Uint32()
	p.RecordSets = record.UnmarshalRecordSets(r, int(r.Uint32()))
}

func marshalRecordSets(w *codec.Writer, sets []record.RecordSet) {
	w.Count32("record sets", len(sets))
	for _, s := range sets {
		s.Marshal(w)
	}
}

// SetRecordR sets record values in a receiving simulation.
type SetRecordR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	Reliability   enums.ReliabilityService
	RecordSets    []record.RecordSet
}

func NewSetRecordR() *SetRecordR {
	return ready(&SetRecordR{base: newBase(enums.PduTypeSetRecordR)})
}

func (p *SetRecordR) bodyLength() int { return 28 + record.RecordSetsLength(p.RecordSets) }

func (p *SetRecordR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint8(uint8(p.Reliability))
	w.Zero(7)
	marshalRecordSets(w, p.RecordSets)
}

func (p *SetRecordR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(7)
	p.RecordSets = record.UnmarshalRecordSets(r, int(r.Uint32()))
}

// RecordQueryR asks for records, once or every Time units.
type RecordQueryR struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	Reliability   enums.ReliabilityService
	EventType     uint16
	Time          uint32
	RecordIDs     []uint32
}

func NewRecordQueryR() *RecordQueryR {
	return ready(&RecordQueryR{base: newBase(enums.PduTypeRecordQueryR)})
}

func (p *RecordQueryR) bodyLength() int { return 28 + 4*len(p.RecordIDs) }

func (p *RecordQueryR) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint8(uint8(p.Reliability))
	w.Zero(1)
	w.Uint16(p.EventType)
	w.Uint32(p.Time)
	w.Count32("record IDs", len(p.RecordIDs))
	for _, id := range p.RecordIDs {
		w.Uint32(id)
	}
}

func (p *RecordQueryR) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.Reliability = enums.ReliabilityService(r.Uint8())
	r.Skip(1)
	p.EventType = r.Uint16()
	p.Time = r.Uint32()
	p.RecordIDs = record.UnmarshalUint32s(r, "record IDs", int(r.Uint32()))
}
