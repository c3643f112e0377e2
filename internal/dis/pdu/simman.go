package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// Simulation management PDUs all open with the originating and receiving
// simulation identifiers.

// CreateEntity asks a simulation to create an entity.
type CreateEntity struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
}

func NewCreateEntity() *CreateEntity {
	return ready(&CreateEntity{base: newBase(enums.PduTypeCreateEntity)})
}

func (p *CreateEntity) bodyLength() int { return 16 }

func (p *CreateEntity) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
}

func (p *CreateEntity) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
}

// RemoveEntity asks a simulation to remove an entity.
type RemoveEntity struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
}

func NewRemoveEntity() *RemoveEntity {
	return ready(&RemoveEntity{base: newBase(enums.PduTypeRemoveEntity)})
}

func (p *RemoveEntity) bodyLength() int { return 16 }

func (p *RemoveEntity) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
}

func (p *RemoveEntity) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
}

// StartResume starts or resumes a simulation at the given times.
type StartResume struct {
	base
	OriginatingID  record.SimulationIdentifier
	ReceivingID    record.SimulationIdentifier
	RealWorldTime  record.ClockTime
	SimulationTime record.ClockTime
	RequestID      uint32
}

func NewStartResume() *StartResume {
	return ready(&StartResume{base: newBase(enums.PduTypeStartResume)})
}

func (p *StartResume) bodyLength() int { return 32 }

func (p *StartResume) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.RealWorldTime.Marshal(w)
	p.SimulationTime.Marshal(w)
	w.Uint32(p.RequestID)
}

func (p *StartResume) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RealWorldTime.Unmarshal(r)
	p.SimulationTime.Unmarshal(r)
	p.RequestID = r.Uint32()
}

// StopFreeze stops or freezes a simulation.
type StopFreeze struct {
	base
	OriginatingID  record.SimulationIdentifier
	ReceivingID    record.SimulationIdentifier
	RealWorldTime  record.ClockTime
	Reason         enums.StopFreezeReason
	FrozenBehavior uint8
	RequestID      uint32
}

func NewStopFreeze() *StopFreeze {
	return ready(&StopFreeze{base: newBase(enums.PduTypeStopFreeze)})
}

func (p *StopFreeze) bodyLength() int { return 28 }

func (p *StopFreeze) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.RealWorldTime.Marshal(w)
	w.Uint8(uint8(p.Reason))
	w.Uint8(p.FrozenBehavior)
	w.Zero(2)
	w.Uint32(p.RequestID)
}

func (p *StopFreeze) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RealWorldTime.Unmarshal(r)
	p.Reason = enums.StopFreezeReason(r.Uint8())
	p.FrozenBehavior = r.Uint8()
	r.Skip(2)
	p.RequestID = r.Uint32()
}

// Acknowledge answers a create, remove, start/resume or stop/freeze request.
type Acknowledge struct {
	base
	OriginatingID   record.SimulationIdentifier
	ReceivingID     record.SimulationIdentifier
	AcknowledgeFlag enums.AcknowledgeFlag
	ResponseFlag    enums.AcknowledgeResponse
	RequestID       uint32
}

func NewAcknowledge() *Acknowledge {
	return ready(&Acknowledge{base: newBase(enums.PduTypeAcknowledge)})
}

func (p *Acknowledge) bodyLength() int { return 20 }

func (p *Acknowledge) marshalBody(w *codec.Writer) {
	marshalAcknowledge(w, p.OriginatingID, p.ReceivingID, p.AcknowledgeFlag, p.ResponseFlag, p.RequestID)
}

func (p *Acknowledge) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.AcknowledgeFlag = enums.AcknowledgeFlag(r.Uint16())
	p.ResponseFlag = enums.AcknowledgeResponse(r.Uint16())
	p.RequestID = r.Uint32()
}

func marshalAcknowledge(w *codec.Writer, orig, recv record.SimulationIdentifier, flag enums.AcknowledgeFlag, resp enums.AcknowledgeResponse, req uint32) {
	orig.Marshal(w)
	recv.Marshal(w)
	w.Uint16(uint16(flag))
	w.Uint16(uint16(resp))
	w.Uint32(req)
}

// ActionRequest asks a simulation to perform an action.
type ActionRequest struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	ActionID      uint32
	Datums        record.DatumSpecification
}

func NewActionRequest() *ActionRequest {
	return ready(&ActionRequest{base: newBase(enums.PduTypeActionRequest)})
}

func (p *ActionRequest) bodyLength() int { return 20 + p.Datums.Length() }

func (p *ActionRequest) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint32(p.ActionID)
	p.Datums.Marshal(w)
}

func (p *ActionRequest) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.ActionID = r.Uint32()
	p.Datums.Unmarshal(r)
}

// ActionResponse answers an action request.
type ActionResponse struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	RequestStatus enums.RequestStatus
	Datums        record.DatumSpecification
}

func NewActionResponse() *ActionResponse {
	return ready(&ActionResponse{base: newBase(enums.PduTypeActionResponse)})
}

func (p *ActionResponse) bodyLength() int { return 20 + p.Datums.Length() }

func (p *ActionResponse) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint32(uint32(p.RequestStatus))
	p.Datums.Marshal(w)
}

func (p *ActionResponse) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.RequestStatus = enums.RequestStatus(r.Uint32())
	p.Datums.Unmarshal(r)
}

// DataQuery asks for the listed datums, once or every TimeInterval.
type DataQuery struct {
	base
	OriginatingID    record.SimulationIdentifier
	ReceivingID      record.SimulationIdentifier
	RequestID        uint32
	TimeInterval     uint32
	FixedDatumIDs    []uint32
	VariableDatumIDs []uint32
}

func NewDataQuery() *DataQuery {
	return ready(&DataQuery{base: newBase(enums.PduTypeDataQuery)})
}

func (p *DataQuery) bodyLength() int {
	return 28 + 4*(len(p.FixedDatumIDs)+len(p.VariableDatumIDs))
}

func (p *DataQuery) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint32(p.TimeInterval)
	marshalDatumIDs(w, p.FixedDatumIDs, p.VariableDatumIDs)
}

func (p *DataQuery) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.TimeInterval = r.Uint32()
	p.FixedDatumIDs, p.VariableDatumIDs = unmarshalDatumIDs(r)
}

func marshalDatumIDs(w *codec.Writer, fixed, variable []uint32) {
	w.Count32("fixed datum IDs", len(fixed))
	w.Count32("variable datum IDs", len(variable))
	for _, id := range fixed {
		w.Uint32(id)
	}
	for _, id := range variable {
		w.Uint32(id)
	}
}

func unmarshalDatumIDs(r *codec.Reader) (fixed, variable []uint32) {
	nf := int(r.Uint32())
	nv := int(r.Uint32())
	fixed = record.UnmarshalUint32s(r, "fixed datum IDs", nf)
	variable = record.UnmarshalUint32s(r, "variable datum IDs", nv)
	return fixed, variable
}

// SetData sets datum values in a receiving simulation.
type SetData struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	Datums        record.DatumSpecification
}

func NewSetData() *SetData {
	return ready(&SetData{base: newBase(enums.PduTypeSetData)})
}

func (p *SetData) bodyLength() int { return 20 + p.Datums.Length() }

func (p *SetData) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Zero(4)
	p.Datums.Marshal(w)
}

func (p *SetData) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	r.Skip(4)
	p.Datums.Unmarshal(r)
}

// Data answers a data query or set data request.
type Data struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	RequestID     uint32
	Datums        record.DatumSpecification
}

func NewData() *Data {
	return ready(&Data{base: newBase(enums.PduTypeData)})
}

func (p *Data) bodyLength() int { return 20 + p.Datums.Length() }

func (p *Data) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Zero(4)
	p.Datums.Marshal(w)
}

func (p *Data) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	r.Skip(4)
	p.Datums.Unmarshal(r)
}

// EventReport reports a significant simulation event.
type EventReport struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	EventType     enums.EventType
	Datums        record.DatumSpecification
}

func NewEventReport() *EventReport {
	return ready(&EventReport{base: newBase(enums.PduTypeEventReport)})
}

func (p *EventReport) bodyLength() int { return 20 + p.Datums.Length() }

func (p *EventReport) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(uint32(p.EventType))
	w.Zero(4)
	p.Datums.Marshal(w)
}

func (p *EventReport) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.EventType = enums.EventType(r.Uint32())
	r.Skip(4)
	p.Datums.Unmarshal(r)
}

// Comment carries free-form datums, typically text.
type Comment struct {
	base
	OriginatingID record.SimulationIdentifier
	ReceivingID   record.SimulationIdentifier
	Datums        record.DatumSpecification
}

func NewComment() *Comment {
	return ready(&Comment{base: newBase(enums.PduTypeComment)})
}

func (p *Comment) bodyLength() int { return 12 + p.Datums.Length() }

func (p *Comment) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.Datums.Marshal(w)
}

func (p *Comment) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.Datums.Unmarshal(r)
}
