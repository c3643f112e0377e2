package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// InformationOperationsAction requests or reports an information
// operations attack against a target.
type InformationOperationsAction struct {
	base
	OriginatingID    record.SimulationIdentifier
	ReceivingID      record.SimulationIdentifier
	RequestID        uint32
	WarfareType      enums.IOWarfareType
	SimulationSource enums.IOSimulationSource
	ActionType       enums.IOActionType
	ActionPhase      enums.IOActionPhase
	AttackerID       record.EntityID
	PrimaryTargetID  record.EntityID
	Records          []record.VariableRecord
}

func NewInformationOperationsAction() *InformationOperationsAction {
	return ready(&InformationOperationsAction{base: newBase(enums.PduTypeInformationOperationsAction)})
}

func (p *InformationOperationsAction) bodyLength() int {
	return 44 + record.VariableRecordsLength(p.Records)
}

func (p *InformationOperationsAction) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Uint32(p.RequestID)
	w.Uint16(uint16(p.WarfareType))
	w.Uint16(uint16(p.SimulationSource))
	w.Uint16(uint16(p.ActionType))
	w.Uint16(uint16(p.ActionPhase))
	w.Zero(4)
	p.AttackerID.Marshal(w)
	p.PrimaryTargetID.Marshal(w)
	w.Zero(2)
	w.Count16("IO records", len(p.Records))
	record.MarshalVariableRecords(w, p.Records)
}

func (p *InformationOperationsAction) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.RequestID = r.Uint32()
	p.WarfareType = enums.IOWarfareType(r.Uint16())
	p.SimulationSource = enums.IOSimulationSource(r.Uint16())
	p.ActionType = enums.IOActionType(r.Uint16())
	p.ActionPhase = enums.IOActionPhase(r.Uint16())
	r.Skip(4)
	p.AttackerID.Unmarshal(r)
	p.PrimaryTargetID.Unmarshal(r)
	r.Skip(2)
	p.Records = record.UnmarshalVariableRecords(r, int(r.Uint16()))
}

// InformationOperationsReport reports the status or effects of an
// information operations attack.
type InformationOperationsReport struct {
	base
	OriginatingID    record.SimulationIdentifier
	SimulationSource enums.IOSimulationSource
	ReportType       enums.IOReportType
	AttackerID       record.EntityID
	PrimaryTargetID  record.EntityID
	Records          []record.VariableRecord
}

func NewInformationOperationsReport() *InformationOperationsReport {
	return ready(&InformationOperationsReport{base: newBase(enums.PduTypeInformationOperationsReport)})
}

func (p *InformationOperationsReport) bodyLength() int {
	return 28 + record.VariableRecordsLength(p.Records)
}

func (p *InformationOperationsReport) marshalBody(w *codec.Writer) {
	p.OriginatingID.Marshal(w)
	w.Uint16(uint16(p.SimulationSource))
	w.Uint8(uint8(p.ReportType))
	w.Zero(1)
	p.AttackerID.Marshal(w)
	p.PrimaryTargetID.Marshal(w)
	w.Zero(4)
	w.Count16("IO records", len(p.Records))
	record.MarshalVariableRecords(w, p.Records)
}

func (p *InformationOperationsReport) unmarshalBody(r *codec.Reader) {
	p.OriginatingID.Unmarshal(r)
	p.SimulationSource = enums.IOSimulationSource(r.Uint16())
	p.ReportType = enums.IOReportType(r.Uint8())
	r.Skip(1)
	p.AttackerID.Unmarshal(r)
	p.PrimaryTargetID.Unmarshal(r)
	r.Skip(4)
	p.Records = record.UnmarshalVariableRecords(r, int(r.Uint16()))
}
