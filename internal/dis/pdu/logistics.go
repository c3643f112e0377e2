package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// ServiceRequest asks a supplying entity for resupply or repair.
type ServiceRequest struct {
	base
	RequestingEntityID record.EntityID
	ServicingEntityID  record.EntityID
	ServiceType        enums.ServiceType
	Supplies           []record.SupplyQuantity
}

func NewServiceRequest() *ServiceRequest {
	return ready(&ServiceRequest{base: newBase(enums.PduTypeServiceRequest)})
}

func (p *ServiceRequest) bodyLength() int {
	return 16 + record.SupplyQuantitySize*len(p.Supplies)
}

func (p *ServiceRequest) marshalBody(w *codec.Writer) {
	p.RequestingEntityID.Marshal(w)
	p.ServicingEntityID.Marshal(w)
	w.Uint8(uint8(p.ServiceType))
	w.Count8("supplies", len(p.Supplies))
	w.Zero(2)
	marshalSupplies(w, p.Supplies)
}

func (p *ServiceRequest) unmarshalBody(r *codec.Reader) {
	p.RequestingEntityID.Unmarshal(r)
	p.ServicingEntityID.Unmarshal(r)
	p.ServiceType = enums.ServiceType(r.Uint8())
	n := int(r.Uint8())
	r.Skip(2)
	p.Supplies = record.UnmarshalSupplies(r, n)
}

func marshalSupplies(w *codec.Writer, supplies []record.SupplyQuantity) {
	for _, s := range supplies {
		s.Marshal(w)
	}
}

// ResupplyOffer offers supplies to a receiving entity.
type ResupplyOffer struct {
	base
	ReceivingEntityID record.EntityID
	SupplyingEntityID record.EntityID
	Supplies          []record.SupplyQuantity
}

func NewResupplyOffer() *ResupplyOffer {
	return ready(&ResupplyOffer{base: newBase(enums.PduTypeResupplyOffer)})
}

func (p *ResupplyOffer) bodyLength() int {
	return 16 + record.SupplyQuantitySize*len(p.Supplies)
}

func (p *ResupplyOffer) marshalBody(w *codec.Writer) {
	marshalResupply(w, p.ReceivingEntityID, p.SupplyingEntityID, p.Supplies)
}

func (p *ResupplyOffer) unmarshalBody(r *codec.Reader) {
	p.Supplies = unmarshalResupply(r, &p.ReceivingEntityID, &p.SupplyingEntityID)
}

// ResupplyReceived acknowledges the supplies actually taken.
type ResupplyReceived struct {
	base
	ReceivingEntityID record.EntityID
	SupplyingEntityID record.EntityID
	Supplies          []record.SupplyQuantity
}

func NewResupplyReceived() *ResupplyReceived {
	return ready(&ResupplyReceived{base: newBase(enums.PduTypeResupplyReceived)})
}

func (p *ResupplyReceived) bodyLength() int {
	return 16 + record.SupplyQuantitySize*len(p.Supplies)
}

func (p *ResupplyReceived) marshalBody(w *codec.Writer) {
	marshalResupply(w, p.ReceivingEntityID, p.SupplyingEntityID, p.Supplies)
}

func (p *ResupplyReceived) unmarshalBody(r *codec.Reader) {
	p.Supplies = unmarshalResupply(r, &p.ReceivingEntityID, &p.SupplyingEntityID)
}

func marshalResupply(w *codec.Writer, receiving, supplying record.EntityID, supplies []record.SupplyQuantity) {
	receiving.Marshal(w)
	supplying.Marshal(w)
	w.Count8("supplies", len(supplies))
	w.Zero(3)
	marshalSupplies(w, supplies)
}

func unmarshalResupply(r *codec.Reader, receiving, supplying *record.EntityID) []record.SupplyQuantity {
	receiving.Unmarshal(r)
	supplying.Unmarshal(r)
	n := int(r.Uint8())
	r.Skip(3)
	return record.UnmarshalSupplies(r, n)
}

// ResupplyCancel cancels a resupply service in progress.
type ResupplyCancel struct {
	base
	ReceivingEntityID record.EntityID
	SupplyingEntityID record.EntityID
}

func NewResupplyCancel() *ResupplyCancel {
	return ready(&ResupplyCancel{base: newBase(enums.PduTypeResupplyCancel)})
}

func (p *ResupplyCancel) bodyLength() int { return 12 }

func (p *ResupplyCancel) marshalBody(w *codec.Writer) {
	p.ReceivingEntityID.Marshal(w)
	p.SupplyingEntityID.Marshal(w)
}

func (p *ResupplyCancel) unmarshalBody(r *codec.Reader) {
	p.ReceivingEntityID.Unmarshal(r)
	p.SupplyingEntityID.Unmarshal(r)
}

// RepairComplete tells the receiving entity a repair has finished.
type RepairComplete struct {
	base
	ReceivingEntityID record.EntityID
	RepairingEntityID record.EntityID
	Repair            uint16
}

func NewRepairComplete() *RepairComplete {
	return ready(&RepairComplete{base: newBase(enums.PduTypeRepairComplete)})
}

func (p *RepairComplete) bodyLength() int { return 16 }

func (p *RepairComplete) marshalBody(w *codec.Writer) {
	p.ReceivingEntityID.Marshal(w)
	p.RepairingEntityID.Marshal(w)
	w.Uint16(p.Repair)
	w.Zero(2)
}

func (p *RepairComplete) unmarshalBody(r *codec.Reader) {
	p.ReceivingEntityID.Unmarshal(r)
	p.RepairingEntityID.Unmarshal(r)
	p.Repair = r.Uint16()
	r.Skip(2)
}

// RepairResponse acknowledges a repair complete.
type RepairResponse struct {
	base
	ReceivingEntityID record.EntityID
	RepairingEntityID record.EntityID
	Result            enums.RepairResult
}

func NewRepairResponse() *RepairResponse {
	return ready(&RepairResponse{base: newBase(enums.PduTypeRepairResponse)})
}

func (p *RepairResponse) bodyLength() int { return 16 }

func (p *RepairResponse) marshalBody(w *codec.Writer) {
	p.ReceivingEntityID.Marshal(w)
	p.RepairingEntityID.Marshal(w)
	w.Uint8(uint8(p.Result))
	w.Zero(3)
}

func (p *RepairResponse) unmarshalBody(r *codec.Reader) {
	p.ReceivingEntityID.Unmarshal(r)
	p.RepairingEntityID.Unmarshal(r)
	p.Result = enums.RepairResult(r.Uint8())
	r.Skip(3)
}
