package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// EnvironmentalProcess carries the state records of an environmental
// model such as weather or a smoke plume.
type EnvironmentalProcess struct {
	base
	ProcessID       record.ObjectID
	EnvironmentType record.EntityType
	ModelType       uint8
	Status          uint8
	SequenceNumber  uint16
	Records         []record.EnvironmentRecord
}

func NewEnvironmentalProcess() *EnvironmentalProcess {
	return ready(&EnvironmentalProcess{base: newBase(enums.PduTypeEnvironmentalProcess)})
}

func (p *EnvironmentalProcess) bodyLength() int {
	n := 20
	for _, e := range p.Records {
		n += e.Length()
	}
	return n
}

func (p *EnvironmentalProcess) marshalBody(w *codec.Writer) {
	p.ProcessID.Marshal(w)
	p.EnvironmentType.Marshal(w)
	w.Uint8(p.ModelType)
	w.Uint8(p.Status)
	w.Count16("environment records", len(p.Records))
	w.Uint16(p.SequenceNumber)
	for _, e := range p.Records {
		e.Marshal(w)
	}
}

func (p *EnvironmentalProcess) unmarshalBody(r *codec.Reader) {
	p.ProcessID.Unmarshal(r)
	p.EnvironmentType.Unmarshal(r)
	p.ModelType = r.Uint8()
	p.Status = r.Uint8()
	n := int(r.Uint16())
	p.SequenceNumber = r.Uint16()
	n = r.Count("environment records", n, record.EnvironmentRecordHeaderSize)
	p.Records = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var e record.EnvironmentRecord
		e.Unmarshal(r)
		p.Records = append(p.Records, e)
	}
}

// GriddedData carries one PDU's share of a gridded environmental field.
// Grid data records fill the rest of the body.
type GriddedData struct {
	base
	EnvironmentalSimulationID record.ObjectID
	FieldNumber               uint16
	PduNumber                 uint16
	PduTotal                  uint16
	CoordinateSystem          uint16
	ConstantGrid              uint8
	EnvironmentType           record.EntityType
	Orientation               record.EulerAngles
	SampleTime                record.ClockTime
	TotalValues               uint32
	VectorDimension           uint8
	Axes                      []record.GridAxis
	Data                      []record.GridData
}

func NewGriddedData() *GriddedData {
	return ready(&GriddedData{base: newBase(enums.PduTypeGriddedData)})
}

func (p *GriddedData) bodyLength() int {
	n := 52
	for _, a := range p.Axes {
		n += a.Length()
	}
	for _, g := range p.Data {
		n += g.Length()
	}
	return n
}

func (p *GriddedData) marshalBody(w *codec.Writer) {
	p.EnvironmentalSimulationID.Marshal(w)
	w.Uint16(p.FieldNumber)
	w.Uint16(p.PduNumber)
	w.Uint16(p.PduTotal)
	w.Uint16(p.CoordinateSystem)
	w.Count8("grid axes", len(p.Axes))
	w.Uint8(p.ConstantGrid)
	p.EnvironmentType.Marshal(w)
	p.Orientation.Marshal(w)
	p.SampleTime.Marshal(w)
	w.Uint32(p.TotalValues)
	w.Uint8(p.VectorDimension)
	w.Zero(3)
	for _, a := range p.Axes {
		a.Marshal(w)
	}
	for _, g := range p.Data {
		g.Marshal(w)
	}
}

func (p *GriddedData) unmarshalBody(r *codec.Reader) {
	p.EnvironmentalSimulationID.Unmarshal(r)
	p.FieldNumber = r.Uint16()
	p.PduNumber = r.Uint16()
	p.PduTotal = r.Uint16()
	p.CoordinateSystem = r.Uint16()
	nAxes := int(r.Uint8())
	p.ConstantGrid = r.Uint8()
	p.EnvironmentType.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.SampleTime.Unmarshal(r)
	p.TotalValues = r.Uint32()
	p.VectorDimension = r.Uint8()
	r.Skip(3)

	nAxes = r.Count("grid axes", nAxes, record.GridAxisRegularSize)
	p.Axes = nil
	for i := 0; i < nAxes && r.Err() == nil; i++ {
		var a record.GridAxis
		a.Unmarshal(r)
		p.Axes = append(p.Axes, a)
	}
	p.Data = nil
	for r.Err() == nil && r.Remaining() > 0 {
		var g record.GridData
		g.Unmarshal(r)
		p.Data = append(p.Data, g)
	}
}

// PointObjectState describes a synthetic environment object located at a
// single point.
type PointObjectState struct {
	base
	ObjectID           record.ObjectID
	ReferencedObjectID record.ObjectID
	UpdateNumber       uint16
	ForceID            enums.ForceID
	Modifications      uint8
	ObjectType         record.ObjectType
	Location           record.Vector3Double
	Orientation        record.EulerAngles
	GeneralAppearance  uint16
	SpecificAppearance uint32
	RequesterID        record.SimulationAddress
	ReceivingID        record.SimulationAddress
}

func NewPointObjectState() *PointObjectState {
	return ready(&PointObjectState{base: newBase(enums.PduTypePointObjectState)})
}

func (p *PointObjectState) bodyLength() int { return 76 }

func (p *PointObjectState) marshalBody(w *codec.Writer) {
	p.ObjectID.Marshal(w)
	p.ReferencedObjectID.Marshal(w)
	w.Uint16(p.UpdateNumber)
	w.Uint8(uint8(p.ForceID))
	w.Uint8(p.Modifications)
	p.ObjectType.Marshal(w)
	p.Location.Marshal(w)
	p.Orientation.Marshal(w)
	w.Uint16(p.GeneralAppearance)
	w.Uint32(p.SpecificAppearance)
	w.Zero(2)
	p.RequesterID.Marshal(w)
	p.ReceivingID.Marshal(w)
	w.Zero(4)
}

func (p *PointObjectState) unmarshalBody(r *codec.Reader) {
	p.ObjectID.Unmarshal(r)
	p.ReferencedObjectID.Unmarshal(r)
	p.UpdateNumber = r.Uint16()
	p.ForceID = enums.ForceID(r.Uint8())
	p.Modifications = r.Uint8()
	p.ObjectType.Unmarshal(r)
	p.Location.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.GeneralAppearance = r.Uint16()
	p.SpecificAppearance = r.Uint32()
	r.Skip(2)
	p.RequesterID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	r.Skip(4)
}

// LinearObjectState describes a synthetic environment object made of line
// segments.
type LinearObjectState struct {
	base
	ObjectID           record.ObjectID
	ReferencedObjectID record.ObjectID
	UpdateNumber       uint16
	ForceID            enums.ForceID
	RequesterID        record.SimulationAddress
	ReceivingID        record.SimulationAddress
	ObjectType         record.ObjectType
	Segments           []record.LinearSegment
}

func NewLinearObjectState() *LinearObjectState {
	return ready(&LinearObjectState{base: newBase(enums.PduTypeLinearObjectState)})
}

func (p *LinearObjectState) bodyLength() int {
	return 28 + record.LinearSegmentSize*len(p.Segments)
}

func (p *LinearObjectState) marshalBody(w *codec.Writer) {
	p.ObjectID.Marshal(w)
	p.ReferencedObjectID.Marshal(w)
	w.Uint16(p.UpdateNumber)
	w.Uint8(uint8(p.ForceID))
	w.Count8("linear segments", len(p.Segments))
	p.RequesterID.Marshal(w)
	p.ReceivingID.Marshal(w)
	p.ObjectType.Marshal(w)
	for _, s := range p.Segments {
		s.Marshal(w)
	}
}

func (p *LinearObjectState) unmarshalBody(r *codec.Reader) {
	p.ObjectID.Unmarshal(r)
	p.ReferencedObjectID.Unmarshal(r)
	p.UpdateNumber = r.Uint16()
	p.ForceID = enums.ForceID(r.Uint8())
	n := int(r.Uint8())
	p.RequesterID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	p.ObjectType.Unmarshal(r)
	n = r.Count("linear segments", n, record.LinearSegmentSize)
	p.Segments = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var s record.LinearSegment
		s.Unmarshal(r)
		p.Segments = append(p.Segments, s)
	}
}

// ArealObjectState describes a synthetic environment object covering an
// area, such as a minefield breach lane.
type ArealObjectState struct {
	base
	ObjectID           record.ObjectID
	ReferencedObjectID record.ObjectID
	UpdateNumber       uint16
	ForceID            enums.ForceID
	Modifications      uint8
	ObjectType         record.ObjectType
	SpecificAppearance uint32
	GeneralAppearance  uint16
	RequesterID        record.SimulationAddress
	ReceivingID        record.SimulationAddress
	Points             []record.Vector3Double
}

func NewArealObjectState() *ArealObjectState {
	return ready(&ArealObjectState{base: newBase(enums.PduTypeArealObjectState)})
}

func (p *ArealObjectState) bodyLength() int {
	return 36 + record.Vector3DoubleSize*len(p.Points)
}

func (p *ArealObjectState) marshalBody(w *codec.Writer) {
	p.ObjectID.Marshal(w)
	p.ReferencedObjectID.Marshal(w)
	w.Uint16(p.UpdateNumber)
	w.Uint8(uint8(p.ForceID))
	w.Uint8(p.Modifications)
	p.ObjectType.Marshal(w)
	w.Uint32(p.SpecificAppearance)
	w.Uint16(p.GeneralAppearance)
	w.Count16("areal object points", len(p.Points))
	p.RequesterID.Marshal(w)
	p.ReceivingID.Marshal(w)
	for _, pt := range p.Points {
		pt.Marshal(w)
	}
}

func (p *ArealObjectState) unmarshalBody(r *codec.Reader) {
	p.ObjectID.Unmarshal(r)
	p.ReferencedObjectID.Unmarshal(r)
	p.UpdateNumber = r.Uint16()
	p.ForceID = enums.ForceID(r.Uint8())
	p.Modifications = r.Uint8()
	p.ObjectType.Unmarshal(r)
	p.SpecificAppearance = r.Uint32()
	p.GeneralAppearance = r.Uint16()
	n := int(r.Uint16())
	p.RequesterID.Unmarshal(r)
	p.ReceivingID.Unmarshal(r)
	n = r.Count("areal object points", n, record.Vector3DoubleSize)
	p.Points = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var pt record.Vector3Double
		pt.Unmarshal(r)
		p.Points = append(p.Points, pt)
	}
}
