package pdu

import (
	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// MinefieldState describes the extent and contents of a minefield.
type MinefieldState struct {
	base
	MinefieldID     record.MinefieldIdentifier
	SequenceNumber  uint16
	ForceID         enums.ForceID
	MinefieldType   record.EntityType
	Location        record.Vector3Double
	Orientation     record.EulerAngles
	Appearance      uint16
	ProtocolMode    uint16
	PerimeterPoints []record.Point
	MineTypes       []record.EntityType
}

func NewMinefieldState() *MinefieldState {
	return ready(&MinefieldState{base: newBase(enums.PduTypeMinefieldState)})
}

func (p *MinefieldState) bodyLength() int {
	return 60 + record.PointSize*len(p.PerimeterPoints) + record.EntityTypeSize*len(p.MineTypes)
}

func (p *MinefieldState) marshalBody(w *codec.Writer) {
	p.MinefieldID.Marshal(w)
	w.Uint16(p.SequenceNumber)
	w.Uint8(uint8(p.ForceID))
	w.Count8("perimeter points", len(p.PerimeterPoints))
	p.MinefieldType.Marshal(w)
	w.Count16("mine types", len(p.MineTypes))
	p.Location.Marshal(w)
	p.Orientation.Marshal(w)
	w.Uint16(p.Appearance)
	w.Uint16(p.ProtocolMode)
	for _, pt := range p.PerimeterPoints {
		pt.Marshal(w)
	}
	for _, t := range p.MineTypes {
		t.Marshal(w)
	}
}

func (p *MinefieldState) unmarshalBody(r *codec.Reader) {
	p.MinefieldID.Unmarshal(r)
	p.SequenceNumber = r.Uint16()
	p.ForceID = enums.ForceID(r.Uint8())
	nPoints := int(r.Uint8())
	p.MinefieldType.Unmarshal(r)
	nTypes := int(r.Uint16())
	p.Location.Unmarshal(r)
	p.Orientation.Unmarshal(r)
	p.Appearance = r.Uint16()
	p.ProtocolMode = r.Uint16()
	p.PerimeterPoints = record.UnmarshalPoints(r, nPoints)
	p.MineTypes = unmarshalEntityTypes(r, "mine types", nTypes)
}

func unmarshalEntityTypes(r *codec.Reader, what string, n int) []record.EntityType {
	n = r.Count(what, n, record.EntityTypeSize)
	var out []record.EntityType
	for i := 0; i < n && r.Err() == nil; i++ {
		var t record.EntityType
		t.Unmarshal(r)
		out = append(out, t)
	}
	return out
}

// MinefieldQuery asks a minefield owner for mine data inside an area.
type MinefieldQuery struct {
	base
	MinefieldID        record.MinefieldIdentifier
	RequestingEntityID record.EntityID
	RequestID          uint8
	DataFilter         uint32
	RequestedMineType  record.EntityType
	PerimeterPoints    []record.Point
	SensorTypes        []uint16
}

func NewMinefieldQuery() *MinefieldQuery {
	return ready(&MinefieldQuery{base: newBase(enums.PduTypeMinefieldQuery)})
}

func (p *MinefieldQuery) bodyLength() int {
	return 28 + record.PointSize*len(p.PerimeterPoints) + 2*len(p.SensorTypes)
}

func (p *MinefieldQuery) marshalBody(w *codec.Writer) {
	p.MinefieldID.Marshal(w)
	p.RequestingEntityID.Marshal(w)
	w.Uint8(p.RequestID)
	w.Count8("perimeter points", len(p.PerimeterPoints))
	w.Zero(1)
	w.Count8("sensor types", len(p.SensorTypes))
	w.Uint32(p.DataFilter)
	p.RequestedMineType.Marshal(w)
	for _, pt := range p.PerimeterPoints {
		pt.Marshal(w)
	}
	for _, s := range p.SensorTypes {
		w.Uint16(s)
	}
}

func (p *MinefieldQuery) unmarshalBody(r *codec.Reader) {
	p.MinefieldID.Unmarshal(r)
	p.RequestingEntityID.Unmarshal(r)
	p.RequestID = r.Uint8()
	nPoints := int(r.Uint8())
	r.Skip(1)
	nSensors := int(r.Uint8())
	p.DataFilter = r.Uint32()
	p.RequestedMineType.Unmarshal(r)
	p.PerimeterPoints = record.UnmarshalPoints(r, nPoints)
	p.SensorTypes = record.UnmarshalUint16s(r, "sensor types", nSensors)
}

// Minefield data filter bits. Each set bit adds one per-mine column to a
// MinefieldData PDU, in bit order.
const (
	MineGroundBurialDepth uint32 = 1 << iota
	MineWaterBurialDepth
	MineSnowBurialDepth
	MineOrientation
	MineThermalContrast
	MineReflectance
	MineEmplacementTime
	MineEntityNumber
	MineFusing
	MineScalarDetection
	MinePaintScheme
	MineTripDetonationWire
)

// Mine is one mine in a MinefieldData PDU. Only the fields selected by the
// PDU's data filter are encoded; the rest decode as zero.
type Mine struct {
	Location                   record.Vector3Float
	GroundBurialDepthOffset    float32
	WaterBurialDepthOffset     float32
	SnowBurialDepthOffset      float32
	Orientation                record.EulerAngles
	ThermalContrast            float32
	Reflectance                float32
	EmplacementTime            record.ClockTime
	EntityNumber               uint16
	Fusing                     uint16
	ScalarDetectionCoefficient uint8
	PaintScheme                uint8
	// Wires holds the vertices of each trip or detonation wire.
	Wires [][]record.Vector3Float
}

// MinefieldData reports mines in response to a query, laid out as one
// column per field across all mines.
type MinefieldData struct {
	base
	MinefieldID        record.MinefieldIdentifier
	RequestingEntityID record.EntityID
	SequenceNumber     uint16
	RequestID          uint8
	PduSequenceNumber  uint8
	NumberOfPdus       uint8
	DataFilter         uint32
	MineType           record.EntityType
	SensorTypes        []uint16
	Mines              []Mine
}

func NewMinefieldData() *MinefieldData {
	return ready(&MinefieldData{base: newBase(enums.PduTypeMinefieldData)})
}

func (p *MinefieldData) has(bit uint32) bool { return p.DataFilter&bit != 0 }

// bodyLength walks the same offsets the encoder does so padding lands on the
// same 32-bit boundaries.
func (p *MinefieldData) bodyLength() int {
	n := len(p.Mines)
	off := HeaderSize + 32 + 2*len(p.SensorTypes)
	off += codec.Pad(off, 4)
	off += record.Vector3FloatSize * n
	for _, c := range []struct {
		bit  uint32
		size int
	}{
		{MineGroundBurialDepth, 4},
		{MineWaterBurialDepth, 4},
		{MineSnowBurialDepth, 4},
		{MineOrientation, record.EulerAnglesSize},
		{MineThermalContrast, 4},
		{MineReflectance, 4},
		{MineEmplacementTime, record.ClockTimeSize},
		{MineEntityNumber, 2},
		{MineFusing, 2},
		{MineScalarDetection, 1},
		{MinePaintScheme, 1},
	} {
		if p.has(c.bit) {
			off += c.size * n
		}
	}
	off += codec.Pad(off, 4)
	if p.has(MineTripDetonationWire) {
		wires, vertices := 0, 0
		for _, m := range p.Mines {
			wires += len(m.Wires)
			for _, v := range m.Wires {
				vertices += len(v)
			}
		}
		off += n
		off += codec.Pad(off, 4)
		off += wires
		off += codec.Pad(off, 4)
		off += record.Vector3FloatSize * vertices
	}
	return off - HeaderSize
}

func (p *MinefieldData) marshalBody(w *codec.Writer) {
	p.MinefieldID.Marshal(w)
	p.RequestingEntityID.Marshal(w)
	w.Uint16(p.SequenceNumber)
	w.Uint8(p.RequestID)
	w.Uint8(p.PduSequenceNumber)
	w.Uint8(p.NumberOfPdus)
	w.Count8("mines", len(p.Mines))
	w.Count8("sensor types", len(p.SensorTypes))
	w.Zero(1)
	w.Uint32(p.DataFilter)
	p.MineType.Marshal(w)
	for _, s := range p.SensorTypes {
		w.Uint16(s)
	}
	w.Align(4)
	for _, m := range p.Mines {
		m.Location.Marshal(w)
	}
	if p.has(MineGroundBurialDepth) {
		for _, m := range p.Mines {
			w.Float32(m.GroundBurialDepthOffset)
		}
	}
	if p.has(MineWaterBurialDepth) {
		for _, m := range p.Mines {
			w.Float32(m.WaterBurialDepthOffset)
		}
	}
	if p.has(MineSnowBurialDepth) {
		for _, m := range p.Mines {
			w.Float32(m.SnowBurialDepthOffset)
		}
	}
	if p.has(MineOrientation) {
		for _, m := range p.Mines {
			m.Orientation.Marshal(w)
		}
	}
	if p.has(MineThermalContrast) {
		for _, m := range p.Mines {
			w.Float32(m.ThermalContrast)
		}
	}
	if p.has(MineReflectance) {
		for _, m := range p.Mines {
			w.Float32(m.Reflectance)
		}
	}
	if p.has(MineEmplacementTime) {
		for _, m := range p.Mines {
			m.EmplacementTime.Marshal(w)
		}
	}
	if p.has(MineEntityNumber) {
		for _, m := range p.Mines {
			w.Uint16(m.EntityNumber)
		}
	}
	if p.has(MineFusing) {
		for _, m := range p.Mines {
			w.Uint16(m.Fusing)
		}
	}
	if p.has(MineScalarDetection) {
		for _, m := range p.Mines {
			w.Uint8(m.ScalarDetectionCoefficient)
		}
	}
	if p.has(MinePaintScheme) {
		for _, m := range p.Mines {
			w.Uint8(m.PaintScheme)
		}
	}
	w.Align(4)
	if !p.has(MineTripDetonationWire) {
		return
	}
	for _, m := range p.Mines {
		w.Count8("trip/detonation wires", len(m.Wires))
	}
	w.Align(4)
	for _, m := range p.Mines {
		for _, v := range m.Wires {
			w.Count8("wire vertices", len(v))
		}
	}
	w.Align(4)
	for _, m := range p.Mines {
		for _, v := range m.Wires {
			for _, pt := range v {
				pt.Marshal(w)
			}
		}
	}
}

func (p *MinefieldData) unmarshalBody(r *codec.Reader) {
	p.MinefieldID.Unmarshal(r)
	p.RequestingEntityID.Unmarshal(r)
	p.SequenceNumber = r.Uint16()
	p.RequestID = r.Uint8()
	p.PduSequenceNumber = r.Uint8()
	p.NumberOfPdus = r.Uint8()
	nMines := int(r.Uint8())
	nSensors := int(r.Uint8())
	r.Skip(1)
	p.DataFilter = r.Uint32()
	p.MineType.Unmarshal(r)
	p.SensorTypes = record.UnmarshalUint16s(r, "sensor types", nSensors)
	r.Align(4)

	nMines = r.Count("mines", nMines, record.Vector3FloatSize)
	p.Mines = nil
	if nMines > 0 {
		p.Mines = make([]Mine, nMines)
	}
	mines := p.Mines
	for i := range mines {
		mines[i].Location.Unmarshal(r)
	}
	if p.has(MineGroundBurialDepth) {
		for i := range mines {
			mines[i].GroundBurialDepthOffset = r.Float32()
		}
	}
	if p.has(MineWaterBurialDepth) {
		for i := range mines {
			mines[i].WaterBurialDepthOffset = r.Float32()
		}
	}
	if p.has(MineSnowBurialDepth) {
		for i := range mines {
			mines[i].SnowBurialDepthOffset = r.Float32()
		}
	}
	if p.has(MineOrientation) {
		for i := range mines {
			mines[i].Orientation.Unmarshal(r)
		}
	}
	if p.has(MineThermalContrast) {
		for i := range mines {
			mines[i].ThermalContrast = r.Float32()
		}
	}
	if p.has(MineReflectance) {
		for i := range mines {
			mines[i].Reflectance = r.Float32()
		}
	}
	if p.has(MineEmplacementTime) {
		for i := range mines {
			mines[i].EmplacementTime.Unmarshal(r)
		}
	}
	if p.has(MineEntityNumber) {
		for i := range mines {
			mines[i].EntityNumber = r.Uint16()
		}
	}
	if p.has(MineFusing) {
		for i := range mines {
			mines[i].Fusing = r.Uint16()
		}
	}
	if p.has(MineScalarDetection) {
		for i := range mines {
			mines[i].ScalarDetectionCoefficient = r.Uint8()
		}
	}
	if p.has(MinePaintScheme) {
		for i := range mines {
			mines[i].PaintScheme = r.Uint8()
		}
	}
	r.Align(4)
	if !p.has(MineTripDetonationWire) {
		return
	}

	wireCounts := make([]int, len(mines))
	totalWires := 0
	for i := range mines {
		wireCounts[i] = int(r.Uint8())
		totalWires += wireCounts[i]
	}
	r.Align(4)
	totalWires = r.Count("trip/detonation wires", totalWires, 1)
	vertexCounts := make([]int, 0, totalWires)
	totalVertices := 0
	for i := 0; i < totalWires; i++ {
		c := int(r.Uint8())
		vertexCounts = append(vertexCounts, c)
		totalVertices += c
	}
	r.Align(4)
	if r.Count("wire vertices", totalVertices, record.Vector3FloatSize) != totalVertices || r.Err() != nil {
		return
	}
	k := 0
	for i := range mines {
		if wireCounts[i] == 0 {
			continue
		}
		mines[i].Wires = make([][]record.Vector3Float, wireCounts[i])
		for j := range mines[i].Wires {
			v := make([]record.Vector3Float, vertexCounts[k])
			for n := range v {
				v[n].Unmarshal(r)
			}
			mines[i].Wires[j] = v
			k++
		}
	}
}

// MinefieldResponseNack lists the MinefieldData PDUs a requester missed.
type MinefieldResponseNack struct {
	base
	MinefieldID        record.MinefieldIdentifier
	RequestingEntityID record.EntityID
	RequestID          uint8
	MissingPduSequence []uint8
}

func NewMinefieldResponseNack() *MinefieldResponseNack {
	return ready(&MinefieldResponseNack{base: newBase(enums.PduTypeMinefieldResponseNack)})
}

func (p *MinefieldResponseNack) bodyLength() int { return 14 + len(p.MissingPduSequence) }

func (p *MinefieldResponseNack) marshalBody(w *codec.Writer) {
	p.MinefieldID.Marshal(w)
	p.RequestingEntityID.Marshal(w)
	w.Uint8(p.RequestID)
	w.Count8("missing PDU sequence numbers", len(p.MissingPduSequence))
	w.Write(p.MissingPduSequence)
}

func (p *MinefieldResponseNack) unmarshalBody(r *codec.Reader) {
	p.MinefieldID.Unmarshal(r)
	p.RequestingEntityID.Unmarshal(r)
	p.RequestID = r.Uint8()
	n := int(r.Uint8())
	p.MissingPduSequence = r.Bytes(r.Count("missing PDU sequence numbers", n, 1))
}
