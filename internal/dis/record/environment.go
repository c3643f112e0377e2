package record

import "github.com/tturner/disgo/internal/dis/codec"

const (
	EnvironmentRecordHeaderSize = 8
	GridAxisRegularSize         = 24
	GridAxisIrregularSize       = 40
	LinearSegmentSize           = 64
	RecordSetHeaderSize         = 16

	// GridAxisIrregular marks an axis whose points are listed explicitly.
	GridAxisIrregular = 1
)

// Grid data representations.
const (
	GridDataOctets   uint16 = 0
	GridDataScaled16 uint16 = 1
	GridDataFloat32  uint16 = 2
)

// EnvironmentRecord is one state record of an environmental process. Data
// holds ceil(LengthBits/8) bytes and is padded to 64 bits on the wire.
type EnvironmentRecord struct {
	RecordType uint32
	LengthBits uint16
	Index      uint8
	Data       []byte
}

func (e EnvironmentRecord) dataBytes() int { return (int(e.LengthBits) + 7) / 8 }

func (e EnvironmentRecord) Length() int {
	n := len(e.Data)
	return EnvironmentRecordHeaderSize + n + codec.Pad(n, 8)
}

func (e EnvironmentRecord) Marshal(w *codec.Writer) {
	if len(e.Data) != e.dataBytes() {
		w.Fail(codec.OutOfRangef("environment record", "%d bits need %d bytes, data has %d", e.LengthBits, e.dataBytes(), len(e.Data)))
		return
	}
	w.Uint32(e.RecordType)
	w.Uint16(e.LengthBits)
	w.Uint8(e.Index)
	w.Zero(1)
	w.Write(e.Data)
	w.Zero(codec.Pad(len(e.Data), 8))
}

func (e *EnvironmentRecord) Unmarshal(r *codec.Reader) {
	e.RecordType = r.Uint32()
	e.LengthBits = r.Uint16()
	e.Index = r.Uint8()
	r.Skip(1)
	n := e.dataBytes()
	if r.Count("environment record", 1, n+codec.Pad(n, 8)) == 0 {
		return
	}
	e.Data = r.Bytes(n)
	r.Skip(codec.Pad(n, 8))
}

// GridAxis describes one axis of a gridded data field. Irregular axes carry
// explicit coordinate values scaled by CoordinateScale and CoordinateOffset;
// those fields are ignored for regular axes.
type GridAxis struct {
	DomainInitial    float64
	DomainFinal      float64
	DomainPoints     uint16
	InterleafFactor  uint8
	AxisType         uint8
	PointsOnAxis     uint16
	InitialIndex     uint16
	CoordinateScale  float64
	CoordinateOffset float64
	Values           []uint16
}

func (a GridAxis) irregular() bool { return a.AxisType == GridAxisIrregular }

func (a GridAxis) Length() int {
	if !a.irregular() {
		return GridAxisRegularSize
	}
	n := 2 * len(a.Values)
	return GridAxisIrregularSize + n + codec.Pad(n, 8)
}

func (a GridAxis) Marshal(w *codec.Writer) {
	if a.irregular() && len(a.Values) != int(a.PointsOnAxis) {
		w.Fail(codec.OutOfRangef("grid axis", "%d points on axis but %d values", a.PointsOnAxis, len(a.Values)))
		return
	}
	w.Float64(a.DomainInitial)
	w.Float64(a.DomainFinal)
	w.Uint16(a.DomainPoints)
	w.Uint8(a.InterleafFactor)
	w.Uint8(a.AxisType)
	w.Uint16(a.PointsOnAxis)
	w.Uint16(a.InitialIndex)
	if !a.irregular() {
		return
	}
	w.Float64(a.CoordinateScale)
	w.Float64(a.CoordinateOffset)
	for _, v := range a.Values {
		w.Uint16(v)
	}
	w.Zero(codec.Pad(2*len(a.Values), 8))
}

func (a *GridAxis) Unmarshal(r *codec.Reader) {
	a.DomainInitial = r.Float64()
	a.DomainFinal = r.Float64()
	a.DomainPoints = r.Uint16()
	a.InterleafFactor = r.Uint8()
	a.AxisType = r.Uint8()
	a.PointsOnAxis = r.Uint16()
	a.InitialIndex = r.Uint16()
	if !a.irregular() {
		return
	}
	a.CoordinateScale = r.Float64()
	a.CoordinateOffset = r.Float64()
	a.Values = UnmarshalUint16s(r, "axis values", int(a.PointsOnAxis))
	r.Skip(codec.Pad(2*len(a.Values), 8))
}

// GridData is one grid data record. Which value slice is used depends on
// Representation: Octets for 0, Scale/Offset/Scaled for 1, Floats for 2.
type GridData struct {
	SampleType     uint16
	Representation uint16
	Octets         []byte
	Scale          float32
	Offset         float32
	Scaled         []uint16
	Floats         []float32
}

func (g GridData) Length() int {
	switch g.Representation {
	case GridDataOctets:
		n := 6 + len(g.Octets)
		return n + codec.Pad(n, 4)
	case GridDataScaled16:
		n := 14 + 2*len(g.Scaled)
		return n + codec.Pad(n, 4)
	case GridDataFloat32:
		return 8 + 4*len(g.Floats)
	}
	return 4
}

func (g GridData) Marshal(w *codec.Writer) {
	if g.Representation > GridDataFloat32 {
		w.Fail(codec.OutOfRange("grid data representation", int(g.Representation), int(GridDataFloat32)))
		return
	}
	w.Uint16(g.SampleType)
	w.Uint16(g.Representation)
	switch g.Representation {
	case GridDataOctets:
		w.Count16("grid data octets", len(g.Octets))
		w.Write(g.Octets)
		w.Zero(codec.Pad(6+len(g.Octets), 4))
	case GridDataScaled16:
		w.Float32(g.Scale)
		w.Float32(g.Offset)
		w.Count16("grid data values", len(g.Scaled))
		for _, v := range g.Scaled {
			w.Uint16(v)
		}
		w.Zero(codec.Pad(14+2*len(g.Scaled), 4))
	case GridDataFloat32:
		w.Count16("grid data values", len(g.Floats))
		w.Zero(2)
		for _, v := range g.Floats {
			w.Float32(v)
		}
	}
}

func (g *GridData) Unmarshal(r *codec.Reader) {
	off := r.Offset()
	g.SampleType = r.Uint16()
	g.Representation = r.Uint16()
	if r.Err() != nil {
		return
	}
	switch g.Representation {
	case GridDataOctets:
		n := r.Count("grid data octets", int(r.Uint16()), 1)
		g.Octets = r.Bytes(n)
		r.Skip(codec.Pad(6+n, 4))
	case GridDataScaled16:
		g.Scale = r.Float32()
		g.Offset = r.Float32()
		g.Scaled = UnmarshalUint16s(r, "grid data values", int(r.Uint16()))
		r.Skip(codec.Pad(14+2*len(g.Scaled), 4))
	case GridDataFloat32:
		n := int(r.Uint16())
		r.Skip(2)
		n = r.Count("grid data values", n, 4)
		for i := 0; i < n; i++ {
			g.Floats = append(g.Floats, r.Float32())
		}
	default:
		r.Fail(codec.Malformed("grid data", off, "unknown data representation %d", g.Representation))
	}
}

// LinearSegment is one segment of a linear object such as a wire or berm.
type LinearSegment struct {
	Number             uint8
	Modifications      uint8
	GeneralAppearance  uint16
	SpecificAppearance uint32
	Location           Vector3Double
	Orientation        EulerAngles
	SegmentLength      float32
	SegmentWidth       float32
	SegmentHeight      float32
	SegmentDepth       float32
}

func (s LinearSegment) Marshal(w *codec.Writer) {
	w.Uint8(s.Number)
	w.Uint8(s.Modifications)
	w.Uint16(s.GeneralAppearance)
	w.Uint32(s.SpecificAppearance)
	s.Location.Marshal(w)
	s.Orientation.Marshal(w)
	w.Float32(s.SegmentLength)
	w.Float32(s.SegmentWidth)
	w.Float32(s.SegmentHeight)
	w.Float32(s.SegmentDepth)
	w.Zero(4)
}

func (s *LinearSegment) Unmarshal(r *codec.Reader) {
	s.Number = r.Uint8()
	s.Modifications = r.Uint8()
	s.GeneralAppearance = r.Uint16()
	s.SpecificAppearance = r.Uint32()
	s.Location.Unmarshal(r)
	s.Orientation.Unmarshal(r)
	s.SegmentLength = r.Float32()
	s.SegmentWidth = r.Float32()
	s.SegmentHeight = r.Float32()
	s.SegmentDepth = r.Float32()
	r.Skip(4)
}

// RecordSet is a run of RecordCount fixed-width records sharing one record
// ID, as carried by the reliable record PDUs and Transfer Ownership. Values
// holds ceil(RecordCount*RecordLengthBits/8) bytes, padded to 64 bits on the
// wire.
type RecordSet struct {
	RecordID         uint32
	SerialNumber     uint32
	RecordLengthBits uint16
	RecordCount      uint16
	Values           []byte
}

func (s RecordSet) valueBytes() int {
	return int((uint64(s.RecordCount)*uint64(s.RecordLengthBits) + 7) / 8)
}

func (s RecordSet) Length() int {
	n := len(s.Values)
	return RecordSetHeaderSize + n + codec.Pad(n, 8)
}

func (s RecordSet) Marshal(w *codec.Writer) {
	if len(s.Values) != s.valueBytes() {
		w.Fail(codec.OutOfRangef("record set", "%d records of %d bits need %d bytes, values have %d", s.RecordCount, s.RecordLengthBits, s.valueBytes(), len(s.Values)))
		return
	}
	w.Uint32(s.RecordID)
	w.Uint32(s.SerialNumber)
	w.Zero(4)
	w.Uint16(s.RecordLengthBits)
	w.Uint16(s.RecordCount)
	w.Write(s.Values)
	w.Zero(codec.Pad(len(s.Values), 8))
}

func (s *RecordSet) Unmarshal(r *codec.Reader) {
	s.RecordID = r.Uint32()
	s.SerialNumber = r.Uint32()
	r.Skip(4)
	s.RecordLengthBits = r.Uint16()
	s.RecordCount = r.Uint16()
	n := s.valueBytes()
	if r.Count("record set", 1, n+codec.Pad(n, 8)) == 0 {
		return
	}
	s.Values = r.Bytes(n)
	r.Skip(codec.Pad(n, 8))
}

// UnmarshalRecordSets reads n record sets.
func UnmarshalRecordSets(r *codec.Reader, n int) []RecordSet {
	n = r.Count("record sets", n, RecordSetHeaderSize)
	var out []RecordSet
	for i := 0; i < n && r.Err() == nil; i++ {
		var s RecordSet
		s.Unmarshal(r)
		out = append(out, s)
	}
	return out
}

// RecordSetsLength sums the encoded size of sets.
func RecordSetsLength(sets []RecordSet) int {
	n := 0
	for _, s := range sets {
		n += s.Length()
	}
	return n
}
