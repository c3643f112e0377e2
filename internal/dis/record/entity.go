package record

import "github.com/tturner/disgo/internal/dis/codec"

const (
	AggregateMarkingSize      = 32
	SilentAggregateSystemSize = 12
	SilentEntitySystemSize    = 12
	RelationshipSize          = 4
	NamedLocationSize         = 4
	MinefieldIdentifierSize   = 6
	PointSize                 = 8
	ObjectTypeSize            = 4
)

// AggregateMarking is a character set code and 31 bytes of marking text.
type AggregateMarking struct {
	CharacterSet uint8
	Characters   [31]byte
}

// NewAggregateMarking builds an ASCII marking, truncating s to 31 bytes.
func NewAggregateMarking(s string) AggregateMarking {
	m := AggregateMarking{CharacterSet: 1}
	copy(m.Characters[:], s)
	return m
}

// Text returns the marking up to the first NUL.
func (m AggregateMarking) Text() string {
	return cString(m.Characters[:])
}

func (m AggregateMarking) Marshal(w *codec.Writer) {
	w.Uint8(m.CharacterSet)
	w.Write(m.Characters[:])
}

func (m *AggregateMarking) Unmarshal(r *codec.Reader) {
	m.CharacterSet = r.Uint8()
	r.Read(m.Characters[:])
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// SilentAggregateSystem counts aggregates of one type that are not
// publishing their own state.
type SilentAggregateSystem struct {
	NumberOfAggregates uint16
	AggregateType      EntityType
}

func (s SilentAggregateSystem) Marshal(w *codec.Writer) {
	w.Uint16(s.NumberOfAggregates)
	w.Zero(2)
	s.AggregateType.Marshal(w)
}

func (s *SilentAggregateSystem) Unmarshal(r *codec.Reader) {
	s.NumberOfAggregates = r.Uint16()
	r.Skip(2)
	s.AggregateType.Unmarshal(r)
}

// SilentEntitySystem counts silent entities of one type, with optional
// per-entity appearance words.
type SilentEntitySystem struct {
	NumberOfEntities uint16
	EntityType       EntityType
	Appearances      []uint32
}

func (s SilentEntitySystem) Length() int { return SilentEntitySystemSize + 4*len(s.Appearances) }

func (s SilentEntitySystem) Marshal(w *codec.Writer) {
	w.Uint16(s.NumberOfEntities)
	w.Count16("appearance records", len(s.Appearances))
	s.EntityType.Marshal(w)
	for _, a := range s.Appearances {
		w.Uint32(a)
	}
}

func (s *SilentEntitySystem) Unmarshal(r *codec.Reader) {
	s.NumberOfEntities = r.Uint16()
	n := int(r.Uint16())
	s.EntityType.Unmarshal(r)
	s.Appearances = UnmarshalUint32s(r, "appearance records", n)
}

// Relationship is the nature and position of a part within its host.
type Relationship struct {
	Nature   uint16
	Position uint16
}

func (rel Relationship) Marshal(w *codec.Writer) {
	w.Uint16(rel.Nature)
	w.Uint16(rel.Position)
}

func (rel *Relationship) Unmarshal(r *codec.Reader) {
	rel.Nature = r.Uint16()
	rel.Position = r.Uint16()
}

// NamedLocation is a station on a host entity.
type NamedLocation struct {
	StationName   uint16
	StationNumber uint16
}

func (n NamedLocation) Marshal(w *codec.Writer) {
	w.Uint16(n.StationName)
	w.Uint16(n.StationNumber)
}

func (n *NamedLocation) Unmarshal(r *codec.Reader) {
	n.StationName = r.Uint16()
	n.StationNumber = r.Uint16()
}

// MinefieldIdentifier names a minefield within a simulation.
type MinefieldIdentifier struct {
	Simulation SimulationAddress
	Minefield  uint16
}

func (m MinefieldIdentifier) Marshal(w *codec.Writer) {
	m.Simulation.Marshal(w)
	w.Uint16(m.Minefield)
}

func (m *MinefieldIdentifier) Unmarshal(r *codec.Reader) {
	m.Simulation.Unmarshal(r)
	m.Minefield = r.Uint16()
}

// Point is a planar location relative to a minefield origin.
type Point struct {
	X, Y float32
}

func (p Point) Marshal(w *codec.Writer) {
	w.Float32(p.X)
	w.Float32(p.Y)
}

func (p *Point) Unmarshal(r *codec.Reader) {
	p.X = r.Float32()
	p.Y = r.Float32()
}

// UnmarshalPoints reads n points.
func UnmarshalPoints(r *codec.Reader, n int) []Point {
	n = r.Count("points", n, PointSize)
	var out []Point
	for i := 0; i < n; i++ {
		var p Point
		p.Unmarshal(r)
		out = append(out, p)
	}
	return out
}

// ObjectType classifies a synthetic environment object.
type ObjectType struct {
	Domain      uint8
	Kind        uint8
	Category    uint8
	Subcategory uint8
}

func (o ObjectType) Marshal(w *codec.Writer) {
	w.Uint8(o.Domain)
	w.Uint8(o.Kind)
	w.Uint8(o.Category)
	w.Uint8(o.Subcategory)
}

func (o *ObjectType) Unmarshal(r *codec.Reader) {
	o.Domain = r.Uint8()
	o.Kind = r.Uint8()
	o.Category = r.Uint8()
	o.Subcategory = r.Uint8()
}

// UnmarshalUint32s reads n 32-bit words, such as datum IDs or record IDs.
func UnmarshalUint32s(r *codec.Reader, what string, n int) []uint32 {
	n = r.Count(what, n, 4)
	var out []uint32
	for i := 0; i < n; i++ {
		out = append(out, r.Uint32())
	}
	return out
}

// UnmarshalUint16s reads n 16-bit words.
func UnmarshalUint16s(r *codec.Reader, what string, n int) []uint16 {
	n = r.Count(what, n, 2)
	var out []uint16
	for i := 0; i < n; i++ {
		out = append(out, r.Uint16())
	}
	return out
}

// UnmarshalEntityIDs reads n entity identifiers.
func UnmarshalEntityIDs(r *codec.Reader, what string, n int) []EntityID {
	n = r.Count(what, n, EntityIDSize)
	var out []EntityID
	for i := 0; i < n; i++ {
		var id EntityID
		id.Unmarshal(r)
		out = append(out, id)
	}
	return out
}
