package record

import (
	"math"

	"github.com/tturner/disgo/internal/dis/codec"
)

const (
	ModulationTypeSize          = 8
	IntercomParameterHeaderSize = 4
)

// RadioType classifies a radio. It shares the entity type layout.
type RadioType = EntityType

// ModulationType describes how a transmitter modulates its carrier.
type ModulationType struct {
	SpreadSpectrum  uint16
	MajorModulation uint16
	Detail          uint16
	RadioSystem     uint16
}

func (m ModulationType) Marshal(w *codec.Writer) {
	w.Uint16(m.SpreadSpectrum)
	w.Uint16(m.MajorModulation)
	w.Uint16(m.Detail)
	w.Uint16(m.RadioSystem)
}

func (m *ModulationType) Unmarshal(r *codec.Reader) {
	m.SpreadSpectrum = r.Uint16()
	m.MajorModulation = r.Uint16()
	m.Detail = r.Uint16()
	m.RadioSystem = r.Uint16()
}

func (ModulationType) Length() int { return ModulationTypeSize }

// IntercomParameter is a typed intercom communications parameter. Its
// length field counts Value bytes only.
type IntercomParameter struct {
	RecordType uint16
	Value      []byte
}

func (p IntercomParameter) Marshal(w *codec.Writer) {
	if len(p.Value) > math.MaxUint16 {
		w.Fail(codec.OutOfRange("intercom parameter length", len(p.Value), math.MaxUint16))
		return
	}
	w.Uint16(p.RecordType)
	w.Uint16(uint16(len(p.Value)))
	w.Write(p.Value)
}

func (p *IntercomParameter) Unmarshal(r *codec.Reader) {
	p.RecordType = r.Uint16()
	n := int(r.Uint16())
	p.Value = r.Sub("intercom parameter", n).Rest()
}

func (p IntercomParameter) Length() int { return IntercomParameterHeaderSize + len(p.Value) }
