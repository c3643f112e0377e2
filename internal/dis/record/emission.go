package record

import (
	"math"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
)

const (
	EmitterSystemSize      = 4
	EmitterParametersSize  = 20
	BeamDataSize           = 20
	JammingTechniqueSize   = 4
	TrackJamSize           = 8
	EmissionBeamSize       = 52
	EmissionSystemSize     = 20
	UAShaftSize            = 8
	UAAPASize              = 4
	UAEmitterSystemSize    = 20
	UABeamSize             = 24
	PropulsionSystemSize   = 8
	VectoringNozzleSize    = 8
	IFFSystemIDSize        = 6
	IFFOperationalDataSize = 16
	IFFLayerHeaderSize     = 4
	IFFLayer2Size          = 28
	IFFParameterSize       = 24
)

// EmitterSystem names an emitter and what it is used for.
type EmitterSystem struct {
	Name     uint16
	Function enums.EmitterFunction
	Number   uint8
}

func (e EmitterSystem) Marshal(w *codec.Writer) {
	w.Uint16(e.Name)
	w.Uint8(uint8(e.Function))
	w.Uint8(e.Number)
}

func (e *EmitterSystem) Unmarshal(r *codec.Reader) {
	e.Name = r.Uint16()
	e.Function = enums.EmitterFunction(r.Uint8())
	e.Number = r.Uint8()
}

func (EmitterSystem) Length() int { return EmitterSystemSize }

// EmitterParameters are the fundamental electromagnetic parameters of a beam.
type EmitterParameters struct {
	Frequency                float32
	FrequencyRange           float32
	EffectiveRadiatedPower   float32
	PulseRepetitionFrequency float32
	PulseWidth               float32
}

func (p EmitterParameters) Marshal(w *codec.Writer) {
	w.Float32(p.Frequency)
	w.Float32(p.FrequencyRange)
	w.Float32(p.EffectiveRadiatedPower)
	w.Float32(p.PulseRepetitionFrequency)
	w.Float32(p.PulseWidth)
}

func (p *EmitterParameters) Unmarshal(r *codec.Reader) {
	p.Frequency = r.Float32()
	p.FrequencyRange = r.Float32()
	p.EffectiveRadiatedPower = r.Float32()
	p.PulseRepetitionFrequency = r.Float32()
	p.PulseWidth = r.Float32()
}

func (EmitterParameters) Length() int { return EmitterParametersSize }

// BeamData is the scan volume of a beam.
type BeamData struct {
	AzimuthCenter   float32
	AzimuthSweep    float32
	ElevationCenter float32
	ElevationSweep  float32
	SweepSync       float32
}

func (b BeamData) Marshal(w *codec.Writer) {
	w.Float32(b.AzimuthCenter)
	w.Float32(b.AzimuthSweep)
	w.Float32(b.ElevationCenter)
	w.Float32(b.ElevationSweep)
	w.Float32(b.SweepSync)
}

func (b *BeamData) Unmarshal(r *codec.Reader) {
	b.AzimuthCenter = r.Float32()
	b.AzimuthSweep = r.Float32()
	b.ElevationCenter = r.Float32()
	b.ElevationSweep = r.Float32()
	b.SweepSync = r.Float32()
}

func (BeamData) Length() int { return BeamDataSize }

// JammingTechnique is the four-level jamming classification.
type JammingTechnique struct {
	Kind        uint8
	Category    uint8
	Subcategory uint8
	Specific    uint8
}

func (j JammingTechnique) Marshal(w *codec.Writer) {
	w.Uint8(j.Kind)
	w.Uint8(j.Category)
	w.Uint8(j.Subcategory)
	w.Uint8(j.Specific)
}

func (j *JammingTechnique) Unmarshal(r *codec.Reader) {
	j.Kind = r.Uint8()
	j.Category = r.Uint8()
	j.Subcategory = r.Uint8()
	j.Specific = r.Uint8()
}

// TrackJam is an entity tracked or jammed by a beam.
type TrackJam struct {
	Entity  EntityID
	Emitter uint8
	Beam    uint8
}

func (t TrackJam) Marshal(w *codec.Writer) {
	t.Entity.Marshal(w)
	w.Uint8(t.Emitter)
	w.Uint8(t.Beam)
}

func (t *TrackJam) Unmarshal(r *codec.Reader) {
	t.Entity.Unmarshal(r)
	t.Emitter = r.Uint8()
	t.Beam = r.Uint8()
}

// EmissionBeam is one beam of an electromagnetic emitter. It is
// self-describing: the first byte is the beam size in 32-bit words.
type EmissionBeam struct {
	BeamID              uint8
	ParameterIndex      uint16
	Parameters          EmitterParameters
	Beam                BeamData
	Function            enums.BeamFunction
	HighDensityTrackJam uint8
	Status              uint8
	JammingTechnique    JammingTechnique
	Targets             []TrackJam
}

func (b EmissionBeam) Length() int { return EmissionBeamSize + TrackJamSize*len(b.Targets) }

func (b EmissionBeam) Marshal(w *codec.Writer) {
	w.Count8("emission beam length", b.Length()/4)
	w.Uint8(b.BeamID)
	w.Uint16(b.ParameterIndex)
	b.Parameters.Marshal(w)
	b.Beam.Marshal(w)
	w.Uint8(uint8(b.Function))
	w.Count8("track/jam targets", len(b.Targets))
	w.Uint8(b.HighDensityTrackJam)
	w.Uint8(b.Status)
	b.JammingTechnique.Marshal(w)
	for _, t := range b.Targets {
		t.Marshal(w)
	}
}

func (b *EmissionBeam) Unmarshal(r *codec.Reader) {
	c := subWords(r, "emission beam", EmissionBeamSize)
	b.BeamID = c.Uint8()
	b.ParameterIndex = c.Uint16()
	b.Parameters.Unmarshal(c)
	b.Beam.Unmarshal(c)
	b.Function = enums.BeamFunction(c.Uint8())
	n := int(c.Uint8())
	b.HighDensityTrackJam = c.Uint8()
	b.Status = c.Uint8()
	b.JammingTechnique.Unmarshal(c)
	n = c.Count("track/jam targets", n, TrackJamSize)
	b.Targets = nil
	for i := 0; i < n; i++ {
		var t TrackJam
		t.Unmarshal(c)
		b.Targets = append(b.Targets, t)
	}
	r.Merge(c, "emission beam")
}

// EmissionSystem is one emitter with its beams. Like a beam, it leads with
// its size in 32-bit words.
type EmissionSystem struct {
	System   EmitterSystem
	Location Vector3Float
	Beams    []EmissionBeam
}

func (s EmissionSystem) Length() int {
	n := EmissionSystemSize
	for _, b := range s.Beams {
		n += b.Length()
	}
	return n
}

func (s EmissionSystem) Marshal(w *codec.Writer) {
	w.Count8("emission system length", s.Length()/4)
	w.Count8("beams", len(s.Beams))
	w.Zero(2)
	s.System.Marshal(w)
	s.Location.Marshal(w)
	for _, b := range s.Beams {
		b.Marshal(w)
	}
}

func (s *EmissionSystem) Unmarshal(r *codec.Reader) {
	c := subWords(r, "emission system", EmissionSystemSize)
	n := int(c.Uint8())
	c.Skip(2)
	s.System.Unmarshal(c)
	s.Location.Unmarshal(c)
	n = c.Count("beams", n, EmissionBeamSize)
	s.Beams = nil
	for i := 0; i < n && c.Err() == nil; i++ {
		var b EmissionBeam
		b.Unmarshal(c)
		s.Beams = append(s.Beams, b)
	}
	r.Merge(c, "emission system")
}

// subWords reads a leading size-in-words byte and returns a reader over the
// rest of the record. Bytes beyond the fields a record knows are skipped.
func subWords(r *codec.Reader, what string, min int) *codec.Reader {
	off := r.Offset()
	size := int(r.Uint8()) * 4
	if r.Err() == nil && size < min {
		r.Fail(codec.Malformed(what, off, "size %d is below the %d-byte minimum", size, min))
	}
	if r.Err() != nil {
		return r.Sub(what, 0)
	}
	return r.Sub(what, size-1)
}

// UAShaft reports the rotation of one propeller shaft.
type UAShaft struct {
	CurrentRPM      int16
	OrderedRPM      int16
	RPMRateOfChange int32
}

func (s UAShaft) Marshal(w *codec.Writer) {
	w.Int16(s.CurrentRPM)
	w.Int16(s.OrderedRPM)
	w.Int32(s.RPMRateOfChange)
}

func (s *UAShaft) Unmarshal(r *codec.Reader) {
	s.CurrentRPM = r.Int16()
	s.OrderedRPM = r.Int16()
	s.RPMRateOfChange = r.Int32()
}

// UAAPA is an additional passive activity parameter.
type UAAPA struct {
	ParameterIndex uint16
	Value          int16
}

func (a UAAPA) Marshal(w *codec.Writer) {
	w.Uint16(a.ParameterIndex)
	w.Int16(a.Value)
}

func (a *UAAPA) Unmarshal(r *codec.Reader) {
	a.ParameterIndex = r.Uint16()
	a.Value = r.Int16()
}

// AcousticEmitter names an underwater acoustic emitter.
type AcousticEmitter struct {
	Name     uint16
	Function uint8
	ID       uint8
}

// UABeam is one active acoustic beam. Its size is always six words.
type UABeam struct {
	BeamID           uint8
	ParameterIndex   uint16
	ScanPattern      uint16
	AzimuthCenter    float32
	AzimuthWidth     float32
	DepressionCenter float32
	DepressionWidth  float32
}

func (UABeam) Length() int { return UABeamSize }

func (b UABeam) Marshal(w *codec.Writer) {
	w.Uint8(UABeamSize / 4)
	w.Uint8(b.BeamID)
	w.Zero(2)
	w.Uint16(b.ParameterIndex)
	w.Uint16(b.ScanPattern)
	w.Float32(b.AzimuthCenter)
	w.Float32(b.AzimuthWidth)
	w.Float32(b.DepressionCenter)
	w.Float32(b.DepressionWidth)
}

func (b *UABeam) Unmarshal(r *codec.Reader) {
	c := subWords(r, "acoustic beam", UABeamSize)
	b.BeamID = c.Uint8()
	c.Skip(2)
	b.ParameterIndex = c.Uint16()
	b.ScanPattern = c.Uint16()
	b.AzimuthCenter = c.Float32()
	b.AzimuthWidth = c.Float32()
	b.DepressionCenter = c.Float32()
	b.DepressionWidth = c.Float32()
	r.Merge(c, "acoustic beam")
}

// UAEmitterSystem is one acoustic emitter with its beams.
type UAEmitterSystem struct {
	Emitter  AcousticEmitter
	Location Vector3Float
	Beams    []UABeam
}

func (s UAEmitterSystem) Length() int { return UAEmitterSystemSize + UABeamSize*len(s.Beams) }

func (s UAEmitterSystem) Marshal(w *codec.Writer) {
	w.Count8("acoustic system length", s.Length()/4)
	w.Count8("acoustic beams", len(s.Beams))
	w.Zero(2)
	w.Uint16(s.Emitter.Name)
	w.Uint8(s.Emitter.Function)
	w.Uint8(s.Emitter.ID)
	s.Location.Marshal(w)
	for _, b := range s.Beams {
		b.Marshal(w)
	}
}

func (s *UAEmitterSystem) Unmarshal(r *codec.Reader) {
	c := subWords(r, "acoustic system", UAEmitterSystemSize)
	n := int(c.Uint8())
	c.Skip(2)
	s.Emitter.Name = c.Uint16()
	s.Emitter.Function = c.Uint8()
	s.Emitter.ID = c.Uint8()
	s.Location.Unmarshal(c)
	n = c.Count("acoustic beams", n, UABeamSize)
	s.Beams = nil
	for i := 0; i < n && c.Err() == nil; i++ {
		var b UABeam
		b.Unmarshal(c)
		s.Beams = append(s.Beams, b)
	}
	r.Merge(c, "acoustic system")
}

// PropulsionSystem is one engine's power setting for supplemental emissions.
type PropulsionSystem struct {
	PowerSetting float32
	EngineRPM    float32
}

func (p PropulsionSystem) Marshal(w *codec.Writer) {
	w.Float32(p.PowerSetting)
	w.Float32(p.EngineRPM)
}

func (p *PropulsionSystem) Unmarshal(r *codec.Reader) {
	p.PowerSetting = r.Float32()
	p.EngineRPM = r.Float32()
}

// VectoringNozzle is the deflection of a thrust vectoring nozzle.
type VectoringNozzle struct {
	HorizontalDeflection float32
	VerticalDeflection   float32
}

func (v VectoringNozzle) Marshal(w *codec.Writer) {
	w.Float32(v.HorizontalDeflection)
	w.Float32(v.VerticalDeflection)
}

func (v *VectoringNozzle) Unmarshal(r *codec.Reader) {
	v.HorizontalDeflection = r.Float32()
	v.VerticalDeflection = r.Float32()
}

// IFFSystemID identifies an IFF system and its operating mode.
type IFFSystemID struct {
	SystemType uint16
	SystemName uint16
	SystemMode uint8
	Options    uint8
}

func (s IFFSystemID) Marshal(w *codec.Writer) {
	w.Uint16(s.SystemType)
	w.Uint16(s.SystemName)
	w.Uint8(s.SystemMode)
	w.Uint8(s.Options)
}

func (s *IFFSystemID) Unmarshal(r *codec.Reader) {
	s.SystemType = r.Uint16()
	s.SystemName = r.Uint16()
	s.SystemMode = r.Uint8()
	s.Options = r.Uint8()
}

// IFFOperationalData is the layer 1 fundamental operational data.
type IFFOperationalData struct {
	SystemStatus      uint8
	DataField1        uint8
	InformationLayers uint8
	DataField2        uint8
	Parameters        [6]uint16
}

func (d IFFOperationalData) Marshal(w *codec.Writer) {
	w.Uint8(d.SystemStatus)
	w.Uint8(d.DataField1)
	w.Uint8(d.InformationLayers)
	w.Uint8(d.DataField2)
	for _, p := range d.Parameters {
		w.Uint16(p)
	}
}

func (d *IFFOperationalData) Unmarshal(r *codec.Reader) {
	d.SystemStatus = r.Uint8()
	d.DataField1 = r.Uint8()
	d.InformationLayers = r.Uint8()
	d.DataField2 = r.Uint8()
	for i := range d.Parameters {
		d.Parameters[i] = r.Uint16()
	}
}

// IFFParameter is one entry of layer 2 emission parameter data.
type IFFParameter struct {
	EffectiveRadiatedPower float32
	Frequency              float32
	PGRF                   float32
	PulseWidth             float32
	BurstLength            uint32
	ApplicableModes        uint8
	SystemSpecific         [3]byte
}

func (p IFFParameter) Marshal(w *codec.Writer) {
	w.Float32(p.EffectiveRadiatedPower)
	w.Float32(p.Frequency)
	w.Float32(p.PGRF)
	w.Float32(p.PulseWidth)
	w.Uint32(p.BurstLength)
	w.Uint8(p.ApplicableModes)
	w.Write(p.SystemSpecific[:])
}

func (p *IFFParameter) Unmarshal(r *codec.Reader) {
	p.EffectiveRadiatedPower = r.Float32()
	p.Frequency = r.Float32()
	p.PGRF = r.Float32()
	p.PulseWidth = r.Float32()
	p.BurstLength = r.Uint32()
	p.ApplicableModes = r.Uint8()
	r.Read(p.SystemSpecific[:])
}

// IFFLayer2 is the emissions layer of an IFF PDU. The layer length in its
// header is derived from the parameter count.
type IFFLayer2 struct {
	LayerNumber       uint8
	LayerSpecificInfo uint8
	Beam              BeamData
	Parameter1        uint8
	Parameter2        uint8
	Parameters        []IFFParameter
}

func (l IFFLayer2) Length() int { return IFFLayer2Size + IFFParameterSize*len(l.Parameters) }

func (l IFFLayer2) Marshal(w *codec.Writer) {
	n := l.Length()
	if n > math.MaxUint16 {
		w.Fail(codec.OutOfRange("IFF layer 2 length", n, math.MaxUint16))
		return
	}
	w.Uint8(l.LayerNumber)
	w.Uint8(l.LayerSpecificInfo)
	w.Uint16(uint16(n))
	l.Beam.Marshal(w)
	w.Uint8(l.Parameter1)
	w.Uint8(l.Parameter2)
	w.Count16("IFF parameters", len(l.Parameters))
	for _, p := range l.Parameters {
		p.Marshal(w)
	}
}

func (l *IFFLayer2) Unmarshal(r *codec.Reader) {
	off := r.Offset()
	l.LayerNumber = r.Uint8()
	l.LayerSpecificInfo = r.Uint8()
	size := int(r.Uint16())
	if r.Err() == nil && size < IFFLayer2Size {
		r.Fail(codec.Malformed("IFF layer 2", off, "layer length %d is below the %d-byte minimum", size, IFFLayer2Size))
	}
	if r.Err() != nil {
		return
	}
	c := r.Sub("IFF layer 2", size-IFFLayerHeaderSize)
	l.Beam.Unmarshal(c)
	l.Parameter1 = c.Uint8()
	l.Parameter2 = c.Uint8()
	n := c.Count("IFF parameters", int(c.Uint16()), IFFParameterSize)
	l.Parameters = nil
	for i := 0; i < n; i++ {
		var p IFFParameter
		p.Unmarshal(c)
		l.Parameters = append(l.Parameters, p)
	}
	r.Merge(c, "IFF layer 2")
}
