package pdu

import (
	"math"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/record"
)

// Transmitter describes the state of a radio transmitter.
type Transmitter struct {
	base
	RadioReferenceID        record.EntityID
	RadioNumber             uint16
	RadioType               record.RadioType
	TransmitState           enums.TransmitState
	InputSource             uint8
	AntennaLocation         record.Vector3Double
	RelativeAntennaLocation record.Vector3Float
	AntennaPatternType      uint16
	Frequency               uint64
	TransmitFrequencyBand   float32
	Power                   float32
	Modulation              record.ModulationType
	CryptoSystem            uint16
	CryptoKeyID             uint16
	ModulationParameters    []byte
	AntennaPattern          []byte
	VariableRecords         []record.VariableRecord
}

func NewTransmitter() *Transmitter {
	return ready(&Transmitter{base: newBase(enums.PduTypeTransmitter)})
}

func (p *Transmitter) bodyLength() int {
	return 92 + len(p.ModulationParameters) + len(p.AntennaPattern) +
		record.VariableRecordsLength(p.VariableRecords)
}

func (p *Transmitter) marshalBody(w *codec.Writer) {
	p.RadioReferenceID.Marshal(w)
	w.Uint16(p.RadioNumber)
	p.RadioType.Marshal(w)
	w.Uint8(uint8(p.TransmitState))
	w.Uint8(p.InputSource)
	w.Count16("transmitter variable records", len(p.VariableRecords))
	p.AntennaLocation.Marshal(w)
	p.RelativeAntennaLocation.Marshal(w)
	w.Uint16(p.AntennaPatternType)
	w.Count16("antenna pattern length", len(p.AntennaPattern))
	w.Uint64(p.Frequency)
	w.Float32(p.TransmitFrequencyBand)
	w.Float32(p.Power)
	p.Modulation.Marshal(w)
	w.Uint16(p.CryptoSystem)
	w.Uint16(p.CryptoKeyID)
	w.Count8("modulation parameter length", len(p.ModulationParameters))
	w.Zero(3)
	w.Write(p.ModulationParameters)
	w.Write(p.AntennaPattern)
	record.MarshalVariableRecords(w, p.VariableRecords)
}

func (p *Transmitter) unmarshalBody(r *codec.Reader) {
	p.RadioReferenceID.Unmarshal(r)
	p.RadioNumber = r.Uint16()
	p.RadioType.Unmarshal(r)
	p.TransmitState = enums.TransmitState(r.Uint8())
	p.InputSource = r.Uint8()
	nRecords := int(r.Uint16())
	p.AntennaLocation.Unmarshal(r)
	p.RelativeAntennaLocation.Unmarshal(r)
	p.AntennaPatternType = r.Uint16()
	nPattern := int(r.Uint16())
	p.Frequency = r.Uint64()
	p.TransmitFrequencyBand = r.Float32()
	p.Power = r.Float32()
	p.Modulation.Unmarshal(r)
	p.CryptoSystem = r.Uint16()
	p.CryptoKeyID = r.Uint16()
	nMod := int(r.Uint8())
	r.Skip(3)
	p.ModulationParameters = r.Bytes(r.Count("modulation parameters", nMod, 1))
	p.AntennaPattern = r.Bytes(r.Count("antenna pattern", nPattern, 1))
	p.VariableRecords = record.UnmarshalVariableRecords(r, nRecords)
}

// SignalData is the encoded payload shared by Signal and IntercomSignal.
// Data holds ceil(LengthBits/8) bytes; the wire pads it to 32 bits.
type SignalData struct {
	Encoding   enums.EncodingScheme
	TDLType    uint16
	SampleRate uint32
	LengthBits uint16
	Samples    uint16
	Data       []byte
}

// SetData replaces the payload with whole bytes of data.
func (s *SignalData) SetData(data []byte) {
	s.Data = data
	s.LengthBits = uint16(len(data) * 8)
}

func (s SignalData) dataBytes() int { return (int(s.LengthBits) + 7) / 8 }

func (s SignalData) length() int {
	n := len(s.Data)
	return 8 + n + codec.Pad(n, 4)
}

func (s SignalData) marshal(w *codec.Writer) {
	if len(s.Data) > math.MaxUint16/8 {
		w.Fail(codec.OutOfRange("signal data length", len(s.Data), math.MaxUint16/8))
		return
	}
	if len(s.Data) != s.dataBytes() {
		w.Fail(codec.OutOfRangef("signal data", "%d bits need %d bytes, data has %d", s.LengthBits, s.dataBytes(), len(s.Data)))
		return
	}
	w.Uint16(uint16(s.Encoding))
	w.Uint16(s.TDLType)
	w.Uint32(s.SampleRate)
	w.Uint16(s.LengthBits)
	w.Uint16(s.Samples)
	w.Write(s.Data)
	w.Zero(codec.Pad(len(s.Data), 4))
}

func (s *SignalData) unmarshal(r *codec.Reader) {
	s.Encoding = enums.EncodingScheme(r.Uint16())
	s.TDLType = r.Uint16()
	s.SampleRate = r.Uint32()
	s.LengthBits = r.Uint16()
	s.Samples = r.Uint16()
	n := s.dataBytes()
	if r.Count("signal data", 1, n+codec.Pad(n, 4)) == 0 {
		return
	}
	s.Data = r.Bytes(n)
	r.Skip(codec.Pad(n, 4))
}

// Signal carries encoded voice, audio or tactical data link traffic.
type Signal struct {
	base
	RadioReferenceID record.EntityID
	RadioNumber      uint16
	SignalData
}

func NewSignal() *Signal {
	return ready(&Signal{base: newBase(enums.PduTypeSignal)})
}

func (p *Signal) bodyLength() int { return 12 + p.SignalData.length() }

func (p *Signal) marshalBody(w *codec.Writer) {
	p.RadioReferenceID.Marshal(w)
	w.Uint16(p.RadioNumber)
	p.SignalData.marshal(w)
}

func (p *Signal) unmarshalBody(r *codec.Reader) {
	p.RadioReferenceID.Unmarshal(r)
	p.RadioNumber = r.Uint16()
	p.SignalData.unmarshal(r)
}

// Receiver describes the state of a radio receiver.
type Receiver struct {
	base
	RadioReferenceID    record.EntityID
	RadioNumber         uint16
	ReceiverState       enums.ReceiverState
	ReceivedPower       float32
	TransmitterEntityID record.EntityID
	TransmitterRadio    uint16
}

func NewReceiver() *Receiver {
	return ready(&Receiver{base: newBase(enums.PduTypeReceiver)})
}

func (p *Receiver) bodyLength() int { return 24 }

func (p *Receiver) marshalBody(w *codec.Writer) {
	p.RadioReferenceID.Marshal(w)
	w.Uint16(p.RadioNumber)
	w.Uint16(uint16(p.ReceiverState))
	w.Zero(2)
	w.Float32(p.ReceivedPower)
	p.TransmitterEntityID.Marshal(w)
	w.Uint16(p.TransmitterRadio)
}

func (p *Receiver) unmarshalBody(r *codec.Reader) {
	p.RadioReferenceID.Unmarshal(r)
	p.RadioNumber = r.Uint16()
	p.ReceiverState = enums.ReceiverState(r.Uint16())
	r.Skip(2)
	p.ReceivedPower = r.Float32()
	p.TransmitterEntityID.Unmarshal(r)
	p.TransmitterRadio = r.Uint16()
}

// IntercomSignal carries audio over a simulated intercom.
type IntercomSignal struct {
	base
	IntercomReferenceID record.EntityID
	IntercomNumber      uint16
	SignalData
}

func NewIntercomSignal() *IntercomSignal {
	return ready(&IntercomSignal{base: newBase(enums.PduTypeIntercomSignal)})
}

func (p *IntercomSignal) bodyLength() int { return 12 + p.SignalData.length() }

func (p *IntercomSignal) marshalBody(w *codec.Writer) {
	p.IntercomReferenceID.Marshal(w)
	w.Uint16(p.IntercomNumber)
	p.SignalData.marshal(w)
}

func (p *IntercomSignal) unmarshalBody(r *codec.Reader) {
	p.IntercomReferenceID.Unmarshal(r)
	p.IntercomNumber = r.Uint16()
	p.SignalData.unmarshal(r)
}

// IntercomControl manages intercom channel connections.
type IntercomControl struct {
	base
	ControlType               uint8
	CommunicationsChannel     uint8
	SourceEntityID            record.EntityID
	SourceCommunicationsID    uint16
	SourceLineID              uint8
	TransmitPriority          uint8
	TransmitLineState         uint8
	Command                   uint8
	MasterIntercomReferenceID record.EntityID
	MasterIntercomNumber      uint16
	MasterChannelID           uint16
	Parameters                []record.IntercomParameter
}

func NewIntercomControl() *IntercomControl {
	return ready(&IntercomControl{base: newBase(enums.PduTypeIntercomControl)})
}

func (p *IntercomControl) bodyLength() int {
	n := 28
	for _, prm := range p.Parameters {
		n += prm.Length()
	}
	return n
}

func (p *IntercomControl) marshalBody(w *codec.Writer) {
	w.Uint8(p.ControlType)
	w.Uint8(p.CommunicationsChannel)
	p.SourceEntityID.Marshal(w)
	w.Uint16(p.SourceCommunicationsID)
	w.Uint8(p.SourceLineID)
	w.Uint8(p.TransmitPriority)
	w.Uint8(p.TransmitLineState)
	w.Uint8(p.Command)
	p.MasterIntercomReferenceID.Marshal(w)
	w.Uint16(p.MasterIntercomNumber)
	w.Uint16(p.MasterChannelID)
	w.Count32("intercom parameters", len(p.Parameters))
	for _, prm := range p.Parameters {
		prm.Marshal(w)
	}
}

func (p *IntercomControl) unmarshalBody(r *codec.Reader) {
	p.ControlType = r.Uint8()
	p.CommunicationsChannel = r.Uint8()
	p.SourceEntityID.Unmarshal(r)
	p.SourceCommunicationsID = r.Uint16()
	p.SourceLineID = r.Uint8()
	p.TransmitPriority = r.Uint8()
	p.TransmitLineState = r.Uint8()
	p.Command = r.Uint8()
	p.MasterIntercomReferenceID.Unmarshal(r)
	p.MasterIntercomNumber = r.Uint16()
	p.MasterChannelID = r.Uint16()
	n := r.Count("intercom parameters", int(r.Uint32()), record.IntercomParameterHeaderSize)
	p.Parameters = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		var prm record.IntercomParameter
		prm.Unmarshal(r)
		p.Parameters = append(p.Parameters, prm)
	}
}
