package pcap

// Capture writing: wrap DIS datagrams in Ethernet/IPv4/UDP and store them
// with pcapgo, for recordings and test fixtures.

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/tturner/disgo/internal/dis/pdu"
)

// Frame is one datagram to be written to a capture.
type Frame struct {
	Timestamp time.Time
	SrcIP     net.IP
	DstIP     net.IP
	SrcPort   uint16
	DstPort   uint16
	Payload   []byte
}

// FrameForPDUs encodes ps back to back into the payload of one frame.
func FrameForPDUs(ts time.Time, src, dst *net.UDPAddr, ps ...pdu.PDU) (Frame, error) {
	var payload []byte
	for _, p := range ps {
		var err error
		if payload, err = pdu.Append(payload, p); err != nil {
			return Frame{}, fmt.Errorf("encode %s: %w", p.Type(), err)
		}
	}
	return Frame{
		Timestamp: ts,
		SrcIP:     src.IP,
		DstIP:     dst.IP,
		SrcPort:   uint16(src.Port),
		DstPort:   uint16(dst.Port),
		Payload:   payload,
	}, nil
}

// Recorder appends frames to a classic pcap stream.
type Recorder struct {
	writer *pcapgo.Writer
	opts   gopacket.SerializeOptions
	count  int
}

// NewRecorder writes the pcap file header to w and returns a recorder.
func NewRecorder(w io.Writer) (*Recorder, error) {
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(65535, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("write pcap header: %w", err)
	}
	return &Recorder{
		writer: writer,
		opts:   gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true},
	}, nil
}

// Write serializes f as an Ethernet frame and appends it.
func (r *Recorder) Write(f Frame) error {
	data, err := serializeFrame(f, r.opts)
	if err != nil {
		return err
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     f.Timestamp,
		CaptureLength: len(data),
		Length:        len(data),
	}
	if err := r.writer.WritePacket(ci, data); err != nil {
		return fmt.Errorf("write packet: %w", err)
	}
	r.count++
	return nil
}

// Count returns the number of frames written.
func (r *Recorder) Count() int {
	return r.count
}

// WriteDISCapture writes frames as a complete pcap stream.
func WriteDISCapture(w io.Writer, frames []Frame) error {
	rec, err := NewRecorder(w)
	if err != nil {
		return err
	}
	for i, f := range frames {
		if err := rec.Write(f); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return nil
}

func serializeFrame(f Frame, opts gopacket.SerializeOptions) ([]byte, error) {
	src, dst := f.SrcIP.To4(), f.DstIP.To4()
	if src == nil || dst == nil {
		return nil, fmt.Errorf("frame addresses %v -> %v are not IPv4", f.SrcIP, f.DstIP)
	}
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0x00, src[0], src[1], src[2], src[3]},
		DstMAC:       dstMAC(dst),
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		SrcIP:    src,
		DstIP:    dst,
		Protocol: layers.IPProtocolUDP,
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(f.SrcPort),
		DstPort: layers.UDPPort(f.DstPort),
	}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		return nil, fmt.Errorf("udp checksum: %w", err)
	}

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(f.Payload)); err != nil {
		return nil, fmt.Errorf("serialize frame: %w", err)
	}
	return buf.Bytes(), nil
}

// dstMAC maps broadcast and multicast destinations to their Ethernet
// addresses; unicast gets a locally administered address.
func dstMAC(ip net.IP) net.HardwareAddr {
	switch {
	case ip.Equal(net.IPv4bcast):
		return net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	case ip.IsMulticast():
		return net.HardwareAddr{0x01, 0x00, 0x5e, ip[1] & 0x7f, ip[2], ip[3]}
	}
	return net.HardwareAddr{0x02, 0x00, ip[0], ip[1], ip[2], ip[3]}
}
