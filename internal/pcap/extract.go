package pcap

// DIS extraction: pull PDUs out of UDP datagrams in packet captures.

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/ip4defrag"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/pcapgo"

	"github.com/tturner/disgo/internal/dis/pdu"
)

// DISPort is the UDP port DIS traffic uses by convention.
const DISPort = 3000

// DISPacket is one PDU, or one undecodable datagram, found in a capture.
type DISPacket struct {
	Frame     int       // 1-based frame number in the capture
	Index     int       // position of the PDU within its datagram
	Timestamp time.Time // capture timestamp
	SrcIP     string
	DstIP     string
	SrcPort   uint16
	DstPort   uint16
	PDU       pdu.PDU // nil when Err is set
	Raw       []byte  // the PDU bytes, or the rest of the datagram on error
	Err       error
}

// Datagram is a UDP payload with its addressing, as seen on the wire.
type Datagram struct {
	Frame     int
	Timestamp time.Time
	SrcIP     string
	DstIP     string
	SrcPort   uint16
	DstPort   uint16
	Payload   []byte
}

// ExtractDISFromFile extracts DIS PDUs sent to or from port in a pcap or
// pcapng file. A port of 0 selects DISPort.
func ExtractDISFromFile(pcapFile string, port int) ([]DISPacket, error) {
	handle, err := pcap.OpenOffline(pcapFile)
	if err != nil {
		return nil, fmt.Errorf("open pcap file: %w", err)
	}
	defer handle.Close()

	return extractDIS(handle, handle.LinkType(), port)
}

// ExtractDIS is ExtractDISFromFile for a capture held in a reader. Both
// classic pcap and pcapng are accepted.
func ExtractDIS(r io.Reader, port int) ([]DISPacket, error) {
	src, linkType, err := openReader(r)
	if err != nil {
		return nil, err
	}
	return extractDIS(src, linkType, port)
}

// StreamDIS reads a capture as it is being written, such as tcpdump -w -
// output, and calls fn for each PDU until r reaches EOF.
func StreamDIS(r io.Reader, port int, fn func(DISPacket)) error {
	src, linkType, err := openReader(r)
	if err != nil {
		return err
	}
	return walkDatagrams(src, linkType, port, func(d Datagram) {
		for _, p := range DecodeDatagram(d) {
			fn(p)
		}
	})
}

// pcapngMagic is the block type of a pcapng Section Header Block.
const pcapngMagic = 0x0A0D0D0A

func openReader(r io.Reader) (gopacket.PacketDataSource, layers.LinkType, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, 0, fmt.Errorf("read capture header: %w", err)
	}
	if binary.BigEndian.Uint32(magic) == pcapngMagic {
		ng, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, 0, fmt.Errorf("open pcapng: %w", err)
		}
		return ng, ng.LinkType(), nil
	}
	pr, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, 0, fmt.Errorf("open pcap: %w", err)
	}
	return pr, pr.LinkType(), nil
}

func extractDIS(src gopacket.PacketDataSource, linkType layers.LinkType, port int) ([]DISPacket, error) {
	var packets []DISPacket
	err := walkDatagrams(src, linkType, port, func(d Datagram) {
		packets = append(packets, DecodeDatagram(d)...)
	})
	return packets, err
}

// walkDatagrams calls fn for every UDP datagram to or from port.
func walkDatagrams(src gopacket.PacketDataSource, linkType layers.LinkType, port int, fn func(Datagram)) error {
	packetSource := gopacket.NewPacketSource(src, linkType)
	dec := NewDecoder(port)
	for {
		packet, err := packetSource.NextPacket()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", dec.frame+1, err)
		}
		if d, ok := dec.Datagram(packet); ok {
			fn(d)
		}
	}
}

// Decoder turns captured frames into DIS datagrams, reassembling
// fragmented IPv4 on the way. It numbers frames in the order it sees them.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	port   int
	frame  int
	defrag *ip4defrag.IPv4Defragmenter
}

// NewDecoder returns a decoder for traffic to or from port; 0 selects
// DISPort.
func NewDecoder(port int) *Decoder {
	if port == 0 {
		port = DISPort
	}
	return &Decoder{port: port, defrag: ip4defrag.NewIPv4Defragmenter()}
}

// Datagram returns the DIS datagram completed by packet, if any.
func (dec *Decoder) Datagram(packet gopacket.Packet) (Datagram, bool) {
	dec.frame++
	d, ok := datagramFromPacket(packet, dec.defrag, dec.port)
	d.Frame = dec.frame
	return d, ok
}

// Packets decodes the PDUs completed by packet.
func (dec *Decoder) Packets(packet gopacket.Packet) []DISPacket {
	d, ok := dec.Datagram(packet)
	if !ok {
		return nil
	}
	return DecodeDatagram(d)
}

func datagramFromPacket(packet gopacket.Packet, defrag *ip4defrag.IPv4Defragmenter, port int) (Datagram, bool) {
	ts := packet.Metadata().Timestamp

	udpLayer := packet.Layer(layers.LayerTypeUDP)
	if udpLayer == nil {
		ip, ok := packet.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
		if !ok || ip.Protocol != layers.IPProtocolUDP {
			return Datagram{}, false
		}
		whole, err := defrag.DefragIPv4WithTimestamp(ip, ts)
		if err != nil || whole == nil {
			return Datagram{}, false
		}
		reassembled := gopacket.NewPacket(whole.Payload, layers.LayerTypeUDP, gopacket.Default)
		udpLayer = reassembled.Layer(layers.LayerTypeUDP)
	}
	udp, ok := udpLayer.(*layers.UDP)
	if !ok {
		return Datagram{}, false
	}
	if int(udp.SrcPort) != port && int(udp.DstPort) != port {
		return Datagram{}, false
	}
	if len(udp.Payload) == 0 {
		return Datagram{}, false
	}

	d := Datagram{
		Timestamp: ts,
		SrcPort:   uint16(udp.SrcPort),
		DstPort:   uint16(udp.DstPort),
		Payload:   udp.Payload,
	}
	if nl := packet.NetworkLayer(); nl != nil {
		flow := nl.NetworkFlow()
		d.SrcIP = flow.Src().String()
		d.DstIP = flow.Dst().String()
	}
	return d, true
}

// DecodeDatagram decodes every PDU in d. A decode failure ends the datagram
// with one DISPacket carrying the error and the undecoded bytes.
func DecodeDatagram(d Datagram) []DISPacket {
	var out []DISPacket
	b := d.Payload
	for i := 0; len(b) >= pdu.HeaderSize || i == 0; i++ {
		pkt := DISPacket{
			Frame:     d.Frame,
			Index:     i,
			Timestamp: d.Timestamp,
			SrcIP:     d.SrcIP,
			DstIP:     d.DstIP,
			SrcPort:   d.SrcPort,
			DstPort:   d.DstPort,
		}
		p, n, err := pdu.Decode(b)
		if err != nil {
			pkt.Raw = bytes.Clone(b)
			pkt.Err = err
			return append(out, pkt)
		}
		pkt.PDU = p
		pkt.Raw = bytes.Clone(b[:n])
		out = append(out, pkt)
		b = b[n:]
	}
	return out
}

// Endpoints formats the source and destination as ip:port pairs.
func (p DISPacket) Endpoints() (src, dst string) {
	return net.JoinHostPort(p.SrcIP, fmt.Sprint(p.SrcPort)), net.JoinHostPort(p.DstIP, fmt.Sprint(p.DstPort))
}
