package pcap

// Hex dump utilities for PDU analysis

import (
	"fmt"
	"strings"

	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
)

// HexDump creates a hex dump of packet data
func HexDump(data []byte, width int) string {
	if width <= 0 {
		width = 16
	}

	var sb strings.Builder
	for i := 0; i < len(data); i += width {
		fmt.Fprintf(&sb, "%04x: ", i)

		for j := 0; j < width; j++ {
			if i+j < len(data) {
				fmt.Fprintf(&sb, "%02x ", data[i+j])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" |")
		for j := 0; j < width && i+j < len(data); j++ {
			b := data[i+j]
			if b >= 32 && b < 127 {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}

// FormatPDUHex formats a PDU as hex. With annotate set the 12-byte header is
// decoded field by field and dumped apart from the body.
func FormatPDUHex(data []byte, annotate bool) string {
	if !annotate {
		var sb strings.Builder
		for i, b := range data {
			if i > 0 && i%16 == 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%02x ", b)
		}
		return sb.String()
	}

	h, _, err := pdu.DecodeHeader(data)
	if err != nil {
		return HexDump(data, 16)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "DIS Header (%d bytes):\n", pdu.HeaderSize)
	sb.WriteString(HexDump(data[:pdu.HeaderSize], 16))
	fmt.Fprintf(&sb, "  version=%d exercise=%d type=%s(%d) family=%s(%d)\n",
		h.ProtocolVersion, h.ExerciseID, h.PduType(), uint8(h.PduType()),
		h.ProtocolFamily(), uint8(h.ProtocolFamily()))
	fmt.Fprintf(&sb, "  timestamp=%s length=%d status=0x%02x\n", h.Timestamp, h.Length(), h.Status)
	if h.PduType() > enums.MaxPduType || h.PduType() == enums.PduTypeOther {
		sb.WriteString("  (unknown PDU type)\n")
	}

	end := int(h.Length())
	if end > len(data) || end < pdu.HeaderSize {
		end = len(data)
	}
	if end > pdu.HeaderSize {
		fmt.Fprintf(&sb, "\nBody (%d bytes):\n", end-pdu.HeaderSize)
		sb.WriteString(HexDump(data[pdu.HeaderSize:end], 16))
	}
	if end < len(data) {
		fmt.Fprintf(&sb, "\nTrailing (%d bytes):\n", len(data)-end)
		sb.WriteString(HexDump(data[end:], 16))
	}
	return sb.String()
}
