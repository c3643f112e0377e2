package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tturner/disgo/internal/dis/pdu"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/pcap"
)

// Output formats of decode.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type DecodeOptions struct {
	Hex      string // hex text; whitespace, colons and 0x prefixes are ignored
	File     string // binary file, or a text file of hex
	Format   string // text, yaml or json
	Annotate bool   // annotated hex dump under each PDU in text format
	Out      io.Writer
}

// headerView is how a header is shown in yaml and json output.
type headerView struct {
	ProtocolVersion uint8  `yaml:"protocol_version" json:"protocol_version"`
	ExerciseID      uint8  `yaml:"exercise_id" json:"exercise_id"`
	PduType         uint8  `yaml:"pdu_type" json:"pdu_type"`
	PduName         string `yaml:"pdu_name" json:"pdu_name"`
	Family          uint8  `yaml:"family" json:"family"`
	FamilyName      string `yaml:"family_name" json:"family_name"`
	Timestamp       string `yaml:"timestamp" json:"timestamp"`
	Length          int    `yaml:"length" json:"length"`
	Status          uint8  `yaml:"status" json:"status"`
}

type pduView struct {
	Offset int        `yaml:"offset" json:"offset"`
	Header headerView `yaml:"header" json:"header"`
	Body   any        `yaml:"body" json:"body"`
}

// RunDecode decodes every PDU in a datagram given as hex or as a file and
// prints them.
func RunDecode(opts DecodeOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	source := "hex input"
	data, err := ParseHex(opts.Hex)
	if opts.File != "" {
		source = opts.File
		data, err = readDatagramFile(opts.File)
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no bytes to decode")
	}

	var views []pduView
	offset := 0
	var decodeErr error
	for len(data)-offset >= pdu.HeaderSize {
		p, n, err := pdu.Decode(data[offset:])
		if err != nil {
			decodeErr = err
			break
		}
		if opts.Format == "" || opts.Format == FormatText {
			fmt.Fprintf(opts.Out, "PDU %d @%d: %s\n", len(views)+1, offset, pdu.Summary(p))
			if opts.Annotate {
				fmt.Fprintf(opts.Out, "%s\n", pcap.FormatPDUHex(data[offset:offset+n], true))
			}
		}
		views = append(views, viewOf(p, offset))
		offset += n
	}
	if decodeErr == nil && len(views) == 0 {
		decodeErr = fmt.Errorf("%d bytes is shorter than a PDU header", len(data))
	}

	switch opts.Format {
	case "", FormatText:
		if left := len(data) - offset; decodeErr == nil && left > 0 {
			fmt.Fprintf(opts.Out, "(%d trailing bytes ignored)\n", left)
		}
	case FormatYAML:
		for i := range views {
			node, err := yamlNode(views[i].Body)
			if err != nil {
				return err
			}
			views[i].Body = node
		}
		enc := yaml.NewEncoder(opts.Out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", opts.Format)
	}

	if decodeErr != nil {
		if opts.Format == "" || opts.Format == FormatText {
			fmt.Fprintf(opts.Out, "Undecodable bytes at offset %d:\n%s", offset, pcap.HexDump(data[offset:], 16))
		}
		return disgoErrors.WrapDecodeError(decodeErr, source)
	}
	return nil
}

func viewOf(p pdu.PDU, offset int) pduView {
	h := p.Header()
	return pduView{
		Offset: offset,
		Header: headerView{
			ProtocolVersion: uint8(h.ProtocolVersion),
			ExerciseID:      h.ExerciseID,
			PduType:         uint8(h.PduType()),
			PduName:         h.PduType().String(),
			Family:          uint8(h.ProtocolFamily()),
			FamilyName:      h.ProtocolFamily().String(),
			Timestamp:       h.Timestamp.String(),
			Length:          h.Length(),
			Status:          h.Status,
		},
		Body: p,
	}
}

// yamlNode renders v through its JSON form, which keeps the field order
// of the Go struct, as a block-style YAML node.
func yamlNode(v any) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert body: %w", err)
	}
	node := doc.Content[0]
	blockStyle(node)
	return node, nil
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
		if n.Kind == yaml.SequenceNode && len(n.Content) > 0 && n.Content[0].Kind == yaml.ScalarNode {
			n.Style = yaml.FlowStyle
		}
	}
	if n.Kind == yaml.ScalarNode && n.Style == yaml.DoubleQuotedStyle {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// ParseHex decodes hex text as typed by people or copied from tools:
// whitespace, colons, commas and 0x prefixes are ignored.
func ParseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.ToLower(s), "0x", "")
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':', ',', '-':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

// readDatagramFile returns the bytes of a binary file, or of the hex text
// it contains.
func readDatagramFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if b, err := ParseHex(string(data)); err == nil && len(b) > 0 {
		return b, nil
	}
	return data, nil
}
