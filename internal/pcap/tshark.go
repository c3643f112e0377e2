package pcap

// Cross-checking captures against Wireshark's DIS dissector.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// ResolveTsharkPath finds tshark from an explicit path, the TSHARK
// environment variable, PATH, or the usual install locations.
func ResolveTsharkPath(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv("TSHARK")
	}
	if explicit != "" {
		if filepath.Base(explicit) == explicit {
			path, err := exec.LookPath(explicit)
			if err != nil {
				return "", tsharkNotFoundError()
			}
			return path, nil
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("tshark path not found: %w", err)
		}
		return explicit, nil
	}

	if path, err := exec.LookPath("tshark"); err == nil {
		return path, nil
	}
	var candidates []string
	switch runtime.GOOS {
	case "windows":
		for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
			if dir := os.Getenv(env); dir != "" {
				candidates = append(candidates, filepath.Join(dir, "Wireshark", "tshark.exe"))
			}
		}
	case "darwin":
		candidates = append(candidates, "/Applications/Wireshark.app/Contents/MacOS/tshark")
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", tsharkNotFoundError()
}

// ErrTsharkNotFound is returned when no tshark executable can be found.
var ErrTsharkNotFound = errors.New("tshark not found")

func tsharkNotFoundError() error {
	switch runtime.GOOS {
	case "windows":
		return fmt.Errorf("%w in PATH or Program Files; install Wireshark or pass --tshark", ErrTsharkNotFound)
	case "darwin":
		return fmt.Errorf("%w in PATH or /Applications/Wireshark.app; install Wireshark or pass --tshark", ErrTsharkNotFound)
	default:
		return fmt.Errorf("%w in PATH; install wireshark/tshark or pass --tshark", ErrTsharkNotFound)
	}
}

// TsharkVersion returns the first line of tshark -v.
func TsharkVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "-v").Output()
	if err != nil {
		return "", fmt.Errorf("tshark -v: %w", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// DissectedPDU is one PDU as Wireshark's DIS dissector reported it. Header
// fields the dissector did not report are -1.
type DissectedPDU struct {
	Frame     int
	Index     int
	Version   int
	Exercise  int
	Type      int
	Family    int
	Length    int
	Malformed bool
	Expert    []string
}

// Dissect runs tshark over a capture with port decoded as DIS and returns
// every DIS PDU it found, in frame order. A port of 0 selects DISPort.
func Dissect(ctx context.Context, tsharkPath, pcapFile string, port int) ([]DissectedPDU, error) {
	if port == 0 {
		port = DISPort
	}
	cmd := exec.CommandContext(ctx, tsharkPath,
		"-r", pcapFile,
		"-d", fmt.Sprintf("udp.port==%d,dis", port),
		"-Y", "dis",
		"-T", "json",
		"--no-duplicate-keys",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("tshark exited with code %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("execute tshark: %w", err)
	}
	return ParseDissection(out)
}

// ParseDissection reads tshark -T json --no-duplicate-keys output.
func ParseDissection(data []byte) ([]DissectedPDU, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var packets []struct {
		Source struct {
			Layers map[string]interface{} `json:"layers"`
		} `json:"_source"`
	}
	if err := json.Unmarshal(data, &packets); err != nil {
		return nil, fmt.Errorf("parse tshark JSON: %w", err)
	}

	var out []DissectedPDU
	for i, p := range packets {
		layers := p.Source.Layers
		frame := i + 1
		if f, ok := layers["frame"].(map[string]interface{}); ok {
			if n, err := strconv.Atoi(firstString(f["frame.number"])); err == nil {
				frame = n
			}
		}
		_, malformed := layers["_ws.malformed"]

		var dis []map[string]interface{}
		switch v := layers["dis"].(type) {
		case map[string]interface{}:
			dis = append(dis, v)
		case []interface{}:
			for _, item := range v {
				if m, ok := item.(map[string]interface{}); ok {
					dis = append(dis, m)
				}
			}
		}
		for idx, layer := range dis {
			flat := map[string]interface{}{}
			flatten(flat, layer)
			d := DissectedPDU{
				Frame:     frame,
				Index:     idx,
				Version:   intField(flat, "dis.proto_ver"),
				Exercise:  intField(flat, "dis.exer_id", "dis.exercise_id"),
				Type:      intField(flat, "dis.pdu_type"),
				Family:    intField(flat, "dis.proto_fam"),
				Length:    intField(flat, "dis.pdu_length"),
				Malformed: malformed && idx == len(dis)-1,
				Expert:    expertMessages(layer),
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func flatten(out, nested map[string]interface{}) {
	for key, val := range nested {
		out[key] = val
		if deeper, ok := val.(map[string]interface{}); ok {
			flatten(out, deeper)
		}
	}
}

func intField(flat map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		s := firstString(flat[key])
		if s == "" {
			continue
		}
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return int(n)
		}
	}
	return -1
}

func firstString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}

// expertMessages collects _ws.expert.message values anywhere under a layer.
func expertMessages(layer map[string]interface{}) []string {
	var msgs []string
	var walk func(key string, val interface{})
	walk = func(key string, val interface{}) {
		switch v := val.(type) {
		case map[string]interface{}:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(k, v[k])
			}
		case []interface{}:
			for _, item := range v {
				walk(key, item)
			}
		case string:
			if key == "_ws.expert.message" {
				msgs = append(msgs, v)
			}
		}
	}
	walk("", layer)
	return msgs
}

// Mismatch is one disagreement between disgo and the dissector.
type Mismatch struct {
	Frame  int
	Index  int
	Field  string
	Disgo  string
	Tshark string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("frame %d.%d %s: disgo=%s tshark=%s", m.Frame, m.Index, m.Field, m.Disgo, m.Tshark)
}

// CrossCheck compares extracted packets with the dissector's view of the
// same capture, PDU by PDU. Fields the dissector did not report are not
// compared.
func CrossCheck(packets []DISPacket, dissected []DissectedPDU) []Mismatch {
	type key struct{ frame, index int }
	theirs := make(map[key]DissectedPDU, len(dissected))
	for _, d := range dissected {
		theirs[key{d.Frame, d.Index}] = d
	}

	var out []Mismatch
	seen := make(map[key]bool, len(packets))
	for _, p := range packets {
		p := p
		k := key{p.Frame, p.Index}
		seen[k] = true
		d, ok := theirs[k]
		mismatch := func(field, ours, other string) {
			out = append(out, Mismatch{Frame: p.Frame, Index: p.Index, Field: field, Disgo: ours, Tshark: other})
		}
		switch {
		case p.Err != nil && (!ok || d.Malformed):
			// Both reject it, or the dissector never saw it.
			continue
		case p.Err != nil:
			mismatch("decode", "error: "+p.Err.Error(), "ok")
			continue
		case !ok:
			mismatch("decode", "ok", "missing")
			continue
		case d.Malformed:
			mismatch("decode", "ok", "malformed")
		}

		h := p.PDU.Header()
		compare := func(field string, ours, other int) {
			if other >= 0 && ours != other {
				mismatch(field, strconv.Itoa(ours), strconv.Itoa(other))
			}
		}
		compare("version", int(h.ProtocolVersion), d.Version)
		compare("exercise", int(h.ExerciseID), d.Exercise)
		compare("type", int(h.PduType()), d.Type)
		compare("family", int(h.ProtocolFamily()), d.Family)
		compare("length", len(p.Raw), d.Length)
	}
	for _, d := range dissected {
		if !seen[key{d.Frame, d.Index}] {
			out = append(out, Mismatch{Frame: d.Frame, Index: d.Index, Field: "decode", Disgo: "missing", Tshark: "ok"})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frame != out[j].Frame {
			return out[i].Frame < out[j].Frame
		}
		return out[i].Index < out[j].Index
	})
	return out
}
