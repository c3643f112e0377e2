package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tturner/disgo/internal/config"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
)

// RunTypes lists the PDU types the codec handles. family narrows the list
// to one protocol family, by number or by part of its name.
func RunTypes(w io.Writer, family string) error {
	match := func(enums.ProtocolFamily) bool { return true }
	if family != "" {
		if n, err := strconv.ParseUint(family, 10, 8); err == nil {
			match = func(f enums.ProtocolFamily) bool { return uint64(f) == n }
		} else {
			want := strings.ToLower(family)
			match = func(f enums.ProtocolFamily) bool {
				return strings.Contains(strings.ToLower(f.String()), want)
			}
		}
	}

	meta := config.EmitMetaMap()
	fmt.Fprintf(w, "%4s  %-38s %-40s %s\n", "Type", "Name", "Family", "Emit interval")
	shown := 0
	for _, t := range pdu.SupportedTypes() {
		if !match(t.Family()) {
			continue
		}
		interval := "-"
		if m, ok := meta[t]; ok {
			interval = fmt.Sprintf("%dms", m.IntervalMs)
		}
		fmt.Fprintf(w, "%4d  %-38s %-40s %s\n", uint8(t), t, fmt.Sprintf("%s (%d)", t.Family(), uint8(t.Family())), interval)
		shown++
	}
	if shown == 0 {
		return fmt.Errorf("no PDU types in family %q", family)
	}
	return nil
}
