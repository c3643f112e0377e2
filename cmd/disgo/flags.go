package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/ui"
)

// Flags shared by the commands that load the config file.
func addCommonFlags(cmd *cobra.Command, c *app.CommonOptions) {
	cmd.Flags().StringVar(&c.ConfigPath, "config", "", "Config file (default: built-in defaults)")
	cmd.Flags().BoolVar(&c.QuickStart, "quick-start", false, "Write a default config to --config if it is missing")
	cmd.Flags().StringVar(&c.LogLevel, "log-level", "", "Log level: silent|error|info|verbose|debug (default from config)")
	cmd.Flags().StringVar(&c.LogFile, "log-file", "", "Log file path (default: stdout/stderr only)")
	cmd.Flags().BoolVar(&c.Verbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&c.Debug, "debug", false, "Enable debug output")
}

func addNetworkFlags(cmd *cobra.Command, n *app.NetworkOptions) {
	cmd.Flags().StringVar(&n.Mode, "mode", "", "Network mode: unicast|broadcast|multicast (default from config)")
	cmd.Flags().StringVar(&n.Address, "address", "", "Unicast peer or broadcast address")
	cmd.Flags().StringVar(&n.Group, "group", "", "Multicast group")
	cmd.Flags().IntVar(&n.Port, "port", 0, "DIS UDP port (default 3000)")
	cmd.Flags().StringVar(&n.Interface, "interface", "", "Interface for multicast membership")
	cmd.Flags().StringVar(&n.Listen, "listen", "", "Local address to bind")
}

// pduSpecFlags are the flags that describe one PDU to build.
type pduSpecFlags struct {
	pduType  string
	exercise uint8
	entity   string
	marking  string
	comment  string
	datumID  uint32
	noStamp  bool
}

func addPDUSpecFlags(cmd *cobra.Command, f *pduSpecFlags) {
	cmd.Flags().StringVar(&f.pduType, "type", "", "PDU type by number or name, e.g. 1 or \"entity state\" (default 1)")
	cmd.Flags().Uint8Var(&f.exercise, "exercise", 0, "Exercise ID")
	cmd.Flags().StringVar(&f.entity, "entity", "", "Entity ID as site:application:entity")
	cmd.Flags().StringVar(&f.marking, "marking", "", "Entity marking (Entity State)")
	cmd.Flags().StringVar(&f.comment, "comment", "", "Comment text (Comment PDU)")
	cmd.Flags().Uint32Var(&f.datumID, "datum-id", 0, "Datum ID for --comment")
	cmd.Flags().BoolVar(&f.noStamp, "no-timestamp", false, "Leave the timestamp zero")
}

func (f *pduSpecFlags) spec() (ui.PDUSpec, error) {
	s := ui.PDUSpec{
		ExerciseID: f.exercise,
		Marking:    f.marking,
		Comment:    f.comment,
		DatumID:    f.datumID,
		Stamp:      !f.noStamp,
	}
	if f.pduType != "" {
		t, err := parsePduType(f.pduType)
		if err != nil {
			return s, err
		}
		s.Type = t
	}
	return s, nil
}

// parsePduType accepts a type number or a type name in any case.
func parsePduType(s string) (enums.PduType, error) {
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return enums.PduType(n), nil
	}
	want := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), " pdu")
	for _, t := range enums.PduTypes() {
		if strings.ToLower(t.String()) == want {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown PDU type %q (see \"disgo types\")", s)
}
