package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
)

type PCAPSummaryOptions struct {
	InputFile   string
	Port        int
	MetricsFile string // write one CSV row per PDU found
	Verbose     bool   // add interval statistics from the metrics
	Out         io.Writer
}

// RunPCAPSummary summarizes the DIS traffic in a capture file.
func RunPCAPSummary(opts PCAPSummaryOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	packets, err := pcap.ExtractDISFromFile(opts.InputFile, opts.Port)
	if err != nil {
		return disgoErrors.WrapCaptureError(err, opts.InputFile)
	}
	fmt.Fprintf(opts.Out, "Capture: %s\n", opts.InputFile)
	if err := pcap.Summarize(packets).WriteText(opts.Out); err != nil {
		return err
	}

	if opts.MetricsFile == "" && !opts.Verbose {
		return nil
	}
	sink := metrics.NewSink()
	var w *metrics.Writer
	if opts.MetricsFile != "" {
		if w, err = metrics.NewWriter(opts.MetricsFile, ""); err != nil {
			return fmt.Errorf("create metrics writer: %w", err)
		}
	}
	for _, m := range packetMetrics(packets) {
		m = sink.Record(m)
		if w != nil {
			if err := w.WriteMetric(m); err != nil {
				w.Close()
				return err
			}
		}
	}
	if w != nil {
		if err := w.Close(); err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "\nWrote %d metrics to %s\n", sink.Len(), opts.MetricsFile)
	}
	if opts.Verbose {
		fmt.Fprintf(opts.Out, "\n%s", metrics.FormatSummary(sink.GetSummary()))
	}
	return nil
}

// packetMetrics turns extracted packets into captured-traffic metrics.
func packetMetrics(packets []pcap.DISPacket) []metrics.Metric {
	out := make([]metrics.Metric, 0, len(packets))
	for _, p := range packets {
		src, _ := p.Endpoints()
		if p.Err != nil {
			out = append(out, metrics.ForError(metrics.DirectionCaptured, src, len(p.Raw), p.Err, p.Timestamp))
			continue
		}
		out = append(out, metrics.ForPDU(metrics.DirectionCaptured, src, p.PDU, len(p.Raw), p.Timestamp))
	}
	return out
}

type PCAPDumpOptions struct {
	InputFile   string
	Port        int
	Type        uint8 // 0 dumps every type
	Exercise    uint8 // 0 dumps every exercise
	MaxEntries  int
	ShowPayload bool
	Annotate    bool
	ErrorsOnly  bool
	Out         io.Writer
}

// RunPCAPDump lists the PDUs of a capture, optionally with their bytes.
func RunPCAPDump(opts PCAPDumpOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	packets, err := pcap.ExtractDISFromFile(opts.InputFile, opts.Port)
	if err != nil {
		return disgoErrors.WrapCaptureError(err, opts.InputFile)
	}

	count := 0
	for _, pkt := range packets {
		if !dumpMatches(pkt, opts) {
			continue
		}
		count++
		src, dst := pkt.Endpoints()
		ts := pkt.Timestamp.Format("15:04:05.000000")
		if pkt.Err != nil {
			fmt.Fprintf(opts.Out, "#%d frame %d.%d %s %s -> %s undecodable (%s): %v\n",
				count, pkt.Frame, pkt.Index, ts, src, dst, codec.KindName(pkt.Err), pkt.Err)
		} else {
			fmt.Fprintf(opts.Out, "#%d frame %d.%d %s %s -> %s %s\n",
				count, pkt.Frame, pkt.Index, ts, src, dst, pdu.Summary(pkt.PDU))
		}
		if opts.ShowPayload || opts.Annotate {
			fmt.Fprintf(opts.Out, "%s\n", pcap.FormatPDUHex(pkt.Raw, opts.Annotate && pkt.Err == nil))
		}
		if opts.MaxEntries > 0 && count >= opts.MaxEntries {
			break
		}
	}

	if count == 0 {
		fmt.Fprintf(opts.Out, "No matching DIS PDUs found.\n")
	}
	return nil
}

func dumpMatches(pkt pcap.DISPacket, opts PCAPDumpOptions) bool {
	if pkt.Err != nil {
		return opts.Type == 0 && opts.Exercise == 0
	}
	if opts.ErrorsOnly {
		return false
	}
	if opts.Type != 0 && pkt.PDU.Type() != enums.PduType(opts.Type) {
		return false
	}
	if opts.Exercise != 0 && pkt.PDU.Header().ExerciseID != opts.Exercise {
		return false
	}
	return true
}

type PCAPValidateOptions struct {
	InputFile string
	Port      int    // 0 selects the standard DIS port
	Tshark    string // tshark path; empty searches TSHARK, PATH and install dirs
	MaxShown  int    // mismatches to print, 0 for all
	Out       io.Writer
}

// RunPCAPValidate decodes a capture with disgo and with Wireshark's DIS
// dissector and reports every PDU on which they disagree.
func RunPCAPValidate(opts PCAPValidateOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Port == 0 {
		opts.Port = pcap.DISPort
	}
	tshark, err := pcap.ResolveTsharkPath(opts.Tshark)
	if err != nil {
		return err
	}
	ctx := context.Background()
	version, err := pcap.TsharkVersion(ctx, tshark)
	if err != nil {
		return err
	}

	packets, err := pcap.ExtractDISFromFile(opts.InputFile, opts.Port)
	if err != nil {
		return disgoErrors.WrapCaptureError(err, opts.InputFile)
	}
	dissected, err := pcap.Dissect(ctx, tshark, opts.InputFile, opts.Port)
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Capture: %s (UDP port %d)\n", opts.InputFile, opts.Port)
	fmt.Fprintf(opts.Out, "Wireshark: %s\n", version)
	fmt.Fprintf(opts.Out, "PDUs: disgo %d, tshark %d\n", len(packets), len(dissected))

	mismatches := pcap.CrossCheck(packets, dissected)
	if len(mismatches) == 0 {
		fmt.Fprintf(opts.Out, "disgo and Wireshark agree on every PDU.\n")
		return nil
	}
	fmt.Fprintf(opts.Out, "\nDisagreements:\n")
	for i, m := range mismatches {
		if opts.MaxShown > 0 && i >= opts.MaxShown {
			fmt.Fprintf(opts.Out, "  ... %d more\n", len(mismatches)-i)
			break
		}
		fmt.Fprintf(opts.Out, "  %s\n", m)
	}
	return fmt.Errorf("%d disagreements with Wireshark in %s", len(mismatches), opts.InputFile)
}
