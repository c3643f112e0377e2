package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

func newPcapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcap",
		Short: "Read DIS traffic from capture files",
		Long: `Read DIS PDUs out of pcap or pcapng files written by tcpdump, Wireshark,
"disgo listen --pcap" or "disgo capture".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newPcapSummaryCmd())
	cmd.AddCommand(newPcapDumpCmd())
	cmd.AddCommand(newPcapReplayCmd())
	cmd.AddCommand(newPcapValidateCmd())
	return cmd
}

type pcapSummaryFlags struct {
	inputFile   string
	port        int
	metricsFile string
	verbose     bool
}

func newPcapSummaryCmd() *cobra.Command {
	flags := &pcapSummaryFlags{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the DIS traffic in a capture",
		Long: `Count datagrams, PDUs, decode errors, entities, PDU types, exercises and
senders in a capture file.

If --input is omitted, the first positional argument is used.`,
		Example: `  # Summarize a capture
  disgo pcap summary --input exercise.pcap

  # Also write per-PDU metrics and interval statistics
  disgo pcap summary exercise.pcap --metrics-file pcap_metrics.csv --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			return app.RunPCAPSummary(app.PCAPSummaryOptions{
				InputFile:   flags.inputFile,
				Port:        flags.port,
				MetricsFile: flags.metricsFile,
				Verbose:     flags.verbose,
				Out:         cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input PCAP file (required)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Only this UDP port (0 = any traffic that decodes as DIS)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write one CSV row per PDU found")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Add interval statistics")

	return cmd
}

type pcapDumpFlags struct {
	inputFile   string
	port        int
	pduType     string
	exercise    uint8
	maxEntries  int
	showPayload bool
	annotate    bool
	errorsOnly  bool
}

func newPcapDumpCmd() *cobra.Command {
	flags := &pcapDumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "List the PDUs in a capture",
		Long: `List every PDU in a capture with its frame, time, endpoints and summary,
optionally filtered by type or exercise and with its bytes.

If --input is omitted, the first positional argument is used.`,
		Example: `  # Every PDU
  disgo pcap dump exercise.pcap

  # First 10 Fire PDUs with annotated bytes
  disgo pcap dump --input exercise.pcap --type fire --max 10 --annotate

  # Only the bytes that did not decode
  disgo pcap dump exercise.pcap --errors --payload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			var pduType uint8
			if flags.pduType != "" {
				t, err := parsePduType(flags.pduType)
				if err != nil {
					return err
				}
				pduType = uint8(t)
			}
			return app.RunPCAPDump(app.PCAPDumpOptions{
				InputFile:   flags.inputFile,
				Port:        flags.port,
				Type:        pduType,
				Exercise:    flags.exercise,
				MaxEntries:  flags.maxEntries,
				ShowPayload: flags.showPayload,
				Annotate:    flags.annotate,
				ErrorsOnly:  flags.errorsOnly,
				Out:         cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input PCAP file (required)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "Only this UDP port (0 = any traffic that decodes as DIS)")
	cmd.Flags().StringVar(&flags.pduType, "type", "", "Only this PDU type, by number or name")
	cmd.Flags().Uint8Var(&flags.exercise, "exercise", 0, "Only this exercise")
	cmd.Flags().IntVar(&flags.maxEntries, "max", 0, "Stop after this many PDUs")
	cmd.Flags().BoolVar(&flags.showPayload, "payload", false, "Show the bytes of each PDU")
	cmd.Flags().BoolVar(&flags.annotate, "annotate", false, "Show the bytes annotated with header fields")
	cmd.Flags().BoolVar(&flags.errorsOnly, "errors", false, "Only bytes that did not decode")

	return cmd
}

type pcapReplayFlags struct {
	common          app.CommonOptions
	network         app.NetworkOptions
	inputFile       string
	filterPort      int
	realtime        bool
	speed           float64
	intervalMs      int
	limit           int
	exercise        uint8
	rewriteExercise uint8
	skipErrors      bool
	progress        bool
}

func newPcapReplayCmd() *cobra.Command {
	flags := &pcapReplayFlags{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Send the DIS traffic of a capture back onto the network",
		Long: `Resend the DIS datagrams of a capture through a UDP socket, with the
capture's own timing (--realtime, optionally sped up) or a fixed gap.
Datagrams keep their PDUs together; bytes that did not decode are sent
as they were unless --skip-errors is given.

--rewrite-exercise moves the replayed traffic into another exercise so it
does not mix with a live one.

If --input is omitted, the first positional argument is used.`,
		Example: `  # Replay with the original timing
  disgo pcap replay exercise.pcap --realtime

  # Twice as fast into exercise 9 on a multicast group
  disgo pcap replay --input exercise.pcap --realtime --speed 2 --rewrite-exercise 9 --mode multicast --group 239.1.2.3

  # First 100 datagrams, 10 ms apart
  disgo pcap replay exercise.pcap --interval-ms 10 --limit 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			return app.RunReplay(app.ReplayOptions{
				Common:          flags.common,
				Network:         flags.network,
				InputFile:       flags.inputFile,
				Port:            flags.filterPort,
				Realtime:        flags.realtime,
				Speed:           flags.speed,
				IntervalMs:      flags.intervalMs,
				Limit:           flags.limit,
				Exercise:        flags.exercise,
				RewriteExercise: flags.rewriteExercise,
				SkipErrors:      flags.skipErrors,
				Progress:        flags.progress,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addNetworkFlags(cmd, &flags.network)
	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input PCAP file (required)")
	cmd.Flags().IntVar(&flags.filterPort, "filter-port", 0, "Only datagrams on this UDP port in the capture (0 = any)")
	cmd.Flags().BoolVar(&flags.realtime, "realtime", false, "Keep the capture's timing")
	cmd.Flags().Float64Var(&flags.speed, "speed", 1, "Speed multiplier for --realtime")
	cmd.Flags().IntVar(&flags.intervalMs, "interval-ms", 0, "Gap between datagrams when not --realtime")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "Stop after this many datagrams")
	cmd.Flags().Uint8Var(&flags.exercise, "exercise", 0, "Only PDUs of this exercise")
	cmd.Flags().Uint8Var(&flags.rewriteExercise, "rewrite-exercise", 0, "Send every PDU with this exercise ID")
	cmd.Flags().BoolVar(&flags.skipErrors, "skip-errors", false, "Drop bytes that did not decode")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar")

	return cmd
}

type pcapValidateFlags struct {
	inputFile string
	port      int
	tshark    string
	maxShown  int
}

func newPcapValidateCmd() *cobra.Command {
	flags := &pcapValidateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check disgo's decoding of a capture against Wireshark",
		Long: `Decode a capture with disgo and with Wireshark's DIS dissector (tshark)
and compare the two PDU by PDU: which PDUs each side found, whether either
rejected one, and the header fields version, exercise, type, family and
length. The command fails if they disagree anywhere.

tshark is taken from --tshark, the TSHARK environment variable, PATH or
the usual Wireshark install location.

If --input is omitted, the first positional argument is used.`,
		Example: `  # Cross-check a capture taken with disgo listen --pcap
  disgo pcap validate exercise.pcap

  # DIS on a non-standard port, with a specific tshark
  disgo pcap validate --input lab.pcap --port 3001 --tshark /opt/wireshark/bin/tshark`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			return app.RunPCAPValidate(app.PCAPValidateOptions{
				InputFile: flags.inputFile,
				Port:      flags.port,
				Tshark:    flags.tshark,
				MaxShown:  flags.maxShown,
				Out:       cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input PCAP file (required)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "UDP port carrying DIS (default 3000)")
	cmd.Flags().StringVar(&flags.tshark, "tshark", "", "Path to tshark")
	cmd.Flags().IntVar(&flags.maxShown, "max", 50, "Show at most this many disagreements (0 = all)")

	return cmd
}
