package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type listenFlags struct {
	common      app.CommonOptions
	network     app.NetworkOptions
	exercise    uint8
	count       int
	duration    time.Duration
	hex         bool
	pcapFile    string
	metricsFile string
	jsonFile    string
	outputDir   string
	progress    bool
}

func newListenCmd() *cobra.Command {
	flags := &listenFlags{}

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Receive and decode DIS PDUs",
		Long: `Bind the DIS port, decode every datagram that arrives and log each PDU.
Datagrams that do not decode are logged and counted, never dropped
silently.

--exercise keeps only one exercise. --pcap records the datagrams as they
arrive so they can be opened in Wireshark or replayed later.`,
		Example: `  # Log traffic on the default broadcast port
  disgo listen

  # Join a multicast group, keep exercise 3, stop after 1000 PDUs
  disgo listen --mode multicast --group 239.1.2.3 --exercise 3 --count 1000

  # Record traffic and metrics for five minutes
  disgo listen --duration 5m --pcap dis.pcap --metrics-file listen_metrics.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunListen(app.ListenOptions{
				Common:    flags.common,
				Network:   flags.network,
				Exercise:  flags.exercise,
				Count:     flags.count,
				Duration:  flags.duration,
				Hex:       flags.hex,
				PCAPFile:  flags.pcapFile,
				CSVFile:   flags.metricsFile,
				JSONFile:  flags.jsonFile,
				OutputDir: flags.outputDir,
				Progress:  flags.progress,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addNetworkFlags(cmd, &flags.network)
	cmd.Flags().Uint8Var(&flags.exercise, "exercise", 0, "Only this exercise (0 = all)")
	cmd.Flags().IntVar(&flags.count, "count", 0, "Stop after this many PDUs")
	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "Stop after this long")
	cmd.Flags().BoolVar(&flags.hex, "hex", false, "Log the bytes of every datagram (debug level)")
	cmd.Flags().StringVar(&flags.pcapFile, "pcap", "", "Record received datagrams to this PCAP file")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write per-PDU metrics to this CSV")
	cmd.Flags().StringVar(&flags.jsonFile, "json-file", "", "Write per-PDU metrics to this JSON file")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Output directory for artifacts (run.json, summary, metrics, pcap)")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a live PDU counter")

	return cmd
}
