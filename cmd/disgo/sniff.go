package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type sniffFlags struct {
	common      app.CommonOptions
	iface       string
	port        int
	promisc     bool
	exercise    uint8
	count       int
	duration    time.Duration
	pcapFile    string
	metricsFile string
	jsonFile    string
	outputDir   string
	progress    bool
}

func newSniffCmd() *cobra.Command {
	flags := &sniffFlags{}

	cmd := &cobra.Command{
		Use:   "sniff",
		Short: "Decode DIS traffic seen on an interface",
		Long: `Capture DIS traffic on a local interface with libpcap and decode it as it
arrives. Unlike listen, sniff needs no socket on the DIS port, so it sees
traffic between other applications (span ports, taps, other hosts on the
segment). IP fragments of large PDUs are reassembled.

Capturing usually needs root or CAP_NET_RAW. Use "disgo interfaces" to
list the interfaces libpcap can open.`,
		Example: `  # Sniff the default port on eth0
  disgo sniff --interface eth0

  # Promiscuous, 60 seconds, keep a capture
  disgo sniff --interface eth1 --promisc --duration 60s --pcap sniffed.pcap`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.iface == "" && len(args) > 0 {
				flags.iface = args[0]
			}
			return app.RunSniff(app.SniffOptions{
				Common:    flags.common,
				Interface: flags.iface,
				Port:      flags.port,
				Promisc:   flags.promisc,
				Exercise:  flags.exercise,
				Count:     flags.count,
				Duration:  flags.duration,
				PCAPFile:  flags.pcapFile,
				CSVFile:   flags.metricsFile,
				JSONFile:  flags.jsonFile,
				OutputDir: flags.outputDir,
				Progress:  flags.progress,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	cmd.Flags().StringVar(&flags.iface, "interface", "", "Interface to capture on (default from config, else loopback)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "DIS UDP port (default from config)")
	cmd.Flags().BoolVar(&flags.promisc, "promisc", false, "Put the interface in promiscuous mode")
	cmd.Flags().Uint8Var(&flags.exercise, "exercise", 0, "Only this exercise (0 = all)")
	cmd.Flags().IntVar(&flags.count, "count", 0, "Stop after this many PDUs")
	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "Stop after this long")
	cmd.Flags().StringVar(&flags.pcapFile, "pcap", "", "Also write the captured packets to this PCAP file")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write per-PDU metrics to this CSV")
	cmd.Flags().StringVar(&flags.jsonFile, "json-file", "", "Write per-PDU metrics to this JSON file")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Output directory for artifacts")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a live PDU counter")

	return cmd
}

func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List interfaces available for capture",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunInterfaces(cmd.OutOrStdout())
		},
	}
}
