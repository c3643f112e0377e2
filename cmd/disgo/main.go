package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "disgo",
		Short: "DIS (IEEE 1278.1) PDU toolkit",
		Long: `disgo encodes, decodes, sends and watches Distributed Interactive
Simulation traffic. It speaks all 72 PDU types of IEEE 1278.1-2012 over
UDP broadcast, multicast or unicast, and reads DIS out of packet captures
taken here or on a remote sensor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newEmitCmd())
	rootCmd.AddCommand(newListenCmd())
	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newSniffCmd())
	rootCmd.AddCommand(newInterfacesCmd())
	rootCmd.AddCommand(newPcapCmd())
	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newMetricsReportCmd())
	rootCmd.AddCommand(newConfigCmd())

	rootCmd.SetHelpFunc(helpFunc(rootCmd))
	return rootCmd
}
