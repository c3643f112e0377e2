package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type sendFlags struct {
	common      app.CommonOptions
	network     app.NetworkOptions
	spec        pduSpecFlags
	hex         string
	file        string
	interactive bool
	repeat      int
	intervalMs  int
	force       bool
}

func newSendCmd() *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one datagram",
		Long: `Send a single datagram: raw bytes from --hex or --file, or a PDU built
from the type and entity flags the way encode builds it.

Raw bytes must decode as DIS unless --force is given. The exercise, site
and application default to the config file. The socket binds an
ephemeral port so send works next to a running listener.`,
		Example: `  # Broadcast an Entity State from the config's exercise
  disgo send --type 1 --entity 1:1:7 --marking SEND01

  # Replay bytes from a file to a unicast peer five times
  disgo send --file es.bin --mode unicast --address 10.0.0.5 --repeat 5 --interval-ms 200

  # Send bytes that do not decode
  disgo send --hex "07 01 01" --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			spec, err := flags.spec.spec()
			if err != nil {
				return err
			}
			return app.RunSend(app.SendOptions{
				Common:      flags.common,
				Network:     flags.network,
				Hex:         flags.hex,
				File:        flags.file,
				Spec:        spec,
				Entity:      flags.spec.entity,
				Interactive: flags.interactive,
				Repeat:      flags.repeat,
				IntervalMs:  flags.intervalMs,
				Force:       flags.force,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addNetworkFlags(cmd, &flags.network)
	addPDUSpecFlags(cmd, &flags.spec)
	cmd.Flags().StringVar(&flags.hex, "hex", "", "Raw datagram as hex")
	cmd.Flags().StringVar(&flags.file, "file", "", "Raw datagram file, binary or hex")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Fill in the PDU with a form")
	cmd.Flags().IntVar(&flags.repeat, "repeat", 1, "Number of times to send")
	cmd.Flags().IntVar(&flags.intervalMs, "interval-ms", 0, "Delay between repeats in milliseconds")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Send raw bytes even when they do not decode")

	return cmd
}
