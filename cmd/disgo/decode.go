package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type decodeFlags struct {
	hex      string
	file     string
	format   string
	annotate bool
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode the PDUs in a datagram",
		Long: `Decode every PDU in one datagram, given as hex text or as a file.

Hex may contain whitespace, colons, commas and 0x prefixes, so bytes copied
from Wireshark or a hex dump can be pasted as they are. A file may hold
the raw bytes or hex text.

If neither --hex nor --file is given, the first positional argument is
used: a file if one exists by that name, hex otherwise.`,
		Example: `  # Decode hex from the command line
  disgo decode --hex "07 01 01 01 ..."

  # Decode a datagram exported from Wireshark as YAML
  disgo decode --file es.bin --format yaml

  # Show each PDU with an annotated hex dump
  disgo decode es.bin --annotate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.hex == "" && flags.file == "" && len(args) > 0 {
				if _, err := os.Stat(args[0]); err == nil {
					flags.file = args[0]
				} else {
					flags.hex = args[0]
				}
			}
			if flags.hex == "" && flags.file == "" {
				return missingFlagError(cmd, "--hex or --file")
			}
			return app.RunDecode(app.DecodeOptions{
				Hex:      flags.hex,
				File:     flags.file,
				Format:   flags.format,
				Annotate: flags.annotate,
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.hex, "hex", "", "Datagram as hex text")
	cmd.Flags().StringVar(&flags.file, "file", "", "Datagram file, binary or hex")
	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text|yaml|json")
	cmd.Flags().BoolVar(&flags.annotate, "annotate", false, "Print an annotated hex dump under each PDU (text format)")

	return cmd
}
