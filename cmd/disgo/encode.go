package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type encodeFlags struct {
	spec        pduSpecFlags
	interactive bool
	copy        bool
	annotate    bool
	outputFile  string
}

func newEncodeCmd() *cobra.Command {
	flags := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a PDU and print its bytes",
		Long: `Build a default PDU of one type, addressed to an exercise and an entity,
and print it as hex.

--interactive opens a form to fill in the same fields. --copy puts the hex
on the clipboard for pasting into other tools.`,
		Example: `  # Entity State for entity 1:1:42
  disgo encode --type 1 --entity 1:1:42 --marking TANK42

  # Annotated dump of a Fire PDU
  disgo encode --type fire --annotate

  # Fill in the fields interactively and copy the result
  disgo encode --interactive --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.spec.pduType == "" && len(args) > 0 {
				flags.spec.pduType = args[0]
			}
			spec, err := flags.spec.spec()
			if err != nil {
				return err
			}
			return app.RunEncode(app.EncodeOptions{
				Spec:        spec,
				Entity:      flags.spec.entity,
				Interactive: flags.interactive,
				Copy:        flags.copy,
				Annotate:    flags.annotate,
				OutputFile:  flags.outputFile,
				Out:         cmd.OutOrStdout(),
			})
		},
	}

	addPDUSpecFlags(cmd, &flags.spec)
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Fill in the PDU with a form")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the hex to the clipboard")
	cmd.Flags().BoolVar(&flags.annotate, "annotate", false, "Print an annotated hex dump instead of plain hex")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Also write the raw bytes to this file")

	return cmd
}
