package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

func newTypesCmd() *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the PDU types disgo can encode and decode",
		Long: `List every PDU type with its number, protocol family and the interval
emit uses for it by default.

--family narrows the list to one family, by number or by part of its name.`,
		Example: `  # Everything
  disgo types

  # Radio communications PDUs
  disgo types --family radio

  # Family 2 (Warfare)
  disgo types --family 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if family == "" && len(args) > 0 {
				family = args[0]
			}
			return app.RunTypes(cmd.OutOrStdout(), family)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "Protocol family number or name")
	return cmd
}
