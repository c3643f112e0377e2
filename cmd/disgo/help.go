package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// helpGroups orders the root command listing.
var helpGroups = []struct {
	title    string
	commands []string
}{
	{"PDUs", []string{"types", "decode", "encode"}},
	{"Exercise traffic", []string{"send", "emit", "listen", "monitor"}},
	{"Captures", []string{"sniff", "interfaces", "pcap", "capture", "fetch"}},
}

// helpFunc prints usage and the long description for subcommands, and the
// grouped command list for the root.
func helpFunc(root *cobra.Command) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if cmd != root {
			fmt.Fprint(out, cmd.UsageString())
			if cmd.Long != "" {
				fmt.Fprintf(out, "\n%s\n", cmd.Long)
			}
			return
		}

		fmt.Fprintf(out, "Usage:\n  %s <command> [arguments] [options]\n", root.Name())
		listed := map[string]bool{}
		for _, g := range helpGroups {
			fmt.Fprintf(out, "\n%s:\n", g.title)
			for _, name := range g.commands {
				if sub, _, err := root.Find([]string{name}); err == nil && sub != root && !sub.Hidden {
					fmt.Fprintf(out, "  %-15s %s\n", sub.Name(), sub.Short)
					listed[sub.Name()] = true
				}
			}
		}
		var rest []*cobra.Command
		for _, sub := range root.Commands() {
			if !sub.Hidden && !listed[sub.Name()] && sub.Name() != "help" && sub.Name() != "completion" {
				rest = append(rest, sub)
			}
		}
		if len(rest) > 0 {
			fmt.Fprintf(out, "\nOther:\n")
			for _, sub := range rest {
				fmt.Fprintf(out, "  %-15s %s\n", sub.Name(), sub.Short)
			}
		}
		fmt.Fprintf(out, "\nUse \"%s help <command>\" for more information about a command.\n", root.Name())
	}
}

// handleHelpArg treats a leading "help" argument as --help.
func handleHelpArg(cmd *cobra.Command, args []string) bool {
	if len(args) > 0 && strings.EqualFold(args[0], "help") {
		_ = cmd.Help()
		return true
	}
	return false
}

func missingFlagError(cmd *cobra.Command, flag string) error {
	_ = cmd.Help()
	return fmt.Errorf("%s: required flag %s not set", cmd.CommandPath(), flag)
}
