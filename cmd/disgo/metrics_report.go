package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type metricsReportFlags struct {
	dir string
}

func newMetricsReportCmd() *cobra.Command {
	flags := &metricsReportFlags{}

	cmd := &cobra.Command{
		Use:   "metrics-report [files...]",
		Short: "Summarize metrics CSVs from earlier runs",
		Long: `Read the metrics CSVs written by listen, sniff, emit, monitor and
pcap summary, print one row per file (PDUs, failures, rate, intervals)
and a combined summary of all of them.

--dir reads every *metrics*.csv in a directory. Files and directories may
also be given as arguments.`,
		Example: `  # Every metrics CSV in a run directory
  disgo metrics-report --dir runs/2024-05-01

  # Compare two runs
  disgo metrics-report listen_metrics.csv emit_metrics.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			paths := args
			if flags.dir != "" {
				paths = append([]string{flags.dir}, paths...)
			}
			if len(paths) == 0 {
				return missingFlagError(cmd, "--dir")
			}
			return app.RunMetricsReport(app.MetricsReportOptions{Paths: paths, Out: cmd.OutOrStdout()})
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Directory containing *metrics*.csv files")

	return cmd
}
