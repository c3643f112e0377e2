package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type emitFlags struct {
	common      app.CommonOptions
	network     app.NetworkOptions
	profiles    []string
	types       []string
	intervalMs  int
	count       int
	entities    int
	firstEntity uint16
	marking     string
	duration    time.Duration
	metricsFile string
	jsonFile    string
	outputDir   string
	progress    bool
}

func newEmitCmd() *cobra.Command {
	flags := &emitFlags{}

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Send PDUs on a schedule",
		Long: `Send PDUs on timers, one stream per emit profile, the way a simulation
publishes its entities. Each profile names a PDU type, an interval and an
optional count; the config file holds the profiles (see "disgo config init").

--type adds an ad hoc profile for a PDU type at its default interval. With
neither --profile nor --type every profile in the config runs. --entities
sends one PDU per entity on every tick.

The run ends when every profile has sent its count, when --duration
passes, or on Ctrl+C.`,
		Example: `  # All profiles from the config until interrupted
  disgo emit --config disgo.yaml

  # 20 entities of Entity State at 5 Hz for a minute
  disgo emit --type 1 --entities 20 --interval-ms 200 --duration 1m

  # Two named profiles to a multicast group, with metrics
  disgo emit --profile entity_state --profile transmitter --mode multicast --group 239.1.2.3 --metrics-file emit_metrics.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			var types []uint8
			for _, s := range flags.types {
				t, err := parsePduType(s)
				if err != nil {
					return err
				}
				types = append(types, uint8(t))
			}
			return app.RunEmit(app.EmitOptions{
				Common:      flags.common,
				Network:     flags.network,
				Profiles:    flags.profiles,
				Types:       types,
				IntervalMs:  flags.intervalMs,
				Count:       flags.count,
				Entities:    flags.entities,
				FirstEntity: flags.firstEntity,
				Marking:     flags.marking,
				Duration:    flags.duration,
				CSVFile:     flags.metricsFile,
				JSONFile:    flags.jsonFile,
				OutputDir:   flags.outputDir,
				Progress:    flags.progress,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addNetworkFlags(cmd, &flags.network)
	cmd.Flags().StringSliceVar(&flags.profiles, "profile", nil, "Emit profile from the config (repeatable)")
	cmd.Flags().StringSliceVar(&flags.types, "type", nil, "PDU type to emit at its default interval (repeatable)")
	cmd.Flags().IntVar(&flags.intervalMs, "interval-ms", 0, "Override every profile's interval")
	cmd.Flags().IntVar(&flags.count, "count", 0, "Override every profile's tick count")
	cmd.Flags().IntVar(&flags.entities, "entities", 1, "Entities per profile")
	cmd.Flags().Uint16Var(&flags.firstEntity, "first-entity", 1, "Entity number of the first entity")
	cmd.Flags().StringVar(&flags.marking, "marking", "", "Entity marking for Entity State")
	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "Stop after this long (e.g. 30s, 5m)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write per-PDU metrics to this CSV")
	cmd.Flags().StringVar(&flags.jsonFile, "json-file", "", "Write per-PDU metrics to this JSON file")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Output directory for artifacts (run.json, summary, metrics)")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar for bounded runs")

	return cmd
}
