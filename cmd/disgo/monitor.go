package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type monitorFlags struct {
	common      app.CommonOptions
	network     app.NetworkOptions
	feed        string
	sensor      sensorFlags
	exercise    uint8
	duration    time.Duration
	metricsFile string
	jsonFile    string
}

func newMonitorCmd() *cobra.Command {
	flags := &monitorFlags{}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch live DIS traffic in a terminal dashboard",
		Long: `Open a live dashboard of DIS traffic: PDU rates per type, entities seen,
decode errors and the most recent PDUs.

Feeds:
  socket   - bind the DIS port (default)
  capture  - libpcap on a local interface; sees traffic without owning the port
  sensor   - tcpdump on a remote sensor over SSH, streamed back live

When the dashboard closes the PDUs it saw are summarized and, with
--metrics-file, written out.`,
		Example: `  # Watch the default broadcast port
  disgo monitor

  # Watch a span port with libpcap
  disgo monitor --feed capture --capture-interface eth1

  # Watch a remote sensor
  disgo monitor --feed sensor --sensor ops@sensor01 --capture-interface eth1 --sudo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunMonitor(app.MonitorOptions{
				Common:   flags.common,
				Network:  flags.network,
				Feed:     flags.feed,
				Sensor:   flags.sensor.options(),
				Exercise: flags.exercise,
				Duration: flags.duration,
				CSVFile:  flags.metricsFile,
				JSONFile: flags.jsonFile,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addNetworkFlags(cmd, &flags.network)
	addSensorFlags(cmd, &flags.sensor)
	cmd.Flags().StringVar(&flags.feed, "feed", app.FeedSocket, "Traffic source: socket|capture|sensor")
	cmd.Flags().Uint8Var(&flags.exercise, "exercise", 0, "Only this exercise (default from config)")
	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "Close the dashboard after this long")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write per-PDU metrics to this CSV on exit")
	cmd.Flags().StringVar(&flags.jsonFile, "json-file", "", "Write per-PDU metrics to this JSON file on exit")

	return cmd
}
