package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type captureFlags struct {
	common     app.CommonOptions
	sensor     sensorFlags
	port       int
	duration   time.Duration
	count      int
	remoteDir  string
	outputFile string
	outputDir  string
	summary    bool
}

func newCaptureCmd() *cobra.Command {
	flags := &captureFlags{}

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture DIS traffic with tcpdump on a sensor",
		Long: `Run tcpdump on a sensor host for a fixed time or packet count, then copy
the capture here. The sensor is reached over SSH (key, ssh-agent, or an
explicitly allowed password) and the file is copied back over SFTP and
removed from the sensor. "local" runs tcpdump on this host.

Host keys are checked against known_hosts unless --insecure is given.
tcpdump usually needs root; --sudo runs it through "sudo -n", so the
sensor must allow that without a password.`,
		Example: `  # Five minutes on a sensor's span interface
  disgo capture --sensor ops@sensor01 --capture-interface eth1 --duration 5m --sudo

  # 10000 packets through a jump key, summarized afterwards
  disgo capture --sensor "ssh://ops@10.0.0.9:2222?key=/home/ops/.ssh/sensor" --count 10000 --summary

  # Local capture into a run directory
  disgo capture --sensor local --duration 30s --output-dir runs/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.sensor.sensor == "" && len(args) > 0 {
				flags.sensor.sensor = args[0]
			}
			if flags.duration <= 0 && flags.count <= 0 {
				return missingFlagError(cmd, "--duration or --count")
			}
			return app.RunRemoteCapture(app.RemoteCaptureOptions{
				Common:     flags.common,
				Sensor:     flags.sensor.options(),
				Port:       flags.port,
				Duration:   flags.duration,
				Count:      flags.count,
				RemoteDir:  flags.remoteDir,
				OutputFile: flags.outputFile,
				OutputDir:  flags.outputDir,
				Summary:    flags.summary,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addSensorFlags(cmd, &flags.sensor)
	cmd.Flags().IntVar(&flags.port, "port", 0, "DIS UDP port (default from config)")
	cmd.Flags().DurationVar(&flags.duration, "duration", 0, "Capture for this long (at least 1s)")
	cmd.Flags().IntVar(&flags.count, "count", 0, "Stop after this many packets")
	cmd.Flags().StringVar(&flags.remoteDir, "remote-dir", "", "Directory on the sensor for the capture file (default /tmp)")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Local capture file (default dis_capture_<time>.pcap)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Output directory for artifacts (run.json, summary, pcap)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Summarize the capture once it is copied")

	return cmd
}

type fetchFlags struct {
	common     app.CommonOptions
	sensor     sensorFlags
	remotePath string
	outputFile string
}

func newFetchCmd() *cobra.Command {
	flags := &fetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Copy a capture file off a sensor",
		Long: `Copy an existing file from a sensor over SFTP, for captures left behind
by an interrupted run or taken by other tools.

If --remote-path is omitted, the first positional argument is used.`,
		Example: `  # Fetch a capture into the current directory
  disgo fetch --sensor ops@sensor01 --remote-path /tmp/exercise.pcap

  # Fetch under another name
  disgo fetch /tmp/exercise.pcap --sensor ops@sensor01 --output run3.pcap`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.remotePath == "" && len(args) > 0 {
				flags.remotePath = args[0]
			}
			if flags.remotePath == "" {
				return missingFlagError(cmd, "--remote-path")
			}
			return app.RunFetch(app.FetchOptions{
				Common:     flags.common,
				Sensor:     flags.sensor.options(),
				RemotePath: flags.remotePath,
				OutputFile: flags.outputFile,
			})
		},
	}

	addCommonFlags(cmd, &flags.common)
	addSensorFlags(cmd, &flags.sensor)
	cmd.Flags().StringVar(&flags.remotePath, "remote-path", "", "File on the sensor (required)")
	cmd.Flags().StringVar(&flags.outputFile, "output", "", "Local file (default: the remote file name)")

	return cmd
}
