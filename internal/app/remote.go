package app

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/tturner/disgo/internal/artifact"
	"github.com/tturner/disgo/internal/config"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/transport"
)

// SensorOptions name the host a capture is taken on. Empty fields fall
// back to capture.remote in the config file.
type SensorOptions struct {
	Sensor    string // local, host, user@host:port or ssh://...
	Interface string
	Sudo      bool
	Insecure  bool
}

type RemoteCaptureOptions struct {
	Common     CommonOptions
	Sensor     SensorOptions
	Port       int
	Duration   time.Duration
	Count      int
	RemoteDir  string
	OutputFile string
	OutputDir  string
	Summary    bool
}

// openSensor returns the transport for the sensor and the interface to
// capture on.
func openSensor(cfg *config.Config, s SensorOptions) (transport.Transport, string, error) {
	remote := cfg.Capture.Remote
	base := transport.SSHOptionsFrom(remote)
	if s.Sudo {
		base.Elevate = true
	}
	if s.Insecure {
		base.InsecureIgnoreHost = true
	}
	spec := s.Sensor
	if spec == "" {
		spec = remote.Host
	}
	t, err := transport.ParseSensor(spec, base)
	if err != nil {
		return nil, "", err
	}

	iface := s.Interface
	if iface == "" && transport.IsRemote(spec) {
		iface = remote.Interface
	}
	if iface == "" && !transport.IsRemote(spec) {
		iface = cfg.Capture.Interface
	}
	return t, iface, nil
}

// RunRemoteCapture runs tcpdump on a sensor for a fixed time or packet
// count and copies the capture here.
func RunRemoteCapture(opts RemoteCaptureOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	t, iface, err := openSensor(cfg, opts.Sensor)
	if err != nil {
		return err
	}
	defer t.Close()

	port := opts.Port
	if port == 0 {
		port = cfg.Network.Port
	}
	spec := transport.CaptureSpec{
		Interface: iface,
		Port:      port,
		Snaplen:   cfg.Capture.Snaplen,
		Duration:  opts.Duration,
		Count:     opts.Count,
		RemoteDir: opts.RemoteDir,
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	var output *artifact.OutputManager
	if opts.OutputDir != "" {
		if output, err = artifact.NewOutputManager(opts.OutputDir, "capture"); err != nil {
			return err
		}
		output.SetInterface(t.String() + " " + iface)
		if opts.OutputFile == "" {
			opts.OutputFile = output.PCAPPath()
		}
	}
	if opts.OutputFile == "" {
		opts.OutputFile = fmt.Sprintf("dis_capture_%s.pcap", time.Now().Format("20060102_150405"))
	}

	ctx, cancel := signalContext(logger, 0)
	defer cancel()

	version, err := transport.CheckSensor(ctx, t)
	if err != nil {
		return disgoErrors.WrapCaptureError(err, t.String())
	}

	fmt.Fprintf(os.Stdout, "disgo capturing on %s...\n", t)
	fmt.Fprintf(os.Stdout, "  Sensor: %s\n", version)
	if iface != "" {
		fmt.Fprintf(os.Stdout, "  Interface: %s\n", iface)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(os.Stdout, "  Duration: %s\n", opts.Duration)
	}
	if opts.Count > 0 {
		fmt.Fprintf(os.Stdout, "  Packets: %d\n", opts.Count)
	}
	fmt.Fprintf(os.Stdout, "  Output: %s\n\n", opts.OutputFile)
	logger.LogStartup("capture", "sensor", t.String(), 0, opts.Common.ConfigPath)

	start := time.Now()
	runErr := transport.Capture(ctx, t, spec, opts.OutputFile)
	if runErr != nil {
		runErr = disgoErrors.WrapCaptureError(runErr, t.String())
	} else {
		fmt.Fprintf(os.Stdout, "Capture written to %s in %s\n", opts.OutputFile, time.Since(start).Round(time.Millisecond))
	}

	var summary *metrics.Summary
	if runErr == nil && (opts.Summary || output != nil) {
		packets, err := pcap.ExtractDISFromFile(opts.OutputFile, port)
		if err != nil {
			runErr = disgoErrors.WrapCaptureError(err, opts.OutputFile)
		} else {
			sink := metrics.NewSink()
			for _, m := range packetMetrics(packets) {
				sink.Record(m)
			}
			summary = sink.GetSummary()
			if opts.Summary {
				fmt.Fprintln(os.Stdout)
				if err := pcap.Summarize(packets).WriteText(os.Stdout); err != nil {
					logger.Error("Failed to print summary: %v", err)
				}
			}
		}
	}
	if output != nil {
		if err := output.Finalize(summary, runErr); err != nil {
			logger.Error("Failed to finalize artifacts: %v", err)
		} else {
			fmt.Fprintf(os.Stdout, "Artifacts written to: %s\n", output.OutputDir())
		}
	}
	return runErr
}

type FetchOptions struct {
	Common     CommonOptions
	Sensor     SensorOptions
	RemotePath string
	OutputFile string
}

// RunFetch copies an existing capture file off a sensor.
func RunFetch(opts FetchOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	t, _, err := openSensor(cfg, opts.Sensor)
	if err != nil {
		return err
	}
	defer t.Close()

	if opts.OutputFile == "" {
		opts.OutputFile = path.Base(opts.RemotePath)
	}
	ctx, cancel := signalContext(logger, 0)
	defer cancel()

	logger.Verbose("Fetching %s from %s", opts.RemotePath, t)
	if err := transport.Fetch(ctx, t, opts.RemotePath, opts.OutputFile); err != nil {
		return disgoErrors.WrapCaptureError(err, opts.RemotePath)
	}
	fmt.Fprintf(os.Stdout, "Fetched %s from %s to %s\n", opts.RemotePath, t, opts.OutputFile)
	return nil
}
