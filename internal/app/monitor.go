package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tturner/disgo/internal/capture"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/transport"
	"github.com/tturner/disgo/internal/tui"
)

// Monitor feeds.
const (
	FeedSocket  = "socket"  // bind the DIS port
	FeedCapture = "capture" // libpcap on a local interface
	FeedSensor  = "sensor"  // tcpdump on a sensor, streamed back
)

type MonitorOptions struct {
	Common   CommonOptions
	Network  NetworkOptions
	Feed     string
	Sensor   SensorOptions // capture and sensor feeds
	Exercise uint8
	Duration time.Duration
	CSVFile  string
	JSONFile string
}

// RunMonitor shows live DIS traffic in the terminal UI. When the UI exits
// the PDUs it saw are written to the metrics files and summarized.
func RunMonitor(opts MonitorOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()
	if opts.Exercise == 0 {
		opts.Exercise = cfg.Exercise.ExerciseID
	}

	ctx, cancel := signalContext(logger, opts.Duration)
	defer cancel()

	var src tui.Source
	var title string
	switch opts.Feed {
	case "", FeedSocket:
		ec := endpointConfig(cfg, opts.Network)
		ep := transport.NewEndpoint(ec)
		title = "disgo monitor " + describeEndpoint(ep.Config())
		if err := ep.Open(ctx); err != nil {
			return disgoErrors.WrapNetworkError(err, describeEndpoint(ep.Config()))
		}
		defer ep.Close()
		src = ep
	case FeedCapture:
		iface := opts.Sensor.Interface
		if iface == "" {
			iface = cfg.Capture.Interface
		}
		if iface == "" {
			if iface, err = defaultInterface(cfg, logger); err != nil {
				return err
			}
		}
		feed := make(chan transport.Datagram, 256)
		c, err := capture.StartCapture(capture.Options{
			Interface: iface,
			Port:      cfg.Network.Port,
			Snaplen:   cfg.Capture.Snaplen,
		}, forward(ctx, feed))
		if err != nil {
			return disgoErrors.WrapCaptureError(err, iface)
		}
		defer c.Stop()
		title = "disgo monitor (capture " + iface + ")"
		src = tui.ChannelSource(feed)
	case FeedSensor:
		t, iface, err := openSensor(cfg, opts.Sensor)
		if err != nil {
			return err
		}
		defer t.Close()
		feed := make(chan transport.Datagram, 256)
		go streamSensor(ctx, logger.Error, t, transport.CaptureSpec{
			Interface: iface,
			Port:      cfg.Network.Port,
			Snaplen:   cfg.Capture.Snaplen,
		}, feed)
		title = "disgo monitor (" + t.String() + ")"
		src = tui.ChannelSource(feed)
	default:
		return fmt.Errorf("unknown monitor feed %q (want socket, capture or sensor)", opts.Feed)
	}

	logger.LogStartup("monitor", opts.Feed, title, opts.Exercise, opts.Common.ConfigPath)
	start := time.Now()
	m, runErr := tui.Run(ctx, src, tui.Options{Title: title, Exercise: opts.Exercise})
	elapsed := time.Since(start)
	cancel()
	if runErr == nil {
		runErr = m.Err()
	}

	rec, err := newRecorder(logger, cfg, "monitor", opts.CSVFile, opts.JSONFile, "")
	if err != nil {
		return err
	}
	for _, metric := range m.Sink().GetMetrics() {
		rec.record(metric)
	}
	rec.finish(os.Stdout, true, "monitor", elapsed, runErr)
	return runErr
}

// forward returns a capture callback that hands PDUs to the monitor until
// ctx is done.
func forward(ctx context.Context, feed chan<- transport.Datagram) func(pcap.DISPacket) {
	return func(p pcap.DISPacket) {
		select {
		case feed <- datagramOf(p):
		case <-ctx.Done():
		}
	}
}

// streamSensor pipes tcpdump output from the sensor through the pcap
// reader into feed, and closes feed when the stream ends.
func streamSensor(ctx context.Context, logf func(string, ...interface{}), t transport.Transport, spec transport.CaptureSpec, feed chan<- transport.Datagram) {
	defer close(feed)
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(transport.Stream(ctx, t, spec, pw))
	}()
	err := pcap.StreamDIS(pr, spec.Port, forward(ctx, feed))
	pr.Close()
	if err != nil && ctx.Err() == nil {
		logf("Sensor stream from %s ended: %v", t, err)
	}
}
