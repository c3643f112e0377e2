package app

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tturner/disgo/internal/capture"
	"github.com/tturner/disgo/internal/config"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/progress"
	"github.com/tturner/disgo/internal/transport"
)

type SniffOptions struct {
	Common    CommonOptions
	Interface string
	Port      int
	Promisc   bool
	Exercise  uint8
	Count     int
	Duration  time.Duration
	PCAPFile  string
	CSVFile   string
	JSONFile  string
	OutputDir string
	Progress  bool
}

// RunSniff decodes DIS traffic seen on an interface with libpcap. Unlike
// listen it needs no socket on the DIS port, so it sees traffic other
// applications exchange.
func RunSniff(opts SniffOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	if opts.Interface == "" {
		opts.Interface = cfg.Capture.Interface
	}
	if opts.Interface == "" {
		if opts.Interface, err = defaultInterface(cfg, logger); err != nil {
			return err
		}
	}
	if opts.Port == 0 {
		opts.Port = cfg.Network.Port
	}

	rec, err := newRecorder(logger, cfg, "sniff", opts.CSVFile, opts.JSONFile, opts.OutputDir)
	if err != nil {
		return err
	}
	if rec.output != nil {
		rec.output.SetInterface(opts.Interface)
		if opts.PCAPFile == "" {
			opts.PCAPFile = rec.output.PCAPPath()
		}
	}

	ctx, cancel := signalContext(logger, opts.Duration)
	defer cancel()

	var counter *progress.Counter
	if opts.Progress {
		counter = progress.NewCounter(os.Stderr, "captured", 250*time.Millisecond)
	}

	var mu sync.Mutex
	seen := 0
	handle := func(p pcap.DISPacket) {
		mu.Lock()
		defer mu.Unlock()
		if opts.Count > 0 && seen >= opts.Count {
			return
		}
		src, dst := p.Endpoints()
		if p.Err != nil {
			logger.LogDecodeError(src, len(p.Raw), p.Err)
			rec.record(metrics.ForError(metrics.DirectionCaptured, src, len(p.Raw), p.Err, p.Timestamp))
			if counter != nil {
				counter.Add(0, 1)
			}
			return
		}
		if opts.Exercise != 0 && p.PDU.Header().ExerciseID != opts.Exercise {
			return
		}
		logger.LogPDU("SNIFF", src+" -> "+dst, p.PDU)
		rec.record(metrics.ForPDU(metrics.DirectionCaptured, src, p.PDU, len(p.Raw), p.Timestamp))
		if counter != nil {
			counter.Add(1, 0)
		}
		seen++
		if opts.Count > 0 && seen >= opts.Count {
			cancel()
		}
	}

	fmt.Fprintf(os.Stdout, "disgo sniffing...\n")
	fmt.Fprintf(os.Stdout, "  Interface: %s\n", opts.Interface)
	fmt.Fprintf(os.Stdout, "  Filter: %s\n", capture.BPFFilter(opts.Port))
	if opts.PCAPFile != "" {
		fmt.Fprintf(os.Stdout, "  PCAP: %s\n", opts.PCAPFile)
	}
	fmt.Fprintf(os.Stdout, "  Press Ctrl+C to stop\n\n")
	logger.LogStartup("sniff", "capture", opts.Interface, opts.Exercise, opts.Common.ConfigPath)

	stats, runErr := capture.Sniff(ctx, capture.Options{
		Interface:  opts.Interface,
		Port:       opts.Port,
		Snaplen:    cfg.Capture.Snaplen,
		Promisc:    opts.Promisc,
		OutputFile: opts.PCAPFile,
	}, handle)
	if counter != nil {
		counter.Finish()
	}
	if runErr != nil {
		runErr = disgoErrors.WrapCaptureError(runErr, opts.Interface)
	}
	rec.finish(os.Stdout, opts.Common.Verbose || opts.Common.Debug, "sniff", stats.Elapsed, runErr)
	logger.Verbose("Capture saw %d frames, %d PDUs, %d undecodable datagrams", stats.Frames, stats.PDUs, stats.Errors)
	return runErr
}

// defaultInterface picks the device that routes to the configured
// exercise address, or loopback when there is no route.
func defaultInterface(cfg *config.Config, logger *logging.Logger) (string, error) {
	target := describeHost(transport.EndpointConfigFrom(cfg.Network))
	if target != "" {
		iface, err := capture.InterfaceFor(target)
		if err == nil {
			fmt.Fprintf(os.Stdout, "No interface given; using %s (route to %s)\n", iface, target)
			return iface, nil
		}
		logger.Verbose("No route interface for %s: %v", target, err)
	}
	iface, err := capture.LoopbackInterface()
	if err != nil {
		return "", disgoErrors.WrapCaptureError(err, "loopback interface")
	}
	fmt.Fprintf(os.Stdout, "No interface given; using loopback %s\n", iface)
	return iface, nil
}

// RunInterfaces lists the devices libpcap can capture on.
func RunInterfaces(w io.Writer) error {
	ifaces, err := capture.ListInterfaces()
	if err != nil {
		return disgoErrors.WrapCaptureError(err, "interface list")
	}
	if len(ifaces) == 0 {
		fmt.Fprintln(w, "No capture interfaces found (libpcap may need elevated privileges).")
		return nil
	}
	for _, iface := range ifaces {
		line := iface.Name
		if len(iface.Addresses) > 0 {
			line += "  " + strings.Join(iface.Addresses, ", ")
		}
		if iface.Description != "" {
			line += "  (" + iface.Description + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// datagramOf adapts a captured PDU for consumers of received datagrams.
func datagramOf(p pcap.DISPacket) transport.Datagram {
	d := transport.Datagram{
		Raw:      p.Raw,
		Received: p.Timestamp,
		Err:      p.Err,
	}
	if ip := net.ParseIP(p.SrcIP); ip != nil {
		d.From = &net.UDPAddr{IP: ip, Port: int(p.SrcPort)}
	}
	if p.PDU != nil {
		d.PDUs = append(d.PDUs, p.PDU)
	}
	return d
}
