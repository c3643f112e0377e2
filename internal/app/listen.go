package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/tturner/disgo/internal/dis/pdu"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/progress"
	"github.com/tturner/disgo/internal/transport"
)

type ListenOptions struct {
	Common    CommonOptions
	Network   NetworkOptions
	Exercise  uint8 // 0 accepts every exercise
	Count     int   // stop after this many PDUs; 0 = no limit
	Duration  time.Duration
	Hex       bool // log the bytes of every datagram at debug level
	PCAPFile  string
	CSVFile   string
	JSONFile  string
	OutputDir string
	Progress  bool
}

// RunListen receives DIS traffic until interrupted, the duration passes
// or Count PDUs have arrived.
func RunListen(opts ListenOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	exercise := opts.Exercise
	ec := endpointConfig(cfg, opts.Network)
	ep := transport.NewEndpoint(ec)
	ec = ep.Config()
	addr := describeEndpoint(ec)

	rec, err := newRecorder(logger, cfg, "listen", opts.CSVFile, opts.JSONFile, opts.OutputDir)
	if err != nil {
		return err
	}
	if rec.output != nil {
		rec.output.SetNetwork(ec.Mode, addr, exercise)
		if opts.PCAPFile == "" {
			opts.PCAPFile = rec.output.PCAPPath()
		}
	}

	var capFile *os.File
	var pcapRec *pcap.Recorder
	if opts.PCAPFile != "" {
		capFile, err = os.Create(opts.PCAPFile)
		if err != nil {
			return disgoErrors.WrapCaptureError(err, opts.PCAPFile)
		}
		defer capFile.Close()
		if pcapRec, err = pcap.NewRecorder(capFile); err != nil {
			return disgoErrors.WrapCaptureError(err, opts.PCAPFile)
		}
	}

	ctx, cancel := signalContext(logger, opts.Duration)
	defer cancel()

	if err := ep.Open(ctx); err != nil {
		return disgoErrors.WrapNetworkError(err, ec.ListenAddress)
	}
	defer ep.Close()

	fmt.Fprintf(os.Stdout, "disgo listening...\n")
	fmt.Fprintf(os.Stdout, "  Mode: %s\n", ec.Mode)
	fmt.Fprintf(os.Stdout, "  Bound: %s\n", ep.LocalAddr())
	if exercise != 0 {
		fmt.Fprintf(os.Stdout, "  Exercise: %d\n", exercise)
	}
	if opts.PCAPFile != "" {
		fmt.Fprintf(os.Stdout, "  PCAP: %s\n", opts.PCAPFile)
	}
	fmt.Fprintf(os.Stdout, "  Press Ctrl+C to stop\n\n")
	logger.LogStartup("listen", ec.Mode, addr, exercise, opts.Common.ConfigPath)

	var counter *progress.Counter
	if opts.Progress {
		counter = progress.NewCounter(os.Stderr, "received", 250*time.Millisecond)
	}

	l := &listener{
		logger:   logger,
		rec:      rec,
		pcap:     pcapRec,
		local:    ep.LocalAddr(),
		exercise: exercise,
		count:    opts.Count,
		hex:      opts.Hex,
		counter:  counter,
	}

	start := time.Now()
	runErr := l.run(ctx, ep)
	if counter != nil {
		counter.Finish()
	}
	rec.finish(os.Stdout, opts.Common.Verbose || opts.Common.Debug, "listen", time.Since(start), runErr)
	if pcapRec != nil {
		fmt.Fprintf(os.Stdout, "Wrote %d frames to %s\n", pcapRec.Count(), opts.PCAPFile)
	}
	if runErr != nil {
		return disgoErrors.WrapNetworkError(runErr, ec.ListenAddress)
	}
	return nil
}

// receiver is the part of an endpoint the listen loop needs.
type receiver interface {
	Receive(ctx context.Context, timeout time.Duration) (transport.Datagram, error)
}

type listener struct {
	logger   *logging.Logger
	rec      *recorder
	pcap     *pcap.Recorder
	local    *net.UDPAddr
	exercise uint8
	count    int
	hex      bool
	counter  *progress.Counter
	seen     int
}

// run receives until ctx is done or the PDU count is reached. A
// cancelled context is a normal stop.
func (l *listener) run(ctx context.Context, r receiver) error {
	for {
		d, err := r.Receive(ctx, 500*time.Millisecond)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if transport.IsTimeout(err) {
				continue
			}
			return err
		}
		if l.handle(d) {
			return nil
		}
	}
}

// handle processes one datagram and reports whether the count is reached.
func (l *listener) handle(d transport.Datagram) bool {
	peer := ""
	if d.From != nil {
		peer = d.From.String()
	}
	if l.hex {
		l.logger.LogHex("datagram from "+peer, d.Raw)
	}
	if l.pcap != nil && d.From != nil && l.local != nil {
		frame := pcap.Frame{
			Timestamp: d.Received,
			SrcIP:     d.From.IP,
			DstIP:     l.local.IP,
			SrcPort:   uint16(d.From.Port),
			DstPort:   uint16(l.local.Port),
			Payload:   d.Raw,
		}
		if err := l.pcap.Write(frame); err != nil {
			l.logger.Error("Failed to record datagram: %v", err)
		}
	}

	ps := d.Exercise(l.exercise)
	for _, p := range ps {
		l.logger.LogPDU("RECV", peer, p)
		l.rec.record(metrics.ForPDU(metrics.DirectionReceived, peer, p, pdu.Length(p), d.Received))
		l.seen++
		if l.count > 0 && l.seen >= l.count {
			break
		}
	}
	var errs int64
	if d.Err != nil {
		errs = 1
		l.logger.LogDecodeError(peer, len(d.Raw), d.Err)
		l.rec.record(metrics.ForError(metrics.DirectionReceived, peer, len(d.Raw), d.Err, d.Received))
	}
	if l.counter != nil {
		l.counter.Add(int64(len(ps)), errs)
	}
	return l.count > 0 && l.seen >= l.count
}
