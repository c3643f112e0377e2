package app

import (
	"context"
	"fmt"
	"os"
	"time"

	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/progress"
	"github.com/tturner/disgo/internal/transport"
)

type ReplayOptions struct {
	Common          CommonOptions
	Network         NetworkOptions
	InputFile       string
	Port            int     // only datagrams to or from this port; 0 = any
	Realtime        bool    // keep the capture's timing
	Speed           float64 // realtime multiplier, default 1
	IntervalMs      int     // fixed gap when not realtime
	Limit           int     // datagrams; 0 = all
	Exercise        uint8   // only PDUs of this exercise; 0 = all
	RewriteExercise uint8   // set this exercise ID on every PDU sent; 0 = keep
	SkipErrors      bool    // drop bytes that did not decode
	Progress        bool
}

// replayDatagram is one datagram to send and how long to wait before it.
type replayDatagram struct {
	Delay   time.Duration
	Payload []byte
	PDUs    int
}

// RunReplay sends the DIS datagrams of a capture back onto the network.
func RunReplay(opts ReplayOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	packets, err := pcap.ExtractDISFromFile(opts.InputFile, opts.Port)
	if err != nil {
		return disgoErrors.WrapCaptureError(err, opts.InputFile)
	}
	plan := planReplay(packets, opts)
	if len(plan) == 0 {
		return fmt.Errorf("no DIS datagrams to replay in %s", opts.InputFile)
	}

	ec := endpointConfig(cfg, opts.Network)
	if opts.Network.Listen == "" {
		ec.ListenAddress = ":0"
	}
	ep := transport.NewEndpoint(ec)
	ec = ep.Config()
	addr := describeEndpoint(ec)

	ctx, cancel := signalContext(logger, 0)
	defer cancel()
	if err := ep.Open(ctx); err != nil {
		return disgoErrors.WrapNetworkError(err, addr)
	}
	defer ep.Close()

	fmt.Fprintf(os.Stdout, "disgo replaying %s...\n", opts.InputFile)
	fmt.Fprintf(os.Stdout, "  Target: %s (%s)\n", addr, ec.Mode)
	fmt.Fprintf(os.Stdout, "  Datagrams: %d\n", len(plan))
	if opts.RewriteExercise != 0 {
		fmt.Fprintf(os.Stdout, "  Exercise rewritten to %d\n", opts.RewriteExercise)
	}
	fmt.Fprintln(os.Stdout)
	logger.LogStartup("replay", ec.Mode, addr, opts.RewriteExercise, opts.Common.ConfigPath)

	var bar *progress.Bar
	if opts.Progress {
		bar = progress.NewBar(os.Stderr, int64(len(plan)), "replay")
	}
	start := time.Now()
	sent, pdus, err := sendReplay(ctx, ep, plan, bar)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return disgoErrors.WrapNetworkError(err, addr)
	}
	fmt.Fprintf(os.Stdout, "Replayed %d datagram(s), %d PDUs to %s in %s\n",
		sent, pdus, addr, time.Since(start).Round(time.Millisecond))
	return nil
}

// planReplay regroups extracted PDUs into their datagrams and works out
// the send schedule.
func planReplay(packets []pcap.DISPacket, opts ReplayOptions) []replayDatagram {
	type datagram struct {
		ts time.Time
		replayDatagram
	}
	var grams []datagram
	lastFrame := -1
	for _, pkt := range packets {
		if pkt.Frame != lastFrame || pkt.Frame == 0 || len(grams) == 0 {
			grams = append(grams, datagram{ts: pkt.Timestamp})
			lastFrame = pkt.Frame
		}
		cur := &grams[len(grams)-1]
		switch {
		case pkt.Err != nil:
			if !opts.SkipErrors {
				cur.Payload = append(cur.Payload, pkt.Raw...)
			}
		case opts.Exercise != 0 && pkt.PDU.Header().ExerciseID != opts.Exercise:
		default:
			at := len(cur.Payload)
			cur.Payload = append(cur.Payload, pkt.Raw...)
			if opts.RewriteExercise != 0 && len(pkt.Raw) > 1 {
				cur.Payload[at+1] = opts.RewriteExercise
			}
			cur.PDUs++
		}
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	var plan []replayDatagram
	var lastTs time.Time
	for _, g := range grams {
		if len(g.Payload) == 0 {
			continue
		}
		if opts.Limit > 0 && len(plan) >= opts.Limit {
			break
		}
		d := g.replayDatagram
		if len(plan) > 0 {
			if opts.Realtime {
				if g.ts.After(lastTs) {
					d.Delay = time.Duration(float64(g.ts.Sub(lastTs)) / speed)
				}
			} else {
				d.Delay = time.Duration(opts.IntervalMs) * time.Millisecond
			}
		}
		lastTs = g.ts
		plan = append(plan, d)
	}
	return plan
}

// rawSender is the part of an endpoint replay needs.
type rawSender interface {
	SendRaw(ctx context.Context, b []byte) error
}

func sendReplay(ctx context.Context, s rawSender, plan []replayDatagram, bar *progress.Bar) (sent, pdus int, err error) {
	for _, d := range plan {
		if d.Delay > 0 {
			select {
			case <-ctx.Done():
				return sent, pdus, nil
			case <-time.After(d.Delay):
			}
		}
		if err := s.SendRaw(ctx, d.Payload); err != nil {
			if ctx.Err() != nil {
				return sent, pdus, nil
			}
			return sent, pdus, err
		}
		sent++
		pdus += d.PDUs
		if bar != nil {
			bar.Add(1)
		}
	}
	return sent, pdus, nil
}
