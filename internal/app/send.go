package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/transport"
	"github.com/tturner/disgo/internal/ui"
)

type SendOptions struct {
	Common      CommonOptions
	Network     NetworkOptions
	Hex         string // raw datagram as hex
	File        string // raw datagram file, binary or hex
	Spec        ui.PDUSpec
	Entity      string
	Interactive bool
	Repeat      int // times to send, default 1
	IntervalMs  int
	Force       bool // send raw bytes even when they do not decode
}

// RunSend sends one datagram: raw bytes, or a PDU built from flags or the
// interactive form.
func RunSend(opts SendOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	payload, summary, err := sendPayload(opts, cfg.Exercise.ExerciseID, record.EntityID{
		Site:        cfg.Exercise.SiteID,
		Application: cfg.Exercise.ApplicationID,
		Entity:      1,
	})
	if errors.Is(err, ui.ErrAborted) {
		fmt.Fprintln(os.Stdout, "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	ec := endpointConfig(cfg, opts.Network)
	if opts.Network.Listen == "" {
		// The well-known port may already be taken by a listener.
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

	repeat := opts.Repeat
	if repeat <= 0 {
		repeat = 1
	}
	for i := 0; i < repeat; i++ {
		if i > 0 && opts.IntervalMs > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Duration(opts.IntervalMs) * time.Millisecond):
			}
		}
		if err := ep.SendRaw(ctx, payload); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return disgoErrors.WrapNetworkError(err, addr)
		}
		logger.LogHex("sent to "+addr, payload)
	}
	fmt.Fprintf(os.Stdout, "Sent %s (%d bytes) to %s x%d\n", summary, len(payload), addr, repeat)
	return nil
}

// sendPayload returns the bytes to send and a one-line description.
func sendPayload(opts SendOptions, exercise uint8, entity record.EntityID) ([]byte, string, error) {
	if opts.Hex != "" || opts.File != "" {
		var data []byte
		var err error
		if opts.File != "" {
			data, err = readDatagramFile(opts.File)
		} else {
			data, err = ParseHex(opts.Hex)
		}
		if err != nil {
			return nil, "", err
		}
		ps, err := pdu.DecodeAll(data)
		if err != nil && !opts.Force {
			return nil, "", fmt.Errorf("%w (use --force to send it anyway)", disgoErrors.WrapDecodeError(err, "send payload"))
		}
		summary := fmt.Sprintf("%d PDUs", len(ps))
		if len(ps) == 1 {
			summary = pdu.Summary(ps[0])
		}
		return data, summary, nil
	}

	spec := opts.Spec
	if spec.ExerciseID == 0 {
		spec.ExerciseID = exercise
	}
	if spec.Entity == (record.EntityID{}) {
		spec.Entity = entity
	}
	if opts.Entity != "" {
		id, err := ui.ParseEntityID(opts.Entity)
		if err != nil {
			return nil, "", err
		}
		spec.Entity = id
	}

	var p pdu.PDU
	var err error
	if opts.Interactive {
		p, err = ui.RunPDUBuilder(spec)
	} else {
		if spec.Type == 0 {
			spec.Type = enums.PduTypeEntityState
		}
		p, err = spec.Build()
	}
	if err != nil {
		return nil, "", err
	}
	b, err := pdu.Marshal(p)
	if err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", p.Type(), err)
	}
	return b, pdu.Summary(p), nil
}
