package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tturner/disgo/internal/config"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
	disgoErrors "github.com/tturner/disgo/internal/errors"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/progress"
	"github.com/tturner/disgo/internal/transport"
	"github.com/tturner/disgo/internal/ui"
)

type EmitOptions struct {
	Common      CommonOptions
	Network     NetworkOptions
	Profiles    []string // names from the config; empty sends every profile
	Types       []uint8  // ad hoc profiles by PDU type, at their default interval
	IntervalMs  int      // overrides every profile's interval
	Count       int      // overrides every profile's count
	Entities    int      // entities per profile, numbered from FirstEntity
	FirstEntity uint16
	Marking     string
	Duration    time.Duration
	CSVFile     string
	JSONFile    string
	OutputDir   string
	Progress    bool
}

// RunEmit sends the selected emit profiles on their timers until every
// bounded profile is done, the duration passes or the run is interrupted.
func RunEmit(opts EmitOptions) error {
	cfg, err := loadConfig(opts.Common)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts.Common)
	if err != nil {
		return err
	}
	defer logger.Close()

	profiles, err := selectProfiles(cfg, opts)
	if err != nil {
		return err
	}
	if opts.Entities <= 0 {
		opts.Entities = 1
	}
	if opts.FirstEntity == 0 {
		opts.FirstEntity = 1
	}
	if opts.Duration <= 0 {
		for _, p := range profiles {
			if p.Count == 0 {
				logger.Verbose("Profile %s has no count; emitting until interrupted", p.Name)
				break
			}
		}
	}

	ec := endpointConfig(cfg, opts.Network)
	ep := transport.NewEndpoint(ec)
	ec = ep.Config()
	addr := describeEndpoint(ec)

	rec, err := newRecorder(logger, cfg, "emit", opts.CSVFile, opts.JSONFile, opts.OutputDir)
	if err != nil {
		return err
	}
	if rec.output != nil {
		rec.output.SetNetwork(ec.Mode, addr, cfg.Exercise.ExerciseID)
	}

	ctx, cancel := signalContext(logger, opts.Duration)
	defer cancel()

	if err := ep.Open(ctx); err != nil {
		return disgoErrors.WrapNetworkError(err, ec.ListenAddress)
	}
	defer ep.Close()

	fmt.Fprintf(os.Stdout, "disgo emitting...\n")
	fmt.Fprintf(os.Stdout, "  Target: %s (%s)\n", addr, ec.Mode)
	fmt.Fprintf(os.Stdout, "  Exercise: %d  Site: %d  Application: %d\n",
		cfg.Exercise.ExerciseID, cfg.Exercise.SiteID, cfg.Exercise.ApplicationID)
	for _, p := range profiles {
		fmt.Fprintf(os.Stdout, "  %s: %s every %d ms x %d entities\n",
			p.Name, enums.PduType(p.PduType), p.IntervalMs, opts.Entities)
	}
	fmt.Fprintf(os.Stdout, "  Press Ctrl+C to stop\n\n")
	logger.LogStartup("emit", ec.Mode, addr, cfg.Exercise.ExerciseID, opts.Common.ConfigPath)

	var bar *progress.Bar
	if opts.Progress {
		if total := emitTotal(profiles, opts.Entities); total > 0 {
			bar = progress.NewBar(os.Stderr, total, "emit")
		}
	}

	e := &emitter{
		ep:       ep,
		logger:   logger,
		rec:      rec,
		bar:      bar,
		peer:     addr,
		exercise: cfg.Exercise,
		entities: opts.Entities,
		first:    opts.FirstEntity,
		marking:  opts.Marking,
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range profiles {
		p := p
		g.Go(func() error { return e.runProfile(gctx, p) })
	}
	runErr := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if runErr != nil && ctx.Err() != nil {
		runErr = nil
	}
	rec.finish(os.Stdout, opts.Common.Verbose || opts.Common.Debug, "emit", time.Since(start), runErr)
	if runErr != nil {
		return disgoErrors.WrapNetworkError(runErr, addr)
	}
	return nil
}

// selectProfiles resolves the profiles named in opts, adds ad hoc ones
// by type and applies the interval and count overrides.
func selectProfiles(cfg *config.Config, opts EmitOptions) ([]config.EmitProfile, error) {
	var profiles []config.EmitProfile
	switch {
	case len(opts.Profiles) > 0:
		for _, name := range opts.Profiles {
			p, ok := cfg.FindEmitProfile(name)
			if !ok {
				return nil, fmt.Errorf("no emit profile %q in config; have %s", name, profileNames(cfg.Emit))
			}
			profiles = append(profiles, p)
		}
	case len(opts.Types) == 0:
		profiles = append(profiles, cfg.Emit...)
	}
	for _, t := range opts.Types {
		pt := enums.PduType(t)
		if _, err := pdu.New(pt); err != nil {
			return nil, err
		}
		profiles = append(profiles, config.EmitProfile{
			Name:       fmt.Sprintf("type_%d", t),
			PduType:    t,
			IntervalMs: config.DefaultInterval(pt),
		})
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("nothing to emit: the config has no emit profiles")
	}
	for i := range profiles {
		if opts.IntervalMs > 0 {
			profiles[i].IntervalMs = opts.IntervalMs
		}
		if opts.Count > 0 {
			profiles[i].Count = opts.Count
		}
		if profiles[i].IntervalMs <= 0 {
			profiles[i].IntervalMs = config.DefaultInterval(enums.PduType(profiles[i].PduType))
		}
	}
	return profiles, nil
}

func profileNames(ps []config.EmitProfile) string {
	if len(ps) == 0 {
		return "none"
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// emitTotal is the number of PDUs a run will send, or 0 when a profile is
// unbounded.
func emitTotal(profiles []config.EmitProfile, entities int) int64 {
	var total int64
	for _, p := range profiles {
		if p.Count == 0 {
			return 0
		}
		total += int64(p.Count) * int64(entities)
	}
	return total
}

// sender is the part of an endpoint the emitter needs.
type sender interface {
	SendBatch(ctx context.Context, ps ...pdu.PDU) error
}

type emitter struct {
	ep       sender
	logger   *logging.Logger
	rec      *recorder
	bar      *progress.Bar
	peer     string
	exercise config.ExerciseConfig
	entities int
	first    uint16
	marking  string
}

// runProfile sends one batch per tick, one PDU per entity, until the
// profile's count is reached or ctx is done.
func (e *emitter) runProfile(ctx context.Context, p config.EmitProfile) error {
	ticker := time.NewTicker(time.Duration(p.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for sent := 0; p.Count == 0 || sent < p.Count; sent++ {
		if err := e.emitOnce(ctx, p); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
		if p.Count != 0 && sent+1 >= p.Count {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// emitOnce builds and sends the PDUs of one tick.
func (e *emitter) emitOnce(ctx context.Context, p config.EmitProfile) error {
	ps, err := e.build(p)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := e.ep.SendBatch(ctx, ps...); err != nil {
		return err
	}
	for _, q := range ps {
		e.logger.LogPDU("SEND", e.peer, q)
		e.rec.record(metrics.ForPDU(metrics.DirectionSent, e.peer, q, pdu.Length(q), now))
	}
	if e.bar != nil {
		e.bar.Add(int64(len(ps)))
	}
	return nil
}

// build returns one PDU of the profile's type per entity.
func (e *emitter) build(p config.EmitProfile) ([]pdu.PDU, error) {
	ps := make([]pdu.PDU, 0, e.entities)
	for i := 0; i < e.entities; i++ {
		spec := ui.PDUSpec{
			Type:       enums.PduType(p.PduType),
			ExerciseID: e.exercise.ExerciseID,
			Entity: record.EntityID{
				Site:        e.exercise.SiteID,
				Application: e.exercise.ApplicationID,
				Entity:      e.first + uint16(i),
			},
			Marking: e.marking,
			Stamp:   true,
		}
		q, err := spec.Build()
		if err != nil {
			return nil, err
		}
		if e.exercise.ProtocolVersion != 0 {
			q.Header().ProtocolVersion = enums.ProtocolVersion(e.exercise.ProtocolVersion)
		}
		ps = append(ps, q)
	}
	return ps, nil
}
