package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tturner/disgo/internal/artifact"
	"github.com/tturner/disgo/internal/config"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/transport"
)

// CommonOptions are the flags shared by every command that talks to the
// network.
type CommonOptions struct {
	ConfigPath string
	QuickStart bool // write a default config when ConfigPath is missing
	LogLevel   string
	LogFile    string
	Verbose    bool
	Debug      bool
}

// NetworkOptions override the network section of the config file.
type NetworkOptions struct {
	Mode      string
	Address   string
	Group     string
	Port      int
	Interface string
	Listen    string
}

// loadConfig reads opts.ConfigPath. Without a path the built-in defaults
// are used.
func loadConfig(opts CommonOptions) (*config.Config, error) {
	if opts.ConfigPath == "" {
		cfg := config.CreateDefaultConfig()
		config.ApplyDefaults(cfg)
		return cfg, nil
	}
	_, statErr := os.Stat(opts.ConfigPath)
	cfg, err := config.LoadConfig(opts.ConfigPath, opts.QuickStart)
	if err != nil {
		if os.IsNotExist(statErr) && !opts.QuickStart {
			fmt.Fprintf(os.Stderr, "Hint: use --quick-start to write a default config to %s\n", opts.ConfigPath)
		}
		return nil, err
	}
	if os.IsNotExist(statErr) {
		fmt.Fprintf(os.Stdout, "Created default config file: %s\n\n", opts.ConfigPath)
	}
	return cfg, nil
}

// newLogger builds the logger from the config, with command-line flags
// taking precedence.
func newLogger(cfg *config.Config, opts CommonOptions) (*logging.Logger, error) {
	levelName := cfg.Logging.Level
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = logging.LogLevelDebug
	} else if opts.Verbose && level < logging.LogLevelVerbose {
		level = logging.LogLevelVerbose
	}
	file := cfg.Logging.File
	if opts.LogFile != "" {
		file = opts.LogFile
	}
	logger, err := logging.NewLoggerWithOptions(level, file, cfg.Logging.Format, cfg.Logging.LogEvery)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// endpointConfig merges the config file's network section with flag
// overrides.
func endpointConfig(cfg *config.Config, n NetworkOptions) transport.EndpointConfig {
	ec := transport.EndpointConfigFrom(cfg.Network)
	if n.Mode != "" {
		ec.Mode = n.Mode
	}
	if n.Address != "" {
		ec.Address = n.Address
	}
	if n.Group != "" {
		ec.Group = n.Group
	}
	if n.Port != 0 {
		ec.Port = n.Port
	}
	if n.Interface != "" {
		ec.Interface = n.Interface
	}
	if n.Listen != "" {
		ec.ListenAddress = n.Listen
	}
	return ec
}

// describeEndpoint returns the address a startup banner shows.
func describeEndpoint(ec transport.EndpointConfig) string {
	return fmt.Sprintf("%s:%d", describeHost(ec), ec.Port)
}

// describeHost is the address PDUs are sent to.
func describeHost(ec transport.EndpointConfig) string {
	if ec.Mode == config.ModeMulticast {
		return ec.Group
	}
	return ec.Address
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, and
// after d when d is positive.
func signalContext(logger *logging.Logger, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if d > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, d)
		parent := cancel
		cancel = func() {
			timeoutCancel()
			parent()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			logger.Info("Received interrupt signal, shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// recorder writes metrics to the sink, the optional CSV/JSON writer and
// the optional run directory. It is shared by listen, sniff, emit and
// monitor.
type recorder struct {
	sink   *metrics.Sink
	writer *metrics.Writer
	output *artifact.OutputManager
	logger *logging.Logger
}

// newRecorder opens the metrics files. With an output directory the CSV
// goes there unless csvPath names another file.
func newRecorder(logger *logging.Logger, cfg *config.Config, command, csvPath, jsonPath, outputDir string) (*recorder, error) {
	r := &recorder{sink: metrics.NewSink(), logger: logger}
	if csvPath == "" {
		csvPath = cfg.Metrics.CSV
	}
	if jsonPath == "" {
		jsonPath = cfg.Metrics.JSON
	}
	if outputDir != "" {
		out, err := artifact.NewOutputManager(outputDir, command)
		if err != nil {
			return nil, err
		}
		r.output = out
		if csvPath == "" {
			csvPath = out.MetricsPath()
		}
		fmt.Fprintf(os.Stdout, "Output directory: %s\n", outputDir)
	}
	if csvPath != "" || jsonPath != "" {
		w, err := metrics.NewWriter(csvPath, jsonPath)
		if err != nil {
			return nil, fmt.Errorf("create metrics writer: %w", err)
		}
		r.writer = w
	}
	return r, nil
}

func (r *recorder) record(m metrics.Metric) {
	m = r.sink.Record(m)
	if r.writer == nil {
		return
	}
	if err := r.writer.WriteMetric(m); err != nil {
		r.logger.Error("Failed to write metric: %v", err)
	}
}

// finish closes the metrics files, prints the summary and finalizes the
// run directory.
func (r *recorder) finish(w io.Writer, verbose bool, label string, elapsed time.Duration, runErr error) {
	if r.writer != nil {
		if err := r.writer.Close(); err != nil {
			r.logger.Error("Failed to close metrics writer: %v", err)
		}
	}
	summary := r.sink.GetSummary()
	if verbose {
		fmt.Fprintf(w, "\n%s", metrics.FormatSummary(summary))
	} else {
		fmt.Fprintf(w, "%s finished in %.1fs (%d PDUs, %d undecodable)\n",
			label, elapsed.Seconds(), summary.Decoded, summary.Failed)
	}
	if r.output != nil {
		if err := r.output.Finalize(summary, runErr); err != nil {
			r.logger.Error("Failed to finalize artifacts: %v", err)
		} else {
			fmt.Fprintf(w, "Artifacts written to: %s\n", r.output.OutputDir())
		}
	}
}
