package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/config"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/transport"
)

func TestEndpointConfig(t *testing.T) {
	cfg := config.CreateDefaultConfig()
	config.ApplyDefaults(cfg)

	got := endpointConfig(cfg, NetworkOptions{Mode: config.ModeMulticast, Port: 3100, Listen: "0.0.0.0"})
	want := transport.EndpointConfig{
		Mode:          config.ModeMulticast,
		Address:       config.DefaultBroadcast,
		Group:         config.DefaultMulticastGroup,
		Port:          3100,
		ListenAddress: "0.0.0.0",
		TTL:           config.DefaultTTL,
		Loopback:      true,
		ReadBuffer:    config.DefaultReadBuffer,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("endpoint config mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribeEndpoint(t *testing.T) {
	tests := []struct {
		ec   transport.EndpointConfig
		want string
	}{
		{transport.EndpointConfig{Mode: config.ModeBroadcast, Address: "255.255.255.255", Port: 3000}, "255.255.255.255:3000"},
		{transport.EndpointConfig{Mode: config.ModeUnicast, Address: "10.1.1.1", Port: 3001}, "10.1.1.1:3001"},
		{transport.EndpointConfig{Mode: config.ModeMulticast, Address: "10.1.1.1", Group: "239.1.2.3", Port: 3000}, "239.1.2.3:3000"},
	}
	for _, tt := range tests {
		if got := describeEndpoint(tt.ec); got != tt.want {
			t.Errorf("describeEndpoint(%+v) = %q, want %q", tt.ec, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(CommonOptions{})
	if err != nil {
		t.Fatalf("loadConfig without a path: %v", err)
	}
	if cfg.Network.Port != config.DefaultPort || cfg.Exercise.ExerciseID != 1 {
		t.Errorf("defaults not applied: %+v", cfg.Network)
	}

	missing := filepath.Join(t.TempDir(), "disgo.yaml")
	if _, err := loadConfig(CommonOptions{ConfigPath: missing}); err == nil {
		t.Error("loadConfig of a missing file succeeded")
	}
	if _, err := loadConfig(CommonOptions{ConfigPath: missing, QuickStart: true}); err != nil {
		t.Fatalf("loadConfig with quick start: %v", err)
	}
	if _, err := os.Stat(missing); err != nil {
		t.Errorf("quick start did not write the config: %v", err)
	}
}

func TestNewLoggerFlags(t *testing.T) {
	cfg := config.CreateDefaultConfig()
	tests := []struct {
		name    string
		opts    CommonOptions
		want    logging.LogLevel
		wantErr bool
	}{
		{name: "config level", opts: CommonOptions{}, want: logging.LogLevelInfo},
		{name: "flag level", opts: CommonOptions{LogLevel: "error"}, want: logging.LogLevelError},
		{name: "verbose", opts: CommonOptions{Verbose: true}, want: logging.LogLevelVerbose},
		{name: "debug wins", opts: CommonOptions{Verbose: true, Debug: true}, want: logging.LogLevelDebug},
		{name: "bad level", opts: CommonOptions{LogLevel: "loud"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			logger, err := newLogger(cfg, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newLogger error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer logger.Close()
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
