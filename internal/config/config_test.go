package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/dis/enums"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default config",
			mutate: func(*Config) {},
		},
		{
			name: "multicast",
			mutate: func(c *Config) {
				c.Network.Mode = ModeMulticast
			},
		},
		{
			name: "unicast without address",
			mutate: func(c *Config) {
				c.Network.Mode = ModeUnicast
				c.Network.Address = ""
			},
			wantErr: "address is required",
		},
		{
			name: "unknown mode",
			mutate: func(c *Config) {
				c.Network.Mode = "anycast"
			},
			wantErr: "mode must be",
		},
		{
			name: "port zero",
			mutate: func(c *Config) {
				c.Network.Port = 0
			},
			wantErr: "port must be",
		},
		{
			name: "group is not multicast",
			mutate: func(c *Config) {
				c.Network.Mode = ModeMulticast
				c.Network.MulticastGroup = "10.0.0.1"
			},
			wantErr: "not an IPv4 multicast address",
		},
		{
			name: "ttl out of range",
			mutate: func(c *Config) {
				c.Network.Mode = ModeMulticast
				c.Network.TTL = 300
			},
			wantErr: "ttl must be",
		},
		{
			name: "broadcast address not IPv4",
			mutate: func(c *Config) {
				c.Network.Address = "::1"
			},
			wantErr: "not an IPv4 address",
		},
		{
			name: "protocol version 8",
			mutate: func(c *Config) {
				c.Exercise.ProtocolVersion = 8
			},
			wantErr: "protocol_version",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Logging.Level = "loud"
			},
			wantErr: "logging.level",
		},
		{
			name: "bad log format",
			mutate: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: "logging.format",
		},
		{
			name: "tiny snaplen",
			mutate: func(c *Config) {
				c.Capture.Snaplen = 10
			},
			wantErr: "capture.snaplen",
		},
		{
			name: "emit profile with unknown type",
			mutate: func(c *Config) {
				c.Emit = append(c.Emit, EmitProfile{Name: "bogus", PduType: 99, IntervalMs: 100})
			},
			wantErr: "emit[3]",
		},
		{
			name: "emit profile without interval",
			mutate: func(c *Config) {
				c.Emit = []EmitProfile{{Name: "es", PduType: 1}}
			},
			wantErr: "interval_ms",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := CreateDefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateConfig() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateConfig() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateConfig() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disgo.yaml")
	content := `
exercise:
  exercise_id: 9
  site_id: 42
  application_id: 7
network:
  mode: Multicast
  multicast_group: 239.1.2.5
  port: 3001
  ttl: 4
logging:
  level: verbose
emit:
  - name: tank
    pdu_type: 1
    interval_ms: 500
    count: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Exercise.ExerciseID != 9 || cfg.Exercise.SiteID != 42 || cfg.Exercise.ApplicationID != 7 {
		t.Errorf("Exercise = %+v", cfg.Exercise)
	}
	if cfg.Exercise.ProtocolVersion != 7 {
		t.Errorf("ProtocolVersion = %d, want default 7", cfg.Exercise.ProtocolVersion)
	}
	if cfg.Network.Mode != ModeMulticast {
		t.Errorf("Mode = %q, want %q", cfg.Network.Mode, ModeMulticast)
	}
	if got, want := cfg.Network.Target(), "239.1.2.5:3001"; got != want {
		t.Errorf("Target() = %q, want %q", got, want)
	}
	if cfg.Network.ReadBuffer != DefaultReadBuffer {
		t.Errorf("ReadBuffer = %d, want %d", cfg.Network.ReadBuffer, DefaultReadBuffer)
	}
	if cfg.Logging.Format != "text" || cfg.Logging.LogEvery != 1 {
		t.Errorf("Logging = %+v, want text format every message", cfg.Logging)
	}
	if cfg.Capture.Snaplen != DefaultSnaplen || cfg.Capture.Remote.Port != 22 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}

	p, ok := cfg.FindEmitProfile("tank")
	if !ok {
		t.Fatal("FindEmitProfile(tank) not found")
	}
	if diff := cmp.Diff(EmitProfile{Name: "tank", PduType: 1, IntervalMs: 500, Count: 10}, p); diff != "" {
		t.Errorf("emit profile mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cfg.FindEmitProfile("missing"); ok {
		t.Error("FindEmitProfile(missing) found a profile")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "absent.yaml"), false); err == nil {
		t.Error("LoadConfig() of missing file without autoCreate succeeded")
	} else if !strings.Contains(err.Error(), "Configuration error") {
		t.Errorf("error = %v, want a configuration error", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("network: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(bad, false); err == nil || !strings.Contains(err.Error(), "parse YAML") {
		t.Errorf("LoadConfig() error = %v, want parse error", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("network:\n  mode: unicast\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(invalid, false); err == nil || !strings.Contains(err.Error(), "address is required") {
		t.Errorf("LoadConfig() error = %v, want validation error", err)
	}
}

func TestLoadConfigAutoCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disgo.yaml")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if diff := cmp.Diff(CreateDefaultConfig(), cfg); diff != "" {
		t.Errorf("auto-created config differs from default (-want +got):\n%s", diff)
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		n    NetworkConfig
		want string
	}{
		{"unicast", NetworkConfig{Mode: ModeUnicast, Address: "10.1.1.1", Port: 3000}, "10.1.1.1:3000"},
		{"broadcast default", NetworkConfig{Mode: ModeBroadcast, Port: 3000}, "255.255.255.255:3000"},
		{"subnet broadcast", NetworkConfig{Mode: ModeBroadcast, Address: "10.1.1.255", Port: 62040}, "10.1.1.255:62040"},
		{"multicast", NetworkConfig{Mode: ModeMulticast, MulticastGroup: "239.1.2.3", Port: 3000}, "239.1.2.3:3000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Target(); got != tt.want {
				t.Errorf("Target() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultEmitProfiles(t *testing.T) {
	profiles := DefaultEmitProfiles()
	want := []EmitProfile{
		{Name: "entity_state", PduType: 1, IntervalMs: 5000},
		{Name: "transmitter", PduType: 25, IntervalMs: 2000},
		{Name: "electromagnetic_emission", PduType: 23, IntervalMs: 10000},
	}
	if diff := cmp.Diff(want, profiles); diff != "" {
		t.Errorf("DefaultEmitProfiles() mismatch (-want +got):\n%s", diff)
	}
	if got := DefaultInterval(enums.PduTypeCollision); got != 1000 {
		t.Errorf("DefaultInterval(Collision) = %d, want 1000", got)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disgo.toml")
	content := `
[exercise]
exercise_id = 4
site_id = 12

[network]
mode = "unicast"
address = "10.0.0.9"
port = 3002

[capture.remote]
host = "sensor1"
elevate = true

[[emit]]
name = "radio"
pdu_type = 25
interval_ms = 250
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got, want := cfg.Network.Target(), "10.0.0.9:3002"; got != want {
		t.Errorf("Target() = %q, want %q", got, want)
	}
	if cfg.Exercise.ExerciseID != 4 || cfg.Exercise.SiteID != 12 || cfg.Exercise.ProtocolVersion != 7 {
		t.Errorf("Exercise = %+v", cfg.Exercise)
	}
	if !cfg.Capture.Remote.Elevate || cfg.Capture.Remote.Host != "sensor1" {
		t.Errorf("Remote = %+v", cfg.Capture.Remote)
	}
	if diff := cmp.Diff([]EmitProfile{{Name: "radio", PduType: 25, IntervalMs: 250}}, cfg.Emit); diff != "" {
		t.Errorf("emit mismatch (-want +got):\n%s", diff)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[network\nmode = 1"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(bad, false); err == nil || !strings.Contains(err.Error(), "parse TOML") {
		t.Errorf("LoadConfig() error = %v, want TOML parse error", err)
	}
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML} {
		format := format
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(CreateDefaultConfig(), format)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			cfg, err := ParseConfigFormat(data, format)
			if err != nil {
				t.Fatalf("ParseConfigFormat() error = %v\n%s", err, data)
			}
			if diff := cmp.Diff(CreateDefaultConfig(), cfg); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := Marshal(CreateDefaultConfig(), "ini"); err == nil {
		t.Error("Marshal() accepted an unknown format")
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"disgo.yaml":      FormatYAML,
		"disgo.yml":       FormatYAML,
		"conf/disgo.toml": FormatTOML,
		"DISGO.TOML":      FormatTOML,
		"disgo":           FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}
