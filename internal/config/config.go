package config

// Configuration loading and validation for disgo

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tturner/disgo/internal/errors"
)

// Network modes.
const (
	ModeUnicast   = "unicast"
	ModeBroadcast = "broadcast"
	ModeMulticast = "multicast"
)

const (
	DefaultPort           = 3000
	DefaultMulticastGroup = "239.1.2.3"
	DefaultBroadcast      = "255.255.255.255"
	DefaultTTL            = 32
	DefaultReadBuffer     = 1 << 20
	DefaultSnaplen        = 65535
)

// ExerciseConfig identifies this application within a DIS exercise.
type ExerciseConfig struct {
	ExerciseID      uint8  `yaml:"exercise_id" toml:"exercise_id"`
	SiteID          uint16 `yaml:"site_id" toml:"site_id"`
	ApplicationID   uint16 `yaml:"application_id" toml:"application_id"`
	ProtocolVersion uint8  `yaml:"protocol_version" toml:"protocol_version"`
}

// NetworkConfig selects how PDUs are sent and received.
type NetworkConfig struct {
	Mode           string `yaml:"mode" toml:"mode"`                                           // unicast, broadcast or multicast
	Address        string `yaml:"address,omitempty" toml:"address,omitempty"`                 // unicast peer or broadcast address
	Port           int    `yaml:"port" toml:"port"`                                           // UDP port, 3000 by convention
	MulticastGroup string `yaml:"multicast_group,omitempty" toml:"multicast_group,omitempty"` // group joined in multicast mode
	TTL            int    `yaml:"ttl,omitempty" toml:"ttl,omitempty"`
	Interface      string `yaml:"interface,omitempty" toml:"interface,omitempty"`
	Loopback       bool   `yaml:"loopback" toml:"loopback"`
	ReadBuffer     int    `yaml:"read_buffer,omitempty" toml:"read_buffer,omitempty"`
}

// LoggingConfig controls log verbosity and destination.
type LoggingConfig struct {
	Level    string `yaml:"level" toml:"level"`
	File     string `yaml:"file,omitempty" toml:"file,omitempty"`
	Format   string `yaml:"format,omitempty" toml:"format,omitempty"` // text or json
	LogEvery int    `yaml:"log_every,omitempty" toml:"log_every,omitempty"`
}

// MetricsConfig names the files traffic counters are written to.
type MetricsConfig struct {
	CSV  string `yaml:"csv,omitempty" toml:"csv,omitempty"`
	JSON string `yaml:"json,omitempty" toml:"json,omitempty"`
}

// RemoteConfig describes an SSH host captures can be taken on and fetched
// from.
type RemoteConfig struct {
	Host           string `yaml:"host,omitempty" toml:"host,omitempty"`
	User           string `yaml:"user,omitempty" toml:"user,omitempty"`
	Port           int    `yaml:"port,omitempty" toml:"port,omitempty"`
	KeyFile        string `yaml:"key_file,omitempty" toml:"key_file,omitempty"`
	KnownHostsFile string `yaml:"known_hosts,omitempty" toml:"known_hosts,omitempty"`
	Insecure       bool   `yaml:"insecure,omitempty" toml:"insecure,omitempty"`
	Interface      string `yaml:"interface,omitempty" toml:"interface,omitempty"`
	Elevate        bool   `yaml:"elevate,omitempty" toml:"elevate,omitempty"`
}

// CaptureConfig controls live sniffing and capture files.
type CaptureConfig struct {
	Interface string       `yaml:"interface,omitempty" toml:"interface,omitempty"`
	Snaplen   int          `yaml:"snaplen,omitempty" toml:"snaplen,omitempty"`
	Remote    RemoteConfig `yaml:"remote,omitempty" toml:"remote,omitempty"`
}

// EmitProfile is a PDU type sent periodically by "disgo emit".
type EmitProfile struct {
	Name       string `yaml:"name" toml:"name"`
	PduType    uint8  `yaml:"pdu_type" toml:"pdu_type"`
	IntervalMs int    `yaml:"interval_ms" toml:"interval_ms"`
	Count      int    `yaml:"count,omitempty" toml:"count,omitempty"` // 0 sends until stopped
}

// Config is the disgo configuration file.
type Config struct {
	Exercise ExerciseConfig `yaml:"exercise" toml:"exercise"`
	Network  NetworkConfig  `yaml:"network" toml:"network"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty" toml:"metrics,omitempty"`
	Capture  CaptureConfig  `yaml:"capture,omitempty" toml:"capture,omitempty"`
	Emit     []EmitProfile  `yaml:"emit,omitempty" toml:"emit,omitempty"`
}

// Target returns the host:port PDUs are sent to in the configured mode.
func (n NetworkConfig) Target() string {
	port := fmt.Sprint(n.Port)
	switch n.Mode {
	case ModeMulticast:
		return net.JoinHostPort(n.MulticastGroup, port)
	case ModeBroadcast:
		addr := n.Address
		if addr == "" {
			addr = DefaultBroadcast
		}
		return net.JoinHostPort(addr, port)
	}
	return net.JoinHostPort(n.Address, port)
}

// CreateDefaultConfig creates the default configuration: exercise 1 on
// broadcast port 3000.
func CreateDefaultConfig() *Config {
	return &Config{
		Exercise: ExerciseConfig{
			ExerciseID:      1,
			SiteID:          1,
			ApplicationID:   1,
			ProtocolVersion: 7,
		},
		Network: NetworkConfig{
			Mode:           ModeBroadcast,
			Address:        DefaultBroadcast,
			Port:           DefaultPort,
			MulticastGroup: DefaultMulticastGroup,
			TTL:            DefaultTTL,
			Loopback:       true,
			ReadBuffer:     DefaultReadBuffer,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			LogEvery: 1,
		},
		Capture: CaptureConfig{
			Snaplen: DefaultSnaplen,
			Remote:  RemoteConfig{Port: 22},
		},
		Emit: DefaultEmitProfiles(),
	}
}

// WriteDefaultConfig writes a default configuration to a file
func WriteDefaultConfig(path string) error {
	data, err := Marshal(CreateDefaultConfig(), FormatFor(path))
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Config file formats. FormatFor picks one from the file extension.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFor returns FormatTOML for .toml files and FormatYAML otherwise.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Marshal encodes cfg as YAML or TOML.
func Marshal(cfg *Config, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	return buf.Bytes(), nil
}

// LoadConfig loads a configuration from a YAML or TOML file.
// If the file doesn't exist and autoCreate is true, it will create a default config file
func LoadConfig(path string, autoCreate bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.WrapConfigError(fmt.Errorf("read config file: %w", err), path)
		}
		if !autoCreate {
			return nil, errors.WrapConfigError(fmt.Errorf("config file not found: %s", path), path)
		}
		if err := WriteDefaultConfig(path); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapConfigError(fmt.Errorf("read created config file: %w", err), path)
		}
	}

	cfg, err := ParseConfigFormat(data, FormatFor(path))
	if err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	return cfg, nil
}

// ParseConfig decodes YAML, fills defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	return ParseConfigFormat(data, FormatYAML)
}

// ParseConfigFormat is ParseConfig for YAML or TOML input.
func ParseConfigFormat(data []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	ApplyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Exercise.ProtocolVersion == 0 {
		cfg.Exercise.ProtocolVersion = 7
	}
	n := &cfg.Network
	if n.Mode == "" {
		n.Mode = ModeBroadcast
	}
	n.Mode = strings.ToLower(n.Mode)
	if n.Port == 0 {
		n.Port = DefaultPort
	}
	if n.MulticastGroup == "" {
		n.MulticastGroup = DefaultMulticastGroup
	}
	if n.TTL == 0 {
		n.TTL = DefaultTTL
	}
	if n.ReadBuffer == 0 {
		n.ReadBuffer = DefaultReadBuffer
	}
	if n.Mode == ModeBroadcast && n.Address == "" {
		n.Address = DefaultBroadcast
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.LogEvery == 0 {
		cfg.Logging.LogEvery = 1
	}
	if cfg.Capture.Snaplen == 0 {
		cfg.Capture.Snaplen = DefaultSnaplen
	}
	if cfg.Capture.Remote.Port == 0 {
		cfg.Capture.Remote.Port = 22
	}
}

// ValidateConfig validates a configuration
func ValidateConfig(cfg *Config) error {
	if cfg.Exercise.ProtocolVersion > 7 {
		return fmt.Errorf("exercise.protocol_version %d is not a DIS version (1-7)", cfg.Exercise.ProtocolVersion)
	}
	if err := validateNetwork(cfg.Network); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	switch cfg.Logging.Level {
	case "silent", "error", "info", "verbose", "debug":
	default:
		return fmt.Errorf("logging.level must be silent, error, info, verbose or debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.LogEvery < 0 {
		return fmt.Errorf("logging.log_every must be >= 0")
	}
	if cfg.Capture.Snaplen < 64 || cfg.Capture.Snaplen > 262144 {
		return fmt.Errorf("capture.snaplen must be between 64 and 262144, got %d", cfg.Capture.Snaplen)
	}
	for i, p := range cfg.Emit {
		if err := validateEmitProfile(p); err != nil {
			return fmt.Errorf("emit[%d]: %w", i, err)
		}
	}
	return nil
}

func validateNetwork(n NetworkConfig) error {
	if n.Port < 1 || n.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", n.Port)
	}
	switch n.Mode {
	case ModeUnicast:
		if n.Address == "" {
			return fmt.Errorf("address is required in unicast mode")
		}
	case ModeBroadcast:
		if ip := net.ParseIP(n.Address); ip == nil || ip.To4() == nil {
			return fmt.Errorf("broadcast address %q is not an IPv4 address", n.Address)
		}
	case ModeMulticast:
		ip := net.ParseIP(n.MulticastGroup)
		if ip == nil || !ip.IsMulticast() || ip.To4() == nil {
			return fmt.Errorf("multicast_group %q is not an IPv4 multicast address", n.MulticastGroup)
		}
		if n.TTL < 1 || n.TTL > 255 {
			return fmt.Errorf("ttl must be between 1 and 255, got %d", n.TTL)
		}
	default:
		return fmt.Errorf("mode must be unicast, broadcast or multicast, got %q", n.Mode)
	}
	if n.ReadBuffer < 0 {
		return fmt.Errorf("read_buffer must be >= 0")
	}
	return nil
}

func validateEmitProfile(p EmitProfile) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.PduType < 1 || p.PduType > 72 {
		return fmt.Errorf("pdu_type %d is not a DIS PDU type (1-72)", p.PduType)
	}
	if p.IntervalMs <= 0 {
		return fmt.Errorf("interval_ms must be > 0")
	}
	if p.Count < 0 {
		return fmt.Errorf("count must be >= 0")
	}
	return nil
}
