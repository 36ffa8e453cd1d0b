// Package config loads the pitwall TOML configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultConfigPath = "pitwall.toml"

type Config struct {
	Stream StreamConfig `toml:"stream"`
	Log    LogConfig    `toml:"log"`
	Bridge BridgeConfig `toml:"bridge"`
	Record RecordConfig `toml:"record"`
	NATS   NATSConfig   `toml:"nats"`
	UI     UIConfig     `toml:"ui"`
}

type StreamConfig struct {
	// Addr is the local address the simulator's UDP feed is sent to.
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty means stdout
}

type BridgeConfig struct {
	Enabled bool   `toml:"enabled"`
	WSAddr  string `toml:"ws_addr"`
	Topic   string `toml:"topic"`
	SendBuf int    `toml:"send_buf"`
}

type RecordConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type NATSConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

type UIConfig struct {
	RefreshHz int `toml:"refresh_hz"`
}

func Default() Config {
	return Config{
		Stream: StreamConfig{
			Addr: "0.0.0.0:20777",
		},
		Log: LogConfig{
			Enabled: false,
		},
		Bridge: BridgeConfig{
			Enabled: false,
			WSAddr:  "127.0.0.1:8765",
			Topic:   "pitwall/feed",
			SendBuf: 256,
		},
		Record: RecordConfig{
			Enabled: false,
			Path:    "session.pwr",
		},
		NATS: NATSConfig{
			Enabled:       false,
			URL:           "nats://127.0.0.1:4222",
			SubjectPrefix: "pitwall.feed",
		},
		UI: UIConfig{
			RefreshHz: 20,
		},
	}
}

// Load reads the config at path; a missing file is an error.
func Load(path string) (Config, error) {
	cfg, exists, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}
	if !exists {
		return Config{}, os.ErrNotExist
	}
	return cfg, nil
}

// LoadOrDefault reads the config at path, falling back to defaults when the
// file does not exist. The bool reports whether the file was found.
func LoadOrDefault(path string) (Config, bool, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, true, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

func (cfg *Config) Validate() error {
	if !strings.Contains(cfg.Stream.Addr, ":") {
		return fmt.Errorf("stream.addr %q has no port", cfg.Stream.Addr)
	}
	if cfg.Bridge.Enabled && !strings.Contains(cfg.Bridge.WSAddr, ":") {
		return fmt.Errorf("bridge.ws_addr %q has no port", cfg.Bridge.WSAddr)
	}
	if cfg.Record.Enabled && cfg.Record.Path == "" {
		return fmt.Errorf("record.enabled requires record.path")
	}
	if cfg.NATS.Enabled && cfg.NATS.URL == "" {
		return fmt.Errorf("nats.enabled requires nats.url")
	}
	if cfg.UI.RefreshHz < 0 {
		return fmt.Errorf("ui.refresh_hz must not be negative")
	}
	return nil
}

func (cfg *Config) normalize() {
	def := Default()

	if cfg.Stream.Addr == "" {
		cfg.Stream.Addr = def.Stream.Addr
	}
	if cfg.Bridge.WSAddr == "" {
		cfg.Bridge.WSAddr = def.Bridge.WSAddr
	}
	if cfg.Bridge.Topic == "" {
		cfg.Bridge.Topic = def.Bridge.Topic
	}
	if cfg.Bridge.SendBuf <= 0 {
		cfg.Bridge.SendBuf = def.Bridge.SendBuf
	}
	if cfg.Record.Path == "" {
		cfg.Record.Path = def.Record.Path
	}
	if cfg.NATS.URL == "" {
		cfg.NATS.URL = def.NATS.URL
	}
	if cfg.NATS.SubjectPrefix == "" {
		cfg.NATS.SubjectPrefix = def.NATS.SubjectPrefix
	}
	if cfg.UI.RefreshHz == 0 {
		cfg.UI.RefreshHz = def.UI.RefreshHz
	}
}
