// Package config loads termchat settings from YAML, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	envServer   = "TERMCHAT_SERVER"
	envLogFile  = "TERMCHAT_LOG_FILE"
	envLogLevel = "TERMCHAT_LOG_LEVEL"
)

// Config holds all termchat configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the connection to the chat server.
type ServerConfig struct {
	Address       string `yaml:"address"`        // host:port, tcp://host:port or ws(s):// URL
	DialTimeout   string `yaml:"dial_timeout"`   // default 10s
	ShutdownGrace string `yaml:"shutdown_grace"` // how long to wait for the peer on exit
	QueueSize     int    `yaml:"queue_size"`     // inbound/outbound channel capacity
	MaxFrameSize  int    `yaml:"max_frame_size"` // longest accepted inbound line in bytes
}

// UIConfig configures the render/input loop.
type UIConfig struct {
	TickRate         string `yaml:"tick_rate"`
	HistorySize      int    `yaml:"history_size"`
	SelfLabel        string `yaml:"self_label"`
	ExitOnDisconnect bool   `yaml:"exit_on_disconnect"`
	Mouse            bool   `yaml:"mouse"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty disables logging
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:       "127.0.0.1:56570",
			DialTimeout:   "10s",
			ShutdownGrace: "2s",
			QueueSize:     32,
			MaxFrameSize:  64 * 1024,
		},
		UI: UIConfig{
			TickRate:         "250ms",
			HistorySize:      50,
			SelfLabel:        "Me",
			ExitOnDisconnect: true,
			Mouse:            true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "~/.termchat/client.log",
		},
	}
}

// DefaultPath returns ~/.termchat/config.yaml, or a relative path if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".termchat", "config.yaml")
	}
	return filepath.Join(home, ".termchat", "config.yaml")
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv(envServer); addr != "" {
		c.Server.Address = addr
	}
	if file := os.Getenv(envLogFile); file != "" {
		c.Logging.File = file
	}
	if level := os.Getenv(envLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address is required")
	}
	if c.Server.QueueSize <= 0 {
		return fmt.Errorf("server.queue_size must be positive, got %d", c.Server.QueueSize)
	}
	if c.Server.MaxFrameSize <= 0 {
		return fmt.Errorf("server.max_frame_size must be positive, got %d", c.Server.MaxFrameSize)
	}
	durations := []struct {
		name  string
		value string
	}{
		{"server.dial_timeout", c.Server.DialTimeout},
		{"server.shutdown_grace", c.Server.ShutdownGrace},
		{"ui.tick_rate", c.UI.TickRate},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// GetDialTimeout returns the dial timeout, falling back to 10s.
func (c *Config) GetDialTimeout() time.Duration {
	return parseDuration(c.Server.DialTimeout, 10*time.Second)
}

// GetShutdownGrace returns the shutdown grace period, falling back to 2s.
func (c *Config) GetShutdownGrace() time.Duration {
	return parseDuration(c.Server.ShutdownGrace, 2*time.Second)
}

// GetTickRate returns the loop tick period, falling back to 250ms.
func (c *Config) GetTickRate() time.Duration {
	return parseDuration(c.UI.TickRate, 250*time.Millisecond)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
