// Package config loads the stress-test configuration from a TOML file,
// with credentials overridable from the environment (or a .env file) so
// they can stay out of version-controlled configs.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/grasshopper-automation/oirtest/types"
)

// Environment variables recognized on top of the config file.
const (
	EnvPassword         = "OIRTEST_PASSWORD"
	EnvUsername         = "OIRTEST_USERNAME"
	EnvJumphostPassword = "OIRTEST_JUMPHOST_PASSWORD"
)

type Config struct {
	Device   DeviceConfig   `toml:"device"`
	Jumphost JumphostConfig `toml:"jumphost"`
	Test     TestConfig     `toml:"test"`
	Log      LogConfig      `toml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name           string `toml:"name"`
	Address        string `toml:"address"`
	Port           int    `toml:"port"`
	Protocol       string `toml:"protocol"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`

	// Protocol-specific settings (snmp_community, tls, ...)
	Metadata map[string]string `toml:"metadata"`
}

// ---- JUMPHOST (optional) ----

type JumphostConfig struct {
	Address  string `toml:"address"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// ---- TEST PARAMETERS ----

type TestConfig struct {
	Port         string `toml:"port"`
	CycleCount   int    `toml:"cycle_count"`
	PauseSeconds int    `toml:"pause_seconds"`
}

// ---- LOG SINK ----

type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Load reads the TOML file at path, fills in defaults and applies
// environment overrides. A .env file in the working directory is picked
// up first when present.
func Load(path string) (*Config, error) {
	// .env is optional; missing file is the normal case
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Device.Protocol == "" {
		cfg.Device.Protocol = string(types.ProtocolCLI)
	}
	if cfg.Device.TimeoutSeconds == 0 {
		cfg.Device.TimeoutSeconds = 30
	}
	if cfg.Test.Port == "" {
		cfg.Test.Port = "et-0/0/12"
	}
	if cfg.Test.CycleCount == 0 {
		cfg.Test.CycleCount = 10
	}
	if cfg.Test.PauseSeconds == 0 {
		cfg.Test.PauseSeconds = 180
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = "./oirtest.log"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvUsername); v != "" {
		cfg.Device.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Device.Password = v
	}
	if v := os.Getenv(EnvJumphostPassword); v != "" {
		cfg.Jumphost.Password = v
	}
}

// Validate checks the loaded configuration for the mistakes that would
// otherwise only surface mid-run.
func Validate(cfg *Config) error {
	if cfg.Device.Address == "" {
		return fmt.Errorf("device.address is required")
	}

	switch types.Protocol(cfg.Device.Protocol) {
	case types.ProtocolCLI, types.ProtocolSNMP, types.ProtocolGNMI, types.ProtocolMock:
	default:
		return fmt.Errorf("unsupported device.protocol %q", cfg.Device.Protocol)
	}

	if _, err := types.ParsePortName(cfg.Test.Port); err != nil {
		return fmt.Errorf("test.port: %w", err)
	}
	if cfg.Test.CycleCount < 1 {
		return fmt.Errorf("test.cycle_count must be at least 1, got %d", cfg.Test.CycleCount)
	}
	if cfg.Test.PauseSeconds < 0 {
		return fmt.Errorf("test.pause_seconds must not be negative")
	}

	if cfg.Jumphost.Address != "" && cfg.Jumphost.Username == "" {
		return fmt.Errorf("jumphost.username is required when jumphost.address is set")
	}

	return nil
}

// DeviceConfig converts the file representation into the driver config.
func (c *Config) DeviceConfig() *types.DeviceConfig {
	dc := &types.DeviceConfig{
		Name:     c.Device.Name,
		Address:  c.Device.Address,
		Port:     c.Device.Port,
		Protocol: types.Protocol(c.Device.Protocol),
		Username: c.Device.Username,
		Password: c.Device.Password,
		Timeout:  time.Duration(c.Device.TimeoutSeconds) * time.Second,
		Metadata: c.Device.Metadata,
	}
	if dc.Name == "" {
		dc.Name = dc.Address
	}
	if c.Jumphost.Address != "" {
		dc.Jumphost = &types.JumphostConfig{
			Address:  c.Jumphost.Address,
			Port:     c.Jumphost.Port,
			Username: c.Jumphost.Username,
			Password: c.Jumphost.Password,
		}
	}
	return dc
}

// PortName returns the parsed interface under test. Call Validate first.
func (c *Config) PortName() (types.PortName, error) {
	return types.ParsePortName(c.Test.Port)
}

// Pause returns the inter-burst pause as a duration.
func (c *Config) Pause() time.Duration {
	return time.Duration(c.Test.PauseSeconds) * time.Second
}
