package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oirtest.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[device]
address = "192.0.2.10"
username = "lab"
password = "secret"
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "cli", cfg.Device.Protocol)
	assert.Equal(t, 30, cfg.Device.TimeoutSeconds)
	assert.Equal(t, "et-0/0/12", cfg.Test.Port)
	assert.Equal(t, 10, cfg.Test.CycleCount)
	assert.Equal(t, 180, cfg.Test.PauseSeconds)
	assert.Equal(t, "./oirtest.log", cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3*time.Minute, cfg.Pause())
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[device]
name = "mx480-lab"
address = "192.0.2.10"
port = 2222
protocol = "snmp"
username = "lab"
password = "secret"
timeout_seconds = 10

[device.metadata]
snmp_community = "labro"

[jumphost]
address = "198.51.100.1"
username = "jump"
password = "hop"

[test]
port = "xe-1/0/3"
cycle_count = 25
pause_seconds = 60

[log]
path = "/var/log/oirtest.log"
level = "debug"
`))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	dc := cfg.DeviceConfig()
	assert.Equal(t, "mx480-lab", dc.Name)
	assert.Equal(t, 2222, dc.Port)
	assert.Equal(t, "labro", dc.Metadata["snmp_community"])
	assert.Equal(t, 10*time.Second, dc.Timeout)
	require.NotNil(t, dc.Jumphost)
	assert.Equal(t, "198.51.100.1", dc.Jumphost.Address)

	port, err := cfg.PortName()
	require.NoError(t, err)
	assert.Equal(t, "xe-1/0/3", port.String())
	assert.Equal(t, time.Minute, cfg.Pause())
}

func TestEnvOverridesPassword(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")
	t.Setenv(EnvJumphostPassword, "hop-env")

	cfg, err := Load(writeConfig(t, minimalConfig+`
[jumphost]
address = "198.51.100.1"
username = "jump"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Device.Password)
	assert.Equal(t, "hop-env", cfg.Jumphost.Password)
	assert.Equal(t, "lab", cfg.Device.Username, "unset env vars leave file values alone")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing address",
			mutate:  func(c *Config) { c.Device.Address = "" },
			wantErr: "device.address",
		},
		{
			name:    "bad protocol",
			mutate:  func(c *Config) { c.Device.Protocol = "telnet" },
			wantErr: "device.protocol",
		},
		{
			name:    "bad port name",
			mutate:  func(c *Config) { c.Test.Port = "em0" },
			wantErr: "test.port",
		},
		{
			name:    "zero cycles",
			mutate:  func(c *Config) { c.Test.CycleCount = -1 },
			wantErr: "cycle_count",
		},
		{
			name:    "negative pause",
			mutate:  func(c *Config) { c.Test.PauseSeconds = -5 },
			wantErr: "pause_seconds",
		},
		{
			name:    "jumphost without username",
			mutate:  func(c *Config) { c.Jumphost.Address = "198.51.100.1" },
			wantErr: "jumphost.username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, minimalConfig))
			require.NoError(t, err)
			tt.mutate(cfg)

			err = Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
