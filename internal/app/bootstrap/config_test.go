package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 1.0, cfg.WalletRate)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "@every 30s", cfg.ProbeSchedule)
	assert.Equal(t, 10*time.Second, cfg.TimeoutMedium)
	assert.False(t, cfg.Secure())
	assert.NoError(t, ValidateConfig(cfg, zap.NewNop()))
}

func TestLoadConfig_EnvOverridesDefault(t *testing.T) {
	t.Setenv("SOSIGN_API_BASE_URL", "https://api.sosign.test/")
	t.Setenv("SOSIGN_WALLET_RATE", "2.5")
	t.Setenv("SOSIGN_TIMEOUT_SHORT", "750ms")

	cfg, err := LoadConfig(nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "https://api.sosign.test", cfg.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, 2.5, cfg.WalletRate)
	assert.Equal(t, 750*time.Millisecond, cfg.TimeoutShort)
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SOSIGN_HTTP_ADDR", ":8000")

	cfg, err := LoadConfig([]string{"--http_addr", ":9000"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sosign.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wallet_rate: 4\nsession_name: from-file\nhttp_addr: \":7000\"\n"), 0o600))
	t.Setenv("SOSIGN_HTTP_ADDR", ":8000")

	cfg, err := LoadConfig([]string{"--config", path}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.WalletRate)
	assert.Equal(t, "from-file", cfg.SessionName)
	assert.Equal(t, ":8000", cfg.HTTPAddr, "env beats the config file")
}

func TestLoadConfig_MissingConfigFile(t *testing.T) {
	_, err := LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	_, err := LoadConfig([]string{"--no_such_flag", "x"}, zap.NewNop())
	assert.Error(t, err)
}

func validConfig(t *testing.T) AppConfig {
	t.Helper()
	cfg, err := LoadConfig(nil, zap.NewNop())
	require.NoError(t, err)
	return cfg
}

func TestValidateConfig(t *testing.T) {
	strong := "0123456789abcdef0123456789abcdef-prod"
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{"dev defaults", func(c *AppConfig) {}, ""},
		{"prod with strong key", func(c *AppConfig) { c.Env = "prod"; c.SessionKey = strong }, ""},
		{"prod with dev key", func(c *AppConfig) { c.Env = "prod" }, "session_key"},
		{"prod with short key", func(c *AppConfig) { c.Env = "prod"; c.SessionKey = "short" }, "session_key"},
		{"prod with short csrf key", func(c *AppConfig) { c.Env = "prod"; c.SessionKey = strong; c.CSRFKey = "tiny" }, "csrf_key"},
		{"unknown env", func(c *AppConfig) { c.Env = "staging" }, "env must be"},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }, "log_level"},
		{"relative backend url", func(c *AppConfig) { c.APIBaseURL = "/api" }, "api_base_url"},
		{"ftp backend url", func(c *AppConfig) { c.APIBaseURL = "ftp://files.example.com" }, "api_base_url"},
		{"negative wallet rate", func(c *AppConfig) { c.WalletRate = -1 }, "wallet_rate"},
		{"zero upload cap", func(c *AppConfig) { c.MaxUploadBytes = 0 }, "max_upload_bytes"},
		{"bad probe schedule", func(c *AppConfig) { c.ProbeSchedule = "every now and then" }, "probe_schedule"},
		{"zero login limit", func(c *AppConfig) { c.LoginIPLimit = 0 }, "login limits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := ValidateConfig(cfg, zap.NewNop())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("dev", "chatty")
	assert.Error(t, err)
}
