// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix for environment overrides: SOSIGN_API_BASE_URL, ...
const EnvPrefix = "SOSIGN"

// devSessionKey is the out-of-the-box session key. It is refused in prod.
const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appKey describes one configuration key. The type of Default decides the
// flag type registered for it.
type appKey struct {
	Name    string
	Default any
	Desc    string
}

// appConfigKeys defines the configuration keys for the admin dashboard.
// Each is available as:
//   - a config file key: api_base_url, session_name, ...
//   - an environment variable: SOSIGN_API_BASE_URL, SOSIGN_SESSION_NAME, ...
//   - a command-line flag: --api_base_url, --session_name, ...
var appConfigKeys = []appKey{
	{Name: "env", Default: "dev", Desc: "Runtime environment: 'dev' or 'prod'"},
	{Name: "log_level", Default: "info", Desc: "Log level (debug, info, warn, error)"},
	{Name: "http_addr", Default: ":3000", Desc: "HTTP listen address"},

	{Name: "api_base_url", Default: "http://localhost:8000", Desc: "SOSign backend base URL"},
	{Name: "upstream_timeout", Default: 30 * time.Second, Desc: "Transport timeout for a single backend call"},
	{Name: "timeout_short", Default: 5 * time.Second, Desc: "Deadline for session checks and single reads"},
	{Name: "timeout_medium", Default: 10 * time.Second, Desc: "Deadline for list fetches and JSON mutations"},
	{Name: "timeout_long", Default: 30 * time.Second, Desc: "Deadline for uploads and parallel batches"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "sosign-admin", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: 24 * time.Hour, Desc: "Session cookie lifetime"},
	{Name: "csrf_key", Default: "", Desc: "CSRF key seed (blank derives it from session_key)"},

	{Name: "wallet_rate", Default: 1.0, Desc: "Currency units per wallet point"},
	{Name: "max_upload_bytes", Default: 10 << 20, Desc: "Maximum size of a blog or ad form, image included"},

	{Name: "probe_schedule", Default: "@every 30s", Desc: "Cron schedule of the backend liveness probe"},

	{Name: "login_ip_limit", Default: 10, Desc: "Login attempts per IP per minute"},
	{Name: "login_email_limit", Default: 5, Desc: "Login attempts per email per five minutes"},

	{Name: "shutdown_timeout", Default: 15 * time.Second, Desc: "Grace period for in-flight requests on shutdown"},
}

// LoadConfig reads the configuration.
//
// Sources are merged with precedence flags > env > config file > defaults.
// A .env file in the working directory is loaded first into the process
// environment; a missing .env is not an error. --config names an optional
// yaml, json or toml file.
func LoadConfig(args []string, logger *zap.Logger) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", zap.Error(err))
	}

	flags := pflag.NewFlagSet("sosign-admin", pflag.ContinueOnError)
	flags.String("config", "", "Path to a config file (yaml, json or toml)")
	for _, k := range appConfigKeys {
		switch d := k.Default.(type) {
		case string:
			flags.String(k.Name, d, k.Desc)
		case int:
			flags.Int(k.Name, d, k.Desc)
		case float64:
			flags.Float64(k.Name, d, k.Desc)
		case bool:
			flags.Bool(k.Name, d, k.Desc)
		case time.Duration:
			flags.Duration(k.Name, d, k.Desc)
		default:
			return AppConfig{}, fmt.Errorf("config key %q: unsupported default type %T", k.Name, k.Default)
		}
	}
	if err := flags.Parse(args); err != nil {
		return AppConfig{}, err
	}

	v := viper.New()
	for _, k := range appConfigKeys {
		v.SetDefault(k.Name, k.Default)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		logger.Info("config file loaded", zap.String("path", path))
	}
	if err := v.BindPFlags(flags); err != nil {
		return AppConfig{}, fmt.Errorf("bind flags: %w", err)
	}

	cfg := AppConfig{
		Env:      strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		LogLevel: v.GetString("log_level"),
		HTTPAddr: v.GetString("http_addr"),

		APIBaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("api_base_url")), "/"),
		UpstreamTimeout: v.GetDuration("upstream_timeout"),
		TimeoutShort:    v.GetDuration("timeout_short"),
		TimeoutMedium:   v.GetDuration("timeout_medium"),
		TimeoutLong:     v.GetDuration("timeout_long"),

		SessionKey:    v.GetString("session_key"),
		SessionName:   v.GetString("session_name"),
		SessionDomain: v.GetString("session_domain"),
		SessionMaxAge: v.GetDuration("session_max_age"),
		CSRFKey:       v.GetString("csrf_key"),

		WalletRate:     v.GetFloat64("wallet_rate"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		ProbeSchedule:  v.GetString("probe_schedule"),

		LoginIPLimit:    v.GetInt("login_ip_limit"),
		LoginEmailLimit: v.GetInt("login_email_limit"),

		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	return cfg, nil
}

// ValidateConfig rejects configurations the server cannot run with.
// It is called before the logger is rebuilt from cfg, so problems are
// reported on the bootstrap logger.
func ValidateConfig(cfg AppConfig, logger *zap.Logger) error {
	var errs []error

	switch cfg.Env {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be 'dev' or 'prod', got %q", cfg.Env))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	u, err := url.Parse(cfg.APIBaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api_base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", cfg.APIBaseURL))
	}

	if cfg.SessionKey == "" {
		errs = append(errs, errors.New("session_key is required"))
	}
	if cfg.Env == "prod" {
		if cfg.SessionKey == devSessionKey || len(cfg.SessionKey) < 32 {
			errs = append(errs, errors.New("session_key must be a private value of at least 32 characters in prod"))
		}
		if cfg.CSRFKey != "" && len(cfg.CSRFKey) < 32 {
			errs = append(errs, errors.New("csrf_key must be at least 32 characters in prod"))
		}
	}

	if cfg.WalletRate < 0 {
		errs = append(errs, fmt.Errorf("wallet_rate must not be negative, got %v", cfg.WalletRate))
	}
	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes must be positive, got %d", cfg.MaxUploadBytes))
	}
	if _, err := cron.ParseStandard(cfg.ProbeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("probe_schedule %q: %w", cfg.ProbeSchedule, err))
	}
	if cfg.LoginIPLimit <= 0 || cfg.LoginEmailLimit <= 0 {
		errs = append(errs, errors.New("login limits must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}
