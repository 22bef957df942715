// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the configuration for the admin dashboard.
//
// Values come from flags, SOSIGN_* environment variables, an optional
// config file and the defaults in appConfigKeys, in that order of
// precedence (see LoadConfig). The struct is handed to every lifecycle
// step, so anything needed during startup, request handling or shutdown
// lives here.
type AppConfig struct {
	Env      string // "dev" or "prod"
	LogLevel string // zap level name (debug, info, warn, error)
	HTTPAddr string // listen address, e.g. ":3000"

	// SOSign REST backend
	APIBaseURL      string        // e.g. "https://api.sosign.in"
	UpstreamTimeout time.Duration // transport-level cap on a single backend call

	// Per-call deadlines (see system/timeouts)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Admin cookie session
	SessionKey    string        // signing secret; must be strong in production
	SessionName   string        // cookie name
	SessionDomain string        // blank means current host
	SessionMaxAge time.Duration // cookie lifetime

	// CSRFKey seeds the gorilla/csrf auth key. Blank derives it from SessionKey.
	CSRFKey string

	WalletRate     float64 // currency units per wallet point
	MaxUploadBytes int64   // cap on blog/ad multipart forms

	ProbeSchedule string // cron spec for the backend liveness probe

	// Login throttling, attempts per window
	LoginIPLimit    int
	LoginEmailLimit int

	ShutdownTimeout time.Duration
}

// Secure reports whether cookies should carry the Secure flag.
func (c AppConfig) Secure() bool { return c.Env == "prod" }
