// internal/app/system/auth/auth.go
package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "sosign-admin"

	// tokenKey holds the backend adminToken. The browser never sees it in
	// clear text; the cookie is signed and encrypted.
	tokenKey   = "admin_token"
	signedInAt = "signed_in_at"
)

// ErrNoSession is returned when the request carries no usable session.
var ErrNoSession = errors.New("auth: no admin session")

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store that carries the backend admin
// token between requests.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie store keyed from sessionKey. The hash
// key is the session key itself; the encryption key is derived from it with
// HKDF so a single secret configures both.
//
// In production (secure=true) cookies are Secure + SameSite=Lax. In local
// dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	blockKey := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(sessionKey), nil, []byte("sosign-admin session encryption"))
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, fmt.Errorf("derive session encryption key: %w", err)
	}

	store := sessions.NewCookieStore([]byte(sessionKey), blockKey)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Store exposes the underlying cookie store.
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// GetSession returns the admin session. A cookie that fails to decode
// (rotated key, tampering) yields a fresh session together with the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// TokenFrom returns the stored backend token, or "" when there is none.
func (sm *SessionManager) TokenFrom(r *http.Request) string {
	sess, err := sm.GetSession(r)
	if err != nil && !isDecodeError(err) {
		sm.log.Debug("session read failed", zap.Error(err))
	}
	if sess == nil {
		return ""
	}
	tok, _ := sess.Values[tokenKey].(string)
	return tok
}

// SetToken stores the backend admin token after a successful login.
func (sm *SessionManager) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := sm.GetSession(r)
	sess.Values[tokenKey] = token
	sess.Values[signedInAt] = time.Now().Unix()
	return sess.Save(r, w)
}

// Clear removes the token and expires the cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.GetSession(r)
	delete(sess.Values, tokenKey)
	delete(sess.Values, signedInAt)

	opts := *sm.store.Options
	opts.MaxAge = -1
	sess.Options = &opts
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Flash messages                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// AddFlash queues a message shown as an alert on the next full page.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := sm.GetSession(r)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save flash", zap.Error(err))
	}
}

// PopFlashes returns and clears queued messages.
func (sm *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess, err := sm.GetSession(r)
	if err != nil || sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("clear flashes", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isDecodeError(err error) bool {
	var multi securecookie.MultiError
	if errors.As(err, &multi) {
		return multi.IsDecode()
	}
	var sc securecookie.Error
	return errors.As(err, &sc) && sc.IsDecode()
}
