package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"go.uber.org/zap"
)

// Call is one request received by a FakeBackend.
type Call struct {
	Method      string
	Path        string
	Query       url.Values
	Token       string
	ContentType string
	Body        []byte
}

// JSONBody decodes the recorded body into v.
func (c Call) JSONBody(v any) error {
	return json.Unmarshal(c.Body, v)
}

// FakeBackend is an httptest server standing in for the SOSign API.
// Routes use net/http pattern syntax ("GET /api/ads/{id}"). Unregistered
// routes answer 404 with a JSON message. Every request is recorded.
type FakeBackend struct {
	Server *httptest.Server

	mu    sync.Mutex
	mux   *http.ServeMux
	calls []Call
}

// NewFakeBackend starts a fake backend that accepts TestToken on
// GET /api/admin/me. It is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{mux: http.NewServeMux()}
	fb.mux.HandleFunc("GET /api/admin/me", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie(backend.TokenCookie); err != nil || ck.Value != TestToken {
			WriteJSON(w, http.StatusUnauthorized, map[string]any{"message": "Not authorized"})
			return
		}
		WriteJSON(w, http.StatusOK, TestAdmin())
	})
	fb.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "route not found"})
	})
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	c := Call{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	}
	if ck, err := r.Cookie(backend.TokenCookie); err == nil {
		c.Token = ck.Value
	}
	fb.mu.Lock()
	fb.calls = append(fb.calls, c)
	mux := fb.mux
	fb.mu.Unlock()

	r.Body = io.NopCloser(bytes.NewReader(body))
	mux.ServeHTTP(w, r)
}

// Handle registers h for pattern, replacing the /api/admin/me default if
// the pattern is the same.
func (fb *FakeBackend) Handle(pattern string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if pattern == "GET /api/admin/me" {
		// ServeMux panics on duplicate patterns; rebuild without the default.
		old := fb.mux
		fb.mux = http.NewServeMux()
		fb.mux.HandleFunc(pattern, h)
		fb.mux.Handle("/", old)
		return
	}
	fb.mux.HandleFunc(pattern, h)
}

// JSON registers a handler answering status with v encoded as JSON.
func (fb *FakeBackend) JSON(pattern string, status int, v any) {
	fb.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, v)
	})
}

// Calls returns a copy of every recorded request.
func (fb *FakeBackend) Calls() []Call {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]Call(nil), fb.calls...)
}

// Count returns how many requests matched method and path exactly.
func (fb *FakeBackend) Count(method, path string) int {
	n := 0
	for _, c := range fb.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// CountMethod returns how many requests used method, excluding the
// session check on /api/admin/me.
func (fb *FakeBackend) CountMethod(method string) int {
	n := 0
	for _, c := range fb.Calls() {
		if c.Method == method && c.Path != "/api/admin/me" {
			n++
		}
	}
	return n
}

// Last returns the most recent request to path.
func (fb *FakeBackend) Last(method, path string) (Call, bool) {
	calls := fb.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return Call{}, false
}

// Client returns a backend client pointed at the fake.
func (fb *FakeBackend) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.NewClient(fb.Server.URL, 5*time.Second, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	return c
}

// Session returns a session for TestToken.
func (fb *FakeBackend) Session(t *testing.T) *backend.Session {
	return fb.Client(t).Session(TestToken)
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
