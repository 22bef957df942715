package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/testutil"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// signedInRequest returns a request carrying a session cookie that holds token.
func signedInRequest(t *testing.T, sm *auth.SessionManager, target, token string) *http.Request {
	t.Helper()
	setup := httptest.NewRequest("GET", "/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.SetToken(rec, setup, token); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	req := httptest.NewRequest("GET", target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	a, _ := auth.CurrentAdmin(r)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("dashboard for " + a.Email))
})

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestSetToken_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	req := signedInRequest(t, sm, "/dashboard", "tok-1")

	if got := sm.TokenFrom(req); got != "tok-1" {
		t.Errorf("TokenFrom: got %q, want %q", got, "tok-1")
	}
}

func TestRequireAdmin_NoToken_RedirectsWithoutCallingBackend(t *testing.T) {
	sm := newTestSessionManager(t)
	fb := testutil.NewFakeBackend(t)

	rec := httptest.NewRecorder()
	sm.RequireAdmin(fb.Client(t))(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("location: got %q, want /login", loc)
	}
	if n := len(fb.Calls()); n != 0 {
		t.Errorf("backend calls: got %d, want 0", n)
	}
}

func TestRequireAdmin_ValidToken_RendersWithAdmin(t *testing.T) {
	sm := newTestSessionManager(t)
	fb := testutil.NewFakeBackend(t)

	rec := httptest.NewRecorder()
	req := signedInRequest(t, sm, "/dashboard", testutil.TestToken)
	sm.RequireAdmin(fb.Client(t))(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if want := "dashboard for " + testutil.TestAdmin().Email; rec.Body.String() != want {
		t.Errorf("body: got %q, want %q", rec.Body.String(), want)
	}
	if n := fb.Count("GET", "/api/admin/me"); n != 1 {
		t.Errorf("me calls: got %d, want 1", n)
	}
}

func TestRequireAdmin_RejectedIdentity(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "expired"})
		}},
		{"forbidden", func(w http.ResponseWriter, r *http.Request) {
			testutil.WriteJSON(w, http.StatusForbidden, map[string]string{"message": "no"})
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>login</html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newTestSessionManager(t)
			fb := testutil.NewFakeBackend(t)
			fb.Handle("GET /api/admin/me", tt.handler)

			rec := httptest.NewRecorder()
			req := signedInRequest(t, sm, "/dashboard", testutil.TestToken)
			sm.RequireAdmin(fb.Client(t))(okHandler).ServeHTTP(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get("Location"); loc != "/login" {
				t.Errorf("location: got %q, want /login", loc)
			}
			if strings.Contains(rec.Body.String(), "dashboard for") {
				t.Error("protected content rendered for rejected session")
			}
		})
	}
}

func TestRequireAdmin_NetworkFailure_Redirects(t *testing.T) {
	sm := newTestSessionManager(t)
	fb := testutil.NewFakeBackend(t)
	client := fb.Client(t)
	fb.Server.Close()

	rec := httptest.NewRecorder()
	req := signedInRequest(t, sm, "/dashboard", testutil.TestToken)
	sm.RequireAdmin(client)(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireAdmin_HTMX_UsesHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	fb := testutil.NewFakeBackend(t)

	req := httptest.NewRequest("GET", "/dashboard/ads", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	sm.RequireAdmin(fb.Client(t))(okHandler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/login" {
		t.Errorf("HX-Redirect: got %q, want /login", got)
	}
}

func TestRequireToken_Missing_Returns401JSON(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	h := sm.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stats", nil))

	if called {
		t.Error("next handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Message != "Admin authentication required" {
		t.Errorf("body: got %+v", body)
	}
}

func TestRequireToken_PassesToken(t *testing.T) {
	sm := newTestSessionManager(t)
	var got string
	h := sm.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = auth.Token(r) }))

	h.ServeHTTP(httptest.NewRecorder(), signedInRequest(t, sm, "/api/stats", "tok-9"))
	if got != "tok-9" {
		t.Errorf("Token: got %q, want tok-9", got)
	}
}

func TestClear_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	req := signedInRequest(t, sm, "/logout", "tok-1")
	rec := httptest.NewRecorder()

	if err := sm.Clear(rec, req); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expired cookie, got %+v", cookies)
	}
}
