package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// TestToken is the admin token FakeBackend accepts by default.
const TestToken = "test-admin-token"

// TestAdmin returns the admin identity FakeBackend reports for TestToken.
func TestAdmin() models.Admin {
	return models.Admin{
		ID:    "66a0c0ffee0000000000admin",
		Name:  "Test Admin",
		Email: "admin@sosign.test",
		Role:  "admin",
	}
}

// WithAdmin places a verified admin and TestToken in the request context,
// bypassing the session guard.
func WithAdmin(r *http.Request) *http.Request {
	return auth.WithTestAdmin(r, TestAdmin(), TestToken)
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handler methods directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewRequest creates a request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAdminRequest creates a request carrying the test admin.
func NewAdminRequest(method, target string) *http.Request {
	return WithAdmin(httptest.NewRequest(method, target, nil))
}

// NewFormRequest creates a url-encoded POST-style request carrying the
// test admin.
func NewFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithAdmin(req)
}

// HTMX marks req as an htmx request.
func HTMX(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// AssertNotContains checks the response body does not contain s.
func (r *ResponseRecorder) AssertNotContains(t interface{ Errorf(string, ...any) }, s string) {
	if strings.Contains(r.Body.String(), s) {
		t.Errorf("response body unexpectedly contains %q", s)
	}
}

// AssertAlert checks the HX-Trigger header carries a showAlert event
// whose text contains msg.
func (r *ResponseRecorder) AssertAlert(t interface{ Errorf(string, ...any) }, msg string) {
	trig := r.Header().Get("HX-Trigger")
	if !strings.Contains(trig, "showAlert") || !strings.Contains(trig, msg) {
		t.Errorf("HX-Trigger: got %q, want showAlert containing %q", trig, msg)
	}
}
