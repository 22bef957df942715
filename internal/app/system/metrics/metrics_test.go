package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObserveUpstream(t *testing.T) {
	m := New()
	m.ObserveUpstream("petitions.unapproved", 200, 15*time.Millisecond)
	m.ObserveUpstream("petitions.unapproved", 200, 20*time.Millisecond)
	m.ObserveUpstream("petitions.unapproved", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("petitions.unapproved", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("petitions.unapproved", "error")))
}

func TestObserveUpstream_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUpstream("x", 200, time.Millisecond)
	m.SetBackendUp(true)
}

func TestSetBackendUp(t *testing.T) {
	m := New()
	m.SetBackendUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendUp))
	m.SetBackendUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.backendUp))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware(zap.NewNop()))
	r.Get("/dashboard/petitions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard/petitions/abc", nil))

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/dashboard/petitions/{id}", "GET", "404"))
	assert.Equal(t, 1.0, got)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveUpstream("admin.me", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sosign_admin_upstream_requests_total"))
}
