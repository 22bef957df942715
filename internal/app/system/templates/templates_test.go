package templates

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1250, "1.2K"},
		{15300, "15.3K"},
		{1_000_000, "1.0M"},
		{2_460_000, "2.5M"},
	}
	for _, tt := range tests {
		if got := CompactNumber(tt.in); got != tt.want {
			t.Errorf("CompactNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupedAndRupees(t *testing.T) {
	if got := Grouped(1234567); got != "1,234,567" {
		t.Errorf("Grouped(int) = %q", got)
	}
	if got := Grouped(2500.0); got != "2,500" {
		t.Errorf("Grouped(float whole) = %q", got)
	}
	if got := Rupees(1520.5); got != "₹1,520.50" {
		t.Errorf("Rupees = %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Minute, "Just now"},
		{5 * time.Hour, "5h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
	if got := TimeAgo(now.Add(-30*24*time.Hour), now); got != Date(now.Add(-30*24*time.Hour)) {
		t.Errorf("old comment: got %q", got)
	}
}

func TestDateISO(t *testing.T) {
	d := time.Date(2025, 1, 31, 18, 30, 0, 0, time.UTC)
	if got := DateISO(&d); got != "2025-01-31" {
		t.Errorf("DateISO(*time) = %q", got)
	}
	var nilTime *time.Time
	if got := DateISO(nilTime); got != "" {
		t.Errorf("DateISO(nil) = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel("verification_pending"); got != "Verification Pending" {
		t.Errorf("got %q", got)
	}
	if got := StatusLabel("approved"); got != "Approved" {
		t.Errorf("got %q", got)
	}
}

func TestRender_RegisteredSet(t *testing.T) {
	Register(Set{
		Name: "probe",
		FS: fstest.MapFS{
			"templates/probe.gohtml": {Data: []byte(`{{define "probe_page"}}<p>{{compact .N}}</p>{{template "error_banner" .Err}}{{end}}`)},
		},
		Patterns: []string{"templates/*.gohtml"},
	})

	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest("GET", "/", nil), "probe_page", map[string]any{"N": 1500, "Err": "Failed to load"})

	if rec.Code != 200 {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<p>1.5K</p>") || !strings.Contains(body, "Failed to load") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRender_UnknownTemplate500(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest("GET", "/", nil), "does_not_exist", nil)
	if rec.Code != 500 {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}
