package downloadrequests_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gauravhaldar/sosign-admin/internal/app/features/downloadrequests"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/gauravhaldar/sosign-admin/internal/testutil"
	"go.uber.org/zap"
)

type flashes struct{ msgs []string }

func (f *flashes) AddFlash(_ http.ResponseWriter, _ *http.Request, msg string) {
	f.msgs = append(f.msgs, msg)
}

const listRoute = "GET /api/download-requests/admin/all"

var pendingRequest = map[string]any{
	"_id":             "d1",
	"user":            map[string]any{"name": "Kiran", "email": "kiran@example.com"},
	"petition":        map[string]any{"title": "Clean Rivers"},
	"reason":          "Press coverage",
	"requestedFields": []string{"name", "email", "phone"},
	"status":          "pending",
	"createdAt":       "2024-07-01T09:30:00Z",
}

// fixture answers the list route with per-status totals. A status named
// in failing answers 500.
type fixture struct {
	mu      sync.Mutex
	totals  map[string]int
	failing string
}

func (f *fixture) set(totals map[string]int, failing string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totals, f.failing = totals, failing
}

func (f *fixture) serve(fb *testutil.FakeBackend) {
	fb.Handle(listRoute, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		totals, failing := f.totals, f.failing
		f.mu.Unlock()

		status := r.URL.Query().Get("status")
		if failing != "" && failing == status {
			testutil.WriteJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
			return
		}
		reqs := []any{}
		switch status {
		case "pending":
			reqs = append(reqs, pendingRequest)
		case "approved":
			reqs = append(reqs, map[string]any{
				"_id": "d2", "user": map[string]any{"name": "Asha"}, "petition": map[string]any{"title": "Parks"},
				"approvedFields": []string{"email"}, "adminNote": "OK for research", "status": "approved",
			})
		}
		testutil.WriteJSON(w, http.StatusOK, map[string]any{"requests": reqs, "totalRequests": totals[status]})
	})
}

func newHandler(t *testing.T, totals map[string]int) (*downloadrequests.Handler, *testutil.FakeBackend, *fixture) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	fx := &fixture{totals: totals}
	fx.serve(fb)
	return downloadrequests.NewHandler(fb.Client(t), &flashes{}, zap.NewNop()), fb, fx
}

func TestServeList_DefaultsToPendingWithStats(t *testing.T) {
	h, fb, _ := newHandler(t, map[string]int{"pending": 3, "approved": 5, "rejected": 1})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/download-requests"))

	rec.AssertStatus(t, http.StatusOK)
	for _, want := range []string{
		"Download Requests", "Pending Requests",
		`id="download-stats-pending" class="text-2xl font-bold text-yellow-600">3<`,
		`id="download-stats-approved" class="text-2xl font-bold text-green-600">5<`,
		`id="download-stats-rejected" class="text-2xl font-bold text-red-600">1<`,
		"Kiran", "Clean Rivers", "Press coverage", "Name, Email, Phone",
		"/dashboard/download-requests/d1/approve",
	} {
		rec.AssertContains(t, want)
	}
	rec.AssertNotContains(t, "Admin Note</th>")
	if n := fb.Count("GET", "/api/download-requests/admin/all"); n != 4 {
		t.Errorf("backend list calls: got %d, want 4 (list + three totals)", n)
	}
}

func TestServeList_ApprovedTabShowsNotes(t *testing.T) {
	h, _, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/download-requests?status=approved")))

	rec.AssertContains(t, "Approved Requests")
	rec.AssertContains(t, "OK for research")
	rec.AssertContains(t, "Admin Note</th>")
	rec.AssertNotContains(t, "/approve\"")
	rec.AssertNotContains(t, "Manage petition download permission requests")

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/download-requests?status=rejected")))
	rec.AssertContains(t, "No rejected requests found")
}

func TestServeList_StatsFailureKeepsPreviousTotals(t *testing.T) {
	h, _, fx := newHandler(t, map[string]int{"pending": 3, "approved": 5, "rejected": 1})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/download-requests?status=rejected"))
	rec.AssertContains(t, `text-green-600">5<`)

	// approved fails while the other two report new totals; none of the
	// new totals may be shown.
	fx.set(map[string]int{"pending": 9, "approved": 9, "rejected": 9}, "approved")

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/download-requests?status=rejected"))
	rec.AssertContains(t, `text-yellow-600">3<`)
	rec.AssertContains(t, `text-green-600">5<`)
	rec.AssertContains(t, `text-red-600">1<`)
	rec.AssertNotContains(t, `">9<`)
}

func TestServeList_PreviousTotalsArePerSession(t *testing.T) {
	h, _, fx := newHandler(t, map[string]int{"pending": 3, "approved": 5, "rejected": 1})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/download-requests"))
	rec.AssertContains(t, `text-green-600">5<`)

	fx.set(map[string]int{"pending": 9, "approved": 9, "rejected": 9}, "approved")

	// A different admin session has no complete batch yet.
	req := auth.WithTestAdmin(httptest.NewRequest("GET", "/dashboard/download-requests", nil), testutil.TestAdmin(), "second-session-token")
	rec = testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertContains(t, `text-yellow-600">0<`)
	rec.AssertContains(t, `text-green-600">0<`)
	rec.AssertNotContains(t, `text-green-600">5<`)
}

func TestServeList_ListFailure(t *testing.T) {
	h, _, fx := newHandler(t, nil)
	fx.set(nil, "pending")

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/download-requests"))
	rec.AssertContains(t, "Failed to fetch download requests")
	rec.AssertNotContains(t, "No pending requests found")
}

func reviewReq(method, action string, form url.Values) *http.Request {
	target := "/dashboard/download-requests/d1/" + action
	var req *http.Request
	if form == nil {
		req = testutil.NewAdminRequest(method, target)
	} else {
		req = testutil.NewFormRequest(method, target, form)
	}
	req = testutil.WithChiURLParam(req, "id", "d1")
	return testutil.HTMX(testutil.WithChiURLParam(req, "action", action))
}

func TestServeReview_ApproveModalPreselectsAllFields(t *testing.T) {
	h, _, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.ServeReview(rec, reviewReq("GET", "approve", nil))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Approve Request")
	rec.AssertContains(t, "User will be able to download the petition data.")
	rec.AssertContains(t, "Kiran (kiran@example.com)")
	rec.AssertContains(t, "data-field-picker")
	for _, f := range []string{"name", "email", "phone"} {
		rec.AssertContains(t, `name="approvedFields" value="`+f+`" data-field checked`)
	}
	rec.AssertContains(t, "data-select-all checked")
	rec.AssertNotContains(t, "data-requires-field disabled")
}

func TestServeReview_RejectAndMissing(t *testing.T) {
	h, _, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.ServeReview(rec, reviewReq("GET", "reject", nil))
	rec.AssertContains(t, "Reject Request")
	rec.AssertContains(t, "User will not be able to download. They can request again.")
	rec.AssertNotContains(t, "data-field-picker")

	req := testutil.WithChiURLParam(testutil.NewAdminRequest("GET", "/dashboard/download-requests/zz/approve"), "id", "zz")
	req = testutil.HTMX(testutil.WithChiURLParam(req, "action", "approve"))
	rec = testutil.NewRecorder()
	h.ServeReview(rec, req)
	rec.AssertAlert(t, "Download request not found")
}

func TestHandleReview_ApproveSendsSubsetAndRefreshes(t *testing.T) {
	h, fb, _ := newHandler(t, map[string]int{"pending": 1})
	fb.JSON("PUT /api/download-requests/admin/d1/approve", http.StatusOK, map[string]any{"success": true})

	rec := testutil.NewRecorder()
	h.HandleReview(rec, reviewReq("POST", "approve", url.Values{
		"approvedFields": {"email", "phone", "email", " "},
		"adminNote":      {"For the report"},
	}))

	rec.AssertStatus(t, http.StatusOK)
	if trig := rec.Header().Get("HX-Trigger"); !strings.Contains(trig, "closeModal") {
		t.Errorf("HX-Trigger: got %q, want closeModal", trig)
	}
	rec.AssertContains(t, "Pending Requests")

	put, ok := fb.Last("PUT", "/api/download-requests/admin/d1/approve")
	if !ok {
		t.Fatal("approve was not sent")
	}
	var body struct {
		AdminNote      string   `json:"adminNote"`
		ApprovedFields []string `json:"approvedFields"`
	}
	if err := put.JSONBody(&body); err != nil {
		t.Fatalf("decode approve body: %v", err)
	}
	if body.AdminNote != "For the report" || strings.Join(body.ApprovedFields, ",") != "email,phone" {
		t.Errorf("approve body: got %+v", body)
	}
}

func TestHandleReview_ApproveNeedsAField(t *testing.T) {
	h, fb, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.HandleReview(rec, reviewReq("POST", "approve", url.Values{"adminNote": {"x"}}))

	rec.AssertAlert(t, "Select at least one field to approve")
	if n := fb.CountMethod("PUT"); n != 0 {
		t.Errorf("PUT calls: got %d, want 0", n)
	}
}

func TestHandleReview_RejectFailureAlerts(t *testing.T) {
	h, fb, _ := newHandler(t, nil)
	fb.JSON("PUT /api/download-requests/admin/d1/reject", http.StatusInternalServerError, map[string]any{})

	rec := testutil.NewRecorder()
	h.HandleReview(rec, reviewReq("POST", "reject", url.Values{"adminNote": {"no"}}))

	rec.AssertAlert(t, "Failed to reject request")
	if strings.Contains(rec.Header().Get("HX-Trigger"), "closeModal") {
		t.Error("modal must stay open on failure")
	}
	if n := fb.Count("GET", "/api/download-requests/admin/all"); n != 0 {
		t.Errorf("refetched %d times after a failure", n)
	}
}
