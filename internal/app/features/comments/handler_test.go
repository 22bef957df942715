package comments_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/features/comments"
	"github.com/gauravhaldar/sosign-admin/internal/testutil"
	"go.uber.org/zap"
)

type flashes struct{ msgs []string }

func (f *flashes) AddFlash(_ http.ResponseWriter, _ *http.Request, msg string) {
	f.msgs = append(f.msgs, msg)
}

func newHandler(t *testing.T, fb *testutil.FakeBackend) (*comments.Handler, *flashes) {
	t.Helper()
	f := &flashes{}
	return comments.NewHandler(fb.Client(t), f, zap.NewNop()), f
}

func unapproved() map[string]any {
	return map[string]any{"comments": []map[string]any{
		{
			"_id": "c1", "content": "Great cause",
			"user":      map[string]any{"_id": "u1", "name": "meera", "designation": "Advocate"},
			"petition":  map[string]any{"_id": "p1", "title": "Fix the Ring Road"},
			"createdAt": "2024-03-01T10:00:00Z",
		},
		{"_id": "c2", "content": "Anonymous note", "user": "u2", "petition": "p9", "createdAt": "2024-03-02T10:00:00Z"},
	}}
}

func TestServeApproval_ListsPending(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/comments/admin/unapproved", http.StatusOK, unapproved())
	h, _ := newHandler(t, fb)

	rec := testutil.NewRecorder()
	h.ServeApproval(rec, testutil.NewAdminRequest("GET", "/dashboard/comment-approval"))

	rec.AssertStatus(t, http.StatusOK)
	for _, want := range []string{
		"Comment Approval", "Review and approve pending comments", `id="pending-count">2<`,
		"Great cause", "Advocate", "Fix the Ring Road", ">M<",
		"Unknown User", "Citizen", "Unknown Petition",
		"Are you sure you want to reject and delete this comment?",
	} {
		rec.AssertContains(t, want)
	}
}

func TestServeApproval_EmptyAndFailure(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/comments/admin/unapproved", http.StatusOK, map[string]any{"comments": []any{}})
	h, _ := newHandler(t, fb)

	rec := testutil.NewRecorder()
	h.ServeApproval(rec, testutil.NewAdminRequest("GET", "/dashboard/comment-approval"))
	rec.AssertContains(t, "No comments to approve")
	rec.AssertContains(t, "all caught up for now.")

	fb = testutil.NewFakeBackend(t)
	h, _ = newHandler(t, fb)
	fb.Server.Close()

	rec = testutil.NewRecorder()
	h.ServeApproval(rec, testutil.NewAdminRequest("GET", "/dashboard/comment-approval"))
	rec.AssertContains(t, "Failed to fetch comments")
}

func TestModerate_RemovesRowWithoutRefetch(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/comments/admin/unapproved", http.StatusOK, unapproved())
	fb.JSON("PUT /api/comments/admin/c1/approve", http.StatusOK, map[string]any{"success": true})
	fb.JSON("DELETE /api/comments/admin/c2/reject", http.StatusOK, map[string]any{"success": true})
	h, _ := newHandler(t, fb)

	h.ServeApproval(testutil.NewRecorder(), testutil.NewAdminRequest("GET", "/dashboard/comment-approval"))

	tests := []struct {
		name   string
		serve  http.HandlerFunc
		id     string
		method string
		path   string
	}{
		{"approve", h.Approve, "c1", "PUT", "/api/comments/admin/c1/approve"},
		{"reject", h.Reject, "c2", "DELETE", "/api/comments/admin/c2/reject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.HTMX(testutil.NewAdminRequest("POST", "/dashboard/comment-approval/"+tt.id+"/"+tt.name))
			rec := testutil.NewRecorder()
			tt.serve(rec, testutil.WithChiURLParam(req, "id", tt.id))

			rec.AssertStatus(t, http.StatusOK)
			if rec.Body.Len() != 0 {
				t.Errorf("body: got %q, want empty", rec.Body.String())
			}
			if trig := rec.Header().Get("HX-Trigger"); !strings.Contains(trig, "pending-count") {
				t.Errorf("HX-Trigger: got %q", trig)
			}
			if n := fb.Count(tt.method, tt.path); n != 1 {
				t.Errorf("%s calls: got %d, want 1", tt.name, n)
			}
		})
	}
	if n := fb.Count("GET", "/api/comments/admin/unapproved"); n != 1 {
		t.Errorf("list calls: got %d, want 1 (no refetch)", n)
	}
}

func TestModerate_FailureTexts(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("PUT /api/comments/admin/c1/approve", http.StatusInternalServerError, map[string]any{})
	fb.JSON("DELETE /api/comments/admin/c1/reject", http.StatusInternalServerError, map[string]any{})
	h, _ := newHandler(t, fb)

	rec := testutil.NewRecorder()
	h.Approve(rec, testutil.WithChiURLParam(testutil.HTMX(testutil.NewAdminRequest("POST", "/x")), "id", "c1"))
	rec.AssertAlert(t, "Failed to approve comment")

	rec = testutil.NewRecorder()
	h.Reject(rec, testutil.WithChiURLParam(testutil.HTMX(testutil.NewAdminRequest("POST", "/x")), "id", "c1"))
	rec.AssertAlert(t, "Failed to reject comment")
}

func threadPage(ids []string, more bool) map[string]any {
	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{
			"_id": id, "content": "comment " + id,
			"user":      map[string]any{"_id": "u-" + id, "name": "User " + id},
			"createdAt": time.Now().Add(-3 * time.Hour).Format(time.RFC3339),
			"likes":     []string{"a", "b"},
		})
	}
	return map[string]any{"success": true, "comments": items, "hasNextPage": more}
}

func TestServeThread_FirstPage(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	page := threadPage([]string{"c1", "c2"}, true)
	page["comments"].([]map[string]any)[0]["isEdited"] = true
	page["comments"].([]map[string]any)[0]["replies"] = []any{
		"bare-id",
		map[string]any{"_id": "r1", "content": "a reply", "user": map[string]any{"name": "Ravi"}, "createdAt": time.Now().Format(time.RFC3339)},
	}
	fb.JSON("GET /api/comments/petition/p1", http.StatusOK, page)
	h, _ := newHandler(t, fb)

	req := testutil.WithChiURLParam(testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/comments/petition/p1")), "petitionID", "p1")
	rec := testutil.NewRecorder()
	h.ServeThread(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	for _, want := range []string{
		`id="comment-count">2<`, "comment c1", "User c1", "3h ago", "(edited)",
		"2 likes", "1 reply", "a reply", "Delete reply", "Load More Comments",
		"page=2", "loaded=2",
	} {
		rec.AssertContains(t, want)
	}
	rec.AssertNotContains(t, "<html")

	call, _ := fb.Last("GET", "/api/comments/petition/p1")
	if call.Query.Get("limit") != "50" || call.Query.Get("page") != "1" {
		t.Errorf("query: got %v", call.Query)
	}
}

func TestServeThread_MorePageAppends(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/comments/petition/p1", http.StatusOK, threadPage([]string{"c51"}, false))
	h, _ := newHandler(t, fb)

	req := testutil.NewAdminRequest("GET", "/dashboard/comments/petition/p1?page=2&loaded=50")
	rec := testutil.NewRecorder()
	h.ServeThread(rec, testutil.WithChiURLParam(testutil.HTMX(req), "petitionID", "p1"))

	rec.AssertContains(t, "comment c51")
	rec.AssertContains(t, `hx-swap-oob="true">51<`)
	rec.AssertNotContains(t, "Load More Comments")
	rec.AssertNotContains(t, "No comments yet.")
}

func TestServeThread_AppFailure(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/comments/petition/p1", http.StatusOK, map[string]any{"success": false, "message": "Petition hidden"})
	h, _ := newHandler(t, fb)

	rec := testutil.NewRecorder()
	h.ServeThread(rec, testutil.WithChiURLParam(testutil.NewAdminRequest("GET", "/dashboard/comments/petition/p1"), "petitionID", "p1"))
	rec.AssertContains(t, "Error: Petition hidden")
}

func TestDelete_TopLevelAndReply(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("DELETE /api/comments/c1", http.StatusOK, map[string]any{"success": true, "message": "Deleted"})
	fb.JSON("DELETE /api/comments/r1", http.StatusOK, map[string]any{"success": true, "message": "Deleted"})
	h, _ := newHandler(t, fb)

	req := testutil.HTMX(testutil.NewFormRequest("POST", "/dashboard/comments/c1/delete", url.Values{"petition": {"p1"}}))
	rec := testutil.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(req, "id", "c1"))
	rec.AssertAlert(t, "Comment deleted successfully!")
	if trig := rec.Header().Get("HX-Trigger"); !strings.Contains(trig, "comment-count") {
		t.Errorf("top-level delete should lower the count, HX-Trigger %q", trig)
	}

	req = testutil.HTMX(testutil.NewFormRequest("POST", "/dashboard/comments/r1/delete", url.Values{"petition": {"p1"}, "reply": {"1"}}))
	rec = testutil.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(req, "id", "r1"))
	rec.AssertAlert(t, "Comment deleted successfully!")
	if trig := rec.Header().Get("HX-Trigger"); strings.Contains(trig, "rowRemoved") {
		t.Errorf("reply delete should not touch the count, HX-Trigger %q", trig)
	}
	if n := fb.Count("GET", "/api/comments/petition/p1"); n != 0 {
		t.Errorf("delete must not refetch the thread, got %d list calls", n)
	}
}

func TestDelete_FailureTexts(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("DELETE /api/comments/c1", http.StatusOK, map[string]any{"success": false, "message": "Not allowed"})
	fb.JSON("DELETE /api/comments/c2", http.StatusOK, map[string]any{"success": false})
	h, _ := newHandler(t, fb)

	for id, want := range map[string]string{
		"c1": "Failed to delete comment: Not allowed",
		"c2": "Failed to delete comment: Unknown error",
	} {
		rec := testutil.NewRecorder()
		h.Delete(rec, testutil.WithChiURLParam(testutil.HTMX(testutil.NewFormRequest("POST", "/x", url.Values{})), "id", id))
		rec.AssertAlert(t, want)
	}

	fb.Server.Close()
	rec := testutil.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(testutil.HTMX(testutil.NewFormRequest("POST", "/x", url.Values{})), "id", "c1"))
	rec.AssertAlert(t, "Failed to delete comment")
	if strings.Contains(rec.Header().Get("HX-Trigger"), "Failed to delete comment:") {
		t.Error("transport failure should use the bare text")
	}
}

func TestDelete_PlainPostReturnsToPetition(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("DELETE /api/comments/c1", http.StatusOK, map[string]any{"success": true})
	h, f := newHandler(t, fb)

	rec := testutil.NewRecorder()
	h.Delete(rec, testutil.WithChiURLParam(testutil.NewFormRequest("POST", "/dashboard/comments/c1/delete", url.Values{"petition": {"p1"}}), "id", "c1"))
	rec.AssertRedirect(t, "/dashboard/petitions/p1")
	if len(f.msgs) != 1 || f.msgs[0] != "Comment deleted successfully!" {
		t.Errorf("flashes: got %v", f.msgs)
	}
}
