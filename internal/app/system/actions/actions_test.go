package actions_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/actions"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Strategies(t *testing.T) {
	d := actions.NewDispatcher(nil)
	ok := func(context.Context) error { return nil }

	out := d.Run(context.Background(), actions.Action{ID: "c1", Verb: "approve", Strategy: actions.LocalRemoveOnSuccess, Do: ok})
	assert.True(t, out.OK)
	assert.Equal(t, "c1", out.RemoveID)
	assert.False(t, out.Refetch)

	out = d.Run(context.Background(), actions.Action{ID: "a1", Verb: "toggle", Strategy: actions.RefetchOnSuccess, Do: ok})
	assert.True(t, out.OK)
	assert.True(t, out.Refetch)
	assert.Empty(t, out.RemoveID)
}

func TestRun_FailureTexts(t *testing.T) {
	d := actions.NewDispatcher(nil)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"backend message", &backend.APIError{StatusCode: 400, Message: "Already approved"}, "Already approved"},
		{"no message", &backend.APIError{StatusCode: 500}, "Failed to delete category"},
		{"app failure", &backend.APIError{StatusCode: 200, App: true, Message: "Default category"}, "Default category"},
		{"transport", errors.New("connection refused"), "Error deleting category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := d.Run(context.Background(), actions.Action{
				ID: "x", Verb: "delete",
				Do:             func(context.Context) error { return tt.err },
				Failure:        "Failed to delete category",
				NetworkFailure: "Error deleting category",
			})
			assert.False(t, out.OK)
			assert.False(t, out.Refetch)
			assert.Empty(t, out.RemoveID)
			assert.Equal(t, tt.want, out.Alert)
		})
	}
}

func TestAlert_SetsTriggerAndNoSwap(t *testing.T) {
	rec := httptest.NewRecorder()
	actions.Alert(rec, `Failed to approve "x"`)

	var ev map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &ev))
	assert.Equal(t, `Failed to approve "x"`, ev["showAlert"])
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
}

type flashRecorder struct{ msgs []string }

func (f *flashRecorder) AddFlash(_ http.ResponseWriter, _ *http.Request, msg string) {
	f.msgs = append(f.msgs, msg)
}

func TestFail_PlainPostFlashesAndRedirects(t *testing.T) {
	f := &flashRecorder{}
	rec := httptest.NewRecorder()
	actions.Fail(rec, httptest.NewRequest("POST", "/dashboard/ads/1/delete", nil), f, "Failed to delete ad", "/dashboard/ads")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/ads", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Failed to delete ad"}, f.msgs)
}

func TestRedirect_HTMX(t *testing.T) {
	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	actions.Redirect(rec, req, "/dashboard/blogs")
	assert.Equal(t, "/dashboard/blogs", rec.Header().Get("HX-Redirect"))
}

func TestRemoveRow_CounterAndEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	actions.RemoveRow(rec, "pending-count", map[string]any{actions.EventAlert: "Comment deleted successfully!"})

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &ev))
	assert.Equal(t, "Comment deleted successfully!", ev["showAlert"])
	assert.Equal(t, map[string]any{"counter": "pending-count"}, ev["rowRemoved"])
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	actions.RemoveRow(rec, "", nil)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
}
