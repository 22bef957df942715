package wallets_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gauravhaldar/sosign-admin/internal/app/features/wallets"
	"github.com/gauravhaldar/sosign-admin/internal/testutil"
	"go.uber.org/zap"
)

func walletsBody() map[string]any {
	w := func(id, name, email, mobile, code string, bal float64) map[string]any {
		return map[string]any{
			"_id": id, "balance": bal, "updatedAt": "2024-04-01T10:00:00Z",
			"transactions": []any{map[string]any{"type": "credit"}},
			"userId":       map[string]any{"_id": "u" + id, "name": name, "email": email, "mobileNumber": mobile, "uniqueCode": code},
		}
	}
	return map[string]any{
		"wallets": []any{
			w("1", "Asha", "asha@example.com", "9876500001", "SOS-AAA", 100),
			w("2", "Ravi", "ravi@example.com", "9876500002", "SOS-BBB", 300.5),
			w("3", "Meera", "meera@example.com", "9876500003", "SOS-CCC", 50),
		},
		"currentPage": 2, "totalPages": 3, "totalWallets": 25,
	}
}

func TestServeList_CardsAndRows(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/admin/wallets", http.StatusOK, walletsBody())
	h := wallets.NewHandler(fb.Client(t), 1, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/wallets?page=2"))

	rec.AssertStatus(t, http.StatusOK)
	for _, want := range []string{
		`id="wallets-count">25<`,
		`id="wallets-total">₹450.50<`,
		`id="wallets-average">₹18.02<`,
		`id="wallets-highest">₹300.50<`,
		"Top 5 Wallets",
		"Showing 11 to 20 of 25 wallets",
		">11</td>", ">13</td>",
	} {
		rec.AssertContains(t, want)
	}
	body := rec.Body.String()
	top := body[strings.Index(body, "Top 5 Wallets"):]
	if strings.Index(top, "Ravi") > strings.Index(top, "Asha") {
		t.Error("top wallets should be ordered by balance")
	}
	call, _ := fb.Last("GET", "/api/admin/wallets")
	if call.Query.Get("page") != "2" || call.Query.Get("limit") != "10" {
		t.Errorf("list query: got %v", call.Query)
	}
}

func TestServeList_RateConvertsPoints(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/admin/wallets", http.StatusOK, walletsBody())
	h := wallets.NewHandler(fb.Client(t), 0.5, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/wallets"))
	rec.AssertContains(t, `id="wallets-total">₹225.25<`)
}

func TestServeList_SearchSwapsTableOnly(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/admin/wallets", http.StatusOK, walletsBody())
	h := wallets.NewHandler(fb.Client(t), 1, zap.NewNop())

	req := testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/wallets?q=SOS-bbb&page=2"))
	req.Header.Set("HX-Target", "wallet-table")
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertContains(t, "ravi@example.com")
	rec.AssertNotContains(t, "asha@example.com")
	rec.AssertNotContains(t, "Top 5 Wallets")

	req = testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/wallets?q=nobody"))
	req.Header.Set("HX-Target", "wallet-table")
	rec = testutil.NewRecorder()
	h.ServeList(rec, req)
	rec.AssertContains(t, "No Wallets Found")
}

func TestServeList_Failure(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/admin/wallets", http.StatusBadGateway, map[string]any{})
	h := wallets.NewHandler(fb.Client(t), 1, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAdminRequest("GET", "/dashboard/wallets"))
	rec.AssertContains(t, "Failed to load wallets: Failed to fetch wallets")
	rec.AssertNotContains(t, "Total Balance")
	rec.AssertNotContains(t, "No Wallets Found")
}

func TestServeList_SearchReusesLoadedPage(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON("GET /api/admin/wallets", http.StatusOK, walletsBody())
	h := wallets.NewHandler(fb.Client(t), 1, zap.NewNop())

	h.ServeList(testutil.NewRecorder(), testutil.NewAdminRequest("GET", "/dashboard/wallets?page=2"))
	for _, q := range []string{"r", "ra", "rav", "ravi"} {
		req := testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/wallets?page=2&q="+q))
		req.Header.Set("HX-Target", "wallet-table")
		rec := testutil.NewRecorder()
		h.ServeList(rec, req)
		rec.AssertContains(t, "ravi@example.com")
	}
	if n := fb.Count("GET", "/api/admin/wallets"); n != 1 {
		t.Errorf("wallets fetched %d times, want 1", n)
	}

	// Another page is a backend call.
	req := testutil.HTMX(testutil.NewAdminRequest("GET", "/dashboard/wallets?page=3"))
	req.Header.Set("HX-Target", "wallets-body")
	h.ServeList(testutil.NewRecorder(), req)
	if n := fb.Count("GET", "/api/admin/wallets"); n != 2 {
		t.Errorf("wallets fetched %d times after paging, want 2", n)
	}
}
