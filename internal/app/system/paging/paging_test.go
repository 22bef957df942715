package paging

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func TestWindow_ShowingText(t *testing.T) {
	tests := []struct {
		name string
		meta Meta
		want string
	}{
		{"middle page", Meta{CurrentPage: 2, TotalPages: 5, TotalResults: 47}, "Showing 11 to 20 of 47 results"},
		{"last partial page", Meta{CurrentPage: 5, TotalPages: 5, TotalResults: 47}, "Showing 41 to 47 of 47 results"},
		{"first page", Meta{CurrentPage: 1, TotalPages: 1, TotalResults: 3}, "Showing 1 to 3 of 3 results"},
		{"empty", Meta{CurrentPage: 1, TotalPages: 0, TotalResults: 0}, "Showing 0 to 0 of 0 results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.meta, 10, nil).Showing()
			if got != tt.want {
				t.Errorf("Showing() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWindow_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		wantPrev bool
		wantNext bool
	}{
		{"first", 1, false, true},
		{"middle", 2, true, true},
		{"last", 5, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rg := Window(Meta{CurrentPage: tt.current, TotalPages: 5, TotalResults: 47}, 10, nil)
			if rg.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", rg.HasPrev, tt.wantPrev)
			}
			if rg.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", rg.HasNext, tt.wantNext)
			}
		})
	}
}

func pagesString(links []PageLink) string {
	s := ""
	for i, l := range links {
		if i > 0 {
			s += " "
		}
		switch {
		case l.Gap:
			s += "…"
		case l.Current:
			s += "[" + strconv.Itoa(l.Number) + "]"
		default:
			s += strconv.Itoa(l.Number)
		}
	}
	return s
}

func TestWindow_Ellipses(t *testing.T) {
	tests := []struct {
		current int
		total   int
		want    string
	}{
		{1, 1, "[1]"},
		{1, 3, "[1] 2 3"},
		{1, 10, "[1] 2 … 10"},
		{5, 10, "1 … 4 [5] 6 … 10"},
		{3, 10, "1 2 [3] 4 … 10"},
		{10, 10, "1 … 9 [10]"},
		{4, 5, "1 … 3 [4] 5"},
	}
	for _, tt := range tests {
		rg := Window(Meta{CurrentPage: tt.current, TotalPages: tt.total, TotalResults: tt.total * 10}, 10, nil)
		if got := pagesString(rg.Pages); got != tt.want {
			t.Errorf("page %d of %d: got %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestWindow_PreservesQuery(t *testing.T) {
	base, _ := url.Parse("/dashboard/successfulpetitions?search=water&page=2&category=Environment")
	rg := Window(Meta{CurrentPage: 2, TotalPages: 3, TotalResults: 25}, 10, base)

	next, err := url.Parse(rg.NextURL)
	if err != nil {
		t.Fatalf("parse NextURL: %v", err)
	}
	if next.Path != "/dashboard/successfulpetitions" {
		t.Errorf("path: got %q", next.Path)
	}
	q := next.Query()
	if q.Get("page") != "3" || q.Get("search") != "water" || q.Get("category") != "Environment" {
		t.Errorf("query not preserved: %q", rg.NextURL)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"/x", 1},
		{"/x?page=3", 3},
		{"/x?page=0", 1},
		{"/x?page=-2", 1},
		{"/x?page=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.target, nil)
		if got := ParsePage(r); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.target, got, tt.want)
		}
	}
}
