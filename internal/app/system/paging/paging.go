// internal/app/system/paging/paging.go
package paging

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the default number of rows requested from paged backend lists.
const PageSize = 10

// CommentsPageSize is the page size used by the per-petition comment list.
const CommentsPageSize = 50

// Meta is the page metadata returned by the backend for one list call.
type Meta struct {
	CurrentPage  int
	TotalPages   int
	TotalResults int
}

// ParsePage reads a 1-based "page" query parameter, defaulting to 1.
func ParsePage(r *http.Request) int {
	return ParsePositive(r.URL.Query().Get("page"), 1)
}

// ParsePositive parses s as a positive int, returning def otherwise.
func ParsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// PageLink is one entry in the numbered page control. Gap entries render
// as an ellipsis and carry no page number.
type PageLink struct {
	Number  int
	Current bool
	Gap     bool
	URL     string
}

// Range is everything the pagination control needs to render.
type Range struct {
	From    int // 1-based index of the first row shown (0 when empty)
	To      int // 1-based index of the last row shown
	Total   int
	Current int
	Last    int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
	Pages   []PageLink
}

// Showing renders the "Showing X to Y of Z results" line.
func (r Range) Showing() string {
	return fmt.Sprintf("Showing %d to %d of %d results", r.From, r.To, r.Total)
}

// Visible reports whether a control is worth rendering.
func (r Range) Visible() bool {
	return r.Last > 1
}

// Window computes the display range for meta at pageSize. Numbered links
// cover the first page, the last page and the current page ±1; runs of
// omitted pages collapse to a single gap. base is the list URL whose query
// is preserved; only "page" is replaced.
func Window(meta Meta, pageSize int, base *url.URL) Range {
	if pageSize < 1 {
		pageSize = PageSize
	}
	cur := meta.CurrentPage
	if cur < 1 {
		cur = 1
	}
	last := meta.TotalPages
	if last < 1 {
		last = 1
	}

	rg := Range{
		Total:   meta.TotalResults,
		Current: cur,
		Last:    last,
		HasPrev: cur > 1,
		HasNext: cur < last,
	}
	if meta.TotalResults > 0 {
		rg.From = (cur-1)*pageSize + 1
		rg.To = min(cur*pageSize, meta.TotalResults)
	}
	if rg.HasPrev {
		rg.PrevURL = pageURL(base, cur-1)
	}
	if rg.HasNext {
		rg.NextURL = pageURL(base, cur+1)
	}

	prevShown := 0
	for p := 1; p <= last; p++ {
		if p != 1 && p != last && (p < cur-1 || p > cur+1) {
			continue
		}
		if prevShown != 0 && p-prevShown > 1 {
			rg.Pages = append(rg.Pages, PageLink{Gap: true})
		}
		rg.Pages = append(rg.Pages, PageLink{Number: p, Current: p == cur, URL: pageURL(base, p)})
		prevShown = p
	}
	return rg
}

func pageURL(base *url.URL, page int) string {
	if base == nil {
		return "?page=" + strconv.Itoa(page)
	}
	q := base.Query()
	q.Set("page", strconv.Itoa(page))
	return base.Path + "?" + q.Encode()
}
