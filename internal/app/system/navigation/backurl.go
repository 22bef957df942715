// Package navigation keeps list views stable across htmx actions: the
// query the admin is looking at, and the URL a plain form post returns to.
package navigation

import (
	"net/http"
	"net/url"
	"strings"
)

// CurrentURLHeader is sent by htmx with the browser's current location.
const CurrentURLHeader = "HX-Current-URL"

// CurrentQuery returns the query of the page the admin is looking at.
//
// htmx actions posted from a list carry the list's URL in HX-Current-URL,
// so a refetch can keep the admin's filter, tab, sort and page. Requests
// without the header (plain form posts, direct GETs) use their own query.
func CurrentQuery(r *http.Request) url.Values {
	if cur := r.Header.Get(CurrentURLHeader); cur != "" {
		if u, err := url.Parse(cur); err == nil {
			return u.Query()
		}
	}
	return r.URL.Query()
}

// BackURL builds path?query, dropping blank values so an "all" filter
// returns to the bare list.
func BackURL(path string, q url.Values) string {
	clean := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	if len(clean) == 0 {
		return path
	}
	return path + "?" + clean.Encode()
}

// SafeReturn validates a "return" form or query value: it must be a local
// path under prefix. Anything else, including protocol-relative and
// backslash tricks, yields fallback.
func SafeReturn(r *http.Request, prefix, fallback string) string {
	ret := strings.TrimSpace(r.URL.Query().Get("return"))
	if ret == "" {
		ret = strings.TrimSpace(r.PostFormValue("return"))
	}
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.Contains(ret, `\`) {
		return fallback
	}
	u, err := url.Parse(ret)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	if prefix != "" && u.Path != prefix && !strings.HasPrefix(u.Path, strings.TrimSuffix(prefix, "/")+"/") {
		return fallback
	}
	return ret
}
