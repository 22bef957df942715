// Package templates holds the html/template sets registered by features
// and renders pages and htmx fragments from them.
//
// Each feature embeds its own *.gohtml files and registers them from an
// init function:
//
//	//go:embed templates/*.gohtml
//	var FS embed.FS
//
//	func init() {
//		templates.Register(templates.Set{Name: "blogs", FS: FS, Patterns: []string{"templates/*.gohtml"}})
//	}
//
// All sets share one namespace together with the layout defined here, so
// template names must be unique across features. A page template wraps
// itself in {{template "layout_top" .}} … {{template "layout_bottom" .}}.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"sync"

	"go.uber.org/zap"
)

//go:embed layout/*.gohtml
var layoutFS embed.FS

// Set is one feature's templates.
type Set struct {
	Name     string
	FS       fs.FS
	Patterns []string
}

var (
	mu     sync.RWMutex
	sets   = map[string]Set{}
	parsed *template.Template
	log    = zap.NewNop()
)

// Register adds a set. Registering after the first render forces a
// re-parse on the next one.
func Register(s Set) {
	mu.Lock()
	defer mu.Unlock()
	sets[s.Name] = s
	parsed = nil
}

// SetLogger sets the logger used for render failures.
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	log = l
	mu.Unlock()
}

// Boot parses every registered set. Calling it at startup surfaces
// template errors before the first request.
func Boot() error {
	_, err := load()
	return err
}

func load() (*template.Template, error) {
	mu.RLock()
	t := parsed
	mu.RUnlock()
	if t != nil {
		return t, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if parsed != nil {
		return parsed, nil
	}

	root, err := template.New("root").Funcs(Funcs()).ParseFS(layoutFS, "layout/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	names := make([]string, 0, len(sets))
	for n := range sets {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		s := sets[n]
		if _, err := root.ParseFS(s.FS, s.Patterns...); err != nil {
			return nil, fmt.Errorf("parse template set %q: %w", n, err)
		}
	}
	parsed = root
	return root, nil
}

// Render writes the named page with a 200 status.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderFragment writes a named partial (a table body, a modal) for an
// htmx swap. It is Render under another name so call sites read clearly.
func RenderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus writes the named template with status. The output is
// buffered so a failing template never leaves half a page behind.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := load()
	if err != nil {
		fail(w, r, name, err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		fail(w, r, name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	mu.RLock()
	l := log
	mu.RUnlock()
	l.Error("template render failed",
		zap.String("template", name),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
