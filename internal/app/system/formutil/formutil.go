// Package formutil provides helpers for form pages and modals that may be
// re-rendered with an error.
//
// When a submission fails, the form is shown again with:
// - The admin's previously entered values (echoed back)
// - The backend's message, or a generic fallback
// - Everything else the form needs (category and position options)
//
// Base can be embedded in form data structs to carry the common fields.
//
// Example usage:
//
//	type blogForm struct {
//		formutil.Base
//		Title string
//		Tags  string
//	}
//
//	data := blogForm{Title: r.FormValue("title")}
//	formutil.SetBase(&data.Base, r, "Edit Blog")
//	data.SetError(backend.MessageOr(err, "Failed to update blog"))
//	templates.Render(w, r, "blog_form", data)
package formutil

import (
	"net/http"
	"strings"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/viewdata"
)

// Base contains the common fields of a form page.
type Base struct {
	viewdata.BaseVM
	Error string
}

// SetBase populates the embedded BaseVM from the request.
func SetBase(b *Base, r *http.Request, title string) {
	b.BaseVM = viewdata.NewBaseVM(r, title)
}

// SetError sets the message shown above the form.
func (b *Base) SetError(msg string) {
	b.Error = msg
}

// Value returns the trimmed form value for name.
func Value(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// Checked reports whether a checkbox named name was submitted checked.
func Checked(r *http.Request, name string) bool {
	v := r.FormValue(name)
	return v != "" && v != "false"
}

// JoinList renders a list as the comma-separated text the tag inputs use.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// SplitList splits comma-separated input, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
