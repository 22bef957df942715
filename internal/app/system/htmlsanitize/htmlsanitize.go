// Package htmlsanitize cleans backend-supplied rich text (blog bodies,
// petition descriptions, comments) before it reaches a template.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = newUGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "code", "pre")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips scripts, event handlers and unsafe URLs, keeping the
// formatting a blog editor produces.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for direct template output.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s)) // #nosec G203 -- sanitized above
}

// IsPlainText reports whether s has no markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and turns newlines into <br>, wrapped in <p>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	esc := html.EscapeString(s)
	esc = strings.ReplaceAll(esc, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(esc, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders plain text or HTML safely. Comments and
// petition bodies arrive as either.
func PrepareForDisplay(s string) template.HTML {
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s)) // #nosec G203 -- escaped
	}
	return SanitizeToHTML(s)
}

// Excerpt strips all markup and cuts the text to at most n runes, adding
// "..." when something was cut.
func Excerpt(s string, n int) string {
	text := html.UnescapeString(strict.Sanitize(s))
	text = strings.Join(strings.Fields(text), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return strings.TrimRight(string(r[:n]), " ") + "..."
}
