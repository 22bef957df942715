package templates

import (
	"fmt"
	"html/template"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/htmlsanitize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayLocation is the zone dates are shown in.
var DisplayLocation = mustIST()

func mustIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

var printerTag = language.English

// Funcs returns the function map available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"compact":  CompactNumber,
		"grouped":  Grouped,
		"rupees":   Rupees,
		"date":     Date,
		"dateTime": DateTime,
		"dateISO":  DateISO,
		"timeAgo":  func(t time.Time) string { return TimeAgo(t, time.Now()) },
		"excerpt":  htmlsanitize.Excerpt,
		"richText": htmlsanitize.PrepareForDisplay,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"dict":     dict,
		"has":      func(list []string, s string) bool { return slices.Contains(list, s) },
		"join":     strings.Join,
		"initial":  initial,
		"titleCase": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"statusLabel": StatusLabel,
		"orDash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "N/A"
			}
			return s
		},
	}
}

// CompactNumber renders counts on the dashboard: 1.2M, 3.4K, or the plain
// number below a thousand.
func CompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// Grouped renders n with thousands separators.
func Grouped(n any) string {
	p := message.NewPrinter(printerTag)
	switch v := n.(type) {
	case float64:
		if v == math.Trunc(v) {
			return p.Sprintf("%d", int64(v))
		}
		return p.Sprintf("%.2f", v)
	default:
		return p.Sprintf("%d", v)
	}
}

// Rupees renders an amount with two decimals and the rupee sign.
func Rupees(v float64) string {
	return "₹" + message.NewPrinter(printerTag).Sprintf("%.2f", v)
}

// Date renders t as "Jan 2, 2006" in the display zone, or "N/A" for zero.
func Date(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(DisplayLocation).Format("Jan 2, 2006")
}

// DateTime renders t with hours and minutes.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(DisplayLocation).Format("Jan 2, 2006, 3:04 PM")
}

// DateISO renders t as YYYY-MM-DD for date inputs. A nil or zero time is "".
func DateISO(t any) string {
	var tt time.Time
	switch v := t.(type) {
	case time.Time:
		tt = v
	case *time.Time:
		if v == nil {
			return ""
		}
		tt = *v
	}
	if tt.IsZero() {
		return ""
	}
	return tt.Format("2006-01-02")
}

// TimeAgo renders the age of t relative to now: "Just now" under an
// hour, then "5h ago", "3d ago" for under a week, then the date.
func TimeAgo(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case hours < 168:
		return fmt.Sprintf("%dd ago", hours/24)
	}
	return Date(t)
}

// StatusLabel is the badge text for a review status.
func StatusLabel(s string) string {
	switch s {
	case "verification_pending":
		return "Verification Pending"
	case "":
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0]))
}

// dict builds a map from alternating keys and values so a sub-template can
// take several arguments.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
