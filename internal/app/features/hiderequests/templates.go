// internal/app/features/hiderequests/templates.go
package hiderequests

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "hiderequests",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
