// internal/app/features/walletrequests/templates.go
package walletrequests

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "walletrequests",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
