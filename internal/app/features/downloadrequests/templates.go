// internal/app/features/downloadrequests/templates.go
package downloadrequests

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "downloadrequests",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
