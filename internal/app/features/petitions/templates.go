// internal/app/features/petitions/templates.go
package petitions

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "petitions",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
