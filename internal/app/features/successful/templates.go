// internal/app/features/successful/templates.go
package successful

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "successful",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
