// internal/app/features/categories/templates.go
package categories

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "categories",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
