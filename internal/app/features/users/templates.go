// internal/app/features/users/templates.go
package users

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "users",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
