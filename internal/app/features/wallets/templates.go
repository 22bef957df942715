// internal/app/features/wallets/templates.go
package wallets

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "wallets",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
