// internal/app/features/ads/templates.go
package ads

import (
	"embed"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "ads",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
