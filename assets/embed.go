package assets

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html.tmpl
var FS embed.FS

// Templates parses every embedded page template. Called once at startup.
func Templates() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.html.tmpl")
}
