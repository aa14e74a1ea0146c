package view

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// PageTemplate is the name the full page is rendered under.
	PageTemplate = "page.html"
	// resultsTemplate is the results area on its own.
	resultsTemplate = "results"
)

var funcs = template.FuncMap{
	"emptyMessage":    func() string { return EmptyMessage },
	"headingCaution":  func() string { return HeadingCaution },
	"headingLocation": func() string { return HeadingLocation },
	"headingChecks":   func() string { return HeadingChecks },
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
