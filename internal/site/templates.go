package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

//go:embed templates
var assets embed.FS

var funcs = template.FuncMap{
	// uuid returns a fresh identifier, used for collapsible element ids.
	"uuid":      func() string { return uuid.NewString() },
	"urlencode": urlencode,
}

// urlencode query-escapes s, encoding spaces as "+" and keeping "/" intact.
func urlencode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2F", "/")
}

// parseTemplates parses every page together with the base layout. Pages are
// keyed by file name without extension.
func parseTemplates() (map[string]*template.Template, error) {
	layout, err := fs.ReadFile(assets, "templates/layouts/base.html")
	if err != nil {
		return nil, err
	}

	pages, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/pages/"), ".html")

		content, err := fs.ReadFile(assets, page)
		if err != nil {
			return nil, err
		}

		tmpl := template.New(name).Funcs(funcs)
		if _, err := tmpl.Parse(string(layout)); err != nil {
			return nil, fmt.Errorf("parse layout for %s: %w", name, err)
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}
