// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the catalog page.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"catalogview/internal/browser"
	"catalogview/internal/middleware"
	"catalogview/internal/models"
)

//go:embed templates/catalog/*.html
var catalogFS embed.FS

// PageData holds all data passed to catalog templates.
type PageData struct {
	Title     string           // Page title for <title> and the heading
	CSRFToken string           // CSRF token for forms and HTMX headers
	Session   *browser.Session // Filter state and visible products
}

// Renderer handles template parsing and execution for catalog pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all catalog templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// userClass colors the owner's name by sex.
			"userClass": func(sex models.Sex) string {
				switch {
				case sex.IsMale():
					return "has-text-link"
				case sex.IsFemale():
					return "has-text-danger"
				}
				return ""
			},
			// ownerAction is the form target for an owner filter tab.
			"ownerAction": func(tab browser.OwnerTab) string {
				if tab.All {
					return "/owners/all"
				}
				return "/owners/" + strconv.Itoa(tab.UserID)
			},
		},
	}

	pages, err := fs.Glob(catalogFS, "templates/catalog/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			catalogFS, "templates/catalog/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full catalog page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// Output is buffered so a template error never leaves a half-written page.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	execName := "base.html"
	if IsHTMX(r) {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
