// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain of the
// catalog view.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogview/internal/handlers"
	"catalogview/internal/middleware"
	"catalogview/internal/session"
)

// New creates and returns the configured Chi router. secureCookies marks
// the CSRF cookie as HTTPS-only.
func New(sessionStore *session.Store, catalog *handlers.Catalog, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check: no session, no CSRF.
	r.Get("/health", healthHandler)

	// Read-only JSON view of the visitor's filtered products.
	r.With(middleware.LoadSession(sessionStore)).Get("/api/products", catalog.APIProducts)

	// Catalog page and filter events.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.NewCSRF(secureCookies))

		r.Get("/", catalog.Index)

		r.Route("/owners", func(r chi.Router) {
			r.Post("/all", catalog.SelectAllOwners)
			r.Post("/{userID}", catalog.SelectOwner)
		})

		r.Post("/search", catalog.Search)
		r.Post("/search/clear", catalog.ClearSearch)
		r.Post("/reset", catalog.ResetAll)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
