// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers maps HTTP requests onto catalog browser events. Each
// filter event is applied to the visitor's stored criteria in one atomic
// session update, then the catalog is rendered.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"catalogview/internal/browser"
	"catalogview/internal/catalog"
	"catalogview/internal/filter"
	"catalogview/internal/middleware"
	"catalogview/internal/render"
	"catalogview/internal/session"
)

// pageTitle is the heading of the catalog page.
const pageTitle = "Product Categories"

// Catalog groups the handlers of the product catalog view.
type Catalog struct {
	renderer *render.Renderer
	sessions *session.Store
	catalog  *catalog.Catalog
}

// NewCatalog creates a new Catalog handler group.
func NewCatalog(renderer *render.Renderer, sessions *session.Store, cat *catalog.Catalog) *Catalog {
	return &Catalog{
		renderer: renderer,
		sessions: sessions,
		catalog:  cat,
	}
}

// productsResponse is the body of GET /api/products.
type productsResponse struct {
	Products []browser.Row   `json:"products"`
	Empty    bool            `json:"empty"`
	Criteria filter.Criteria `json:"criteria"`
}

// Index renders the catalog with the visitor's current filters.
func (c *Catalog) Index(w http.ResponseWriter, r *http.Request) {
	s := c.restore(r)
	c.renderer.Page(w, r, "index", &render.PageData{Title: pageTitle, Session: s})
}

// SelectAllOwners clears the owner filter.
func (c *Catalog) SelectAllOwners(w http.ResponseWriter, r *http.Request) {
	c.apply(w, r, func(s *browser.Session) { s.OnSelectAllOwners() })
}

// SelectOwner restricts the table to products owned by {userID}. Ids that
// match no user are accepted and simply match nothing.
func (c *Catalog) SelectOwner(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	c.apply(w, r, func(s *browser.Session) { s.OnSelectOwner(userID) })
}

// Search stores the search field's text (form field "q").
func (c *Catalog) Search(w http.ResponseWriter, r *http.Request) {
	query := r.FormValue("q")
	c.apply(w, r, func(s *browser.Session) { s.OnSearchTextChanged(query) })
}

// ClearSearch empties the search field.
func (c *Catalog) ClearSearch(w http.ResponseWriter, r *http.Request) {
	c.apply(w, r, func(s *browser.Session) { s.OnClearSearch() })
}

// ResetAll returns every filter to its initial state and drops the
// visitor's session. If the session cannot be deleted, the initial
// criteria are saved over it so the old filters do not come back.
func (c *Catalog) ResetAll(w http.ResponseWriter, r *http.Request) {
	s := browser.New(c.catalog)
	s.OnResetAll()

	ctx := r.Context()
	if err := c.sessions.Destroy(ctx, w, r); err != nil {
		slog.Warn("session destroy failed, saving initial filters",
			"error", err,
			"request_id", middleware.RequestIDFromCtx(ctx),
		)
		if _, err := c.sessions.Save(ctx, w, r, &session.Data{Criteria: s.Criteria()}); err != nil {
			slog.Error("session reset failed",
				"error", err,
				"request_id", middleware.RequestIDFromCtx(ctx),
			)
		}
	}

	c.respond(w, r, s)
}

// APIProducts returns the visible rows, the empty-state flag and the
// active criteria as JSON.
func (c *Catalog) APIProducts(w http.ResponseWriter, r *http.Request) {
	s := c.restore(r)

	rows := s.Rows()
	if rows == nil {
		rows = []browser.Row{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(productsResponse{
		Products: rows,
		Empty:    s.IsEmpty(),
		Criteria: s.Criteria(),
	}); err != nil {
		slog.Error("encode products failed", "error", err)
	}
}

// restore rebuilds the visitor's browser session from the loaded session
// data, or starts from the initial criteria when there is none.
func (c *Catalog) restore(r *http.Request) *browser.Session {
	data := middleware.SessionFromCtx(r.Context())
	if data == nil {
		return browser.New(c.catalog)
	}
	return browser.Restore(c.catalog, data.Criteria)
}

// apply runs one browser event against the stored criteria and persists
// the result atomically, so events for the same session are applied in
// the order they reach Valkey and none overwrites another. If the session
// store is unavailable, the event is applied to the criteria loaded with
// the request and the visitor still sees the result.
func (c *Catalog) apply(w http.ResponseWriter, r *http.Request, event func(*browser.Session)) {
	var s *browser.Session
	_, err := c.sessions.Update(r.Context(), w, r, func(data *session.Data) {
		s = browser.Restore(c.catalog, data.Criteria)
		event(s)
		data.Criteria = s.Criteria()
	})
	if err != nil {
		slog.Error("session update failed",
			"error", err,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
		)
		s = c.restore(r)
		event(s)
	}

	c.respond(w, r, s)
}

// respond renders the catalog fragment for HTMX requests and redirects
// plain form posts back to the page (post/redirect/get).
func (c *Catalog) respond(w http.ResponseWriter, r *http.Request, s *browser.Session) {
	if render.IsHTMX(r) {
		c.renderer.Page(w, r, "index", &render.PageData{Title: pageTitle, Session: s})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
