// Package browser exposes the interactive surface of the catalog view: the
// events a presentation layer can raise and the state it renders. A Session
// owns its filter criteria and recomputes the visible products after every
// event, always from the full product view relation.
package browser

import (
	"catalogview/internal/catalog"
	"catalogview/internal/filter"
	"catalogview/internal/models"
)

// Row is one line of the product table.
type Row struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"` // "icon - title"
	User     string     `json:"user"`
	UserSex  models.Sex `json:"user_sex"`
}

// OwnerTab is one entry in the owner filter bar. The first tab is always
// "All" with a zero UserID.
type OwnerTab struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	All    bool   `json:"all"`
	Active bool   `json:"active"`
}

// Session is the state of one user's browsing session. It is not safe for
// concurrent use; events are applied in the order they are raised.
type Session struct {
	catalog  *catalog.Catalog
	criteria filter.Criteria
	visible  []models.ProductView
}

// New starts a session over cat with the initial criteria.
func New(cat *catalog.Catalog) *Session {
	s := &Session{catalog: cat}
	s.recompute()
	return s
}

// Restore starts a session over cat with previously saved criteria.
func Restore(cat *catalog.Catalog, c filter.Criteria) *Session {
	s := &Session{catalog: cat, criteria: c.Clone()}
	s.recompute()
	return s
}

// OnSelectAllOwners clears the owner filter.
func (s *Session) OnSelectAllOwners() {
	s.criteria.ClearOwnerFilter()
	s.recompute()
}

// OnSelectOwner shows only products whose category is owned by userID.
func (s *Session) OnSelectOwner(userID int) {
	s.criteria.SelectOwner(userID)
	s.recompute()
}

// OnSearchTextChanged replaces the search query with text.
func (s *Session) OnSearchTextChanged(text string) {
	s.criteria.SetSearchQuery(text)
	s.recompute()
}

// OnClearSearch empties the search query.
func (s *Session) OnClearSearch() {
	s.criteria.ClearSearchQuery()
	s.recompute()
}

// OnResetAll clears both filters.
func (s *Session) OnResetAll() {
	s.criteria.ResetAll()
	s.recompute()
}

func (s *Session) recompute() {
	s.visible = filter.VisibleProducts(s.catalog.Views(), s.criteria)
}

// VisibleProducts returns the product views matching the current criteria.
func (s *Session) VisibleProducts() []models.ProductView {
	return s.visible
}

// IsEmpty reports whether no product matches, in which case the view shows
// a "no matches" message instead of the table.
func (s *Session) IsEmpty() bool {
	return len(s.visible) == 0
}

// Criteria returns a copy of the current criteria, suitable for persisting.
func (s *Session) Criteria() filter.Criteria {
	return s.criteria.Clone()
}

// SearchQuery returns the query exactly as it was typed.
func (s *Session) SearchQuery() string {
	return s.criteria.SearchQuery
}

// ShowClearSearch reports whether the clear button should be offered.
func (s *Session) ShowClearSearch() bool {
	return s.criteria.SearchQuery != ""
}

// Rows returns the visible products formatted for the product table.
func (s *Session) Rows() []Row {
	rows := make([]Row, 0, len(s.visible))
	for _, v := range s.visible {
		rows = append(rows, Row{
			ID:       v.ID,
			Name:     v.Name,
			Category: v.Category.Label(),
			User:     v.User.Name,
			UserSex:  v.User.Sex,
		})
	}
	return rows
}

// OwnerTabs returns the "All" tab followed by one tab per user in source
// order. Exactly one tab is active unless the selected owner is unknown.
func (s *Session) OwnerTabs() []OwnerTab {
	users := s.catalog.Users()
	tabs := make([]OwnerTab, 0, len(users)+1)
	tabs = append(tabs, OwnerTab{
		Name:   "All",
		All:    true,
		Active: s.criteria.SelectedUserID == nil,
	})
	for _, u := range users {
		tabs = append(tabs, OwnerTab{
			UserID: u.ID,
			Name:   u.Name,
			Active: s.criteria.OwnerSelected(u.ID),
		})
	}
	return tabs
}
