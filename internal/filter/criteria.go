// Package filter holds the owner/search criteria of a browsing session and
// derives the visible product views from them.
package filter

// Criteria is the mutable filter state of one session. The zero value is the
// initial state: no owner selected and an empty search query.
type Criteria struct {
	SelectedUserID *int   `json:"selected_user_id"`
	SearchQuery    string `json:"search_query"`
}

// SelectOwner restricts the view to products owned by the given user.
// The search query is left unchanged.
func (c *Criteria) SelectOwner(id int) {
	c.SelectedUserID = &id
}

// ClearOwnerFilter removes the owner restriction.
func (c *Criteria) ClearOwnerFilter() {
	c.SelectedUserID = nil
}

// SetSearchQuery stores text verbatim. Trimming happens at evaluation time.
func (c *Criteria) SetSearchQuery(text string) {
	c.SearchQuery = text
}

// ClearSearchQuery empties the search query.
func (c *Criteria) ClearSearchQuery() {
	c.SearchQuery = ""
}

// ResetAll restores the initial state.
func (c *Criteria) ResetAll() {
	*c = Criteria{}
}

// OwnerSelected reports whether the owner filter is on for id.
func (c Criteria) OwnerSelected(id int) bool {
	return c.SelectedUserID != nil && *c.SelectedUserID == id
}

// Clone returns a copy that shares no memory with c.
func (c Criteria) Clone() Criteria {
	out := Criteria{SearchQuery: c.SearchQuery}
	if c.SelectedUserID != nil {
		id := *c.SelectedUserID
		out.SelectedUserID = &id
	}
	return out
}
