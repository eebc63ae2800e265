package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"catalogview/internal/models"
)

// Predicate decides whether a product view is visible.
type Predicate func(models.ProductView) bool

// OwnerIs matches views whose resolved owner has the given id.
func OwnerIs(userID int) Predicate {
	return func(v models.ProductView) bool {
		return v.User.ID == userID
	}
}

// NameContains matches views whose name contains query, ignoring case.
// The query is expected to be trimmed already.
func NameContains(query string) Predicate {
	needle := fold(query)
	return func(v models.ProductView) bool {
		return strings.Contains(fold(v.Name), needle)
	}
}

// fold applies Unicode case folding. A Caser is stateful, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Predicates returns the predicates currently switched on by c. The owner
// predicate is active when an owner is selected; the text predicate is
// active when the trimmed query is non-empty.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.SelectedUserID != nil {
		preds = append(preds, OwnerIs(*c.SelectedUserID))
	}
	if q := strings.TrimSpace(c.SearchQuery); q != "" {
		preds = append(preds, NameContains(q))
	}
	return preds
}

// VisibleProducts returns the views from all that satisfy every active
// predicate in c, in their original order. When nothing is active, all is
// returned as is. Callers always pass the full relation, never a previously
// filtered subset.
func VisibleProducts(all []models.ProductView, c Criteria) []models.ProductView {
	preds := c.Predicates()
	if len(preds) == 0 {
		return all
	}

	visible := make([]models.ProductView, 0, len(all))
	for _, v := range all {
		if matchesAll(v, preds) {
			visible = append(visible, v)
		}
	}
	return visible
}

func matchesAll(v models.ProductView, preds []Predicate) bool {
	for _, p := range preds {
		if !p(v) {
			return false
		}
	}
	return true
}
