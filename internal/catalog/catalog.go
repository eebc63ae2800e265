// Package catalog joins the static user, category, and product relations
// into product views. The join runs once at start-up; any dangling
// reference aborts initialization.
package catalog

import (
	"errors"
	"fmt"

	"catalogview/internal/models"
)

// ErrReferentialIntegrity is matched by every ReferentialIntegrityError.
var ErrReferentialIntegrity = errors.New("referential integrity violation")

// IntegrityKind names which reference failed to resolve.
type IntegrityKind string

const (
	MissingCategory IntegrityKind = "missing_category"
	MissingOwner    IntegrityKind = "missing_owner"
	DuplicateID     IntegrityKind = "duplicate_id"
)

// ReferentialIntegrityError reports fixture data that cannot be joined.
// Only the ids relevant to Kind are set.
type ReferentialIntegrityError struct {
	Kind       IntegrityKind
	Relation   string // "users", "categories", "products"
	ProductID  int
	CategoryID int
	UserID     int
}

func (e *ReferentialIntegrityError) Error() string {
	switch e.Kind {
	case MissingCategory:
		return fmt.Sprintf("product %d references unknown category %d", e.ProductID, e.CategoryID)
	case MissingOwner:
		return fmt.Sprintf("category %d (product %d) references unknown owner %d", e.CategoryID, e.ProductID, e.UserID)
	case DuplicateID:
		return fmt.Sprintf("duplicate id %d in %s", e.duplicateID(), e.Relation)
	}
	return "referential integrity violation"
}

// duplicateID picks the id field that belongs to Relation.
func (e *ReferentialIntegrityError) duplicateID() int {
	switch e.Relation {
	case "users":
		return e.UserID
	case "categories":
		return e.CategoryID
	}
	return e.ProductID
}

// Is lets errors.Is match ErrReferentialIntegrity.
func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// BuildProductViews resolves each product's category and that category's
// owner. The result has the same length and order as products.
func BuildProductViews(users []models.User, categories []models.Category, products []models.Product) ([]models.ProductView, error) {
	userByID := make(map[int]models.User, len(users))
	for _, u := range users {
		if _, dup := userByID[u.ID]; dup {
			return nil, &ReferentialIntegrityError{Kind: DuplicateID, Relation: "users", UserID: u.ID}
		}
		userByID[u.ID] = u
	}

	categoryByID := make(map[int]models.Category, len(categories))
	for _, c := range categories {
		if _, dup := categoryByID[c.ID]; dup {
			return nil, &ReferentialIntegrityError{Kind: DuplicateID, Relation: "categories", CategoryID: c.ID}
		}
		categoryByID[c.ID] = c
	}

	seen := make(map[int]struct{}, len(products))
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, &ReferentialIntegrityError{Kind: DuplicateID, Relation: "products", ProductID: p.ID}
		}
		seen[p.ID] = struct{}{}

		category, ok := categoryByID[p.CategoryID]
		if !ok {
			return nil, &ReferentialIntegrityError{
				Kind:       MissingCategory,
				ProductID:  p.ID,
				CategoryID: p.CategoryID,
			}
		}

		owner, ok := userByID[category.OwnerID]
		if !ok {
			return nil, &ReferentialIntegrityError{
				Kind:       MissingOwner,
				ProductID:  p.ID,
				CategoryID: category.ID,
				UserID:     category.OwnerID,
			}
		}

		views = append(views, models.ProductView{
			Product:  p,
			Category: category,
			User:     owner,
		})
	}

	return views, nil
}

// Relations is one snapshot of the three source relations as read from a
// fixture source.
type Relations struct {
	Users      []models.User
	Categories []models.Category
	Products   []models.Product
}

// FromRelations is New over a Relations snapshot.
func FromRelations(r *Relations) (*Catalog, error) {
	return New(r.Users, r.Categories, r.Products)
}

// Catalog holds the source relations and their joined views. It is built
// once and shared read-only by every browser session.
type Catalog struct {
	users      []models.User
	categories []models.Category
	views      []models.ProductView
}

// New joins the relations and returns a Catalog, or the
// ReferentialIntegrityError that prevented the join.
func New(users []models.User, categories []models.Category, products []models.Product) (*Catalog, error) {
	views, err := BuildProductViews(users, categories, products)
	if err != nil {
		return nil, fmt.Errorf("build product views: %w", err)
	}
	return &Catalog{
		users:      users,
		categories: categories,
		views:      views,
	}, nil
}

// Views returns the full product view relation. Callers must not modify it.
func (c *Catalog) Views() []models.ProductView {
	return c.views
}

// Users returns the user relation in source order.
func (c *Catalog) Users() []models.User {
	return c.users
}

// Categories returns the category relation in source order.
func (c *Catalog) Categories() []models.Category {
	return c.categories
}
