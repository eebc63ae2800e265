package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogview/internal/models"
)

func sampleRelations() ([]models.User, []models.Category, []models.Product) {
	users := []models.User{
		{ID: 1, Name: "Roma", Sex: models.SexMale},
		{ID: 2, Name: "Anna", Sex: models.SexFemale},
	}
	categories := []models.Category{
		{ID: 10, Title: "Grocery", Icon: "🍞", OwnerID: 2},
		{ID: 20, Title: "Drinks", Icon: "🍺", OwnerID: 1},
	}
	products := []models.Product{
		{ID: 3, Name: "Milk", CategoryID: 20},
		{ID: 1, Name: "Bread", CategoryID: 10},
		{ID: 2, Name: "Beer", CategoryID: 20},
	}
	return users, categories, products
}

func TestBuildProductViews(t *testing.T) {
	users, categories, products := sampleRelations()

	views, err := BuildProductViews(users, categories, products)
	require.NoError(t, err)
	require.Len(t, views, len(products))

	for i, p := range products {
		v := views[i]
		assert.Equal(t, p, v.Product, "order and product fields preserved at %d", i)
		assert.Equal(t, p.CategoryID, v.Category.ID)
		assert.Equal(t, v.Category.OwnerID, v.User.ID)
	}

	assert.Equal(t, "Anna", views[1].User.Name)
	assert.Equal(t, "🍺 - Drinks", views[0].Category.Label())
}

func TestBuildProductViewsEmpty(t *testing.T) {
	views, err := BuildProductViews(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestBuildProductViewsIntegrityErrors(t *testing.T) {
	tests := []struct {
		name       string
		users      []models.User
		categories []models.Category
		products   []models.Product
		want       ReferentialIntegrityError
	}{
		{
			name:       "unknown category",
			users:      []models.User{{ID: 1}},
			categories: []models.Category{{ID: 10, OwnerID: 1}},
			products:   []models.Product{{ID: 100, CategoryID: 99}},
			want:       ReferentialIntegrityError{Kind: MissingCategory, ProductID: 100, CategoryID: 99},
		},
		{
			name:       "unknown owner",
			users:      []models.User{{ID: 1}},
			categories: []models.Category{{ID: 10, OwnerID: 7}},
			products:   []models.Product{{ID: 100, CategoryID: 10}},
			want:       ReferentialIntegrityError{Kind: MissingOwner, ProductID: 100, CategoryID: 10, UserID: 7},
		},
		{
			name:       "duplicate user id",
			users:      []models.User{{ID: 1}, {ID: 1}},
			categories: nil,
			products:   nil,
			want:       ReferentialIntegrityError{Kind: DuplicateID, Relation: "users", UserID: 1},
		},
		{
			name:       "duplicate category id",
			users:      []models.User{{ID: 1}},
			categories: []models.Category{{ID: 10, OwnerID: 1}, {ID: 10, OwnerID: 1}},
			want:       ReferentialIntegrityError{Kind: DuplicateID, Relation: "categories", CategoryID: 10},
		},
		{
			name:       "duplicate product id",
			users:      []models.User{{ID: 1}},
			categories: []models.Category{{ID: 10, OwnerID: 1}},
			products:   []models.Product{{ID: 5, CategoryID: 10}, {ID: 5, CategoryID: 10}},
			want:       ReferentialIntegrityError{Kind: DuplicateID, Relation: "products", ProductID: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := BuildProductViews(tt.users, tt.categories, tt.products)
			require.Error(t, err)
			assert.Nil(t, views)

			var rie *ReferentialIntegrityError
			require.True(t, errors.As(err, &rie))
			assert.Equal(t, tt.want, *rie)
			assert.ErrorIs(t, err, ErrReferentialIntegrity)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestReferentialIntegrityErrorMessage(t *testing.T) {
	err := &ReferentialIntegrityError{Kind: MissingOwner, ProductID: 100, CategoryID: 10, UserID: 7}
	assert.Equal(t, "category 10 (product 100) references unknown owner 7", err.Error())

	err = &ReferentialIntegrityError{Kind: MissingCategory, ProductID: 100, CategoryID: 99}
	assert.Equal(t, "product 100 references unknown category 99", err.Error())

	err = &ReferentialIntegrityError{Kind: DuplicateID, Relation: "users", UserID: 3}
	assert.Equal(t, "duplicate id 3 in users", err.Error())

	err = &ReferentialIntegrityError{Kind: DuplicateID, Relation: "categories", CategoryID: 10}
	assert.Equal(t, "duplicate id 10 in categories", err.Error())

	err = &ReferentialIntegrityError{Kind: DuplicateID, Relation: "products", ProductID: 5}
	assert.Equal(t, "duplicate id 5 in products", err.Error())
}

func TestNew(t *testing.T) {
	users, categories, products := sampleRelations()

	c, err := New(users, categories, products)
	require.NoError(t, err)
	assert.Len(t, c.Views(), 3)
	assert.Equal(t, users, c.Users())
	assert.Equal(t, categories, c.Categories())
}

func TestNewWrapsIntegrityError(t *testing.T) {
	users, categories, _ := sampleRelations()

	_, err := New(users, categories, []models.Product{{ID: 1, CategoryID: 404}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.Contains(t, err.Error(), "build product views")
}

func TestFromRelations(t *testing.T) {
	users, categories, products := sampleRelations()

	c, err := FromRelations(&Relations{Users: users, Categories: categories, Products: products})
	require.NoError(t, err)
	assert.Len(t, c.Views(), len(products))
}
