// Package models defines the catalog relations (users, categories, products)
// and the enriched product view rendered by the browser.
package models

// Sex is the owner's sex as recorded in the fixture data. It only affects
// how the owner's name is colored in the product table.
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// User owns zero or more categories.
type User struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Sex  Sex    `json:"sex" db:"sex"`
}

// IsMale returns true for the male code.
func (s Sex) IsMale() bool {
	return s == SexMale
}

// IsFemale returns true for the female code.
func (s Sex) IsFemale() bool {
	return s == SexFemale
}
