// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Product is a catalog entry belonging to a single category.
type Product struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryID int    `json:"categoryId" db:"category_id"`
}

// ProductView is a Product with its category and the category's owner
// resolved and embedded by value. Views are built once at start-up and
// never mutated.
type ProductView struct {
	Product
	Category Category `json:"category"`
	User     User     `json:"user"`
}
