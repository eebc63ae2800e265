// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Category groups products and is owned by exactly one user.
type Category struct {
	ID      int    `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Icon    string `json:"icon" db:"icon"`
	OwnerID int    `json:"ownerId" db:"owner_id"`
}

// Label returns the category as shown in the product table: "icon - title".
func (c *Category) Label() string {
	return fmt.Sprintf("%s - %s", c.Icon, c.Title)
}
