// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"catalogview/internal/models"
)

// CategoryStore reads categories from the database.
type CategoryStore struct {
	q sqlx.QueryerContext
}

// NewCategoryStore returns a CategoryStore that queries through q, which may be a pool or
// a transaction.
func NewCategoryStore(q sqlx.QueryerContext) *CategoryStore {
	return &CategoryStore{q: q}
}

const categoryColumns = `id, title, icon, owner_id`

// List returns all categories ordered by id.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := sqlx.SelectContext(ctx, s.q, &items, `SELECT `+categoryColumns+` FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}
