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

// ProductStore reads products from the database.
type ProductStore struct {
	q sqlx.QueryerContext
}

// NewProductStore returns a ProductStore that queries through q, which may be a pool or
// a transaction.
func NewProductStore(q sqlx.QueryerContext) *ProductStore {
	return &ProductStore{q: q}
}

const productColumns = `id, name, category_id`

// List returns all products ordered by id.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := sqlx.SelectContext(ctx, s.q, &items, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}
