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

// UserStore reads users from the database.
type UserStore struct {
	q sqlx.QueryerContext
}

// NewUserStore returns a UserStore that queries through q, which may be a pool or
// a transaction.
func NewUserStore(q sqlx.QueryerContext) *UserStore {
	return &UserStore{q: q}
}

const userColumns = `id, name, sex`

// List returns all users ordered by id.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var items []models.User
	if err := sqlx.SelectContext(ctx, s.q, &items, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}
