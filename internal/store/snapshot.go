// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store reads the catalog relations from PostgreSQL. The stores are
// read-only: the catalog is loaded once at start-up and never written.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"catalogview/internal/catalog"
)

// driverName must match the driver registered by internal/database.
const driverName = "pgx"

// Wrap adapts a database/sql pool for sqlx struct scanning.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, driverName)
}

// Snapshot reads all three relations in one read-only transaction so the
// join sees a consistent view of the tables.
func Snapshot(ctx context.Context, db *sql.DB) (*catalog.Relations, error) {
	tx, err := Wrap(db).BeginTxx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("snapshot begin tx: %w", err)
	}
	defer tx.Rollback()

	var rel catalog.Relations
	if rel.Users, err = NewUserStore(tx).List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if rel.Categories, err = NewCategoryStore(tx).List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if rel.Products, err = NewProductStore(tx).List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("snapshot commit: %w", err)
	}
	return &rel, nil
}
