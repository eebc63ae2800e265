package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"catalogview/internal/catalog"
)

// Seed copies the fixture relations into empty catalog tables. It is a
// no-op when any user already exists. Rows are inserted in dependency
// order inside one transaction so a partial seed is never visible.
func Seed(db *sql.DB, set *catalog.Relations) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, u := range set.Users {
		if _, err := tx.Exec(`INSERT INTO users (id, name, sex) VALUES ($1, $2, $3)`,
			u.ID, u.Name, string(u.Sex)); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}

	for _, c := range set.Categories {
		if _, err := tx.Exec(`INSERT INTO categories (id, title, icon, owner_id) VALUES ($1, $2, $3, $4)`,
			c.ID, c.Title, c.Icon, c.OwnerID); err != nil {
			return fmt.Errorf("seed category %d: %w", c.ID, err)
		}
	}

	for _, p := range set.Products {
		if _, err := tx.Exec(`INSERT INTO products (id, name, category_id) VALUES ($1, $2, $3)`,
			p.ID, p.Name, p.CategoryID); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with fixture catalog",
		"users", len(set.Users),
		"categories", len(set.Categories),
		"products", len(set.Products),
	)
	return nil
}
