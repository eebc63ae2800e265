// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fixtures provides the catalog relations shipped with the binary.
// The JSON files are embedded at compile time and decoded once at start-up.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"catalogview/internal/catalog"
)

//go:embed data/*.json
var embedded embed.FS

// Load decodes the embedded fixtures.
func Load() (*catalog.Relations, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("fixtures sub: %w", err)
	}
	return LoadFS(sub)
}

// LoadFS decodes users.json, categories.json and products.json from fsys.
func LoadFS(fsys fs.FS) (*catalog.Relations, error) {
	var set catalog.Relations
	if err := decode(fsys, "users.json", &set.Users); err != nil {
		return nil, err
	}
	if err := decode(fsys, "categories.json", &set.Categories); err != nil {
		return nil, err
	}
	if err := decode(fsys, "products.json", &set.Products); err != nil {
		return nil, err
	}
	return &set, nil
}

func decode(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
