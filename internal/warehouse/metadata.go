// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql"
	"sort"

	apperrors "snowq/cli/internal/errors"
)

// Catalog maps table names to column names to declared data types.
// It is the shape the assistant prompt and the metadata endpoints expose.
type Catalog map[string]map[string]string

// metadataQuery lists every column visible in the connected database.
// Scoping beyond the database comes from the session context in the DSN.
const metadataQuery = "SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS"

// Inspector provides warehouse schema introspection.
// It queries INFORMATION_SCHEMA to gather metadata about tables and columns
// and reshapes the flat rows into a nested catalog.
type Inspector struct {
	// db is the verified warehouse handle used for introspection queries
	db *sql.DB
}

// NewInspector creates an Inspector over an open warehouse handle.
func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{db: db}
}

// Catalog fetches the column catalog for the connected database.
// A database without visible columns yields an empty, non-nil catalog.
func (i *Inspector) Catalog(ctx context.Context) (Catalog, error) {
	rows, err := i.db.QueryContext(ctx, metadataQuery)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.MetadataFailed, "introspection query failed", err)
	}
	defer rows.Close()

	catalog := Catalog{}
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return nil, apperrors.Wrap(apperrors.MetadataFailed, "could not scan catalog row", err)
		}
		if _, ok := catalog[table]; !ok {
			catalog[table] = map[string]string{}
		}
		catalog[table][column] = dataType
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.MetadataFailed, "catalog iteration failed", err)
	}
	return catalog, nil
}

// Tables returns the catalog's table names sorted for stable output.
func (c Catalog) Tables() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColumnsOf returns the column names of one table sorted for stable output.
func (c Catalog) ColumnsOf(table string) []string {
	cols := make([]string, 0, len(c[table]))
	for name := range c[table] {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}
