// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "snowq/cli/internal/errors"
)

// Table represents a normalized SQL result for JSON marshaling and display.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the table carries no data rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// StringRows renders every cell as a string for terminal tables.
// NULLs become empty cells.
func (t *Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Executor executes SQL statements over an open warehouse handle.
type Executor struct {
	// db is the verified warehouse handle used for query execution
	db *sql.DB
	// logger records execution outcomes with secrets already out of band
	logger *zap.SugaredLogger
}

// NewExecutor creates an Executor from an open warehouse handle.
func NewExecutor(db *sql.DB, logger *zap.SugaredLogger) *Executor {
	return &Executor{db: db, logger: logger}
}

// Run executes an arbitrary SQL statement and returns the normalized result.
// A statement that matches no rows returns a table with its columns set and
// zero rows. Driver byte slices are coerced to strings; other values keep
// their scanned types.
func (e *Executor) Run(ctx context.Context, query string) (*Table, error) {
	started := time.Now()

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		e.logger.Errorw("query failed", "error", err)
		return nil, apperrors.Wrap(apperrors.QueryFailed, "query execution failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "could not read result columns", err)
	}

	table := &Table{
		Columns: cols,
		Rows:    [][]any{},
	}
	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, apperrors.Wrap(apperrors.QueryFailed, "could not scan result row", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.QueryFailed, "result iteration failed", err)
	}

	e.logger.Debugw("query executed",
		"columns", len(table.Columns),
		"rows", len(table.Rows),
		"elapsed", time.Since(started),
	)
	return table, nil
}
