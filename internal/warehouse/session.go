// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Session bundles introspection and execution over one warehouse handle.
// It is what the assistant and the HTTP API hold between requests.
type Session struct {
	*Inspector
	*Executor

	db *sql.DB
}

// NewSession wraps an open warehouse handle.
func NewSession(db *sql.DB, logger *zap.SugaredLogger) *Session {
	return &Session{
		Inspector: NewInspector(db),
		Executor:  NewExecutor(db, logger),
		db:        db,
	}
}

// Ping verifies the underlying connection is still alive.
func (s *Session) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying handle.
func (s *Session) Close() error {
	return s.db.Close()
}
