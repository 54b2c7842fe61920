// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql"

	"github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/logging"
)

// Connector opens verified warehouse connections from resolved parameters.
type Connector struct {
	params ConnParams
	logger *zap.SugaredLogger
}

// NewConnector binds resolved parameters to a logger.
func NewConnector(params ConnParams, logger *zap.SugaredLogger) *Connector {
	return &Connector{params: params, logger: logger}
}

// DSN builds the driver DSN for the resolved parameters.
func (c *Connector) DSN() (string, error) {
	sc := gosnowflake.Config{
		Account:   c.params.Account,
		Host:      c.params.Host,
		Warehouse: c.params.Warehouse,
		Database:  c.params.Database,
		Schema:    c.params.Schema,
	}
	switch c.params.Mode {
	case AuthOAuth:
		sc.Authenticator = gosnowflake.AuthTypeOAuth
		sc.Token = c.params.Token
	default:
		sc.User = c.params.User
		sc.Password = c.params.Password
	}

	dsn, err := gosnowflake.DSN(&sc)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ConnectFailed, "could not build DSN", err)
	}
	return dsn, nil
}

// Open establishes a connection and verifies it with a ping. The returned
// handle is a pooled *sql.DB; the caller owns closing it.
func (c *Connector) Open(ctx context.Context) (*sql.DB, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ConnectFailed, "could not open warehouse handle", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		c.logger.Errorw("warehouse connection failed",
			"account", c.params.Account,
			"auth", string(c.params.Mode),
			"error", logging.Mask(err.Error()),
		)
		return nil, apperrors.Wrap(apperrors.ConnectFailed, "could not reach warehouse", err)
	}

	c.logger.Infow("warehouse connection established",
		"account", c.params.Account,
		"auth", string(c.params.Mode),
		"database", c.params.Database,
		"schema", c.params.Schema,
	)
	return db, nil
}
