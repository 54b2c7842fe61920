// Package warehouse provides credential resolution, connection management,
// schema introspection and query execution for the Snowflake warehouse.
// It normalizes results into plain tabular values suitable for JSON transport
// and terminal rendering.
//
// Key features include:
//   - Dual authentication: OAuth session token when running inside Snowflake,
//     username/password everywhere else
//   - DSN construction through the gosnowflake driver configuration
//   - INFORMATION_SCHEMA introspection into a nested catalog
//   - Arbitrary SQL execution with normalized column/row results
package warehouse

import (
	"errors"
	"os"
	"strings"

	apperrors "snowq/cli/internal/errors"
)

// SessionTokenPath is where Snowflake mounts the OAuth token for workloads
// running inside the platform. Its presence selects OAuth authentication.
const SessionTokenPath = "/snowflake/session/token"

// AuthMode identifies how a connection authenticates.
type AuthMode string

const (
	AuthOAuth    AuthMode = "oauth"
	AuthPassword AuthMode = "password"
)

// Settings carries the warehouse-related configuration values. The zero
// value is incomplete; ResolveParams validates what the selected auth mode
// requires.
type Settings struct {
	Account   string
	Host      string
	User      string
	Password  string
	Warehouse string
	Database  string
	Schema    string
}

// ConnParams is the resolved set of connection parameters for one auth mode.
// OAuth params never carry a user or password; password params never carry
// a token.
type ConnParams struct {
	Mode      AuthMode
	Account   string
	Host      string
	User      string
	Password  string
	Token     string
	Warehouse string
	Database  string
	Schema    string
}

// TokenSource reads the OAuth session token from disk.
type TokenSource struct {
	Path string
}

// NewTokenSource returns a source bound to the platform token path.
func NewTokenSource() *TokenSource {
	return &TokenSource{Path: SessionTokenPath}
}

// Read returns the whitespace-trimmed token. A missing file means the
// process is not running inside Snowflake and is not an error; any other
// read failure is.
func (t *TokenSource) Read() (string, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", apperrors.Wrap(apperrors.ConnectFailed, "session token unreadable", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveParams selects the auth mode from the token and validates that the
// settings carry everything that mode needs. A non-empty token selects
// OAuth; otherwise username/password from the settings is used.
func (p *TokenSource) ResolveParams(s Settings) (ConnParams, error) {
	token, err := p.Read()
	if err != nil {
		return ConnParams{}, err
	}
	return Resolve(s, token)
}

// Resolve builds connection parameters from settings and an already-read
// token. Split out from ResolveParams so the selection logic is testable
// without touching the filesystem.
func Resolve(s Settings, token string) (ConnParams, error) {
	if s.Account == "" {
		return ConnParams{}, apperrors.New(apperrors.ConfigInvalid, "SNOWFLAKE_ACCOUNT is required")
	}

	if token != "" {
		return ConnParams{
			Mode:      AuthOAuth,
			Account:   s.Account,
			Host:      s.Host,
			Token:     token,
			Warehouse: s.Warehouse,
			Database:  s.Database,
			Schema:    s.Schema,
		}, nil
	}

	if s.User == "" || s.Password == "" {
		return ConnParams{}, apperrors.New(apperrors.ConfigInvalid,
			"SNOWFLAKE_USER and SNOWFLAKE_PASSWORD are required without a session token")
	}
	return ConnParams{
		Mode:      AuthPassword,
		Account:   s.Account,
		Host:      s.Host,
		User:      s.User,
		Password:  s.Password,
		Warehouse: s.Warehouse,
		Database:  s.Database,
		Schema:    s.Schema,
	}, nil
}
