// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snowq/cli/internal/logging"
)

func TestResolve(t *testing.T) {
	base := Settings{
		Account:   "myorg-account",
		Host:      "myorg-account.snowflakecomputing.com",
		User:      "jdoe",
		Password:  "hunter2",
		Warehouse: "COMPUTE_WH",
		Database:  "ANALYTICS",
		Schema:    "PUBLIC",
	}

	t.Run("token selects oauth without user credentials", func(t *testing.T) {
		params, err := Resolve(base, "tok-123")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if params.Mode != AuthOAuth {
			t.Errorf("Mode = %q, want %q", params.Mode, AuthOAuth)
		}
		if params.Token != "tok-123" {
			t.Errorf("Token = %q, want tok-123", params.Token)
		}
		if params.User != "" || params.Password != "" {
			t.Errorf("oauth params must not carry user credentials, got %q/%q", params.User, params.Password)
		}
	})

	t.Run("no token selects password auth", func(t *testing.T) {
		params, err := Resolve(base, "")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if params.Mode != AuthPassword {
			t.Errorf("Mode = %q, want %q", params.Mode, AuthPassword)
		}
		if params.User != "jdoe" || params.Password != "hunter2" {
			t.Errorf("credentials = %q/%q, want jdoe/hunter2", params.User, params.Password)
		}
		if params.Token != "" {
			t.Errorf("password params must not carry a token, got %q", params.Token)
		}
	})

	t.Run("missing password without token fails", func(t *testing.T) {
		s := base
		s.Password = ""
		if _, err := Resolve(s, ""); err == nil {
			t.Fatal("Resolve() expected error for missing password")
		}
	})

	t.Run("missing user without token fails", func(t *testing.T) {
		s := base
		s.User = ""
		if _, err := Resolve(s, ""); err == nil {
			t.Fatal("Resolve() expected error for missing user")
		}
	})

	t.Run("missing account always fails", func(t *testing.T) {
		s := base
		s.Account = ""
		if _, err := Resolve(s, "tok-123"); err == nil {
			t.Fatal("Resolve() expected error for missing account")
		}
	})
}

func TestTokenSourceRead(t *testing.T) {
	t.Run("present token is trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		if err := os.WriteFile(path, []byte("  ey-token-value\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := (&TokenSource{Path: path}).Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got != "ey-token-value" {
			t.Errorf("Read() = %q, want ey-token-value", got)
		}
	})

	t.Run("absent file means password mode", func(t *testing.T) {
		got, err := (&TokenSource{Path: filepath.Join(t.TempDir(), "missing")}).Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got != "" {
			t.Errorf("Read() = %q, want empty", got)
		}
	})

	t.Run("unreadable path is an error", func(t *testing.T) {
		if _, err := (&TokenSource{Path: t.TempDir()}).Read(); err == nil {
			t.Fatal("Read() expected error for directory path")
		}
	})
}

func TestConnectorDSN(t *testing.T) {
	t.Run("oauth", func(t *testing.T) {
		c := NewConnector(ConnParams{
			Mode:      AuthOAuth,
			Account:   "myorg-account",
			Token:     "tok-123",
			Warehouse: "COMPUTE_WH",
			Database:  "ANALYTICS",
			Schema:    "PUBLIC",
		}, logging.Nop())
		dsn, err := c.DSN()
		if err != nil {
			t.Fatalf("DSN() error = %v", err)
		}
		if !strings.Contains(dsn, "authenticator=oauth") {
			t.Errorf("DSN missing oauth authenticator: %s", dsn)
		}
		if strings.Contains(dsn, "hunter2") {
			t.Errorf("DSN leaked a password: %s", dsn)
		}
	})

	t.Run("password", func(t *testing.T) {
		c := NewConnector(ConnParams{
			Mode:     AuthPassword,
			Account:  "myorg-account",
			User:     "jdoe",
			Password: "hunter2",
			Database: "ANALYTICS",
		}, logging.Nop())
		dsn, err := c.DSN()
		if err != nil {
			t.Fatalf("DSN() error = %v", err)
		}
		if !strings.Contains(dsn, "jdoe:hunter2@") {
			t.Errorf("DSN missing password credentials: %s", dsn)
		}
		if strings.Contains(dsn, "authenticator=oauth") {
			t.Errorf("password DSN must not request oauth: %s", dsn)
		}
	})
}
