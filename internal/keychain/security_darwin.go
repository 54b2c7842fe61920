// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// isVerbose is read per call so commands can flip it after init.
func isVerbose() bool {
	return os.Getenv("SNOWQ_VERBOSE") == "1"
}

// securityBackend stores secrets through the macOS security command,
// which talks to the login keychain directly and avoids the extra
// confirmation dialogs some keyring libraries trigger.
type securityBackend struct{}

// newSecurityBackend returns a backend bound to the security command,
// or an error if the command is not on PATH.
func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

// runSecurity executes the security command and returns its stdout.
// On failure it returns stderr instead, so callers can match on the
// diagnostic text, and folds it into the error as well. Key names are
// safe to print; values never are.
func runSecurity(args ...string) (string, error) {
	if isVerbose() {
		fmt.Printf("[DEBUG] security_darwin: running security %s\n", args[0])
	}

	cmd := exec.Command("security", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isVerbose() {
			fmt.Printf("[DEBUG] security_darwin: security %s failed: %v\n", args[0], err)
		}
		return stderr.String(), fmt.Errorf("security %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// Set writes a value under the snowq service. The -U flag updates an
// existing item in place, so no delete pass is needed first.
func (s *securityBackend) Set(key, value string) error {
	_, err := runSecurity("add-generic-password",
		"-a", ServiceName,
		"-s", key,
		"-w", value,
		"-U",
	)
	if err != nil {
		return fmt.Errorf("failed to store '%s' in keychain: %w", key, err)
	}
	return nil
}

// Get reads a value back. A missing item is reported as a plain
// not-found error so callers can treat it as an unset secret.
func (s *securityBackend) Get(key string) (string, error) {
	out, err := runSecurity("find-generic-password",
		"-a", ServiceName,
		"-s", key,
		"-w",
	)
	if err != nil {
		if strings.Contains(out, "could not be found") {
			return "", fmt.Errorf("key not found")
		}
		return "", fmt.Errorf("failed to retrieve '%s' from keychain: %w", key, err)
	}
	return strings.TrimSpace(out), nil
}

// Delete removes an item. Deleting a key that was never stored is not
// an error.
func (s *securityBackend) Delete(key string) error {
	out, err := runSecurity("delete-generic-password",
		"-a", ServiceName,
		"-s", key,
	)
	if err != nil {
		if strings.Contains(out, "could not be found") {
			return nil
		}
		return fmt.Errorf("failed to delete '%s' from keychain: %w", key, err)
	}
	return nil
}
