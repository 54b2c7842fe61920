// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores snowq secrets in the OS credential store: the
// warehouse password and the completion-service API key. macOS goes through
// the native security command with the keyring library as fallback, Windows
// uses the Credential Manager.
//
// Secrets stored here are an optional convenience for interactive use;
// deployed instances resolve everything from the environment or the session
// token file, so platforms without secure storage are not an error at the
// config layer.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies the snowq namespace in the OS credential store.
const ServiceName = "snowq"

// Keychain item names for the two secrets snowq stores.
const (
	KeyWarehousePassword = "warehouse_password"
	KeyLLMAPIKey         = "llm_api_key"
)

var (
	globalManager *Manager
	mu            sync.Mutex
)

// keychainBackend is the minimal store interface the manager drives.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Manager serializes access to the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// NewManager initializes platform keychain access. On macOS the security
// command is preferred; it avoids the confirmation prompts the Keychain API
// can trigger on recent releases.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		if backend, err := newSecurityBackend(); err == nil {
			return &Manager{backend: backend}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the process-wide manager, initializing it on first
// call. A failed initialization is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager == nil {
		m, err := NewManager()
		if err != nil {
			return nil, err
		}
		globalManager = m
	}
	return globalManager, nil
}

// openRing opens the OS keyring through native platform backends. There is
// no file fallback; on unsupported platforms secrets stay in the
// environment.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Keychain first; pass covers setups where the Keychain API is
		// locked down. Requires: brew install pass
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass' as a fallback: brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// set stores one secret under the active backend.
func (m *Manager) set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(key, value)
	}
	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

// get reads one secret. Stored-but-empty values are reported as errors so
// callers can treat them like unset ones.
func (m *Manager) get(key, what string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		value, err := m.backend.Get(key)
		if err != nil {
			return "", err
		}
		if value == "" {
			return "", errors.New("empty " + what)
		}
		return value, nil
	}

	it, err := m.ring.Get(key)
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", errors.New("empty " + what)
	}
	return string(it.Data), nil
}

// remove deletes secrets, ignoring entries that were never stored.
func (m *Manager) remove(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		if m.backend != nil {
			_ = m.backend.Delete(key)
		} else {
			_ = m.ring.Remove(key)
		}
	}
}

// SaveWarehousePassword stores the warehouse password.
func (m *Manager) SaveWarehousePassword(password string) error {
	return m.set(KeyWarehousePassword, password)
}

// LoadWarehousePassword retrieves the warehouse password.
func (m *Manager) LoadWarehousePassword() (string, error) {
	return m.get(KeyWarehousePassword, "warehouse password")
}

// SaveAPIKey stores the completion-service API key.
func (m *Manager) SaveAPIKey(key string) error {
	return m.set(KeyLLMAPIKey, key)
}

// LoadAPIKey retrieves the completion-service API key.
func (m *Manager) LoadAPIKey() (string, error) {
	return m.get(KeyLLMAPIKey, "API key")
}

// ClearAll removes every snowq secret from the keychain.
func (m *Manager) ClearAll() error {
	m.remove(KeyWarehousePassword, KeyLLMAPIKey)
	return nil
}
