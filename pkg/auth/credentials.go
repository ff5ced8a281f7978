package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no API key is stored anywhere.
	ErrNotFound = errors.New("no API key found")
	// ErrStoreUnavailable is returned by stores that cannot perform the
	// requested operation (e.g. writing to the environment store).
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrInvalidKey is returned for empty or malformed keys.
	ErrInvalidKey = errors.New("invalid API key")
)

// Store persists and retrieves the Gemini API key.
type Store interface {
	// Store saves the API key.
	Store(apiKey string) error
	// Retrieve returns the stored API key.
	Retrieve() (string, error)
	// Delete removes the stored API key.
	Delete() error
	// Exists reports whether a key is stored.
	Exists() bool
}

// Manager resolves the API key across several stores in priority order:
// environment first (explicit configuration wins), then the system keychain.
// Writes always go to the keychain.
type Manager struct {
	env     Store
	keyring Store
}

// NewManager creates a credential manager. The keychain store may be
// unavailable (headless systems); the manager still works for
// environment-provided keys.
func NewManager() *Manager {
	m := &Manager{env: NewEnvironmentStore()}

	if ks, err := NewKeyringStore(); err == nil {
		m.keyring = ks
	}

	return m
}

// Resolve returns the API key from the first store that has one.
func (m *Manager) Resolve() (string, error) {
	if key, err := m.env.Retrieve(); err == nil {
		return key, nil
	}

	if m.keyring != nil {
		if key, err := m.keyring.Retrieve(); err == nil {
			return key, nil
		}
	}

	return "", fmt.Errorf("%w: set %s or run `tripagent auth login`", ErrNotFound, envAPIKey)
}

// Save stores the API key in the system keychain.
func (m *Manager) Save(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return ErrInvalidKey
	}
	if m.keyring == nil {
		return fmt.Errorf("%w: system keychain not available", ErrStoreUnavailable)
	}
	return m.keyring.Store(apiKey)
}

// Forget removes the API key from the system keychain.
func (m *Manager) Forget() error {
	if m.keyring == nil {
		return fmt.Errorf("%w: system keychain not available", ErrStoreUnavailable)
	}
	return m.keyring.Delete()
}

// Status describes where (if anywhere) a key is currently available.
func (m *Manager) Status() string {
	if m.env.Exists() {
		return "environment"
	}
	if m.keyring != nil && m.keyring.Exists() {
		return "keychain"
	}
	return "none"
}
