package auth

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "tripagent"
	keyringUser    = "gemini_api_key"
)

// KeyringStore persists the API key in the system keychain.
type KeyringStore struct{}

// NewKeyringStore probes the keychain and returns a store if it is usable.
func NewKeyringStore() (*KeyringStore, error) {
	const probe = "availability_probe"
	if err := keyring.Set(keyringService, probe, "ok"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, probe)

	return &KeyringStore{}, nil
}

// Store saves the API key to the keychain.
func (k *KeyringStore) Store(apiKey string) error {
	if apiKey == "" {
		return ErrInvalidKey
	}
	if err := keyring.Set(keyringService, keyringUser, apiKey); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

// Retrieve reads the API key from the keychain.
func (k *KeyringStore) Retrieve() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to retrieve from keyring: %w", err)
	}
	return key, nil
}

// Delete removes the API key from the keychain.
func (k *KeyringStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// Exists reports whether a key is in the keychain.
func (k *KeyringStore) Exists() bool {
	_, err := k.Retrieve()
	return err == nil
}
