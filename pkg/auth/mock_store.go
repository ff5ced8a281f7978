package auth

import "sync"

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu  sync.Mutex
	key string

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Store(apiKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if apiKey == "" {
		return ErrInvalidKey
	}
	m.key = apiKey
	return nil
}

func (m *MockStore) Retrieve() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return "", m.FailWith
	}
	if m.key == "" {
		return "", ErrNotFound
	}
	return m.key, nil
}

func (m *MockStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.key == "" {
		return ErrNotFound
	}
	m.key = ""
	return nil
}

func (m *MockStore) Exists() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FailWith == nil && m.key != ""
}
