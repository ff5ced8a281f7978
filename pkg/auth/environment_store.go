package auth

import "os"

const envAPIKey = "TRIPAGENT_API_KEY"

// envFallbacks are checked after the primary variable, so existing
// Gemini-standard environments keep working without reconfiguration.
var envFallbacks = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// EnvironmentStore reads the API key from environment variables. It is
// read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-backed store.
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables.
func (e *EnvironmentStore) Store(apiKey string) error {
	return ErrStoreUnavailable
}

// Retrieve reads the API key from the environment.
func (e *EnvironmentStore) Retrieve() (string, error) {
	if key := os.Getenv(envAPIKey); key != "" {
		return key, nil
	}
	for _, name := range envFallbacks {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", ErrNotFound
}

// Delete is not supported for environment variables.
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists reports whether any of the environment variables is set.
func (e *EnvironmentStore) Exists() bool {
	_, err := e.Retrieve()
	return err == nil
}
