package scribesdk

import (
	"errors"
	"sync"
)

// ErrPartialCredentials reports an attempt to store a half-authenticated
// credential pair. Either both tokens are present or the pair is absent.
var ErrPartialCredentials = errors.New("credential store: both tokens required")

// CredentialStore holds the current credential pair and its identity record.
// Implementations must write and clear the pair atomically: a reader never
// observes one token without the other. Operations are synchronous; durable
// implementations survive process restarts.
type CredentialStore interface {
	// Get returns the stored credentials, or (nil, nil) when logged out.
	Get() (*Credentials, error)
	// Set replaces the stored credentials as a unit.
	Set(creds *Credentials) error
	// Clear removes the pair and the identity together. Clearing an empty
	// store is a no-op.
	Clear() error
}

// ValidateCredentials enforces the store invariant before a write.
func ValidateCredentials(creds *Credentials) error {
	if creds == nil || creds.AccessToken == "" || creds.RefreshToken == "" {
		return ErrPartialCredentials
	}
	return nil
}

// MemStore is an in-memory CredentialStore for tests and --no-persist runs.
type MemStore struct {
	mu    sync.Mutex
	creds *Credentials
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Get() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return nil, nil
	}
	out := *s.creds
	return &out, nil
}

func (s *MemStore) Set(creds *Credentials) error {
	if err := ValidateCredentials(creds); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *creds
	s.creds = &stored
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	return nil
}
