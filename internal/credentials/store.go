// Package credentials implements the ordered credential-resolution chain:
// explicit override, process environment, local env file, then
// provider-specific on-disk stores. "Not found" is a normal state here,
// never an error; only a failed save surfaces one.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/janekbaraniewski/usagetui/internal/config"
	"github.com/janekbaraniewski/usagetui/internal/core"
)

// storedCredential is the on-disk shape of one saved token.
type storedCredential struct {
	AccessToken string     `json:"access_token"`
	SavedAt     time.Time  `json:"saved_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Store persists one bearer token for one provider as a JSON file under
// the application config directory.
type Store struct {
	path string
}

func NewStore(id core.ProviderIdentity) *Store {
	return &Store{path: config.CredentialPath(id)}
}

// NewStoreAt points the store at an explicit file, used by tests.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load reads the saved credential. A missing file, unreadable JSON, or an
// empty token field all resolve to absent.
func (s *Store) Load() (core.Credential, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return core.Credential{}, false
	}

	var stored storedCredential
	if err := json.Unmarshal(data, &stored); err != nil {
		return core.Credential{}, false
	}
	if stored.AccessToken == "" {
		return core.Credential{}, false
	}

	return core.Credential{
		Token:     stored.AccessToken,
		ExpiresAt: stored.ExpiresAt,
		Source:    core.SourceStore,
	}, true
}

// Save writes the credential atomically (temp file + rename) so a
// concurrent reader never observes a truncated blob. Parent directories
// are created as needed.
func (s *Store) Save(cred core.Credential) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credential dir: %w", err)
	}

	data, err := json.MarshalIndent(storedCredential{
		AccessToken: cred.Token,
		SavedAt:     time.Now().UTC(),
		ExpiresAt:   cred.ExpiresAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credential: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return fmt.Errorf("creating temp credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("restricting credential permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing credential file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing credential file: %w", err)
	}
	return nil
}
