// Package file implements the credential store as a single JSON record on
// disk, written atomically via a temp file and rename.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
)

// CredentialStore reads and writes one credential record at a fixed path.
type CredentialStore struct {
	path   string
	logger *slog.Logger
}

// NewCredentialStore creates a store backed by the given file path. The
// parent directory is created on first Save.
func NewCredentialStore(path string, logger *slog.Logger) *CredentialStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialStore{path: path, logger: logger}
}

// Path returns the file path where the credential is stored.
func (s *CredentialStore) Path() string { return s.path }

// Load reads the cached credential. Absence, unreadable files, and corrupt
// content all report ok=false with a nil error; the caller proceeds to
// re-authorization. Faults are logged, never propagated.
func (s *CredentialStore) Load(_ context.Context) (domain.Credential, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read credential file, treating as no cached token",
				"path", s.path, "error", err)
		}
		return domain.Credential{}, false, nil
	}

	if len(data) == 0 {
		return domain.Credential{}, false, nil
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		s.logger.Warn("credential file is corrupt, treating as no cached token",
			"path", s.path, "error", err)
		return domain.Credential{}, false, nil
	}

	if cred.AccessToken == "" {
		return domain.Credential{}, false, nil
	}

	return cred, true, nil
}

// Save overwrites the stored credential atomically: the record is written
// to a temp file in the same directory and renamed into place, so a crash
// mid-write leaves the prior record intact.
func (s *CredentialStore) Save(_ context.Context, cred domain.Credential) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credential-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp credential file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp credential file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace credential file: %w", err)
	}

	return nil
}

// Clear removes the stored credential. A missing file is not an error.
func (s *CredentialStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}
