package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the session as a JSON file, by default under the user
// config directory.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the per-user location of the session file.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}

	return filepath.Join(dir, "kassa", "session.json"), nil
}

// Load reads the stored session. A missing file means no session. An
// unreadable file is dropped and also reported as no session, so a
// corrupt write never locks the user out of the login screen.
func (f *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Token == "" {
		_ = os.Remove(f.path)
		return nil, nil
	}

	return &sess, nil
}

func (f *FileStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	// The file holds a bearer token; keep it readable by the owner only.
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}
