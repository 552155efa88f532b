package tokenstore

import (
	"os"
	"path/filepath"
	"strings"

	"bankcli/internal/security/secretbox"
)

// FileStore keeps the token in a 0600 file, optionally sealed with
// AES-GCM when an encryption key is configured.
type FileStore struct {
	path string
	box  *secretbox.Box
}

func NewFileStore(path, base64Key string) (*FileStore, error) {
	fs := &FileStore{path: path}
	if base64Key != "" {
		box, err := secretbox.New(base64Key)
		if err != nil {
			return nil, err
		}
		fs.box = box
	}
	return fs, nil
}

func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNotFound
	}
	if s.box != nil {
		return s.box.Open(token)
	}
	return token, nil
}

func (s *FileStore) Save(token string) error {
	if s.box != nil {
		sealed, err := s.box.Seal(token)
		if err != nil {
			return err
		}
		token = sealed
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
