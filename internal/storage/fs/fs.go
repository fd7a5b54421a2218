package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tazdar-Rahim/artmuse-server/internal/storage"
)

// Storage implements storage.Storage on the local filesystem. Files are
// written under the configured root directory and served under the public
// base URL (the HTTP layer mounts the root as a static file route).
type Storage struct {
	root    string
	baseURL string
}

// New creates a filesystem storage rooted at dir. The directory is created
// if it does not exist.
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Storage{
		root:    dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload writes the file under the storage root and returns its public URL.
// Keys must not escape the root directory.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	path, err := s.safePath(input.Key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	if _, err := io.Copy(f, input.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}

	return &storage.UploadResult{
		Key: input.Key,
		URL: s.baseURL + "/" + input.Key,
	}, nil
}

// Delete removes a file by its key.
func (s *Storage) Delete(_ context.Context, key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

// GetURL returns the public URL for the given key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	path, err := s.safePath(key)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", key)
	}

	return s.baseURL + "/" + key, nil
}

// Root returns the storage root directory for mounting as a static route.
func (s *Storage) Root() string {
	return s.root
}

// safePath resolves a key inside the root, rejecting traversal attempts.
func (s *Storage) safePath(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	path := filepath.Join(s.root, cleaned)
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return path, nil
}
