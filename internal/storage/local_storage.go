package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStorage implements IAssetStorage on the local filesystem. Files land
// in dir and are served under baseURL by the API's static route.
type localStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a filesystem-backed asset storage, creating the
// upload directory if needed.
func NewLocalStorage(dir, baseURL string) (IAssetStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localStorage{dir: dir, baseURL: baseURL}, nil
}

// Save writes the uploaded file under a unique name and returns its URL.
func (s *localStorage) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := objectKey(filename)
	target := filepath.Join(s.dir, key)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write asset file %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to close asset file %s: %w", target, err)
	}

	return s.baseURL + "/" + key, nil
}
