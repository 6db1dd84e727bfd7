package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes uploads under a base directory and issues URLs below the
// configured base path. It satisfies the uploader hooks in the application
// and onboarding services.
type FileStore struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) *FileStore {
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *FileStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + path))[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid upload path %q", path)
	}

	full := filepath.Join(f.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return "", err
	}
	return f.baseURL + "/" + clean, nil
}

// Dir exposes the base directory for serving the stored files.
func (f *FileStore) Dir() string {
	return f.dir
}
