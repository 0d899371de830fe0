package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists upload bytes under key and returns the public URL.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// LocalStorage writes files into Dir; the router serves Dir at BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	// Keys are generated server-side; refuse anything that could climb out.
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	path := filepath.Join(s.Dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return s.BaseURL + "/" + key, nil
}
