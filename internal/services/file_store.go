package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps uploaded files in a local uploads directory, keyed by a
// generated uuid-based name. Resolve searches a few candidate locations so a
// service started from a different working directory still finds older
// uploads.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Save writes the stream under a fresh storage key and returns the key.
func (f *FileStore) Save(originalName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	dst, err := os.Create(filepath.Join(f.baseDir, key))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return key, nil
}

// Resolve locates a stored file by key. On a miss it returns the list of
// paths that were searched so the caller can report them.
func (f *FileStore) Resolve(key string) (string, []string, error) {
	// Keys are server-generated flat names; refuse anything path-like.
	if key != filepath.Base(key) || strings.Contains(key, "..") {
		return "", nil, fmt.Errorf("invalid storage key: %q", key)
	}

	candidates := []string{
		filepath.Join(f.baseDir, key),
		filepath.Join("uploads", key),
		filepath.Join("..", "uploads", key),
	}

	searched := make([]string, 0, len(candidates))
	for _, p := range candidates {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		searched = append(searched, abs)
		if _, err := os.Stat(p); err == nil {
			return p, searched, nil
		}
	}
	return "", searched, os.ErrNotExist
}
