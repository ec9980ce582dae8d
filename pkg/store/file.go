package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the artifact in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a file store for path. Parent directories are created
// on the first Save.
func NewFileStore(path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("artifact path cannot be empty")
	}
	return withHooks(&FileStore{path: filepath.Clean(path)}, "file"), nil
}

// Load reads the artifact file.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// Save writes data to a temporary file in the target directory and renames
// it over the artifact.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

// Location returns the artifact path.
func (s *FileStore) Location() string { return s.path }

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
