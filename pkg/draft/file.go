package draft

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON file per slot under a directory, which gives drafts
// the lifetime of browser local storage: they survive restarts of the CLI.
type FileStore struct {
	dir string
}

// NewFileStore creates dir when needed.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("draft: file store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("draft: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft: read %s: %w", path, err)
	}
	return data, nil
}

// Set writes to a temporary file in the same directory and renames it over
// the slot so readers never observe a partial payload.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".draft-*")
	if err != nil {
		return fmt.Errorf("draft: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("draft: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("draft: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("draft: rename %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: delete %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("draft: invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
