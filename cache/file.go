package cache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const fileExt = ".entry"

// FileStore persists entries as individual files under a directory, one per
// key. It is the localStorage analog: values survive process restarts within
// the same installation.
type FileStore struct {
	dir    string
	logger Logger
}

// NewFileStore creates the backing directory when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cache: file store requires a directory")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cache: create store dir: %w", err)
	}

	return &FileStore{dir: dir, logger: defLogger{}}, nil
}

// WithLogger overrides the store logger.
func (f *FileStore) WithLogger(logger Logger) *FileStore {
	if logger != nil {
		f.logger = logger
	}
	return f
}

func (f *FileStore) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(f.dir, name+fileExt)
}

func (f *FileStore) GetString(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		f.logger.Error("read %q: %v", key, err)
		return "", ErrNotFound
	}
	return string(data), nil
}

func (f *FileStore) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := f.GetString(ctx, key)
	if err != nil {
		return err
	}
	return decodeJSON(f.logger, key, raw, dest)
}

func (f *FileStore) Set(_ context.Context, key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}

	// Write to a temp file and rename so a crash mid-write never leaves a
	// truncated entry behind.
	tmp, err := os.CreateTemp(f.dir, "write-*")
	if err != nil {
		return fmt.Errorf("cache: stage entry: %w", err)
	}

	if _, err := tmp.WriteString(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: commit entry: %w", err)
	}

	return nil
}

func (f *FileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: remove entry: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("cache: list entries: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, entry.Name())); err != nil {
			return fmt.Errorf("cache: clear entry %q: %w", entry.Name(), err)
		}
	}

	return nil
}

var _ Store = (*FileStore)(nil)
