package readstate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is a string key-value store holding the serialized read set.
// Get reports ok=false when the key has never been written.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStorage stores each key as <dir>/<key>.json.
// Writes go through a temporary file and a rename so a crash never leaves a
// half-written value behind.
type FileStorage struct {
	dir string
}

// NewFileStorage creates dir if needed and returns a FileStorage rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.New("readstate: storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("readstate: create %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the directory holding the stored values.
func (f *FileStorage) Dir() string { return f.dir }

func (f *FileStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("readstate: invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("readstate: read %s: %w", p, err)
	}
	return string(b), true, nil
}

func (f *FileStorage) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("readstate: create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("readstate: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("readstate: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("readstate: rename to %s: %w", p, err)
	}
	return nil
}
