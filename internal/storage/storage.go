package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/reservoir/internal/model"
)

const (
	// StoreFileName is the JSON store file inside the data directory.
	StoreFileName = "stored.json"

	emptyStore = "{\n  \"bookmarks\": {}\n}"
)

// Storage defines the interface for persisting the bookmark collection.
type Storage interface {
	Load() (*model.Collection, error)
	Save(c *model.Collection) error
	Path() string
}

// JSONStorage implements Storage using a pretty-printed JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the collection from the JSON file.
// A missing directory or file is created holding an empty collection first.
func (s *JSONStorage) Load() (*model.Collection, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, newError(ErrOpen, s.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, newError(ErrRead, s.path, err)
	}

	c := model.NewCollection()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, newError(ErrParse, s.path, err)
	}

	return c, nil
}

// ensureFile creates the parent directory and an empty store file if missing.
func (s *JSONStorage) ensureFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newError(ErrCreate, dir, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return newError(ErrOpen, s.path, err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return newError(ErrCreate, s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(emptyStore); err != nil {
		return newError(ErrWrite, s.path, err)
	}
	return nil
}

// Save overwrites the JSON file with the whole collection.
func (s *JSONStorage) Save(c *model.Collection) error {
	return writeJSON(s.path, c)
}

// Export writes the collection as pretty JSON to
// <dir>/reservoir_info_<unix>.json and returns the written path.
// The store file is never touched.
func Export(c *model.Collection, dir string, now time.Time) (string, error) {
	if dir == "" {
		return "", newError(ErrOpen, dir, errors.New("no export directory"))
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", newError(ErrOpen, dir, err)
	}

	path := filepath.Join(dir, ExportFileName(now))
	if err := writeJSON(path, c); err != nil {
		return "", err
	}
	return path, nil
}

// ExportFileName returns the export file name for the given time.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("reservoir_info_%d.json", now.Unix())
}

// writeJSON creates or truncates path and writes c as indented JSON.
func writeJSON(path string, c *model.Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return newError(ErrWrite, path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return newError(ErrOpen, path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return newError(ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return newError(ErrWrite, path, err)
	}
	return nil
}
