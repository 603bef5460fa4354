package storage

import (
	"fmt"
	"os"
	"path/filepath"

	gap "github.com/muesli/go-app-paths"
)

// AppName scopes the per-user directories.
const AppName = "reservoir"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultDataDir returns the per-user data directory,
// e.g. ~/.local/share/reservoir on Linux.
func DefaultDataDir() (string, error) {
	scope := gap.NewScope(gap.User, AppName)
	path, err := scope.DataPath("")
	if err != nil {
		return "", fmt.Errorf("getting data path: %w", err)
	}
	return path, nil
}

// DefaultDownloadsDir returns $XDG_DOWNLOAD_DIR, or ~/Downloads.
func DefaultDownloadsDir() (string, error) {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", newError(ErrOpen, "", fmt.Errorf("resolving downloads dir: %w", err))
	}
	return filepath.Join(home, "Downloads"), nil
}

// Open returns the storage backend for the given name rooted at dataDir.
// An empty backend selects JSON.
func Open(backend, dataDir string) (Storage, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStorage(filepath.Join(dataDir, StoreFileName)), nil
	case BackendSQLite:
		return NewSQLiteStorage(filepath.Join(dataDir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
