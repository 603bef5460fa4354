package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/reservoir/internal/model"
)

// SQLiteFileName is the database file inside the data directory.
const SQLiteFileName = "stored.db"

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newError(ErrCreate, dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, newError(ErrOpen, path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, newError(ErrOpen, path, err)
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, newError(ErrCreate, path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		return s.migrateV1()
	}
	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			uuid TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			note TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			timestamp INTEGER NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_link ON bookmarks(link);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_position ON bookmarks(position);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the collection from the database in stored order.
func (s *SQLiteStorage) Load() (*model.Collection, error) {
	c := model.NewCollection()

	rows, err := s.db.Query(`
		SELECT uuid, title, link, note, tags, timestamp
		FROM bookmarks
		ORDER BY position
	`)
	if err != nil {
		return nil, newError(ErrRead, s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var note sql.NullString
		var tagsJSON string
		var timestamp int64

		if err := rows.Scan(&b.ID, &b.Title, &b.Link, &note, &tagsJSON, &timestamp); err != nil {
			return nil, newError(ErrRead, s.path, err)
		}

		if note.Valid {
			b.Note = &note.String
		}
		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
			return nil, newError(ErrParse, s.path, err)
		}
		b.Timestamp = uint64(timestamp)

		c.AddBookmark(b)
	}

	if err := rows.Err(); err != nil {
		return nil, newError(ErrRead, s.path, err)
	}

	return c, nil
}

// Save replaces the stored collection.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(c *model.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return newError(ErrOpen, s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return newError(ErrWrite, s.path, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bookmarks (uuid, title, link, note, tags, timestamp, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return newError(ErrWrite, s.path, err)
	}
	defer stmt.Close()

	for i, b := range c.All() {
		tags := b.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return newError(ErrWrite, s.path, err)
		}

		if _, err := stmt.Exec(
			b.ID, b.Title, b.Link, b.Note,
			string(tagsJSON), int64(b.Timestamp), i,
		); err != nil {
			return newError(ErrWrite, s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newError(ErrWrite, s.path, err)
	}
	return nil
}
