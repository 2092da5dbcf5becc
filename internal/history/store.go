package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit caps history queries when the caller does not specify one
const DefaultLimit = 50

// Entry is one row of the download history ledger
type Entry struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Duration     int64  `json:"duration,omitempty"` // artifact length in seconds, 0 if unknown
	OutputPath   string `json:"outputPath"`
	DownloadedAt string `json:"downloadedAt"`
}

// Store manages download history persistence backed by SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and creates the
// schema when missing
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.createSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) createSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS download_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    title TEXT NOT NULL,
    artist TEXT NOT NULL,
    thumbnail TEXT,
    duration INTEGER,
    output_path TEXT NOT NULL,
    downloaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_downloaded_at
    ON download_history(downloaded_at DESC);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save records a finished download and returns the new entry id
func (s *Store) Save(ctx context.Context, entry Entry) (int64, error) {
	downloadedAt := entry.DownloadedAt
	if downloadedAt == "" {
		downloadedAt = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO download_history (url, title, artist, thumbnail, duration, output_path, downloaded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.URL,
		entry.Title,
		entry.Artist,
		nullableString(entry.Thumbnail),
		nullableInt(entry.Duration),
		entry.OutputPath,
		downloadedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the most recent downloads, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, url, title, artist, thumbnail, duration, output_path, downloaded_at
         FROM download_history
         ORDER BY downloaded_at DESC, id DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search returns entries whose title or artist matches query, newest first
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, url, title, artist, thumbnail, duration, output_path, downloaded_at
         FROM download_history
         WHERE title LIKE ? OR artist LIKE ?
         ORDER BY downloaded_at DESC, id DESC
         LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Delete removes one history entry by id
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM download_history WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete history entry %d: %w", id, err)
	}
	return nil
}

// Clear removes all history entries
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM download_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var thumbnail sql.NullString
		var duration sql.NullInt64

		if err := rows.Scan(
			&entry.ID,
			&entry.URL,
			&entry.Title,
			&entry.Artist,
			&thumbnail,
			&duration,
			&entry.OutputPath,
			&entry.DownloadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		entry.Thumbnail = thumbnail.String
		entry.Duration = duration.Int64
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
