package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// SQLiteStore persists history in a SQLite database. Unlike the JSON file
// store, concurrent writers from multiple processes are serialized by the
// database and never lose entries. Selected via history.backend = "sqlite".
type SQLiteStore struct {
	db               *sql.DB
	path             string
	maxItems         int
	maxContentLength int
	mu               sync.Mutex
}

// NewSQLiteStore creates (or opens) the database next to the JSON store.
// When the database cannot be opened the store degrades to the file backend.
func NewSQLiteStore(path string, maxItems, maxContentLength int) *SQLiteStore {
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxHistoryItems
	}
	if maxContentLength <= 0 {
		maxContentLength = domain.DefaultMaxContentLength
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	store := &SQLiteStore{path: path, maxItems: maxItems, maxContentLength: maxContentLength}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT UNIQUE,
		content TEXT,
		timestamp REAL
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return NewFileStore(fallbackPath(s.path), s.maxItems, s.maxContentLength)
}

func fallbackPath(dbPath string) string {
	ext := filepath.Ext(dbPath)
	return dbPath[:len(dbPath)-len(ext)] + ".json"
}

// Add inserts the content, refreshing the timestamp of an existing entry
// with the same hash, then trims the table to the configured maximum.
func (s *SQLiteStore) Add(content string) error {
	if content == "" {
		return nil
	}
	if s.db == nil {
		return s.fallback().Add(content)
	}
	if runes := []rune(content); len(runes) > s.maxContentLength {
		content = string(runes[:s.maxContentLength])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.NewHistoryEntry(content)
	_, err := s.db.Exec(`INSERT INTO entries (hash, content, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET timestamp = excluded.timestamp`,
		entry.Hash, entry.Content, entry.Timestamp)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`DELETE FROM entries WHERE id NOT IN
		(SELECT id FROM entries ORDER BY timestamp DESC LIMIT ?)`, s.maxItems)
	return err
}

// Entries returns stored entries, most-recent-first.
func (s *SQLiteStore) Entries(limit int, search string) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback().Entries(limit, search)
	}
	query := "SELECT content, timestamp, hash FROM entries"
	var args []interface{}
	if search != "" {
		query += " WHERE content LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY timestamp DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.Content, &e.Timestamp, &e.Hash); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// ExportJSON writes the entries table to dest as a JSON array.
func (s *SQLiteStore) ExportJSON(dest string) error {
	entries, err := s.Entries(0, "")
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, domain.DataFilePermissions)
}

// Stats summarizes the table contents.
func (s *SQLiteStore) Stats() (domain.HistoryStats, error) {
	if s.db == nil {
		return s.fallback().Stats()
	}
	var stats domain.HistoryStats
	var oldest, newest sql.NullFloat64
	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(content)), 0),
		MIN(timestamp), MAX(timestamp) FROM entries`).
		Scan(&stats.Entries, &stats.TotalBytes, &oldest, &newest)
	if err != nil {
		return stats, err
	}
	if oldest.Valid {
		stats.Oldest = floatToTime(oldest.Float64)
	}
	if newest.Valid {
		stats.Newest = floatToTime(newest.Float64)
	}
	return stats, nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func floatToTime(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
