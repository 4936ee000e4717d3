// Package history persists the bounded, most-recent-first clipboard history.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// FileStore keeps history entries in a single JSON array file. All
// read-modify-write sequences are serialized by an in-process mutex; writes
// additionally take an advisory file lock against other clipd processes and
// replace the file atomically (temp file + fsync + rename). Cross-process
// semantics remain last-writer-wins.
type FileStore struct {
	path             string
	maxItems         int
	maxContentLength int
	mu               sync.Mutex
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string, maxItems, maxContentLength int) *FileStore {
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxHistoryItems
	}
	if maxContentLength <= 0 {
		maxContentLength = domain.DefaultMaxContentLength
	}
	return &FileStore{
		path:             path,
		maxItems:         maxItems,
		maxContentLength: maxContentLength,
	}
}

// Add implements ports.HistoryStore. Content is truncated to the configured
// maximum length; re-adding existing content moves its entry to the front
// with a refreshed timestamp instead of duplicating it.
func (f *FileStore) Add(content string) error {
	if content == "" {
		return nil
	}
	if runes := []rune(content); len(runes) > f.maxContentLength {
		content = string(runes[:f.maxContentLength])
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.loadLocked()
	entry := domain.NewHistoryEntry(content)

	kept := entries[:0]
	for _, e := range entries {
		if e.Hash == entry.Hash {
			continue
		}
		kept = append(kept, e)
	}
	entries = append([]domain.HistoryEntry{entry}, kept...)
	if len(entries) > f.maxItems {
		entries = entries[:f.maxItems]
	}

	return f.writeLocked(entries)
}

// Entries returns stored entries, most-recent-first. A corrupt file is
// backed up to <path>.corrupt.bak and the store reset to empty; the caller
// sees an empty result, never a decode error.
func (f *FileStore) Entries(limit int, search string) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.loadLocked()
	if search != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Content), strings.ToLower(search)) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear atomically overwrites the store with an empty list.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked([]domain.HistoryEntry{})
}

// ExportJSON writes the current entries to dest as a JSON array.
func (f *FileStore) ExportJSON(dest string) error {
	f.mu.Lock()
	entries := f.loadLocked()
	f.mu.Unlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, domain.DataFilePermissions)
}

// Stats summarizes the store contents.
func (f *FileStore) Stats() (domain.HistoryStats, error) {
	f.mu.Lock()
	entries := f.loadLocked()
	f.mu.Unlock()

	stats := domain.HistoryStats{Entries: len(entries)}
	for i, e := range entries {
		stats.TotalBytes += len(e.Content)
		if i == 0 {
			stats.Newest = e.Time()
		}
		if i == len(entries)-1 {
			stats.Oldest = e.Time()
		}
	}
	return stats, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// loadLocked reads and decodes the store. Callers must hold f.mu. Missing
// file yields nil; invalid JSON triggers backup-and-reset recovery.
func (f *FileStore) loadLocked() []domain.HistoryEntry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		_ = os.WriteFile(f.path+".corrupt.bak", data, domain.DataFilePermissions)
		_ = f.writeLocked([]domain.HistoryEntry{})
		return nil
	}
	return entries
}

// writeLocked replaces the store atomically under the advisory file lock.
// Callers must hold f.mu.
func (f *FileStore) writeLocked(entries []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}

	lock, err := acquireFileLock(f.path)
	if err != nil {
		return fmt.Errorf("lock history file: %w", err)
	}
	defer lock.release()

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, domain.DataFilePermissions); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

var _ ports.HistoryStore = (*FileStore)(nil)
