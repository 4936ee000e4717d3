// Package cache memoizes expensive content conversions.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// entry is the on-disk cache record.
type entry struct {
	Key       string    `json:"key"`
	Rendered  string    `json:"rendered"`
	CreatedAt time.Time `json:"created_at"`
}

// FileCache stores rendered conversions (markdown→RTF output) as JSON blobs
// addressed by content hash, so re-copying the same markdown skips the
// textutil round trip.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
}

// NewFileCache returns a cache rooted in the given directory.
func NewFileCache(dir string) *FileCache {
	return &FileCache{
		dir:        dir,
		maxEntries: 100,
		ttl:        24 * time.Hour,
	}
}

// Get retrieves a rendered conversion.
func (c *FileCache) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false, err
	}
	if c.ttl > 0 && time.Since(e.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return "", false, nil
	}
	return e.Rendered, true, nil
}

// Set stores a rendered conversion.
func (c *FileCache) Set(key, rendered string) error {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(entry{Key: key, Rendered: rendered, CreatedAt: time.Now()})
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(key), data, domain.DataFilePermissions); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Clear removes all cached conversions.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		old := infos[0]
		_ = os.Remove(filepath.Join(c.dir, old.name))
		infos = infos[1:]
	}
	return nil
}

var _ ports.RenderCache = (*FileCache)(nil)
