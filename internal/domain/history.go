// Package domain defines core business entities and value objects for clipd.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// HistoryEntry is one captured clipboard value. Entries are stored
// most-recent-first; Hash is unique per distinct content value.
type HistoryEntry struct {
	Content   string  `json:"content"`
	Timestamp float64 `json:"timestamp"`
	Hash      string  `json:"hash"`
}

// NewHistoryEntry builds an entry for the given content, stamped now.
func NewHistoryEntry(content string) HistoryEntry {
	return HistoryEntry{
		Content:   content,
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
		Hash:      ContentHash(content),
	}
}

// Time converts the unix-seconds timestamp back to time.Time.
func (e HistoryEntry) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// ContentHash returns the hex MD5 digest used for dedup and loop suppression.
func ContentHash(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// HistoryStats summarizes the current store contents.
type HistoryStats struct {
	Entries    int       `json:"entries"`
	TotalBytes int       `json:"total_bytes"`
	Oldest     time.Time `json:"oldest,omitempty"`
	Newest     time.Time `json:"newest,omitempty"`
}
