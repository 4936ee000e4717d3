package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// DataFilePermissions is the permission for history/export files (rw-r--r--)
	DataFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultPollInterval is how often the clipboard is sampled
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultProcessTimeout bounds a single processor invocation
	DefaultProcessTimeout = 10 * time.Second
	// DefaultCommandTimeout bounds external helper commands (textutil, formatters)
	DefaultCommandTimeout = 5 * time.Second
	// DefaultMemorySampleInterval is how often memory usage is logged when enabled
	DefaultMemorySampleInterval = 60 * time.Second
)

// Limit constants
const (
	// DefaultMaxContentBytes is the dispatch size ceiling for clipboard content
	DefaultMaxContentBytes = 1 << 20
	// DefaultMaxHistoryItems bounds the history list
	DefaultMaxHistoryItems = 100
	// DefaultMaxContentLength is how many characters of an entry are persisted
	DefaultMaxContentLength = 10000
	// DefaultHistoryLimit is the default number of history entries to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Web dashboard constants
const (
	// DefaultDashboardPort is the localhost port the history dashboard binds
	DefaultDashboardPort = 8001
)

// Time formats
const (
	// TimestampFormat is the standard timestamp display format
	TimestampFormat = "2006-01-02 15:04:05"
)
