package domain

// Config mirrors the per-user config.json.
type Config struct {
	ConfigFormatVersion string              `json:"config_format_version"`
	General             GeneralSettings     `json:"general"`
	History             HistorySettings     `json:"history"`
	Security            SecuritySettings    `json:"security"`
	Performance         PerformanceSettings `json:"performance"`
	Modules             ModuleSettings      `json:"modules"`
	Memory              MemorySettings      `json:"memory"`
}

// GeneralSettings captures monitor level toggles.
type GeneralSettings struct {
	PollIntervalMS  int  `json:"poll_interval_ms"`
	MaxContentBytes int  `json:"max_content_bytes"`
	Notifications   bool `json:"notifications"`
	LaunchAtLogin   bool `json:"launch_at_login"`
}

// HistorySettings configures the clipboard history store.
type HistorySettings struct {
	Enabled          bool   `json:"enabled"`
	FilePath         string `json:"file_path"`
	MaxItems         int    `json:"max_items"`
	MaxContentLength int    `json:"max_content_length"`
	Backend          string `json:"backend"`
}

// SecuritySettings defines sensitive-content filtering behavior.
type SecuritySettings struct {
	Enabled       bool   `json:"enabled"`
	RulesFile     string `json:"rules_file"`
	NotifyOnMatch bool   `json:"notify_on_match"`
}

// PerformanceSettings controls processor execution limits.
type PerformanceSettings struct {
	ProcessTimeoutSeconds int `json:"process_timeout_seconds"`
	DispatchDebounceMS    int `json:"dispatch_debounce_ms"`
}

// ModuleSettings controls which content processors run. Processors are
// registered explicitly at startup; this section only opts them out.
type ModuleSettings struct {
	Disabled []string `json:"disabled"`
}

// MemorySettings configures the monitor's periodic self-sampling.
type MemorySettings struct {
	LogUsage              bool `json:"log_usage"`
	SampleIntervalSeconds int  `json:"sample_interval_seconds"`
}
