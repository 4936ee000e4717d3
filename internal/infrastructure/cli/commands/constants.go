package commands

// Error messages
const (
	ErrHistoryStoreUnavailable = "history store unavailable"
	ErrConfigLoaderUnavailable = "config loader unavailable"
	ErrDoctorUnavailable       = "doctor service unavailable"
	ErrMonitorUnavailable      = "monitor service unavailable"
	ErrLoginItemsUnavailable   = "login item manager unavailable"
	ErrClipboardUnavailable    = "clipboard unavailable"
)

// Success messages
const (
	MsgNoHistoryRecorded = "No history recorded yet."
	MsgHistoryCleared    = "History cleared."
)
