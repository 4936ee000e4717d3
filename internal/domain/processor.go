package domain

// ProcessorInfo describes a registered content processor for listing.
type ProcessorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}
