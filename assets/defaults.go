package assets

import (
	_ "embed"
)

// DefaultConfigJSON contains the embedded default configuration.
//
//go:embed defaults/config.json
var DefaultConfigJSON []byte

// DefaultSecurityYAML contains the embedded default sensitive-content rules.
//
//go:embed defaults/security.yaml
var DefaultSecurityYAML []byte

// DashboardIndexHTML contains the embedded history dashboard page.
//
//go:embed defaults/index.html
var DashboardIndexHTML []byte
