// Package security implements the sensitive-content filter.
package security

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clipd/clipd/assets"
	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/pkg/filesystem"
	"github.com/clipd/clipd/internal/ports"
)

// Filter implements the SecurityFilter port. Clipboard content matching any
// rule is kept out of the history store.
type Filter struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule SensitivePattern
}

// SensitivePattern describes a regex-based filter rule.
type SensitivePattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
	Action  string `yaml:"action"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		SensitivePatterns []SensitivePattern `yaml:"sensitive_patterns"`
	} `yaml:"rules"`
}

// NewFilter loads filter rules from disk (or the embedded defaults when the
// file is missing).
func NewFilter(path string) (*Filter, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledPattern
	for _, pattern := range rules.Rules.SensitivePatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}

	return &Filter{patterns: compiled}, nil
}

// Evaluate implements ports.SecurityFilter.
func (f *Filter) Evaluate(content string) (domain.ContentMatch, error) {
	if f == nil {
		return domain.ContentMatch{}, errors.New("security filter nil")
	}
	match := domain.ContentMatch{Level: domain.SensitivityNone}
	highest := domain.SensitivityNone
	for _, pattern := range f.patterns {
		if pattern.re.MatchString(content) {
			match.Matched = true
			level := parseLevel(pattern.rule.Level)
			if moreSensitive(level, highest) {
				highest = level
				match.Level = level
			}
			match.Reasons = append(match.Reasons, pattern.rule.Message)
			match.MatchedRules = append(match.MatchedRules, pattern.rule.Pattern)
		}
	}
	return match, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	path = expandPath(path)

	var data []byte
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			data = raw
		}
	}
	if data == nil {
		data = assets.DefaultSecurityYAML
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	return rules, nil
}

func parseLevel(level string) domain.SensitivityLevel {
	switch strings.ToLower(level) {
	case "high":
		return domain.SensitivityHigh
	case "medium":
		return domain.SensitivityMedium
	case "low":
		return domain.SensitivityLow
	default:
		return domain.SensitivityLow
	}
}

func moreSensitive(a, b domain.SensitivityLevel) bool {
	return rank(a) > rank(b)
}

func rank(level domain.SensitivityLevel) int {
	switch level {
	case domain.SensitivityHigh:
		return 3
	case domain.SensitivityMedium:
		return 2
	case domain.SensitivityLow:
		return 1
	default:
		return 0
	}
}

func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return path
}

var _ ports.SecurityFilter = (*Filter)(nil)
