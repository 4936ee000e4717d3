package processors

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// CodeFormat reformats copied source code: Go through gofmt, JSON through
// the standard library. Content it cannot confidently classify is left
// untouched.
type CodeFormat struct {
	Clipboard ports.Clipboard
	Runner    ports.CommandRunner
	Log       ports.Logger
}

// NewCodeFormat builds the code formatter processor.
func NewCodeFormat(clip ports.Clipboard, runner ports.CommandRunner, log ports.Logger) *CodeFormat {
	return &CodeFormat{Clipboard: clip, Runner: runner, Log: log}
}

func (c *CodeFormat) Name() string { return "codeformat" }

func (c *CodeFormat) Description() string {
	return "Reformats copied Go and JSON snippets"
}

// Process implements ports.Processor.
func (c *CodeFormat) Process(ctx context.Context, content string, cfg domain.Config) (bool, error) {
	switch DetectLanguage(content) {
	case "go":
		return c.formatGo(ctx, content)
	case "json":
		return c.formatJSON(content)
	default:
		return false, nil
	}
}

func (c *CodeFormat) formatGo(ctx context.Context, content string) (bool, error) {
	if !c.Runner.LookPath("gofmt") {
		return false, nil
	}
	formatted, err := c.Runner.Run(ctx, content, "gofmt")
	if err != nil {
		// Snippets frequently fail to parse; that is not an error worth
		// surfacing to the dispatch loop.
		c.Log.Debug("gofmt rejected content", map[string]interface{}{"error": err.Error()})
		return false, nil
	}
	if formatted == content {
		return false, nil
	}
	if err := c.Clipboard.Write(formatted); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CodeFormat) formatJSON(content string) (bool, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(content), "", "  "); err != nil {
		return false, nil
	}
	formatted := buf.String()
	if formatted == content {
		return false, nil
	}
	if err := c.Clipboard.Write(formatted); err != nil {
		return false, err
	}
	return true, nil
}

var goDeclRe = regexp.MustCompile(`(?m)^(package\s+\w+|func\s+\w+\s*\(|type\s+\w+\s+(struct|interface)\b)`)

// DetectLanguage classifies the content as "go", "json", or "" (unknown).
func DetectLanguage(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)) {
		return "json"
	}
	if goDeclRe.MatchString(content) {
		return "go"
	}
	return ""
}

var _ ports.Processor = (*CodeFormat)(nil)
