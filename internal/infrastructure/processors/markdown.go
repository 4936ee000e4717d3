// Package processors contains the built-in content-transform modules.
package processors

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// Markdown converts copied markdown to RTF so it pastes styled into Mail,
// Pages, and similar targets. Conversions are cached by content hash to
// avoid repeated textutil round trips.
type Markdown struct {
	Clipboard ports.RichClipboard
	Runner    ports.CommandRunner
	Cache     ports.RenderCache
	Log       ports.Logger

	md goldmark.Markdown
}

// NewMarkdown builds the markdown processor.
func NewMarkdown(clip ports.RichClipboard, runner ports.CommandRunner, cache ports.RenderCache, log ports.Logger) *Markdown {
	return &Markdown{
		Clipboard: clip,
		Runner:    runner,
		Cache:     cache,
		Log:       log,
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (m *Markdown) Name() string { return "markdown" }

func (m *Markdown) Description() string {
	return "Converts copied markdown to rich text (RTF)"
}

// Process implements ports.Processor.
func (m *Markdown) Process(ctx context.Context, content string, cfg domain.Config) (bool, error) {
	if !LooksLikeMarkdown(content) {
		return false, nil
	}
	if !m.Runner.LookPath("textutil") {
		return false, nil
	}

	key := domain.ContentHash(content)
	if m.Cache != nil {
		if rtf, ok, err := m.Cache.Get(key); err == nil && ok {
			if err := m.Clipboard.WriteRTF(rtf); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	var html bytes.Buffer
	if err := m.md.Convert([]byte(content), &html); err != nil {
		return false, err
	}

	rtf, err := m.Runner.Run(ctx, html.String(),
		"textutil", "-stdin", "-stdout", "-format", "html", "-convert", "rtf")
	if err != nil {
		return false, err
	}

	if err := m.Clipboard.WriteRTF(rtf); err != nil {
		return false, err
	}
	if m.Cache != nil {
		if err := m.Cache.Set(key, rtf); err != nil {
			m.Log.Warn("render cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return true, nil
}

var (
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	listRe      = regexp.MustCompile(`(?m)^\s*[-*+]\s+\S`)
	linkRe      = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	emphasisRe  = regexp.MustCompile(`(\*\*|__)[^*_]+(\*\*|__)`)
	codeFenceRe = regexp.MustCompile("(?m)^```")
)

// LooksLikeMarkdown is a heuristic: a code fence alone is decisive,
// otherwise at least two distinct markdown constructs must appear.
func LooksLikeMarkdown(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	if codeFenceRe.MatchString(content) {
		return true
	}
	signals := 0
	for _, re := range []*regexp.Regexp{headingRe, listRe, linkRe, emphasisRe} {
		if re.MatchString(content) {
			signals++
		}
	}
	return signals >= 2
}

var _ ports.Processor = (*Markdown)(nil)
