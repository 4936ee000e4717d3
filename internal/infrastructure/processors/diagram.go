package processors

import (
	"context"
	"regexp"
	"strings"

	"github.com/clipd/clipd/internal/domain"
	"github.com/clipd/clipd/internal/ports"
)

// Diagram detects copied Mermaid and draw.io payloads and surfaces a
// notification so the user knows a renderer can open them. It never
// rewrites the clipboard.
type Diagram struct {
	Notifier ports.Notifier
	Log      ports.Logger
}

// NewDiagram builds the diagram detector.
func NewDiagram(notifier ports.Notifier, log ports.Logger) *Diagram {
	return &Diagram{Notifier: notifier, Log: log}
}

func (d *Diagram) Name() string { return "diagram" }

func (d *Diagram) Description() string {
	return "Detects Mermaid and draw.io diagrams"
}

// Process implements ports.Processor.
func (d *Diagram) Process(ctx context.Context, content string, cfg domain.Config) (bool, error) {
	kind := DetectDiagram(content)
	if kind == "" {
		return false, nil
	}

	d.Log.Info("diagram detected", map[string]interface{}{"kind": kind})
	if cfg.General.Notifications && d.Notifier != nil && d.Notifier.Enabled() {
		if err := d.Notifier.Notify("clipd", kind+" diagram on clipboard"); err != nil {
			d.Log.Warn("notification failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return false, nil
}

var mermaidRe = regexp.MustCompile(`(?m)^\s*(graph\s+(TB|TD|BT|RL|LR)|flowchart\s|sequenceDiagram|classDiagram|stateDiagram|erDiagram|gantt|pie\s|journey)`)

// DetectDiagram classifies the content as "mermaid", "drawio", or "".
func DetectDiagram(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "<mxfile") || strings.Contains(trimmed, "<mxGraphModel") {
		return "drawio"
	}
	if mermaidRe.MatchString(trimmed) {
		return "mermaid"
	}
	return ""
}

var _ ports.Processor = (*Diagram)(nil)
