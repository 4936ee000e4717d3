package processors

import "testing"

func TestLooksLikeMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "plain prose",
			content: "Just a sentence someone copied from an email.",
			want:    false,
		},
		{
			name:    "code fence alone is decisive",
			content: "```go\nfmt.Println(\"hi\")\n```",
			want:    true,
		},
		{
			name:    "heading plus list",
			content: "# Shopping\n\n- milk\n- eggs\n",
			want:    true,
		},
		{
			name:    "heading alone is not enough",
			content: "# TODO",
			want:    false,
		},
		{
			name:    "link plus emphasis",
			content: "See [the docs](https://example.com) for **details**.",
			want:    true,
		},
		{
			name:    "empty",
			content: "   \n",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeMarkdown(tt.content); got != tt.want {
				t.Errorf("LooksLikeMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "go source",
			content: "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n",
			want:    "go",
		},
		{
			name:    "json object",
			content: `{"name": "clipd", "ok": true}`,
			want:    "json",
		},
		{
			name:    "json array",
			content: `[1, 2, 3]`,
			want:    "json",
		},
		{
			name:    "invalid json braces",
			content: "{not json}",
			want:    "",
		},
		{
			name:    "prose",
			content: "nothing code-like here",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.content); got != tt.want {
				t.Errorf("DetectLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectDiagram(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "mermaid flowchart",
			content: "graph TD\n  A --> B\n",
			want:    "mermaid",
		},
		{
			name:    "mermaid sequence",
			content: "sequenceDiagram\n  Alice->>Bob: hello\n",
			want:    "mermaid",
		},
		{
			name:    "drawio export",
			content: `<mxfile host="app.diagrams.net"><diagram/></mxfile>`,
			want:    "drawio",
		},
		{
			name:    "prose mentioning graph",
			content: "the graph of revenue over time",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDiagram(tt.content); got != tt.want {
				t.Errorf("DetectDiagram() = %q, want %q", got, tt.want)
			}
		})
	}
}
