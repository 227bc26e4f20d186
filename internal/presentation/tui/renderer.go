package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PathsReport describes the resolver configuration shown by `pathfinder paths`.
type PathsReport struct {
	FilePathEnv string
	FilePaths   []string
	Suffixes    []string
	LogPath     string
	TmpPath     string
}

// Markdown renders the report as a markdown document.
func (r PathsReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Search paths\n\n")
	if r.FilePathEnv != "" {
		fmt.Fprintf(&b, "Environment variable: `%s`\n\n", r.FilePathEnv)
	}

	if len(r.FilePaths) == 0 {
		b.WriteString("_No search paths configured._\n\n")
	} else {
		b.WriteString("| # | Directory |\n|---|---|\n")
		for i, p := range r.FilePaths {
			fmt.Fprintf(&b, "| %d | `%s` |\n", i+1, escapeCell(p))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Suffixes\n\n")
	if len(r.Suffixes) == 0 {
		b.WriteString("_None._\n\n")
	} else {
		for _, s := range r.Suffixes {
			fmt.Fprintf(&b, "- `%s`\n", s)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Locations\n\n")
	fmt.Fprintf(&b, "- Log path: `%s`\n", r.LogPath)
	fmt.Fprintf(&b, "- Temp path: `%s`\n", r.TmpPath)
	return b.String()
}

// Plain renders the report as one search path per line, suitable for scripts.
func (r PathsReport) Plain() string {
	if len(r.FilePaths) == 0 {
		return ""
	}
	return strings.Join(r.FilePaths, "\n") + "\n"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
