package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWrap = 80

// renderMarkdown renders a task or project description for the terminal.
// Plain text is returned unchanged when color is off or rendering fails.
func renderMarkdown(md string) string {
	if !colorEnabled || strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
