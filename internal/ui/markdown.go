package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a bead description with glamour. Without color the
// text is returned unchanged, with a trailing newline.
func RenderMarkdown(markdown string) string {
	plain := strings.TrimRight(markdown, "\n") + "\n"
	if !ShouldUseColor() {
		return plain
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(Width()),
	)
	if err != nil {
		return plain
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return plain
	}
	return rendered
}
