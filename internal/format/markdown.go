package format

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the wrap width used when the caller passes 0.
const DefaultWordWrap = 100

// RenderMarkdown renders md for a terminal. Style follows the terminal
// background.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWordWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}

// RenderMarkdownPlain renders with the no-color style, for output that is
// not a terminal.
func RenderMarkdownPlain(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWordWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}
