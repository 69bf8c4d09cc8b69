package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// If glamour cannot be initialized the text is passed through unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(s string) (string, error) { return s, nil }
	}

	return func(markdown string) (string, error) {
		// Single newlines in bot copy are meant as line breaks.
		out, err := r.Render(strings.ReplaceAll(markdown, "\n", "  \n"))
		if err != nil {
			return markdown, err
		}
		return out, nil
	}
}
