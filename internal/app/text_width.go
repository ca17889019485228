package app

import "github.com/charmbracelet/x/ansi"

// stringWidth measures the display width of styled text, ignoring ANSI
// escape sequences.
func stringWidth(text string) int {
	return ansi.StringWidth(text)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Cut(text, 0, width-1) + "…"
}
