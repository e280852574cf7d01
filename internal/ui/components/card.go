package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for screen sections.
func ContentWidth(frameWidth int) int {
	// Leave room for border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Centered places content in the middle of the given area.
func Centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// Dialog renders a modal confirmation box.
func Dialog(message string, buttons ...Button) string {
	return theme.Dialog.Render(message + "\n\n" + ButtonRow(buttons...))
}

// Window returns the lines [offset, offset+height) of content, clamping
// offset so the last page stays full. It returns the clamped offset.
func Window(content string, offset, height int) (string, int) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if height <= 0 {
		return "", 0
	}
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n"), offset
}
