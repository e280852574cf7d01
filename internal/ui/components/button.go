package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/ui/theme"
)

// Button renders a key-labelled action, e.g. "[Y] Nộp bài".
type Button struct {
	Key     string
	Label   string
	Primary bool
}

// NewButton creates a new button.
func NewButton(key, label string, primary bool) Button {
	return Button{
		Key:     key,
		Label:   label,
		Primary: primary,
	}
}

// View renders the button.
func (b Button) View() string {
	text := "[" + b.Key + "] " + b.Label
	if b.Primary {
		return lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2).
			Render(text)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(text)
}

// ButtonRow joins buttons horizontally with a gap.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "   ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
