// Package layout draws the chrome around every screen: a title bar, the
// key hint footer and the "terminal too small" notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/ui/theme"
)

// Smallest terminal a worksheet question and its options fit in.
const (
	MinWidth  = 60
	MinHeight = 18
)

const brand = "edusheet"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Cửa sổ terminal quá nhỏ!\n\nHãy mở rộng tối thiểu %d x %d\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// Frame is the chrome for one screen.
type Frame struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render draws the frame at width x height. body is called with the space
// left between header and footer.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	header := RenderHeader(f.Title, f.Status, width)
	footer := RenderFooter(f.Hints, width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// RenderHeader renders a one-line title bar over a rule. The brand sits on
// the left, the title in the middle and status on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status + " ")

	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)

	bar := lipgloss.NewStyle().
		Background(theme.BgCard).
		Width(width).
		MaxWidth(width).
		Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return bar + "\n" + rule
}

// RenderFooter renders key hints under a rule, wrapping onto extra lines
// when they do not fit the width.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	line := " "
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if line != " " && lipgloss.Width(line)+3+lipgloss.Width(part) > width {
			lines = append(lines, line)
			line = " "
		}
		if line != " " {
			line += "   "
		}
		line += part
	}
	lines = append(lines, line)

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return rule + "\n" + strings.Join(lines, "\n")
}
