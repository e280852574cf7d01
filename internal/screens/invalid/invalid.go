// Package invalid is the single screen shown for any link that cannot be
// decoded.
package invalid

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/ui/theme"
)

const (
	Heading = "Link không hợp lệ"
	Body    = "Link bài tập bị lỗi hoặc không đầy đủ.\nHãy kiểm tra lại link hoặc xin giáo viên gửi lại."
)

// InvalidScreen reports an undecodable link. It never shows why decoding
// failed.
type InvalidScreen struct {
	home func() screen.Screen
}

var _ screen.Screen = (*InvalidScreen)(nil)
var _ screen.KeyHintProvider = (*InvalidScreen)(nil)

// New creates the screen. home builds the screen that replaces this one
// when it is the bottom of the stack; pass nil to pop back instead.
func New(home func() screen.Screen) *InvalidScreen {
	return &InvalidScreen{home: home}
}

func (s *InvalidScreen) Init() tea.Cmd {
	return nil
}

func (s *InvalidScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "q":
		if s.home != nil {
			return s, router.Replace(s.home())
		}
		return s, router.Pop()
	}
	return s, nil
}

func (s *InvalidScreen) View(width, height int) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("✗ "+Heading) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(Body)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (s *InvalidScreen) Title() string {
	return Heading
}

func (s *InvalidScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Về trang chủ"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}
