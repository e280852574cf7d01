// Package openlink lets a learner paste a shared link or token.
package openlink

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/online"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/ui/theme"
)

// OpenLinkScreen collects a link and hands it to the runner.
type OpenLinkScreen struct {
	deps   screens.Deps
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*OpenLinkScreen)(nil)
var _ screen.KeyHintProvider = (*OpenLinkScreen)(nil)

// New creates the screen.
func New(deps screens.Deps) *OpenLinkScreen {
	return &OpenLinkScreen{
		deps:  deps,
		input: components.NewTextInput("https://…/#/online/…", 0),
	}
}

func (s *OpenLinkScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *OpenLinkScreen) Title() string {
	return "Mở link bài tập"
}

func (s *OpenLinkScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Mở"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *OpenLinkScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			s.errMsg = "Hãy dán link hoặc mã bài tập."
			return s, nil
		}
		// The runner (or the invalid-link screen) takes this screen's place
		// so esc from it returns home.
		return s, router.Replace(online.Open(value, s.deps, nil))
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *OpenLinkScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 8)

	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Dán link phiếu bài tập hoặc mã chia sẻ:") +
		"\n\n" + s.input.View()
	if s.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return components.Centered(components.Card(body, cw), width, height)
}
