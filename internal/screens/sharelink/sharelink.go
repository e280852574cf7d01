// Package sharelink shows the share link and QR code for a worksheet.
package sharelink

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/ui/theme"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// ShareScreen renders a worksheet's link. The link is built once on
// creation.
type ShareScreen struct {
	title  string
	link   share.Link
	code   string
	note   string
	errMsg string
	offset int
}

var _ screen.Screen = (*ShareScreen)(nil)
var _ screen.KeyHintProvider = (*ShareScreen)(nil)

// New builds the link for ws against deps.PublicURL.
func New(ws *worksheet.Worksheet, deps screens.Deps) *ShareScreen {
	s := &ShareScreen{title: ws.Title}

	link, err := share.BuildLink(deps.PublicURL, ws)
	if err != nil {
		deps.Log().WithError(err).WithField("worksheet", ws.ID).Error("build share link")
		s.errMsg = fmt.Sprintf("Không tạo được link: %v", err)
		return s
	}
	s.link = link

	code, err := share.TerminalCode(link.URL)
	switch {
	case errors.Is(err, share.ErrLinkTooLongForCode):
		s.note = "Link quá dài để tạo mã QR. Hãy gửi link trực tiếp."
	case err != nil:
		deps.Log().WithError(err).Warn("render QR code")
		s.note = "Không tạo được mã QR."
	default:
		s.code = code
	}
	return s
}

// Link returns the built link.
func (s *ShareScreen) Link() share.Link { return s.link }

func (s *ShareScreen) Init() tea.Cmd {
	return nil
}

func (s *ShareScreen) Title() string {
	return "Chia sẻ phiếu"
}

func (s *ShareScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Cuộn"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *ShareScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	}
	return s, nil
}

func (s *ShareScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).Render(s.title))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		body, _ := components.Window(b.String(), 0, height)
		return body
	}

	b.WriteString(theme.Hint.Render("Gửi link này cho học sinh để làm bài trực tuyến:"))
	b.WriteString("\n\n")
	// Links are not wrapped by width styling so terminals keep them
	// selectable as one piece.
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(s.link.URL))
	b.WriteString("\n")
	if w := s.link.Warning(); w != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ " + w))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if s.code != "" {
		b.WriteString(s.code)
	} else {
		b.WriteString(theme.Hint.Render(s.note))
	}

	body, offset := components.Window(b.String(), s.offset, height)
	s.offset = offset
	return body
}
