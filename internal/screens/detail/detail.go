// Package detail shows one saved worksheet.
package detail

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/online"
	"github.com/abhisek/edusheet/internal/screens/sharelink"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/ui/theme"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	Err error
}

// DetailScreen renders a worksheet with an optional answer key.
type DetailScreen struct {
	deps          screens.Deps
	ws            *worksheet.Worksheet
	showAnswers   bool
	confirmDelete bool
	offset        int
	errMsg        string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)
var _ screen.EscapeHandler = (*DetailScreen)(nil)

// New creates the screen for ws.
func New(ws *worksheet.Worksheet, deps screens.Deps) *DetailScreen {
	return &DetailScreen{deps: deps, ws: ws}
}

func (s *DetailScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailScreen) Title() string {
	return "Chi tiết phiếu"
}

func (s *DetailScreen) HandlesEscape() bool {
	return s.confirmDelete
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Xoá"},
			{Key: "N", Description: "Huỷ"},
		}
	}
	answers := "Hiện đáp án"
	if s.showAnswers {
		answers = "Ẩn đáp án"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Cuộn"},
		{Key: "A", Description: answers},
		{Key: "S", Description: "Chia sẻ"},
		{Key: "P", Description: "Làm thử"},
		{Key: "X", Description: "Xoá"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Không xoá được phiếu: %v", msg.Err)
			return s, nil
		}
		return s, router.PopAndRefresh()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DetailScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			return s, s.deleteCmd()
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	s.errMsg = ""
	switch key {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "a":
		s.showAnswers = !s.showAnswers
	case "s":
		return s, router.Push(sharelink.New(s.ws, s.deps))
	case "p":
		return s.practice()
	case "x":
		if s.deps.Worksheets != nil && s.ws.ID != "" {
			s.confirmDelete = true
		}
	}
	return s, nil
}

// practice opens the worksheet through its own share link so the teacher
// sees exactly what a learner gets.
func (s *DetailScreen) practice() (screen.Screen, tea.Cmd) {
	link, err := share.BuildLink(s.deps.PublicURL, s.ws)
	if err != nil {
		s.errMsg = fmt.Sprintf("Không tạo được link: %v", err)
		return s, nil
	}
	return s, router.Push(online.Open(link.URL, s.deps, nil))
}

func (s *DetailScreen) deleteCmd() tea.Cmd {
	repo := s.deps.Worksheets
	id := s.ws.ID
	log := s.deps.Log()
	return func() tea.Msg {
		err := repo.Delete(context.Background(), id)
		if err != nil {
			log.WithError(err).WithField("worksheet", id).Error("delete worksheet")
		} else {
			log.WithField("worksheet", id).Info("worksheet deleted")
		}
		return deletedMsg{Err: err}
	}
}

func (s *DetailScreen) View(width, height int) string {
	if s.confirmDelete {
		msg := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("Xoá phiếu \"%s\"?", s.ws.Title)) +
			"\n" + theme.Hint.Render("Không thể hoàn tác.")
		return components.Centered(components.Dialog(msg,
			components.NewButton("Y", "Xoá", true),
			components.NewButton("N", "Huỷ", false),
		), width, height)
	}

	cw := components.ContentWidth(width)
	content := Render(s.ws, s.showAnswers, cw)
	if s.errMsg != "" {
		content = lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg) + "\n\n" + content
	}

	body, offset := components.Window(content, s.offset, height)
	s.offset = offset
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body)
}

// Render lays out a worksheet as text at content width cw.
func Render(ws *worksheet.Worksheet, showAnswers bool, cw int) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	wrap := lipgloss.NewStyle().Width(cw)

	var b strings.Builder
	if ws.SchoolName != "" {
		b.WriteString(center.Foreground(theme.TextDim).Render(strings.ToUpper(ws.SchoolName)))
		b.WriteString("\n")
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(ws.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("Môn: %s · Cấp: %s · %d câu", ws.SubjectName, ws.GradeLevel.Label(), len(ws.Questions))
	if ws.ClassName != "" {
		meta += " · " + ws.ClassName
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(meta))
	b.WriteString("\n")
	if len(ws.Tags) > 0 {
		b.WriteString(center.Foreground(theme.Secondary).Render("#" + strings.Join(ws.Tags, " #")))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	for i, q := range ws.Questions {
		head := fmt.Sprintf("Câu %d", i+1)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(head))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(q.Type.Label() + " · " + q.Difficulty.Label()))
		b.WriteString("\n")
		b.WriteString(wrap.Render(components.MathText(q.Content, lipgloss.NewStyle().Foreground(theme.Text))))
		b.WriteString("\n")
		for j, opt := range q.Options {
			b.WriteString(wrap.Foreground(theme.Text).Render(fmt.Sprintf("   %s. %s", components.OptionLabel(j), opt)))
			b.WriteString("\n")
		}
		for j, pair := range q.MatchingPairs {
			b.WriteString(wrap.Foreground(theme.Text).Render(fmt.Sprintf("   %d. %s  →  %c. %s", j+1, pair.Left, 'a'+j, pair.Right)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if showAnswers {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("ĐÁP ÁN"))
		b.WriteString("\n")
		key := ws.AnswerKey
		if len(key) == 0 {
			key = worksheet.BuildAnswerKey(ws.Questions)
		}
		for _, item := range key {
			line := fmt.Sprintf("Câu %d: %s", item.QuestionIndex, item.Answer)
			b.WriteString(wrap.Foreground(theme.Success).Render(line))
			b.WriteString("\n")
			if item.Explanation != "" {
				b.WriteString(wrap.Foreground(theme.TextDim).Italic(true).Render("   " + item.Explanation))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
