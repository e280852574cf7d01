// Package library lists saved worksheets.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/detail"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/ui/theme"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// listLoadedMsg carries the result of loading the worksheet list.
type listLoadedMsg struct {
	Worksheets []worksheet.Worksheet
	Err        error
}

// LibraryScreen lists worksheets, most recently updated first.
type LibraryScreen struct {
	deps       screens.Deps
	worksheets []worksheet.Worksheet
	selected   int
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.StatusProvider = (*LibraryScreen)(nil)

// New creates the screen. The list loads on Init.
func New(deps screens.Deps) *LibraryScreen {
	return &LibraryScreen{deps: deps}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *LibraryScreen) Title() string {
	return "Phiếu của tôi"
}

func (s *LibraryScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return fmt.Sprintf("%d phiếu", len(s.worksheets))
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Mở"},
		{Key: "R", Description: "Tải lại"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *LibraryScreen) loadCmd() tea.Cmd {
	repo := s.deps.Worksheets
	if repo == nil {
		return func() tea.Msg { return listLoadedMsg{} }
	}
	return func() tea.Msg {
		list, err := repo.List(context.Background())
		return listLoadedMsg{Worksheets: list, Err: err}
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Log().WithError(msg.Err).Error("list worksheets")
			s.errMsg = fmt.Sprintf("Không tải được danh sách: %v", msg.Err)
			return s, nil
		}
		s.errMsg = ""
		s.worksheets = msg.Worksheets
		if s.selected >= len(s.worksheets) {
			s.selected = max(len(s.worksheets)-1, 0)
		}
		return s, nil

	case screen.RefreshMsg:
		return s, s.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.worksheets)-1 {
				s.selected++
			}
		case "r":
			return s, s.loadCmd()
		case "enter":
			if s.selected < len(s.worksheets) {
				ws := s.worksheets[s.selected]
				return s, router.Push(detail.New(&ws, s.deps))
			}
		}
	}
	return s, nil
}

func (s *LibraryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch {
	case !s.loaded:
		return components.Centered(theme.Hint.Render("Đang tải..."), width, height)
	case s.errMsg != "":
		return components.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width, height)
	case len(s.worksheets) == 0:
		return components.Centered(theme.Hint.Render(
			"Chưa có phiếu nào.\nTạo phiếu bằng lệnh `edusheet generate` hoặc thêm mẫu với `edusheet seed`."), width, height)
	}

	// Each entry takes three lines.
	visible := max(height/3, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.worksheets))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(s.renderItem(i, cw))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(b.String())
}

func (s *LibraryScreen) renderItem(i, cw int) string {
	ws := s.worksheets[i]
	title := ws.Title
	meta := fmt.Sprintf("%s · %s · %d câu · %s",
		ws.SubjectName, ws.GradeLevel.Label(), len(ws.Questions), ws.UpdatedAt.Local().Format("02/01/2006 15:04"))

	line := lipgloss.NewStyle().Width(cw)
	if i == s.selected {
		return line.Inherit(theme.Selected).Render("▸ "+title) + "\n" +
			line.Foreground(theme.TextDim).Render("  "+meta) + "\n"
	}
	return line.Inherit(theme.Unselected).Render("  "+title) + "\n" +
		line.Foreground(theme.Border).Render("  "+meta) + "\n"
}
