package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/library"
	"github.com/abhisek/edusheet/internal/screens/openlink"
	"github.com/abhisek/edusheet/internal/ui/components"
)

// statsLoadedMsg carries the library counts shown on the home screen.
type statsLoadedMsg struct {
	Worksheets int
	Questions  int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       screens.Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool

	worksheets  int
	questions   int
	statsLoaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	menuLabels := []string{"PHIẾU CỦA TÔI", "MỞ LINK BÀI TẬP", "THOÁT"}
	disabled := map[int]bool{0: deps.Worksheets == nil}

	items := []components.MenuItem{
		{Label: menuLabels[0], Disabled: disabled[0], Action: func() tea.Cmd {
			return router.Push(library.New(deps))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return router.Push(openlink.New(deps))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Worksheets
	if repo == nil {
		return nil
	}
	log := h.deps.Log()
	return func() tea.Msg {
		list, err := repo.List(context.Background())
		if err != nil {
			log.WithError(err).Warn("load library stats")
			return nil
		}
		msg := statsLoadedMsg{Worksheets: len(list)}
		for _, ws := range list {
			msg.Questions += len(ws.Questions)
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.worksheets = msg.Worksheets
		h.questions = msg.Questions
		h.statsLoaded = true
		return h, nil
	case screen.RefreshMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if h.deps.Worksheets != nil {
		sections = append(sections, renderStatsBar(h.worksheets, h.questions, h.statsLoaded, cw))
	}

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if !h.deps.LLMConfigured {
		sections = append(sections, renderLLMBanner(cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}
