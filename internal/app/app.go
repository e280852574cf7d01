// Package app is the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusheet/internal/router"
	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/home"
	"github.com/abhisek/edusheet/internal/screens/online"
	"github.com/abhisek/edusheet/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Deps screens.Deps

	// Start is a share link, URL fragment or bare token to open directly
	// in the runner. Empty starts on the home screen.
	Start string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates the model and its initial screen stack.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	homeScreen := func() screen.Screen { return home.New(deps) }

	if opts.Start == "" {
		return AppModel{router: router.New(homeScreen())}
	}

	// Without a library the runner is the whole app; otherwise it sits on
	// top of home so esc leads back there.
	if deps.Worksheets == nil {
		return AppModel{router: router.New(online.Open(opts.Start, deps, homeScreen))}
	}
	return AppModel{router: router.New(homeScreen(), online.Open(opts.Start, deps, nil))}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.PopAndRefresh()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Chọn"},
			{Key: "Enter", Description: "Mở"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}

	frame := layout.Frame{Title: title, Status: status, Hints: hints}
	return frame.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
