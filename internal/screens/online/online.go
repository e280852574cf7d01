// Package online is the learner-facing runner for a shared worksheet.
package online

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/screen"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/invalid"
	sess "github.com/abhisek/edusheet/internal/session"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/layout"
	"github.com/abhisek/edusheet/internal/worksheet"
)

const answerPlaceholder = "Nhập câu trả lời..."

// OnlineScreen runs one decoded worksheet through the answering and
// submitted phases.
type OnlineScreen struct {
	session *sess.Session
	log     logrus.FieldLogger

	current int
	pickers []components.OptionList
	inputs  []components.TextInput

	// offset scrolls the results view.
	offset  int
	ticking bool
	errMsg  string
}

var _ screen.Screen = (*OnlineScreen)(nil)
var _ screen.KeyHintProvider = (*OnlineScreen)(nil)
var _ screen.EscapeHandler = (*OnlineScreen)(nil)
var _ screen.StatusProvider = (*OnlineScreen)(nil)

// New creates a runner for p.
func New(p *share.Projection, deps screens.Deps) *OnlineScreen {
	s := &OnlineScreen{
		session: sess.New(p, sess.WithClock(deps.Clock())),
		log:     deps.Log(),
	}
	s.resetInputs()
	return s
}

// Open decodes a link or bare token and returns the runner, or the
// invalid-link screen when decoding fails. home is passed to the invalid
// screen; see invalid.New.
func Open(input string, deps screens.Deps, home func() screen.Screen) screen.Screen {
	p, err := share.Decode(share.ResolveToken(input))
	if err != nil {
		deps.Log().WithError(err).Debug("shared link rejected")
		return invalid.New(home)
	}
	return New(p, deps)
}

// Session exposes the runner state.
func (s *OnlineScreen) Session() *sess.Session { return s.session }

func (s *OnlineScreen) resetInputs() {
	qs := s.session.Questions()
	s.pickers = make([]components.OptionList, len(qs))
	s.inputs = make([]components.TextInput, len(qs))
	for i, q := range qs {
		if usesOptions(q) {
			s.pickers[i] = components.NewOptionList(q.Options)
			continue
		}
		in := components.NewTextInput(answerPlaceholder, 0)
		in.Blur()
		s.inputs[i] = in
	}
	s.current = 0
	s.offset = 0
}

// usesOptions reports whether q is answered by picking an option.
func usesOptions(q worksheet.Question) bool {
	return q.Type.HasOptions() && len(q.Options) > 0
}

func (s *OnlineScreen) Init() tea.Cmd {
	s.session.Start()
	s.ticking = true
	return tea.Batch(tickCmd(), s.focus(0))
}

func (s *OnlineScreen) Title() string {
	return "Làm bài trực tuyến"
}

func (s *OnlineScreen) HandlesEscape() bool {
	return s.session.ConfirmPending()
}

func (s *OnlineScreen) Status() string {
	return "⏱ " + sess.FormatDuration(s.session.Elapsed())
}

func (s *OnlineScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session.ConfirmPending():
		return []layout.KeyHint{
			{Key: "Y", Description: "Nộp bài"},
			{Key: "N", Description: "Tiếp tục làm"},
		}
	case s.session.Submitted():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Cuộn"},
			{Key: "R", Description: "Làm lại"},
			{Key: "Esc", Description: "Thoát"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Câu sau"},
		{Key: "Shift+Tab", Description: "Câu trước"},
	}
	if s.current < len(s.pickers) && len(s.pickers[s.current].Options) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓/1-4", Description: "Chọn"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Nộp bài"})
}

func (s *OnlineScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.session.Submitted() {
			s.ticking = false
			return s, nil
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward cursor blinks and pastes to the focused input.
	if !s.session.Submitted() && s.isTextQuestion(s.current) {
		return s, s.updateInput(msg)
	}
	return s, nil
}

func (s *OnlineScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session.ConfirmPending() {
		switch key {
		case "y", "Y":
			return s.confirmSubmit()
		case "n", "N", "esc":
			s.session.CancelSubmit()
		}
		return s, nil
	}

	if s.session.Submitted() {
		switch key {
		case "r", "R":
			return s.restart()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset -= 10
			if s.offset < 0 {
				s.offset = 0
			}
		case "pgdown":
			s.offset += 10
		case "home", "g":
			s.offset = 0
		}
		return s, nil
	}

	s.errMsg = ""
	switch key {
	case "tab":
		return s, s.focus(s.current + 1)
	case "shift+tab":
		return s, s.focus(s.current - 1)
	case "ctrl+s":
		if err := s.session.RequestSubmit(); err != nil {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	if s.isTextQuestion(s.current) {
		if key == "enter" {
			return s, s.focus(s.current + 1)
		}
		return s, s.updateInput(msg)
	}

	picker, changed := s.pickers[s.current].Update(msg)
	s.pickers[s.current] = picker
	if changed {
		s.setAnswer(s.current, picker.Value())
	}
	return s, nil
}

func (s *OnlineScreen) isTextQuestion(i int) bool {
	return i >= 0 && i < len(s.pickers) && len(s.pickers[i].Options) == 0
}

func (s *OnlineScreen) updateInput(msg tea.Msg) tea.Cmd {
	before := s.inputs[s.current].Value()
	var cmd tea.Cmd
	s.inputs[s.current], cmd = s.inputs[s.current].Update(msg)
	if after := s.inputs[s.current].Value(); after != before {
		s.setAnswer(s.current, after)
	}
	return cmd
}

func (s *OnlineScreen) setAnswer(i int, value string) {
	q := s.session.Questions()[i]
	if err := s.session.SetAnswer(q.ID, value); err != nil {
		s.log.WithError(err).WithField("question", q.ID).Warn("answer not recorded")
	}
}

// focus moves to question i, clamped to the list, and moves keyboard focus
// to its text input if it has one.
func (s *OnlineScreen) focus(i int) tea.Cmd {
	n := len(s.session.Questions())
	if n == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	if s.isTextQuestion(s.current) {
		s.inputs[s.current].Blur()
	}
	s.current = i
	if s.isTextQuestion(i) {
		return s.inputs[i].Focus()
	}
	return nil
}

func (s *OnlineScreen) confirmSubmit() (screen.Screen, tea.Cmd) {
	res, err := s.session.ConfirmSubmit()
	if err != nil {
		if !errors.Is(err, sess.ErrSubmitted) {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	if s.isTextQuestion(s.current) {
		s.inputs[s.current].Blur()
	}
	for i, d := range res.Details {
		if len(s.pickers[i].Options) > 0 {
			s.pickers[i].Reveal = d.Question.CorrectAnswer
		}
	}
	s.offset = 0
	s.log.WithFields(logrus.Fields{
		"correct":    res.Correct,
		"total":      res.Total,
		"percentage": res.Percentage,
		"elapsed":    s.session.Elapsed().String(),
	}).Info("worksheet submitted")
	return s, nil
}

func (s *OnlineScreen) restart() (screen.Screen, tea.Cmd) {
	s.session.Restart()
	s.resetInputs()
	s.session.Start()

	cmds := []tea.Cmd{s.focus(0)}
	if !s.ticking {
		s.ticking = true
		cmds = append(cmds, tickCmd())
	}
	return s, tea.Batch(cmds...)
}
