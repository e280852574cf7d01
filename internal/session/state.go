// Package session runs an online worksheet: it collects answers, submits
// them once after confirmation and caches the graded result until restart.
package session

import (
	"errors"
	"time"

	"github.com/abhisek/edusheet/internal/grading"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// Phase is the runner state.
type Phase int

const (
	PhaseAnswering Phase = iota // Answers are editable
	PhaseSubmitted              // Answers are frozen and graded
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// SubmitPrompt is shown before answers are frozen.
const SubmitPrompt = "Bạn có chắc muốn nộp bài? Không thể thay đổi sau khi nộp."

var (
	// ErrSubmitted is returned when answers change after submission.
	ErrSubmitted = errors.New("session: answers are frozen after submission")

	// ErrConfirmationRequired is returned when submission was not confirmed.
	ErrConfirmationRequired = errors.New("session: submission requires confirmation")

	// ErrUnknownQuestion is returned for answers to ids not in the worksheet.
	ErrUnknownQuestion = errors.New("session: unknown question")
)

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session holds the runtime state of one learner working through one
// decoded worksheet. It is not safe for concurrent use; the UI event loop
// owns it.
type Session struct {
	projection *share.Projection
	index      map[string]int

	phase          Phase
	answers        grading.AnswerSet
	confirmPending bool

	// startedAt is zero until Start is called.
	startedAt time.Time
	duration  time.Duration
	result    *grading.Result

	now func() time.Time
}

// New creates a session in the Answering phase.
func New(p *share.Projection, opts ...Option) *Session {
	s := &Session{
		projection: p,
		index:      make(map[string]int, len(p.Questions)),
		phase:      PhaseAnswering,
		answers:    make(grading.AnswerSet),
		now:        time.Now,
	}
	for i, q := range p.Questions {
		s.index[q.ID] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projection returns the worksheet being answered.
func (s *Session) Projection() *share.Projection { return s.projection }

// Questions returns the question list in display order.
func (s *Session) Questions() []worksheet.Question { return s.projection.Questions }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Submitted reports whether answers are frozen.
func (s *Session) Submitted() bool { return s.phase == PhaseSubmitted }

// ConfirmPending reports whether a submit confirmation is being shown.
func (s *Session) ConfirmPending() bool { return s.confirmPending }

// Result returns the cached grading result, or nil while answering.
func (s *Session) Result() *grading.Result { return s.result }
