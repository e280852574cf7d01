package session

import (
	"fmt"
	"time"

	"github.com/abhisek/edusheet/internal/grading"
)

// Start begins the elapsed-time measurement. Calls after the first are
// no-ops until Restart.
func (s *Session) Start() {
	if s.startedAt.IsZero() && s.phase == PhaseAnswering {
		s.startedAt = s.now()
	}
}

// Answer returns the current answer for a question id.
func (s *Session) Answer(id string) string {
	return s.answers[id]
}

// Answers returns a copy of the answer set.
func (s *Session) Answers() grading.AnswerSet {
	return s.answers.Clone()
}

// AnsweredCount returns how many questions have a non-blank answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, v := range s.answers {
		if v != "" {
			n++
		}
	}
	return n
}

// SetAnswer records the learner's answer for a question.
func (s *Session) SetAnswer(id, value string) error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	s.answers[id] = value
	return nil
}

// RequestSubmit asks for confirmation before answers are frozen.
func (s *Session) RequestSubmit() error {
	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	s.confirmPending = true
	return nil
}

// CancelSubmit dismisses a pending confirmation.
func (s *Session) CancelSubmit() {
	s.confirmPending = false
}

// ConfirmSubmit freezes the answers, stops the clock and grades once. It
// requires a prior RequestSubmit.
func (s *Session) ConfirmSubmit() (*grading.Result, error) {
	if s.phase == PhaseSubmitted {
		return nil, ErrSubmitted
	}
	if !s.confirmPending {
		return nil, ErrConfirmationRequired
	}

	s.confirmPending = false
	s.phase = PhaseSubmitted
	if !s.startedAt.IsZero() {
		s.duration = s.now().Sub(s.startedAt)
	}
	s.result = grading.Grade(s.projection.Questions, s.answers)
	return s.result, nil
}

// Restart clears answers, grading and timing and returns to Answering.
func (s *Session) Restart() {
	s.phase = PhaseAnswering
	s.answers = make(grading.AnswerSet)
	s.confirmPending = false
	s.result = nil
	s.startedAt = time.Time{}
	s.duration = 0
}

// Elapsed returns the live elapsed time while answering and the frozen
// duration after submission.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseSubmitted {
		return s.duration
	}
	if s.startedAt.IsZero() {
		return 0
	}
	return s.now().Sub(s.startedAt)
}
