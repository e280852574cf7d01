// Package grading scores a learner's answers against a question list.
package grading

import (
	"math"
	"strings"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// AnswerSet maps question id to the learner's answer text.
type AnswerSet map[string]string

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Detail is the outcome for one question.
type Detail struct {
	Question   worksheet.Question `json:"question"`
	UserAnswer string             `json:"userAnswer"`
	Gradable   bool               `json:"gradable"`
	Correct    bool               `json:"correct"`
}

// Result is the score summary for one submission. It is derived and never
// persisted.
type Result struct {
	Total      int      `json:"total"`
	Correct    int      `json:"correct"`
	Percentage int      `json:"percentage"`
	Details    []Detail `json:"details"`
}

// IsGradable reports whether questions of type t are scored automatically.
func IsGradable(t worksheet.QuestionType) bool {
	switch t {
	case worksheet.TypeMultipleChoice, worksheet.TypeTrueFalse, worksheet.TypeFillBlank:
		return true
	}
	return false
}

// IsCorrect checks a trimmed answer against the question. Multiple choice
// and true/false compare exactly since the learner picks a literal option.
// Fill-blank ignores letter case only.
func IsCorrect(q worksheet.Question, answer string) bool {
	switch q.Type {
	case worksheet.TypeMultipleChoice, worksheet.TypeTrueFalse:
		return answer == q.CorrectAnswer
	case worksheet.TypeFillBlank:
		return strings.ToLower(answer) == strings.ToLower(q.CorrectAnswer)
	}
	return false
}

// Grade scores answers against questions. Ungradable questions appear in
// Details but count toward neither Total nor Correct.
func Grade(questions []worksheet.Question, answers AnswerSet) *Result {
	res := &Result{Details: make([]Detail, len(questions))}
	for i, q := range questions {
		answer := strings.TrimSpace(answers[q.ID])
		d := Detail{
			Question:   q,
			UserAnswer: answer,
			Gradable:   IsGradable(q.Type),
		}
		if d.Gradable {
			res.Total++
			d.Correct = IsCorrect(q, answer)
			if d.Correct {
				res.Correct++
			}
		}
		res.Details[i] = d
	}
	res.Percentage = Percentage(res.Correct, res.Total)
	return res
}

// Percentage returns round(correct/total*100), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
