package questiongen

import (
	"slices"
	"strings"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// StructuralValidator checks the shape each question type needs to be
// answerable and gradable.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *worksheet.Question, _ []worksheet.Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Content) == "" {
		return fail("content is empty")
	}
	if !q.Type.Valid() {
		return fail("unknown type " + string(q.Type))
	}
	if !q.Difficulty.Valid() {
		return fail("unknown difficulty " + string(q.Difficulty))
	}

	switch q.Type {
	case worksheet.TypeMultipleChoice:
		if len(q.Options) < 2 {
			return fail("multiple_choice needs at least 2 options")
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fail("correctAnswer is not one of the options")
		}
	case worksheet.TypeTrueFalse:
		if !slices.Equal(q.Options, []string{worksheet.OptionTrue, worksheet.OptionFalse}) {
			return fail(`true_false options must be ["Đúng", "Sai"]`)
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fail("correctAnswer must be Đúng or Sai")
		}
	case worksheet.TypeMatching, worksheet.TypeCardMatch:
		if len(q.MatchingPairs) < 2 {
			return fail(string(q.Type) + " needs at least 2 pairs")
		}
	case worksheet.TypeFillBlank:
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return fail("fill_blank needs a correctAnswer")
		}
	}
	return nil
}

// DuplicateValidator drops questions whose text repeats an earlier one in
// the same batch.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *worksheet.Question, accepted []worksheet.Question) *ValidationError {
	key := dedupKey(q.Content)
	for _, prev := range accepted {
		if dedupKey(prev.Content) == key {
			return &ValidationError{Validator: v.Name(), Message: "duplicate question"}
		}
	}
	return nil
}

func dedupKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeQuestion trims text fields, drops empty options and pairs, and
// removes options or pairs the type does not use.
func normalizeQuestion(q *worksheet.Question) {
	q.Content = strings.TrimSpace(q.Content)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	q.Explanation = strings.TrimSpace(q.Explanation)

	var opts []string
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts

	var pairs []worksheet.MatchingPair
	for _, p := range q.MatchingPairs {
		p.Left, p.Right = strings.TrimSpace(p.Left), strings.TrimSpace(p.Right)
		if p.Left != "" && p.Right != "" {
			pairs = append(pairs, p)
		}
	}
	q.MatchingPairs = pairs

	if q.Type == worksheet.TypeTrueFalse && len(q.Options) == 0 {
		q.Options = []string{worksheet.OptionTrue, worksheet.OptionFalse}
	}
	if !q.Type.HasOptions() {
		q.Options = nil
	}
	if !q.Type.HasPairs() {
		q.MatchingPairs = nil
	}
}
