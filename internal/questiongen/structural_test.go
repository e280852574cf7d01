package questiongen

import (
	"testing"

	"github.com/abhisek/edusheet/internal/worksheet"
)

func TestStructuralValidator(t *testing.T) {
	pairs := []worksheet.MatchingPair{{Left: "a", Right: "1"}, {Left: "b", Right: "2"}}
	tf := []string{worksheet.OptionTrue, worksheet.OptionFalse}

	tests := []struct {
		name    string
		q       worksheet.Question
		wantErr bool
	}{
		{"valid mc", worksheet.Question{Content: "x", Type: worksheet.TypeMultipleChoice, Difficulty: worksheet.DifficultyEasy, Options: []string{"1", "2"}, CorrectAnswer: "2"}, false},
		{"mc one option", worksheet.Question{Content: "x", Type: worksheet.TypeMultipleChoice, Difficulty: worksheet.DifficultyEasy, Options: []string{"1"}, CorrectAnswer: "1"}, true},
		{"mc answer missing", worksheet.Question{Content: "x", Type: worksheet.TypeMultipleChoice, Difficulty: worksheet.DifficultyEasy, Options: []string{"1", "2"}, CorrectAnswer: "3"}, true},
		{"valid tf", worksheet.Question{Content: "x", Type: worksheet.TypeTrueFalse, Difficulty: worksheet.DifficultyHard, Options: tf, CorrectAnswer: worksheet.OptionFalse}, false},
		{"tf wrong options", worksheet.Question{Content: "x", Type: worksheet.TypeTrueFalse, Difficulty: worksheet.DifficultyHard, Options: []string{"True", "False"}, CorrectAnswer: "True"}, true},
		{"tf bad answer", worksheet.Question{Content: "x", Type: worksheet.TypeTrueFalse, Difficulty: worksheet.DifficultyHard, Options: tf, CorrectAnswer: "Có"}, true},
		{"valid matching", worksheet.Question{Content: "x", Type: worksheet.TypeMatching, Difficulty: worksheet.DifficultyMedium, MatchingPairs: pairs}, false},
		{"card match one pair", worksheet.Question{Content: "x", Type: worksheet.TypeCardMatch, Difficulty: worksheet.DifficultyMedium, MatchingPairs: pairs[:1]}, true},
		{"fill blank no answer", worksheet.Question{Content: "x ___", Type: worksheet.TypeFillBlank, Difficulty: worksheet.DifficultyMedium}, true},
		{"open answer may be empty", worksheet.Question{Content: "Viết đoạn văn", Type: worksheet.TypeExtendedWriting, Difficulty: worksheet.DifficultyMedium}, false},
		{"empty content", worksheet.Question{Content: " ", Type: worksheet.TypeShortAnswer, Difficulty: worksheet.DifficultyMedium, CorrectAnswer: "x"}, true},
		{"unknown type", worksheet.Question{Content: "x", Type: "essay", Difficulty: worksheet.DifficultyMedium}, true},
		{"unknown difficulty", worksheet.Question{Content: "x", Type: worksheet.TypeShortAnswer, Difficulty: "extreme"}, true},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.q, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Validator != "structural" {
				t.Errorf("unexpected validator name %q", err.Validator)
			}
		})
	}
}

func TestDuplicateValidator(t *testing.T) {
	v := &DuplicateValidator{}
	accepted := []worksheet.Question{{Content: "Tính  2 + 2"}}

	if err := v.Validate(&worksheet.Question{Content: "tính 2 + 2"}, accepted); err == nil {
		t.Error("expected duplicate to be rejected")
	}
	if err := v.Validate(&worksheet.Question{Content: "Tính 3 + 3"}, accepted); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.Validate(&worksheet.Question{Content: "Tính 2 + 2"}, nil); err != nil {
		t.Errorf("first question cannot be a duplicate: %v", err)
	}
}

func TestNormalizeQuestion(t *testing.T) {
	q := worksheet.Question{
		Content:       "  Chọn đáp án  ",
		Type:          worksheet.TypeMultipleChoice,
		Options:       []string{" A ", "", "B"},
		CorrectAnswer: " A",
		MatchingPairs: []worksheet.MatchingPair{{Left: "x", Right: "y"}},
	}
	normalizeQuestion(&q)

	if q.Content != "Chọn đáp án" || q.CorrectAnswer != "A" {
		t.Errorf("text not trimmed: %+v", q)
	}
	if len(q.Options) != 2 || q.Options[0] != "A" || q.Options[1] != "B" {
		t.Errorf("unexpected options: %v", q.Options)
	}
	if q.MatchingPairs != nil {
		t.Errorf("multiple choice should drop pairs: %v", q.MatchingPairs)
	}

	m := worksheet.Question{
		Type:          worksheet.TypeMatching,
		MatchingPairs: []worksheet.MatchingPair{{Left: "a", Right: "1"}, {Left: " ", Right: "2"}},
	}
	normalizeQuestion(&m)
	if len(m.MatchingPairs) != 1 {
		t.Errorf("expected blank pair dropped, got %v", m.MatchingPairs)
	}
}
