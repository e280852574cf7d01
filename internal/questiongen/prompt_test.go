package questiongen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/abhisek/edusheet/internal/worksheet"
)

func TestBuildUserMessage(t *testing.T) {
	in := Input{
		Content:    "Chiến dịch Điện Biên Phủ",
		Subject:    worksheet.Subject{ID: "history", Name: "Lịch sử"},
		Grade:      worksheet.GradeSecondary,
		Types:      []worksheet.QuestionType{worksheet.TypeTrueFalse, worksheet.TypeCardMatch},
		Count:      8,
		Difficulty: worksheet.DifficultyHard,
		Mode:       ModeChangeNumbers,
		Language:   LanguageEnglish,
	}
	msg := buildUserMessage(in)

	wants := []string{
		"Hãy tạo 8 câu hỏi",
		"Môn học: Lịch sử",
		"Chiến dịch Điện Biên Phủ",
		ModeChangeNumbers.Instruction(),
		"English",
		`["Đúng", "Sai"]`,
		"matchingPairs",
		"true_false, card_match",
		`"hard"`,
	}
	for _, w := range wants {
		if !strings.Contains(msg, w) {
			t.Errorf("prompt missing %q", w)
		}
	}
	if strings.Contains(msg, "Với trắc nghiệm") {
		t.Error("prompt includes rules for a type that was not requested")
	}
}

func TestBuildSuggestMessage(t *testing.T) {
	long := strings.Repeat("ă", suggestContentLimit+100)
	msg := buildSuggestMessage(long, worksheet.Subject{Name: "Ngữ văn"})

	if strings.Contains(msg, strings.Repeat("ă", suggestContentLimit+1)) {
		t.Error("content was not truncated")
	}
	for _, typ := range worksheet.AllTypes {
		if !strings.Contains(msg, "- "+string(typ)+":") {
			t.Errorf("suggestion prompt missing type %s", typ)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("Tiếng Việt", 5); got != "Tiếng" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := truncateRunes("ab", 5); got != "ab" {
		t.Errorf("short strings pass through, got %q", got)
	}
	if !utf8.ValidString(truncateRunes("đđđđ", 2)) {
		t.Error("truncation split a rune")
	}
}

func TestContentModeInstructions(t *testing.T) {
	modes := []ContentMode{ModeExact, ModeChangeContext, ModeChangeNumbers, ModeChangeBoth}
	seen := map[string]bool{}
	for _, m := range modes {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
		seen[m.Instruction()] = true
	}
	if len(seen) != len(modes) {
		t.Error("each mode should have its own instruction")
	}
	if ContentMode("remix").Valid() {
		t.Error("unknown mode reported valid")
	}
}
