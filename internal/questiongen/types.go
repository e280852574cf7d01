// Package questiongen turns teaching material into worksheet questions
// with a language model, and suggests which question types suit a text.
package questiongen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// ContentMode tells the model how closely to follow the source material.
type ContentMode string

const (
	ModeExact         ContentMode = "exact"
	ModeChangeContext ContentMode = "change_context"
	ModeChangeNumbers ContentMode = "change_numbers"
	ModeChangeBoth    ContentMode = "change_both"
)

// Valid reports whether m is a known mode.
func (m ContentMode) Valid() bool {
	switch m {
	case ModeExact, ModeChangeContext, ModeChangeNumbers, ModeChangeBoth:
		return true
	}
	return false
}

// Instruction is the prompt sentence for the mode.
func (m ContentMode) Instruction() string {
	switch m {
	case ModeChangeContext:
		return "Giữ nguyên DẠNG BÀI và CẤU TRÚC, nhưng THAY ĐỔI NGỮ CẢNH, tình huống, đối tượng sang chủ đề tương tự khác."
	case ModeChangeNumbers:
		return "Giữ nguyên NGỮ CẢNH và CẤU TRÚC câu hỏi, nhưng THAY ĐỔI SỐ LIỆU, con số, dữ kiện."
	case ModeChangeBoth:
		return "THAY ĐỔI CẢ NGỮ CẢNH LẪN SỐ LIỆU để tạo bài tập hoàn toàn mới nhưng cùng dạng và độ khó tương đương."
	default:
		return "Tạo câu hỏi BÁM SÁT nội dung gốc, giữ nguyên số liệu, ngữ cảnh và chi tiết như trong tài liệu."
	}
}

// Language is the language questions are written in.
type Language string

const (
	LanguageVietnamese Language = "vi"
	LanguageEnglish    Language = "en"
	LanguageFrench     Language = "fr"
)

// PromptName is how the language is named in the prompt.
func (l Language) PromptName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageFrench:
		return "Français"
	default:
		return "Tiếng Việt (có dấu đầy đủ)"
	}
}

// MaxCount caps the number of questions requested in one call.
const MaxCount = 50

// Input describes one generation request.
type Input struct {
	// Content is the source material or topic.
	Content    string
	Subject    worksheet.Subject
	Grade      worksheet.GradeLevel
	Types      []worksheet.QuestionType
	Count      int
	Difficulty worksheet.Difficulty
	Mode       ContentMode
	Language   Language
}

// ErrEmptyContent is returned when there is nothing to generate from.
var ErrEmptyContent = errors.New("questiongen: content is empty")

// normalize fills defaults and rejects requests that cannot be sent.
func (in *Input) normalize() error {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return ErrEmptyContent
	}
	if len(in.Types) == 0 {
		in.Types = []worksheet.QuestionType{worksheet.TypeMultipleChoice}
	}
	for _, t := range in.Types {
		if !t.Valid() {
			return fmt.Errorf("questiongen: unknown question type %q", t)
		}
	}
	if in.Count <= 0 {
		in.Count = 10
	}
	if in.Count > MaxCount {
		return fmt.Errorf("questiongen: count %d exceeds %d", in.Count, MaxCount)
	}
	if in.Difficulty == "" {
		in.Difficulty = worksheet.DifficultyMedium
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("questiongen: unknown difficulty %q", in.Difficulty)
	}
	if in.Mode == "" {
		in.Mode = ModeExact
	}
	if !in.Mode.Valid() {
		return fmt.Errorf("questiongen: unknown content mode %q", in.Mode)
	}
	if in.Language == "" {
		in.Language = LanguageVietnamese
	}
	return nil
}
