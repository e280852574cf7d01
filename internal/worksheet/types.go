package worksheet

import "time"

// QuestionType identifies how a question is presented and whether it can be
// graded automatically.
type QuestionType string

const (
	TypeMultipleChoice  QuestionType = "multiple_choice"
	TypeFillBlank       QuestionType = "fill_blank"
	TypeMatching        QuestionType = "matching"
	TypeTrueFalse       QuestionType = "true_false"
	TypeShortAnswer     QuestionType = "short_answer"
	TypeFindError       QuestionType = "find_error"
	TypeSituation       QuestionType = "situation"
	TypeMindMap         QuestionType = "mind_map"
	TypeRolePlay        QuestionType = "role_play"
	TypeChartAnalysis   QuestionType = "chart_analysis"
	TypeCompare         QuestionType = "compare"
	TypeExtendedWriting QuestionType = "extended_writing"
	TypeMiniProject     QuestionType = "mini_project"
	TypeCardMatch       QuestionType = "card_match"
	TypeSelfAssess      QuestionType = "self_assess"
)

// AllTypes lists every question type in display order.
var AllTypes = []QuestionType{
	TypeMultipleChoice,
	TypeFillBlank,
	TypeMatching,
	TypeTrueFalse,
	TypeShortAnswer,
	TypeFindError,
	TypeSituation,
	TypeMindMap,
	TypeRolePlay,
	TypeChartAnalysis,
	TypeCompare,
	TypeExtendedWriting,
	TypeMiniProject,
	TypeCardMatch,
	TypeSelfAssess,
}

// Valid reports whether t is one of the known type tags.
func (t QuestionType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeTrueFalse
}

// HasPairs reports whether questions of this type carry matching pairs.
func (t QuestionType) HasPairs() bool {
	return t == TypeMatching || t == TypeCardMatch
}

// Difficulty is the coarse difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// GradeLevel is the school stage a worksheet targets.
type GradeLevel string

const (
	GradePrimary    GradeLevel = "primary"
	GradeSecondary  GradeLevel = "secondary"
	GradeHighSchool GradeLevel = "high_school"
)

// Valid reports whether g is a known grade level.
func (g GradeLevel) Valid() bool {
	return g == GradePrimary || g == GradeSecondary || g == GradeHighSchool
}

// MatchingPair is one left/right row of a matching or card-match question.
type MatchingPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// Question is one assessable item on a worksheet.
type Question struct {
	// ID is assigned at creation and never reused.
	ID string `json:"id" validate:"required"`

	// Content is the prompt text. It may contain $...$ math markup.
	Content string `json:"content" validate:"required"`

	Type QuestionType `json:"type" validate:"required,questiontype"`

	// Options is populated only for multiple_choice and true_false.
	Options []string `json:"options,omitempty"`

	// CorrectAnswer is an option string for multiple_choice/true_false, the
	// exact text for fill_blank and free text for everything else.
	CorrectAnswer string `json:"correctAnswer"`

	Explanation string `json:"explanation,omitempty"`

	Difficulty Difficulty `json:"difficulty" validate:"required,difficulty"`

	// MatchingPairs is populated only for matching and card_match.
	MatchingPairs []MatchingPair `json:"matchingPairs,omitempty" validate:"dive"`
}

// AnswerKeyItem is one row of the answer key. QuestionIndex is 1-based.
type AnswerKeyItem struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// Worksheet is a named, ordered collection of questions with metadata.
type Worksheet struct {
	ID          string          `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	SubjectID   string          `json:"subjectId"`
	SubjectName string          `json:"subjectName" validate:"required"`
	GradeLevel  GradeLevel      `json:"gradeLevel" validate:"required,gradelevel"`
	SchoolName  string          `json:"schoolName,omitempty"`
	ClassName   string          `json:"className,omitempty"`
	Questions   []Question      `json:"questions" validate:"required,min=1,dive"`
	AnswerKey   []AnswerKeyItem `json:"answerKey"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// QuestionByID returns the question with the given id, or nil.
func (w *Worksheet) QuestionByID(id string) *Question {
	for i := range w.Questions {
		if w.Questions[i].ID == id {
			return &w.Questions[i]
		}
	}
	return nil
}
