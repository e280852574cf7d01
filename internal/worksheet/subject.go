package worksheet

import "fmt"

// Subject is a school subject a worksheet can belong to.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultSubjects is the built-in subject list.
var DefaultSubjects = []Subject{
	{ID: "math", Name: "Toán học"},
	{ID: "physics", Name: "Vật lý"},
	{ID: "chemistry", Name: "Hóa học"},
	{ID: "biology", Name: "Sinh học"},
	{ID: "literature", Name: "Ngữ văn"},
	{ID: "english", Name: "Tiếng Anh"},
	{ID: "history", Name: "Lịch sử"},
	{ID: "geography", Name: "Địa lý"},
	{ID: "informatics", Name: "Tin học"},
}

// LookupSubject finds a subject by id or display name. Unknown values are
// returned as a custom subject using the value for both fields.
func LookupSubject(value string) Subject {
	for _, s := range DefaultSubjects {
		if s.ID == value || s.Name == value {
			return s
		}
	}
	return Subject{ID: value, Name: value}
}

// DefaultTitle builds the title used when the teacher does not supply one.
func DefaultTitle(subjectName string, grade GradeLevel) string {
	return fmt.Sprintf("Phiếu bài tập %s - %s", subjectName, grade.Label())
}

// BuildAnswerKey derives one answer key row per question.
func BuildAnswerKey(questions []Question) []AnswerKeyItem {
	key := make([]AnswerKeyItem, len(questions))
	for i, q := range questions {
		key[i] = AnswerKeyItem{
			QuestionIndex: i + 1,
			Answer:        q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}
	return key
}
