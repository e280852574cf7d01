// Package share turns worksheets into self-contained links and back.
//
// A link carries the whole worksheet in its fragment, so opening it needs no
// server or local storage. The token format is base64 over the
// percent-escaped JSON projection, which keeps links interchangeable with the
// browser build of the app.
package share

import "github.com/abhisek/edusheet/internal/worksheet"

// Projection is the subset of a worksheet needed to render and grade it
// standalone. Worksheet id, answer key and timestamps are not carried.
type Projection struct {
	Title       string               `json:"title"`
	SubjectName string               `json:"subjectName"`
	GradeLevel  worksheet.GradeLevel `json:"gradeLevel"`
	SchoolName  string               `json:"schoolName,omitempty"`
	ClassName   string               `json:"className,omitempty"`
	Questions   []worksheet.Question `json:"questions"`
}

// Project builds the share projection of a worksheet.
func Project(ws *worksheet.Worksheet) *Projection {
	p := &Projection{
		Title:       ws.Title,
		SubjectName: ws.SubjectName,
		GradeLevel:  ws.GradeLevel,
		SchoolName:  ws.SchoolName,
		ClassName:   ws.ClassName,
		Questions:   make([]worksheet.Question, len(ws.Questions)),
	}
	for i, q := range ws.Questions {
		p.Questions[i] = projectQuestion(q)
	}
	return p
}

func projectQuestion(q worksheet.Question) worksheet.Question {
	out := worksheet.Question{
		ID:            q.ID,
		Content:       q.Content,
		Type:          q.Type,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
	}
	if len(q.Options) > 0 {
		out.Options = append([]string(nil), q.Options...)
	}
	if len(q.MatchingPairs) > 0 {
		out.MatchingPairs = append([]worksheet.MatchingPair(nil), q.MatchingPairs...)
	}
	return out
}

// Worksheet rebuilds a worksheet from the projection. The result has no id
// and zero timestamps; the answer key is derived from the questions.
func (p *Projection) Worksheet() *worksheet.Worksheet {
	qs := make([]worksheet.Question, len(p.Questions))
	copy(qs, p.Questions)
	return &worksheet.Worksheet{
		Title:       p.Title,
		SubjectName: p.SubjectName,
		GradeLevel:  p.GradeLevel,
		SchoolName:  p.SchoolName,
		ClassName:   p.ClassName,
		Questions:   qs,
		AnswerKey:   worksheet.BuildAnswerKey(qs),
	}
}

// wireProjection is the JSON document embedded in a token.
type wireProjection struct {
	Title       string         `json:"t"`
	SubjectName string         `json:"s"`
	GradeLevel  string         `json:"g"`
	SchoolName  string         `json:"sn,omitempty"`
	ClassName   string         `json:"cn,omitempty"`
	Questions   []wireQuestion `json:"q"`
}

type wireQuestion struct {
	ID            string                   `json:"i"`
	Content       string                   `json:"c"`
	Type          string                   `json:"tp"`
	Options       []string                 `json:"o,omitempty"`
	CorrectAnswer string                   `json:"ca"`
	Explanation   string                   `json:"ex,omitempty"`
	Difficulty    string                   `json:"d"`
	MatchingPairs []worksheet.MatchingPair `json:"mp,omitempty"`
}

func toWire(p *Projection) wireProjection {
	w := wireProjection{
		Title:       p.Title,
		SubjectName: p.SubjectName,
		GradeLevel:  string(p.GradeLevel),
		SchoolName:  p.SchoolName,
		ClassName:   p.ClassName,
		Questions:   make([]wireQuestion, len(p.Questions)),
	}
	for i, q := range p.Questions {
		w.Questions[i] = wireQuestion{
			ID:            q.ID,
			Content:       q.Content,
			Type:          string(q.Type),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    string(q.Difficulty),
			MatchingPairs: q.MatchingPairs,
		}
	}
	return w
}

func fromWire(w wireProjection) *Projection {
	p := &Projection{
		Title:       w.Title,
		SubjectName: w.SubjectName,
		GradeLevel:  worksheet.GradeLevel(w.GradeLevel),
		SchoolName:  w.SchoolName,
		ClassName:   w.ClassName,
		Questions:   make([]worksheet.Question, len(w.Questions)),
	}
	for i, q := range w.Questions {
		p.Questions[i] = projectQuestion(worksheet.Question{
			ID:            q.ID,
			Content:       q.Content,
			Type:          worksheet.QuestionType(q.Type),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    worksheet.Difficulty(q.Difficulty),
			MatchingPairs: q.MatchingPairs,
		})
	}
	return p
}
