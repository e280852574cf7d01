package questiongen

import (
	"strings"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// Meta is the worksheet metadata a teacher fills in around generation.
type Meta struct {
	Title      string
	SchoolName string
	ClassName  string
	Tags       []string
}

// Assemble wraps generated questions into a new, unsaved worksheet. The
// grade defaults to secondary and the title to DefaultTitle.
func Assemble(in Input, questions []worksheet.Question, meta Meta) *worksheet.Worksheet {
	grade := in.Grade
	if grade == "" {
		grade = worksheet.GradeSecondary
	}
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = worksheet.DefaultTitle(in.Subject.Name, grade)
	}
	return &worksheet.Worksheet{
		Title:       title,
		SubjectID:   in.Subject.ID,
		SubjectName: in.Subject.Name,
		GradeLevel:  grade,
		SchoolName:  strings.TrimSpace(meta.SchoolName),
		ClassName:   strings.TrimSpace(meta.ClassName),
		Questions:   questions,
		AnswerKey:   worksheet.BuildAnswerKey(questions),
		Tags:        meta.Tags,
	}
}
