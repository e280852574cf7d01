// Package export writes worksheets and grading results as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/edusheet/internal/grading"
	"github.com/abhisek/edusheet/internal/session"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// Sheet names.
const (
	SheetQuestions = "Câu hỏi"
	SheetAnswers   = "Đáp án"
	SheetResult    = "Kết quả"
)

var optionLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// WriteWorksheet writes ws as a workbook with a question sheet and an answer
// key sheet.
func WriteWorksheet(w io.Writer, ws *worksheet.Worksheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetQuestions); err != nil {
		return err
	}
	sheet := newSheetWriter(f, SheetQuestions)
	sheet.row(ws.Title)
	sheet.row(ws.SubjectName, ws.GradeLevel.Label(), ws.SchoolName, ws.ClassName)
	sheet.blank()
	sheet.header("STT", "Dạng", "Độ khó", "Nội dung", "Lựa chọn", "Cặp nối")
	for i, q := range ws.Questions {
		sheet.row(i+1, q.Type.Label(), q.Difficulty.Label(), q.Content, formatOptions(q.Options), formatPairs(q.MatchingPairs))
	}
	sheet.widths(map[string]float64{"A": 6, "B": 22, "C": 12, "D": 60, "E": 40, "F": 40})
	if sheet.err != nil {
		return fmt.Errorf("write %s: %w", SheetQuestions, sheet.err)
	}

	if _, err := f.NewSheet(SheetAnswers); err != nil {
		return err
	}
	key := ws.AnswerKey
	if len(key) == 0 {
		key = worksheet.BuildAnswerKey(ws.Questions)
	}
	sheet = newSheetWriter(f, SheetAnswers)
	sheet.header("Câu", "Đáp án", "Giải thích")
	for _, item := range key {
		sheet.row(item.QuestionIndex, item.Answer, item.Explanation)
	}
	sheet.widths(map[string]float64{"A": 6, "B": 40, "C": 60})
	if sheet.err != nil {
		return fmt.Errorf("write %s: %w", SheetAnswers, sheet.err)
	}

	return write(f, w)
}

// WriteResult writes a graded submission: a summary row followed by one row
// per question.
func WriteResult(w io.Writer, p *share.Projection, r *grading.Result, elapsed time.Duration) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetResult); err != nil {
		return err
	}
	sheet := newSheetWriter(f, SheetResult)
	sheet.header("Phiếu", "Môn", "Đúng", "Tổng", "Điểm (%)", "Thời gian")
	sheet.row(p.Title, p.SubjectName, r.Correct, r.Total, r.Percentage, session.FormatDuration(elapsed))
	sheet.blank()
	sheet.header("STT", "Dạng", "Nội dung", "Trả lời", "Đáp án", "Kết quả", "Giải thích")
	for i, d := range r.Details {
		sheet.row(i+1, d.Question.Type.Label(), d.Question.Content, d.UserAnswer,
			d.Question.CorrectAnswer, verdict(d), d.Question.Explanation)
	}
	sheet.widths(map[string]float64{"A": 24, "B": 22, "C": 60, "D": 30, "E": 30, "F": 14, "G": 50})
	if sheet.err != nil {
		return fmt.Errorf("write %s: %w", SheetResult, sheet.err)
	}
	return write(f, w)
}

func verdict(d grading.Detail) string {
	switch {
	case !d.Gradable:
		return "Không chấm"
	case d.Correct:
		return "Đúng"
	default:
		return "Sai"
	}
}

func formatOptions(opts []string) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		if i < len(optionLetters) {
			parts[i] = optionLetters[i] + ". " + o
		} else {
			parts[i] = o
		}
	}
	return strings.Join(parts, "\n")
}

func formatPairs(pairs []worksheet.MatchingPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.Left + " → " + p.Right
	}
	return strings.Join(parts, "\n")
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	name string
	next int
	bold int
	err  error
}

func newSheetWriter(f *excelize.File, name string) *sheetWriter {
	s := &sheetWriter{f: f, name: name, next: 1}
	s.bold, s.err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	return s
}

func (s *sheetWriter) row(values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		s.err = err
		return
	}
	s.next++
}

func (s *sheetWriter) header(values ...any) {
	r := s.next
	s.row(values...)
	if s.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), r)
	if err != nil {
		s.err = err
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, r)
	s.err = s.f.SetCellStyle(s.name, first, last, s.bold)
}

func (s *sheetWriter) blank() {
	s.next++
}

func (s *sheetWriter) widths(cols map[string]float64) {
	for col, width := range cols {
		if s.err != nil {
			return
		}
		s.err = s.f.SetColWidth(s.name, col, col, width)
	}
}
