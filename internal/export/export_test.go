package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/edusheet/internal/grading"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/worksheet"
)

func testWorksheet() *worksheet.Worksheet {
	qs := []worksheet.Question{
		{ID: "q1", Content: "2 + 2 = ?", Type: worksheet.TypeMultipleChoice, Options: []string{"3", "4"}, CorrectAnswer: "4", Explanation: "Cộng", Difficulty: worksheet.DifficultyEasy},
		{ID: "q2", Content: "Nối", Type: worksheet.TypeMatching, MatchingPairs: []worksheet.MatchingPair{{Left: "1", Right: "một"}, {Left: "2", Right: "hai"}}, Difficulty: worksheet.DifficultyMedium},
		{ID: "q3", Content: "Thủ đô: ___", Type: worksheet.TypeFillBlank, CorrectAnswer: "Hà Nội", Difficulty: worksheet.DifficultyHard},
	}
	return &worksheet.Worksheet{
		ID:          "ws-1",
		Title:       "Phiếu bài tập Toán",
		SubjectName: "Toán học",
		GradeLevel:  worksheet.GradePrimary,
		Questions:   qs,
		AnswerKey:   worksheet.BuildAnswerKey(qs),
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	if err != nil {
		t.Fatalf("GetCellValue(%s, %s): %v", sheet, ref, err)
	}
	return v
}

func TestWriteWorksheet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorksheet(&buf, testWorksheet()); err != nil {
		t.Fatalf("WriteWorksheet: %v", err)
	}
	f := openWorkbook(t, buf.Bytes())

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetQuestions || sheets[1] != SheetAnswers {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	if got := cell(t, f, SheetQuestions, "A1"); got != "Phiếu bài tập Toán" {
		t.Errorf("title = %q", got)
	}
	if got := cell(t, f, SheetQuestions, "D4"); got != "Nội dung" {
		t.Errorf("header D4 = %q", got)
	}
	if got := cell(t, f, SheetQuestions, "B5"); got != worksheet.TypeMultipleChoice.Label() {
		t.Errorf("type label = %q", got)
	}
	if got := cell(t, f, SheetQuestions, "E5"); got != "A. 3\nB. 4" {
		t.Errorf("options = %q", got)
	}
	if got := cell(t, f, SheetQuestions, "F6"); got != "1 → một\n2 → hai" {
		t.Errorf("pairs = %q", got)
	}

	if got := cell(t, f, SheetAnswers, "B2"); got != "4" {
		t.Errorf("answer 1 = %q", got)
	}
	if got := cell(t, f, SheetAnswers, "A4"); got != "3" {
		t.Errorf("answer index = %q", got)
	}
}

func TestWriteResult(t *testing.T) {
	ws := testWorksheet()
	p := share.Project(ws)
	r := grading.Grade(p.Questions, grading.AnswerSet{"q1": "4", "q3": "Hà  Nội"})

	var buf bytes.Buffer
	if err := WriteResult(&buf, p, r, 95*time.Second); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	f := openWorkbook(t, buf.Bytes())

	if got := cell(t, f, SheetResult, "C2"); got != "1" {
		t.Errorf("correct = %q", got)
	}
	if got := cell(t, f, SheetResult, "D2"); got != "2" {
		t.Errorf("total = %q", got)
	}
	if got := cell(t, f, SheetResult, "F2"); got != "1 phút 35 giây" {
		t.Errorf("elapsed = %q", got)
	}
	if got := cell(t, f, SheetResult, "F5"); got != "Đúng" {
		t.Errorf("q1 verdict = %q", got)
	}
	if got := cell(t, f, SheetResult, "F6"); got != "Không chấm" {
		t.Errorf("q2 verdict = %q", got)
	}
	if got := cell(t, f, SheetResult, "F7"); got != "Sai" {
		t.Errorf("q3 verdict = %q", got)
	}
}
