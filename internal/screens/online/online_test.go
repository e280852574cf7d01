package online

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusheet/internal/screens"
	"github.com/abhisek/edusheet/internal/screens/invalid"
	sess "github.com/abhisek/edusheet/internal/session"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/worksheet"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *OnlineScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func testProjection() *share.Projection {
	return &share.Projection{
		Title:       "Phiếu Toán",
		SubjectName: "Toán",
		GradeLevel:  worksheet.GradePrimary,
		SchoolName:  "Trường Kim Đồng",
		Questions: []worksheet.Question{
			{ID: "q1", Type: worksheet.TypeMultipleChoice, Content: "2 + 2 = ?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4", Difficulty: worksheet.DifficultyEasy},
			{ID: "q2", Type: worksheet.TypeTrueFalse, Content: "5 là số chẵn", Options: []string{worksheet.OptionTrue, worksheet.OptionFalse}, CorrectAnswer: worksheet.OptionFalse, Difficulty: worksheet.DifficultyEasy},
			{ID: "q3", Type: worksheet.TypeFillBlank, Content: "Thủ đô Việt Nam là ___", CorrectAnswer: "Hà Nội", Difficulty: worksheet.DifficultyMedium},
			{ID: "q4", Type: worksheet.TypeShortAnswer, Content: "Vì sao lá cây màu xanh?", CorrectAnswer: "Diệp lục", Difficulty: worksheet.DifficultyHard, Explanation: "Do chất diệp lục."},
		},
	}
}

func testScreen(t *testing.T) (*OnlineScreen, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	s := New(testProjection(), screens.Deps{Now: clock.now})
	s.Init()
	return s, clock
}

func TestOnlineScreen_Title(t *testing.T) {
	s, _ := testScreen(t)
	if s.Title() == "" {
		t.Fatal("expected a title")
	}
}

func TestOnlineScreen_DigitSelectsOption(t *testing.T) {
	s, _ := testScreen(t)

	s.Update(keyPress('2'))
	if got := s.Session().Answer("q1"); got != "4" {
		t.Fatalf("expected answer 4, got %q", got)
	}
}

func TestOnlineScreen_ArrowsThenEnterSelects(t *testing.T) {
	s, _ := testScreen(t)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if got := s.Session().Answer("q1"); got != "" {
		t.Fatalf("moving the cursor should not answer, got %q", got)
	}
	s.Update(specialKey(tea.KeyEnter))
	if got := s.Session().Answer("q1"); got != "5" {
		t.Fatalf("expected answer 5, got %q", got)
	}
}

func TestOnlineScreen_TabNavigation(t *testing.T) {
	s, _ := testScreen(t)

	s.Update(specialKey(tea.KeyTab))
	if s.current != 1 {
		t.Fatalf("expected question 2, got %d", s.current+1)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.current != 0 {
		t.Fatalf("expected question 1, got %d", s.current+1)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.current != 0 {
		t.Fatalf("shift+tab on the first question should stay, got %d", s.current+1)
	}
	for i := 0; i < 10; i++ {
		s.Update(specialKey(tea.KeyTab))
	}
	if s.current != 3 {
		t.Fatalf("tab should stop on the last question, got %d", s.current+1)
	}
}

func TestOnlineScreen_TextInputRecordsAnswer(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))

	typeText(s, "hà nội")
	if got := s.Session().Answer("q3"); got != "hà nội" {
		t.Fatalf("expected typed answer, got %q", got)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.current != 3 {
		t.Fatalf("enter in a text answer should advance, got question %d", s.current+1)
	}
}

func TestOnlineScreen_SubmitRequiresConfirmation(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(keyPress('2'))

	s.Update(ctrlKey('s'))
	if !s.Session().ConfirmPending() {
		t.Fatal("expected confirmation dialog")
	}
	if !strings.Contains(s.View(100, 30), "Nộp bài") {
		t.Error("expected confirmation buttons in view")
	}
	if !s.HandlesEscape() {
		t.Error("the dialog should consume esc")
	}

	s.Update(keyPress('n'))
	if s.Session().ConfirmPending() || s.Session().Submitted() {
		t.Fatal("n should cancel without submitting")
	}
	if got := s.Session().Answer("q1"); got != "4" {
		t.Fatalf("cancel should keep answers, got %q", got)
	}
}

func TestOnlineScreen_EscCancelsDialog(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(ctrlKey('s'))
	s.Update(specialKey(tea.KeyEscape))
	if s.Session().ConfirmPending() {
		t.Fatal("esc should close the dialog")
	}
}

func TestOnlineScreen_ConfirmGradesAndFreezes(t *testing.T) {
	s, clock := testScreen(t)

	s.Update(keyPress('2')) // q1 = 4
	s.Update(specialKey(tea.KeyTab))
	s.Update(keyPress('1')) // q2 = Đúng (wrong)
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "HÀ NỘI")

	clock.t = clock.t.Add(2*time.Minute + 5*time.Second)
	s.Update(ctrlKey('s'))
	s.Update(keyPress('y'))

	if !s.Session().Submitted() {
		t.Fatal("expected submitted phase")
	}
	res := s.Session().Result()
	if res.Total != 3 || res.Correct != 2 || res.Percentage != 67 {
		t.Fatalf("unexpected result %+v", res)
	}

	clock.t = clock.t.Add(time.Hour)
	if got := sess.FormatDuration(s.Session().Elapsed()); got != "2 phút 5 giây" {
		t.Fatalf("elapsed should be frozen, got %q", got)
	}

	view := s.View(100, 200)
	for _, want := range []string{"67%", "2/3", "2 phút 5 giây", "Không chấm điểm", "Do chất diệp lục."} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}

	// Answers are frozen.
	s.Update(keyPress('1'))
	if got := s.Session().Answer("q1"); got != "4" {
		t.Fatalf("answers should be frozen, got %q", got)
	}
}

func TestOnlineScreen_Restart(t *testing.T) {
	s, _ := testScreen(t)
	s.Update(keyPress('2'))
	s.Update(ctrlKey('s'))
	s.Update(keyPress('y'))

	s.Update(keyPress('r'))
	if s.Session().Submitted() {
		t.Fatal("expected answering phase after restart")
	}
	if s.Session().AnsweredCount() != 0 {
		t.Fatal("restart should clear answers")
	}
	if s.current != 0 || s.pickers[0].Chosen != -1 || s.pickers[0].Reveal != "" {
		t.Fatal("restart should reset the inputs")
	}
}

func TestOnlineScreen_TickStopsAfterSubmit(t *testing.T) {
	s, _ := testScreen(t)

	_, cmd := s.Update(timerTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected next tick while answering")
	}

	s.Update(ctrlKey('s'))
	s.Update(keyPress('y'))
	_, cmd = s.Update(timerTickMsg(time.Now()))
	if cmd != nil {
		t.Fatal("expected ticking to stop after submit")
	}
	if s.ticking {
		t.Fatal("expected ticking flag cleared")
	}
}

func TestOnlineScreen_AnsweringViewShowsQuestion(t *testing.T) {
	s, _ := testScreen(t)
	view := s.View(100, 40)
	for _, want := range []string{"PHIẾU BÀI TẬP TRỰC TUYẾN", "Phiếu Toán", "2 + 2 = ?", "A. 3", "Câu 1/4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestOpen(t *testing.T) {
	ws := testProjection().Worksheet()
	link, err := share.BuildLink("https://example.com/", ws)
	if err != nil {
		t.Fatalf("BuildLink: %v", err)
	}

	for _, input := range []string{link.URL, link.Token, "  " + link.Token + "\n"} {
		if _, ok := Open(input, screens.Deps{}, nil).(*OnlineScreen); !ok {
			t.Errorf("expected runner for %q", input)
		}
	}

	for _, input := range []string{"", "not-a-token!", "https://example.com/#/online/e30"} {
		if _, ok := Open(input, screens.Deps{}, nil).(*invalid.InvalidScreen); !ok {
			t.Errorf("expected invalid screen for %q", input)
		}
	}
}
