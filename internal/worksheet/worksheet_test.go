package worksheet

import (
	"errors"
	"testing"
	"time"
)

func validWorksheet() Worksheet {
	return Samples(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))[0]
}

func TestBuildAnswerKey(t *testing.T) {
	qs := []Question{
		{ID: "a", CorrectAnswer: "80", Explanation: "because"},
		{ID: "b", CorrectAnswer: "Đúng"},
	}
	key := BuildAnswerKey(qs)
	if len(key) != 2 {
		t.Fatalf("len(key) = %d, want 2", len(key))
	}
	if key[0].QuestionIndex != 1 || key[1].QuestionIndex != 2 {
		t.Errorf("indices = %d,%d, want 1,2", key[0].QuestionIndex, key[1].QuestionIndex)
	}
	if key[0].Answer != "80" || key[0].Explanation != "because" {
		t.Errorf("key[0] = %+v", key[0])
	}
	if key[1].Answer != "Đúng" {
		t.Errorf("key[1].Answer = %q", key[1].Answer)
	}
}

func TestDefaultTitle(t *testing.T) {
	got := DefaultTitle("Toán học", GradeSecondary)
	if got != "Phiếu bài tập Toán học - THCS" {
		t.Errorf("DefaultTitle = %q", got)
	}
}

func TestLookupSubject(t *testing.T) {
	tests := []struct {
		in       string
		wantID   string
		wantName string
	}{
		{"math", "math", "Toán học"},
		{"Tiếng Anh", "english", "Tiếng Anh"},
		{"Âm nhạc", "Âm nhạc", "Âm nhạc"},
	}
	for _, tt := range tests {
		s := LookupSubject(tt.in)
		if s.ID != tt.wantID || s.Name != tt.wantName {
			t.Errorf("LookupSubject(%q) = %+v, want {%s %s}", tt.in, s, tt.wantID, tt.wantName)
		}
	}
}

func TestQuestionType_Info(t *testing.T) {
	if len(AllTypes) != 15 {
		t.Fatalf("len(AllTypes) = %d, want 15", len(AllTypes))
	}
	for _, qt := range AllTypes {
		if !qt.Valid() {
			t.Errorf("%s not valid", qt)
		}
		info := qt.Info()
		if info.Label == "" || info.Label == string(qt) {
			t.Errorf("%s has no label", qt)
		}
		if info.Prompt == "" {
			t.Errorf("%s has no prompt description", qt)
		}
	}
	if QuestionType("essay").Valid() {
		t.Error("essay should not be valid")
	}
	if got := QuestionType("essay").Label(); got != "essay" {
		t.Errorf("unknown label = %q", got)
	}
}

func TestLabels(t *testing.T) {
	if DifficultyMedium.Label() != "Trung bình" {
		t.Errorf("medium label = %q", DifficultyMedium.Label())
	}
	if GradeHighSchool.Label() != "THPT" {
		t.Errorf("high_school label = %q", GradeHighSchool.Label())
	}
}

func TestValidate_Samples(t *testing.T) {
	for _, ws := range Samples(time.Now()) {
		if err := ws.Validate(); err != nil {
			t.Errorf("sample %s: %v", ws.ID, err)
		}
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *Worksheet)
		field  string
		rule   string
	}{
		{"no title", func(w *Worksheet) { w.Title = "" }, "title", "required"},
		{"bad grade", func(w *Worksheet) { w.GradeLevel = "college" }, "gradeLevel", "gradelevel"},
		{"no questions", func(w *Worksheet) { w.Questions = nil }, "questions", "required"},
		{"bad type", func(w *Worksheet) { w.Questions[0].Type = "essay" }, "questions[0].type", "questiontype"},
		{"bad difficulty", func(w *Worksheet) { w.Questions[1].Difficulty = "extreme" }, "questions[1].difficulty", "difficulty"},
		{"options and pairs", func(w *Worksheet) {
			w.Questions[2].Options = []string{"x"}
		}, "questions[2].options", "exclusive"},
		{"options on fill blank", func(w *Worksheet) {
			w.Questions[1].Options = []string{"x", "y"}
		}, "questions[1].options", "options_type"},
		{"pairs on multiple choice", func(w *Worksheet) {
			w.Questions[0].Options = nil
			w.Questions[0].MatchingPairs = []MatchingPair{{Left: "a", Right: "b"}}
		}, "questions[0].matchingPairs", "pairs_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := validWorksheet()
			tt.mutate(&ws)
			err := ws.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Field == tt.field && fe.Rule == tt.rule {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %+v do not contain %s/%s", verrs, tt.field, tt.rule)
			}
		})
	}
}

func TestQuestionByID(t *testing.T) {
	ws := validWorksheet()
	if q := ws.QuestionByID("demo_2"); q == nil || q.Type != TypeFillBlank {
		t.Errorf("QuestionByID(demo_2) = %+v", q)
	}
	if ws.QuestionByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
}
