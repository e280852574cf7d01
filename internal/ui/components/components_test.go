package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestOptionList_CursorDoesNotChoose(t *testing.T) {
	o := NewOptionList([]string{"3", "4", "5"})

	o, changed := o.Update(specialKey(tea.KeyDown))
	if changed {
		t.Error("moving the cursor should not change the choice")
	}
	if o.Cursor != 1 || o.Chosen != -1 {
		t.Fatalf("cursor=%d chosen=%d", o.Cursor, o.Chosen)
	}

	o, changed = o.Update(specialKey(tea.KeyEnter))
	if !changed || o.Value() != "4" {
		t.Fatalf("enter should choose the cursor option, got %q changed=%v", o.Value(), changed)
	}

	_, changed = o.Update(specialKey(tea.KeyEnter))
	if changed {
		t.Error("choosing the same option again should not report a change")
	}
}

func TestOptionList_DigitChooses(t *testing.T) {
	o := NewOptionList([]string{"Đúng", "Sai"})

	o, changed := o.Update(keyPress('2'))
	if !changed || o.Value() != "Sai" {
		t.Fatalf("expected Sai, got %q", o.Value())
	}

	o, changed = o.Update(keyPress('7'))
	if changed || o.Value() != "Sai" {
		t.Fatalf("out of range digit should be ignored, got %q", o.Value())
	}
}

func TestOptionList_CursorBounds(t *testing.T) {
	o := NewOptionList([]string{"a", "b"})
	o, _ = o.Update(specialKey(tea.KeyUp))
	if o.Cursor != 0 {
		t.Errorf("cursor moved above first option: %d", o.Cursor)
	}
	o, _ = o.Update(specialKey(tea.KeyDown))
	o, _ = o.Update(specialKey(tea.KeyDown))
	if o.Cursor != 1 {
		t.Errorf("cursor moved past last option: %d", o.Cursor)
	}
}

func TestOptionList_Choose(t *testing.T) {
	o := NewOptionList([]string{"a", "b", "c"})
	o.Choose("c")
	if o.Chosen != 2 || o.Cursor != 2 {
		t.Fatalf("chosen=%d cursor=%d", o.Chosen, o.Cursor)
	}
	o.Choose("zzz")
	if o.Chosen != -1 || o.Value() != "" {
		t.Fatalf("unknown value should clear the choice, got %d", o.Chosen)
	}
}

func TestOptionList_ViewLabels(t *testing.T) {
	view := NewOptionList([]string{"x", "y"}).View(true)
	if !strings.Contains(view, "A. x") || !strings.Contains(view, "B. y") {
		t.Fatalf("missing option labels in %q", view)
	}
}

func TestOptionLabel(t *testing.T) {
	if OptionLabel(0) != "A" || OptionLabel(3) != "D" {
		t.Fatal("unexpected labels")
	}
	if OptionLabel(-1) != "?" {
		t.Fatal("negative index should be '?'")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "two", Action: func() tea.Cmd { called = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up should not land on a disabled item, got %d", m.Selected)
	}

	m, _ = m.Update(keyPress('j'))
	m.Update(specialKey(tea.KeyEnter))
	if called != "two" {
		t.Errorf("expected action two, got %q", called)
	}
}

func TestWindow(t *testing.T) {
	content := "1\n2\n3\n4\n5\n"

	got, off := Window(content, 1, 2)
	if got != "2\n3" || off != 1 {
		t.Errorf("Window(1,2) = %q, %d", got, off)
	}

	got, off = Window(content, 10, 2)
	if got != "4\n5" || off != 3 {
		t.Errorf("offset past the end should clamp, got %q, %d", got, off)
	}

	got, off = Window(content, 0, 10)
	if got != "1\n2\n3\n4\n5" || off != 0 {
		t.Errorf("short content should show everything, got %q, %d", got, off)
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		got := NewProgressBar("", tt.done, tt.total, 40).Fraction()
		if got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar("Đã làm", 2, 5, 40).View(), "2/5") {
		t.Error("expected counter in view")
	}
}

func TestMenu_DigitShortcutAndEnds(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "one", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "off", Disabled: true},
		{Label: "three", Action: func() tea.Cmd { called = "three"; return nil }},
	})

	m, _ = m.Update(keyPress('2'))
	if m.Selected != 0 || called != "" {
		t.Fatalf("digit for a disabled item should do nothing, selected=%d called=%q", m.Selected, called)
	}

	m, _ = m.Update(keyPress('3'))
	if m.Selected != 2 || called != "three" {
		t.Fatalf("expected item three activated, selected=%d called=%q", m.Selected, called)
	}

	m, _ = m.Update(specialKey(tea.KeyHome))
	if m.Selected != 0 {
		t.Fatalf("home should select the first item, got %d", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyEnd))
	if m.Selected != 2 {
		t.Fatalf("end should select the last enabled item, got %d", m.Selected)
	}
}

func TestMathText(t *testing.T) {
	plain := lipgloss.NewStyle()
	tests := []struct {
		in string
	}{
		{`Tính $15 \times 4 + 20$ bằng bao nhiêu?`},
		{"Không có công thức"},
		{"Giá $5 chưa đóng"},
		{"$a$ và $b$"},
	}
	for _, tt := range tests {
		got := ansi.Strip(MathText(tt.in, plain))
		if got != tt.in {
			t.Errorf("MathText(%q) text = %q", tt.in, got)
		}
	}
}
