package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edusheet/internal/ui/theme"
)

// OptionList is a single-choice selector over a fixed option list. Moving
// the cursor does not choose; enter, space or a digit key does.
type OptionList struct {
	Options []string
	Cursor  int

	// Chosen is the index of the chosen option, or -1.
	Chosen int

	// Reveal holds the correct option once answers are shown. Empty hides
	// correctness.
	Reveal string
}

// NewOptionList creates a selector with nothing chosen.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options: options,
		Chosen:  -1,
	}
}

// Choose selects the option with the given text. Unknown text clears the
// choice.
func (o *OptionList) Choose(value string) {
	o.Chosen = -1
	for i, opt := range o.Options {
		if opt == value {
			o.Chosen = i
			o.Cursor = i
			return
		}
	}
}

// Value returns the chosen option text, or "".
func (o OptionList) Value() string {
	if o.Chosen < 0 || o.Chosen >= len(o.Options) {
		return ""
	}
	return o.Options[o.Chosen]
}

// Update handles navigation and selection. changed reports whether the
// chosen option changed.
func (o OptionList) Update(msg tea.Msg) (out OptionList, changed bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(o.Options) == 0 {
		return o, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", "space", " ":
		changed = o.Chosen != o.Cursor
		o.Chosen = o.Cursor
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(o.Options) {
				o.Cursor = i
				changed = o.Chosen != i
				o.Chosen = i
			}
		}
	}
	return o, changed
}

// OptionLabel returns the letter label for option i (A, B, C...).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// View renders the options. focused controls whether the cursor is drawn.
func (o OptionList) View(focused bool) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if focused && i == o.Cursor && o.Reveal == "" {
			prefix = "▸ "
		}
		mark := "○"
		if i == o.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, mark, OptionLabel(i), opt)

		switch {
		case o.Reveal != "" && opt == o.Reveal:
			b.WriteString(theme.Correct.Render(line))
		case o.Reveal != "" && i == o.Chosen:
			b.WriteString(theme.Incorrect.Render(line))
		case i == o.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case focused && i == o.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
