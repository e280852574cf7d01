package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/ui/theme"
)

// MathText renders s with base, highlighting $...$ segments with
// theme.Math. The dollar signs are kept so formulas read as typed. An
// unmatched $ is plain text.
func MathText(s string, base lipgloss.Style) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '$')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open+1:], '$')
		if end < 0 {
			break
		}
		end += open + 1
		if open > 0 {
			b.WriteString(base.Render(s[:open]))
		}
		b.WriteString(theme.Math.Render(s[open : end+1]))
		s = s[end+1:]
	}
	if s != "" {
		b.WriteString(base.Render(s))
	}
	return b.String()
}
