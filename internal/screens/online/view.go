package online

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edusheet/internal/grading"
	sess "github.com/abhisek/edusheet/internal/session"
	"github.com/abhisek/edusheet/internal/ui/components"
	"github.com/abhisek/edusheet/internal/ui/theme"
	"github.com/abhisek/edusheet/internal/worksheet"
)

const blankAnswer = "(bỏ trống)"

func (s *OnlineScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.session.Submitted() {
		return s.renderResults(width, height, cw)
	}
	if s.session.ConfirmPending() {
		return components.Centered(s.renderConfirm(), width, height)
	}
	return s.renderAnswering(width, height, cw)
}

func (s *OnlineScreen) renderHeading(cw int) string {
	p := s.session.Projection()
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var lines []string
	if p.SchoolName != "" {
		lines = append(lines, center.Foreground(theme.TextDim).Render(strings.ToUpper(p.SchoolName)))
	}
	lines = append(lines,
		center.Foreground(theme.Secondary).Bold(true).Render("PHIẾU BÀI TẬP TRỰC TUYẾN"),
		center.Foreground(theme.Text).Bold(true).Render(p.Title),
	)
	meta := fmt.Sprintf("Môn: %s · Cấp: %s · %d câu", p.SubjectName, p.GradeLevel.Label(), len(p.Questions))
	if p.ClassName != "" {
		meta += " · " + p.ClassName
	}
	lines = append(lines, center.Foreground(theme.TextDim).Render(meta))
	return strings.Join(lines, "\n")
}

func (s *OnlineScreen) renderAnswering(width, height, cw int) string {
	qs := s.session.Questions()

	var b strings.Builder
	b.WriteString(s.renderHeading(cw))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Đã làm", s.session.AnsweredCount(), len(qs), cw).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	if len(qs) > 0 {
		q := qs[s.current]
		b.WriteString(questionBadge(s.current, len(qs), q))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Render(components.MathText(q.Content, lipgloss.NewStyle().Foreground(theme.Text).Bold(true))))
		b.WriteString("\n\n")

		if len(q.MatchingPairs) > 0 {
			b.WriteString(renderPairs(q.MatchingPairs, cw))
			b.WriteString("\n")
		}

		if s.isTextQuestion(s.current) {
			in := s.inputs[s.current]
			in.SetWidth(cw - 4)
			b.WriteString(in.View())
			b.WriteString("\n")
			if !grading.IsGradable(q.Type) {
				b.WriteString(theme.Hint.Render("Câu này không được chấm tự động."))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(s.pickers[s.current].View(true))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	body, _ := components.Window(b.String(), 0, height)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(body)
}

func questionBadge(i, n int, q worksheet.Question) string {
	num := lipgloss.NewStyle().
		Background(theme.Secondary).
		Foreground(theme.BgDark).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("Câu %d/%d", i+1, n))

	diff := theme.Hint
	switch q.Difficulty {
	case worksheet.DifficultyEasy:
		diff = lipgloss.NewStyle().Foreground(theme.Success)
	case worksheet.DifficultyMedium:
		diff = lipgloss.NewStyle().Foreground(theme.Accent)
	case worksheet.DifficultyHard:
		diff = lipgloss.NewStyle().Foreground(theme.Error)
	}

	return num + "  " +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(q.Type.Label()) + "  " +
		diff.Render(q.Difficulty.Label())
}

func renderPairs(pairs []worksheet.MatchingPair, cw int) string {
	half := (cw - 5) / 2
	left := lipgloss.NewStyle().Width(half).Foreground(theme.Secondary)
	right := lipgloss.NewStyle().Width(half).Foreground(theme.Success)

	var b strings.Builder
	for j, pair := range pairs {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			left.Render(fmt.Sprintf("%d. %s", j+1, pair.Left)),
			lipgloss.NewStyle().Foreground(theme.Border).Render("  →  "),
			right.Render(fmt.Sprintf("%c. %s", 'a'+j, pair.Right)),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *OnlineScreen) renderConfirm() string {
	answered := fmt.Sprintf("Đã trả lời %d/%d câu.", s.session.AnsweredCount(), len(s.session.Questions()))
	msg := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sess.SubmitPrompt) +
		"\n" + theme.Hint.Render(answered)
	return components.Dialog(msg,
		components.NewButton("Y", "Nộp bài", true),
		components.NewButton("N", "Tiếp tục làm", false),
	)
}

func (s *OnlineScreen) renderResults(width, height, cw int) string {
	res := s.session.Result()
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderHeading(cw))
	b.WriteString("\n\n")
	b.WriteString(renderScore(res, s.session, cw))
	b.WriteString("\n\n")

	for i, d := range res.Details {
		b.WriteString(s.renderDetail(i, len(res.Details), d, cw))
		b.WriteString("\n")
	}

	body, offset := components.Window(b.String(), s.offset, height)
	s.offset = offset
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(body)
}

func renderScore(res *grading.Result, session *sess.Session, cw int) string {
	cell := func(value, label string, color lipgloss.Style) string {
		return lipgloss.NewStyle().
			Width(cw/3 - 2).
			Align(lipgloss.Center).
			Render(color.Bold(true).Render(value) + "\n" + theme.Hint.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(fmt.Sprintf("%d%%", res.Percentage), "Tỷ lệ đúng", lipgloss.NewStyle().Foreground(theme.Success)),
		cell(fmt.Sprintf("%d/%d", res.Correct, res.Total), "Câu đúng", lipgloss.NewStyle().Foreground(theme.Secondary)),
		cell(sess.FormatDuration(session.Elapsed()), "Thời gian", lipgloss.NewStyle().Foreground(theme.Accent)),
	)
	title := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Kết quả")
	return components.Card(title+"\n\n"+row, cw)
}

func (s *OnlineScreen) renderDetail(i, n int, d grading.Detail, cw int) string {
	var b strings.Builder
	b.WriteString(questionBadge(i, n, d.Question))
	b.WriteString("  ")
	switch {
	case !d.Gradable:
		b.WriteString(theme.Ungraded.Render("• Không chấm điểm"))
	case d.Correct:
		b.WriteString(theme.Correct.Render("✓ Đúng"))
	default:
		b.WriteString(theme.Incorrect.Render("✗ Sai"))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(components.MathText(d.Question.Content, lipgloss.NewStyle().Foreground(theme.Text))))
	b.WriteString("\n")

	if len(s.pickers[i].Options) > 0 {
		b.WriteString(s.pickers[i].View(false))
	} else {
		answer := d.UserAnswer
		if answer == "" {
			answer = blankAnswer
		}
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render("Bạn trả lời: " + answer))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Success).Render("Đáp án: " + d.Question.CorrectAnswer))
	b.WriteString("\n")
	if d.Question.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Italic(true).Render(d.Question.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}
