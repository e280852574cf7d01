package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/edusheet/internal/export"
	"github.com/abhisek/edusheet/internal/grading"
	"github.com/abhisek/edusheet/internal/share"
	"github.com/spf13/cobra"
)

const pngCodeSize = 512

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Print a self-contained online link for a worksheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pngPath, _ := cmd.Flags().GetString("png")
		noCode, _ := cmd.Flags().GetBool("no-code")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws, err := getWorksheet(cmd, e, args[0])
		if err != nil {
			return err
		}
		link, err := share.BuildLink(e.cfg.PublicURL, ws)
		if err != nil {
			return fmt.Errorf("build link: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, link.URL)
		if w := link.Warning(); w != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}

		if !noCode {
			code, err := share.TerminalCode(link.URL)
			switch {
			case errors.Is(err, share.ErrLinkTooLongForCode):
				fmt.Fprintln(cmd.ErrOrStderr(), "note: link is too long for a QR code; share the link instead")
			case err != nil:
				return fmt.Errorf("render QR code: %w", err)
			default:
				fmt.Fprintln(out)
				fmt.Fprint(out, code)
			}
		}

		if pngPath != "" {
			png, err := share.PNGCode(link.URL, pngCodeSize)
			if err != nil {
				return fmt.Errorf("render QR code: %w", err)
			}
			if err := os.WriteFile(pngPath, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", pngPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", pngPath)
		}
		return nil
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade <link|token>",
	Short: "Grade answers for a shared worksheet without the TUI",
	Long: "Decodes a share link or token and grades the answers in --answers, a JSON object " +
		`mapping question ids to answer text, either bare or as {"answers": {...}}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersPath, _ := cmd.Flags().GetString("answers")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		p, err := share.Decode(share.ResolveToken(args[0]))
		if err != nil {
			return fmt.Errorf("invalid link: %w", err)
		}
		answers, err := readAnswers(answersPath)
		if err != nil {
			return err
		}

		res := grading.Grade(p.Questions, answers)
		printResult(cmd, p, res)

		if xlsxPath != "" {
			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", xlsxPath, err)
			}
			if err := export.WriteResult(f, p, res, 0); err != nil {
				f.Close()
				return fmt.Errorf("write workbook: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", xlsxPath)
		}
		return nil
	},
}

// readAnswers accepts {"answers": {...}} or a bare id-to-text object.
func readAnswers(path string) (grading.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var wrapped struct {
		Answers grading.AnswerSet `json:"answers"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Answers != nil {
		return wrapped.Answers, nil
	}

	var bare grading.AnswerSet
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return bare, nil
}

func printResult(cmd *cobra.Command, p *share.Projection, res *grading.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", p.Title)
	fmt.Fprintf(out, "Tỷ lệ đúng: %d%%  (%d/%d câu)\n\n", res.Percentage, res.Correct, res.Total)
	for i, d := range res.Details {
		mark := "•"
		switch {
		case d.Gradable && d.Correct:
			mark = "✓"
		case d.Gradable:
			mark = "✗"
		}
		answer := d.UserAnswer
		if answer == "" {
			answer = "(bỏ trống)"
		}
		fmt.Fprintf(out, "%s Câu %d: %s\n", mark, i+1, truncate(d.Question.Content, 70))
		fmt.Fprintf(out, "    Bạn trả lời: %s\n", answer)
		if d.Gradable && !d.Correct {
			fmt.Fprintf(out, "    Đáp án: %s\n", d.Question.CorrectAnswer)
		}
	}
}

func init() {
	shareCmd.Flags().String("png", "", "Also write the QR code as a PNG file")
	shareCmd.Flags().Bool("no-code", false, "Do not print the QR code")

	gradeCmd.Flags().String("answers", "", "JSON file with answers keyed by question id")
	gradeCmd.Flags().String("xlsx", "", "Also write the result as an XLSX workbook")
	_ = gradeCmd.MarkFlagRequired("answers")
}
