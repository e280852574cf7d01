package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/questiongen"
	"github.com/abhisek/edusheet/internal/worksheet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a worksheet from lesson content and save it",
	Long: "Reads lesson content from --file (or stdin), asks the configured LLM for questions, " +
		"and saves the resulting worksheet to the library.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		f := cmd.Flags()
		subjectID, _ := f.GetString("subject")
		grade, _ := f.GetString("grade")
		typeNames, _ := f.GetStringSlice("types")
		count, _ := f.GetInt("count")
		difficulty, _ := f.GetString("difficulty")
		mode, _ := f.GetString("mode")
		language, _ := f.GetString("language")
		title, _ := f.GetString("title")
		school, _ := f.GetString("school")
		class, _ := f.GetString("class")
		suggest, _ := f.GetBool("suggest")

		in := questiongen.Input{
			Content:    content,
			Subject:    worksheet.LookupSubject(subjectID),
			Grade:      worksheet.GradeLevel(grade),
			Types:      parseTypes(typeNames),
			Count:      count,
			Difficulty: worksheet.Difficulty(difficulty),
			Mode:       questiongen.ContentMode(mode),
			Language:   questiongen.Language(language),
		}

		ctx, cancel := e.withTimeout(cmd.Context())
		defer cancel()

		if suggest && len(in.Types) == 0 {
			in.Types = questiongen.NewSuggester(provider, e.log).Suggest(ctx, in.Content, in.Subject)
			fmt.Fprintf(cmd.ErrOrStderr(), "Suggested types: %s\n", typeLabels(in.Types))
		}

		gen := questiongen.New(provider, questiongen.DefaultConfig())
		questions, err := gen.Generate(ctx, in)
		if err != nil {
			return describeGenerationError(err)
		}

		if school == "" {
			school = e.cfg.Defaults.SchoolName
		}
		if class == "" {
			class = e.cfg.Defaults.ClassName
		}
		ws := questiongen.Assemble(in, questions, questiongen.Meta{Title: title, SchoolName: school, ClassName: class})
		if err := e.store.WorksheetRepo().Save(cmd.Context(), ws); err != nil {
			return fmt.Errorf("save worksheet: %w", err)
		}

		e.log.WithFields(logrus.Fields{"id": ws.ID, "questions": len(ws.Questions)}).Info("worksheet generated")
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s (%d câu)\n", ws.ID, ws.Title, len(ws.Questions))
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest question types that suit some lesson content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		subjectID, _ := cmd.Flags().GetString("subject")
		ctx, cancel := e.withTimeout(cmd.Context())
		defer cancel()

		types := questiongen.NewSuggester(provider, e.log).Suggest(ctx, content, worksheet.LookupSubject(subjectID))
		for _, t := range types {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", t, t.Label())
		}
		return nil
	},
}

// readContent reads --file, or stdin when the flag is empty or "-".
func readContent(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")

	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", questiongen.ErrEmptyContent
	}
	return content, nil
}

func parseTypes(names []string) []worksheet.QuestionType {
	var types []worksheet.QuestionType
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			types = append(types, worksheet.QuestionType(n))
		}
	}
	return types
}

func typeLabels(types []worksheet.QuestionType) string {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = t.Label()
	}
	return strings.Join(labels, ", ")
}

func describeGenerationError(err error) error {
	var (
		rateLimit *llm.ErrRateLimit
		badKey    *llm.ErrInvalidAPIKey
	)
	switch {
	case errors.As(err, &rateLimit):
		return fmt.Errorf("the LLM provider is rate limiting requests, try again later: %w", err)
	case errors.As(err, &badKey):
		return fmt.Errorf("the LLM provider rejected the API key: %w", err)
	}
	return fmt.Errorf("generate questions: %w", err)
}

func init() {
	f := generateCmd.Flags()
	f.StringP("file", "f", "", "Lesson content file (default: stdin)")
	f.StringP("subject", "s", "math", "Subject id or name")
	f.StringP("grade", "g", "", "Grade level: primary, secondary or high_school (default secondary)")
	f.StringSliceP("types", "t", nil, "Question types, comma separated (default multiple_choice)")
	f.IntP("count", "n", 10, "Number of questions")
	f.StringP("difficulty", "d", "medium", "Difficulty: easy, medium or hard")
	f.String("mode", string(questiongen.ModeExact), "Content mode: exact, change_context, change_numbers or change_both")
	f.String("language", string(questiongen.LanguageVietnamese), "Question language: vi, en or fr")
	f.String("title", "", "Worksheet title")
	f.String("school", "", "School name (default from config)")
	f.String("class", "", "Class name (default from config)")
	f.Bool("suggest", false, "Let the LLM pick question types when --types is empty")

	suggestCmd.Flags().StringP("file", "f", "", "Lesson content file (default: stdin)")
	suggestCmd.Flags().StringP("subject", "s", "math", "Subject id or name")
}
