package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/edusheet/internal/export"
	"github.com/abhisek/edusheet/internal/screens/detail"
	"github.com/abhisek/edusheet/internal/store"
	"github.com/abhisek/edusheet/internal/worksheet"
	"github.com/spf13/cobra"
)

const showWidth = 80

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved worksheets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.store.WorksheetRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list worksheets: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No worksheets yet. Run `edusheet generate` or `edusheet seed`.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-14s  %-8s  %5s  %s\n",
			"ID", "Updated", "Subject", "Grade", "Câu", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, ws := range list {
			fmt.Fprintf(out, "%-36s  %-16s  %-14s  %-8s  %5d  %s\n",
				ws.ID,
				ws.UpdatedAt.Local().Format("2006-01-02 15:04"),
				truncate(ws.SubjectName, 14),
				ws.GradeLevel.Label(),
				len(ws.Questions),
				ws.Title,
			)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a worksheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws, err := getWorksheet(cmd, e, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), detail.Render(ws, answers, showWidth))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a worksheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.WorksheetRepo().Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("worksheet %s not found", args[0])
			}
			return fmt.Errorf("delete worksheet: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a worksheet and its answer key as an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws, err := getWorksheet(cmd, e, args[0])
		if err != nil {
			return err
		}
		if out == "" {
			out = ws.ID + ".xlsx"
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := export.WriteWorksheet(f, ws); err != nil {
			f.Close()
			return fmt.Errorf("write workbook: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the sample worksheets to the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		samples := worksheet.Samples(time.Now())
		for i := range samples {
			if err := e.store.WorksheetRepo().Save(cmd.Context(), &samples[i]); err != nil {
				return fmt.Errorf("save sample %s: %w", samples[i].ID, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample worksheets.\n", len(samples))
		return nil
	},
}

func getWorksheet(cmd *cobra.Command, e *env, id string) (*worksheet.Worksheet, error) {
	ws, err := e.store.WorksheetRepo().Get(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("worksheet %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get worksheet: %w", err)
	}
	return ws, nil
}

func init() {
	showCmd.Flags().BoolP("answers", "a", false, "Include the answer key")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default <id>.xlsx)")
}
