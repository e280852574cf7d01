package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/edusheet/internal/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import the worksheet library and settings",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every worksheet and saved setting to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		b, err := e.store.ExportAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d worksheets to %s\n", len(b.Worksheets), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore worksheets and settings from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var b store.Backup
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.store.ImportAll(cmd.Context(), &b)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d worksheets\n", n)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
