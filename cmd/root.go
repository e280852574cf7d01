package cmd

import (
	"github.com/abhisek/edusheet/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edusheet",
	Short: "Worksheet generator and online practice for teachers",
	Long: "Edusheet generates worksheets from lesson content with an LLM, keeps a local library, " +
		"and shares worksheets as self-contained links that students take and grade offline.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUSHEET_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path from the --db flag when set.
// An empty path means the configured db_path applies.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return "", nil
}
