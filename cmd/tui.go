package cmd

import (
	"fmt"

	"github.com/abhisek/edusheet/internal/app"
	"github.com/abhisek/edusheet/internal/screens"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty start link opens the online runner above the home screen.
func runApp(cmd *cobra.Command, start string) error {
	e, err := openTUIEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	_, provErr := e.provider(cmd.Context())
	if provErr != nil {
		e.log.WithError(provErr).Info("LLM provider not configured; generation is unavailable")
	}

	opts := app.Options{
		Deps: screens.Deps{
			Worksheets:    e.store.WorksheetRepo(),
			PublicURL:     e.cfg.PublicURL,
			LLMConfigured: provErr == nil,
			Logger:        e.log,
		},
		Start: start,
	}
	if err := app.Run(opts); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

var takeCmd = &cobra.Command{
	Use:   "take <link|token>",
	Short: "Take a shared worksheet in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
