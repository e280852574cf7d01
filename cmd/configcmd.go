package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/edusheet/internal/config"
	"github.com/abhisek/edusheet/internal/store"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: "Settings changed with `config set` are saved in the database and override the config " +
		"file and environment. Only these keys can be set:\n  " + strings.Join(config.SettableKeys, "\n  "),
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		val, ok := e.loader.Get(args[0])
		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), displayValue(args[0], val))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// Check the value resolves before persisting it.
		if err := e.loader.Apply(map[string]string{key: val}); err != nil {
			return err
		}
		if _, err := e.loader.Config(); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if err := e.store.KV().Set(cmd.Context(), store.NamespaceConfig, key, val); err != nil {
			return fmt.Errorf("save setting: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, val)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a saved setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.KV().Delete(cmd.Context(), store.NamespaceConfig, args[0]); err != nil {
			return fmt.Errorf("remove setting: %w", err)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		saved, err := e.store.KV().List(cmd.Context(), store.NamespaceConfig)
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, key := range e.loader.Keys() {
			val, _ := e.loader.Get(key)
			marker := " "
			if _, ok := saved[key]; ok {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-28s %s\n", marker, key, displayValue(key, val))
		}
		fmt.Fprintln(out, "\n* saved with `edusheet config set`")
		return nil
	},
}

// displayValue hides all but the last four characters of API keys.
func displayValue(key, val string) string {
	if !strings.HasSuffix(key, "api_key") || val == "" {
		return val
	}
	if len(val) <= 4 {
		return "****"
	}
	return "****" + val[len(val)-4:]
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
}
