package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/schemagen/schemagen/internal/branding"
	"github.com/schemagen/schemagen/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage project settings",
	Long: `Read and write the project configuration stored in .schemagen.yaml at the
project root. Environment variables (SCHEMAGEN_<KEY>, dots become underscores)
and a .env file in the project root override the file.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a resolved configuration value, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tENV")
		for _, s := range cfg.Settings() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Value, branding.EnvVar(s.Key))
		}
		return w.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Write a configuration value to the project config file",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(configPath(), key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:         "validate",
	Short:       "Check the project config file against its schema",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		file := configPath()
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "No config file at %s; defaults apply.\n", file)
			return nil
		}

		result, err := config.ValidateFile(file)
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(out, "✓ %s is valid\n", file)
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "✗ %s\n", issue)
		}
		return &config.InvalidError{File: file, Issues: result.Issues}
	},
}
