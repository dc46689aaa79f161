package cli

import (
	"fmt"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/schemagen/schemagen/internal/report"
	"github.com/schemagen/schemagen/internal/templates"
	"github.com/schemagen/schemagen/internal/workspace"
)

var (
	templatesOutput   string
	templatesEjectDir string
	templatesForce    bool
)

func init() {
	templatesListCmd.Flags().StringVarP(&templatesOutput, "output", "o", "text", "Output format: text, json, yaml")
	templatesEjectCmd.Flags().StringVar(&templatesEjectDir, "dir", "", "Destination relative to the project root (default: templates_dir)")
	templatesEjectCmd.Flags().BoolVar(&templatesForce, "force", false, "Overwrite templates that already exist")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesEjectCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and customize the file templates",
	Long: `Templates are embedded in the binary. A file with the same name under the
project's templates_dir (plus a .tmpl suffix) takes precedence.`,
}

type templateEntry struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates and where each one is loaded from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(templatesOutput)
		if err != nil {
			return err
		}
		ws, err := workspace.NewOS(rootDir, logger)
		if err != nil {
			return err
		}
		store := templateStore(ws)

		var entries []templateEntry
		for _, name := range templates.Names() {
			src, err := store.Source(name)
			if err != nil {
				return err
			}
			entries = append(entries, templateEntry{Name: name, Source: src})
		}

		if format != report.FormatText {
			return report.Encode(cmd.OutOrStdout(), format, entries)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tSOURCE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Source)
		}
		return w.Flush()
	},
}

var templatesEjectCmd = &cobra.Command{
	Use:   "eject",
	Short: "Copy the embedded templates into the project for editing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := templatesEjectDir
		if dir == "" {
			dir = cfg.TemplatesDir()
		}
		ws, err := workspace.NewOS(rootDir, logger)
		if err != nil {
			return err
		}

		res, err := templates.Eject(ws.Sub(dir), templatesForce)
		if err != nil {
			return fmt.Errorf("ejecting templates: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, f := range res.Written {
			fmt.Fprintf(out, "✓ Wrote %s\n", path.Join(dir, f))
		}
		for _, f := range res.Skipped {
			fmt.Fprintf(out, "- Kept %s (exists, use --force to overwrite)\n", path.Join(dir, f))
		}
		if dir != cfg.TemplatesDir() {
			fmt.Fprintf(out, "\nSet templates_dir to use them: %s config set templates_dir %s\n", rootCmd.Name(), dir)
		}
		return nil
	},
}
