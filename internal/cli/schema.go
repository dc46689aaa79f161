package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemagen/schemagen/internal/config"
	"github.com/schemagen/schemagen/internal/prompt"
	"github.com/schemagen/schemagen/internal/report"
	"github.com/schemagen/schemagen/internal/scaffold"
	"github.com/schemagen/schemagen/internal/templates"
	"github.com/schemagen/schemagen/internal/workspace"
)

var (
	schemaType   string
	schemaDryRun bool
	schemaDiff   bool
	schemaOutput string
)

// interactive reports whether missing request values may be prompted for.
var interactive = func() bool {
	return prompt.IsTerminal(os.Stdin) && prompt.IsTerminal(os.Stdout)
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaType, "type", "t", "", "Schema type: document, singleton, object")
	schemaCmd.Flags().BoolVar(&schemaDryRun, "dry-run", false, "Show what would change without writing files")
	schemaCmd.Flags().BoolVar(&schemaDiff, "diff", false, "Print a unified diff of every change (implies --dry-run)")
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:     "schema [feature] [name]",
	Aliases: []string{"gen"},
	Short:   "Scaffold a schema and its data layer in a feature",
	Long: `Create the schema definition for <name> in <feature> and register it in the
feature's schema barrel. Documents and singletons also get a loader, a query,
query hooks, a context hook and context/provider modules, each registered in
the shared modules and barrels of the feature.

Missing arguments are prompted for when running in a terminal.

Examples:
  schemagen schema blog author --type document
  schemagen gen blog tag -t object --dry-run --diff`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(schemaOutput)
	if err != nil {
		return err
	}
	if err := config.CheckVersion(cfg.Requires(), buildVersion); err != nil {
		return err
	}

	req, err := resolveRequest(args, schemaType)
	if err != nil {
		return err
	}
	plan, err := scaffold.NewPlan(req, planOptions())
	if err != nil {
		return err
	}

	ws, err := workspace.NewOS(rootDir, logger)
	if err != nil {
		return err
	}
	target := ws
	dryRun := schemaDryRun || schemaDiff
	if dryRun {
		target = ws.DryRun()
	}

	planner := scaffold.NewPlanner(target, templateStore(ws), logger)
	rep := planner.Execute(plan)
	rep.DryRun = dryRun

	var diffs []report.FileDiff
	if schemaDiff {
		for _, p := range target.Touched() {
			d, err := target.Diff(p)
			if err != nil {
				return fmt.Errorf("diffing %s: %w", p, err)
			}
			diffs = append(diffs, report.FileDiff{Path: p, Diff: d})
		}
	}

	if err := report.New(cmd.OutOrStdout(), format).Report(rep, diffs); err != nil {
		return err
	}
	logger.Info("scaffold finished",
		zap.String("feature", req.Feature),
		zap.String("name", req.Name),
		zap.Int("failed", rep.Count(scaffold.StatusFailed)))
	return rep.Err()
}

// resolveRequest builds a request from positional args and the type flag,
// prompting for whatever is missing when attached to a terminal.
func resolveRequest(args []string, typeFlag string) (scaffold.Request, error) {
	var req scaffold.Request
	if len(args) > 0 {
		req.Feature = args[0]
	}
	if len(args) > 1 {
		req.Name = args[1]
	}
	if typeFlag != "" {
		t, err := scaffold.ParseSchemaType(typeFlag)
		if err != nil {
			return req, err
		}
		req.Type = t
	}

	if len(prompt.Questions(req)) == 0 {
		return req, nil
	}
	if !interactive() {
		if err := req.Validate(); err != nil {
			return req, err
		}
		return req, errors.New("--type is required when not running in a terminal")
	}
	return prompt.New(os.Stdin, os.Stdout, os.Stderr).Complete(req)
}

func planOptions() scaffold.PlanOptions {
	return scaffold.PlanOptions{
		FeaturesDir: cfg.FeaturesDir(),
		Dedupe:      cfg.Dedupe(),
	}
}

func templateStore(ws *workspace.Workspace) *templates.Store {
	return templates.New(ws.Sub(cfg.TemplatesDir()))
}
