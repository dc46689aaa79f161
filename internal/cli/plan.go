package cli

import (
	"github.com/spf13/cobra"

	"github.com/schemagen/schemagen/internal/report"
	"github.com/schemagen/schemagen/internal/scaffold"
)

var (
	planType   string
	planOutput string
)

func init() {
	planCmd.Flags().StringVarP(&planType, "type", "t", "", "Schema type: document, singleton, object")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan [feature] [name]",
	Short: "Print the ordered operations for a schema without touching files",
	Long: `Print every operation "schema" would run for the request, in execution order,
with the condition under which it is skipped and the operations it must follow.

Example:
  schemagen plan blog author --type singleton --output yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(planOutput)
		if err != nil {
			return err
		}
		req, err := resolveRequest(args, planType)
		if err != nil {
			return err
		}
		plan, err := scaffold.NewPlan(req, planOptions())
		if err != nil {
			return err
		}
		return report.New(cmd.OutOrStdout(), format).Plan(plan)
	},
}
