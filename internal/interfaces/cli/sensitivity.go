package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

func newSensitivityCmd() *cobra.Command {
	var (
		category string
		grid     []int
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep one risk category across approval-risk ratings",
		Long: `Evaluates the portfolio IRR at every combination of risk level (low, high)
and the given approval-risk grid for a single category, holding everything
else at the baseline.`,
		Example: `  helios sensitivity --category Permitting
  helios sensitivity --category Interconnection --grid 1,4,8,12,15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}
			if category == "" {
				return errors.InvalidParam("--category is required")
			}

			resp, err := c.svc.Sensitivity(cmd.Context(), scenario.SweepRequest{
				Category:      category,
				ApprovalRisks: grid,
			})
			if err != nil {
				return err
			}

			if c.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return renderSweep(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "name of the risk category to sweep")
	cmd.Flags().IntSliceVar(&grid, "grid", []int{1, 5, 10, 15}, "approval-risk grid axis")
	return cmd
}

func renderSweep(cmd *cobra.Command, resp *scenario.SweepResponse) error {
	out := cmd.OutOrStdout()
	res := resp.Result

	fmt.Fprintf(out, "Run %s\n", resp.RunID)
	fmt.Fprintf(out, "Category %q, baseline portfolio IRR %s\n\n", res.Category, percent(resp.BaselineIRR))

	tw := newTable(out)
	fmt.Fprint(tw, "LEVEL")
	for _, ar := range res.ApprovalRisks {
		fmt.Fprintf(tw, "\tRISK %d", ar)
	}
	fmt.Fprintln(tw)

	for _, row := range []struct {
		label string
		irrs  []float64
	}{
		{"low", res.Low.IRRs},
		{"high", res.High.IRRs},
	} {
		fmt.Fprint(tw, row.label)
		for _, irr := range row.irrs {
			fmt.Fprintf(tw, "\t%s", percent(irr))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
