package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
)

func newProjectCmd() *cobra.Command {
	var overrides []string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a cash-flow projection and report both IRRs",
		Long: `Runs the configured baseline scenario, optionally adjusting individual
risk categories, and prints the year-by-year cash flows with the
successful-project and portfolio IRRs.`,
		Example: `  helios project
  helios project --override "Permitting=12"
  helios project --override "Interconnection=15:high" -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}

			req, err := projectionRequest(overrides)
			if err != nil {
				return err
			}

			resp, err := c.svc.Projection(cmd.Context(), req)
			if err != nil {
				return err
			}

			if c.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return renderProjection(cmd, resp)
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "override", nil,
		`adjust one category: "Name=approvalRisk" or "Name=approvalRisk:level" (repeatable)`)
	return cmd
}

// projectionRequest converts parsed --override flags into a service request.
func projectionRequest(overrides []string) (scenario.ProjectionRequest, error) {
	specs, err := parseOverrides(overrides)
	if err != nil {
		return scenario.ProjectionRequest{}, err
	}

	var req scenario.ProjectionRequest
	for i := range specs {
		o := scenario.CategoryOverride{
			Name:         specs[i].Name,
			ApprovalRisk: &specs[i].ApprovalRisk,
			Level:        specs[i].Level,
		}
		req.Overrides = append(req.Overrides, o)
	}
	return req, nil
}

func renderProjection(cmd *cobra.Command, resp *scenario.ProjectionResponse) error {
	out := cmd.OutOrStdout()
	res := resp.Result

	fmt.Fprintf(out, "Run %s\n\n", resp.RunID)

	tw := newTable(out)
	fmt.Fprintln(tw, "YEAR\tPHASE\tCASH FLOW\tEXPECTED")
	for i, flow := range res.Flows {
		phase := "operation"
		switch i {
		case 0:
			phase = "development"
		case 1:
			phase = "construction"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, phase, money(flow), money(res.ExpectedFlows[i]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSuccessful-project IRR:      %s\n", percent(res.SuccessfulProjectIRR))
	fmt.Fprintf(out, "Portfolio IRR:               %s\n", percent(res.PortfolioIRR))
	fmt.Fprintf(out, "Pipeline reaching NTP:       %s\n", percent(res.ProjectsReachingNTP))
	fmt.Fprintf(out, "Total development expense:   %s\n", money(res.TotalDevEx))
	fmt.Fprintf(out, "Total construction cost:     %s\n", money(res.TotalCapEx))
	return nil
}
