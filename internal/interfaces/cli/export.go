package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

func newExportCmd() *cobra.Command {
	var (
		overrides []string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the projected cash flows as CSV",
		Long: `Runs a projection and writes the year-by-year actual, expected, and
pipeline-scaled cash flows as CSV, followed by a summary block with the
headline figures.`,
		Example: `  helios export --out cashflows.csv
  helios export --override "Permitting=12" --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := fromContext(cmd.Context())
			if err != nil {
				return err
			}

			projReq, err := projectionRequest(overrides)
			if err != nil {
				return err
			}
			req := scenario.ExportRequest{
				ProjectionRequest: projReq,
				Format:            scenario.FormatCSV,
			}

			if outPath == "" || outPath == "-" {
				_, err := c.svc.ExportCashFlows(cmd.Context(), req, cmd.OutOrStdout())
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "failed to create output file").
					WithDetail(outPath)
			}

			summary, exportErr := c.svc.ExportCashFlows(cmd.Context(), req, f)
			if closeErr := f.Close(); exportErr == nil && closeErr != nil {
				exportErr = errors.Wrap(closeErr, errors.ErrCodeExportWriteFailed, "failed to close output file")
			}
			if exportErr != nil {
				return exportErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows (%d bytes) to %s\n",
				summary.Rows, summary.Bytes, outPath)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&overrides, "override", nil,
		`adjust one category: "Name=approvalRisk" or "Name=approvalRisk:level" (repeatable)`)
	cmd.Flags().StringVar(&outPath, "out", "-", `output file path ("-" for stdout)`)
	return cmd
}
