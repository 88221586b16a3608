package scenario

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Helios-Economics/pkg/errors"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// ExportFormat selects the wire format of a cash-flow export.
type ExportFormat string

const (
	// FormatCSV is the only supported export format.  The constant exists so
	// the API surface can grow formats without changing request shapes.
	FormatCSV ExportFormat = "csv"
)

// ExportRequest describes one cash-flow export: a projection request plus a
// format selector.
type ExportRequest struct {
	ProjectionRequest
	Format ExportFormat `json:"format"`
}

// ExportSummary reports what an export wrote.
type ExportSummary struct {
	RunID      common.RunID `json:"run_id"`
	Format     ExportFormat `json:"format"`
	Rows       int          `json:"rows"`
	Bytes      int64        `json:"bytes"`
	FinishedAt time.Time    `json:"finished_at"`
}

// countingWriter tracks bytes written through it for the export summary and
// byte-count metric.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// ExportCashFlows runs a projection and streams the year-by-year series to w
// as CSV.  Columns:
//
//	year, phase, cash_flow, expected_cash_flow, percent_of_pipeline,
//	pipeline_expected_cash_flow
//
// percent_of_pipeline is the fraction of pipeline projects still alive in
// that year; the pipeline column is the expected flow scaled by the
// configured pipeline size, the portfolio-level dollar view.  A trailing
// summary block carries the run's headline figures so a spreadsheet import
// needs no second request.
func (s *Service) ExportCashFlows(ctx context.Context, req ExportRequest, w io.Writer) (*ExportSummary, error) {
	if req.Format == "" {
		req.Format = FormatCSV
	}
	if req.Format != FormatCSV {
		s.exportOutcome(req.Format, "rejected")
		return nil, errors.New(errors.ErrCodeExportFormatInvalid, "unsupported export format").
			WithDetail(string(req.Format))
	}

	proj, err := s.Projection(ctx, req.ProjectionRequest)
	if err != nil {
		s.exportOutcome(req.Format, "rejected")
		return nil, err
	}

	_, sys, _, err := s.resolve(req.Categories, req.Overrides, req.System, req.Financial)
	if err != nil {
		// resolve already succeeded inside Projection; this cannot fail here.
		return nil, err
	}
	pipeline := sys.PipelineSize
	if pipeline < 1 {
		pipeline = 1
	}

	cw := &countingWriter{w: w}
	enc := csv.NewWriter(cw)
	res := proj.Result

	rows := 0
	write := func(record []string) error {
		if err := enc.Write(record); err != nil {
			return err
		}
		rows++
		return nil
	}

	if err := write([]string{
		"year", "phase", "cash_flow", "expected_cash_flow",
		"percent_of_pipeline", "pipeline_expected_cash_flow",
	}); err != nil {
		return nil, s.exportWriteError(req.Format, err)
	}
	alive := res.PercentOfPipeline()
	for i, flow := range res.Flows {
		expected := res.ExpectedFlows[i]
		record := []string{
			strconv.Itoa(i),
			phaseForYear(i),
			formatMoney(flow),
			formatMoney(expected),
			formatRate(alive[i]),
			formatMoney(expected * float64(pipeline)),
		}
		if err := write(record); err != nil {
			return nil, s.exportWriteError(req.Format, err)
		}
	}

	summary := [][]string{
		{"metric", "value", "", "", "", ""},
		{"successful_project_irr", formatRate(res.SuccessfulProjectIRR), "", "", "", ""},
		{"portfolio_irr", formatRate(res.PortfolioIRR), "", "", "", ""},
		{"projects_reaching_ntp", formatRate(res.ProjectsReachingNTP), "", "", "", ""},
		{"expected_projects", strconv.FormatFloat(res.ProjectsReachingNTP*float64(pipeline), 'f', 2, 64), "", "", "", ""},
		{"pipeline_size", strconv.Itoa(pipeline), "", "", "", ""},
	}
	for _, record := range summary {
		if err := write(record); err != nil {
			return nil, s.exportWriteError(req.Format, err)
		}
	}

	enc.Flush()
	if err := enc.Error(); err != nil {
		return nil, s.exportWriteError(req.Format, err)
	}

	s.exportOutcome(req.Format, "ok")
	s.metrics.AddCounter(prometheus.MetricExportBytes, float64(cw.n),
		map[string]string{prometheus.LabelFormat: string(req.Format)})

	s.log.Info("cash-flow export completed",
		logging.String("run_id", proj.RunID.String()),
		logging.String("format", string(req.Format)),
		logging.Int("rows", rows),
		logging.Int64("bytes", cw.n))

	return &ExportSummary{
		RunID:      proj.RunID,
		Format:     req.Format,
		Rows:       rows,
		Bytes:      cw.n,
		FinishedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) exportOutcome(format ExportFormat, status string) {
	s.metrics.IncCounter(prometheus.MetricExportRuns, map[string]string{
		prometheus.LabelFormat: string(format),
		prometheus.LabelStatus: status,
	})
}

func (s *Service) exportWriteError(format ExportFormat, err error) error {
	s.exportOutcome(format, "failed")
	return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "failed to stream export")
}

// phaseForYear labels the three phases of the projection timeline.
func phaseForYear(i int) string {
	switch i {
	case 0:
		return "development"
	case 1:
		return "construction"
	default:
		return "operation"
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
