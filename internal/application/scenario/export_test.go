package scenario

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Helios-Economics/pkg/errors"
)

func TestExportCashFlows_CSVShape(t *testing.T) {
	svc := newTestService()
	var buf bytes.Buffer

	summary, err := svc.ExportCashFlows(context.Background(), ExportRequest{Format: FormatCSV}, &buf)
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, summary.Format)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, int64(buf.Len()), summary.Bytes)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header + 27 flow years + summary header + 5 summary rows.
	require.Len(t, records, 1+27+1+5)
	assert.Equal(t, summary.Rows, len(records))

	assert.Equal(t,
		[]string{"year", "phase", "cash_flow", "expected_cash_flow",
			"percent_of_pipeline", "pipeline_expected_cash_flow"},
		records[0])

	assert.Equal(t, "development", records[1][1])
	assert.Equal(t, "construction", records[2][1])
	assert.Equal(t, "operation", records[3][1])
	assert.Equal(t, "operation", records[27][1])

	// Development spend happens before any gate; from construction on the
	// alive fraction is the constant cumulative probability.
	assert.Equal(t, "1.000000", records[1][4])
	assert.Equal(t, records[2][4], records[27][4])
	aliveFraction, err := strconv.ParseFloat(records[2][4], 64)
	require.NoError(t, err)
	assert.Greater(t, aliveFraction, 0.0)
	assert.Less(t, aliveFraction, 1.0)

	// Pipeline column is the expected flow scaled by the default pipeline of
	// ten projects.
	expected, err := strconv.ParseFloat(records[2][3], 64)
	require.NoError(t, err)
	pipeline, err := strconv.ParseFloat(records[2][5], 64)
	require.NoError(t, err)
	assert.InDelta(t, expected*10, pipeline, 0.05)

	assert.Equal(t, "metric", records[28][0])
	assert.Equal(t, "successful_project_irr", records[29][0])
	assert.Equal(t, "pipeline_size", records[33][0])
	assert.Equal(t, "10", records[33][1])
}

func TestExportCashFlows_DefaultsToCSV(t *testing.T) {
	svc := newTestService()
	var buf bytes.Buffer

	summary, err := svc.ExportCashFlows(context.Background(), ExportRequest{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, summary.Format)
}

func TestExportCashFlows_UnsupportedFormat(t *testing.T) {
	svc := newTestService()

	_, err := svc.ExportCashFlows(context.Background(),
		ExportRequest{Format: "parquet"}, &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExportFormatInvalid))
}

func TestExportCashFlows_ProjectionErrorPropagates(t *testing.T) {
	svc := newTestService()

	req := ExportRequest{Format: FormatCSV}
	lvl := 99
	req.Overrides = []CategoryOverride{{Name: "Permitting", ApprovalRisk: &lvl}}

	_, err := svc.ExportCashFlows(context.Background(), req, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeApprovalRiskInvalid))
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestExportCashFlows_WriteFailure(t *testing.T) {
	svc := newTestService()

	_, err := svc.ExportCashFlows(context.Background(),
		ExportRequest{Format: FormatCSV}, brokenWriter{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExportWriteFailed))
}
