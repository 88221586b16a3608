package handlers

import (
	"bytes"
	"net/http"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
)

// ExportHandler streams cash-flow exports.
type ExportHandler struct {
	svc *scenario.Service
	log logging.Logger
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *scenario.Service, log logging.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log.Named("export")}
}

// CashFlows handles POST /api/v1/export/cashflows.  The response body is the
// CSV document itself rather than the JSON envelope; errors detected before
// the first write still return the envelope.
func (h *ExportHandler) CashFlows(w http.ResponseWriter, r *http.Request) {
	var req scenario.ExportRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err, h.log)
			return
		}
	}

	// Render into memory first so request errors surface as a JSON envelope
	// rather than a truncated download.  A projection export is a few KB.
	var buf bytes.Buffer
	if _, err := h.svc.ExportCashFlows(r.Context(), req, &buf); err != nil {
		writeError(w, r, err, h.log)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cashflows.csv"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Error("failed to stream export", logging.Err(err))
	}
}
