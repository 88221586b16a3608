package handlers

import (
	"net/http"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// ProjectionHandler serves projection and baseline-inspection endpoints.
type ProjectionHandler struct {
	svc *scenario.Service
	log logging.Logger
}

// NewProjectionHandler constructs the handler.
func NewProjectionHandler(svc *scenario.Service, log logging.Logger) *ProjectionHandler {
	return &ProjectionHandler{svc: svc, log: log.Named("projection")}
}

// Run handles POST /api/v1/projections.  An empty body runs the configured
// baseline scenario unchanged.
func (h *ProjectionHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req scenario.ProjectionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err, h.log)
			return
		}
	}

	resp, err := h.svc.Projection(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.log)
		return
	}
	writeJSON(w, r, http.StatusOK, common.NewSuccessResponse(resp), h.log)
}

// Baseline handles GET /api/v1/baseline: the configured scenario every run
// starts from.
func (h *ProjectionHandler) Baseline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, common.NewSuccessResponse(h.svc.Baseline()), h.log)
}
