package handlers

import (
	"net/http"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// SensitivityHandler serves sensitivity-sweep endpoints.
type SensitivityHandler struct {
	svc *scenario.Service
	log logging.Logger
}

// NewSensitivityHandler constructs the handler.
func NewSensitivityHandler(svc *scenario.Service, log logging.Logger) *SensitivityHandler {
	return &SensitivityHandler{svc: svc, log: log.Named("sensitivity")}
}

// Run handles POST /api/v1/sensitivity.
func (h *SensitivityHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req scenario.SweepRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.log)
		return
	}

	resp, err := h.svc.Sensitivity(r.Context(), req)
	if err != nil {
		writeError(w, r, err, h.log)
		return
	}
	writeJSON(w, r, http.StatusOK, common.NewSuccessResponse(resp), h.log)
}
