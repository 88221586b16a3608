package handlers

import (
	"net/http"

	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/pkg/errors"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// HealthHandler serves liveness, readiness, and version endpoints.
type HealthHandler struct {
	version common.VersionInfo
	log     logging.Logger

	// ready reports whether the server has finished startup.  The engine has
	// no external dependencies, so readiness flips once and stays.
	ready func() bool
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(version common.VersionInfo, ready func() bool, log logging.Logger) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{version: version, ready: ready, log: log.Named("health")}
}

// Livez handles GET /healthz.
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK,
		common.NewSuccessResponse(map[string]string{"status": "ok"}), h.log)
}

// Readyz handles GET /readyz.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if !h.ready() {
		writeJSON(w, r, http.StatusServiceUnavailable,
			common.NewErrorResponse(errors.New(errors.ErrCodeServiceUnavailable, "server is starting")), h.log)
		return
	}
	writeJSON(w, r, http.StatusOK,
		common.NewSuccessResponse(map[string]string{"status": "ready"}), h.log)
}

// Version handles GET /version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, common.NewSuccessResponse(h.version), h.log)
}
