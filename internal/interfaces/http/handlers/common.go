// Package handlers implements the HTTP handlers of the projection API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/interfaces/http/middleware"
	"github.com/turtacn/Helios-Economics/pkg/errors"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// maxBodyBytes caps request bodies; scenario payloads are a few KB at most.
const maxBodyBytes = 1 << 20

// writeJSON writes the envelope with the given status.  Encoding failures at
// this point can only be logged; the status line has already been sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, resp *common.APIResponse, log logging.Logger) {
	resp.WithRequestID(middleware.GetRequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to encode response", logging.Err(err))
	}
}

// writeError maps an error to its HTTP status and writes the error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error, log logging.Logger) {
	status := errors.HTTPStatusForCode(errors.GetCode(err))
	if errors.IsServerError(errors.GetCode(err)) {
		log.Error("request failed",
			logging.String("request_id", middleware.GetRequestID(r.Context())),
			logging.Err(err))
	}
	writeJSON(w, r, status, common.NewErrorResponse(err), log)
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields so
// typos in parameter names fail loudly instead of silently using defaults.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "malformed request body")
	}
	return nil
}
