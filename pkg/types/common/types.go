// Package common holds the small set of types shared across layer boundaries:
// the API response envelope, run identifiers, and build metadata.  Anything
// domain-specific belongs in internal/domain; this package must stay free of
// business logic.
package common

import (
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/Helios-Economics/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Run identifiers
// ─────────────────────────────────────────────────────────────────────────────

// RunID identifies a single projection, sweep, or export run across logs,
// metrics labels, and API responses.
type RunID string

// NewRunID returns a fresh random run identifier.
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (id RunID) String() string { return string(id) }

// ─────────────────────────────────────────────────────────────────────────────
// API response envelope
// ─────────────────────────────────────────────────────────────────────────────

// ErrorPayload is the wire form of an application error.  Stack traces are
// never serialized; they stay in logs.
type ErrorPayload struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Detail  string           `json:"detail,omitempty"`
}

// APIResponse is the uniform envelope for every JSON endpoint.  Exactly one of
// Data and Error is populated.
type APIResponse struct {
	Success   bool          `json:"success"`
	Data      interface{}   `json:"data,omitempty"`
	Error     *ErrorPayload `json:"error,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// NewErrorResponse builds an error envelope from any error.  AppErrors keep
// their code and detail; plain errors are reported as internal failures with
// the generic message, so accidental leakage of internal error text to API
// clients is structurally impossible.
func NewErrorResponse(err error) *APIResponse {
	payload := &ErrorPayload{
		Code:    errors.ErrCodeInternal,
		Message: errors.DefaultMessageForCode(errors.ErrCodeInternal),
	}
	if ae, ok := err.(*errors.AppError); ok {
		payload.Code = ae.Code
		payload.Message = ae.Message
		payload.Detail = ae.Detail
	}
	return &APIResponse{
		Success:   false,
		Error:     payload,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID returns the envelope with the request correlation ID set.
func (r *APIResponse) WithRequestID(id string) *APIResponse {
	r.RequestID = id
	return r
}

// ─────────────────────────────────────────────────────────────────────────────
// Build metadata
// ─────────────────────────────────────────────────────────────────────────────

// VersionInfo carries build-time metadata injected via -ldflags in cmd/*.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}
