package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeNotImplemented     ErrorCode = "COMMON_008"
)

// Sentinel codes used by cross-layer helpers.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Risk-model error codes.
const (
	ErrCodeCategoryNotFound    ErrorCode = "RISK_001"
	ErrCodeApprovalRiskInvalid ErrorCode = "RISK_002"
	ErrCodeRiskLevelInvalid    ErrorCode = "RISK_003"
	ErrCodeWorstCaseOutOfRange ErrorCode = "RISK_004"
	ErrCodeDuplicateCategory   ErrorCode = "RISK_005"
)

// Projection error codes.
const (
	ErrCodeProjectionFailed     ErrorCode = "PROJ_001"
	ErrCodeProjectLengthInvalid ErrorCode = "PROJ_002"
)

// Sensitivity-sweep error codes.
const (
	ErrCodeSweepGridEmpty ErrorCode = "SENS_001"
)

// Export error codes.
const (
	ErrCodeExportWriteFailed   ErrorCode = "EXP_001"
	ErrCodeExportFormatInvalid ErrorCode = "EXP_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeCategoryNotFound:    http.StatusNotFound,
	ErrCodeApprovalRiskInvalid: http.StatusBadRequest,
	ErrCodeRiskLevelInvalid:    http.StatusBadRequest,
	ErrCodeWorstCaseOutOfRange: http.StatusBadRequest,
	ErrCodeDuplicateCategory:   http.StatusConflict,

	ErrCodeProjectionFailed:     http.StatusInternalServerError,
	ErrCodeProjectLengthInvalid: http.StatusBadRequest,

	ErrCodeSweepGridEmpty: http.StatusBadRequest,

	ErrCodeExportWriteFailed:   http.StatusInternalServerError,
	ErrCodeExportFormatInvalid: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeCategoryNotFound:    "risk category not found",
	ErrCodeApprovalRiskInvalid: "approval risk out of range",
	ErrCodeRiskLevelInvalid:    "invalid risk level",
	ErrCodeWorstCaseOutOfRange: "worst-case probability out of range",
	ErrCodeDuplicateCategory:   "duplicate risk category",

	ErrCodeProjectionFailed:     "cash-flow projection failed",
	ErrCodeProjectLengthInvalid: "invalid project length",

	ErrCodeSweepGridEmpty: "sensitivity grid has no approval-risk values",

	ErrCodeExportWriteFailed:   "failed to write export",
	ErrCodeExportFormatInvalid: "unsupported export format",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
