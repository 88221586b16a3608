package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorFormat(t *testing.T) {
	e := New(ErrCodeCategoryNotFound, "risk category not found")
	assert.Equal(t, "[RISK_001] risk category not found", e.Error())

	withDetail := e.WithDetail(`name "Zoning"`)
	assert.Equal(t, `[RISK_001] risk category not found: name "Zoning"`, withDetail.Error())

	// WithDetail is copy-on-write.
	assert.Empty(t, e.Detail)
}

func TestNew_CapturesStack(t *testing.T) {
	e := New(ErrCodeInternal, "boom")
	assert.Contains(t, e.Stack, "errors_test.go")
}

func TestWrap(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	})

	t.Run("wraps and unwraps", func(t *testing.T) {
		cause := stderrors.New("disk full")
		e := Wrap(cause, ErrCodeExportWriteFailed, "failed to stream CSV")

		require.NotNil(t, e)
		assert.Equal(t, ErrCodeExportWriteFailed, e.Code)
		assert.ErrorIs(t, e, cause)
	})

	t.Run("unknown code inherits wrapped AppError code", func(t *testing.T) {
		inner := New(ErrCodeSweepGridEmpty, "empty grid")
		outer := Wrap(inner, CodeUnknown, "sweep failed")
		assert.Equal(t, ErrCodeSweepGridEmpty, outer.Code)
	})
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := New(ErrCodeCategoryNotFound, "no such category")
	mid := fmt.Errorf("projecting scenario: %w", inner)
	outer := Wrap(mid, ErrCodeProjectionFailed, "projection failed")

	assert.True(t, IsCode(outer, ErrCodeProjectionFailed))
	assert.True(t, IsCode(outer, ErrCodeCategoryNotFound))
	assert.False(t, IsCode(outer, ErrCodeSweepGridEmpty))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestInspectionHelpers(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeCategoryNotFound, "x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(Internal("x")))

	assert.True(t, IsValidation(InvalidParam("x")))
	assert.True(t, IsValidation(New(ErrCodeValidation, "x")))
	assert.False(t, IsValidation(RateLimit("x")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeDuplicateCategory, GetCode(New(ErrCodeDuplicateCategory, "dup")))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeCategoryNotFound, http.StatusNotFound},
		{ErrCodeApprovalRiskInvalid, http.StatusBadRequest},
		{ErrCodeDuplicateCategory, http.StatusConflict},
		{ErrCodeSweepGridEmpty, http.StatusBadRequest},
		{ErrCodeProjectionFailed, http.StatusInternalServerError},
		{ErrorCode("NOPE_999"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusForCode(tt.code))
		})
	}
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "RISK", ModuleForCode(ErrCodeCategoryNotFound))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
	assert.Equal(t, "SENS", ModuleForCode(ErrCodeSweepGridEmpty))
}

func TestClientServerClassification(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeBadRequest))
	assert.False(t, IsServerError(ErrCodeBadRequest))
	assert.True(t, IsServerError(ErrCodeInternal))
	assert.False(t, IsClientError(ErrCodeInternal))
}
