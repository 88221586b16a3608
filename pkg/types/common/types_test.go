package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Helios-Economics/pkg/errors"
)

func TestNewRunID_Unique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEmpty(t, a.String())
	assert.NotEqual(t, a, b)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]int{"answer": 42}).WithRequestID("req-1")

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestNewErrorResponse_AppError(t *testing.T) {
	err := errors.New(errors.ErrCodeCategoryNotFound, "risk category not found").
		WithDetail(`name "Zoning"`)

	resp := NewErrorResponse(err)
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Equal(t, errors.ErrCodeCategoryNotFound, resp.Error.Code)
	assert.Equal(t, "risk category not found", resp.Error.Message)
	assert.Equal(t, `name "Zoning"`, resp.Error.Detail)
}

func TestNewErrorResponse_PlainErrorIsMasked(t *testing.T) {
	resp := NewErrorResponse(assert.AnError)

	require.NotNil(t, resp.Error)
	assert.Equal(t, errors.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}

func TestAPIResponse_JSONShape(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponse(errors.New(errors.ErrCodeSweepGridEmpty, "empty grid")))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data", "omitempty must drop the unused branch")
	assert.Contains(t, decoded, "error")
}
