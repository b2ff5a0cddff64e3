package pkg

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: grocery list", ErrNotFound), http.StatusNotFound},
		{ErrAuthRequired, http.StatusUnauthorized},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrRemoteUnavailable, http.StatusBadGateway},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapErrorToStatus(tt.err), tt.err.Error())
	}
}

func TestError_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, fmt.Errorf("%w: list missing", ErrNotFound))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "not found: list missing", resp.Error)
	assert.Equal(t, resp.Error, resp.Message)
}

func TestJSONWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	JSONWithMessage(w, http.StatusCreated, map[string]string{"id": "1"}, "saved")

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Message string            `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "1", resp.Data["id"])
	assert.Equal(t, "saved", resp.Message)
}
