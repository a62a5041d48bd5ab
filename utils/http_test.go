package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestWriteJSON(t *testing.T) {
	t.Run("successful write", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "test"}

		err := WriteJSON(w, http.StatusOK, data)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response map[string]string
		err = json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "test", response["message"])
	})

	t.Run("nil data", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestWriteOK(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteOK(w, map[string]string{"access_token": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "abc", response["access_token"], "payload is written unwrapped")
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteCreated(w, map[string]interface{}{"organization": nil})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	value, ok := response["organization"]
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteMessage(w, "Successfully logged out"))

	assert.Equal(t, http.StatusOK, w.Code)
	var response MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Successfully logged out", response.Message)
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	details := map[string]interface{}{"field": "email"}

	err := WriteBadRequest(w, "Invalid input", details)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeError(t, w)
	assert.Equal(t, "bad_request", response.Error)
	assert.Equal(t, "Invalid input", response.Message)
	assert.Equal(t, "email", response.Details["field"])
}

func TestWriteDefaultMessages(t *testing.T) {
	tests := []struct {
		name        string
		write       func(w http.ResponseWriter) error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			write:       func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") },
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "unauthorized",
			wantMessage: "Authentication required",
		},
		{
			name:        "unauthorized with message",
			write:       func(w http.ResponseWriter) error { return WriteUnauthorized(w, "Could not validate credentials") },
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "unauthorized",
			wantMessage: "Could not validate credentials",
		},
		{
			name:        "not found",
			write:       func(w http.ResponseWriter) error { return WriteNotFound(w, "") },
			wantStatus:  http.StatusNotFound,
			wantCode:    "not_found",
			wantMessage: "Resource not found",
		},
		{
			name:        "method not allowed",
			write:       WriteMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "method_not_allowed",
			wantMessage: "Method not allowed",
		},
		{
			name:        "service unavailable",
			write:       func(w http.ResponseWriter) error { return WriteServiceUnavailable(w, "", nil) },
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "service_unavailable",
			wantMessage: "Service unavailable",
		},
		{
			name:        "internal server error",
			write:       func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") },
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, tt.write(w))

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeError(t, w)
			assert.Equal(t, tt.wantCode, response.Error)
			assert.Equal(t, tt.wantMessage, response.Message)
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name              string
		status            int
		code              string
		expectedErrorType string
	}{
		{
			name:              "explicit code wins",
			status:            http.StatusBadRequest,
			code:              "duplicate_email",
			expectedErrorType: "duplicate_email",
		},
		{
			name:              "bad request",
			status:            http.StatusBadRequest,
			expectedErrorType: "bad_request",
		},
		{
			name:              "unauthorized",
			status:            http.StatusUnauthorized,
			expectedErrorType: "unauthorized",
		},
		{
			name:              "not found",
			status:            http.StatusNotFound,
			expectedErrorType: "not_found",
		},
		{
			name:              "unknown status defaults to internal error",
			status:            http.StatusTeapot,
			expectedErrorType: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			err := WriteError(w, tt.status, tt.code, "message", nil)
			require.NoError(t, err)

			assert.Equal(t, tt.status, w.Code)
			response := decodeError(t, w)
			assert.Equal(t, tt.expectedErrorType, response.Error)
			assert.Equal(t, "message", response.Message)
			assert.Nil(t, response.Details)
		})
	}
}
