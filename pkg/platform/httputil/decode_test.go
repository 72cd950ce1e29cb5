package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "uenvalidator/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainRequest struct {
	Value string `json:"value"`
}

type preparedRequest struct {
	Value      string `json:"value"`
	normalized bool
}

func (r *preparedRequest) Normalize() {
	r.normalized = true
	r.Value = strings.TrimSpace(r.Value)
}

func (r *preparedRequest) Validate() error {
	if r.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

type domainErrorRequest struct {
	Value string `json:"value"`
}

func (r *domainErrorRequest) Validate() error {
	if r.Value == "" {
		return dErrors.New(dErrors.CodeBadRequest, "value is required")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"value":"T19LL0001K"}`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[plainRequest](w, req, discardLogger(), ctx, "req-1")

		assert.True(t, ok)
		require.NotNil(t, result)
		assert.Equal(t, "T19LL0001K", result.Value)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{nope`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[plainRequest](w, req, discardLogger(), ctx, "req-1")

		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w)["error"])
	})

	t.Run("oversized body is 413", func(t *testing.T) {
		body := `{"value":"` + strings.Repeat("x", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(w, req.Body, 16)

		_, ok := DecodeJSON[plainRequest](w, req, discardLogger(), ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "payload_too_large", decodeError(t, w)["error"])
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes before validating", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"value":"  12345678A "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[preparedRequest](w, req, discardLogger(), ctx, "req-1")

		assert.True(t, ok)
		require.NotNil(t, result)
		assert.True(t, result.normalized)
		assert.Equal(t, "12345678A", result.Value)
	})

	t.Run("plain validation error becomes validation_error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"value":"   "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[preparedRequest](w, req, discardLogger(), ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "validation_error", resp["error"])
		assert.Equal(t, "value is required", resp["error_description"])
	})

	t.Run("domain error code is preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"value":""}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[domainErrorRequest](w, req, discardLogger(), ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, "bad_request", decodeError(t, w)["error"])
	})
}

func TestPrepareRequest_NonPreparable(t *testing.T) {
	assert.NoError(t, PrepareRequest(&plainRequest{}))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", dErrors.New(dErrors.CodeValidation, "too long"), http.StatusBadRequest, "validation_error"},
		{"unsupported", dErrors.New(dErrors.CodeUnsupportedFormat, "form only"), http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"not found", dErrors.New(dErrors.CodeNotFound, ""), http.StatusNotFound, "not_found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w)["error"])
		})
	}
}
