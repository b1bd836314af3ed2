package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRespondJSON_EncodeFailureUsesInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	rec := httptest.NewRecorder()
	respondJSON(rec, logger, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, buf.String(), "Failed to encode JSON response")
}

func TestRespondError_WritesErrorBody(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()

	respondError(rec, zerolog.New(&buf), http.StatusBadRequest, ErrMsgInvalidAction)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Invalid action"}`, rec.Body.String())
	assert.Empty(t, buf.String())
}
