package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// Client-facing error messages
const (
	ErrMsgInternal        = "Internal server error."
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgUnknownAction   = "Unknown action."
	ErrMsgInvalidAction   = "Invalid action"
	ErrMsgBadgeNotFound   = "Badge not found."
	ErrMsgTaskNotFound    = "Task not found."
	ErrMsgBadgeSaveFailed = "Something went wrong while saving the badge."
	ErrMsgFAQsFailed      = "Failed to manage FAQs"
	ErrMsgFAQsLoadFailed  = "Failed to load FAQs"
	ErrMsgProductsFailed  = "Failed to load products"
)

// ErrorResponse is the body of every failed admin API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation that has nothing else to return
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondJSON writes an uncached JSON response
func respondJSON(w http.ResponseWriter, logger zerolog.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, logger zerolog.Logger, status int, message string) {
	respondJSON(w, logger, status, ErrorResponse{Error: message})
}

// errorStatus maps a service error to its status code and client message.
// notFoundMsg is used for *domain.NotFoundError; unknown errors become 500.
func errorStatus(err error, notFoundMsg string) (int, string) {
	var validationErr *domain.ValidationError
	var remoteErr *domain.RemoteAPIError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorized
	case domain.IsNotFound(err):
		return http.StatusNotFound, notFoundMsg
	case errors.As(err, &remoteErr):
		return http.StatusBadRequest, remoteErr.Error()
	default:
		return http.StatusInternalServerError, ErrMsgInternal
	}
}
