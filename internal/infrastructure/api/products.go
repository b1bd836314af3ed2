package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// SetBadgeResponse is returned after a badge label is written to a product
type SetBadgeResponse struct {
	Success   bool               `json:"success"`
	ProductID string             `json:"productId,omitempty"`
	Errors    []domain.UserError `json:"errors,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// ProductHandler serves /api/products
type ProductHandler struct {
	service *application.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *application.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList returns one page of products with their badge labels
// @Summary List products with badge labels
// @Tags products
// @Produce json
// @Security SessionToken
// @Param page query int false "1-based page number"
// @Success 200 {object} application.ProductListing
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := parsePage(r.URL.Query().Get("page"))
	listing, err := h.service.ListPage(ctx, domain.GetSessionFromContext(ctx), page)
	if err != nil {
		status, message := errorStatus(err, ErrMsgProductsFailed)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Int("page", page).Msg("Failed to list products")
			message = ErrMsgProductsFailed
		}
		respondError(w, h.logger, status, message)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, listing)
}

// HandleSetBadge writes the badge label metafield of one product
// @Summary Assign a badge label to a product
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Security SessionToken
// @Param productId formData string true "Product GID"
// @Param badgeName formData string false "Badge name; empty clears to N/A"
// @Success 200 {object} SetBadgeResponse
// @Failure 400 {object} SetBadgeResponse
// @Failure 500 {object} SetBadgeResponse
// @Router /api/products [post]
func (h *ProductHandler) HandleSetBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input := application.SetBadgeInput{
		ProductID: r.FormValue("productId"),
		BadgeName: r.FormValue("badgeName"),
	}

	err := h.service.SetBadge(ctx, domain.GetSessionFromContext(ctx), input)
	if err == nil {
		respondJSON(w, h.logger, http.StatusOK, SetBadgeResponse{Success: true, ProductID: input.ProductID})
		return
	}

	var validationErr *domain.ValidationError
	var remoteErr *domain.RemoteAPIError
	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, h.logger, http.StatusBadRequest, SetBadgeResponse{
			Errors: []domain.UserError{{Field: []string{"productId"}, Message: validationErr.Message}},
		})
	case errors.As(err, &remoteErr):
		respondJSON(w, h.logger, http.StatusBadRequest, SetBadgeResponse{Errors: remoteErr.UserErrors})
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, h.logger, http.StatusUnauthorized, ErrMsgUnauthorized)
	default:
		h.logger.Error().Err(err).Str("productId", input.ProductID).Msg("Failed to save product badge")
		respondJSON(w, h.logger, http.StatusInternalServerError, SetBadgeResponse{Message: ErrMsgBadgeSaveFailed})
	}
}

// parsePage reads an optional sign and the leading decimal digits, so "2abc" is page 2.
// A value without leading digits is page 1; out of range values saturate.
func parsePage(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 1
	}
	page, _ := strconv.Atoi(s[:end])
	return page
}
