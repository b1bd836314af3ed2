package api

import (
	"net/http"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// FAQsResponse carries a product's FAQ list
type FAQsResponse struct {
	Success bool         `json:"success,omitempty"`
	FAQs    []domain.FAQ `json:"faqs"`
}

// ProductOptionsResponse lists the products FAQs can be attached to
type ProductOptionsResponse struct {
	Products []domain.ProductOption `json:"products"`
}

// FAQHandler serves /api/faqs
type FAQHandler struct {
	service *application.FAQService
	logger  zerolog.Logger
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(service *application.FAQService, logger zerolog.Logger) *FAQHandler {
	return &FAQHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGet returns a product's FAQs, or the product picker list without productId
// @Summary Read FAQs or list products
// @Tags faqs
// @Produce json
// @Security SessionToken
// @Param productId query string false "Product GID"
// @Success 200 {object} FAQsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/faqs [get]
func (h *FAQHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := domain.GetSessionFromContext(ctx)
	productID := r.URL.Query().Get("productId")

	if productID == "" {
		products, err := h.service.ListProducts(ctx, session)
		if err != nil {
			h.fail(w, err, ErrMsgFAQsLoadFailed)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, ProductOptionsResponse{Products: products})
		return
	}

	faqs, err := h.service.GetFAQs(ctx, session, productID)
	if err != nil {
		h.fail(w, err, ErrMsgFAQsLoadFailed)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, FAQsResponse{FAQs: faqs})
}

// HandleMutation applies one add, edit or delete to a product's FAQ list
// @Summary Add, edit or delete a FAQ entry
// @Tags faqs
// @Accept x-www-form-urlencoded
// @Produce json
// @Security SessionToken
// @Param productId formData string true "Product GID"
// @Param intent formData string true "add, edit or delete"
// @Param faqId formData string false "FAQ entry ID (edit, delete)"
// @Param question formData string false "Question (add, edit)"
// @Param answer formData string false "Answer (add, edit)"
// @Success 200 {object} FAQsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/faqs [post]
func (h *FAQHandler) HandleMutation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	faqs, err := h.service.ApplyFAQMutation(ctx, domain.GetSessionFromContext(ctx), application.FAQMutationInput{
		ProductID: r.FormValue("productId"),
		Intent:    domain.FAQIntent(r.FormValue("intent")),
		FAQID:     r.FormValue("faqId"),
		Question:  r.FormValue("question"),
		Answer:    r.FormValue("answer"),
	})
	if err != nil {
		h.fail(w, err, ErrMsgFAQsFailed)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, FAQsResponse{Success: true, FAQs: faqs})
}

// fail answers 400 for caller and remote validation mistakes and 500 otherwise
func (h *FAQHandler) fail(w http.ResponseWriter, err error, fallback string) {
	status, message := errorStatus(err, fallback)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("FAQ request failed")
		message = fallback
	}
	respondError(w, h.logger, status, message)
}
