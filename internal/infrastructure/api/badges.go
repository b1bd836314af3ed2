package api

import (
	"net/http"

	"merchant-admin-layer/internal/application"

	"github.com/rs/zerolog"
)

// Badge form intents
const (
	IntentCreate  = "create"
	IntentUpdate  = "update"
	IntentDelete  = "delete"
	IntentGetByID = "getById"
)

// BadgeHandler serves /api/badges
type BadgeHandler struct {
	service *application.BadgeService
	logger  zerolog.Logger
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(service *application.BadgeService, logger zerolog.Logger) *BadgeHandler {
	return &BadgeHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList returns every badge, newest first
// @Summary List badges
// @Tags badges
// @Produce json
// @Success 200 {array} domain.Badge
// @Failure 500 {object} ErrorResponse
// @Router /api/badges [get]
func (h *BadgeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	badges, err := h.service.ListBadges(r.Context())
	if err != nil {
		h.fail(w, err, "list")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, badges)
}

// HandleAction dispatches on the intent form field
// @Summary Create, update, delete or fetch a badge
// @Tags badges
// @Accept x-www-form-urlencoded
// @Produce json
// @Param intent formData string true "create, update, delete or getById"
// @Param id formData string false "Badge ID"
// @Param name formData string false "Badge name"
// @Param icon formData string false "StarFilled, Fire, CirclePlus or Globe"
// @Success 200 {object} domain.Badge
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/badges [post]
func (h *BadgeHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	intent := r.FormValue("intent")

	switch intent {
	case IntentCreate:
		badge, err := h.service.CreateBadge(ctx, application.CreateBadgeInput{
			Name: r.FormValue("name"),
			Icon: r.FormValue("icon"),
		})
		if err != nil {
			h.fail(w, err, intent)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, badge)

	case IntentUpdate:
		badge, err := h.service.UpdateBadge(ctx, application.UpdateBadgeInput{
			ID:   r.FormValue("id"),
			Name: r.FormValue("name"),
			Icon: r.FormValue("icon"),
		})
		if err != nil {
			h.fail(w, err, intent)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, badge)

	case IntentDelete:
		badge, err := h.service.DeleteBadge(ctx, r.FormValue("id"))
		if err != nil {
			h.fail(w, err, intent)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, badge)

	case IntentGetByID:
		// A missing badge is answered with null, not 404
		badge, err := h.service.GetBadge(ctx, r.FormValue("id"))
		if err != nil {
			h.fail(w, err, intent)
			return
		}
		respondJSON(w, h.logger, http.StatusOK, badge)

	default:
		respondError(w, h.logger, http.StatusBadRequest, ErrMsgUnknownAction)
	}
}

func (h *BadgeHandler) fail(w http.ResponseWriter, err error, intent string) {
	status, message := errorStatus(err, ErrMsgBadgeNotFound)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("intent", intent).Msg("Badge request failed")
	}
	respondError(w, h.logger, status, message)
}
