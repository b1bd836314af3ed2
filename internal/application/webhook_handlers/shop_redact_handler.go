package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ShopRedactHandler erases what the apps keep about a shop once Shopify asks for it
type ShopRedactHandler struct {
	logger   zerolog.Logger
	tasks    ports.TaskRepository
	sessions ports.SessionRepository
}

// NewShopRedactHandler creates a new shop redact webhook handler
func NewShopRedactHandler(
	logger zerolog.Logger,
	tasks ports.TaskRepository,
	sessions ports.SessionRepository,
) *ShopRedactHandler {
	return &ShopRedactHandler{
		logger:   logger,
		tasks:    tasks,
		sessions: sessions,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ShopRedactHandler) CanHandle(topic string) bool {
	return topic == domain.TopicShopRedact
}

// Handle deletes the shop's tasks and sessions
func (h *ShopRedactHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	shopDomain := event.Shop
	if shopDomain == "" {
		var request struct {
			ShopDomain string `json:"shop_domain"`
		}
		if err := json.Unmarshal(event.Payload, &request); err != nil {
			return fmt.Errorf("failed to parse shop redact webhook payload: %w", err)
		}
		shopDomain = request.ShopDomain
	}
	if shopDomain == "" {
		return fmt.Errorf("shop redact webhook carries no shop domain")
	}

	deleted, err := h.tasks.DeleteAllForShop(ctx, shopDomain)
	if err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	if err := h.sessions.DeleteByShop(ctx, shopDomain); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	h.logger.Info().
		Str("shop", shopDomain).
		Int64("tasksDeleted", deleted).
		Msg("Shop data redacted")

	return nil
}
