package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"merchant-admin-layer/internal/domain"

	"github.com/rs/zerolog"
)

// CustomerPrivacyHandler acknowledges the customer privacy webhooks.
// Neither app stores customer data, so there is nothing to export or erase.
type CustomerPrivacyHandler struct {
	logger zerolog.Logger
}

// NewCustomerPrivacyHandler creates a new customer privacy webhook handler
func NewCustomerPrivacyHandler(logger zerolog.Logger) *CustomerPrivacyHandler {
	return &CustomerPrivacyHandler{
		logger: logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *CustomerPrivacyHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCustomersDataRequest ||
		topic == domain.TopicCustomersRedact
}

// Handle logs the request for audit purposes
func (h *CustomerPrivacyHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var request struct {
		ShopDomain string `json:"shop_domain"`
		Customer   struct {
			ID int64 `json:"id"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(event.Payload, &request); err != nil {
		return fmt.Errorf("failed to parse customer privacy webhook payload: %w", err)
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int64("customerId", request.Customer.ID).
		Msg("Customer privacy request acknowledged, no customer data stored")

	return nil
}
