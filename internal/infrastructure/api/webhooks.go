package api

import (
	"context"
	"io"
	"net/http"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/infrastructure/metrics"

	"github.com/rs/zerolog"
)

// Shopify webhook headers
const (
	HeaderShopifyTopic      = "X-Shopify-Topic"
	HeaderShopifyShopDomain = "X-Shopify-Shop-Domain"
	HeaderShopifyWebhookID  = "X-Shopify-Webhook-Id"
)

const maxWebhookBodyBytes = 1 << 20

// WebhookVerifier checks the HMAC Shopify attaches to webhook deliveries.
// Implementations must leave the request body readable.
type WebhookVerifier interface {
	VerifyWebhookRequest(r *http.Request) bool
}

// EventDispatcher fans a verified webhook out to its handlers
type EventDispatcher interface {
	Dispatch(ctx context.Context, event *domain.WebhookEvent) (int, error)
}

// webhookHandler handles Shopify webhook requests
func webhookHandler(verifier WebhookVerifier, dispatcher EventDispatcher, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		topic := r.Header.Get(HeaderShopifyTopic)
		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

		if !verifier.VerifyWebhookRequest(r) {
			logger.Warn().Str("topic", topic).Msg("Webhook signature verification failed")
			metrics.WebhooksReceived.WithLabelValues(topic, metrics.StatusRejected).Inc()
			respondError(w, logger, http.StatusUnauthorized, "Invalid signature")
			return
		}

		if topic == "" {
			logger.Warn().Msg("Missing X-Shopify-Topic header")
			respondError(w, logger, http.StatusBadRequest, "Missing X-Shopify-Topic header")
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			respondError(w, logger, http.StatusBadRequest, "Failed to read request body")
			return
		}
		defer r.Body.Close()

		event := &domain.WebhookEvent{
			Topic:   topic,
			Shop:    r.Header.Get(HeaderShopifyShopDomain),
			Payload: payload,
		}

		handled, err := dispatcher.Dispatch(ctx, event)
		if err != nil {
			logger.Error().
				Err(err).
				Str("topic", topic).
				Str("shop", event.Shop).
				Str("webhookId", r.Header.Get(HeaderShopifyWebhookID)).
				Msg("Failed to dispatch webhook event")
			metrics.WebhooksReceived.WithLabelValues(topic, metrics.StatusError).Inc()

			// 500 makes Shopify retry the delivery
			respondError(w, logger, http.StatusInternalServerError, "Failed to process webhook event")
			return
		}

		metrics.WebhooksReceived.WithLabelValues(topic, metrics.StatusSuccess).Inc()
		logger.Info().
			Str("topic", topic).
			Str("shop", event.Shop).
			Int("handlers", handled).
			Msg("Processed webhook")

		respondJSON(w, logger, http.StatusOK, map[string]string{
			"received": "true",
		})
	}
}
