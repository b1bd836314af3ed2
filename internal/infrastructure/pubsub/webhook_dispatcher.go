package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// subscription binds a handler to the dispatcher
type subscription struct {
	id      string
	handler ports.WebhookHandler
}

// WebhookDispatcher routes verified webhook deliveries to the handlers subscribed to them.
// Handlers run synchronously in subscription order so the HTTP response reflects their outcome.
type WebhookDispatcher struct {
	mu            sync.RWMutex
	subscriptions []*subscription
	logger        zerolog.Logger
}

// NewWebhookDispatcher creates a new webhook dispatcher
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		logger: logger,
	}
}

// Subscribe registers a handler for the topics it claims
func (d *WebhookDispatcher) Subscribe(handler ports.WebhookHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := fmt.Sprintf("subscription-%d", len(d.subscriptions)+1)
	d.subscriptions = append(d.subscriptions, &subscription{
		id:      id,
		handler: handler,
	})

	d.logger.Debug().
		Str("subscriptionId", id).
		Str("handler", fmt.Sprintf("%T", handler)).
		Msg("Webhook subscription created")
}

// Dispatch runs every matching handler and returns how many ran.
// A handler failure does not stop the others; all failures are joined.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) (int, error) {
	matching := d.matching(event)
	if len(matching) == 0 {
		d.logger.Info().
			Str("topic", event.Topic).
			Str("shop", event.Shop).
			Msg("No handler subscribed to webhook topic, acknowledging")
		return 0, nil
	}

	var errs []error
	for _, sub := range matching {
		if err := sub.handler.Handle(ctx, event); err != nil {
			d.logger.Error().
				Err(err).
				Str("subscriptionId", sub.id).
				Str("topic", event.Topic).
				Str("shop", event.Shop).
				Msg("Webhook handler failed")
			errs = append(errs, err)
		}
	}

	d.logger.Debug().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Int("handlers", len(matching)).
		Msg("Dispatched webhook event")

	return len(matching), errors.Join(errs...)
}

func (d *WebhookDispatcher) matching(event *domain.WebhookEvent) []*subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var matching []*subscription
	for _, sub := range d.subscriptions {
		if sub.handler.CanHandle(event.Topic) {
			matching = append(matching, sub)
		}
	}
	return matching
}
