package ports

import (
	"context"

	"merchant-admin-layer/internal/domain"
)

// AdminGateway defines the Shopify Admin GraphQL operations used by the apps.
// Every call is made on behalf of one shop with that shop's access token.
type AdminGateway interface {
	// ProductCursors returns up to first edge cursors after the given cursor ("" = start)
	ProductCursors(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.CursorPage, error)

	// ProductsPage returns up to first products after the given cursor with their badge label
	ProductsPage(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.ProductPage, error)

	// ProductOptions returns the first products as id/title pairs
	ProductOptions(ctx context.Context, shop string, accessToken string, first int) ([]domain.ProductOption, error)

	// ProductMetafield returns the raw metafield value, or nil when the metafield or product is missing
	ProductMetafield(ctx context.Context, shop string, accessToken string, productID string, namespace string, key string) (*string, error)

	// SetMetafield writes one metafield; mutation userErrors come back as *domain.RemoteAPIError
	SetMetafield(ctx context.Context, shop string, accessToken string, input domain.MetafieldInput) error
}

// SessionTokenVerifier validates App Bridge session tokens and returns the shop they were issued for
type SessionTokenVerifier interface {
	Verify(token string) (string, error)
}

// WebhookHandler processes verified webhook deliveries for the topics it claims
type WebhookHandler interface {
	CanHandle(topic string) bool
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}
