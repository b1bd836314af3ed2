package shopify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/infrastructure/metrics"
	"merchant-admin-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// Gateway implements AdminGateway over the Admin GraphQL API.
// Every document is sent with variables; values are never spliced into query text.
type Gateway struct {
	pool   *ClientPool
	logger zerolog.Logger
}

// NewGateway creates an Admin API gateway backed by the client pool
func NewGateway(pool *ClientPool, logger zerolog.Logger) ports.AdminGateway {
	return &Gateway{
		pool:   pool,
		logger: logger,
	}
}

// query runs one document for the shop and decodes its data into out
func (g *Gateway) query(ctx context.Context, shop string, accessToken string, doc *Document, vars map[string]interface{}, out interface{}) (err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveShopifyRequest(doc.Name, started, err)
	}()

	if err := doc.checkVariables(vars); err != nil {
		return err
	}

	client, err := g.pool.Get(shop, accessToken)
	if err != nil {
		return err
	}

	if err := client.GraphQL.Query(ctx, doc.Query, vars, out); err != nil {
		g.logger.Error().
			Err(err).
			Str("shop", shop).
			Str("operation", doc.Name).
			Dur("elapsed", time.Since(started)).
			Msg("Admin API operation failed")

		var responseErr goshopify.ResponseError
		if errors.As(err, &responseErr) && responseErr.Status == 401 {
			g.pool.Evict(shop)
		}
		return fmt.Errorf("failed to run %s: %w", doc.Name, err)
	}

	g.logger.Debug().
		Str("shop", shop).
		Str("operation", doc.Name).
		Dur("elapsed", time.Since(started)).
		Msg("Admin API operation completed")

	return nil
}

// cursorVariable maps the empty cursor to null so the connection starts at the beginning
func cursorVariable(after string) interface{} {
	if after == "" {
		return nil
	}
	return after
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ProductCursors returns up to first edge cursors after the given cursor
func (g *Gateway) ProductCursors(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.CursorPage, error) {
	var resp productCursorsResponse
	vars := map[string]interface{}{
		"first": first,
		"after": cursorVariable(after),
	}
	if err := g.query(ctx, shop, accessToken, productCursorsQuery, vars, &resp); err != nil {
		return nil, err
	}

	page := &domain.CursorPage{
		Cursors:     make([]string, 0, len(resp.Products.Edges)),
		HasNextPage: resp.Products.PageInfo.HasNextPage,
		EndCursor:   stringValue(resp.Products.PageInfo.EndCursor),
	}
	for _, edge := range resp.Products.Edges {
		page.Cursors = append(page.Cursors, edge.Cursor)
	}
	return page, nil
}

// ProductsPage returns up to first products after the given cursor with their badge label
func (g *Gateway) ProductsPage(ctx context.Context, shop string, accessToken string, first int, after string) (*domain.ProductPage, error) {
	var resp productsPageResponse
	vars := map[string]interface{}{
		"first":     first,
		"after":     cursorVariable(after),
		"namespace": domain.MetafieldNamespace,
		"key":       domain.MetafieldKeyBadge,
	}
	if err := g.query(ctx, shop, accessToken, productsPageQuery, vars, &resp); err != nil {
		return nil, err
	}

	page := &domain.ProductPage{
		Products: make([]domain.Product, 0, len(resp.Products.Edges)),
		PageInfo: domain.PageInfo{
			HasNextPage:     resp.Products.PageInfo.HasNextPage,
			HasPreviousPage: resp.Products.PageInfo.HasPreviousPage,
			StartCursor:     stringValue(resp.Products.PageInfo.StartCursor),
			EndCursor:       stringValue(resp.Products.PageInfo.EndCursor),
		},
	}
	for _, edge := range resp.Products.Edges {
		badge := domain.BadgeNone
		if edge.Node.Metafield != nil && edge.Node.Metafield.Value != "" {
			badge = edge.Node.Metafield.Value
		}
		page.Products = append(page.Products, domain.Product{
			ID:        edge.Node.ID,
			Title:     edge.Node.Title,
			Inventory: edge.Node.TotalInventory,
			Badge:     badge,
		})
	}
	return page, nil
}

// ProductOptions returns the first products as id/title pairs
func (g *Gateway) ProductOptions(ctx context.Context, shop string, accessToken string, first int) ([]domain.ProductOption, error) {
	var resp productOptionsResponse
	vars := map[string]interface{}{
		"first": first,
	}
	if err := g.query(ctx, shop, accessToken, productOptionsQuery, vars, &resp); err != nil {
		return nil, err
	}

	options := make([]domain.ProductOption, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		options = append(options, domain.ProductOption{ID: edge.Node.ID, Title: edge.Node.Title})
	}
	return options, nil
}

// ProductMetafield returns the raw metafield value, or nil when the metafield is unset
// or the product does not exist.
func (g *Gateway) ProductMetafield(ctx context.Context, shop string, accessToken string, productID string, namespace string, key string) (*string, error) {
	var resp productMetafieldResponse
	vars := map[string]interface{}{
		"id":        productID,
		"namespace": namespace,
		"key":       key,
	}
	if err := g.query(ctx, shop, accessToken, productMetafieldQuery, vars, &resp); err != nil {
		return nil, err
	}

	if resp.Product == nil || resp.Product.Metafield == nil {
		return nil, nil
	}
	value := resp.Product.Metafield.Value
	return &value, nil
}

// SetMetafield writes one metafield; userErrors come back as *domain.RemoteAPIError
func (g *Gateway) SetMetafield(ctx context.Context, shop string, accessToken string, input domain.MetafieldInput) (err error) {
	defer func() {
		metrics.MetafieldWrites.WithLabelValues(input.Key, metrics.Outcome(err)).Inc()
	}()

	var resp metafieldsSetResponse
	vars := map[string]interface{}{
		"metafields": []metafieldsSetInput{{
			OwnerID:   input.OwnerID,
			Namespace: input.Namespace,
			Key:       input.Key,
			Type:      input.Type,
			Value:     input.Value,
		}},
	}
	if err := g.query(ctx, shop, accessToken, metafieldsSetMutation, vars, &resp); err != nil {
		return err
	}

	if userErrors := resp.MetafieldsSet.UserErrors; len(userErrors) > 0 {
		remoteErr := &domain.RemoteAPIError{UserErrors: make([]domain.UserError, 0, len(userErrors))}
		for _, ue := range userErrors {
			remoteErr.UserErrors = append(remoteErr.UserErrors, domain.UserError{Field: ue.Field, Message: ue.Message})
		}

		g.logger.Warn().
			Str("shop", shop).
			Str("ownerId", input.OwnerID).
			Str("key", input.Key).
			Str("error", remoteErr.Error()).
			Msg("Metafield write rejected")

		return remoteErr
	}

	return nil
}
