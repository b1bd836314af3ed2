package shopify

import (
	"fmt"

	"merchant-admin-layer/internal/infrastructure/metrics"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultClientCacheSize bounds how many per-shop clients stay warm
const DefaultClientCacheSize = 256

type pooledClient struct {
	accessToken string
	client      *goshopify.Client
}

// ClientPool caches one Admin API client per shop.
// A cached client is replaced when the shop presents a different access token.
type ClientPool struct {
	app     goshopify.App
	options []goshopify.Option
	cache   *lru.Cache[string, *pooledClient]
}

// NewClientPool creates a pool holding at most size clients
func NewClientPool(app goshopify.App, size int, options ...goshopify.Option) (*ClientPool, error) {
	if size < 1 {
		size = DefaultClientCacheSize
	}

	cache, err := lru.NewWithEvict[string, *pooledClient](size, func(string, *pooledClient) {
		metrics.ShopifyClientsCached.Dec()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client cache: %w", err)
	}

	return &ClientPool{
		app:     app,
		options: options,
		cache:   cache,
	}, nil
}

// Get returns the shop's client, creating it on first use
func (p *ClientPool) Get(shop string, accessToken string) (*goshopify.Client, error) {
	if cached, ok := p.cache.Get(shop); ok && cached.accessToken == accessToken {
		return cached.client, nil
	}

	client, err := goshopify.NewClient(p.app, shop, accessToken, p.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	p.cache.Remove(shop)
	p.cache.Add(shop, &pooledClient{accessToken: accessToken, client: client})
	metrics.ShopifyClientsCached.Inc()

	return client, nil
}

// Evict drops the shop's client
func (p *ClientPool) Evict(shop string) {
	p.cache.Remove(shop)
}

// Len returns the number of cached clients
func (p *ClientPool) Len() int {
	return p.cache.Len()
}
