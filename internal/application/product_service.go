package application

import (
	"context"
	"fmt"
	"math"
	"strings"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

const (
	// DefaultProductsPageSize is the number of products shown per page of the badge list
	DefaultProductsPageSize = 5

	// maxEdgesPerRequest is the Admin API ceiling for a connection's first argument
	maxEdgesPerRequest = 250

	msgProductIDRequired = "Product ID is required."
)

// ProductService lists products with their badge labels and assigns labels
type ProductService struct {
	gateway  ports.AdminGateway
	badges   ports.BadgeRepository
	pageSize int
	logger   zerolog.Logger
}

// NewProductService creates a new product service; a pageSize below 1 uses the default
func NewProductService(
	gateway ports.AdminGateway,
	badges ports.BadgeRepository,
	pageSize int,
	logger zerolog.Logger,
) *ProductService {
	if pageSize < 1 {
		pageSize = DefaultProductsPageSize
	}
	return &ProductService{
		gateway:  gateway,
		badges:   badges,
		pageSize: pageSize,
		logger:   logger,
	}
}

// ProductListing is one page of the product badge list
type ProductListing struct {
	Products        []domain.Product `json:"products"`
	BadgeList       []*domain.Badge  `json:"badgeList"`
	HasNextPage     bool             `json:"hasNextPage"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	PageInfo        domain.PageInfo  `json:"pageInfo"`
}

// SetBadgeInput assigns a badge label to a product
type SetBadgeInput struct {
	ProductID string `form:"productId" validate:"required"`
	BadgeName string `form:"badgeName"`
}

// PageSize returns the configured number of products per page
func (s *ProductService) PageSize() int {
	return s.pageSize
}

// ListPage returns the 1-based page of products together with every badge.
// Pages below 1 are treated as page 1.
func (s *ProductService) ListPage(ctx context.Context, session *domain.Session, page int) (*ProductListing, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if page < 1 {
		page = 1
	}

	listing := &ProductListing{
		Products:        []domain.Product{},
		HasPreviousPage: page > 1,
	}

	cursor, ok, err := s.cursorBefore(ctx, session, page)
	if err != nil {
		return nil, err
	}

	if ok {
		result, err := s.gateway.ProductsPage(ctx, session.Shop, session.AccessToken, s.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products page: %w", err)
		}
		if result.Products != nil {
			listing.Products = result.Products
		}
		listing.HasNextPage = result.PageInfo.HasNextPage
		listing.PageInfo = result.PageInfo
	} else {
		s.logger.Debug().
			Str("shop", session.Shop).
			Int("page", page).
			Msg("Requested page lies beyond the end of the catalog")
		listing.PageInfo.HasPreviousPage = true
	}

	badges, err := s.badges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	listing.BadgeList = badges

	return listing, nil
}

// cursorBefore finds the cursor of the last edge preceding the page.
// The catalog is walked from the start in chunks of at most maxEdgesPerRequest, so the
// cost grows linearly with the page number. ok is false when the catalog ends first.
func (s *ProductService) cursorBefore(ctx context.Context, session *domain.Session, page int) (string, bool, error) {
	if page <= 1 {
		return "", true, nil
	}
	// no catalog holds math.MaxInt products, so such a page is past the end
	if page-1 > math.MaxInt/s.pageSize {
		return "", false, nil
	}

	skip := (page - 1) * s.pageSize
	seen := 0
	after := ""
	for seen < skip {
		first := min(skip-seen, maxEdgesPerRequest)
		chunk, err := s.gateway.ProductCursors(ctx, session.Shop, session.AccessToken, first, after)
		if err != nil {
			return "", false, fmt.Errorf("failed to walk product cursors: %w", err)
		}
		if seen+len(chunk.Cursors) >= skip {
			return chunk.Cursors[skip-seen-1], true, nil
		}
		seen += len(chunk.Cursors)
		if !chunk.HasNextPage || len(chunk.Cursors) == 0 {
			break
		}
		after = chunk.EndCursor
	}

	return "", false, nil
}

// SetBadge writes the badge label metafield of a product.
// An empty or "undefined" badge name clears the label to domain.BadgeNone.
func (s *ProductService) SetBadge(ctx context.Context, session *domain.Session, input SetBadgeInput) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	input.ProductID = strings.TrimSpace(input.ProductID)
	if err := checkInput(input, msgProductIDRequired); err != nil {
		return err
	}

	label := strings.TrimSpace(input.BadgeName)
	if label == "" || label == "undefined" {
		label = domain.BadgeNone
	}

	err := s.gateway.SetMetafield(ctx, session.Shop, session.AccessToken, domain.MetafieldInput{
		OwnerID:   input.ProductID,
		Namespace: domain.MetafieldNamespace,
		Key:       domain.MetafieldKeyBadge,
		Type:      domain.MetafieldTypeSingleLineText,
		Value:     label,
	})
	if err != nil {
		return fmt.Errorf("failed to set product badge: %w", err)
	}

	s.logger.Info().
		Str("shop", session.Shop).
		Str("productId", input.ProductID).
		Str("badge", label).
		Msg("Updated product badge")

	return nil
}
