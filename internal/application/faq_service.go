package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productOptionsLimit caps the product picker of the FAQ screen
const productOptionsLimit = 250

// FAQService manages the FAQ list stored in a product's JSON metafield
type FAQService struct {
	gateway ports.AdminGateway
	logger  zerolog.Logger
}

// NewFAQService creates a new FAQ service
func NewFAQService(gateway ports.AdminGateway, logger zerolog.Logger) *FAQService {
	return &FAQService{
		gateway: gateway,
		logger:  logger,
	}
}

// FAQMutationInput carries one add, edit or delete of a product's FAQ list
type FAQMutationInput struct {
	ProductID string           `form:"productId" validate:"required"`
	Intent    domain.FAQIntent `form:"intent" validate:"required,oneof=add edit delete"`
	FAQID     string           `form:"faqId" validate:"required_unless=Intent add"`
	Question  string           `form:"question" validate:"required_unless=Intent delete"`
	Answer    string           `form:"answer" validate:"required_unless=Intent delete"`
}

// ListProducts returns the products a merchant can attach FAQs to
func (s *FAQService) ListProducts(ctx context.Context, session *domain.Session) ([]domain.ProductOption, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	products, err := s.gateway.ProductOptions(ctx, session.Shop, session.AccessToken, productOptionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.ProductOption{}
	}
	return products, nil
}

// GetFAQs returns the product's FAQ list; a product without the metafield has none
func (s *FAQService) GetFAQs(ctx context.Context, session *domain.Session, productID string) ([]domain.FAQ, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.readFAQs(ctx, session, productID)
}

// ApplyFAQMutation reads the current list, applies the intent and writes the whole list back.
// Concurrent writers are not coordinated; the last write wins.
func (s *FAQService) ApplyFAQMutation(ctx context.Context, session *domain.Session, input FAQMutationInput) ([]domain.FAQ, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.Question = strings.TrimSpace(input.Question)
	input.Answer = strings.TrimSpace(input.Answer)
	if err := checkInput(input, ""); err != nil {
		return nil, err
	}

	faqs, err := s.readFAQs(ctx, session, input.ProductID)
	if err != nil {
		return nil, err
	}

	switch input.Intent {
	case domain.FAQIntentAdd:
		faqs = append(faqs, domain.FAQ{
			ID:       uuid.NewString(),
			Question: input.Question,
			Answer:   input.Answer,
		})
	case domain.FAQIntentEdit:
		for i := range faqs {
			if faqs[i].ID == input.FAQID {
				faqs[i].Question = input.Question
				faqs[i].Answer = input.Answer
				break
			}
		}
	case domain.FAQIntentDelete:
		kept := faqs[:0]
		for _, faq := range faqs {
			if faq.ID != input.FAQID {
				kept = append(kept, faq)
			}
		}
		faqs = kept
	}

	value, err := json.Marshal(faqs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode faqs: %w", err)
	}

	err = s.gateway.SetMetafield(ctx, session.Shop, session.AccessToken, domain.MetafieldInput{
		OwnerID:   input.ProductID,
		Namespace: domain.MetafieldNamespace,
		Key:       domain.MetafieldKeyFAQ,
		Type:      domain.MetafieldTypeJSON,
		Value:     string(value),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save faqs: %w", err)
	}

	s.logger.Info().
		Str("shop", session.Shop).
		Str("productId", input.ProductID).
		Str("intent", string(input.Intent)).
		Int("count", len(faqs)).
		Msg("Saved product FAQs")

	return faqs, nil
}

func (s *FAQService) readFAQs(ctx context.Context, session *domain.Session, productID string) ([]domain.FAQ, error) {
	raw, err := s.gateway.ProductMetafield(ctx, session.Shop, session.AccessToken, productID, domain.MetafieldNamespace, domain.MetafieldKeyFAQ)
	if err != nil {
		return nil, fmt.Errorf("failed to read faq metafield: %w", err)
	}

	faqs := []domain.FAQ{}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return faqs, nil
	}
	if err := json.Unmarshal([]byte(*raw), &faqs); err != nil {
		return nil, fmt.Errorf("failed to decode faq metafield: %w", err)
	}
	if faqs == nil {
		faqs = []domain.FAQ{}
	}
	return faqs, nil
}
