package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Client-facing validation messages for badge intents
const (
	msgBadgeCreateRequired = "Name and icon are required."
	msgBadgeUpdateRequired = "ID, name and icon are required."
	msgBadgeDeleteRequired = "ID is required for deletion."
	msgBadgeGetRequired    = "ID is required to fetch badge."
)

// BadgeService handles badge management
type BadgeService struct {
	repo   ports.BadgeRepository
	logger zerolog.Logger
}

// NewBadgeService creates a new badge service
func NewBadgeService(repo ports.BadgeRepository, logger zerolog.Logger) *BadgeService {
	return &BadgeService{
		repo:   repo,
		logger: logger,
	}
}

// CreateBadgeInput represents input for creating a badge
type CreateBadgeInput struct {
	Name string `form:"name" validate:"required"`
	Icon string `form:"icon" validate:"required,badgeicon"`
}

// UpdateBadgeInput represents input for updating a badge
type UpdateBadgeInput struct {
	ID   string `form:"id" validate:"required"`
	Name string `form:"name" validate:"required"`
	Icon string `form:"icon" validate:"required,badgeicon"`
}

type badgeIDInput struct {
	ID string `form:"id" validate:"required"`
}

// ListBadges returns every badge, newest first
func (s *BadgeService) ListBadges(ctx context.Context) ([]*domain.Badge, error) {
	badges, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	return badges, nil
}

// CreateBadge validates and stores a new badge
func (s *BadgeService) CreateBadge(ctx context.Context, input CreateBadgeInput) (*domain.Badge, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkInput(input, msgBadgeCreateRequired); err != nil {
		return nil, err
	}

	badge := &domain.Badge{
		Name:      input.Name,
		Icon:      domain.BadgeIcon(input.Icon),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, badge); err != nil {
		return nil, fmt.Errorf("failed to create badge: %w", err)
	}

	s.logger.Info().
		Str("badgeId", badge.ID).
		Str("name", badge.Name).
		Str("icon", string(badge.Icon)).
		Msg("Created badge")

	return badge, nil
}

// UpdateBadge overwrites the name and icon of an existing badge
func (s *BadgeService) UpdateBadge(ctx context.Context, input UpdateBadgeInput) (*domain.Badge, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := checkInput(input, msgBadgeUpdateRequired); err != nil {
		return nil, err
	}

	badge := &domain.Badge{
		ID:   input.ID,
		Name: input.Name,
		Icon: domain.BadgeIcon(input.Icon),
	}
	if err := s.repo.Update(ctx, badge); err != nil {
		return nil, fmt.Errorf("failed to update badge: %w", err)
	}

	s.logger.Info().Str("badgeId", badge.ID).Msg("Updated badge")
	return badge, nil
}

// DeleteBadge removes a badge and returns the deleted record
func (s *BadgeService) DeleteBadge(ctx context.Context, id string) (*domain.Badge, error) {
	if err := checkInput(badgeIDInput{ID: id}, msgBadgeDeleteRequired); err != nil {
		return nil, err
	}

	badge, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete badge: %w", err)
	}

	s.logger.Info().Str("badgeId", id).Msg("Deleted badge")
	return badge, nil
}

// GetBadge returns the badge with the given id, or nil when it does not exist
func (s *BadgeService) GetBadge(ctx context.Context, id string) (*domain.Badge, error) {
	if err := checkInput(badgeIDInput{ID: id}, msgBadgeGetRequired); err != nil {
		return nil, err
	}

	badge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}
	return badge, nil
}
