package repository

import (
	"context"
	"errors"
	"fmt"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/infrastructure/repository/entity"
	"merchant-admin-layer/internal/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBadgeRepository implements BadgeRepository on a relational store
type GormBadgeRepository struct {
	db *gorm.DB
}

// NewGormBadgeRepository creates a new relational badge repository
func NewGormBadgeRepository(db *gorm.DB) ports.BadgeRepository {
	return &GormBadgeRepository{db: db}
}

// Create creates a new badge
func (r *GormBadgeRepository) Create(ctx context.Context, badge *domain.Badge) error {
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity.BadgeModelFromDomain(badge)).Error; err != nil {
		return fmt.Errorf("failed to create badge: %w", err)
	}
	return nil
}

// GetByID retrieves a badge by id
func (r *GormBadgeRepository) GetByID(ctx context.Context, id string) (*domain.Badge, error) {
	var model entity.BadgeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}

	return model.ToDomain(), nil
}

// List retrieves all badges, newest first
func (r *GormBadgeRepository) List(ctx context.Context) ([]*domain.Badge, error) {
	var models []entity.BadgeModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	badges := make([]*domain.Badge, 0, len(models))
	for i := range models {
		badges = append(badges, models[i].ToDomain())
	}
	return badges, nil
}

// Update overwrites name and icon and fills in the stored creation time
func (r *GormBadgeRepository) Update(ctx context.Context, badge *domain.Badge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model entity.BadgeModel
		err := tx.First(&model, "id = ?", badge.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "badge", ID: badge.ID}
		}
		if err != nil {
			return fmt.Errorf("failed to load badge: %w", err)
		}

		model.Name = badge.Name
		model.Icon = string(badge.Icon)
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to update badge: %w", err)
		}

		badge.CreatedAt = model.CreatedAt
		return nil
	})
}

// Delete deletes a badge by id and returns it
func (r *GormBadgeRepository) Delete(ctx context.Context, id string) (*domain.Badge, error) {
	var model entity.BadgeModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&model, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "badge", ID: id}
		}
		if err != nil {
			return fmt.Errorf("failed to load badge: %w", err)
		}

		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete badge: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return model.ToDomain(), nil
}
