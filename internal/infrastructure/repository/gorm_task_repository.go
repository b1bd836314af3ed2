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

// GormTaskRepository implements TaskRepository on a relational store
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new relational task repository
func NewGormTaskRepository(db *gorm.DB) ports.TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(entity.TaskModelFromDomain(task)).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByShop retrieves the shop's tasks, newest first
func (r *GormTaskRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Task, error) {
	var models []entity.TaskModel
	err := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].ToDomain())
	}
	return tasks, nil
}

// Update overwrites title, description and completion of a task owned by the shop
func (r *GormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model entity.TaskModel
		err := tx.First(&model, "id = ? AND shop = ?", task.ID, task.Shop).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "task", ID: task.ID}
		}
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		model.Title = task.Title
		model.Description = task.Description
		model.Completed = task.Completed
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		task.CreatedAt = model.CreatedAt
		return nil
	})
}

// Delete deletes a task owned by the shop
func (r *GormTaskRepository) Delete(ctx context.Context, shop string, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shop = ?", id, shop).
		Delete(&entity.TaskModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "task", ID: id}
	}
	return nil
}

// DeleteCompleted deletes the shop's completed tasks
func (r *GormTaskRepository) DeleteCompleted(ctx context.Context, shop string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("shop = ? AND completed = ?", shop, true).
		Delete(&entity.TaskModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete completed tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteAllForShop deletes every task of the shop
func (r *GormTaskRepository) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("shop = ?", shop).
		Delete(&entity.TaskModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete shop tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}
