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

const (
	msgTaskTitleRequired  = "Title is required."
	msgTaskUpdateRequired = "ID and title are required."
	msgTaskDeleteRequired = "ID is required for deletion."
)

// TaskService handles the per-shop to-do list
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
}

// UpdateTaskInput represents a full overwrite of a task's mutable fields
type UpdateTaskInput struct {
	ID          string `form:"id" validate:"required"`
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Completed   bool   `form:"completed"`
}

type taskIDInput struct {
	ID string `form:"id" validate:"required"`
}

// ListTasks returns the shop's tasks, newest first
func (s *TaskService) ListTasks(ctx context.Context, shop string) ([]*domain.Task, error) {
	if shop == "" {
		return nil, domain.ErrUnauthorized
	}

	tasks, err := s.repo.ListByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores a new, not yet completed task for the shop
func (s *TaskService) CreateTask(ctx context.Context, shop string, input CreateTaskInput) (*domain.Task, error) {
	if shop == "" {
		return nil, domain.ErrUnauthorized
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := checkInput(input, msgTaskTitleRequired); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Shop:        shop,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("taskId", task.ID).Msg("Created task")
	return task, nil
}

// UpdateTask overwrites title, description and completion of one of the shop's tasks
func (s *TaskService) UpdateTask(ctx context.Context, shop string, input UpdateTaskInput) (*domain.Task, error) {
	if shop == "" {
		return nil, domain.ErrUnauthorized
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := checkInput(input, msgTaskUpdateRequired); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          input.ID,
		Shop:        shop,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("taskId", task.ID).
		Bool("completed", task.Completed).
		Msg("Updated task")

	return task, nil
}

// DeleteTask removes one of the shop's tasks
func (s *TaskService) DeleteTask(ctx context.Context, shop string, id string) error {
	if shop == "" {
		return domain.ErrUnauthorized
	}
	if err := checkInput(taskIDInput{ID: id}, msgTaskDeleteRequired); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shop, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info().Str("shop", shop).Str("taskId", id).Msg("Deleted task")
	return nil
}

// DeleteCompletedTasks removes every completed task of the shop and reports how many went
func (s *TaskService) DeleteCompletedTasks(ctx context.Context, shop string) (int64, error) {
	if shop == "" {
		return 0, domain.ErrUnauthorized
	}

	deleted, err := s.repo.DeleteCompleted(ctx, shop)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed tasks: %w", err)
	}

	s.logger.Info().Str("shop", shop).Int64("deleted", deleted).Msg("Deleted completed tasks")
	return deleted, nil
}
