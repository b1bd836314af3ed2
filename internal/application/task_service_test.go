package application

import (
	"context"
	"testing"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testShop = "demo.myshopify.com"

func newTestTaskService() (*TaskService, *ports.MockTaskRepository) {
	repo := &ports.MockTaskRepository{}
	return NewTaskService(repo, zerolog.Nop()), repo
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("new task starts incomplete", func(t *testing.T) {
		svc, repo := newTestTaskService()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Shop == testShop && task.Title == "Ship orders" && !task.Completed
		})).Return(nil)

		task, err := svc.CreateTask(ctx, testShop, CreateTaskInput{Title: "Ship orders", Description: "today"})

		require.NoError(t, err)
		assert.False(t, task.Completed)
		assert.Equal(t, "today", task.Description)
		repo.AssertExpectations(t)
	})

	t.Run("title is required", func(t *testing.T) {
		svc, repo := newTestTaskService()
		_, err := svc.CreateTask(ctx, testShop, CreateTaskInput{Title: "  "})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Title is required.", verr.Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("shop is required", func(t *testing.T) {
		svc, _ := newTestTaskService()
		_, err := svc.CreateTask(ctx, "", CreateTaskInput{Title: "x"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites all fields within the shop", func(t *testing.T) {
		svc, repo := newTestTaskService()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.ID == "t1" && task.Shop == testShop && task.Completed && task.Description == ""
		})).Return(nil)

		task, err := svc.UpdateTask(ctx, testShop, UpdateTaskInput{ID: "t1", Title: "Done", Completed: true})

		require.NoError(t, err)
		assert.True(t, task.Completed)
		repo.AssertExpectations(t)
	})

	t.Run("task of another shop is not found", func(t *testing.T) {
		svc, repo := newTestTaskService()
		repo.On("Update", mock.Anything, mock.Anything).
			Return(&domain.NotFoundError{Resource: "task", ID: "t1"})

		_, err := svc.UpdateTask(ctx, "other.myshopify.com", UpdateTaskInput{ID: "t1", Title: "x"})

		assert.True(t, domain.IsNotFound(err))
	})
}

func TestDeleteTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("delete requires id", func(t *testing.T) {
		svc, _ := newTestTaskService()
		err := svc.DeleteTask(ctx, testShop, "")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("delete is scoped to shop", func(t *testing.T) {
		svc, repo := newTestTaskService()
		repo.On("Delete", mock.Anything, testShop, "t1").Return(nil)

		require.NoError(t, svc.DeleteTask(ctx, testShop, "t1"))
		repo.AssertExpectations(t)
	})

	t.Run("delete completed with no matches succeeds", func(t *testing.T) {
		svc, repo := newTestTaskService()
		repo.On("DeleteCompleted", mock.Anything, testShop).Return(int64(0), nil)

		deleted, err := svc.DeleteCompletedTasks(ctx, testShop)

		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}
