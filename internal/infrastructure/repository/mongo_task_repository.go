package repository

import (
	"context"
	"errors"
	"fmt"

	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/infrastructure/repository/entity"
	"merchant-admin-layer/internal/ports"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskRepository implements TaskRepository using MongoDB
type MongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a new MongoDB task repository
func NewMongoTaskRepository(db *mongo.Database) ports.TaskRepository {
	return &MongoTaskRepository{
		collection: db.Collection(tasksCollection),
	}
}

// Create creates a new task
func (r *MongoTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, entity.MongoTaskDocFromDomain(task))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListByShop retrieves the shop's tasks, newest first
func (r *MongoTaskRepository) ListByShop(ctx context.Context, shop string) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*domain.Task{}
	for cursor.Next(ctx) {
		var doc entity.MongoTaskDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return tasks, nil
}

// Update overwrites title, description and completion of a task owned by the shop
func (r *MongoTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	filter := bson.M{"_id": task.ID, "shop": task.Shop}
	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc entity.MongoTaskDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.NotFoundError{Resource: "task", ID: task.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	task.CreatedAt = doc.CreatedAt
	return nil
}

// Delete deletes a task owned by the shop
func (r *MongoTaskRepository) Delete(ctx context.Context, shop string, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "shop": shop})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return &domain.NotFoundError{Resource: "task", ID: id}
	}
	return nil
}

// DeleteCompleted deletes the shop's completed tasks
func (r *MongoTaskRepository) DeleteCompleted(ctx context.Context, shop string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop, "completed": true})
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed tasks: %w", err)
	}
	return result.DeletedCount, nil
}

// DeleteAllForShop deletes every task of the shop
func (r *MongoTaskRepository) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete shop tasks: %w", err)
	}
	return result.DeletedCount, nil
}
