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

// MongoBadgeRepository implements BadgeRepository using MongoDB
type MongoBadgeRepository struct {
	collection *mongo.Collection
}

// NewMongoBadgeRepository creates a new MongoDB badge repository
func NewMongoBadgeRepository(db *mongo.Database) ports.BadgeRepository {
	return &MongoBadgeRepository{
		collection: db.Collection(badgesCollection),
	}
}

// Create creates a new badge
func (r *MongoBadgeRepository) Create(ctx context.Context, badge *domain.Badge) error {
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, entity.MongoBadgeDocFromDomain(badge))
	if err != nil {
		return fmt.Errorf("failed to create badge: %w", err)
	}

	return nil
}

// GetByID retrieves a badge by id
func (r *MongoBadgeRepository) GetByID(ctx context.Context, id string) (*domain.Badge, error) {
	var doc entity.MongoBadgeDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}

	return doc.ToDomain(), nil
}

// List retrieves all badges, newest first
func (r *MongoBadgeRepository) List(ctx context.Context) ([]*domain.Badge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer cursor.Close(ctx)

	badges := []*domain.Badge{}
	for cursor.Next(ctx) {
		var doc entity.MongoBadgeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode badge: %w", err)
		}
		badges = append(badges, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return badges, nil
}

// Update overwrites name and icon and fills in the stored creation time
func (r *MongoBadgeRepository) Update(ctx context.Context, badge *domain.Badge) error {
	update := bson.M{"$set": bson.M{
		"name": badge.Name,
		"icon": string(badge.Icon),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc entity.MongoBadgeDoc
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": badge.ID}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.NotFoundError{Resource: "badge", ID: badge.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to update badge: %w", err)
	}

	badge.CreatedAt = doc.CreatedAt
	return nil
}

// Delete deletes a badge by id and returns it
func (r *MongoBadgeRepository) Delete(ctx context.Context, id string) (*domain.Badge, error) {
	var doc entity.MongoBadgeDoc
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &domain.NotFoundError{Resource: "badge", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete badge: %w", err)
	}

	return doc.ToDomain(), nil
}
