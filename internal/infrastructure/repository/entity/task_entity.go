package entity

import (
	"time"

	"merchant-admin-layer/internal/domain"
)

// TaskModel represents a task row in the relational store
type TaskModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Shop        string    `gorm:"not null;index:idx_tasks_shop_created,priority:1"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;index:idx_tasks_shop_created,priority:2"`
}

// TableName pins the table name shared with the migrations
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the row to a domain entity
func (m *TaskModel) ToDomain() *domain.Task {
	return &domain.Task{
		ID:          m.ID,
		Shop:        m.Shop,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
	}
}

// TaskModelFromDomain converts a domain entity to a row
func TaskModelFromDomain(task *domain.Task) *TaskModel {
	return &TaskModel{
		ID:          task.ID,
		Shop:        task.Shop,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
	}
}

// MongoTaskDoc represents a task in MongoDB
type MongoTaskDoc struct {
	ID          string    `bson:"_id"`
	Shop        string    `bson:"shop"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Completed   bool      `bson:"completed"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoTaskDoc) ToDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID,
		Shop:        d.Shop,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoTaskDocFromDomain converts a domain entity to a MongoDB document
func MongoTaskDocFromDomain(task *domain.Task) *MongoTaskDoc {
	return &MongoTaskDoc{
		ID:          task.ID,
		Shop:        task.Shop,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
	}
}
