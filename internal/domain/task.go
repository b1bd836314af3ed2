package domain

import "time"

// Task is a to-do item owned by a single shop
type Task struct {
	ID          string    `json:"id"`
	Shop        string    `json:"shop"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}
