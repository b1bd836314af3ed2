package entity

import (
	"time"

	"merchant-admin-layer/internal/domain"
)

// BadgeModel represents a badge row in the relational store
type BadgeModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Name      string    `gorm:"not null"`
	Icon      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName pins the table name shared with the migrations
func (BadgeModel) TableName() string {
	return "badges"
}

// ToDomain converts the row to a domain entity
func (m *BadgeModel) ToDomain() *domain.Badge {
	return &domain.Badge{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      domain.BadgeIcon(m.Icon),
		CreatedAt: m.CreatedAt,
	}
}

// BadgeModelFromDomain converts a domain entity to a row
func BadgeModelFromDomain(badge *domain.Badge) *BadgeModel {
	return &BadgeModel{
		ID:        badge.ID,
		Name:      badge.Name,
		Icon:      string(badge.Icon),
		CreatedAt: badge.CreatedAt,
	}
}

// MongoBadgeDoc represents a badge in MongoDB
type MongoBadgeDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Icon      string    `bson:"icon"`
	CreatedAt time.Time `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoBadgeDoc) ToDomain() *domain.Badge {
	return &domain.Badge{
		ID:        d.ID,
		Name:      d.Name,
		Icon:      domain.BadgeIcon(d.Icon),
		CreatedAt: d.CreatedAt,
	}
}

// MongoBadgeDocFromDomain converts a domain entity to a MongoDB document
func MongoBadgeDocFromDomain(badge *domain.Badge) *MongoBadgeDoc {
	return &MongoBadgeDoc{
		ID:        badge.ID,
		Name:      badge.Name,
		Icon:      string(badge.Icon),
		CreatedAt: badge.CreatedAt,
	}
}
