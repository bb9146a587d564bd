package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collection is a user-owned custom list of media items.
type Collection struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Items []CollectionItem `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionItem is a membership row; one media item in one collection.
// The (collection_id, media_id) pair is unique, and media_id must already
// exist in the catalog when the row is inserted.
type CollectionItem struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CollectionID string    `gorm:"type:uuid;not null;uniqueIndex:idx_collection_media" json:"collection_id"`
	MediaID      string    `gorm:"size:100;not null;uniqueIndex:idx_collection_media" json:"media_id"`
	AddedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	Media *MediaItem `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}

func (CollectionItem) TableName() string {
	return "collection_items"
}
