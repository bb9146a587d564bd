package models

import "time"

// Follow records that one user follows another. The pair is unique.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follower_followee;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Associations
	Follower *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}
