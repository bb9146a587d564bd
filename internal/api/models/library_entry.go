package models

import "time"

// Status values a user can assign to a tracked media item.
const (
	StatusCompleted   = "completed"
	StatusWatching    = "watching"
	StatusPlanToWatch = "plan_to_watch"
	StatusOnHold      = "on_hold"
	StatusDropped     = "dropped"
)

// ValidStatus reports whether s is one of the recognized tracking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusWatching, StatusPlanToWatch, StatusOnHold, StatusDropped:
		return true
	}
	return false
}

// LibraryEntry is one user's tracking state for one media item. At most one
// row exists per (user, media) pair. Status is nullable: a row created by a
// favourite-only save has no status until the user assigns one.
type LibraryEntry struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_user_media" json:"user_id"`
	MediaID string `gorm:"size:100;not null;uniqueIndex:idx_user_media" json:"media_id"`

	Status      *string `gorm:"type:text" json:"status,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	IsFavourite bool    `gorm:"default:false" json:"is_favourite"`

	// TV only
	CurrentEpisode *int `json:"current_episode,omitempty"`
	CurrentSeason  *int `json:"current_season,omitempty"`

	// Book only
	CurrentPage *int `json:"current_page,omitempty"`

	// Set once, the first time status transitions to completed.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User  *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Media *MediaItem `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}
