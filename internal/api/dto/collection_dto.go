package dto

import (
	"time"

	"lune/internal/api/models"
)

// CreateCollectionRequest: payload to create a custom list
type CreateCollectionRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// UpdateCollectionRequest: partial update of a collection (rename/redescribe)
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// AddCollectionItemRequest: payload to add a catalog entry to a collection
type AddCollectionItemRequest struct {
	MediaID string `json:"media_id" binding:"required"`
}

type CollectionItemResponse struct {
	MediaID string             `json:"media_id"`
	AddedAt time.Time          `json:"added_at"`
	Media   *MediaItemResponse `json:"media,omitempty"`
}

type CollectionResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	Name        string                   `json:"name"`
	Description *string                  `json:"description,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Items       []CollectionItemResponse `json:"items,omitempty"`
	ItemCount   int                      `json:"item_count"`
}

func FromCollection(c models.Collection) CollectionResponse {
	resp := CollectionResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		ItemCount:   len(c.Items),
	}
	for _, item := range c.Items {
		ir := CollectionItemResponse{
			MediaID: item.MediaID,
			AddedAt: item.AddedAt,
		}
		if item.Media != nil {
			media := FromMediaItem(*item.Media)
			ir.Media = &media
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
