package dto

import (
	"time"

	"lune/internal/api/models"
)

// SaveLibraryRequest is the full save payload: catalog metadata plus the
// candidate tracking fields. Pointer fields distinguish "absent" from an
// explicit zero value, so is_favourite=false and rating=0 survive the trip.
type SaveLibraryRequest struct {
	MediaID   string `json:"media_id" binding:"required"`
	MediaType string `json:"media_type" binding:"required,oneof=book movie tv"`

	// Catalog metadata, always written regardless of tracking changes.
	Title            string         `json:"title" binding:"required"`
	CoverImage       *string        `json:"cover_image,omitempty"`
	AuthorOrDirector *string        `json:"author_or_director,omitempty"`
	Year             *int           `json:"year,omitempty"`
	Genres           []string       `json:"genres,omitempty"`
	Runtime          *int           `json:"runtime,omitempty"`
	EpisodeRuntime   *int           `json:"episode_runtime,omitempty"`
	TotalEpisodes    *int           `json:"total_episodes,omitempty"`
	NumberOfSeasons  *int           `json:"number_of_seasons,omitempty"`
	EpisodesPerSeason map[int]int   `json:"episodes_per_season,omitempty"`
	TotalPages       *int           `json:"total_pages,omitempty"`

	// Candidate tracking fields.
	Status         *string `json:"status,omitempty" binding:"omitempty,oneof=completed watching plan_to_watch on_hold dropped"`
	Rating         *int    `json:"rating,omitempty" binding:"omitempty,min=0,max=10"`
	IsFavourite    *bool   `json:"is_favourite,omitempty"`
	CurrentEpisode *int    `json:"current_episode,omitempty" binding:"omitempty,min=1"`
	CurrentSeason  *int    `json:"current_season,omitempty" binding:"omitempty,min=1"`
	CurrentPage    *int    `json:"current_page,omitempty" binding:"omitempty,min=1"`
}

// CatalogItem builds the catalog row for the request. Type-specific fields
// are nulled out for media types they don't apply to.
func (r SaveLibraryRequest) CatalogItem() *models.MediaItem {
	mediaType := models.MediaType(r.MediaType)
	item := &models.MediaItem{
		ID:               r.MediaID,
		MediaType:        mediaType,
		Title:            r.Title,
		CoverImage:       r.CoverImage,
		AuthorOrDirector: r.AuthorOrDirector,
		Year:             r.Year,
		Genres:           models.StringList(r.Genres),
	}
	switch {
	case mediaType == models.MediaTypeMovie:
		item.Runtime = r.Runtime
	case mediaType.Episodic():
		item.EpisodeRuntime = r.EpisodeRuntime
		item.TotalEpisodes = r.TotalEpisodes
		item.NumberOfSeasons = r.NumberOfSeasons
		item.EpisodesPerSeason = models.SeasonMap(r.EpisodesPerSeason)
	case mediaType.Paginated():
		item.TotalPages = r.TotalPages
	}
	return item
}

// LibraryEntryResponse is one tracked item with its catalog metadata.
type LibraryEntryResponse struct {
	ID          int64              `json:"id"`
	MediaID     string             `json:"media_id"`
	Status      *string            `json:"status,omitempty"`
	Rating      *int               `json:"rating,omitempty"`
	IsFavourite bool               `json:"is_favourite"`

	CurrentEpisode *int       `json:"current_episode,omitempty"`
	CurrentSeason  *int       `json:"current_season,omitempty"`
	CurrentPage    *int       `json:"current_page,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Media *MediaItemResponse `json:"media,omitempty"`
}

// LibraryListResponse is a user's library page.
type LibraryListResponse struct {
	Items []LibraryEntryResponse `json:"items"`
	Total int                    `json:"total"`
}

func FromLibraryEntry(entry models.LibraryEntry) LibraryEntryResponse {
	resp := LibraryEntryResponse{
		ID:             entry.ID,
		MediaID:        entry.MediaID,
		Status:         entry.Status,
		Rating:         entry.Rating,
		IsFavourite:    entry.IsFavourite,
		CurrentEpisode: entry.CurrentEpisode,
		CurrentSeason:  entry.CurrentSeason,
		CurrentPage:    entry.CurrentPage,
		CompletedAt:    entry.CompletedAt,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
	if entry.Media != nil {
		media := FromMediaItem(*entry.Media)
		resp.Media = &media
	}
	return resp
}
