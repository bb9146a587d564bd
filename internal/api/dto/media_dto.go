package dto

import (
	"time"

	"lune/internal/api/models"
)

// MediaItemResponse is a catalog entry as returned to clients.
type MediaItemResponse struct {
	ID               string   `json:"id"`
	MediaType        string   `json:"media_type"`
	Title            string   `json:"title"`
	CoverImage       *string  `json:"cover_image,omitempty"`
	AuthorOrDirector *string  `json:"author_or_director,omitempty"`
	Year             *int     `json:"year,omitempty"`
	Genres           []string `json:"genres,omitempty"`

	Runtime           *int        `json:"runtime,omitempty"`
	EpisodeRuntime    *int        `json:"episode_runtime,omitempty"`
	TotalEpisodes     *int        `json:"total_episodes,omitempty"`
	NumberOfSeasons   *int        `json:"number_of_seasons,omitempty"`
	EpisodesPerSeason map[int]int `json:"episodes_per_season,omitempty"`
	TotalPages        *int        `json:"total_pages,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func FromMediaItem(item models.MediaItem) MediaItemResponse {
	return MediaItemResponse{
		ID:                item.ID,
		MediaType:         string(item.MediaType),
		Title:             item.Title,
		CoverImage:        item.CoverImage,
		AuthorOrDirector:  item.AuthorOrDirector,
		Year:              item.Year,
		Genres:            []string(item.Genres),
		Runtime:           item.Runtime,
		EpisodeRuntime:    item.EpisodeRuntime,
		TotalEpisodes:     item.TotalEpisodes,
		NumberOfSeasons:   item.NumberOfSeasons,
		EpisodesPerSeason: map[int]int(item.EpisodesPerSeason),
		TotalPages:        item.TotalPages,
		UpdatedAt:         item.UpdatedAt,
	}
}
