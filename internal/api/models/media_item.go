package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MediaType identifies which kind of media a catalog entry describes.
type MediaType string

const (
	MediaTypeBook  MediaType = "book"
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeBook, MediaTypeMovie, MediaTypeTV:
		return true
	}
	return false
}

// Episodic reports whether the type is tracked by season/episode progress.
func (t MediaType) Episodic() bool {
	return t == MediaTypeTV
}

// Paginated reports whether the type is tracked by page progress.
func (t MediaType) Paginated() bool {
	return t == MediaTypeBook
}

// StringList is a []string stored as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for StringList", src)
}

// SeasonMap maps a season number to its episode count, stored as a jsonb column.
type SeasonMap map[int]int

func (m SeasonMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SeasonMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type %T for SeasonMap", src)
}

// MediaItem is the shared catalog entry for a media item, independent of any
// user's tracking state. The ID has the form "{type}-{externalApiId}", e.g.
// "movie-603" or "book-42". Whoever saved last owns the metadata.
type MediaItem struct {
	ID               string     `gorm:"primaryKey;size:100" json:"id"`
	MediaType        MediaType  `gorm:"type:text;not null;index" json:"media_type"`
	Title            string     `gorm:"not null" json:"title"`
	CoverImage       *string    `json:"cover_image,omitempty"`
	AuthorOrDirector *string    `json:"author_or_director,omitempty"`
	Year             *int       `json:"year,omitempty"`
	Genres           StringList `gorm:"type:jsonb" json:"genres,omitempty"`

	// Movie only
	Runtime *int `json:"runtime,omitempty"`

	// TV only
	EpisodeRuntime    *int      `json:"episode_runtime,omitempty"`
	TotalEpisodes     *int      `json:"total_episodes,omitempty"`
	NumberOfSeasons   *int      `json:"number_of_seasons,omitempty"`
	EpisodesPerSeason SeasonMap `gorm:"type:jsonb" json:"episodes_per_season,omitempty"`

	// Book only
	TotalPages *int `json:"total_pages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MediaItem) TableName() string {
	return "media_items"
}
