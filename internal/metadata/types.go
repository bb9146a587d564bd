package metadata

// Item is a provider-neutral media result, shaped to match the catalog
// fields the client sends back on a library save. The ID carries the
// "{type}-{externalApiId}" form used as the catalog key.
type Item struct {
	ID               string   `json:"id"`
	MediaType        string   `json:"media_type"`
	Title            string   `json:"title"`
	CoverImage       string   `json:"cover_image,omitempty"`
	AuthorOrDirector string   `json:"author_or_director,omitempty"`
	Year             int      `json:"year,omitempty"`
	Genres           []string `json:"genres,omitempty"`

	Runtime           int         `json:"runtime,omitempty"`
	EpisodeRuntime    int         `json:"episode_runtime,omitempty"`
	TotalEpisodes     int         `json:"total_episodes,omitempty"`
	NumberOfSeasons   int         `json:"number_of_seasons,omitempty"`
	EpisodesPerSeason map[int]int `json:"episodes_per_season,omitempty"`
	TotalPages        int         `json:"total_pages,omitempty"`

	Source string `json:"source,omitempty"`
}
