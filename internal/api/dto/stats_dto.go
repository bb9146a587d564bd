package dto

// UserStatsResponse aggregates a user's consumption habits from their
// library and the catalog metadata behind it.
type UserStatsResponse struct {
	TotalTracked   int `json:"total_tracked"`
	FavouriteCount int `json:"favourite_count"`

	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`

	// Average over rated entries only; zero when nothing is rated.
	AverageRating float64 `json:"average_rating"`
	RatedCount    int     `json:"rated_count"`

	// Totals derived from catalog metadata, with per-type defaults when
	// the catalog lacks real values.
	WatchMinutes int `json:"watch_minutes"`
	PagesRead    int `json:"pages_read"`

	GenreDistribution map[string]int `json:"genre_distribution"`

	// Trailing 12 months of library additions, oldest first.
	ActivityByMonth []MonthActivity `json:"activity_by_month"`
}

// MonthActivity is one month's bucket of library additions.
type MonthActivity struct {
	Month string `json:"month"` // "2026-08"
	Count int    `json:"count"`
}
