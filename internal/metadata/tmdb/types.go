package tmdb

import (
	"fmt"
	"strconv"

	"lune/internal/metadata"
)

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

type moviePage struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"` // "1999-03-31"
}

func (m movieResult) toItem() metadata.Item {
	return metadata.Item{
		ID:         fmt.Sprintf("movie-%d", m.ID),
		MediaType:  "movie",
		Title:      m.Title,
		CoverImage: posterURL(m.PosterPath),
		Year:       yearOf(m.ReleaseDate),
		Source:     "tmdb",
	}
}

type tvPage struct {
	Page         int        `json:"page"`
	Results      []tvResult `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

type tvResult struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	FirstAirDate string `json:"first_air_date"`
}

func (t tvResult) toItem() metadata.Item {
	return metadata.Item{
		ID:         fmt.Sprintf("tv-%d", t.ID),
		MediaType:  "tv",
		Title:      t.Name,
		CoverImage: posterURL(t.PosterPath),
		Year:       yearOf(t.FirstAirDate),
		Source:     "tmdb",
	}
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type crewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type movieDetail struct {
	movieResult
	Runtime int     `json:"runtime"`
	Genres  []genre `json:"genres"`
	Credits struct {
		Crew []crewMember `json:"crew"`
	} `json:"credits"`
}

type tvDetail struct {
	tvResult
	NumberOfEpisodes int     `json:"number_of_episodes"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	EpisodeRunTime   []int   `json:"episode_run_time"`
	Genres           []genre `json:"genres"`
	CreatedBy        []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Seasons []struct {
		SeasonNumber int `json:"season_number"`
		EpisodeCount int `json:"episode_count"`
	} `json:"seasons"`
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
