package service

import (
	"context"
	"fmt"
	"time"

	"lune/internal/api/dto"
	"lune/internal/api/models"
	"lune/internal/api/repository"
)

// Defaults used when the catalog has no real values for an item.
const (
	defaultMovieRuntime      = 120 // minutes
	defaultEpisodeRuntime    = 45  // minutes
	defaultEpisodesPerSeason = 10
)

type StatsService interface {
	ForUser(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
}

type statsService struct {
	libraryRepo repository.LibraryRepository
	catalogRepo repository.CatalogRepository
}

func NewStatsService(libraryRepo repository.LibraryRepository, catalogRepo repository.CatalogRepository) StatsService {
	return &statsService{
		libraryRepo: libraryRepo,
		catalogRepo: catalogRepo,
	}
}

// ForUser reduces the user's library plus catalog metadata into aggregate
// consumption stats. Pure read path; nothing is persisted.
func (s *statsService) ForUser(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	entries, err := s.libraryRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	stats := &dto.UserStatsResponse{
		ByStatus:          map[string]int{},
		ByType:            map[string]int{},
		GenreDistribution: map[string]int{},
	}

	ratingSum := 0
	for _, entry := range entries {
		stats.TotalTracked++
		if entry.IsFavourite {
			stats.FavouriteCount++
		}
		if entry.Status != nil {
			stats.ByStatus[*entry.Status]++
		}
		if entry.Rating != nil && *entry.Rating > 0 {
			stats.RatedCount++
			ratingSum += *entry.Rating
		}
		if entry.Media != nil {
			stats.ByType[string(entry.Media.MediaType)]++
			for _, genre := range entry.Media.Genres {
				stats.GenreDistribution[genre]++
			}
		}
		stats.WatchMinutes += watchMinutes(entry)
		stats.PagesRead += pagesRead(entry)
	}

	// Conditional averaging: never divide by zero.
	if stats.RatedCount > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.RatedCount)
	}

	stats.ActivityByMonth = activityByMonth(entries, time.Now())

	return stats, nil
}

// watchMinutes estimates minutes watched for one entry, falling back to
// defaults (120-minute movie, 45-minute episode, 10 episodes per season)
// when the catalog lacks real values.
func watchMinutes(entry models.LibraryEntry) int {
	media := entry.Media
	if media == nil {
		return 0
	}
	switch media.MediaType {
	case models.MediaTypeMovie:
		if entry.Status == nil || *entry.Status != models.StatusCompleted {
			return 0
		}
		if media.Runtime != nil && *media.Runtime > 0 {
			return *media.Runtime
		}
		return defaultMovieRuntime

	case models.MediaTypeTV:
		episodeRuntime := defaultEpisodeRuntime
		if media.EpisodeRuntime != nil && *media.EpisodeRuntime > 0 {
			episodeRuntime = *media.EpisodeRuntime
		}
		return episodesSeen(entry, media) * episodeRuntime
	}
	return 0
}

// episodesSeen counts episodes watched: every episode for a completed show,
// otherwise full prior seasons plus the current one's progress.
func episodesSeen(entry models.LibraryEntry, media *models.MediaItem) int {
	if entry.Status != nil && *entry.Status == models.StatusCompleted {
		if media.TotalEpisodes != nil && *media.TotalEpisodes > 0 {
			return *media.TotalEpisodes
		}
		seasons := 1
		if media.NumberOfSeasons != nil && *media.NumberOfSeasons > 0 {
			seasons = *media.NumberOfSeasons
		}
		return seasons * defaultEpisodesPerSeason
	}

	seen := 0
	currentSeason := 1
	if entry.CurrentSeason != nil && *entry.CurrentSeason > 0 {
		currentSeason = *entry.CurrentSeason
	}
	for season := 1; season < currentSeason; season++ {
		if count, ok := media.EpisodesPerSeason[season]; ok && count > 0 {
			seen += count
		} else {
			seen += defaultEpisodesPerSeason
		}
	}
	if entry.CurrentEpisode != nil && *entry.CurrentEpisode > 0 {
		seen += *entry.CurrentEpisode
	}
	return seen
}

// pagesRead counts pages for books: the full page count when completed,
// otherwise the bookmarked page.
func pagesRead(entry models.LibraryEntry) int {
	media := entry.Media
	if media == nil || media.MediaType != models.MediaTypeBook {
		return 0
	}
	if entry.Status != nil && *entry.Status == models.StatusCompleted {
		if media.TotalPages != nil && *media.TotalPages > 0 {
			return *media.TotalPages
		}
	}
	if entry.CurrentPage != nil && *entry.CurrentPage > 0 {
		return *entry.CurrentPage
	}
	return 0
}

// activityByMonth buckets library additions by month over the trailing
// twelve months, oldest first. Months with no additions still appear.
func activityByMonth(entries []models.LibraryEntry, now time.Time) []dto.MonthActivity {
	counts := map[string]int{}
	for _, entry := range entries {
		counts[entry.CreatedAt.Format("2006-01")]++
	}

	months := make([]dto.MonthActivity, 0, 12)
	start := now.AddDate(0, -11, 0)
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		key := cursor.Format("2006-01")
		months = append(months, dto.MonthActivity{Month: key, Count: counts[key]})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}
