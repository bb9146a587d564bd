package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lune/internal/cache"
)

// MovieTVProvider serves movie and tv metadata (TMDB).
type MovieTVProvider interface {
	TrendingMovies(ctx context.Context, page int) ([]Item, error)
	TrendingTV(ctx context.Context, page int) ([]Item, error)
	SearchMovies(ctx context.Context, query string) ([]Item, error)
	SearchTV(ctx context.Context, query string) ([]Item, error)
	MovieDetails(ctx context.Context, id int64) (*Item, error)
	TVDetails(ctx context.Context, id int64) (*Item, error)
}

// BookSearchProvider serves book search (OpenLibrary).
type BookSearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]Item, error)
}

// BookTrendingProvider serves the trending-books feed (Gutendex).
type BookTrendingProvider interface {
	Popular(ctx context.Context, page int) ([]Item, error)
}

// Service fans out to the metadata providers and caches the results.
// Provider failures degrade to empty result sets; a broken upstream never
// breaks a page.
type Service struct {
	movies MovieTVProvider
	books  BookSearchProvider
	picks  BookTrendingProvider
	cache  *cache.Cache
	logger *slog.Logger
}

func NewService(movies MovieTVProvider, books BookSearchProvider, picks BookTrendingProvider, c *cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		movies: movies,
		books:  books,
		picks:  picks,
		cache:  c,
		logger: logger,
	}
}

// Trending returns trending items for one media type, or for all three
// types fetched concurrently when mediaType is empty.
func (s *Service) Trending(ctx context.Context, mediaType string, page int) ([]Item, error) {
	if page < 1 {
		page = 1
	}
	cacheKey := fmt.Sprintf("trending:%s:%d", mediaType, page)

	var cached []Item
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	var items []Item
	switch mediaType {
	case "movie":
		items = s.fetch(ctx, "tmdb movies", func(ctx context.Context) ([]Item, error) {
			return s.movies.TrendingMovies(ctx, page)
		})
	case "tv":
		items = s.fetch(ctx, "tmdb tv", func(ctx context.Context) ([]Item, error) {
			return s.movies.TrendingTV(ctx, page)
		})
	case "book":
		items = s.fetch(ctx, "gutendex", func(ctx context.Context) ([]Item, error) {
			return s.picks.Popular(ctx, page)
		})
	case "":
		items = s.trendingAll(ctx, page)
	default:
		return nil, fmt.Errorf("unknown media type %q", mediaType)
	}

	if len(items) > 0 {
		if err := s.cache.SetJSON(ctx, cacheKey, items); err != nil {
			s.logger.Warn("failed to cache trending results", "key", cacheKey, "error", err)
		}
	}
	return items, nil
}

// trendingAll queries all three providers concurrently and merges whatever
// arrives before the deadline.
func (s *Service) trendingAll(ctx context.Context, page int) []Item {
	ctx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()

	type result struct {
		items []Item
	}
	ch := make(chan result, 3)

	go func() {
		ch <- result{items: s.fetch(ctx, "tmdb movies", func(ctx context.Context) ([]Item, error) {
			return s.movies.TrendingMovies(ctx, page)
		})}
	}()
	go func() {
		ch <- result{items: s.fetch(ctx, "tmdb tv", func(ctx context.Context) ([]Item, error) {
			return s.movies.TrendingTV(ctx, page)
		})}
	}()
	go func() {
		ch <- result{items: s.fetch(ctx, "gutendex", func(ctx context.Context) ([]Item, error) {
			return s.picks.Popular(ctx, page)
		})}
	}()

	var merged []Item
outer:
	for i := 0; i < 3; i++ {
		select {
		case r := <-ch:
			merged = append(merged, r.items...)
		case <-ctx.Done():
			break outer
		}
	}
	return merged
}

// Search queries the provider matching the media type.
func (s *Service) Search(ctx context.Context, mediaType, query string) ([]Item, error) {
	switch mediaType {
	case "movie":
		return s.fetch(ctx, "tmdb movies", func(ctx context.Context) ([]Item, error) {
			return s.movies.SearchMovies(ctx, query)
		}), nil
	case "tv":
		return s.fetch(ctx, "tmdb tv", func(ctx context.Context) ([]Item, error) {
			return s.movies.SearchTV(ctx, query)
		}), nil
	case "book":
		return s.fetch(ctx, "openlibrary", func(ctx context.Context) ([]Item, error) {
			return s.books.Search(ctx, query, 20)
		}), nil
	}
	return nil, fmt.Errorf("unknown media type %q", mediaType)
}

// fetch runs one provider call and degrades failures to an empty slice.
func (s *Service) fetch(ctx context.Context, source string, call func(context.Context) ([]Item, error)) []Item {
	items, err := call(ctx)
	if err != nil {
		s.logger.Warn("metadata provider failed", "source", source, "error", err)
		return nil
	}
	return items
}
