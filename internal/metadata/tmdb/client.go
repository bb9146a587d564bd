package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lune/internal/metadata"

	"golang.org/x/time/rate"
)

const (
	// TMDB allows ~50 requests per second; stay well under it.
	rateLimit = 20
	rateBurst = 40
)

// Client talks to the TMDB v3 REST API for movie and tv metadata.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// TrendingMovies fetches this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context, page int) ([]metadata.Item, error) {
	var resp moviePage
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, "/trending/movie/week", query, &resp); err != nil {
		return nil, err
	}
	items := make([]metadata.Item, 0, len(resp.Results))
	for _, m := range resp.Results {
		items = append(items, m.toItem())
	}
	return items, nil
}

// TrendingTV fetches this week's trending tv shows.
func (c *Client) TrendingTV(ctx context.Context, page int) ([]metadata.Item, error) {
	var resp tvPage
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, "/trending/tv/week", query, &resp); err != nil {
		return nil, err
	}
	items := make([]metadata.Item, 0, len(resp.Results))
	for _, t := range resp.Results {
		items = append(items, t.toItem())
	}
	return items, nil
}

// SearchMovies searches movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]metadata.Item, error) {
	var resp moviePage
	q := url.Values{"query": {query}}
	if err := c.get(ctx, "/search/movie", q, &resp); err != nil {
		return nil, err
	}
	items := make([]metadata.Item, 0, len(resp.Results))
	for _, m := range resp.Results {
		items = append(items, m.toItem())
	}
	return items, nil
}

// SearchTV searches tv shows by title.
func (c *Client) SearchTV(ctx context.Context, query string) ([]metadata.Item, error) {
	var resp tvPage
	q := url.Values{"query": {query}}
	if err := c.get(ctx, "/search/tv", q, &resp); err != nil {
		return nil, err
	}
	items := make([]metadata.Item, 0, len(resp.Results))
	for _, t := range resp.Results {
		items = append(items, t.toItem())
	}
	return items, nil
}

// MovieDetails fetches full movie metadata including runtime and genres.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*metadata.Item, error) {
	var detail movieDetail
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	item := detail.movieResult.toItem()
	item.Runtime = detail.Runtime
	for _, g := range detail.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	if len(detail.Credits.Crew) > 0 {
		for _, person := range detail.Credits.Crew {
			if person.Job == "Director" {
				item.AuthorOrDirector = person.Name
				break
			}
		}
	}
	return &item, nil
}

// TVDetails fetches full show metadata including season/episode counts.
func (c *Client) TVDetails(ctx context.Context, id int64) (*metadata.Item, error) {
	var detail tvDetail
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	item := detail.tvResult.toItem()
	item.TotalEpisodes = detail.NumberOfEpisodes
	item.NumberOfSeasons = detail.NumberOfSeasons
	if len(detail.EpisodeRunTime) > 0 {
		item.EpisodeRuntime = detail.EpisodeRunTime[0]
	}
	for _, g := range detail.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	if len(detail.Seasons) > 0 {
		item.EpisodesPerSeason = make(map[int]int, len(detail.Seasons))
		for _, season := range detail.Seasons {
			if season.SeasonNumber > 0 {
				item.EpisodesPerSeason[season.SeasonNumber] = season.EpisodeCount
			}
		}
	}
	if len(detail.CreatedBy) > 0 {
		item.AuthorOrDirector = detail.CreatedBy[0].Name
	}
	return &item, nil
}
