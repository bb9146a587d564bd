package gutendex

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
	rateLimit = 2
	rateBurst = 4
)

// Client talks to the Gutendex API for Project Gutenberg books, used for
// the trending-books feed (sorted by download popularity).
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type bookPage struct {
	Count   int    `json:"count"`
	Results []book `json:"results"`
}

type book struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Authors  []author `json:"authors"`
	Subjects []string `json:"subjects"`
	Formats  map[string]string `json:"formats"`
}

type author struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
}

// Popular fetches books ordered by download count.
func (c *Client) Popular(ctx context.Context, page int) ([]metadata.Item, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{
		"sort": {"popular"},
		"page": {strconv.Itoa(page)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/books?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gutendex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gutendex returned status %d", resp.StatusCode)
	}

	var result bookPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode gutendex response: %w", err)
	}

	items := make([]metadata.Item, 0, len(result.Results))
	for _, b := range result.Results {
		items = append(items, b.toItem())
	}
	return items, nil
}

func (b book) toItem() metadata.Item {
	item := metadata.Item{
		ID:        fmt.Sprintf("book-%d", b.ID),
		MediaType: "book",
		Title:     b.Title,
		Source:    "gutendex",
	}
	if len(b.Authors) > 0 {
		item.AuthorOrDirector = b.Authors[0].Name
	}
	if cover, ok := b.Formats["image/jpeg"]; ok {
		item.CoverImage = cover
	}
	for i, subject := range b.Subjects {
		if i >= 5 {
			break
		}
		item.Genres = append(item.Genres, subject)
	}
	return item
}
