package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lune/internal/metadata"

	"golang.org/x/time/rate"
)

// OpenLibrary asks clients to stay under ~1 request per second.
const (
	rateLimit = 1
	rateBurst = 3
)

// Client talks to the OpenLibrary search API for book metadata.
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

type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []doc `json:"docs"`
}

type doc struct {
	Key              string   `json:"key"` // "/works/OL45883W"
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int64    `json:"cover_i"`
	PagesMedian      int      `json:"number_of_pages_median"`
	Subject          []string `json:"subject"`
}

// Search finds books by title/author.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]metadata.Item, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{
		"q":      {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {"key,title,author_name,first_publish_year,cover_i,number_of_pages_median,subject"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode openlibrary response: %w", err)
	}

	items := make([]metadata.Item, 0, len(result.Docs))
	for _, d := range result.Docs {
		items = append(items, d.toItem())
	}
	return items, nil
}

func (d doc) toItem() metadata.Item {
	item := metadata.Item{
		ID:         "book-" + workID(d.Key),
		MediaType:  "book",
		Title:      d.Title,
		Year:       d.FirstPublishYear,
		TotalPages: d.PagesMedian,
		Source:     "openlibrary",
	}
	if len(d.AuthorName) > 0 {
		item.AuthorOrDirector = d.AuthorName[0]
	}
	if d.CoverID != 0 {
		item.CoverImage = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", d.CoverID)
	}
	// Subject lists run long; keep the leading few as genres.
	for i, subject := range d.Subject {
		if i >= 5 {
			break
		}
		item.Genres = append(item.Genres, subject)
	}
	return item
}

// workID strips the "/works/" prefix from an OpenLibrary key.
func workID(key string) string {
	return strings.TrimPrefix(key, "/works/")
}
