// Package content serves the blog, proxied from a headless WordPress
// install and cached in Redis.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// ErrPostNotFound is returned when no published post matches the slug.
var ErrPostNotFound = errors.New("post not found")

// Post is the trimmed representation served to the site.
type Post struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt,omitempty"`
	Content   string `json:"content,omitempty"`
	Author    string `json:"author,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Published string `json:"published"`
}

// WordPressClient reads published posts over the WP REST API.
type WordPressClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewWordPressClient creates a client for one WordPress install.
func NewWordPressClient(baseURL string, logger *logging.Logger) *WordPressClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &WordPressClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// wpPost mirrors the fields we read from the WP REST response.
type wpPost struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	DateGMT string `json:"date_gmt"`
	Title   struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Embedded struct {
		Author []struct {
			Name string `json:"name"`
		} `json:"author"`
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

// ListPosts fetches a page of published posts, newest first.
func (c *WordPressClient) ListPosts(ctx context.Context, page, perPage int) ([]Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}

	q := url.Values{}
	q.Set("status", "publish")
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("_embed", "true")

	var raw []wpPost
	if err := c.get(ctx, "/wp-json/wp/v2/posts?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	out := make([]Post, 0, len(raw))
	for _, p := range raw {
		post := fromWP(p)
		post.Content = "" // listings carry the excerpt only
		out = append(out, post)
	}
	return out, nil
}

// GetPostBySlug fetches one published post.
func (c *WordPressClient) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	q := url.Values{}
	q.Set("status", "publish")
	q.Set("slug", slug)
	q.Set("_embed", "true")

	var raw []wpPost
	if err := c.get(ctx, "/wp-json/wp/v2/posts?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrPostNotFound
	}
	post := fromWP(raw[0])
	return &post, nil
}

func (c *WordPressClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("content: build request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content: wordpress request failed: %w", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("content: read response: %w", err)
	}
	if res.StatusCode >= 400 {
		c.logger.Error("wordpress returned error status", "status", res.StatusCode, "path", path)
		return fmt.Errorf("content: wordpress status %d", res.StatusCode)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("content: decode response: %w", err)
	}
	return nil
}

func fromWP(p wpPost) Post {
	post := Post{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     strings.TrimSpace(p.Title.Rendered),
		Excerpt:   strings.TrimSpace(p.Excerpt.Rendered),
		Content:   p.Content.Rendered,
		Published: p.DateGMT,
	}
	if len(p.Embedded.Author) > 0 {
		post.Author = p.Embedded.Author[0].Name
	}
	if len(p.Embedded.FeaturedMedia) > 0 {
		post.ImageURL = p.Embedded.FeaturedMedia[0].SourceURL
	}
	return post
}
