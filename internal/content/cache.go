package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// PostSource is the upstream the cache wraps.
type PostSource interface {
	ListPosts(ctx context.Context, page, perPage int) ([]Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
}

// CachedSource is a cache-aside layer over a PostSource. A cold or down
// Redis degrades to upstream reads, never to request failures.
type CachedSource struct {
	source PostSource
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedSource wraps source. client may be nil to disable caching.
func NewCachedSource(source PostSource, client *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedSource{
		source: source,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedSource) ListPosts(ctx context.Context, page, perPage int) ([]Post, error) {
	key := fmt.Sprintf("blog:posts:%d:%d", page, perPage)

	if posts, ok := cacheGet[[]Post](c, ctx, key); ok {
		return posts, nil
	}

	posts, err := c.source.ListPosts(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	c.cacheSet(ctx, key, posts)
	return posts, nil
}

func (c *CachedSource) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	key := "blog:post:" + slug

	if post, ok := cacheGet[*Post](c, ctx, key); ok {
		return post, nil
	}

	post, err := c.source.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.cacheSet(ctx, key, post)
	return post, nil
}

func cacheGet[T any](c *CachedSource, ctx context.Context, key string) (T, bool) {
	var zero T
	if c.redis == nil {
		return zero, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return zero, false
	}
	if err != nil {
		c.logger.Warn("blog cache read failed", "error", err, "key", key)
		return zero, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warn("blog cache entry corrupt", "error", err, "key", key)
		return zero, false
	}
	return out, true
}

func (c *CachedSource) cacheSet(ctx context.Context, key string, value any) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("blog cache write failed", "error", err, "key", key)
	}
}
