package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/peakyminds/challenge-seo/src/domain"
)

// PageCacheRepository stores rendered pages in Redis
type PageCacheRepository struct {
	redis     *redis.Client
	pageKey   string
	retention time.Duration
}

// NewPageCacheRepository creates a page cache whose entries expire after retention.
// retention should outlive the revalidation interval so that a stale copy
// remains available while the backend is unreachable.
func NewPageCacheRepository(redis *redis.Client, prefix string, retention time.Duration) *PageCacheRepository {
	return &PageCacheRepository{
		redis:     redis,
		pageKey:   prefix + ":page",
		retention: retention,
	}
}

func (r *PageCacheRepository) key(slug string) string {
	return fmt.Sprintf("%s:%s", r.pageKey, slug)
}

// GetPage retrieves a cached page by slug. A missing entry returns (nil, nil).
func (r *PageCacheRepository) GetPage(ctx context.Context, slug string) (*domain.RenderedPage, error) {
	data, err := r.redis.Get(ctx, r.key(slug)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	var page domain.RenderedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}

	return &page, nil
}

// SetPage stores a rendered page with the configured retention
func (r *PageCacheRepository) SetPage(ctx context.Context, page *domain.RenderedPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	return r.redis.Set(ctx, r.key(page.Slug), data, r.retention).Err()
}

// DeletePage removes the cached page for slug
func (r *PageCacheRepository) DeletePage(ctx context.Context, slug string) error {
	return r.redis.Del(ctx, r.key(slug)).Err()
}

// ListCachedSlugs returns the slugs that currently have a cached page
func (r *PageCacheRepository) ListCachedSlugs(ctx context.Context) ([]string, error) {
	prefix := r.pageKey + ":"

	var slugs []string
	iter := r.redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		slugs = append(slugs, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cached pages: %w", err)
	}

	return slugs, nil
}
