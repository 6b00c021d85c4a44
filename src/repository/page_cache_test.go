package repository

import (
	"context"
	"testing"
	"time"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCacheRepository_SetAndGet(t *testing.T) {
	_, client := testutil.SetupTestRedis(t)
	cache := NewPageCacheRepository(client, "test", time.Hour)
	ctx := context.Background()

	generatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	page := &domain.RenderedPage{
		Slug:        "logic-101",
		HTML:        []byte("<html></html>"),
		GeneratedAt: generatedAt,
	}
	require.NoError(t, cache.SetPage(ctx, page))

	got, err := cache.GetPage(ctx, "logic-101")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, page.HTML, got.HTML)
	assert.True(t, generatedAt.Equal(got.GeneratedAt))
}

func TestPageCacheRepository_Missing(t *testing.T) {
	_, client := testutil.SetupTestRedis(t)
	cache := NewPageCacheRepository(client, "test", time.Hour)

	got, err := cache.GetPage(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPageCacheRepository_Retention(t *testing.T) {
	server, client := testutil.SetupTestRedis(t)
	cache := NewPageCacheRepository(client, "test", time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetPage(ctx, &domain.RenderedPage{Slug: "logic-101", GeneratedAt: time.Now()}))
	assert.Equal(t, time.Minute, server.TTL("test:page:logic-101"))

	server.FastForward(2 * time.Minute)

	got, err := cache.GetPage(ctx, "logic-101")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestPageCacheRepository_DeleteAndList(t *testing.T) {
	_, client := testutil.SetupTestRedis(t)
	cache := NewPageCacheRepository(client, "test", time.Hour)
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c"} {
		require.NoError(t, cache.SetPage(ctx, &domain.RenderedPage{Slug: slug, GeneratedAt: time.Now()}))
	}
	require.NoError(t, cache.DeletePage(ctx, "b"))

	slugs, err := cache.ListCachedSlugs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, slugs)
}

func TestPageCacheRepository_CorruptEntry(t *testing.T) {
	server, client := testutil.SetupTestRedis(t)
	cache := NewPageCacheRepository(client, "test", time.Hour)

	require.NoError(t, server.Set("test:page:broken", "{not json"))

	_, err := cache.GetPage(context.Background(), "broken")
	assert.Error(t, err)
}
