package service

import (
	"context"
	"testing"
	"time"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrerenderService(s *testServices, interval time.Duration) *PrerenderService {
	return NewPrerenderService(s.challenges, s.pages, s.cache, PrerenderConfig{
		Interval:    interval,
		Concurrency: 2,
	})
}

func TestPrerenderService_Run(t *testing.T) {
	s := setupTestServices(t,
		logicDocument,
		testutil.Document{Slug: "math-201", Title: "Math", ImageURL: "https://img/m.png"},
		testutil.Document{Slug: "art-1", Title: "Art"},
	)
	ctx := context.Background()
	prerender := newTestPrerenderService(s, 0)

	report := prerender.Run(ctx)
	require.NoError(t, report.PathsErr)
	assert.Equal(t, 3, report.Paths)
	assert.Equal(t, 3, report.Rendered)
	assert.Zero(t, report.Failed)

	for _, slug := range []string{"logic-101", "math-201", "art-1"} {
		page, err := s.cache.GetPage(ctx, slug)
		require.NoError(t, err)
		require.NotNil(t, page, slug)
	}
}

func TestPrerenderService_EnumerationFailureYieldsEmptyPaths(t *testing.T) {
	s := setupTestServices(t, logicDocument)
	s.backend.SetFailing(true)
	prerender := newTestPrerenderService(s, 0)

	paths, err := prerender.StaticPaths(context.Background())
	assert.Error(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)

	report := prerender.Run(context.Background())
	assert.True(t, domain.IsRemote(report.PathsErr))
	assert.Zero(t, report.Paths)
	assert.Zero(t, report.Rendered)
}

func TestPrerenderService_PrunesRemovedChallenges(t *testing.T) {
	s := setupTestServices(t, logicDocument)
	ctx := context.Background()

	require.NoError(t, s.cache.SetPage(ctx, &domain.RenderedPage{Slug: "gone", GeneratedAt: time.Now().Add(-time.Hour)}))

	report := newTestPrerenderService(s, 0).Run(ctx)
	assert.Equal(t, 1, report.Rendered)
	assert.Equal(t, 1, report.Pruned)

	page, err := s.cache.GetPage(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestPrerenderService_KeepsPagesGeneratedDuringPass(t *testing.T) {
	s := setupTestServices(t, logicDocument)
	ctx := context.Background()

	// created after the enumeration and generated on demand meanwhile
	require.NoError(t, s.cache.SetPage(ctx, &domain.RenderedPage{Slug: "brand-new", GeneratedAt: time.Now().Add(time.Minute)}))

	report := newTestPrerenderService(s, 0).Run(ctx)
	assert.Zero(t, report.Pruned)

	page, err := s.cache.GetPage(ctx, "brand-new")
	require.NoError(t, err)
	assert.NotNil(t, page)
}

func TestPrerenderService_SkipsPruneWhenListingHitsCap(t *testing.T) {
	s := setupTestServices(t,
		logicDocument,
		testutil.Document{Slug: "math-201", Title: "Math"},
	)
	ctx := context.Background()

	require.NoError(t, s.cache.SetPage(ctx, &domain.RenderedPage{Slug: "beyond-cap", GeneratedAt: time.Now().Add(-time.Hour)}))

	prerender := NewPrerenderService(s.challenges, s.pages, s.cache, PrerenderConfig{
		Concurrency:  2,
		MaxListPaths: 2,
	})
	report := prerender.Run(ctx)
	assert.Equal(t, 2, report.Paths)
	assert.Equal(t, 2, report.Rendered)
	assert.Zero(t, report.Pruned)

	page, err := s.cache.GetPage(ctx, "beyond-cap")
	require.NoError(t, err)
	assert.NotNil(t, page)
}

func TestPrerenderService_StartSinglePass(t *testing.T) {
	s := setupTestServices(t, logicDocument)

	err := newTestPrerenderService(s, 0).Start(context.Background())
	assert.NoError(t, err)

	page, err := s.cache.GetPage(context.Background(), "logic-101")
	require.NoError(t, err)
	assert.NotNil(t, page)
}

func TestPrerenderService_StartStopsOnCancel(t *testing.T) {
	s := setupTestServices(t, logicDocument)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- newTestPrerenderService(s, 10*time.Millisecond).Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return s.backend.Requests() >= 4
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("prerender service did not stop")
	}
}
