package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/peakyminds/challenge-seo/src/repository"
	"github.com/peakyminds/challenge-seo/src/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	backend    *testutil.Backend
	redis      *miniredis.Miniredis
	cache      *repository.PageCacheRepository
	challenges *ChallengeService
	renderer   *Renderer
	pages      *PageService
}

func newTestRenderer(t *testing.T) *Renderer {
	renderer, err := NewRenderer(RendererConfig{
		AppBaseURL: "https://peakyminds.com",
		SiteName:   "PeakyMinds",
	})
	require.NoError(t, err)
	return renderer
}

func setupTestServices(t *testing.T, documents ...testutil.Document) *testServices {
	backend := testutil.NewBackend(t, documents...)
	redisServer, redisClient := testutil.SetupTestRedis(t)

	repo := repository.NewPostgRESTRepository(repository.PostgRESTConfig{
		BaseURL: backend.URL(),
		APIKey:  testutil.TestAPIKey,
		Timeout: 2 * time.Second,
	})
	cache := repository.NewPageCacheRepository(redisClient, "test", 24*time.Hour)
	challenges := NewChallengeService(repo)
	renderer := newTestRenderer(t)
	pages := NewPageService(challenges, renderer, cache, PageServiceConfig{
		RevalidateInterval: 300 * time.Second,
	})

	return &testServices{
		backend:    backend,
		redis:      redisServer,
		cache:      cache,
		challenges: challenges,
		renderer:   renderer,
		pages:      pages,
	}
}

var logicDocument = testutil.Document{
	Slug:     "logic-101",
	Title:    "Logic Basics",
	ImageURL: "https://img/x.png",
}

func logicDocumentWithTitle(title string) testutil.Document {
	doc := logicDocument
	doc.Title = title
	return doc
}
