package service

import (
	"context"
	"time"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// PageStatus tells where a served page came from
type PageStatus string

const (
	// PageStatusFresh is a cached page within the revalidation interval
	PageStatusFresh PageStatus = "fresh"
	// PageStatusGenerated is a page rendered for this request
	PageStatusGenerated PageStatus = "generated"
	// PageStatusStale is an expired page served because regeneration failed
	PageStatusStale PageStatus = "stale"
)

type PageResult struct {
	Page   *domain.RenderedPage
	Status PageStatus
}

type PageServiceConfig struct {
	RevalidateInterval time.Duration
	// GenerateTimeout bounds a regeneration shared between requests; zero means unbounded
	GenerateTimeout    time.Duration
}

// PageService serves rendered challenge pages, regenerating them once they
// are older than the revalidation interval.
type PageService struct {
	challengeService   *ChallengeService
	renderer           *Renderer
	cache              *repository.PageCacheRepository
	revalidateInterval time.Duration
	generateTimeout    time.Duration
	group              singleflight.Group
	now                func() time.Time
}

func NewPageService(
	challengeService *ChallengeService,
	renderer *Renderer,
	cache *repository.PageCacheRepository,
	config PageServiceConfig,
) *PageService {
	return &PageService{
		challengeService:   challengeService,
		renderer:           renderer,
		cache:              cache,
		revalidateInterval: config.RevalidateInterval,
		generateTimeout:    config.GenerateTimeout,
		now:                time.Now,
	}
}

// logger wraps the execution context with component info
func (s *PageService) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("service", "page").Logger()
	return &l
}

func (s *PageService) RevalidateInterval() time.Duration {
	return s.revalidateInterval
}

// GetPage returns the page for slug.
//
// Absence yields a RESOURCE_NOT_FOUND error and evicts any cached copy.
// A backend failure yields the cached copy as stale when one exists,
// otherwise the REMOTE_PROCESS_ERROR.
func (s *PageService) GetPage(ctx context.Context, slug string) (*PageResult, error) {
	logger := s.logger(ctx).With().Str("slug", slug).Logger()

	cached, err := s.cache.GetPage(ctx, slug)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read page cache")
		cached = nil
	}

	if cached != nil && !cached.IsStale(s.now(), s.revalidateInterval) {
		logger.Debug().Time("generated_at", cached.GeneratedAt).Msg("serving cached page")
		return &PageResult{Page: cached, Status: PageStatusFresh}, nil
	}

	// one regeneration per slug at a time; it outlives a single client disconnecting
	v, err, shared := s.group.Do(slug, func() (interface{}, error) {
		genCtx := context.WithoutCancel(ctx)
		if s.generateTimeout > 0 {
			var cancel context.CancelFunc
			genCtx, cancel = context.WithTimeout(genCtx, s.generateTimeout)
			defer cancel()
		}
		return s.Generate(genCtx, slug)
	})
	if err == nil {
		logger.Debug().Bool("shared", shared).Msg("page regenerated")
		return &PageResult{Page: v.(*domain.RenderedPage), Status: PageStatusGenerated}, nil
	}

	if domain.IsNotFound(err) {
		if cached != nil {
			if delErr := s.cache.DeletePage(ctx, slug); delErr != nil {
				logger.Warn().Err(delErr).Msg("failed to evict page of removed challenge")
			}
		}
		return nil, err
	}

	if cached != nil {
		logger.Warn().Err(err).
			Time("generated_at", cached.GeneratedAt).
			Msg("regeneration failed, serving stale page")
		return &PageResult{Page: cached, Status: PageStatusStale}, nil
	}

	return nil, err
}

// Generate renders the page for slug and stores it in the cache
func (s *PageService) Generate(ctx context.Context, slug string) (*domain.RenderedPage, error) {
	challenge, err := s.challengeService.GetChallenge(ctx, slug)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(*challenge)
	if err != nil {
		s.logger(ctx).Error().Err(err).Str("slug", slug).Msg("failed to render page")
		return nil, domain.NewError(domain.ErrorCodeInternalProcess, err)
	}

	page := &domain.RenderedPage{
		Slug:        slug,
		HTML:        html,
		GeneratedAt: s.now(),
	}

	if err := s.cache.SetPage(ctx, page); err != nil {
		s.logger(ctx).Error().Err(err).Str("slug", slug).Msg("failed to store page in cache")
	}

	return page, nil
}
