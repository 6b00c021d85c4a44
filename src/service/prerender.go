package service

import (
	"context"
	"sync"
	"time"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PrerenderConfig struct {
	// Interval between passes; zero runs a single pass
	Interval     time.Duration
	Concurrency  int
	// MaxListPaths is the backend's row cap; an enumeration reaching it may be
	// truncated and is not used for pruning. Zero disables the check.
	MaxListPaths int
}

// PrerenderReport summarizes one static generation pass
type PrerenderReport struct {
	Paths    int
	Rendered int
	Missing  int
	Failed   int
	Pruned   int
	// PathsErr is set when the enumeration failed and no path was rendered
	PathsErr error
}

// PrerenderService pre-generates the page of every known challenge
type PrerenderService struct {
	challengeService *ChallengeService
	pageService      *PageService
	cache            *repository.PageCacheRepository
	interval         time.Duration
	concurrency      int
	maxListPaths     int
}

func NewPrerenderService(
	challengeService *ChallengeService,
	pageService *PageService,
	cache *repository.PageCacheRepository,
	config PrerenderConfig,
) *PrerenderService {
	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &PrerenderService{
		challengeService: challengeService,
		pageService:      pageService,
		cache:            cache,
		interval:         config.Interval,
		concurrency:      concurrency,
		maxListPaths:     config.MaxListPaths,
	}
}

// logger wraps the execution context with component info
func (s *PrerenderService) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("component", "prerender-service").Logger()
	return &l
}

// StaticPaths lists the paths to pre-generate. An enumeration failure yields
// an empty set so that every page falls back to on-demand generation.
func (s *PrerenderService) StaticPaths(ctx context.Context) ([]domain.StaticPath, error) {
	paths, err := s.challengeService.ListPaths(ctx)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("path enumeration failed, pages will be generated on demand")
		return []domain.StaticPath{}, err
	}
	return paths, nil
}

// Start runs a pass immediately and then on every interval until ctx is done
func (s *PrerenderService) Start(ctx context.Context) error {
	s.logger(ctx).Info().
		Dur("interval", s.interval).
		Int("concurrency", s.concurrency).
		Msg("starting prerender service")

	s.Run(ctx)

	if s.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger(ctx).Info().Msg("prerender service stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Run(ctx)
		}
	}
}

// Run performs one static generation pass
func (s *PrerenderService) Run(ctx context.Context) PrerenderReport {
	passStart := time.Now()

	paths, err := s.StaticPaths(ctx)
	if err != nil {
		return PrerenderReport{PathsErr: err}
	}

	report := PrerenderReport{Paths: len(paths)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, path := range paths {
		slug := path.Slug()
		g.Go(func() error {
			_, err := s.pageService.Generate(gctx, slug)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Rendered++
			case domain.IsNotFound(err):
				report.Missing++
			default:
				report.Failed++
				s.logger(ctx).Error().Err(err).Str("slug", slug).Msg("failed to prerender page")
			}
			// per-slug failures never abort the pass
			return nil
		})
	}
	_ = g.Wait()

	if s.maxListPaths > 0 && len(paths) >= s.maxListPaths {
		s.logger(ctx).Warn().
			Int("paths", len(paths)).
			Int("max_list_paths", s.maxListPaths).
			Msg("path enumeration may be truncated, skipping prune")
	} else {
		report.Pruned = s.prune(ctx, paths, passStart)
	}

	s.logger(ctx).Info().
		Int("paths", report.Paths).
		Int("rendered", report.Rendered).
		Int("missing", report.Missing).
		Int("failed", report.Failed).
		Int("pruned", report.Pruned).
		Msg("prerender pass completed")

	return report
}

// prune evicts cached pages whose slug is no longer enumerated. Pages
// generated after the pass started belong to slugs created since the
// enumeration and are kept.
func (s *PrerenderService) prune(ctx context.Context, paths []domain.StaticPath, passStart time.Time) int {
	known := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		known[path.Slug()] = struct{}{}
	}

	cached, err := s.cache.ListCachedSlugs(ctx)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("failed to list cached pages")
		return 0
	}

	pruned := 0
	for _, slug := range cached {
		if _, ok := known[slug]; ok {
			continue
		}
		page, err := s.cache.GetPage(ctx, slug)
		if err != nil {
			s.logger(ctx).Warn().Err(err).Str("slug", slug).Msg("failed to read cached page")
			continue
		}
		if page == nil || !page.GeneratedAt.Before(passStart) {
			continue
		}
		if err := s.cache.DeletePage(ctx, slug); err != nil {
			s.logger(ctx).Warn().Err(err).Str("slug", slug).Msg("failed to prune cached page")
			continue
		}
		pruned++
	}
	return pruned
}
