package service

import (
	"context"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/repository"
	"github.com/rs/zerolog"
)

type ChallengeService struct {
	repo repository.ChallengeRepository
}

func NewChallengeService(repo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{
		repo: repo,
	}
}

// logger wraps the execution context with component info
func (s *ChallengeService) logger(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx).With().Str("service", "challenge").Logger()
	return &l
}

// ListPaths enumerates every known slug as a static path.
// Failures are returned to the caller, which decides the fallback.
func (s *ChallengeService) ListPaths(ctx context.Context) ([]domain.StaticPath, error) {
	slugs, err := s.repo.ListSlugs(ctx)
	if err != nil {
		s.logger(ctx).Error().Err(err).Msg("failed to list challenge slugs")
		return nil, err
	}

	paths := make([]domain.StaticPath, 0, len(slugs))
	for _, slug := range slugs {
		paths = append(paths, domain.NewStaticPath(slug))
	}

	s.logger(ctx).Debug().Int("path_count", len(paths)).Msg("listed static paths")
	return paths, nil
}

// GetChallenge fetches one challenge and attaches the fixed description
func (s *ChallengeService) GetChallenge(ctx context.Context, slug string) (*domain.Challenge, error) {
	challenge, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger(ctx).Debug().Str("slug", slug).Msg("challenge not found")
		} else {
			s.logger(ctx).Error().Err(err).Str("slug", slug).Msg("failed to fetch challenge")
		}
		return nil, err
	}

	result := challenge.WithDescription()
	return &result, nil
}
