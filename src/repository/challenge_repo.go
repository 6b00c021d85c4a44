package repository

import (
	"context"

	"github.com/peakyminds/challenge-seo/src/domain"
)

// ChallengeRepository reads challenge records from the backend document store.
//
// FindBySlug returns a RESOURCE_NOT_FOUND domain error when no record matches
// and a REMOTE_PROCESS_ERROR when the store itself cannot be read.
type ChallengeRepository interface {
	ListSlugs(ctx context.Context) ([]string, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Challenge, error)
}
