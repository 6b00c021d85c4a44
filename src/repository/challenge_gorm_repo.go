package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/peakyminds/challenge-seo/src/domain"
	"gorm.io/gorm"
)

// GormChallengeRepository reads the documents table directly from Postgres
type GormChallengeRepository struct {
	db *gorm.DB
}

func NewGormChallengeRepository(db *gorm.DB) *GormChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// ListSlugs retrieves the slug of every document
func (r *GormChallengeRepository) ListSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&domain.Challenge{}).Order("slug").Pluck("slug", &slugs).Error; err != nil {
		return nil, remoteError(fmt.Errorf("failed to list slugs: %w", err))
	}
	return slugs, nil
}

// FindBySlug retrieves a specific document by its slug
func (r *GormChallengeRepository) FindBySlug(ctx context.Context, slug string) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.db.WithContext(ctx).
		Select("slug", "title", "image_url").
		Where("slug = ?", slug).
		First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewError(
			domain.ErrorCodeResourceNotFound,
			fmt.Errorf("challenge %q not found", slug),
			domain.WithMsg("Challenge not found"),
			domain.WithDetail("slug", slug),
		)
	}
	if err != nil {
		return nil, remoteError(fmt.Errorf("failed to find challenge: %w", err))
	}
	return &challenge, nil
}
