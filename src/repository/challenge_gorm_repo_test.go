package repository

import (
	"context"
	"testing"

	"github.com/peakyminds/challenge-seo/src/domain"
	"github.com/peakyminds/challenge-seo/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := testutil.GetEnv(t, "TEST_DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(&domain.Challenge{}), "Failed to migrate documents table")
	t.Cleanup(func() {
		if err := db.Exec("DELETE FROM documents").Error; err != nil {
			t.Logf("Warning: Failed to clean up test data: %v", err)
		}
	})

	return db
}

func TestGormChallengeRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormChallengeRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.Challenge{
		Slug:     "logic-101",
		Title:    "Logic Basics",
		ImageURL: "https://img/x.png",
	}).Error)

	challenge, err := repo.FindBySlug(ctx, "logic-101")
	require.NoError(t, err)
	assert.Equal(t, "Logic Basics", challenge.Title)
	assert.Equal(t, "https://img/x.png", challenge.ImageURL)

	_, err = repo.FindBySlug(ctx, "missing-one")
	assert.True(t, domain.IsNotFound(err))

	slugs, err := repo.ListSlugs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"logic-101"}, slugs)
}
