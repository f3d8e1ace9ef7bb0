package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/axiomcity/axiom-susu/internal/model"
	"github.com/axiomcity/axiom-susu/internal/repository"
)

func setupSeedDB(t *testing.T) (*repository.HubRepository, *repository.CategoryRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.InterestHub{}, &model.PurposeCategory{}))
	return repository.NewHubRepository(db), repository.NewCategoryRepository(db)
}

func TestRun_SeedsCatalog(t *testing.T) {
	hubRepo, categoryRepo := setupSeedDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, hubRepo, categoryRepo))

	hubCount, err := hubRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(60), hubCount) // 20 州 + 20 城市 + 20 侨民

	categoryCount, err := categoryRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), categoryCount)

	hub, err := hubRepo.GetByRegionID(ctx, "us-california")
	require.NoError(t, err)
	assert.Equal(t, model.HubRegionKindState, hub.RegionKind)
	assert.True(t, hub.Active)
}

func TestRun_Idempotent(t *testing.T) {
	hubRepo, categoryRepo := setupSeedDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, hubRepo, categoryRepo))
	require.NoError(t, Run(ctx, hubRepo, categoryRepo))

	hubCount, err := hubRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(60), hubCount)

	categoryCount, err := categoryRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), categoryCount)
}
