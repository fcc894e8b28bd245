package gormdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/newsverdict/verdict/internal/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Analysis{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestAnalysisRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	a := entity.NewAnalysis("req-1", "Scientists confirm...", &entity.Prediction{
		NaiveBayes:   "FAKE",
		FinalVerdict: "FAKE",
	}, 120*time.Millisecond)

	require.NoError(t, repo.Create(ctx, a))

	var stored entity.Analysis
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	assert.Equal(t, "req-1", stored.RequestID)
	assert.Equal(t, "FAKE", stored.FinalVerdict)
	assert.Equal(t, "verdict fake", stored.Style)
	assert.Equal(t, int64(120), stored.LatencyMs)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestAnalysisRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a := entity.NewAnalysis(fmt.Sprintf("req-%d", i), "text", &entity.Prediction{FinalVerdict: "REAL"}, 0)
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, a))
	}

	t.Run("newest first with total", func(t *testing.T) {
		analyses, total, err := repo.List(ctx, 2, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, analyses, 2)
		assert.Equal(t, "req-4", analyses[0].RequestID)
		assert.Equal(t, "req-3", analyses[1].RequestID)
	})

	t.Run("offset", func(t *testing.T) {
		analyses, total, err := repo.List(ctx, 10, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, analyses, 2)
		assert.Equal(t, "req-1", analyses[0].RequestID)
		assert.Equal(t, "req-0", analyses[1].RequestID)
	})
}

func TestAnalysisRepository_ListEmpty(t *testing.T) {
	repo := NewAnalysisRepository(setupTestDB(t))

	analyses, total, err := repo.List(context.Background(), 20, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, analyses)
}
