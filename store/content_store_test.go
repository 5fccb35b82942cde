package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"showcase/api/models"
)

func newTestGorm(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Banner{}, &models.BannerTranslation{},
		&models.CaseCategory{}, &models.CaseCategoryTranslation{},
		&models.CaseStudy{}, &models.CaseStudyTranslation{},
		&models.CustomerReview{}, &models.CustomerReviewTranslation{},
	))
	return db
}

func banner(code string, position int, enabled bool, langs ...string) *models.Banner {
	b := &models.Banner{Code: code, Position: position, Enabled: enabled}
	for _, l := range langs {
		b.Translations = append(b.Translations, models.BannerTranslation{
			TranslationBase: models.TranslationBase{LanguageCode: l},
			Title:           code + "-" + l,
		})
	}
	return b
}

func TestContentStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore[models.Banner](newTestGorm(t))

	b := banner("spring", 2, true, "en", "zh")
	require.NoError(t, s.Create(ctx, b))
	require.NotZero(t, b.ID)

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "spring", got.Code)
	assert.Len(t, got.Translations, 2)

	missing, err := s.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byCode, err := s.FindBy(ctx, map[string]interface{}{"code": "spring"})
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, b.ID, byCode.ID)

	// update one translation in place and add a new language
	got.Position = 7
	got.Translations[0].Title = "Spring sale"
	got.Translations = append(got.Translations, models.BannerTranslation{
		TranslationBase: models.TranslationBase{LanguageCode: "de"},
		Title:           "Frühling",
	})
	require.NoError(t, s.Save(ctx, got))

	reloaded, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Position)
	assert.Len(t, reloaded.Translations, 3)
	titles := map[string]string{}
	for _, tr := range reloaded.Translations {
		titles[tr.LanguageCode] = tr.Title
	}
	assert.Equal(t, "Spring sale", titles[got.Translations[0].LanguageCode])
	assert.Equal(t, "Frühling", titles["de"])

	require.NoError(t, s.Delete(ctx, b.ID))
	gone, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var orphans int64
	require.NoError(t, s.db.Model(&models.BannerTranslation{}).Where("base_id = ?", b.ID).Count(&orphans).Error)
	assert.Zero(t, orphans, "translations must be deleted with their banner")

	err = s.Delete(ctx, b.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "second delete: %v", err)
}

func TestContentStoreListAndOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore[models.Banner](newTestGorm(t))

	for _, b := range []*models.Banner{
		banner("c", 3, true, "en"),
		banner("a", 1, true, "en"),
		banner("off", 0, false, "en"),
		banner("b", 1, true, "en"),
	} {
		require.NoError(t, s.Create(ctx, b))
	}

	items, total, err := s.List(ctx, models.ListOptions{Skip: 1, Take: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Code)

	enabled, err := s.Ordered(ctx, map[string]interface{}{"enabled": true})
	require.NoError(t, err)
	var codes []string
	for _, b := range enabled {
		codes = append(codes, b.Code)
	}
	assert.Equal(t, []string{"a", "b", "c"}, codes)
}

func TestContentStoreCaseStudyRelations(t *testing.T) {
	ctx := context.Background()
	db := newTestGorm(t)
	categories := NewContentStore[models.CaseCategory](db)
	studies := NewContentStore[models.CaseStudy](db, "Category", "Category.Translations", "Reviews", "Reviews.Translations").
		OmitOnSave("Category", "Reviews")
	reviews := NewContentStore[models.CustomerReview](db)

	cat := &models.CaseCategory{Code: "residential"}
	require.NoError(t, categories.Create(ctx, cat))

	cs := &models.CaseStudy{
		Slug:       "villa",
		Enabled:    true,
		CategoryID: &cat.ID,
		GalleryIDs: []string{"asset-1", "asset-2"},
		Translations: []models.CaseStudyTranslation{
			{TranslationBase: models.TranslationBase{LanguageCode: "en"}, Title: "Villa"},
		},
	}
	require.NoError(t, studies.Create(ctx, cs))
	require.NoError(t, reviews.Create(ctx, &models.CustomerReview{
		CustomerName: "Ada", Rating: 5, Enabled: true, CaseStudyID: &cs.ID,
	}))

	got, err := studies.FindBy(ctx, map[string]interface{}{"slug": "villa", "enabled": true})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Category)
	assert.Equal(t, "residential", got.Category.Code)
	assert.Len(t, got.Reviews, 1)
	assert.Equal(t, []string{"asset-1", "asset-2"}, []string(got.GalleryIDs))

	// saving must not rewrite the preloaded category
	got.Category.Code = "changed"
	got.Location = func(s string) *string { return &s }("Lisbon")
	require.NoError(t, studies.Save(ctx, got))

	reloadedCat, err := categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "residential", reloadedCat.Code)

	dup := &models.CaseStudy{Slug: "villa", Enabled: true}
	err = studies.Create(ctx, dup)
	assert.True(t, errors.Is(err, ErrConflict), "duplicate slug: %v", err)
}
