package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/store"
)

func newTestCMS(t *testing.T) *CMSService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Banner{}, &models.BannerTranslation{},
		&models.Page{}, &models.PageTranslation{},
		&models.CaseCategory{}, &models.CaseCategoryTranslation{},
		&models.CaseStudy{}, &models.CaseStudyTranslation{},
		&models.CustomerReview{}, &models.CustomerReviewTranslation{},
		&models.Certification{}, &models.CertificationTranslation{},
		&models.TeamMember{}, &models.TeamMemberTranslation{},
		&models.CompanyTimeline{}, &models.CompanyTimelineTranslation{},
	))
	return NewCMSService(db, logger.Nop())
}

func lang(code string) models.TranslationInput {
	return models.TranslationInput{LanguageCode: code}
}

func ptr[V any](v V) *V { return &v }

func TestCreateBannerDefaults(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	b, err := cms.CreateBanner(ctx, models.CreateBannerInput{
		Code: "hero",
		Translations: []models.BannerTranslationInput{
			{TranslationInput: lang("en"), Title: "Made to measure"},
		},
	})
	require.NoError(t, err)
	assert.True(t, b.Enabled, "enabled defaults to true")
	assert.Zero(t, b.Position)
	require.Len(t, b.Translations, 1)
	assert.Equal(t, "", b.Translations[0].Subtitle)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	_, err := cms.CreateBanner(ctx, models.CreateBannerInput{Code: "hero"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "translations")

	_, err = cms.CreateCustomerReview(ctx, models.CreateCustomerReviewInput{
		CustomerName: "Li",
		Rating:       ptr(9),
		Translations: []models.CustomerReviewTranslationInput{{TranslationInput: lang("en"), Content: "Great"}},
	})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "rating")
}

func TestUpdateUpsertsTranslationsByLanguage(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	p, err := cms.CreatePage(ctx, models.CreatePageInput{
		Slug: "about",
		Translations: []models.PageTranslationInput{
			{TranslationInput: lang("en"), Title: "About", Content: ptr("We make curtains")},
		},
	})
	require.NoError(t, err)

	updated, err := cms.UpdatePage(ctx, models.UpdatePageInput{
		ID:      p.ID,
		Enabled: ptr(false),
		Translations: []models.PageTranslationInput{
			{TranslationInput: lang("en"), Title: "About us"},
			{TranslationInput: lang("zh"), Title: "关于我们", Content: ptr("窗帘")},
		},
	})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	require.Len(t, updated.Translations, 2)

	en := PickTranslation(updated.Translations, "en", "en")
	require.NotNil(t, en)
	assert.Equal(t, "About us", en.Title)
	assert.Equal(t, "We make curtains", en.Content, "omitted fields keep their value")
	assert.Equal(t, p.Translations[0].ID, en.ID, "existing translation row is reused")

	_, err = cms.UpdatePage(ctx, models.UpdatePageInput{ID: 4242, Slug: ptr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteReportsMissingRows(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	c, err := cms.CreateCertification(ctx, models.CreateCertificationInput{
		Code:         "iso-9001",
		Translations: []models.CertificationTranslationInput{{TranslationInput: lang("en"), Name: "ISO 9001"}},
	})
	require.NoError(t, err)

	resp, err := cms.Certifications.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Deleted, resp.Result)
	assert.Nil(t, resp.Message)

	resp, err = cms.Certifications.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotDeleted, resp.Result)
	require.NotNil(t, resp.Message)
}

func TestShopReadsOnlyEnabledInOrder(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	mk := func(year, position int, enabled bool) {
		_, err := cms.CreateCompanyTimeline(ctx, models.CreateCompanyTimelineInput{
			Year: year, Position: ptr(position), Enabled: ptr(enabled),
			Translations: []models.CompanyTimelineTranslationInput{{TranslationInput: lang("en"), Title: "t"}},
		})
		require.NoError(t, err)
	}
	mk(2010, 2, true)
	mk(2005, 1, true)
	mk(2001, 0, false)
	mk(2015, 1, true)

	got, err := cms.CompanyTimelines.Enabled(ctx, nil)
	require.NoError(t, err)
	years := make([]int, 0, len(got))
	for _, e := range got {
		years = append(years, e.Year)
	}
	assert.Equal(t, []int{2005, 2015, 2010}, years)
}

func TestLookupByKey(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	on, err := cms.CreateBanner(ctx, models.CreateBannerInput{
		Code:         "on",
		Translations: []models.BannerTranslationInput{{TranslationInput: lang("en"), Title: "On"}},
	})
	require.NoError(t, err)
	_, err = cms.CreateBanner(ctx, models.CreateBannerInput{
		Code: "off", Enabled: ptr(false),
		Translations: []models.BannerTranslationInput{{TranslationInput: lang("en"), Title: "Off"}},
	})
	require.NoError(t, err)

	got, err := cms.Banners.Lookup(ctx, nil, "code", ptr("on"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, on.ID, got.ID)

	got, err = cms.Banners.Lookup(ctx, &on.ID, "code", nil)
	require.NoError(t, err)
	require.NotNil(t, got)

	for _, code := range []string{"off", "missing"} {
		got, err = cms.Banners.Lookup(ctx, nil, "code", ptr(code))
		require.NoError(t, err)
		assert.Nil(t, got, code)
	}

	got, err = cms.Banners.Lookup(ctx, nil, "code", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCaseStudyRelations(t *testing.T) {
	ctx := context.Background()
	cms := newTestCMS(t)

	cat, err := cms.CreateCaseCategory(ctx, models.CreateCaseCategoryInput{
		Code:         "residential",
		Translations: []models.CaseCategoryTranslationInput{{TranslationInput: lang("en"), Name: "Residential"}},
	})
	require.NoError(t, err)

	cs, err := cms.CreateCaseStudy(ctx, models.CreateCaseStudyInput{
		Slug:         "villa",
		CategoryID:   &cat.ID,
		GalleryIDs:   []string{"a1", "a2"},
		Translations: []models.CaseStudyTranslationInput{{TranslationInput: lang("en"), Title: "Villa"}},
	})
	require.NoError(t, err)
	require.NotNil(t, cs.Category)
	assert.Equal(t, "residential", cs.Category.Code)
	assert.Equal(t, []string{"a1", "a2"}, []string(cs.GalleryIDs))

	for i, enabled := range []bool{true, false, true} {
		_, err := cms.CreateCustomerReview(ctx, models.CreateCustomerReviewInput{
			CustomerName: "c", Enabled: ptr(enabled), Position: ptr(3 - i), CaseStudyID: &cs.ID,
			Translations: []models.CustomerReviewTranslationInput{{TranslationInput: lang("en"), Content: "ok"}},
		})
		require.NoError(t, err)
	}

	found, err := cms.LookupCaseStudy(ctx, nil, ptr("villa"))
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Reviews, 2, "disabled reviews are hidden")
	assert.Equal(t, 1, found.Reviews[0].Position)
	assert.Equal(t, defaultReviewRating, found.Reviews[0].Rating)

	other := uint(999)
	list, err := cms.EnabledCaseStudies(ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = cms.EnabledCaseStudies(ctx, &cat.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPickTranslation(t *testing.T) {
	ts := []models.BannerTranslation{
		{TranslationBase: models.TranslationBase{LanguageCode: "zh"}, Title: "横幅"},
		{TranslationBase: models.TranslationBase{LanguageCode: "en"}, Title: "Banner"},
	}

	assert.Equal(t, "横幅", PickTranslation(ts, "ZH", "en").Title)
	assert.Equal(t, "Banner", PickTranslation(ts, "de", "en").Title)
	assert.Equal(t, "横幅", PickTranslation(ts, "de", "fr").Title)
	assert.Nil(t, PickTranslation([]models.BannerTranslation{}, "en", "en"))
}
