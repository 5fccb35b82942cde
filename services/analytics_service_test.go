package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/api/logger"
	"showcase/api/metrics"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/utils"
)

type fakeAnalyticsRepo struct {
	mu           sync.Mutex
	pageViews    []models.PageView
	productViews []models.ProductView
	events       []models.CustomEvent
	insertErr    error

	pageDays, productDays []models.DailyCount
	since                 time.Time
	failOn                string
	lastLimit             int
}

func (f *fakeAnalyticsRepo) fail(name string) error {
	if f.failOn == name {
		return errors.New(name + " unavailable")
	}
	return nil
}

func (f *fakeAnalyticsRepo) InsertPageViews(_ context.Context, v []models.PageView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pageViews = append(f.pageViews, v...)
	return nil
}

func (f *fakeAnalyticsRepo) InsertProductViews(_ context.Context, v []models.ProductView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.productViews = append(f.productViews, v...)
	return nil
}

func (f *fakeAnalyticsRepo) InsertCustomEvents(_ context.Context, e []models.CustomEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events = append(f.events, e...)
	return nil
}

func (f *fakeAnalyticsRepo) CountPageViews(context.Context, *models.DateRange) (int, error) {
	return 12, f.fail("CountPageViews")
}

func (f *fakeAnalyticsRepo) CountProductViews(context.Context, *models.DateRange) (int, error) {
	return 7, f.fail("CountProductViews")
}

func (f *fakeAnalyticsRepo) CountViewsOfProduct(_ context.Context, id string, _ *models.DateRange) (int, error) {
	if id == "p1" {
		return 3, nil
	}
	return 0, nil
}

func (f *fakeAnalyticsRepo) UniqueVisitors(context.Context, *models.DateRange) (int, error) {
	return 4, f.fail("UniqueVisitors")
}

func (f *fakeAnalyticsRepo) TopProducts(_ context.Context, limit int, _ *models.DateRange) ([]models.ProductViewStats, error) {
	f.mu.Lock()
	f.lastLimit = limit
	f.mu.Unlock()
	return []models.ProductViewStats{{ProductID: "p1", Views: 3}}, f.fail("TopProducts")
}

func (f *fakeAnalyticsRepo) TopPages(context.Context, int, *models.DateRange) ([]models.PageViewStats, error) {
	return nil, f.fail("TopPages")
}

func (f *fakeAnalyticsRepo) EventCounts(context.Context, *models.DateRange) (map[string]int, error) {
	return map[string]int{"add_to_cart": 2}, f.fail("EventCounts")
}

func (f *fakeAnalyticsRepo) DailyPageViews(_ context.Context, since time.Time) ([]models.DailyCount, error) {
	f.mu.Lock()
	f.since = since
	f.mu.Unlock()
	return f.pageDays, f.fail("DailyPageViews")
}

func (f *fakeAnalyticsRepo) DailyProductViews(context.Context, time.Time) ([]models.DailyCount, error) {
	return f.productDays, f.fail("DailyProductViews")
}

func (f *fakeAnalyticsRepo) EventTimeline(context.Context, string, string, *models.DateRange) ([]models.EventTimelinePoint, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) AveragePageDuration(context.Context, *models.DateRange) (float64, error) {
	return 4.5, nil
}

type fakeGeo struct{}

func (fakeGeo) Locate(ip string) (string, string) {
	if ip == "81.2.69.142" {
		return "GB", "London"
	}
	return "", ""
}

var fixedNow = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

func newAnalytics(repo *fakeAnalyticsRepo) *AnalyticsService {
	s := NewAnalyticsService(repo, fakeGeo{}, logger.Nop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func strp(s string) *string { return &s }

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148 Safari/604.1"

func TestTrackPageViewEnrichment(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	s := newAnalytics(repo)

	info := requestdata.Info{
		IP:        "81.2.69.142",
		UserAgent: iphoneUA,
		Claims:    &utils.Claims{UserID: 9, RegisteredClaims: jwt.RegisteredClaims{Subject: "9"}},
	}
	err := s.TrackPageView(context.Background(), info, models.TrackPageViewInput{
		Path:      " /Products?x=1 ",
		SessionID: strp(""),
		Referrer:  strp("https://google.com"),
	})
	require.NoError(t, err)
	require.Len(t, repo.pageViews, 1)

	v := repo.pageViews[0]
	assert.Equal(t, " /Products?x=1 ", v.Path, "path must be stored verbatim")
	assert.Nil(t, v.SessionID, "empty session id is stored as null")
	assert.Equal(t, "81.2.69.142", *v.IPAddress)
	assert.Equal(t, "9", *v.UserID)
	assert.Equal(t, "mobile", *v.Device)
	assert.Equal(t, "Safari", *v.Browser)
	assert.Equal(t, "macOS", *v.OS)
	assert.Equal(t, "GB", *v.Country)
	assert.Equal(t, fixedNow, v.CreatedAt)
	assert.Zero(t, v.DurationSeconds)
	assert.NotEqual(t, [16]byte{}, [16]byte(v.ID))
}

func TestTrackPageViewWithoutContext(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	s := newAnalytics(repo)

	require.NoError(t, s.TrackPageView(context.Background(), requestdata.Info{}, models.TrackPageViewInput{Path: "/"}))
	v := repo.pageViews[0]
	assert.Nil(t, v.IPAddress)
	assert.Nil(t, v.UserAgent)
	assert.Nil(t, v.UserID)
	assert.Nil(t, v.Country)
	assert.Equal(t, "desktop", *v.Device)
	assert.Equal(t, "unknown", *v.Browser)
	assert.Equal(t, "unknown", *v.OS)
}

func TestTrackPageViewRejectsEmptyPath(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	s := newAnalytics(repo)

	err := s.TrackPageView(context.Background(), requestdata.Info{}, models.TrackPageViewInput{Path: ""})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, repo.pageViews)
}

func TestTrackProductViewCity(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	s := newAnalytics(repo)

	err := s.TrackProductView(context.Background(), requestdata.Info{IP: "81.2.69.142"}, models.TrackProductViewInput{
		ProductID:        "42",
		ProductVariantID: strp("42-red"),
	})
	require.NoError(t, err)
	v := repo.productViews[0]
	assert.Equal(t, "42", v.ProductID)
	assert.Equal(t, "42-red", *v.ProductVariantID)
	assert.Equal(t, "London", *v.City)

	err = s.TrackProductView(context.Background(), requestdata.Info{}, models.TrackProductViewInput{})
	assert.True(t, IsValidation(err))
}

func TestTrackEventCategoryAndValue(t *testing.T) {
	tests := []struct {
		name     string
		category *string
		want     models.EventCategory
	}{
		{"absent", nil, models.CategoryCustom},
		{"known", strp("cart"), models.CategoryCart},
		{"case and space", strp("  Checkout "), models.CategoryCheckout},
		{"unknown", strp("promo"), models.CategoryCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAnalyticsRepo{}
			s := newAnalytics(repo)
			value := 19.999
			err := s.TrackEvent(context.Background(), requestdata.Info{}, models.TrackEventInput{
				EventName:  "add_to_cart",
				Category:   tt.category,
				Value:      &value,
				Properties: models.Properties{"qty": 2},
			})
			require.NoError(t, err)
			e := repo.events[0]
			assert.Equal(t, tt.want, e.Category)
			assert.Equal(t, "20", e.Value.String())
			assert.Equal(t, 2, e.Properties["qty"])
		})
	}
}

func TestRejectEventCountsFailure(t *testing.T) {
	s := newAnalytics(&fakeAnalyticsRepo{})
	failures := metrics.EventsIngestedTotal.WithLabelValues("event", metrics.ResultFailure)
	before := testutil.ToFloat64(failures)

	err := s.RejectEvent("click", errors.New("expected a JSON object"))
	assert.True(t, IsValidation(err))
	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestTrackPropagatesStoreFailure(t *testing.T) {
	repo := &fakeAnalyticsRepo{insertErr: errors.New("clickhouse down")}
	s := newAnalytics(repo)

	err := s.TrackEvent(context.Background(), requestdata.Info{}, models.TrackEventInput{EventName: "x"})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestGetSummary(t *testing.T) {
	s := newAnalytics(&fakeAnalyticsRepo{})

	summary, err := s.GetSummary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalPageViews)
	assert.Equal(t, 4, summary.UniqueVisitors)
	assert.Equal(t, 7, summary.TotalProductViews)
	assert.Len(t, summary.TopProducts, 1)
	assert.NotNil(t, summary.TopPages)
	assert.Equal(t, 2, summary.EventCounts["add_to_cart"])
}

// emptyAnalyticsRepo answers every aggregate as a store with no rows in range
// may: zero counts, nil slices and a nil map.
type emptyAnalyticsRepo struct {
	*fakeAnalyticsRepo
	ranges []*models.DateRange
}

func (e *emptyAnalyticsRepo) seen(dr *models.DateRange) {
	e.mu.Lock()
	e.ranges = append(e.ranges, dr)
	e.mu.Unlock()
}

func (e *emptyAnalyticsRepo) CountPageViews(_ context.Context, dr *models.DateRange) (int, error) {
	e.seen(dr)
	return 0, nil
}

func (e *emptyAnalyticsRepo) CountProductViews(_ context.Context, dr *models.DateRange) (int, error) {
	e.seen(dr)
	return 0, nil
}

func (e *emptyAnalyticsRepo) UniqueVisitors(_ context.Context, dr *models.DateRange) (int, error) {
	e.seen(dr)
	return 0, nil
}

func (e *emptyAnalyticsRepo) TopProducts(_ context.Context, _ int, dr *models.DateRange) ([]models.ProductViewStats, error) {
	e.seen(dr)
	return nil, nil
}

func (e *emptyAnalyticsRepo) TopPages(_ context.Context, _ int, dr *models.DateRange) ([]models.PageViewStats, error) {
	e.seen(dr)
	return nil, nil
}

func (e *emptyAnalyticsRepo) EventCounts(_ context.Context, dr *models.DateRange) (map[string]int, error) {
	e.seen(dr)
	return nil, nil
}

func TestGetSummaryEmptyRange(t *testing.T) {
	repo := &emptyAnalyticsRepo{fakeAnalyticsRepo: &fakeAnalyticsRepo{}}
	s := NewAnalyticsService(repo, fakeGeo{}, logger.Nop())
	dr := &models.DateRange{Start: fixedNow.AddDate(-1, 0, 0), End: fixedNow.AddDate(-1, 0, 1)}

	summary, err := s.GetSummary(context.Background(), dr)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalPageViews)
	assert.Zero(t, summary.UniqueVisitors)
	assert.Zero(t, summary.TotalProductViews)
	assert.Equal(t, []models.ProductViewStats{}, summary.TopProducts)
	assert.Equal(t, []models.PageViewStats{}, summary.TopPages)
	assert.Equal(t, map[string]int{}, summary.EventCounts)

	require.Len(t, repo.ranges, 6)
	for _, got := range repo.ranges {
		assert.Same(t, dr, got)
	}

	b, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"topProducts":[]`)
	assert.Contains(t, string(b), `"topPages":[]`)
	assert.Contains(t, string(b), `"eventCounts":{}`)
}

func TestGetSummaryFailsAsAWhole(t *testing.T) {
	for _, name := range []string{"CountPageViews", "UniqueVisitors", "TopPages", "EventCounts"} {
		t.Run(name, func(t *testing.T) {
			s := newAnalytics(&fakeAnalyticsRepo{failOn: name})
			summary, err := s.GetSummary(context.Background(), nil)
			assert.Error(t, err)
			assert.Nil(t, summary)
		})
	}
}

func TestGetSummaryRejectsInvertedRange(t *testing.T) {
	s := newAnalytics(&fakeAnalyticsRepo{})
	_, err := s.GetSummary(context.Background(), &models.DateRange{Start: fixedNow, End: fixedNow.Add(-time.Hour)})
	assert.True(t, IsValidation(err))
}

func TestGetDailyStatsMerge(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	repo := &fakeAnalyticsRepo{
		pageDays:    []models.DailyCount{{Date: day(10), Count: 5}, {Date: day(12), Count: 1}},
		productDays: []models.DailyCount{{Date: day(12), Count: 2}, {Date: day(11), Count: 4}},
	}
	s := newAnalytics(repo)

	stats, err := s.GetDailyStats(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC), repo.since)
	assert.Equal(t, []models.DailyStats{
		{Date: "2025-06-10", PageViews: 5},
		{Date: "2025-06-11", ProductViews: 4},
		{Date: "2025-06-12", PageViews: 1, ProductViews: 2},
	}, stats)

	_, err = s.GetDailyStats(context.Background(), -1)
	assert.True(t, IsValidation(err))
}

func TestGetDailyStatsEmpty(t *testing.T) {
	s := newAnalytics(&fakeAnalyticsRepo{})
	stats, err := s.GetDailyStats(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.NotNil(t, stats)
}

func TestAggregationArguments(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	s := newAnalytics(repo)
	ctx := context.Background()

	n, err := s.GetProductViewCount(ctx, "unknown", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.GetTopProducts(ctx, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)

	_, err = s.GetTopPages(ctx, 0, nil)
	assert.True(t, IsValidation(err))

	_, err = s.GetEventTimeline(ctx, "Fortnight", "", nil)
	assert.True(t, IsValidation(err))

	points, err := s.GetEventTimeline(ctx, "Day", "", nil)
	require.NoError(t, err)
	assert.NotNil(t, points)

	avg, err := s.GetAveragePageDuration(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
}
