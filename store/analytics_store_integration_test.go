//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcclickhouse "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"showcase/api/database"
	"showcase/api/logger"
	"showcase/api/models"
)

// Usage:
//   go test -tags integration ./store/...

func newClickHouseStore(t *testing.T) *AnalyticsStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := tcclickhouse.Run(ctx, "clickhouse/clickhouse-server:24.3-alpine",
		tcclickhouse.WithUsername("showcase"),
		tcclickhouse.WithPassword("showcase"),
		tcclickhouse.WithDatabase("analytics"),
	)
	if err != nil {
		t.Skipf("Skipping: could not start ClickHouse container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	host, err := ctr.ConnectionHost(ctx)
	require.NoError(t, err)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{host},
		Auth: clickhouse.Auth{Database: "analytics", Username: "showcase", Password: "showcase"},
	})
	require.NoError(t, err)
	require.NoError(t, conn.Ping(ctx))

	client := database.NewClickHouseClient(conn, logger.Nop())
	t.Cleanup(client.Close)
	require.NoError(t, client.EnsureSchema(ctx))
	// second run must be a no-op
	require.NoError(t, client.EnsureSchema(ctx))

	return NewAnalyticsStore(client)
}

func sp(s string) *string { return &s }

func TestAnalyticsStoreAggregations(t *testing.T) {
	s := newClickHouseStore(t)
	ctx := context.Background()

	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	pageViews := []models.PageView{
		{ID: uuid.New(), CreatedAt: day1, Path: "/home", SessionID: sp("s1"), DurationSeconds: 10},
		{ID: uuid.New(), CreatedAt: day1, Path: "/home", SessionID: sp("s2"), DurationSeconds: 20},
		{ID: uuid.New(), CreatedAt: day1, Path: "/about", SessionID: sp("s1")},
		{ID: uuid.New(), CreatedAt: day2, Path: "/contact", DurationSeconds: 30},
		{ID: uuid.New(), CreatedAt: day2, Path: "/about "},
	}
	require.NoError(t, s.InsertPageViews(ctx, pageViews))

	productViews := []models.ProductView{
		{ID: uuid.New(), CreatedAt: day1, ProductID: "p2"},
		{ID: uuid.New(), CreatedAt: day1, ProductID: "p1"},
		{ID: uuid.New(), CreatedAt: day2, ProductID: "p1"},
		{ID: uuid.New(), CreatedAt: day2, ProductID: "p3"},
	}
	require.NoError(t, s.InsertProductViews(ctx, productViews))

	value := decimal.RequireFromString("19.99")
	events := []models.CustomEvent{
		{ID: uuid.New(), CreatedAt: day1, EventName: "add_to_cart", Category: models.CategoryCart, Value: &value,
			Properties: models.Properties{"qty": 2}},
		{ID: uuid.New(), CreatedAt: day1, EventName: "add_to_cart", Category: models.CategoryCart},
		{ID: uuid.New(), CreatedAt: day2, EventName: "search", Category: models.CategoryCustom},
	}
	require.NoError(t, s.InsertCustomEvents(ctx, events))

	t.Run("counts", func(t *testing.T) {
		n, err := s.CountPageViews(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		n, err = s.CountViewsOfProduct(ctx, "p1", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = s.CountViewsOfProduct(ctx, "missing", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("range is inclusive", func(t *testing.T) {
		n, err := s.CountPageViews(ctx, &models.DateRange{Start: day1, End: day1})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("unique visitors skip null sessions", func(t *testing.T) {
		n, err := s.UniqueVisitors(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("top products tie break", func(t *testing.T) {
		top, err := s.TopProducts(ctx, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, []models.ProductViewStats{
			{ProductID: "p1", Views: 2},
			{ProductID: "p2", Views: 1},
			{ProductID: "p3", Views: 1},
		}, top)

		top, err = s.TopProducts(ctx, 1, nil)
		require.NoError(t, err)
		assert.Len(t, top, 1)
	})

	t.Run("top pages keep raw paths", func(t *testing.T) {
		top, err := s.TopPages(ctx, 10, nil)
		require.NoError(t, err)
		require.Len(t, top, 4)
		assert.Equal(t, models.PageViewStats{Path: "/home", Views: 2}, top[0])
		assert.Contains(t, top, models.PageViewStats{Path: "/about ", Views: 1})
	})

	t.Run("event counts", func(t *testing.T) {
		counts, err := s.EventCounts(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"add_to_cart": 2, "search": 1}, counts)
	})

	t.Run("daily series", func(t *testing.T) {
		pv, err := s.DailyPageViews(ctx, day1.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, pv, 2)
		assert.Equal(t, "2025-03-01", pv[0].Date.Format("2006-01-02"))
		assert.Equal(t, 3, pv[0].Count)
		assert.Equal(t, 2, pv[1].Count)
	})

	t.Run("event timeline", func(t *testing.T) {
		points, err := s.EventTimeline(ctx, "Day", "add_to_cart", nil)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 2, points[0].Count)

		_, err = s.EventTimeline(ctx, "Fortnight", "", nil)
		assert.Error(t, err)
	})

	t.Run("summary reads over an empty range", func(t *testing.T) {
		empty := &models.DateRange{Start: day1.AddDate(-1, 0, 0), End: day2.AddDate(-1, 0, 0)}

		n, err := s.CountPageViews(ctx, empty)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = s.UniqueVisitors(ctx, empty)
		require.NoError(t, err)
		assert.Zero(t, n)

		n, err = s.CountProductViews(ctx, empty)
		require.NoError(t, err)
		assert.Zero(t, n)

		products, err := s.TopProducts(ctx, 10, empty)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)

		pages, err := s.TopPages(ctx, 10, empty)
		require.NoError(t, err)
		assert.NotNil(t, pages)
		assert.Empty(t, pages)

		counts, err := s.EventCounts(ctx, empty)
		require.NoError(t, err)
		assert.NotNil(t, counts)
		assert.Empty(t, counts)
	})

	t.Run("average page duration", func(t *testing.T) {
		avg, err := s.AveragePageDuration(ctx, nil)
		require.NoError(t, err)
		assert.InDelta(t, 12.0, avg, 0.001)

		empty := &models.DateRange{Start: day1.AddDate(-1, 0, 0), End: day1.AddDate(-1, 0, 1)}
		avg, err = s.AveragePageDuration(ctx, empty)
		require.NoError(t, err)
		assert.Zero(t, avg)
	})
}
