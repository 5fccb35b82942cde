package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"showcase/api/database"
	"showcase/api/models"
	"showcase/api/utils"
)

type AnalyticsStore struct {
	DB *database.ClickHouseClient
}

func NewAnalyticsStore(chClient *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{DB: chClient}
}

func (s *AnalyticsStore) InsertPageViews(ctx context.Context, views []models.PageView) error {
	if len(views) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO page_views (
			id, created_at, path, title, session_id, user_id, ip_address, user_agent,
			referrer, utm_source, utm_medium, utm_campaign, country, device, browser, os,
			duration_seconds, locale
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page view batch: %w", err)
	}
	defer batch.Abort()

	for _, v := range views {
		if err := batch.Append(
			v.ID, v.CreatedAt, v.Path, v.Title, v.SessionID, v.UserID, v.IPAddress, v.UserAgent,
			v.Referrer, v.UTMSource, v.UTMMedium, v.UTMCampaign, v.Country, v.Device, v.Browser, v.OS,
			v.DurationSeconds, v.Locale,
		); err != nil {
			return fmt.Errorf("failed to append page view %s: %w", v.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send page view batch: %w", err)
	}
	return nil
}

func (s *AnalyticsStore) InsertProductViews(ctx context.Context, views []models.ProductView) error {
	if len(views) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO product_views (
			id, created_at, product_id, product_variant_id, session_id, user_id, ip_address,
			user_agent, referrer, country, city, device, browser, os, duration_seconds, locale
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare product view batch: %w", err)
	}
	defer batch.Abort()

	for _, v := range views {
		if err := batch.Append(
			v.ID, v.CreatedAt, v.ProductID, v.ProductVariantID, v.SessionID, v.UserID, v.IPAddress,
			v.UserAgent, v.Referrer, v.Country, v.City, v.Device, v.Browser, v.OS, v.DurationSeconds, v.Locale,
		); err != nil {
			return fmt.Errorf("failed to append product view %s: %w", v.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send product view batch: %w", err)
	}
	return nil
}

func (s *AnalyticsStore) InsertCustomEvents(ctx context.Context, events []models.CustomEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			id, created_at, event_name, category, label, value, properties, session_id,
			user_id, product_id, order_id, path, ip_address, user_agent, locale
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare event batch: %w", err)
	}
	defer batch.Abort()

	for _, e := range events {
		props, err := encodeProperties(e.Properties)
		if err != nil {
			return fmt.Errorf("failed to encode properties of event %s: %w", e.ID, err)
		}
		if err := batch.Append(
			e.ID, e.CreatedAt, e.EventName, string(e.Category), e.Label, e.Value, props, e.SessionID,
			e.UserID, e.ProductID, e.OrderID, e.Path, e.IPAddress, e.UserAgent, e.Locale,
		); err != nil {
			return fmt.Errorf("failed to append event %s: %w", e.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send event batch: %w", err)
	}
	return nil
}

func encodeProperties(p models.Properties) (string, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rangeFilter renders an inclusive created_at bound. A nil range matches all rows.
func rangeFilter(dr *models.DateRange) (string, []interface{}) {
	if dr == nil {
		return "", nil
	}
	return "created_at >= ? AND created_at <= ?", []interface{}{dr.Start.UTC(), dr.End.UTC()}
}

func whereClause(conds ...string) string {
	var parts []string
	for _, c := range conds {
		if c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

func (s *AnalyticsStore) count(ctx context.Context, table, filter string, filterArgs []interface{}, dr *models.DateRange) (int, error) {
	rangeCond, args := rangeFilter(dr)
	args = append(filterArgs, args...)
	query := fmt.Sprintf(`SELECT count() FROM %s %s`, table, whereClause(filter, rangeCond))

	var n uint64
	if err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return int(n), nil
}

func (s *AnalyticsStore) CountPageViews(ctx context.Context, dr *models.DateRange) (int, error) {
	return s.count(ctx, "page_views", "", nil, dr)
}

func (s *AnalyticsStore) CountProductViews(ctx context.Context, dr *models.DateRange) (int, error) {
	return s.count(ctx, "product_views", "", nil, dr)
}

// CountViewsOfProduct returns 0 for unknown products.
func (s *AnalyticsStore) CountViewsOfProduct(ctx context.Context, productID string, dr *models.DateRange) (int, error) {
	return s.count(ctx, "product_views", "product_id = ?", []interface{}{productID}, dr)
}

// UniqueVisitors counts distinct session ids. uniqExact skips NULLs, so
// anonymous records without a session id are excluded.
func (s *AnalyticsStore) UniqueVisitors(ctx context.Context, dr *models.DateRange) (int, error) {
	rangeCond, args := rangeFilter(dr)
	query := fmt.Sprintf(`SELECT uniqExact(session_id) FROM page_views %s`, whereClause(rangeCond))

	var n uint64
	if err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unique visitors: %w", err)
	}
	return int(n), nil
}

// topN ranks keyColumn values by row count, ties broken by ascending key.
func (s *AnalyticsStore) topN(ctx context.Context, table, keyColumn string, limit int, dr *models.DateRange) ([]keyCount, error) {
	rangeCond, args := rangeFilter(dr)
	query := fmt.Sprintf(`
		SELECT %[1]s AS item_key, count() AS views
		FROM %[2]s
		%[3]s
		GROUP BY %[1]s
		ORDER BY views DESC, item_key ASC
		LIMIT ?
	`, keyColumn, table, whereClause(rangeCond))
	args = append(args, limit)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top %s: %w", table, err)
	}
	defer rows.Close()

	var results []keyCount
	for rows.Next() {
		var (
			key   string
			views uint64
		)
		if err := rows.Scan(&key, &views); err != nil {
			return nil, fmt.Errorf("failed to scan top %s row: %w", table, err)
		}
		results = append(results, keyCount{key: key, count: int(views)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during top %s query: %w", table, err)
	}
	return results, nil
}

type keyCount struct {
	key   string
	count int
}

func (s *AnalyticsStore) TopProducts(ctx context.Context, limit int, dr *models.DateRange) ([]models.ProductViewStats, error) {
	rows, err := s.topN(ctx, "product_views", "product_id", limit, dr)
	if err != nil {
		return nil, err
	}
	stats := make([]models.ProductViewStats, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, models.ProductViewStats{ProductID: r.key, Views: r.count})
	}
	return stats, nil
}

func (s *AnalyticsStore) TopPages(ctx context.Context, limit int, dr *models.DateRange) ([]models.PageViewStats, error) {
	rows, err := s.topN(ctx, "page_views", "path", limit, dr)
	if err != nil {
		return nil, err
	}
	stats := make([]models.PageViewStats, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, models.PageViewStats{Path: r.key, Views: r.count})
	}
	return stats, nil
}

// EventCounts groups custom events by name. Names never seen are absent.
func (s *AnalyticsStore) EventCounts(ctx context.Context, dr *models.DateRange) (map[string]int, error) {
	rangeCond, args := rangeFilter(dr)
	query := fmt.Sprintf(`
		SELECT event_name, count() AS total
		FROM analytics_events
		%s
		GROUP BY event_name
	`, whereClause(rangeCond))

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			total uint64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan event count row: %w", err)
		}
		counts[name] = int(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event counts query: %w", err)
	}
	return counts, nil
}

func (s *AnalyticsStore) dailyCounts(ctx context.Context, table string, since time.Time) ([]models.DailyCount, error) {
	query := fmt.Sprintf(`
		SELECT toDate(created_at) AS day, count() AS total
		FROM %s
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day ASC
	`, table)

	rows, err := s.DB.Conn.Query(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily %s: %w", table, err)
	}
	defer rows.Close()

	var results []models.DailyCount
	for rows.Next() {
		var (
			day   time.Time
			total uint64
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily %s row: %w", table, err)
		}
		results = append(results, models.DailyCount{Date: day, Count: int(total)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during daily %s query: %w", table, err)
	}
	return results, nil
}

// DailyPageViews returns per-day page view counts since the given instant.
// Days without records are omitted.
func (s *AnalyticsStore) DailyPageViews(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	return s.dailyCounts(ctx, "page_views", since)
}

func (s *AnalyticsStore) DailyProductViews(ctx context.Context, since time.Time) ([]models.DailyCount, error) {
	return s.dailyCounts(ctx, "product_views", since)
}

// EventTimeline buckets custom events with toStartOf<interval>. When eventName
// is set only that event is counted.
func (s *AnalyticsStore) EventTimeline(ctx context.Context, interval, eventName string, dr *models.DateRange) ([]models.EventTimelinePoint, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	rangeCond, args := rangeFilter(dr)
	nameCond := ""
	if eventName != "" {
		nameCond = "event_name = ?"
		args = append(args, eventName)
	}

	query := fmt.Sprintf(`
		SELECT toStartOf%s(created_at) AS time_bucket, count() AS total
		FROM analytics_events
		%s
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`, interval, whereClause(rangeCond, nameCond))

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event timeline: %w", err)
	}
	defer rows.Close()

	var results []models.EventTimelinePoint
	for rows.Next() {
		var (
			bucket time.Time
			total  uint64
		)
		if err := rows.Scan(&bucket, &total); err != nil {
			return nil, fmt.Errorf("failed to scan event timeline row: %w", err)
		}
		point := models.EventTimelinePoint{Time: bucket, Count: int(total)}
		if eventName != "" {
			name := eventName
			point.EventName = &name
		}
		results = append(results, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event timeline query: %w", err)
	}
	return results, nil
}

// AveragePageDuration is the mean duration_seconds of page views, 0 when none.
func (s *AnalyticsStore) AveragePageDuration(ctx context.Context, dr *models.DateRange) (float64, error) {
	rangeCond, args := rangeFilter(dr)
	query := fmt.Sprintf(`SELECT avgOrNull(duration_seconds) FROM page_views %s`, whereClause(rangeCond))

	var avg *float64
	if err := s.DB.Conn.QueryRow(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to query average page duration: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
