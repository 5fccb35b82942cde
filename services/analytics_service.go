package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"showcase/api/logger"
	"showcase/api/metrics"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/utils"
)

const (
	DefaultTopLimit  = 10
	MaxTopLimit      = 1000
	DefaultDailyDays = 30
	MaxDailyDays     = 3650
)

// AnalyticsRepository is the event store used by AnalyticsService.
type AnalyticsRepository interface {
	InsertPageViews(ctx context.Context, views []models.PageView) error
	InsertProductViews(ctx context.Context, views []models.ProductView) error
	InsertCustomEvents(ctx context.Context, events []models.CustomEvent) error

	CountPageViews(ctx context.Context, dr *models.DateRange) (int, error)
	CountProductViews(ctx context.Context, dr *models.DateRange) (int, error)
	CountViewsOfProduct(ctx context.Context, productID string, dr *models.DateRange) (int, error)
	UniqueVisitors(ctx context.Context, dr *models.DateRange) (int, error)
	TopProducts(ctx context.Context, limit int, dr *models.DateRange) ([]models.ProductViewStats, error)
	TopPages(ctx context.Context, limit int, dr *models.DateRange) ([]models.PageViewStats, error)
	EventCounts(ctx context.Context, dr *models.DateRange) (map[string]int, error)
	DailyPageViews(ctx context.Context, since time.Time) ([]models.DailyCount, error)
	DailyProductViews(ctx context.Context, since time.Time) ([]models.DailyCount, error)
	EventTimeline(ctx context.Context, interval, eventName string, dr *models.DateRange) ([]models.EventTimelinePoint, error)
	AveragePageDuration(ctx context.Context, dr *models.DateRange) (float64, error)
}

// GeoLocator resolves an address to a country code and city name.
type GeoLocator interface {
	Locate(ip string) (country, city string)
}

type AnalyticsService struct {
	repo     AnalyticsRepository
	geo      GeoLocator
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewAnalyticsService builds the service. geo may be nil.
func NewAnalyticsService(repo AnalyticsRepository, geo GeoLocator, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		geo:      geo,
		validate: newValidator(),
		log:      log.With("component", "analytics"),
		now:      time.Now,
	}
}

// enrichment is the server-derived context attached to every record.
type enrichment struct {
	ip, userAgent, userID *string
	device, browser, os   *string
	country, city         *string
}

func (s *AnalyticsService) enrich(info requestdata.Info) enrichment {
	d := utils.ParseUserAgent(info.UserAgent)
	e := enrichment{
		ip:        utils.StringPtr(info.IP),
		userAgent: utils.StringPtr(info.UserAgent),
		userID:    info.UserID(),
		device:    utils.StringPtr(d.Device),
		browser:   utils.StringPtr(d.Browser),
		os:        utils.StringPtr(d.OS),
	}
	if s.geo != nil && info.IP != "" {
		country, city := s.geo.Locate(info.IP)
		e.country = utils.StringPtr(country)
		e.city = utils.StringPtr(city)
	}
	return e
}

func (s *AnalyticsService) record(kind string, err error) error {
	metrics.EventsIngestedTotal.WithLabelValues(kind, metrics.Result(err)).Inc()
	if err != nil {
		s.log.Warn("tracking write failed", "kind", kind, "error", err)
		return fmt.Errorf("recording %s: %w", kind, err)
	}
	return nil
}

func duration(p *uint32) uint32 {
	if p == nil {
		return 0
	}
	return *p
}

// TrackPageView stores one page view. The path is kept exactly as sent.
func (s *AnalyticsService) TrackPageView(ctx context.Context, info requestdata.Info, in models.TrackPageViewInput) error {
	if err := validateStruct(s.validate, in); err != nil {
		return s.record("page_view", err)
	}
	e := s.enrich(info)
	view := models.PageView{
		ID:              uuid.New(),
		CreatedAt:       s.now().UTC(),
		Path:            in.Path,
		Title:           utils.NonEmpty(in.Title),
		SessionID:       utils.NonEmpty(in.SessionID),
		UserID:          e.userID,
		IPAddress:       e.ip,
		UserAgent:       e.userAgent,
		Referrer:        utils.NonEmpty(in.Referrer),
		UTMSource:       utils.NonEmpty(in.UTMSource),
		UTMMedium:       utils.NonEmpty(in.UTMMedium),
		UTMCampaign:     utils.NonEmpty(in.UTMCampaign),
		Country:         e.country,
		Device:          e.device,
		Browser:         e.browser,
		OS:              e.os,
		DurationSeconds: duration(in.DurationSeconds),
		Locale:          utils.NonEmpty(in.Locale),
	}
	return s.record("page_view", s.repo.InsertPageViews(ctx, []models.PageView{view}))
}

func (s *AnalyticsService) TrackProductView(ctx context.Context, info requestdata.Info, in models.TrackProductViewInput) error {
	if err := validateStruct(s.validate, in); err != nil {
		return s.record("product_view", err)
	}
	e := s.enrich(info)
	view := models.ProductView{
		ID:               uuid.New(),
		CreatedAt:        s.now().UTC(),
		ProductID:        in.ProductID,
		ProductVariantID: utils.NonEmpty(in.ProductVariantID),
		SessionID:        utils.NonEmpty(in.SessionID),
		UserID:           e.userID,
		IPAddress:        e.ip,
		UserAgent:        e.userAgent,
		Referrer:         utils.NonEmpty(in.Referrer),
		Country:          e.country,
		City:             e.city,
		Device:           e.device,
		Browser:          e.browser,
		OS:               e.os,
		DurationSeconds:  duration(in.DurationSeconds),
		Locale:           utils.NonEmpty(in.Locale),
	}
	return s.record("product_view", s.repo.InsertProductViews(ctx, []models.ProductView{view}))
}

// NormalizeCategory folds unknown or missing categories into "custom".
func NormalizeCategory(raw *string) models.EventCategory {
	if raw == nil {
		return models.CategoryCustom
	}
	c := models.EventCategory(strings.ToLower(strings.TrimSpace(*raw)))
	if !c.IsValid() {
		return models.CategoryCustom
	}
	return c
}

func (s *AnalyticsService) TrackEvent(ctx context.Context, info requestdata.Info, in models.TrackEventInput) error {
	if err := validateStruct(s.validate, in); err != nil {
		return s.record("event", err)
	}
	e := s.enrich(info)
	event := models.CustomEvent{
		ID:         uuid.New(),
		CreatedAt:  s.now().UTC(),
		EventName:  in.EventName,
		Category:   NormalizeCategory(in.Category),
		Label:      utils.NonEmpty(in.Label),
		Properties: in.Properties,
		SessionID:  utils.NonEmpty(in.SessionID),
		UserID:     e.userID,
		ProductID:  utils.NonEmpty(in.ProductID),
		OrderID:    utils.NonEmpty(in.OrderID),
		Path:       utils.NonEmpty(in.Path),
		IPAddress:  e.ip,
		UserAgent:  e.userAgent,
		Locale:     utils.NonEmpty(in.Locale),
	}
	if in.Value != nil {
		v := decimal.NewFromFloat(*in.Value).Round(2)
		event.Value = &v
	}
	return s.record("event", s.repo.InsertCustomEvents(ctx, []models.CustomEvent{event}))
}

// RejectEvent records an event the caller could not decode, so it counts as a
// failed write like any other invalid event.
func (s *AnalyticsService) RejectEvent(eventName string, cause error) error {
	return s.record("event", invalid("event %q: %v", eventName, cause))
}

func checkRange(dr *models.DateRange) error {
	if dr != nil && dr.End.Before(dr.Start) {
		return invalid("dateRange end %s is before start %s", dr.End.Format(time.RFC3339), dr.Start.Format(time.RFC3339))
	}
	return nil
}

func checkLimit(limit int) error {
	if limit < 1 || limit > MaxTopLimit {
		return invalid("limit must be between 1 and %d", MaxTopLimit)
	}
	return nil
}

func (s *AnalyticsService) GetProductViewCount(ctx context.Context, productID string, dr *models.DateRange) (int, error) {
	if err := checkRange(dr); err != nil {
		return 0, err
	}
	return s.repo.CountViewsOfProduct(ctx, productID, dr)
}

func (s *AnalyticsService) GetTopProducts(ctx context.Context, limit int, dr *models.DateRange) ([]models.ProductViewStats, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := checkRange(dr); err != nil {
		return nil, err
	}
	return s.repo.TopProducts(ctx, limit, dr)
}

func (s *AnalyticsService) GetTopPages(ctx context.Context, limit int, dr *models.DateRange) ([]models.PageViewStats, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := checkRange(dr); err != nil {
		return nil, err
	}
	return s.repo.TopPages(ctx, limit, dr)
}

func (s *AnalyticsService) GetEventCounts(ctx context.Context, dr *models.DateRange) (map[string]int, error) {
	if err := checkRange(dr); err != nil {
		return nil, err
	}
	return s.repo.EventCounts(ctx, dr)
}

func (s *AnalyticsService) GetUniqueVisitors(ctx context.Context, dr *models.DateRange) (int, error) {
	if err := checkRange(dr); err != nil {
		return 0, err
	}
	return s.repo.UniqueVisitors(ctx, dr)
}

// GetSummary runs the six summary queries concurrently over the same range.
// Any failure fails the whole summary.
func (s *AnalyticsService) GetSummary(ctx context.Context, dr *models.DateRange) (*models.AnalyticsSummary, error) {
	if err := checkRange(dr); err != nil {
		return nil, err
	}

	var summary models.AnalyticsSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalPageViews, err = s.repo.CountPageViews(gctx, dr)
		return err
	})
	g.Go(func() (err error) {
		summary.UniqueVisitors, err = s.repo.UniqueVisitors(gctx, dr)
		return err
	})
	g.Go(func() (err error) {
		summary.TotalProductViews, err = s.repo.CountProductViews(gctx, dr)
		return err
	})
	g.Go(func() (err error) {
		summary.TopProducts, err = s.repo.TopProducts(gctx, DefaultTopLimit, dr)
		return err
	})
	g.Go(func() (err error) {
		summary.TopPages, err = s.repo.TopPages(gctx, DefaultTopLimit, dr)
		return err
	})
	g.Go(func() (err error) {
		summary.EventCounts, err = s.repo.EventCounts(gctx, dr)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building analytics summary: %w", err)
	}

	if summary.TopProducts == nil {
		summary.TopProducts = []models.ProductViewStats{}
	}
	if summary.TopPages == nil {
		summary.TopPages = []models.PageViewStats{}
	}
	if summary.EventCounts == nil {
		summary.EventCounts = map[string]int{}
	}
	return &summary, nil
}

// GetDailyStats merges per-day page and product view counts since the start
// of the UTC day `days` days ago. Days with no records are omitted and
// UniqueVisitors is always 0.
func (s *AnalyticsService) GetDailyStats(ctx context.Context, days int) ([]models.DailyStats, error) {
	if days < 0 || days > MaxDailyDays {
		return nil, invalid("days must be between 0 and %d", MaxDailyDays)
	}
	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)

	var pageDays, productDays []models.DailyCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pageDays, err = s.repo.DailyPageViews(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		productDays, err = s.repo.DailyProductViews(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building daily stats: %w", err)
	}

	return mergeDaily(pageDays, productDays), nil
}

func mergeDaily(pageDays, productDays []models.DailyCount) []models.DailyStats {
	byDate := make(map[string]*models.DailyStats)
	entry := func(t time.Time) *models.DailyStats {
		key := t.UTC().Format("2006-01-02")
		if st, ok := byDate[key]; ok {
			return st
		}
		st := &models.DailyStats{Date: key}
		byDate[key] = st
		return st
	}
	for _, d := range pageDays {
		entry(d.Date).PageViews += d.Count
	}
	for _, d := range productDays {
		entry(d.Date).ProductViews += d.Count
	}

	stats := make([]models.DailyStats, 0, len(byDate))
	for _, st := range byDate {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

func (s *AnalyticsService) GetEventTimeline(ctx context.Context, interval, eventName string, dr *models.DateRange) ([]models.EventTimelinePoint, error) {
	if !utils.IsValidInterval(interval) {
		return nil, invalid("invalid interval %q, expected Minute, Hour, Day, Week, Month, Quarter or Year", interval)
	}
	if err := checkRange(dr); err != nil {
		return nil, err
	}
	points, err := s.repo.EventTimeline(ctx, interval, eventName, dr)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.EventTimelinePoint{}
	}
	return points, nil
}

func (s *AnalyticsService) GetAveragePageDuration(ctx context.Context, dr *models.DateRange) (float64, error) {
	if err := checkRange(dr); err != nil {
		return 0, err
	}
	return s.repo.AveragePageDuration(ctx, dr)
}
