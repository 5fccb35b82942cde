package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"showcase/api/models"
	"showcase/api/services"
)

type dateRangeInput struct {
	Start DateTime
	End   DateTime
}

func (d *dateRangeInput) toModel() *models.DateRange {
	if d == nil {
		return nil
	}
	return &models.DateRange{Start: d.Start.Time, End: d.End.Time}
}

type productViewStatsResolver struct{ s models.ProductViewStats }

func (r *productViewStatsResolver) ProductID() graphql.ID { return graphql.ID(r.s.ProductID) }
func (r *productViewStatsResolver) Views() int32 { return int32(r.s.Views) }

type pageViewStatsResolver struct{ s models.PageViewStats }

func (r *pageViewStatsResolver) Path() string { return r.s.Path }
func (r *pageViewStatsResolver) Views() int32 { return int32(r.s.Views) }

type dailyStatsResolver struct{ s models.DailyStats }

func (r *dailyStatsResolver) Date() string { return r.s.Date }
func (r *dailyStatsResolver) PageViews() int32 { return int32(r.s.PageViews) }
func (r *dailyStatsResolver) ProductViews() int32 { return int32(r.s.ProductViews) }
func (r *dailyStatsResolver) UniqueVisitors() int32 { return int32(r.s.UniqueVisitors) }

type timelinePointResolver struct{ p models.EventTimelinePoint }

func (r *timelinePointResolver) Time() DateTime { return newDateTime(r.p.Time) }
func (r *timelinePointResolver) EventName() *string { return r.p.EventName }
func (r *timelinePointResolver) Count() int32 { return int32(r.p.Count) }

type summaryResolver struct{ s *models.AnalyticsSummary }

func (r *summaryResolver) TotalPageViews() int32 { return int32(r.s.TotalPageViews) }
func (r *summaryResolver) UniqueVisitors() int32 { return int32(r.s.UniqueVisitors) }
func (r *summaryResolver) TotalProductViews() int32 { return int32(r.s.TotalProductViews) }
func (r *summaryResolver) EventCounts() JSON { return JSON{Value: r.s.EventCounts} }

func (r *summaryResolver) TopProducts() []*productViewStatsResolver {
	return productStats(r.s.TopProducts)
}

func (r *summaryResolver) TopPages() []*pageViewStatsResolver {
	return pageStats(r.s.TopPages)
}

func productStats(stats []models.ProductViewStats) []*productViewStatsResolver {
	out := make([]*productViewStatsResolver, len(stats))
	for i, s := range stats {
		out[i] = &productViewStatsResolver{s}
	}
	return out
}

func pageStats(stats []models.PageViewStats) []*pageViewStatsResolver {
	out := make([]*pageViewStatsResolver, len(stats))
	for i, s := range stats {
		out[i] = &pageViewStatsResolver{s}
	}
	return out
}

type dateRangeArgs struct {
	DateRange *dateRangeInput
}

func limitOrDefault(limit *int32) int {
	if limit == nil {
		return services.DefaultTopLimit
	}
	return int(*limit)
}

func (r *AdminResolver) AnalyticsSummary(ctx context.Context, args dateRangeArgs) (*summaryResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	s, err := r.Analytics.GetSummary(ctx, args.DateRange.toModel())
	if err != nil {
		return nil, r.publicError("analyticsSummary", err)
	}
	return &summaryResolver{s}, nil
}

func (r *AdminResolver) ProductViewCount(ctx context.Context, args struct {
	ProductID graphql.ID
	DateRange *dateRangeInput
}) (int32, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return 0, err
	}
	n, err := r.Analytics.GetProductViewCount(ctx, string(args.ProductID), args.DateRange.toModel())
	if err != nil {
		return 0, r.publicError("productViewCount", err)
	}
	return int32(n), nil
}

func (r *AdminResolver) TopProducts(ctx context.Context, args struct {
	Limit     *int32
	DateRange *dateRangeInput
}) ([]*productViewStatsResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	stats, err := r.Analytics.GetTopProducts(ctx, limitOrDefault(args.Limit), args.DateRange.toModel())
	if err != nil {
		return nil, r.publicError("topProducts", err)
	}
	return productStats(stats), nil
}

func (r *AdminResolver) TopPages(ctx context.Context, args struct {
	Limit     *int32
	DateRange *dateRangeInput
}) ([]*pageViewStatsResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	stats, err := r.Analytics.GetTopPages(ctx, limitOrDefault(args.Limit), args.DateRange.toModel())
	if err != nil {
		return nil, r.publicError("topPages", err)
	}
	return pageStats(stats), nil
}

func (r *AdminResolver) EventCounts(ctx context.Context, args dateRangeArgs) (JSON, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return JSON{}, err
	}
	counts, err := r.Analytics.GetEventCounts(ctx, args.DateRange.toModel())
	if err != nil {
		return JSON{}, r.publicError("eventCounts", err)
	}
	return JSON{Value: counts}, nil
}

func (r *AdminResolver) UniqueVisitors(ctx context.Context, args dateRangeArgs) (int32, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return 0, err
	}
	n, err := r.Analytics.GetUniqueVisitors(ctx, args.DateRange.toModel())
	if err != nil {
		return 0, r.publicError("uniqueVisitors", err)
	}
	return int32(n), nil
}

func (r *AdminResolver) DailyStats(ctx context.Context, args struct{ Days *int32 }) ([]*dailyStatsResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	days := services.DefaultDailyDays
	if args.Days != nil {
		days = int(*args.Days)
	}
	stats, err := r.Analytics.GetDailyStats(ctx, days)
	if err != nil {
		return nil, r.publicError("dailyStats", err)
	}
	out := make([]*dailyStatsResolver, len(stats))
	for i, s := range stats {
		out[i] = &dailyStatsResolver{s}
	}
	return out, nil
}

func (r *AdminResolver) EventTimeline(ctx context.Context, args struct {
	Interval  string
	EventName *string
	DateRange *dateRangeInput
}) ([]*timelinePointResolver, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return nil, err
	}
	var eventName string
	if args.EventName != nil {
		eventName = *args.EventName
	}
	points, err := r.Analytics.GetEventTimeline(ctx, args.Interval, eventName, args.DateRange.toModel())
	if err != nil {
		return nil, r.publicError("eventTimeline", err)
	}
	out := make([]*timelinePointResolver, len(points))
	for i, p := range points {
		out[i] = &timelinePointResolver{p}
	}
	return out, nil
}

func (r *AdminResolver) AveragePageDuration(ctx context.Context, args dateRangeArgs) (float64, error) {
	if err := authorize(ctx, models.ReadCatalog); err != nil {
		return 0, err
	}
	avg, err := r.Analytics.GetAveragePageDuration(ctx, args.DateRange.toModel())
	if err != nil {
		return 0, r.publicError("averagePageDuration", err)
	}
	return avg, nil
}
