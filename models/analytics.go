package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventCategory classifies a custom analytics event.
type EventCategory string

const (
	CategoryProduct    EventCategory = "product"
	CategoryCart       EventCategory = "cart"
	CategoryCheckout   EventCategory = "checkout"
	CategoryContact    EventCategory = "contact"
	CategoryNavigation EventCategory = "navigation"
	CategoryEngagement EventCategory = "engagement"
	CategoryError      EventCategory = "error"
	CategoryCustom     EventCategory = "custom"
)

var eventCategories = map[EventCategory]struct{}{
	CategoryProduct:    {},
	CategoryCart:       {},
	CategoryCheckout:   {},
	CategoryContact:    {},
	CategoryNavigation: {},
	CategoryEngagement: {},
	CategoryError:      {},
	CategoryCustom:     {},
}

// IsValid reports whether c is one of the known categories.
func (c EventCategory) IsValid() bool {
	_, ok := eventCategories[c]
	return ok
}

// Properties is the free-form key/value bag attached to a custom event.
// Values are limited to what JSON can express.
type Properties map[string]interface{}

// PageView is one recorded storefront page view.
type PageView struct {
	ID              uuid.UUID `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Path            string    `json:"path"`
	Title           *string   `json:"title,omitempty"`
	SessionID       *string   `json:"sessionId,omitempty"`
	UserID          *string   `json:"userId,omitempty"`
	IPAddress       *string   `json:"ipAddress,omitempty"`
	UserAgent       *string   `json:"userAgent,omitempty"`
	Referrer        *string   `json:"referrer,omitempty"`
	UTMSource       *string   `json:"utmSource,omitempty"`
	UTMMedium       *string   `json:"utmMedium,omitempty"`
	UTMCampaign     *string   `json:"utmCampaign,omitempty"`
	Country         *string   `json:"country,omitempty"`
	Device          *string   `json:"device,omitempty"`
	Browser         *string   `json:"browser,omitempty"`
	OS              *string   `json:"os,omitempty"`
	DurationSeconds uint32    `json:"durationSeconds"`
	Locale          *string   `json:"locale,omitempty"`
}

// ProductView is one recorded product detail view.
type ProductView struct {
	ID               uuid.UUID `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	ProductID        string    `json:"productId"`
	ProductVariantID *string   `json:"productVariantId,omitempty"`
	SessionID        *string   `json:"sessionId,omitempty"`
	UserID           *string   `json:"userId,omitempty"`
	IPAddress        *string   `json:"ipAddress,omitempty"`
	UserAgent        *string   `json:"userAgent,omitempty"`
	Referrer         *string   `json:"referrer,omitempty"`
	Country          *string   `json:"country,omitempty"`
	City             *string   `json:"city,omitempty"`
	Device           *string   `json:"device,omitempty"`
	Browser          *string   `json:"browser,omitempty"`
	OS               *string   `json:"os,omitempty"`
	DurationSeconds  uint32    `json:"durationSeconds"`
	Locale           *string   `json:"locale,omitempty"`
}

// CustomEvent is a named storefront event such as "add_to_cart".
type CustomEvent struct {
	ID         uuid.UUID        `json:"id"`
	CreatedAt  time.Time        `json:"createdAt"`
	EventName  string           `json:"eventName"`
	Category   EventCategory    `json:"category"`
	Label      *string          `json:"label,omitempty"`
	Value      *decimal.Decimal `json:"value,omitempty"`
	Properties Properties       `json:"properties,omitempty"`
	SessionID  *string          `json:"sessionId,omitempty"`
	UserID     *string          `json:"userId,omitempty"`
	ProductID  *string          `json:"productId,omitempty"`
	OrderID    *string          `json:"orderId,omitempty"`
	Path       *string          `json:"path,omitempty"`
	IPAddress  *string          `json:"ipAddress,omitempty"`
	UserAgent  *string          `json:"userAgent,omitempty"`
	Locale     *string          `json:"locale,omitempty"`
}

// TrackPageViewInput is the client-supplied part of a page view.
type TrackPageViewInput struct {
	Path            string  `json:"path" validate:"required"`
	Title           *string `json:"title"`
	SessionID       *string `json:"sessionId"`
	Referrer        *string `json:"referrer"`
	UTMSource       *string `json:"utmSource"`
	UTMMedium       *string `json:"utmMedium"`
	UTMCampaign     *string `json:"utmCampaign"`
	DurationSeconds *uint32 `json:"durationSeconds"`
	Locale          *string `json:"locale"`
}

// TrackProductViewInput is the client-supplied part of a product view.
type TrackProductViewInput struct {
	ProductID        string  `json:"productId" validate:"required"`
	ProductVariantID *string `json:"productVariantId"`
	SessionID        *string `json:"sessionId"`
	Referrer         *string `json:"referrer"`
	DurationSeconds  *uint32 `json:"durationSeconds"`
	Locale           *string `json:"locale"`
}

// TrackEventInput is the client-supplied part of a custom event.
type TrackEventInput struct {
	EventName  string     `json:"eventName" validate:"required"`
	Category   *string    `json:"category"`
	Label      *string    `json:"label"`
	Value      *float64   `json:"value"`
	Properties Properties `json:"properties"`
	SessionID  *string    `json:"sessionId"`
	ProductID  *string    `json:"productId"`
	OrderID    *string    `json:"orderId"`
	Path       *string    `json:"path"`
	Locale     *string    `json:"locale"`
}

// DateRange bounds aggregation queries by creation time, both ends inclusive.
// A nil *DateRange means all time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ProductViewStats struct {
	ProductID string `json:"productId"`
	Views     int    `json:"views"`
}

type PageViewStats struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyCount is one row of a per-day grouped count.
type DailyCount struct {
	Date  time.Time
	Count int
}

type DailyStats struct {
	Date           string `json:"date"`
	PageViews      int    `json:"pageViews"`
	ProductViews   int    `json:"productViews"`
	UniqueVisitors int    `json:"uniqueVisitors"`
}

type AnalyticsSummary struct {
	TotalPageViews    int                `json:"totalPageViews"`
	UniqueVisitors    int                `json:"uniqueVisitors"`
	TotalProductViews int                `json:"totalProductViews"`
	TopProducts       []ProductViewStats `json:"topProducts"`
	TopPages          []PageViewStats    `json:"topPages"`
	EventCounts       map[string]int     `json:"eventCounts"`
}

// EventTimelinePoint is the number of custom events in one time bucket.
type EventTimelinePoint struct {
	Time      time.Time `json:"time"`
	EventName *string   `json:"eventName,omitempty"`
	Count     int       `json:"count"`
}
