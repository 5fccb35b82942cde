package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/requestdata"
)

const (
	maxBatchSize = 50
	trackTimeout = 15 * time.Second
)

var errMissingPayload = errors.New("record payload does not match its type")

// Tracker is the ingestion side of the analytics service.
type Tracker interface {
	TrackPageView(ctx context.Context, info requestdata.Info, in models.TrackPageViewInput) error
	TrackProductView(ctx context.Context, info requestdata.Info, in models.TrackProductViewInput) error
	TrackEvent(ctx context.Context, info requestdata.Info, in models.TrackEventInput) error
}

// beaconRecord is one entry of a batch. Exactly the payload matching Type is
// read.
type beaconRecord struct {
	Type        string                        `json:"type" binding:"required,oneof=page_view product_view event"`
	PageView    *models.TrackPageViewInput    `json:"pageView"`
	ProductView *models.TrackProductViewInput `json:"productView"`
	Event       *models.TrackEventInput       `json:"event"`
}

type TrackHandlers struct {
	tracker Tracker
	log     *logger.Logger
}

func NewTrackHandlers(tracker Tracker, log *logger.Logger) *TrackHandlers {
	return &TrackHandlers{tracker: tracker, log: log.With("component", "beacon")}
}

// TrackBatch ingests a JSON array of tracking records, as sent by
// navigator.sendBeacon when a page unloads. Each record is written on its
// own; failures are counted, never returned as an error status.
func (h *TrackHandlers) TrackBatch(c *gin.Context) {
	var records []beaconRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if len(records) > maxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Too many records in one batch"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), trackTimeout)
	defer cancel()
	info := requestdata.FromContext(ctx)

	accepted, rejected := 0, 0
	for _, rec := range records {
		if err := h.track(ctx, info, rec); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	if rejected > 0 {
		h.log.Warn("beacon records rejected", "accepted", accepted, "rejected", rejected)
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted, "rejected": rejected})
}

func (h *TrackHandlers) track(ctx context.Context, info requestdata.Info, rec beaconRecord) error {
	switch {
	case rec.Type == "page_view" && rec.PageView != nil:
		return h.tracker.TrackPageView(ctx, info, *rec.PageView)
	case rec.Type == "product_view" && rec.ProductView != nil:
		return h.tracker.TrackProductView(ctx, info, *rec.ProductView)
	case rec.Type == "event" && rec.Event != nil:
		return h.tracker.TrackEvent(ctx, info, *rec.Event)
	default:
		return errMissingPayload
	}
}
