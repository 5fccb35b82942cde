package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency whose reachability is part of the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 3 * time.Second

// Health pings every dependency concurrently and answers 503 when any fails.
func Health(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		results := make(map[string]string, len(deps))
		names := make([]string, 0, len(deps))
		for name := range deps {
			names = append(names, name)
		}
		statuses := make([]error, len(names))

		var g errgroup.Group
		for i, name := range names {
			g.Go(func() error {
				statuses[i] = deps[name].Ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		healthy := true
		for i, name := range names {
			if statuses[i] != nil {
				healthy = false
				results[name] = "down"
				continue
			}
			results[name] = "up"
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "dependencies": results})
	}
}
