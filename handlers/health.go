package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carsawa/site/cache"
	"github.com/carsawa/site/config"
)

type healthReport struct {
	Status     string       `json:"status"`
	DataSource string       `json:"dataSource"`
	Source     string       `json:"source"`
	Sessions   int          `json:"sessions"`
	Cache      *cache.Stats `json:"cache,omitempty"`
}

// cacheReporter is implemented by sources that keep a response cache.
type cacheReporter interface {
	CacheStats() *cache.Stats
}

// HandleHealth returns the health status of the application
func HandleHealth(c *fiber.Ctx) error {
	report := healthReport{
		Status:     "ok",
		DataSource: config.DataSource,
		Source:     "up",
		Sessions:   sessions.Len(),
	}
	if r, ok := source.(cacheReporter); ok {
		report.Cache = r.CacheStats()
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()
	if err := source.Ping(ctx); err != nil {
		hlog().Warn("health check failed", zap.Error(err))
		report.Status = "unhealthy"
		report.Source = "down"
		c.Status(fiber.StatusServiceUnavailable)
	}

	return c.JSON(report)
}
