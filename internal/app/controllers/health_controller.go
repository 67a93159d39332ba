package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/curricula/internal/app/models/dto"
)

// Pinger reports whether a backing service is reachable
type Pinger func(ctx context.Context) error

// HealthController reports the state of the API and its dependencies
type HealthController struct {
	checks map[string]Pinger
	logger zerolog.Logger
}

// NewHealthController creates a health controller over the named checks
func NewHealthController(checks map[string]Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{checks: checks, logger: logger}
}

// Health checks every dependency
// @Summary Health check
// @Description Pings the database and, when configured, redis
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "All dependencies reachable"
// @Failure 503 {object} dto.HealthResponse "At least one dependency is down"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{Status: "ok", Services: make(map[string]string, len(names))}
	for _, name := range names {
		if err := c.checks[name](checkCtx); err != nil {
			c.logger.Warn().Err(err).Str("service", name).Msg("Health check failed")
			resp.Services[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}
