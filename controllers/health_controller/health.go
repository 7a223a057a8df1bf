package health_controller

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

const checkTimeout = 3 * time.Second

// Check pings one dependency.
type Check func(ctx context.Context) error

// Controller reports liveness and the state of the configured backends.
type Controller struct {
	checks map[string]Check
	log    *zap.Logger
}

// New takes the named dependency checks to run; an empty map only reports liveness.
func New(checks map[string]Check, log *zap.Logger) *Controller {
	return &Controller{checks: checks, log: log}
}

// Health godoc
// @Summary Health check
// @Description Liveness plus a ping of every configured backend
// @Tags health
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /healthz [get]
func (ctl *Controller) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	var mu sync.Mutex
	status := make(map[string]string, len(ctl.checks))
	healthy := true

	var g errgroup.Group
	for name, check := range ctl.checks {
		g.Go(func() error {
			err := check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ctl.log.Warn("⚠️ health check failed", zap.String("check", name), zap.Error(err))
				status[name] = "down"
				healthy = false
				return nil
			}
			status[name] = "up"
			return nil
		})
	}
	_ = g.Wait()

	if !healthy {
		resp := models.ErrorResponse(c, "Service degraded")
		resp.Data = status
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "OK", status))
}
