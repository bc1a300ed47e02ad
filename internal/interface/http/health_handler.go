package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-jobboard-api/pkg/response"
)

const checkTimeout = 2 * time.Second

// Check probes one backing service.
type Check = func(ctx context.Context) error

type HealthHandler struct {
	Base
	Env     string
	Started time.Time
	Checks  map[string]Check
}

func NewHealthHandler(env string, checks map[string]Check, base Base) *HealthHandler {
	return &HealthHandler{Base: base, Env: env, Started: time.Now(), Checks: checks}
}

// Status reports uptime and the state of each configured dependency. Any
// failing dependency turns the answer into 503.
func (h *HealthHandler) Status(c *gin.Context) {
	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := h.Checks[name](ctx)
		cancel()
		if err != nil {
			healthy = false
			deps[name] = "down"
			if h.Logger != nil {
				h.Logger.WithField("dependency", name).WithError(err).Warn("health check failed")
			}
			continue
		}
		deps[name] = "up"
	}

	status, code, msg := "ok", http.StatusOK, "server is running"
	if !healthy {
		status, code, msg = "degraded", http.StatusServiceUnavailable, "some dependencies are unavailable"
	}
	response.Success(c, code, gin.H{
		"status":       status,
		"environment":  h.Env,
		"uptime":       time.Since(h.Started).Round(time.Second).String(),
		"dependencies": deps,
	}, msg, nil)
}
