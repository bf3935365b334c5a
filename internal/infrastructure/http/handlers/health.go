// Package handlers holds the unauthenticated operational probes.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler answers the liveness probe: a 200 proves the process is up
// and serving, nothing more.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler answers the readiness probe by pinging each
// backing store. Any failing dependency degrades the whole probe to 503 so
// the orchestrator stops routing traffic here.
type HealthDependenciesHandler struct {
	checks []dependencyCheck
}

type dependencyCheck struct {
	name string
	ping func(context.Context) error
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{checks: []dependencyCheck{
		{name: "mongodb", ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}},
		{name: "redis", ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}},
	}}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := readinessResponse{
		Status:       "ok",
		Dependencies: make(map[string]dependencyStatus, len(h.checks)),
	}
	httpStatus := http.StatusOK

	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			resp.Dependencies[check.name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[check.name] = dependencyStatus{Status: "ok"}
	}

	return c.JSON(httpStatus, resp)
}
