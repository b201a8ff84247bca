package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health. Always 200 while the process runs.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler serves the readiness probe, pinging the
// datastores the service cannot work without.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

// Readiness handles GET /health/ready. Mongo down means 503: the service
// cannot authenticate or audit. Redis down is reported but not fatal, the
// rate limiter fails open.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	deps := map[string]string{"mongo": "ok", "redis": "ok"}
	code := http.StatusOK

	pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Client().Ping(pingCtx, nil); err != nil {
		deps["mongo"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := h.rdb.Ping(pingCtx).Err(); err != nil {
		deps["redis"] = "unavailable"
	}

	return c.JSON(code, deps)
}
