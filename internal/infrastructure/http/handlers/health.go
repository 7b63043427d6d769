// Package handlers holds the unversioned operational endpoints that sit
// outside the /v1 API: liveness and readiness probes.
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

// Liveness answers GET /health with a bare 200. It only says the process
// is up; dependency state is the readiness probe's job.
func Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler answers GET /health/ready. The server is ready only
// when the account store answers a ping; a dead throttle store also marks
// it degraded, even though logins fail open, so operators see the outage.
type ReadinessHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{db: db, rdb: rdb}
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]probeResult `json:"checks"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := map[string]probeResult{
		"account_store":  probe(h.db.Client().Ping(ctx, nil)),
		"throttle_store": probe(h.rdb.Ping(ctx).Err()),
	}

	status, code := "ok", http.StatusOK
	for _, res := range checks {
		if res.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Checks: checks})
}

func probe(err error) probeResult {
	if err != nil {
		return probeResult{Status: "unhealthy", Error: err.Error()}
	}
	return probeResult{Status: "ok"}
}
