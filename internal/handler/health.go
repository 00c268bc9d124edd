package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/propmgmt/pkg/response"
)

type HealthHandler struct {
	appName string
	backend string
	timeout time.Duration
	db      *sqlx.DB
	redis   *redis.Client
}

// NewHealthHandler checks db and redis when they are configured; either may be nil
func NewHealthHandler(appName, backend string, timeout time.Duration, db *sqlx.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		backend: backend,
		timeout: timeout,
		db:      db,
		redis:   redis,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Backend   string            `json:"backend"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func (h *HealthHandler) status() HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Service:   h.appName,
		Backend:   h.backend,
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.status())
}

// Ready performs readiness check including database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.status()

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			status.Status = "error"
			status.Checks["database"] = "failed: " + err.Error()
		} else {
			status.Checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		redisCtx, redisCancel := context.WithTimeout(r.Context(), h.timeout)
		defer redisCancel()

		if err := h.redis.Ping(redisCtx).Err(); err != nil {
			status.Status = "error"
			status.Checks["redis"] = "failed: " + err.Error()
		} else {
			status.Checks["redis"] = "ok"
		}
	}

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}
