package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/infra"
)

type HealthHandler struct {
	db        *gorm.DB
	rdb       *redis.Client
	gatewayCB *infra.CircuitBreaker
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client, gatewayCB *infra.CircuitBreaker) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, gatewayCB: gatewayCB}
}

// Check reports liveness of the process and its two backing stores, plus the
// payment gateway breaker state. An open breaker does not degrade health;
// the API keeps serving while checkout fast-fails.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	dbStatus := "ok"
	redisStatus := "ok"

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "down"
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "down"
		}
	}
	if dbStatus != "ok" || redisStatus != "ok" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	gateway := "unknown"
	if h.gatewayCB != nil {
		gateway = h.gatewayCB.State().String()
	}

	c.JSON(status, gin.H{
		"status":          overall,
		"db":              dbStatus,
		"redis":           redisStatus,
		"payment_gateway": gateway,
	})
}
