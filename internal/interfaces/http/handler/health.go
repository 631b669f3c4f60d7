package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service readiness. The endpoint is public and
// registered at the engine root, outside the versioned API.
type HealthHandler struct {
	db               *gorm.DB
	jwtSecretPresent bool
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, jwtSecretPresent bool) *HealthHandler {
	return &HealthHandler{
		db:               db,
		jwtSecretPresent: jwtSecretPresent,
	}
}

// Register registers the health route on the engine
func (h *HealthHandler) Register(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health returns the service status and its dependency checks.
// A degraded dependency turns the overall status to 503.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	database := "up"
	if err := h.pingDatabase(c); err != nil {
		database = "down"
		healthy = false
	}
	checks["database"] = database

	authSecret := "configured"
	if !h.jwtSecretPresent {
		authSecret = "missing"
		healthy = false
	}
	checks["auth_secret"] = authSecret

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}

func (h *HealthHandler) pingDatabase(c *gin.Context) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
