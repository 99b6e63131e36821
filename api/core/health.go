package core

import (
	"net/http"
	"time"

	"github.com/asakaze/photo-vault/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Handle GET /health
func (h *HealthHandler) Handle(c *gin.Context) {
	dbStatus := h.checkDatabase()

	httpStatus := http.StatusOK
	status := "ok"
	if dbStatus != "ok" {
		httpStatus = http.StatusServiceUnavailable
		status = "degraded"
	}

	c.JSON(httpStatus, gin.H{
		"status":  status,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks": gin.H{
			"database": dbStatus,
		},
	})
}

func (h *HealthHandler) checkDatabase() string {
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
