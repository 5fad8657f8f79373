package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler 探活处理器，直接持有 DB 句柄做连通性检查
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler 创建探活处理器
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to Requirement Test Management API",
	})
}

// Health GET /health，检查 API 和数据库连接状态
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.ping(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"message":  "All systems operational",
	})
}

// Readiness GET /readiness，检查服务是否准备好接收请求
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.ping(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) ping(c *gin.Context) error {
	return h.db.WithContext(c.Request.Context()).Exec("SELECT 1").Error
}
