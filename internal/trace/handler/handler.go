package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
	"gorm.io/gorm"
)

// Handlers 处理器集合
type Handlers struct {
	CFTS     *CFTSHandler
	SYS2     *SYS2Handler
	TestCase *TestCaseHandler
	Health   *HealthHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, db *gorm.DB) *Handlers {
	return &Handlers{
		CFTS:     NewCFTSHandler(svc.CFTS),
		SYS2:     NewSYS2Handler(svc.SYS2),
		TestCase: NewTestCaseHandler(svc.TestCase),
		Health:   NewHealthHandler(db),
	}
}

// 错误响应统一用 {"detail": "..."}，与既有前端约定一致

// BadRequest 400 响应
func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

// NotFound 404 响应
func NotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detail})
}

// InternalError 500 响应
func InternalError(c *gin.Context, detail string) {
	c.JSON(http.StatusInternalServerError, gin.H{"detail": detail})
}
