package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
)

// TestCaseHandler 测试案例处理器
type TestCaseHandler struct {
	svc *service.TestCaseService
}

// NewTestCaseHandler 创建测试案例处理器
func NewTestCaseHandler(svc *service.TestCaseService) *TestCaseHandler {
	return &TestCaseHandler{svc: svc}
}

// GetByFeatureID GET /testcases/by-feature-id/:feature_id
func (h *TestCaseHandler) GetByFeatureID(c *gin.Context) {
	featureID := c.Param("feature_id")

	testcases, err := h.svc.GetByFeatureID(c.Request.Context(), featureID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Test cases not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, testcases)
}
