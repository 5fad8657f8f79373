package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
)

// SYS2Handler SYS.2 要件处理器
type SYS2Handler struct {
	svc *service.SYS2Service
}

// NewSYS2Handler 创建 SYS.2 要件处理器
func NewSYS2Handler(svc *service.SYS2Service) *SYS2Handler {
	return &SYS2Handler{svc: svc}
}

// availabilityRequest POST /sys2/availability 的请求体
type availabilityRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// GetByMelcoID GET /sys2/requirement/:melco_id
func (h *SYS2Handler) GetByMelcoID(c *gin.Context) {
	melcoID := c.Param("melco_id")

	requirements, err := h.svc.GetByMelcoID(c.Request.Context(), melcoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "SYS.2 requirement not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, requirements)
}

// Search GET /sys2/search?cfts_id=&melco_id=&limit=
func (h *SYS2Handler) Search(c *gin.Context) {
	cftsID := c.Query("cfts_id")
	melcoID := c.Query("melco_id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	requirements, err := h.svc.Search(c.Request.Context(), cftsID, melcoID, limit)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, requirements)
}

// Availability GET /sys2/availability?ids=a,b,c
func (h *SYS2Handler) Availability(c *gin.Context) {
	raw := c.Query("ids")
	if strings.TrimSpace(raw) == "" {
		BadRequest(c, "ids is required")
		return
	}

	ids := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	result, err := h.svc.Availability(c.Request.Context(), ids)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// AvailabilityPost POST /sys2/availability，JSON body {ids: [...]}
func (h *SYS2Handler) AvailabilityPost(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Availability(c.Request.Context(), req.IDs)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
