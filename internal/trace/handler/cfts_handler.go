package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
)

// CFTSHandler CFTS 需求处理器，同时承担 /req 下的 Req.ID 路由
type CFTSHandler struct {
	svc *service.CFTSService
}

// NewCFTSHandler 创建 CFTS 需求处理器
func NewCFTSHandler(svc *service.CFTSService) *CFTSHandler {
	return &CFTSHandler{svc: svc}
}

// Search GET /cfts/search?cfts_id=
func (h *CFTSHandler) Search(c *gin.Context) {
	cftsID := c.Query("cfts_id")
	if cftsID == "" {
		BadRequest(c, "cfts_id is required")
		return
	}

	result, err := h.svc.SearchByCFTSID(c.Request.Context(), cftsID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "CFTS not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchByReqID GET /req/search?req_id=
func (h *CFTSHandler) SearchByReqID(c *gin.Context) {
	reqID := c.Query("req_id")
	if reqID == "" {
		BadRequest(c, "req_id is required")
		return
	}

	result, err := h.svc.SearchByReqID(c.Request.Context(), reqID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Requirement not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRequirement GET /cfts/requirement/:req_id
func (h *CFTSHandler) GetRequirement(c *gin.Context) {
	reqID := c.Param("req_id")

	requirement, err := h.svc.GetRequirement(c.Request.Context(), reqID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Requirement not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, requirement)
}

// List GET /cfts/?skip=&limit=
func (h *CFTSHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 100
	}

	requirements, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, requirements)
}

// AutocompleteCFTSIDs GET /cfts/autocomplete/cfts-ids
func (h *CFTSHandler) AutocompleteCFTSIDs(c *gin.Context) {
	ids, err := h.svc.AutocompleteCFTSIDs(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, ids)
}

// AutocompleteReqIDs GET /req/autocomplete/req-ids?query=
func (h *CFTSHandler) AutocompleteReqIDs(c *gin.Context) {
	ids, err := h.svc.AutocompleteReqIDs(c.Request.Context(), c.Query("query"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, ids)
}
