package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/entity"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/repository"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/service"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTraceTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)
	handlers := NewHandlers(services, db)

	router := testutil.SetupRouter()

	router.GET("/", handlers.Health.Root)
	router.GET("/health", handlers.Health.Health)
	router.GET("/readiness", handlers.Health.Readiness)

	cfts := router.Group("/cfts")
	cfts.GET("/", handlers.CFTS.List)
	cfts.GET("/search", handlers.CFTS.Search)
	cfts.GET("/requirement/:req_id", handlers.CFTS.GetRequirement)
	cfts.GET("/autocomplete/cfts-ids", handlers.CFTS.AutocompleteCFTSIDs)

	req := router.Group("/req")
	req.GET("/search", handlers.CFTS.SearchByReqID)
	req.GET("/autocomplete/req-ids", handlers.CFTS.AutocompleteReqIDs)

	sys2 := router.Group("/sys2")
	sys2.GET("/requirement/:melco_id", handlers.SYS2.GetByMelcoID)
	sys2.GET("/search", handlers.SYS2.Search)
	sys2.GET("/availability", handlers.SYS2.Availability)
	sys2.POST("/availability", handlers.SYS2.AvailabilityPost)

	router.GET("/testcases/by-feature-id/:feature_id", handlers.TestCase.GetByFeatureID)

	return router, db
}

func seedCFTS(t *testing.T, db *gorm.DB, reqID, cftsID, cftsName string) {
	t.Helper()
	err := db.Create(&entity.CFTSRequirement{
		ReqID:    reqID,
		CFTSID:   cftsID,
		CFTSName: cftsName,
	}).Error
	require.NoError(t, err)
}

func TestSearchCFTSPrefixMatching(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "R1", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R2", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R3", "CFTS016-1", "")
	seedCFTS(t, db, "R4", "CFTS017", "Door Lock")

	// 不带尾杠：前缀匹配，命中 CFTS016 和 CFTS016-1
	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/search?cfts_id=CFTS016", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result entity.CFTSSearchResult
	testutil.DecodeJSON(t, w, &result)
	assert.Equal(t, "CFTS016", result.CFTSID)
	assert.Equal(t, 3, result.TotalCount)
	assert.Len(t, result.Requirements, 3)
}

func TestSearchCFTSExactMatchWithTrailingDash(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "R1", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R2", "CFTS016-1", "")

	// 带尾杠：精确匹配，没有 cfts_id 恰好是 "CFTS016-" 的记录
	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/search?cfts_id=CFTS016-", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "CFTS not found", body["detail"])
}

func TestSearchCFTSMissingParam(t *testing.T) {
	router, _ := setupTraceTest(t)

	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchByReqIDReturnsWholeGroup(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "R1", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R2", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R9", "CFTS099", "")

	w := testutil.DoRequest(t, router, http.MethodGet, "/req/search?req_id=R1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result entity.CFTSSearchResult
	testutil.DecodeJSON(t, w, &result)
	assert.Equal(t, "CFTS016", result.CFTSID)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, "R1", result.TargetReqID)

	reqIDs := make([]string, 0, len(result.Requirements))
	for _, r := range result.Requirements {
		reqIDs = append(reqIDs, r.ReqID)
	}
	assert.ElementsMatch(t, []string{"R1", "R2"}, reqIDs)
}

func TestSearchByReqIDNotFound(t *testing.T) {
	router, _ := setupTraceTest(t)

	w := testutil.DoRequest(t, router, http.MethodGet, "/req/search?req_id=NOPE", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "Requirement not found", body["detail"])
}

func TestGetRequirementByReqID(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "R1", "CFTS016", "Anti-Theft")

	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/requirement/R1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var requirement entity.CFTSRequirement
	testutil.DecodeJSON(t, w, &requirement)
	assert.Equal(t, "R1", requirement.ReqID)
	assert.Equal(t, "CFTS016", requirement.CFTSID)

	w = testutil.DoRequest(t, router, http.MethodGet, "/cfts/requirement/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCFTSPagination(t *testing.T) {
	router, db := setupTraceTest(t)

	for _, reqID := range []string{"R1", "R2", "R3", "R4", "R5"} {
		seedCFTS(t, db, reqID, "CFTS016", "")
	}

	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/?skip=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var requirements []entity.CFTSRequirement
	testutil.DecodeJSON(t, w, &requirements)
	assert.Len(t, requirements, 2)

	// 空区间不是错误
	w = testutil.DoRequest(t, router, http.MethodGet, "/cfts/?skip=100&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &requirements)
	assert.Empty(t, requirements)
}

func TestAutocompleteCFTSIDs(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "R1", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R2", "CFTS016", "Anti-Theft")
	seedCFTS(t, db, "R3", "CFTS017", "")

	w := testutil.DoRequest(t, router, http.MethodGet, "/cfts/autocomplete/cfts-ids", "")
	require.Equal(t, http.StatusOK, w.Code)

	var ids []string
	testutil.DecodeJSON(t, w, &ids)
	assert.Equal(t, []string{"CFTS016 Anti-Theft", "CFTS017"}, ids)
}

func TestAutocompleteReqIDs(t *testing.T) {
	router, db := setupTraceTest(t)

	seedCFTS(t, db, "PS-100", "CFTS016", "")
	seedCFTS(t, db, "PS-200", "CFTS016", "")
	seedCFTS(t, db, "XX-300", "CFTS017", "")

	w := testutil.DoRequest(t, router, http.MethodGet, "/req/autocomplete/req-ids?query=PS-", "")
	require.Equal(t, http.StatusOK, w.Code)

	var ids []string
	testutil.DecodeJSON(t, w, &ids)
	assert.Equal(t, []string{"PS-100", "PS-200"}, ids)

	// 不带前缀时返回全部（上限 100）
	w = testutil.DoRequest(t, router, http.MethodGet, "/req/autocomplete/req-ids", "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &ids)
	assert.Len(t, ids, 3)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupTraceTest(t)

	w := testutil.DoRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "Welcome to Requirement Test Management API", body["message"])

	w = testutil.DoRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	w = testutil.DoRequest(t, router, http.MethodGet, "/readiness", "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &body)
	assert.Equal(t, "ready", body["status"])
}
