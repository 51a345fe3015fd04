package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strokeside/rowing-analysis-go/internal/service"
	"github.com/strokeside/rowing-analysis-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for track analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/tracks/:id/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	var opts service.AnalysisOptions
	if err := c.ShouldBindJSON(&opts); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "Invalid analysis options", err)
		return
	}

	result, err := h.analysisService.Analyze(id, opts)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Analysis failed", err)
		return
	}

	response.Success(c, result)
}

type batchRequest struct {
	TrackIDs []int64                 `json:"trackIds" binding:"required"`
	Options  service.AnalysisOptions `json:"options"`
}

// AnalyzeBatch handles POST /api/v1/analyses/batch
func (h *AnalysisHandler) AnalyzeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid batch request", err)
		return
	}

	results, errs := h.analysisService.AnalyzeBatch(c.Request.Context(), req.TrackIDs, req.Options)

	failures := make(map[int64]string, len(errs))
	for id, err := range errs {
		failures[id] = err.Error()
	}

	response.Success(c, gin.H{
		"results":  results,
		"failures": failures,
	})
}

// GetCrossings handles GET /api/v1/tracks/:id/crossings
func (h *AnalysisHandler) GetCrossings(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	crossings, err := h.analysisService.Crossings(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load crossings", err)
		return
	}

	response.Success(c, gin.H{
		"data":  crossings,
		"count": len(crossings),
	})
}

// GetSplits handles GET /api/v1/tracks/:id/splits
func (h *AnalysisHandler) GetSplits(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	splits, err := h.analysisService.Splits(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load splits", err)
		return
	}

	response.Success(c, gin.H{
		"data":  splits,
		"count": len(splits),
	})
}

// GetFrontier handles GET /api/v1/tracks/:id/frontier
func (h *AnalysisHandler) GetFrontier(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	frontier, err := h.analysisService.Frontier(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Failed to compute frontier", err)
		return
	}

	response.Success(c, gin.H{
		"data":  frontier,
		"count": len(frontier),
	})
}

// GetTimings handles GET /api/v1/tracks/:id/timings
func (h *AnalysisHandler) GetTimings(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	cells, err := h.analysisService.TimingCells(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load gate timings", err)
		return
	}

	response.Success(c, gin.H{
		"data":  cells,
		"count": len(cells),
	})
}
