package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strokeside/rowing-analysis-go/internal/report"
	"github.com/strokeside/rowing-analysis-go/internal/service"
	"github.com/strokeside/rowing-analysis-go/pkg/response"
)

// ReportHandler serves CSV exports and chart pages built from stored results
type ReportHandler struct {
	analysisService *service.AnalysisService
	trackService    *service.TrackService
}

// NewReportHandler creates a new report handler
func NewReportHandler(analysisService *service.AnalysisService, trackService *service.TrackService) *ReportHandler {
	return &ReportHandler{analysisService: analysisService, trackService: trackService}
}

// SplitsCSV handles GET /api/v1/tracks/:id/report/splits.csv
func (h *ReportHandler) SplitsCSV(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	splits, err := h.analysisService.Splits(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load splits", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteSplitsCSV(&buf, splits); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build CSV", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=track-%d-splits.csv", id))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// CrossingsCSV handles GET /api/v1/tracks/:id/report/crossings.csv
func (h *ReportHandler) CrossingsCSV(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	crossings, err := h.analysisService.Crossings(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load crossings", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCrossingsCSV(&buf, crossings); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build CSV", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=track-%d-crossings.csv", id))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// FrontierChart handles GET /api/v1/tracks/:id/report/frontier
func (h *ReportHandler) FrontierChart(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	frontier, err := h.analysisService.Frontier(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Failed to compute frontier", err)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderFrontierChart(&buf, h.chartTitle(id, "Efficiency frontier"), frontier); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to render chart", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// SplitsChart handles GET /api/v1/tracks/:id/report/splits
func (h *ReportHandler) SplitsChart(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	splits, err := h.analysisService.Splits(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load splits", err)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderSplitsChart(&buf, h.chartTitle(id, "Best splits"), splits); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to render chart", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) chartTitle(id int64, kind string) string {
	if meta, err := h.trackService.GetTrackByID(id); err == nil && meta != nil && meta.Name != "" {
		return fmt.Sprintf("%s: %s", kind, meta.Name)
	}
	return fmt.Sprintf("%s: track %d", kind, id)
}
