package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/service"
	"github.com/strokeside/rowing-analysis-go/pkg/response"
)

// GateHandler handles HTTP requests for the gate reference tables
type GateHandler struct {
	gateService *service.GateService
}

// NewGateHandler creates a new gate handler
func NewGateHandler(gateService *service.GateService) *GateHandler {
	return &GateHandler{gateService: gateService}
}

// ListGates handles GET /api/v1/gates
func (h *GateHandler) ListGates(c *gin.Context) {
	gates, err := h.gateService.ListGates(c.Query("course"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list gates", err)
		return
	}

	response.Success(c, gin.H{
		"data":  gates,
		"count": len(gates),
	})
}

// ListCourses handles GET /api/v1/gates/courses
func (h *GateHandler) ListCourses(c *gin.Context) {
	courses, err := h.gateService.Courses()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list courses", err)
		return
	}

	response.Success(c, gin.H{
		"data":  courses,
		"count": len(courses),
	})
}

// Reload handles POST /api/v1/gates/reload
func (h *GateHandler) Reload(c *gin.Context) {
	count, err := h.gateService.Reload()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to reload gates", err)
		return
	}

	response.Success(c, gin.H{"loaded": count})
}

type suggestBearingRequest struct {
	TrackID     int64   `json:"trackId" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	ToleranceKm float64 `json:"toleranceKm"`
}

// SuggestBearing handles POST /api/v1/gates/suggest-bearing
func (h *GateHandler) SuggestBearing(c *gin.Context) {
	var req suggestBearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if req.ToleranceKm <= 0 {
		req.ToleranceKm = 0.1
	}

	p := models.Position{Latitude: req.Latitude, Longitude: req.Longitude}
	bearing, err := h.gateService.SuggestBearing(req.TrackID, p, req.ToleranceKm)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Failed to estimate bearing", err)
		return
	}

	response.Success(c, gin.H{"bearingDeg": bearing})
}
