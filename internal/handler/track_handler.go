package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/service"
	"github.com/strokeside/rowing-analysis-go/pkg/response"
)

// TrackHandler handles HTTP requests for stored tracks
type TrackHandler struct {
	trackService *service.TrackService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// Upload handles POST /api/v1/tracks. It accepts a multipart GPX file under
// the "file" field.
func (h *TrackHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing GPX file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to open upload", err)
		return
	}
	defer file.Close()

	fallbackName := strings.TrimSuffix(fileHeader.Filename, ".gpx")
	meta, err := h.trackService.ImportGPX(file, fallbackName)
	if err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Failed to import track", err)
		return
	}

	response.Success(c, meta)
}

// ListTracks handles GET /api/v1/tracks
func (h *TrackHandler) ListTracks(c *gin.Context) {
	var filter models.TrackFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	tracks, total, err := h.trackService.ListTracks(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list tracks", err)
		return
	}

	response.Success(c, gin.H{
		"data":  tracks,
		"total": total,
	})
}

// GetTrack handles GET /api/v1/tracks/:id
func (h *TrackHandler) GetTrack(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	meta, err := h.trackService.GetTrackByID(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load track", err)
		return
	}
	if meta == nil {
		response.Error(c, http.StatusNotFound, "Track not found", nil)
		return
	}

	response.Success(c, meta)
}

// GetTrackPoints handles GET /api/v1/tracks/:id/points
func (h *TrackHandler) GetTrackPoints(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	points, err := h.trackService.GetTrackPoints(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load track points", err)
		return
	}
	if len(points) == 0 {
		response.Error(c, http.StatusNotFound, "Track not found", nil)
		return
	}

	response.Success(c, gin.H{
		"data":  points,
		"count": len(points),
	})
}

// DeleteTrack handles DELETE /api/v1/tracks/:id
func (h *TrackHandler) DeleteTrack(c *gin.Context) {
	id, ok := trackID(c)
	if !ok {
		return
	}

	deleted, err := h.trackService.DeleteTrack(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete track", err)
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "Track not found", nil)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// trackID parses the :id path parameter, writing the error response itself.
func trackID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid track ID", err)
		return 0, false
	}
	return id, true
}
