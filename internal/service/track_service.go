package service

import (
	"fmt"
	"io"
	"log"

	"github.com/strokeside/rowing-analysis-go/internal/ingest"
	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/repository"
)

// TrackService handles track ingestion and retrieval
type TrackService struct {
	repo *repository.TrackRepository
}

// NewTrackService creates a new track service
func NewTrackService(repo *repository.TrackRepository) *TrackService {
	return &TrackService{repo: repo}
}

// ImportGPX parses a GPX stream into a validated track table and stores it.
// fallbackName is used when the file carries no track name.
func (s *TrackService) ImportGPX(r io.Reader, fallbackName string) (*models.TrackMeta, error) {
	track, name, err := ingest.ParseGPX(r)
	if err != nil {
		return nil, fmt.Errorf("failed to import GPX: %w", err)
	}
	if name == "" {
		name = fallbackName
	}

	id, err := s.repo.InsertTrack(models.TrackMeta{Name: name, Source: "gpx"}, track)
	if err != nil {
		return nil, fmt.Errorf("failed to store track: %w", err)
	}
	log.Printf("[TrackService] Imported %q: %d points, %.2f km",
		name, len(track), track.TotalDistanceKm())

	return s.repo.GetTrackByID(id)
}

// ListTracks retrieves track summaries with filtering and pagination.
func (s *TrackService) ListTracks(filter models.TrackFilter) ([]models.TrackMeta, int64, error) {
	return s.repo.ListTracks(filter)
}

// GetTrackByID retrieves a single track summary, nil when absent.
func (s *TrackService) GetTrackByID(id int64) (*models.TrackMeta, error) {
	return s.repo.GetTrackByID(id)
}

// GetTrackPoints loads a track's full point sequence.
func (s *TrackService) GetTrackPoints(id int64) (models.Track, error) {
	return s.repo.GetTrackPoints(id)
}

// DeleteTrack removes a track and its stored results.
func (s *TrackService) DeleteTrack(id int64) (bool, error) {
	return s.repo.DeleteTrack(id)
}
