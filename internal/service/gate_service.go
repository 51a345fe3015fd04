package service

import (
	"fmt"
	"log"

	"github.com/strokeside/rowing-analysis-go/internal/gates"
	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/repository"
	"github.com/strokeside/rowing-analysis-go/internal/spatial"
)

// GateService handles the gate reference tables
type GateService struct {
	repo     *repository.GateRepository
	tracks   *repository.TrackRepository
	gatesDir string
}

// NewGateService creates a new gate service
func NewGateService(repo *repository.GateRepository, tracks *repository.TrackRepository, gatesDir string) *GateService {
	return &GateService{repo: repo, tracks: tracks, gatesDir: gatesDir}
}

// Reload re-reads every course file from the gates directory and replaces
// the stored table. Returns the number of gates loaded.
func (s *GateService) Reload() (int, error) {
	loaded, err := gates.LoadDir(s.gatesDir)
	if err != nil {
		return 0, fmt.Errorf("failed to load gate tables: %w", err)
	}
	if err := s.repo.ReplaceAll(loaded); err != nil {
		return 0, err
	}
	log.Printf("[GateService] Reloaded %d gates from %s", len(loaded), s.gatesDir)
	return len(loaded), nil
}

// ListGates returns the stored gate table, optionally for one course.
func (s *GateService) ListGates(course string) ([]models.Gate, error) {
	return s.repo.ListGates(course)
}

// Courses returns the known course keys.
func (s *GateService) Courses() ([]string, error) {
	return s.repo.Courses()
}

// SuggestBearing estimates a gate bearing at a position from the directions
// a recorded track passes it with, for building new course tables.
func (s *GateService) SuggestBearing(trackID int64, p models.Position, tolKm float64) (float64, error) {
	track, err := s.tracks.GetTrackPoints(trackID)
	if err != nil {
		return 0, err
	}
	if len(track) == 0 {
		return 0, fmt.Errorf("track %d not found", trackID)
	}
	return spatial.EstimateBearing(track, p, tolKm), nil
}
