package service

import (
	"context"
	"fmt"
	"log"

	"github.com/strokeside/rowing-analysis-go/internal/analysis"
	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/repository"
	"github.com/strokeside/rowing-analysis-go/internal/worker"
)

// AnalysisOptions selects what a track analysis computes.
type AnalysisOptions struct {
	Course    string   `json:"course"`
	ThreshKm  float64  `json:"threshKm"`
	ExtraCols []string `json:"extraCols"`
}

// AnalysisService runs the geometry analyses over stored tracks and
// persists their results. The underlying computations are pure and
// per-track, so batch runs fan out safely across workers.
type AnalysisService struct {
	tracks  *repository.TrackRepository
	gates   *repository.GateRepository
	results *repository.ResultRepository

	proximityKm       float64
	frontierMaxPoints int
	batchWorkers      int
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	tracks *repository.TrackRepository,
	gates *repository.GateRepository,
	results *repository.ResultRepository,
	proximityKm float64,
	frontierMaxPoints int,
	batchWorkers int,
) *AnalysisService {
	return &AnalysisService{
		tracks:            tracks,
		gates:             gates,
		results:           results,
		proximityKm:       proximityKm,
		frontierMaxPoints: frontierMaxPoints,
		batchWorkers:      batchWorkers,
	}
}

// Analyze runs gate crossings, best splits and the efficiency frontier for
// one stored track and persists the crossing and split tables.
func (s *AnalysisService) Analyze(trackID int64, opts AnalysisOptions) (*models.AnalysisResult, error) {
	track, err := s.tracks.GetTrackPoints(trackID)
	if err != nil {
		return nil, err
	}
	if len(track) == 0 {
		return nil, fmt.Errorf("track %d not found", trackID)
	}
	if err := track.Validate(); err != nil {
		return nil, fmt.Errorf("track %d is not analyzable: %w", trackID, err)
	}

	gateTable, err := s.gates.ListGates(opts.Course)
	if err != nil {
		return nil, err
	}

	thresh := opts.ThreshKm
	if thresh <= 0 {
		thresh = s.proximityKm
	}

	result := &models.AnalysisResult{
		TrackID:   trackID,
		Crossings: analysis.FindAllCrossings(track, gateTable, thresh),
		Splits:    analysis.AllBestSplits(track, nil, opts.ExtraCols),
		Frontier:  analysis.ParetoFrontier(analysis.Downsample(track, s.frontierMaxPoints)),
	}

	if err := s.results.SaveResults(trackID, result.Crossings, result.Splits); err != nil {
		return nil, fmt.Errorf("failed to persist results for track %d: %w", trackID, err)
	}
	log.Printf("[AnalysisService] Track %d: %d crossings, %d splits, %d frontier points",
		trackID, len(result.Crossings), len(result.Splits), len(result.Frontier))
	return result, nil
}

// AnalyzeBatch fans Analyze out over many tracks with bounded concurrency,
// collecting per-track results and per-track errors separately so one bad
// track never aborts the rest.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, trackIDs []int64, opts AnalysisOptions) (map[int64]*models.AnalysisResult, map[int64]error) {
	inputs := make(map[int64]int64, len(trackIDs))
	for _, id := range trackIDs {
		inputs[id] = id
	}
	return worker.Map(ctx, inputs, s.batchWorkers,
		func(_ context.Context, _ int64, id int64) (*models.AnalysisResult, error) {
			return s.Analyze(id, opts)
		})
}

// Crossings returns a track's stored crossing events.
func (s *AnalysisService) Crossings(trackID int64) ([]models.CrossingEvent, error) {
	return s.results.GetCrossings(trackID)
}

// Splits returns a track's stored split tables.
func (s *AnalysisService) Splits(trackID int64) ([]models.SplitRecord, error) {
	return s.results.GetSplits(trackID)
}

// Frontier recomputes a track's efficiency frontier on demand.
func (s *AnalysisService) Frontier(trackID int64) ([]models.FrontierPoint, error) {
	track, err := s.tracks.GetTrackPoints(trackID)
	if err != nil {
		return nil, err
	}
	if len(track) == 0 {
		return nil, fmt.Errorf("track %d not found", trackID)
	}
	return analysis.ParetoFrontier(analysis.Downsample(track, s.frontierMaxPoints)), nil
}

// TimingCells returns the pairwise gate-timing table for a track's stored
// crossings.
func (s *AnalysisService) TimingCells(trackID int64) ([]models.TimingCell, error) {
	crossings, err := s.results.GetCrossings(trackID)
	if err != nil {
		return nil, err
	}
	return analysis.TimingCells(crossings), nil
}
