package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/repository"
	"github.com/strokeside/rowing-analysis-go/internal/spatial"
)

func newTestServices(t *testing.T) (*TrackService, *AnalysisService, *GateService, *sql.DB) {
	t.Helper()
	d, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = d.Exec("PRAGMA journal_mode=WAL")
	require.NoError(t, err)
	_, err = d.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(d))

	trackRepo := repository.NewTrackRepository(d)
	gateRepo := repository.NewGateRepository(d)
	resultRepo := repository.NewResultRepository(d)

	return NewTrackService(trackRepo),
		NewAnalysisService(trackRepo, gateRepo, resultRepo, 0.15, 400, 4),
		NewGateService(gateRepo, trackRepo, t.TempDir()),
		d
}

var boathouse = models.Position{Latitude: 52.2053, Longitude: 0.1218}

// insertRiverTrack stores a steady 4 m/s track heading 20 degrees true.
func insertRiverTrack(t *testing.T, d *sql.DB, points int) int64 {
	t.Helper()
	t0 := time.Date(2024, 5, 12, 8, 0, 0, 0, time.UTC)
	track := make(models.Track, points)
	for i := 0; i < points; i++ {
		dist := float64(i) * 0.04
		track[i] = models.TrackPoint{
			Position:   spatial.DestinationPoint(boathouse, 20, dist),
			Time:       t0.Add(time.Duration(i*10) * time.Second),
			DistanceKm: dist,
			Elapsed:    time.Duration(i*10) * time.Second,
			BearingDeg: 20,
			HeartRate:  150,
			Cadence:    32,
		}
	}
	id, err := repository.NewTrackRepository(d).InsertTrack(
		models.TrackMeta{Name: "steady state", Source: "gpx"}, track)
	require.NoError(t, err)
	return id
}

func TestAnalysisService(t *testing.T) {
	_, analysisSvc, _, d := newTestServices(t)

	// 100 samples 40 m apart: a 3.96 km outing
	trackID := insertRiverTrack(t, d, 100)

	gateRepo := repository.NewGateRepository(d)
	require.NoError(t, gateRepo.ReplaceAll([]models.Gate{
		{Position: spatial.DestinationPoint(boathouse, 20, 1.0), BearingDeg: 20, Name: "motorway bridge", Course: "cam"},
		{Position: spatial.DestinationPoint(boathouse, 20, 2.5), BearingDeg: 20, Name: "railings", Course: "cam"},
	}))

	t.Run("analyze computes and persists", func(t *testing.T) {
		result, err := analysisSvc.Analyze(trackID, AnalysisOptions{
			Course:    "cam",
			ExtraCols: []string{"heartRate"},
		})
		require.NoError(t, err)

		require.Len(t, result.Crossings, 2)
		assert.Equal(t, "motorway bridge", result.Crossings[0].GateName)
		assert.InDelta(t, 1.0, result.Crossings[0].DistanceKm, 0.02)
		assert.InDelta(t, 2.5, result.Crossings[1].DistanceKm, 0.02)

		require.NotEmpty(t, result.Splits)
		for _, s := range result.Splits {
			// Steady 4 m/s: every split paces out to 125 s per 500 m
			assert.InDelta(t, 125, s.SplitPace.Seconds(), 0.5, "split %s", s.Label)
			assert.InDelta(t, 150, s.ExtraMetrics["heartRate"], 1e-9)
		}

		require.NotEmpty(t, result.Frontier)

		stored, err := analysisSvc.Crossings(trackID)
		require.NoError(t, err)
		assert.Len(t, stored, 2)

		cells, err := analysisSvc.TimingCells(trackID)
		require.NoError(t, err)
		require.Len(t, cells, 1)
		// 1.5 km at 4 m/s is 375 s, or 125 s per 500 m
		assert.InDelta(t, 125, cells[0].Per500mSec, 1)
	})

	t.Run("missing track", func(t *testing.T) {
		_, err := analysisSvc.Analyze(424242, AnalysisOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("batch isolates failures", func(t *testing.T) {
		results, errs := analysisSvc.AnalyzeBatch(context.Background(),
			[]int64{trackID, 424242}, AnalysisOptions{Course: "cam"})
		assert.Len(t, results, 1)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[424242].Error(), "not found")
	})
}

func TestGateServiceSuggestBearing(t *testing.T) {
	_, _, gateSvc, d := newTestServices(t)
	trackID := insertRiverTrack(t, d, 50)

	bearing, err := gateSvc.SuggestBearing(trackID,
		spatial.DestinationPoint(boathouse, 20, 0.8), 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 20, bearing, 1)

	_, err = gateSvc.SuggestBearing(999, boathouse, 0.05)
	require.Error(t, err)
}
