package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = d.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(d))
	return d
}

func testTrack() models.Track {
	t0 := time.Date(2024, 5, 12, 8, 0, 0, 0, time.UTC)
	track := make(models.Track, 4)
	for i := range track {
		track[i] = models.TrackPoint{
			Position:   models.Position{Latitude: 52.2 + float64(i)*0.001, Longitude: 0.12},
			Time:       t0.Add(time.Duration(i*20) * time.Second),
			DistanceKm: float64(i) * 0.11,
			Elapsed:    time.Duration(i*20) * time.Second,
			BearingDeg: 0,
			HeartRate:  135 + float64(i),
			Cadence:    28,
		}
	}
	return track
}

func TestTrackRepository(t *testing.T) {
	d := openTestDB(t)
	repo := NewTrackRepository(d)

	track := testTrack()
	id, err := repo.InsertTrack(models.TrackMeta{Name: "morning outing", Source: "gpx"}, track)
	require.NoError(t, err)
	require.Positive(t, id)

	t.Run("get by id", func(t *testing.T) {
		meta, err := repo.GetTrackByID(id)
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Equal(t, "morning outing", meta.Name)
		assert.Equal(t, 4, meta.PointCount)
		assert.InDelta(t, 0.33, meta.TotalDistanceKm, 1e-9)
		assert.Equal(t, track[0].Time, meta.StartedAt)
	})

	t.Run("missing id", func(t *testing.T) {
		meta, err := repo.GetTrackByID(9999)
		require.NoError(t, err)
		assert.Nil(t, meta)
	})

	t.Run("points round trip", func(t *testing.T) {
		loaded, err := repo.GetTrackPoints(id)
		require.NoError(t, err)
		require.Len(t, loaded, len(track))
		for i := range track {
			assert.Equal(t, track[i].DistanceKm, loaded[i].DistanceKm, "point %d", i)
			assert.True(t, track[i].Time.Equal(loaded[i].Time), "point %d", i)
			assert.Equal(t, track[i].Elapsed, loaded[i].Elapsed, "point %d", i)
			assert.Equal(t, track[i].HeartRate, loaded[i].HeartRate, "point %d", i)
		}
		require.NoError(t, loaded.Validate())
	})

	t.Run("list with filter", func(t *testing.T) {
		all, total, err := repo.ListTracks(models.TrackFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, all, 1)

		none, total, err := repo.ListTracks(models.TrackFilter{Name: "evening"})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, none)
	})

	t.Run("delete cascades", func(t *testing.T) {
		ok, err := repo.DeleteTrack(id)
		require.NoError(t, err)
		assert.True(t, ok)

		points, err := repo.GetTrackPoints(id)
		require.NoError(t, err)
		assert.Empty(t, points)

		ok, err = repo.DeleteTrack(id)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGateRepository(t *testing.T) {
	d := openTestDB(t)
	repo := NewGateRepository(d)

	gates := []models.Gate{
		{Position: models.Position{Latitude: 52.2, Longitude: 0.12}, BearingDeg: 35, Name: "start", Course: "cam"},
		{Position: models.Position{Latitude: 52.21, Longitude: 0.13}, BearingDeg: 40, Name: "finish", Course: "cam"},
		{Position: models.Position{Latitude: 52.4, Longitude: 0.26}, BearingDeg: 120, Name: "bridge", Course: "ely"},
	}
	require.NoError(t, repo.ReplaceAll(gates))

	t.Run("list all", func(t *testing.T) {
		all, err := repo.ListGates("")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("list by course", func(t *testing.T) {
		cam, err := repo.ListGates("cam")
		require.NoError(t, err)
		require.Len(t, cam, 2)
		assert.Equal(t, "start", cam[0].Name)
	})

	t.Run("courses", func(t *testing.T) {
		courses, err := repo.Courses()
		require.NoError(t, err)
		assert.Equal(t, []string{"cam", "ely"}, courses)
	})

	t.Run("replace swaps the table", func(t *testing.T) {
		require.NoError(t, repo.ReplaceAll(gates[:1]))
		all, err := repo.ListGates("")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestResultRepository(t *testing.T) {
	d := openTestDB(t)
	tracks := NewTrackRepository(d)
	repo := NewResultRepository(d)

	id, err := tracks.InsertTrack(models.TrackMeta{Name: "outing", Source: "gpx"}, testTrack())
	require.NoError(t, err)

	t0 := time.Date(2024, 5, 12, 8, 1, 0, 0, time.UTC)
	crossings := []models.CrossingEvent{
		{GateName: "start", DistanceKm: 0.105, Time: t0},
		{GateName: "finish", DistanceKm: 0.312, Time: t0.Add(45 * time.Second)},
	}
	splits := []models.SplitRecord{
		{
			Label: "250m", TargetKm: 0.25, StartDistanceKm: 0.011,
			Elapsed: 58 * time.Second, SplitPace: 116 * time.Second,
			ExtraMetrics: map[string]float64{"heartRate": 141.5},
		},
	}

	require.NoError(t, repo.SaveResults(id, crossings, splits))

	t.Run("crossings round trip", func(t *testing.T) {
		loaded, err := repo.GetCrossings(id)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "start", loaded[0].GateName)
		assert.True(t, loaded[1].Time.Equal(crossings[1].Time))
	})

	t.Run("splits round trip", func(t *testing.T) {
		loaded, err := repo.GetSplits(id)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, 58*time.Second, loaded[0].Elapsed)
		assert.Equal(t, 141.5, loaded[0].ExtraMetrics["heartRate"])
	})

	t.Run("save replaces previous results", func(t *testing.T) {
		require.NoError(t, repo.SaveResults(id, crossings[:1], nil))
		loaded, err := repo.GetCrossings(id)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)

		splits, err := repo.GetSplits(id)
		require.NoError(t, err)
		assert.Empty(t, splits)
	})
}
