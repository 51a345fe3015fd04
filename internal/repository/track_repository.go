package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// TrackRepository handles database operations for tracks and their points
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// InsertTrack stores a track summary and all its points in one transaction
// and returns the new track ID.
func (r *TrackRepository) InsertTrack(meta models.TrackMeta, track models.Track) (int64, error) {
	var id int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO tracks (name, source, point_count, total_distance_km, duration_seconds, started_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, meta.Name, meta.Source, len(track), track.TotalDistanceKm(),
			track.Duration().Seconds(), track[0].Time.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to insert track: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO track_points
				(track_id, seq, latitude, longitude, time, distance_km, elapsed_seconds, bearing_deg, heart_rate, cadence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare point insert: %w", err)
		}
		defer stmt.Close()

		for seq, p := range track {
			if _, err := stmt.Exec(
				id, seq, p.Latitude, p.Longitude, p.Time.UTC().Format(time.RFC3339Nano),
				p.DistanceKm, p.ElapsedSeconds(), p.BearingDeg, p.HeartRate, p.Cadence,
			); err != nil {
				return fmt.Errorf("failed to insert point %d: %w", seq, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetTrackByID retrieves a single track summary, or nil when absent.
func (r *TrackRepository) GetTrackByID(id int64) (*models.TrackMeta, error) {
	row := r.db.QueryRow(`
		SELECT id, name, source, point_count, total_distance_km, duration_seconds, started_at, created_at
		FROM tracks WHERE id = ?
	`, id)

	meta, err := scanTrackMeta(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track %d: %w", id, err)
	}
	return meta, nil
}

// ListTracks retrieves track summaries with filtering and pagination.
func (r *TrackRepository) ListTracks(filter models.TrackFilter) ([]models.TrackMeta, int64, error) {
	query := `
		SELECT id, name, source, point_count, total_distance_km, duration_seconds, started_at, created_at
		FROM tracks`
	countQuery := "SELECT COUNT(*) FROM tracks"

	var conditions []string
	var args []interface{}
	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if len(conditions) > 0 {
		where := " WHERE " + strings.Join(conditions, " AND ")
		query += where
		countQuery += where
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tracks: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	query += " ORDER BY started_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.TrackMeta
	for rows.Next() {
		meta, err := scanTrackMeta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, *meta)
	}
	return tracks, total, rows.Err()
}

// GetTrackPoints loads the full ordered point sequence of a track.
func (r *TrackRepository) GetTrackPoints(trackID int64) (models.Track, error) {
	rows, err := r.db.Query(`
		SELECT latitude, longitude, time, distance_km, elapsed_seconds, bearing_deg, heart_rate, cadence
		FROM track_points
		WHERE track_id = ?
		ORDER BY seq
	`, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points for track %d: %w", trackID, err)
	}
	defer rows.Close()

	var track models.Track
	for rows.Next() {
		var p models.TrackPoint
		var ts string
		var elapsedSec float64
		if err := rows.Scan(
			&p.Latitude, &p.Longitude, &ts, &p.DistanceKm, &elapsedSec,
			&p.BearingDeg, &p.HeartRate, &p.Cadence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("track %d holds invalid point time %q: %w", trackID, ts, err)
		}
		p.Elapsed = time.Duration(elapsedSec * float64(time.Second))
		track = append(track, p)
	}
	return track, rows.Err()
}

// DeleteTrack removes a track; points and results cascade.
func (r *TrackRepository) DeleteTrack(id int64) (bool, error) {
	res, err := r.db.Exec("DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete track %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrackMeta(row rowScanner) (*models.TrackMeta, error) {
	var meta models.TrackMeta
	var startedAt, createdAt string
	if err := row.Scan(
		&meta.ID, &meta.Name, &meta.Source, &meta.PointCount,
		&meta.TotalDistanceKm, &meta.DurationSeconds, &startedAt, &createdAt,
	); err != nil {
		return nil, err
	}
	meta.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	meta.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	return &meta, nil
}
