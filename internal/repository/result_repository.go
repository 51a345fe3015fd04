package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/strokeside/rowing-analysis-go/internal/database"
	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// ResultRepository handles database operations for analysis outputs
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResults replaces a track's stored crossings and splits with the given
// analysis output. Frontier points are cheap to recompute and are not
// persisted.
func (r *ResultRepository) SaveResults(trackID int64, crossings []models.CrossingEvent, splits []models.SplitRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM crossings WHERE track_id = ?", trackID); err != nil {
			return fmt.Errorf("failed to clear crossings: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM best_splits WHERE track_id = ?", trackID); err != nil {
			return fmt.Errorf("failed to clear splits: %w", err)
		}

		for _, c := range crossings {
			if _, err := tx.Exec(`
				INSERT INTO crossings (track_id, gate_name, distance_km, crossed_at)
				VALUES (?, ?, ?, ?)
			`, trackID, c.GateName, c.DistanceKm, c.Time.UTC().Format(time.RFC3339Nano)); err != nil {
				return fmt.Errorf("failed to insert crossing at %q: %w", c.GateName, err)
			}
		}

		for _, s := range splits {
			var extra interface{}
			if len(s.ExtraMetrics) > 0 {
				encoded, err := json.Marshal(s.ExtraMetrics)
				if err != nil {
					return fmt.Errorf("failed to encode extra metrics: %w", err)
				}
				extra = string(encoded)
			}
			if _, err := tx.Exec(`
				INSERT INTO best_splits
					(track_id, label, target_km, start_distance_km, elapsed_seconds, split_pace_seconds, extra_metrics)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, trackID, s.Label, s.TargetKm, s.StartDistanceKm,
				s.Elapsed.Seconds(), s.SplitPace.Seconds(), extra); err != nil {
				return fmt.Errorf("failed to insert split %q: %w", s.Label, err)
			}
		}
		return nil
	})
}

// GetCrossings loads a track's stored crossings ordered by distance.
func (r *ResultRepository) GetCrossings(trackID int64) ([]models.CrossingEvent, error) {
	rows, err := r.db.Query(`
		SELECT gate_name, distance_km, crossed_at
		FROM crossings WHERE track_id = ? ORDER BY distance_km
	`, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query crossings: %w", err)
	}
	defer rows.Close()

	var crossings []models.CrossingEvent
	for rows.Next() {
		var c models.CrossingEvent
		var ts string
		if err := rows.Scan(&c.GateName, &c.DistanceKm, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan crossing: %w", err)
		}
		if c.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("crossing holds invalid time %q: %w", ts, err)
		}
		crossings = append(crossings, c)
	}
	return crossings, rows.Err()
}

// GetSplits loads a track's stored split tables, fastest first within each
// target distance.
func (r *ResultRepository) GetSplits(trackID int64) ([]models.SplitRecord, error) {
	rows, err := r.db.Query(`
		SELECT label, target_km, start_distance_km, elapsed_seconds, split_pace_seconds, extra_metrics
		FROM best_splits WHERE track_id = ? ORDER BY target_km, elapsed_seconds
	`, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []models.SplitRecord
	for rows.Next() {
		var s models.SplitRecord
		var elapsedSec, paceSec float64
		var extra sql.NullString
		if err := rows.Scan(&s.Label, &s.TargetKm, &s.StartDistanceKm, &elapsedSec, &paceSec, &extra); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		s.Elapsed = time.Duration(elapsedSec * float64(time.Second))
		s.SplitPace = time.Duration(paceSec * float64(time.Second))
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &s.ExtraMetrics); err != nil {
				return nil, fmt.Errorf("split holds invalid extra metrics: %w", err)
			}
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}
