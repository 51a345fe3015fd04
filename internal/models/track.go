package models

import (
	"fmt"
	"time"
)

// Position is an immutable point on the sphere in degrees
type Position struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// TrackPoint represents a single GPS sample of a recorded track.
// DistanceKm is the cumulative path length from the first point and
// BearingDeg is the outgoing direction of travel toward the next sample;
// the last point carries a copy of the previous point's bearing.
type TrackPoint struct {
	Position
	Time       time.Time     `json:"time" db:"time"`
	DistanceKm float64       `json:"distanceKm" db:"distance_km"`
	Elapsed    time.Duration `json:"elapsedSeconds" db:"elapsed_seconds"`
	BearingDeg float64       `json:"bearingDeg" db:"bearing_deg"`

	// Optional sensor columns, zero when the source file carries none
	HeartRate float64 `json:"heartRate,omitempty" db:"heart_rate"`
	Cadence   float64 `json:"cadence,omitempty" db:"cadence"`
}

// ElapsedSeconds returns the elapsed time since the first sample in seconds.
func (p TrackPoint) ElapsedSeconds() float64 {
	return p.Elapsed.Seconds()
}

// Track is an ordered sequence of at least two track points with strictly
// increasing time and non-decreasing cumulative distance. Components only
// read it; ownership stays with the caller.
type Track []TrackPoint

// TotalDistanceKm returns the cumulative distance at the last sample.
func (t Track) TotalDistanceKm() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].DistanceKm
}

// Duration returns the elapsed time of the whole track.
func (t Track) Duration() time.Duration {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Elapsed
}

// Validate checks the track invariants assumed by the analysis components:
// length >= 2, strictly increasing time, non-decreasing cumulative distance.
// Malformed tracks are rejected here, at the ingestion boundary, so the
// geometry and extractors downstream never see them.
func (t Track) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("track requires at least 2 points, got %d", len(t))
	}
	for i := 1; i < len(t); i++ {
		if !t[i].Time.After(t[i-1].Time) {
			return fmt.Errorf("track time not strictly increasing at point %d (%s -> %s)",
				i, t[i-1].Time.Format(time.RFC3339), t[i].Time.Format(time.RFC3339))
		}
		if t[i].DistanceKm < t[i-1].DistanceKm {
			return fmt.Errorf("track distance decreasing at point %d (%.4f -> %.4f km)",
				i, t[i-1].DistanceKm, t[i].DistanceKm)
		}
	}
	return nil
}

// TrackMeta is the stored summary row for an ingested track.
type TrackMeta struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Source          string    `json:"source" db:"source"`
	PointCount      int       `json:"pointCount" db:"point_count"`
	TotalDistanceKm float64   `json:"totalDistanceKm" db:"total_distance_km"`
	DurationSeconds float64   `json:"durationSeconds" db:"duration_seconds"`
	StartedAt       time.Time `json:"startedAt" db:"started_at"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// TrackFilter represents query parameters for listing tracks.
type TrackFilter struct {
	Name     string `form:"name"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
