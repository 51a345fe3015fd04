package models

import "time"

// SplitRecord is one best-effort window of a fixed target distance.
// SplitPace follows the rowing convention of time per 500 m, i.e.
// elapsed / distance / 2 for a distance expressed in kilometres.
type SplitRecord struct {
	Label           string             `json:"label" db:"label"`
	TargetKm        float64            `json:"targetKm" db:"target_km"`
	StartDistanceKm float64            `json:"startDistanceKm" db:"start_distance_km"`
	Elapsed         time.Duration      `json:"elapsedSeconds" db:"elapsed_seconds"`
	SplitPace       time.Duration      `json:"splitPaceSeconds" db:"split_pace_seconds"`
	ExtraMetrics    map[string]float64 `json:"extraMetrics,omitempty"`
}

// FrontierPoint is one Pareto-efficient (distance, speed) outcome: no other
// sub-interval of the track covers both more distance and a higher average
// speed.
type FrontierPoint struct {
	DistanceKm float64 `json:"distanceKm"`
	SpeedMps   float64 `json:"speedMps"`
}

// AnalysisResult bundles every analysis output for one track.
type AnalysisResult struct {
	TrackID   int64           `json:"trackId"`
	Crossings []CrossingEvent `json:"crossings"`
	Splits    []SplitRecord   `json:"splits"`
	Frontier  []FrontierPoint `json:"frontier"`
}
