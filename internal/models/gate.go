package models

import "time"

// Gate is a finish-line-like reference on the water: a point plus the
// direction considered "forward" across it. Gate tables are loaded from
// static course data and treated as immutable.
type Gate struct {
	Position
	BearingDeg float64 `json:"bearingDeg" db:"bearing_deg"`
	Name       string  `json:"name" db:"name"`
	Course     string  `json:"course" db:"course"`
}

// CrossingEvent records one detected pass of the track over a gate line,
// interpolated to sub-sample precision and keyed by cumulative distance.
type CrossingEvent struct {
	GateName   string    `json:"gateName" db:"gate_name"`
	DistanceKm float64   `json:"distanceKm" db:"distance_km"`
	Time       time.Time `json:"time" db:"time"`
}

// TimingCell is one entry of the pairwise gate-timing matrix: the
// distance-normalized pace between two crossings on the same outing.
type TimingCell struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DeltaKm    float64 `json:"deltaKm"`
	Per500mSec float64 `json:"per500mSec"`
}
