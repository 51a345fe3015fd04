package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/strokeside/rowing-analysis-go/internal/models"
	"github.com/strokeside/rowing-analysis-go/internal/spatial"
)

// DefaultProximityKm is the band around a gate within which track samples
// can take part in a crossing. Samples further out are dropped before any
// great-circle work: they cannot bracket a true crossing and near-parallel
// intersections far from the gate are numerically unreliable.
const DefaultProximityKm = 0.15

// FindCrossings returns the ordered crossings of the track over the gate's
// line, interpolated to sub-sample precision. A track that never enters the
// proximity band, or retains a single sample there, yields an empty slice.
func FindCrossings(track models.Track, gate models.Gate, threshKm float64) []models.CrossingEvent {
	if threshKm <= 0 {
		threshKm = DefaultProximityKm
	}

	// Samples close enough to the gate to matter
	var retained []int
	for i := range track {
		if spatial.HaversineKm(track[i].Position, gate.Position) < threshKm {
			retained = append(retained, i)
		}
	}
	if len(retained) < 2 {
		return nil
	}

	// For each retained sample, intersect the local line perpendicular to
	// the gate's bearing with the gate line, and record which side of the
	// gate the intersection falls on (projected along the gate's forward
	// direction).
	perpBearing := gate.BearingDeg + 90
	intersections := make([]models.Position, len(retained))
	signs := make([]int, len(retained))
	for k, i := range retained {
		inter := spatial.GateIntersection(track[i].Position, perpBearing, gate)
		intersections[k] = inter

		b := spatial.Bearing(inter, gate.Position)
		if math.Cos((b-gate.BearingDeg)*math.Pi/180) >= 0 {
			signs[k] = 1
		} else {
			signs[k] = -1
		}
	}

	// A crossing is a sign change between consecutive retained samples.
	// The first sample is compared with itself so it never starts a
	// crossing on its own.
	var events []models.CrossingEvent
	for k := 1; k < len(retained); k++ {
		if signs[k] == signs[k-1] {
			continue
		}

		i, j := retained[k-1], retained[k]

		// Inverse-distance weight between the two bracketing
		// intersections; the formula is kept exactly as the recorded
		// reference data was produced with.
		d0 := spatial.Haversine(intersections[k-1], gate.Position)
		d1 := spatial.Haversine(intersections[k], gate.Position)
		w := 0.5
		if d0+d1 > 0 {
			w = d0 / (d0 + d1)
		}

		dt := track[j].Time.Sub(track[i].Time)
		dd := track[j].DistanceKm - track[i].DistanceKm
		events = append(events, models.CrossingEvent{
			GateName:   gate.Name,
			DistanceKm: roundKm(track[i].DistanceKm + dd*w),
			Time:       track[i].Time.Add(time.Duration(float64(dt) * w)),
		})
	}

	return events
}

// FindAllCrossings runs the detector for every gate and returns the combined
// events ordered by cumulative distance, so repeated out-and-back passes of
// the same course read in travel order.
func FindAllCrossings(track models.Track, gates []models.Gate, threshKm float64) []models.CrossingEvent {
	var events []models.CrossingEvent
	for _, gate := range gates {
		events = append(events, FindCrossings(track, gate, threshKm)...)
	}
	sort.Slice(events, func(a, b int) bool {
		return events[a].DistanceKm < events[b].DistanceKm
	})
	return events
}

// TimingMatrix computes the pairwise gate-timing matrix over crossings
// ordered by distance: entry [i][j] is the average pace in seconds per 500 m
// between crossing i and the later crossing j. Entries with no positive
// distance delta (the diagonal, the lower triangle, repeated crossings of
// the same spot) hold the zero sentinel.
func TimingMatrix(events []models.CrossingEvent) [][]float64 {
	m := make([][]float64, len(events))
	for i := range events {
		m[i] = make([]float64, len(events))
		for j := i + 1; j < len(events); j++ {
			dd := events[j].DistanceKm - events[i].DistanceKm
			if dd <= 0 {
				continue
			}
			dt := events[j].Time.Sub(events[i].Time).Seconds()
			m[i][j] = dt / (2 * dd)
		}
	}
	return m
}

// TimingCells flattens the upper triangle of the timing matrix into named
// cells for reporting.
func TimingCells(events []models.CrossingEvent) []models.TimingCell {
	m := TimingMatrix(events)
	var cells []models.TimingCell
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if m[i][j] == 0 {
				continue
			}
			cells = append(cells, models.TimingCell{
				From:       events[i].GateName,
				To:         events[j].GateName,
				DeltaKm:    roundKm(events[j].DistanceKm - events[i].DistanceKm),
				Per500mSec: m[i][j],
			})
		}
	}
	return cells
}

// roundKm rounds a cumulative distance to millimetre precision, the key
// resolution used to tell repeated passes of the same gate apart.
func roundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}
