package analysis

import (
	"sort"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// ParetoFrontier computes the distance-vs-speed trade-off implied by the
// track: over every ordered sample pair (i, j) it collects the interval
// length and average speed, then keeps only the Pareto-efficient outcomes,
// those not beaten on both distance and speed by any other interval. The
// pair set grows quadratically with track length, so callers downsample
// long tracks before calling.
func ParetoFrontier(track models.Track) []models.FrontierPoint {
	if len(track) < 2 {
		return nil
	}

	var points []models.FrontierPoint
	for i := 0; i < len(track); i++ {
		for j := i + 1; j < len(track); j++ {
			dd := track[j].DistanceKm - track[i].DistanceKm
			dt := track[j].ElapsedSeconds() - track[i].ElapsedSeconds()
			speed := 0.0
			if dt > 0 {
				speed = 1000 * dd / dt
			}
			points = append(points, models.FrontierPoint{
				DistanceKm: dd,
				SpeedMps:   speed,
			})
		}
	}

	frontier := paretoEfficient(points)
	sort.Slice(frontier, func(a, b int) bool {
		if frontier[a].DistanceKm != frontier[b].DistanceKm {
			return frontier[a].DistanceKm < frontier[b].DistanceKm
		}
		return frontier[a].SpeedMps > frontier[b].SpeedMps
	})
	return frontier
}

// paretoEfficient runs an iterative dominance sweep: take the next undecided
// candidate, drop every remaining candidate it dominates (worse or equal in
// both dimensions), advance. Duplicates of a kept point are dropped with the
// dominated ones.
func paretoEfficient(points []models.FrontierPoint) []models.FrontierPoint {
	candidates := make([]int, len(points))
	for i := range candidates {
		candidates[i] = i
	}

	next := 0
	for next < len(candidates) {
		cur := points[candidates[next]]

		kept := candidates[:0]
		newNext := -1
		for pos, c := range candidates {
			if pos == next ||
				points[c].DistanceKm > cur.DistanceKm ||
				points[c].SpeedMps > cur.SpeedMps {
				if pos == next {
					newNext = len(kept)
				}
				kept = append(kept, c)
			}
		}
		candidates = kept
		next = newNext + 1
	}

	frontier := make([]models.FrontierPoint, len(candidates))
	for i, c := range candidates {
		frontier[i] = points[c]
	}
	return frontier
}

// Downsample returns a stride-thinned copy of the track that always keeps
// the final sample, used to bound the quadratic pair blow-up of the
// frontier computation.
func Downsample(track models.Track, maxPoints int) models.Track {
	if maxPoints < 2 || len(track) <= maxPoints {
		return track
	}
	stride := (len(track) + maxPoints - 1) / maxPoints
	out := make(models.Track, 0, maxPoints+1)
	for i := 0; i < len(track); i += stride {
		out = append(out, track[i])
	}
	if out[len(out)-1].DistanceKm != track[len(track)-1].DistanceKm {
		out = append(out, track[len(track)-1])
	}
	return out
}
