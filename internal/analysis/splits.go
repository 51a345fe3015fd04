package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// StandardDistance is a named target distance for split extraction.
type StandardDistance struct {
	Label string
	Km    float64
}

// StandardDistances is the default table of race and training distances a
// split table is produced for.
var StandardDistances = []StandardDistance{
	{"250m", 0.25},
	{"500m", 0.5},
	{"1km", 1},
	{"1.5km", 1.5},
	{"2km", 2},
	{"3km", 3},
	{"5km", 5},
	{"7km", 7},
	{"10km", 10},
}

// BestSplits finds the fastest contiguous window of targetKm anywhere in the
// track, then the next-best non-overlapping windows, ranked fastest first.
// The greedy selection is deliberate: the first window is globally fastest
// and each later one is fastest among the starts its predecessors left
// unblocked. extraCols names per-sample columns ("heartRate", "cadence",
// "bearing") to average over each window. A target longer than the track
// yields an empty table.
func BestSplits(track models.Track, label string, targetKm float64, extraCols []string) []models.SplitRecord {
	if len(track) < 2 || targetKm <= 0 {
		return nil
	}
	total := track.TotalDistanceKm()

	// Candidate windows start at every sample whose span still fits
	var idx []int
	for i := range track {
		if track[i].DistanceKm+targetKm < total {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}

	starts := make([]float64, len(idx))
	ends := make([]float64, len(idx))
	windowSec := make([]float64, len(idx))
	for k, i := range idx {
		starts[k] = track[i].DistanceKm
		ends[k] = starts[k] + targetKm
		// Elapsed time at the window end, interpolated on the monotonic
		// distance axis
		windowSec[k] = elapsedAtDistance(track, ends[k]) - track[i].ElapsedSeconds()
	}

	order := make([]int, len(idx))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		return windowSec[order[a]] < windowSec[order[b]]
	})

	// Greedy interval exclusion over the start-distance-sorted candidates:
	// pick the fastest remaining window, block every start whose window
	// would overlap its span, repeat.
	blocked := make([]bool, len(idx))
	var records []models.SplitRecord
	for _, k := range order {
		if blocked[k] {
			continue
		}
		i0 := sort.SearchFloat64s(ends, starts[k])
		i1 := sort.SearchFloat64s(starts, ends[k])
		for b := i0; b < i1; b++ {
			blocked[b] = true
		}

		rec := models.SplitRecord{
			Label:           label,
			TargetKm:        targetKm,
			StartDistanceKm: roundKm(starts[k]),
			Elapsed:         secondsToDuration(windowSec[k]),
			SplitPace:       secondsToDuration(windowSec[k] / targetKm / 2),
		}
		if len(extraCols) > 0 {
			rec.ExtraMetrics = windowColumnMeans(track, starts[k], ends[k], extraCols)
		}
		records = append(records, rec)
	}

	return records
}

// AllBestSplits produces one ranked split table per target distance,
// concatenated in distance-table order.
func AllBestSplits(track models.Track, distances []StandardDistance, extraCols []string) []models.SplitRecord {
	if distances == nil {
		distances = StandardDistances
	}
	var records []models.SplitRecord
	for _, d := range distances {
		records = append(records, BestSplits(track, d.Label, d.Km, extraCols)...)
	}
	return records
}

// elapsedAtDistance interpolates elapsed seconds at a cumulative distance,
// piecewise-linearly between the two surrounding samples. Distances outside
// the track clamp to the boundary values.
func elapsedAtDistance(track models.Track, km float64) float64 {
	n := len(track)
	i := sort.Search(n, func(i int) bool { return track[i].DistanceKm >= km })
	if i == 0 {
		return track[0].ElapsedSeconds()
	}
	if i == n {
		return track[n-1].ElapsedSeconds()
	}
	d0, d1 := track[i-1].DistanceKm, track[i].DistanceKm
	t0, t1 := track[i-1].ElapsedSeconds(), track[i].ElapsedSeconds()
	if d1 == d0 {
		return t1
	}
	return t0 + (t1-t0)*(km-d0)/(d1-d0)
}

// windowColumnMeans averages the named per-sample columns over the samples
// falling inside the window's distance span, rounded to one decimal.
func windowColumnMeans(track models.Track, startKm, endKm float64, cols []string) map[string]float64 {
	var window []models.TrackPoint
	for i := range track {
		if track[i].DistanceKm >= startKm && track[i].DistanceKm <= endKm {
			window = append(window, track[i])
		}
	}
	if len(window) == 0 {
		return nil
	}

	metrics := make(map[string]float64, len(cols))
	for _, col := range cols {
		values := make([]float64, 0, len(window))
		for _, p := range window {
			if v, ok := columnValue(p, col); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		metrics[col] = math.Round(stat.Mean(values, nil)*10) / 10
	}
	return metrics
}

func columnValue(p models.TrackPoint, col string) (float64, bool) {
	switch col {
	case "heartRate":
		return p.HeartRate, true
	case "cadence":
		return p.Cadence, true
	case "bearing":
		return p.BearingDeg, true
	}
	return 0, false
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
