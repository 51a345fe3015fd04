package spatial

import (
	"math"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// CircularMean calculates the mean of circular data (angles in radians).
// weights may be nil for equal weights. Returns the mean angle in radians.
func CircularMean(angles []float64, weights []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	for i, angle := range angles {
		w := 1.0
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		sumSin += w * math.Sin(angle)
		sumCos += w * math.Cos(angle)
	}

	return math.Atan2(sumSin, sumCos)
}

// CircularMeanDegrees calculates the mean of circular data in degrees,
// normalized to [0, 360).
func CircularMeanDegrees(angles []float64, weights []float64) float64 {
	radians := make([]float64, len(angles))
	for i, angle := range angles {
		radians[i] = angle * math.Pi / 180
	}
	meanDeg := CircularMean(radians, weights) * 180 / math.Pi
	if meanDeg < 0 {
		meanDeg += 360
	}
	return meanDeg
}

// EstimateBearing estimates the line direction at a reference point from the
// bearings of nearby track samples. Samples are weighted by a Gaussian of
// their distance to the point (tolKm standard deviation), and bearings are
// treated as axial data (a boat passing the point in either direction lies
// on the same line), so angles are doubled before averaging and halved
// after. Returns a bearing in [0, 180).
func EstimateBearing(points []models.TrackPoint, p models.Position, tolKm float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if tolKm <= 0 {
		tolKm = 0.01
	}

	doubled := make([]float64, len(points))
	weights := make([]float64, len(points))
	for i, pt := range points {
		d := HaversineKm(pt.Position, p) / tolKm
		weights[i] = math.Exp(-d * d / 2)
		doubled[i] = math.Mod(pt.BearingDeg, 180) * 2
	}

	mean := CircularMeanDegrees(doubled, weights) / 2
	return math.Mod(mean+180, 180)
}
