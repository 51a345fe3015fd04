package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// Constants
const (
	// EarthRadiusKm is the mean Earth radius used throughout; matches the
	// scaling of the recorded reference data.
	EarthRadiusKm     = 6371.0088
	EarthRadiusMeters = EarthRadiusKm * 1000
)

// Haversine calculates the great-circle central angle between two points in
// radians using the haversine formula. The atan2 form stays numerically
// stable for near-identical and near-antipodal points.
func Haversine(p1, p2 models.Position) float64 {
	phi1 := p1.Latitude * math.Pi / 180
	phi2 := p2.Latitude * math.Pi / 180
	dPhi := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dLam := (p2.Longitude - p1.Longitude) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLam := math.Sin(dLam / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLam*sinLam
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineKm calculates the great-circle distance between two points in
// kilometres.
func HaversineKm(p1, p2 models.Position) float64 {
	return Haversine(p1, p2) * EarthRadiusKm
}

// RadBearing calculates the initial bearing (forward azimuth) from p1 to p2
// in radians, in (-pi, pi].
func RadBearing(p1, p2 models.Position) float64 {
	phi1 := p1.Latitude * math.Pi / 180
	phi2 := p2.Latitude * math.Pi / 180
	dLam := (p2.Longitude - p1.Longitude) * math.Pi / 180

	y := math.Sin(dLam) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLam)
	return math.Atan2(y, x)
}

// Bearing calculates the initial bearing from p1 to p2 in degrees,
// normalized to [0, 360).
func Bearing(p1, p2 models.Position) float64 {
	deg := RadBearing(p1, p2) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// DestinationPoint calculates the point reached from a start point on a
// given bearing (degrees) after a given distance (kilometres).
func DestinationPoint(p models.Position, bearingDeg, distanceKm float64) models.Position {
	ll := s2.LatLngFromDegrees(p.Latitude, p.Longitude)
	bearingRad := bearingDeg * math.Pi / 180
	angular := distanceKm / EarthRadiusKm

	lat := ll.Lat.Radians()
	lon := ll.Lng.Radians()

	lat2 := math.Asin(math.Sin(lat)*math.Cos(angular) +
		math.Cos(lat)*math.Sin(angular)*math.Cos(bearingRad))
	lon2 := lon + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(lat),
		math.Cos(angular)-math.Sin(lat)*math.Sin(lat2))

	return models.Position{
		Latitude:  lat2 * 180 / math.Pi,
		Longitude: lon2 * 180 / math.Pi,
	}
}
