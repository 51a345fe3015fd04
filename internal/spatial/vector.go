package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/strokeside/rowing-analysis-go/internal/models"
)

// NVector converts a position to its n-vector: the unit 3-vector from the
// Earth's centre through the point. Spherical problems become linear algebra
// in this representation.
func NVector(p models.Position) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Latitude, p.Longitude))
}

// FromNVector converts a (not necessarily unit-length) 3-vector back to a
// position on the sphere.
func FromNVector(v r3.Vector) models.Position {
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return models.Position{
		Latitude:  ll.Lat.Degrees(),
		Longitude: ll.Lng.Degrees(),
	}
}

// GreatCircleNormal returns the vector normal to the great circle passing
// through p in the direction of bearingDeg. A gate line is represented this
// way: a plane through the Earth's centre.
func GreatCircleNormal(p models.Position, bearingDeg float64) r3.Vector {
	phi := p.Latitude * math.Pi / 180
	lam := p.Longitude * math.Pi / 180
	theta := bearingDeg * math.Pi / 180

	sinPhi, cosPhi := math.Sincos(phi)
	sinLam, cosLam := math.Sincos(lam)
	sinTheta, cosTheta := math.Sincos(theta)

	return r3.Vector{
		X: sinLam*cosTheta - sinPhi*cosLam*sinTheta,
		Y: -cosLam*cosTheta - sinPhi*sinLam*sinTheta,
		Z: cosPhi * sinTheta,
	}
}

// PathIntersection returns an intersection of the two great circles defined
// by their normal vectors, as the cross product of the normals. Two antipodal
// solutions exist; callers restrict candidates to the neighbourhood of the
// points of interest so the returned one is the relevant one. Near-parallel
// circles give a near-zero cross product and an unreliable position, which
// the same proximity filtering excludes.
func PathIntersection(n1, n2 r3.Vector) models.Position {
	return FromNVector(n1.Cross(n2))
}

// GateIntersection returns where the great circle through p in direction
// bearingDeg crosses the gate's line.
func GateIntersection(p models.Position, bearingDeg float64, gate models.Gate) models.Position {
	return PathIntersection(
		GreatCircleNormal(p, bearingDeg),
		GreatCircleNormal(gate.Position, gate.BearingDeg),
	)
}
