package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	MetersPerKnot     = 1852.0 / 3600.0
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PointDistance is HaversineDistance for orb points in (lon, lat) order
func PointDistance(p1, p2 orb.Point) float64 {
	return HaversineDistance(p1.Lat(), p1.Lon(), p2.Lat(), p2.Lon())
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees [0, 360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	return BearingS2(s2.LatLngFromDegrees(lat1, lon1), s2.LatLngFromDegrees(lat2, lon2))
}

// BearingS2 calculates bearing between two S2 coordinates
func BearingS2(p1, p2 s2.LatLng) float64 {
	lat1 := p1.Lat.Radians()
	lat2 := p2.Lat.Radians()
	lonDiff := p2.Lng.Radians() - p1.Lng.Radians()

	y := math.Sin(lonDiff) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	// Convert to degrees and normalize to 0-360
	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// PointBearing is Bearing for orb points in (lon, lat) order
func PointBearing(from, to orb.Point) float64 {
	return Bearing(from.Lat(), from.Lon(), to.Lat(), to.Lon())
}

// SignedBearingDelta returns the heading change from b1 to b2 in (-180, 180].
// Positive is clockwise (right), negative is counter-clockwise (left).
func SignedBearingDelta(b1, b2 float64) float64 {
	d := math.Mod(b2-b1+540, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d == -180 {
		return 180
	}
	return d
}

// KnotsToMPS converts a speed in knots to meters per second
func KnotsToMPS(knots float64) float64 {
	return knots * MetersPerKnot
}
