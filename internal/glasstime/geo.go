package glasstime

import "math"

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// Geo models a geocentric point: latitude/longitude in degrees plus a radius
// in kilometers, with a cached unit vector used by Delta/Azimuth.
type Geo struct {
	LatDeg   float64
	LonDeg   float64
	RadiusKM float64

	unit [3]float64
}

// NewGeoFromGeographic constructs a Geo from geographic coordinates.
func NewGeoFromGeographic(latDeg, lonDeg, radiusKM float64) Geo {
	g := Geo{LatDeg: latDeg, LonDeg: lonDeg, RadiusKM: radiusKM}
	g.unit = unitVector(latDeg, lonDeg)
	return g
}

// NewGeoFromCartesian constructs a Geo from a Cartesian (x, y, z) triple in
// kilometers, recovering the geographic representation.
func NewGeoFromCartesian(x, y, z float64) Geo {
	radius := math.Sqrt(x*x + y*y + z*z)
	var lat, lon float64
	if radius > 0 {
		lat = math.Asin(z/radius) * rad2deg
		lon = math.Atan2(y, x) * rad2deg
	}
	g := Geo{LatDeg: lat, LonDeg: lon, RadiusKM: radius}
	g.unit = unitVector(lat, lon)
	return g
}

func unitVector(latDeg, lonDeg float64) [3]float64 {
	lat := latDeg * deg2rad
	lon := lonDeg * deg2rad
	cosLat := math.Cos(lat)
	return [3]float64{
		cosLat * math.Cos(lon),
		cosLat * math.Sin(lon),
		math.Sin(lat),
	}
}

// Delta returns the great-circle angular separation, in radians, between g
// and other.
func (g Geo) Delta(other Geo) float64 {
	dot := g.unit[0]*other.unit[0] + g.unit[1]*other.unit[1] + g.unit[2]*other.unit[2]
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return math.Acos(dot)
}

// Azimuth returns the bearing, in radians measured clockwise from north,
// from g to other along the great circle connecting them.
func (g Geo) Azimuth(other Geo) float64 {
	lat1 := g.LatDeg * deg2rad
	lat2 := other.LatDeg * deg2rad
	dLon := (other.LonDeg - g.LonDeg) * deg2rad

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	az := math.Atan2(y, x)
	if az < 0 {
		az += 2 * math.Pi
	}
	return az
}
