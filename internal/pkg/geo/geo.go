package geo

import "math"

// Distance returns the great-circle distance between two coordinates in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	// Haversine
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Geofence is a circular boundary around a reference coordinate.
type Geofence struct {
	Lat          float64
	Lon          float64
	RadiusMeters float64
}

// Contains reports whether the coordinate lies within the fence.
// The boundary itself counts as inside.
func (g Geofence) Contains(lat, lon float64) bool {
	return Distance(lat, lon, g.Lat, g.Lon) <= g.RadiusMeters
}
