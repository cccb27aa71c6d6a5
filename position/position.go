// Package position projects a resolver.State onto a lat/lon coordinate
// and compass bearing, using a route's line geometry when available
// and falling back to straight-line interpolation between the two
// stops otherwise.
package position

import (
	"math"

	"transitcore/catalog"
	"transitcore/model"
	"transitcore/resolver"
)

const earthRadiusMeters = 6371000.0

// Fix is a vehicle's estimated position at the instant a
// resolver.State was computed for.
type Fix struct {
	Lat     float64
	Lon     float64
	Bearing float64
}

// Of projects state onto a coordinate. For a Dwelling trip the fix is
// simply the stop's coordinates with no meaningful bearing (0). For a
// Move, it walks the route's LineGeometry (if one was loaded) by
// projecting both stops onto the polyline and interpolating
// arc-length between those two projections; with no geometry, it
// falls back to linear interpolation directly between the two stops.
func Of(cat *catalog.Catalog, state resolver.State) (Fix, bool) {
	switch state.Phase {
	case resolver.Dwell:
		stop, ok := cat.Stop(state.AtStop)
		if !ok {
			return Fix{}, false
		}
		return Fix{Lat: stop.Lat, Lon: stop.Lon}, true

	case resolver.Move:
		from, ok := cat.Stop(state.FromStop)
		if !ok {
			return Fix{}, false
		}
		to, ok := cat.Stop(state.ToStop)
		if !ok {
			return Fix{}, false
		}

		geometry, hasGeometry := cat.GeometryForRoute(state.RouteID)
		if !hasGeometry || len(geometry.Vertices) < 2 {
			lat, lon := interpolateLinear(from.Lat, from.Lon, to.Lat, to.Lon, state.Progress)
			return Fix{Lat: lat, Lon: lon, Bearing: Bearing(from.Lat, from.Lon, to.Lat, to.Lon)}, true
		}

		return interpolateAlongGeometry(geometry, from, to, state.Progress), true
	}

	return Fix{}, false
}

// interpolateAlongGeometry projects the two stops onto their nearest
// vertices on the polyline, then walks the arc-length between those
// two vertices by progress, falling back to a straight line between
// the stops if the projected vertices land in the wrong order (a
// self-intersecting or out-of-order geometry, a known data quality
// edge case).
func interpolateAlongGeometry(geometry model.LineGeometry, from, to model.Stop, progress float64) Fix {
	fromIdx := FindClosestPointIndex(geometry.Vertices, [2]float64{from.Lon, from.Lat})
	toIdx := FindClosestPointIndex(geometry.Vertices, [2]float64{to.Lon, to.Lat})

	if fromIdx >= toIdx {
		lat, lon := interpolateLinear(from.Lat, from.Lon, to.Lat, to.Lon, progress)
		return Fix{Lat: lat, Lon: lon, Bearing: Bearing(from.Lat, from.Lon, to.Lat, to.Lon)}
	}

	segment := geometry.Vertices[fromIdx : toIdx+1]
	totalLength := CalculateLineLength(segment)
	if totalLength <= 0 {
		lat, lon := interpolateLinear(from.Lat, from.Lon, to.Lat, to.Lon, progress)
		return Fix{Lat: lat, Lon: lon, Bearing: Bearing(from.Lat, from.Lon, to.Lat, to.Lon)}
	}

	targetLength := totalLength * clamp(progress, 0, 1)

	var traveled float64
	for i := 1; i < len(segment); i++ {
		prev, next := segment[i-1], segment[i]
		legLength := Haversine(prev[1], prev[0], next[1], next[0])

		if traveled+legLength >= targetLength || i == len(segment)-1 {
			var fraction float64
			if legLength > 0 {
				fraction = (targetLength - traveled) / legLength
			}
			fraction = clamp(fraction, 0, 1)

			point := Interpolate(prev, next, fraction)
			return Fix{
				Lat:     point[1],
				Lon:     point[0],
				Bearing: Bearing(prev[1], prev[0], next[1], next[0]),
			}
		}

		traveled += legLength
	}

	last := segment[len(segment)-1]
	return Fix{Lat: last[1], Lon: last[0]}
}

func interpolateLinear(lat1, lon1, lat2, lon2, fraction float64) (float64, float64) {
	fraction = clamp(fraction, 0, 1)
	return lat1 + (lat2-lat1)*fraction, lon1 + (lon2-lon1)*fraction
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Bearing returns the forward azimuth from point 1 to point 2, in
// degrees, 0-360.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	x := math.Sin(deltaLambda) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	bearing := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// Interpolate linearly interpolates between two [lon, lat] points.
func Interpolate(start, end [2]float64, fraction float64) [2]float64 {
	return [2]float64{
		start[0] + (end[0]-start[0])*fraction,
		start[1] + (end[1]-start[1])*fraction,
	}
}

// FindClosestPointIndex returns the index of the vertex nearest
// target, a [lon, lat] pair.
func FindClosestPointIndex(coords [][2]float64, target [2]float64) int {
	minDist := math.MaxFloat64
	minIdx := 0

	for i, coord := range coords {
		dist := Haversine(coord[1], coord[0], target[1], target[0])
		if dist < minDist {
			minDist = dist
			minIdx = i
		}
	}

	return minIdx
}

// CalculateLineLength returns the total length of a polyline in meters.
func CalculateLineLength(coords [][2]float64) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += Haversine(coords[i-1][1], coords[i-1][0], coords[i][1], coords[i][0])
	}
	return total
}
