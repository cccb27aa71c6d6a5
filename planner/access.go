package planner

import (
	"math"

	"transitcore/catalog"
)

const earthRadiusMeters = 6371000.0

type accessEdge struct {
	masterID  string
	distanceM float64
	seconds   int
}

// accessEdges returns every master stop within maxWalkMeters of point,
// each tagged with the one-way walk time at walkSpeedMPS.
func accessEdges(cat *catalog.Catalog, point LatLon, maxWalkMeters, walkSpeedMPS float64) []accessEdge {
	var out []accessEdge
	for _, m := range cat.MasterStops() {
		d := greatCircleMeters(point.Lat, point.Lon, m.Lat, m.Lon)
		if d > maxWalkMeters {
			continue
		}
		out = append(out, accessEdge{
			masterID:  m.ID,
			distanceM: d,
			seconds:   int(math.Ceil(d / walkSpeedMPS)),
		})
	}
	return out
}

type nearbyMaster struct {
	id        string
	distanceM float64
}

// nearbyMasters returns every master stop within maxWalkMeters of point.
func nearbyMasters(cat *catalog.Catalog, point LatLon, maxWalkMeters float64) []nearbyMaster {
	var out []nearbyMaster
	for _, m := range cat.MasterStops() {
		d := greatCircleMeters(point.Lat, point.Lon, m.Lat, m.Lon)
		if d <= maxWalkMeters {
			out = append(out, nearbyMaster{id: m.ID, distanceM: d})
		}
	}
	return out
}

func greatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
