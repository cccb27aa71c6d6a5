// Package transfer precomputes walking connections between nearby
// master stops, so the planner can offer a walk leg between two stops
// that share no trip but are close enough to cover on foot.
package transfer

import (
	"math"

	"github.com/tidwall/rtree"

	"transitcore/model"
)

const (
	earthRadiusMeters = 6371000.0
	defaultMaxWalkMeters = 500.0
	defaultWalkSpeedMPS  = 1.4
)

// Edge is one directed walking connection between two master stops.
type Edge struct {
	ToMasterID string
	Seconds    int
}

// Index answers "which master stops can I walk to from here, and how
// long does it take" queries. It is built once per loaded feed and
// never mutated afterward.
type Index struct {
	edges         map[string][]Edge
	maxWalkMeters float64
	walkSpeedMPS  float64
}

// Build indexes every master stop's neighbors within maxWalkMeters,
// using an R-tree over stop coordinates so the search is
// O(n log n) instead of the O(n^2) all-pairs comparison a brute-force
// approach would need.
func Build(masters []model.MasterStop, maxWalkMeters, walkSpeedMPS float64) *Index {
	if maxWalkMeters <= 0 {
		maxWalkMeters = defaultMaxWalkMeters
	}
	if walkSpeedMPS <= 0 {
		walkSpeedMPS = defaultWalkSpeedMPS
	}

	var tree rtree.RTree
	byID := make(map[string]model.MasterStop, len(masters))
	for _, m := range masters {
		point := [2]float64{m.Lon, m.Lat}
		tree.Insert(point, point, m.ID)
		byID[m.ID] = m
	}

	// One degree of latitude is always ~111km; one degree of
	// longitude shrinks with cos(lat), so widen the box's longitude
	// half-width by 1/cos of the origin stop's latitude (cos floored
	// at 0.01).
	degreesLatPerMeter := 1.0 / 111320.0

	edges := map[string][]Edge{}
	for _, from := range masters {
		lonSlack := maxWalkMeters * degreesLatPerMeter / math.Max(math.Cos(from.Lat*math.Pi/180), 0.01)
		latSlack := maxWalkMeters * degreesLatPerMeter

		min := [2]float64{from.Lon - lonSlack, from.Lat - latSlack}
		max := [2]float64{from.Lon + lonSlack, from.Lat + latSlack}

		tree.Search(min, max, func(_, _ [2]float64, value interface{}) bool {
			toID, ok := value.(string)
			if !ok || toID == from.ID {
				return true
			}

			to, found := byID[toID]
			if !found {
				return true
			}

			meters := haversineMeters(from.Lat, from.Lon, to.Lat, to.Lon)
			if meters > maxWalkMeters {
				return true
			}

			edges[from.ID] = append(edges[from.ID], Edge{
				ToMasterID: toID,
				Seconds:    int(math.Ceil(meters / walkSpeedMPS)),
			})
			return true
		})
	}

	return &Index{edges: edges, maxWalkMeters: maxWalkMeters, walkSpeedMPS: walkSpeedMPS}
}

// Neighbors returns every master stop within walking distance of
// masterID, each tagged with the one-way walk time in seconds.
func (idx *Index) Neighbors(masterID string) []Edge {
	return idx.edges[masterID]
}

// haversineMeters returns the great-circle distance between two
// lat/lon points in meters.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
