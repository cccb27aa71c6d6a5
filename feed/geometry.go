package feed

import (
	"io"
	"log"

	geojson "github.com/paulmach/go.geojson"

	"transitcore/model"
)

// parseGeometry reads the optional map.geojson file: a FeatureCollection
// whose features carry a "route_id" property and a LineString geometry.
// Absence of the file is handled by the caller, which logs it and never
// calls this function; a parse failure returns a GeometryUnavailableError,
// which the caller logs before continuing without geometry. Either way
// the load goes on, and the Position Interpolator falls back to
// straight-line interpolation between the two stops.
func parseGeometry(data io.Reader) (map[string]model.LineGeometry, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, &GeometryUnavailableError{Reason: err.Error()}
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, &GeometryUnavailableError{Reason: err.Error()}
	}

	out := map[string]model.LineGeometry{}
	for _, feature := range fc.Features {
		routeID, ok := feature.Properties["route_id"]
		if !ok {
			continue
		}
		routeIDStr, ok := routeID.(string)
		if !ok || routeIDStr == "" {
			continue
		}
		if feature.Geometry == nil || !feature.Geometry.IsLineString() {
			log.Printf("feed: map.geojson feature for route %q is not a LineString, skipping", routeIDStr)
			continue
		}

		verts := make([][2]float64, 0, len(feature.Geometry.LineString))
		for _, p := range feature.Geometry.LineString {
			if len(p) < 2 {
				continue
			}
			verts = append(verts, [2]float64{p[0], p[1]})
		}
		if len(verts) < 2 {
			log.Printf("feed: map.geojson feature for route %q has fewer than 2 vertices, skipping", routeIDStr)
			continue
		}

		if _, dup := out[routeIDStr]; dup {
			log.Printf("feed: map.geojson has more than one feature for route %q, keeping the first", routeIDStr)
			continue
		}

		out[routeIDStr] = model.LineGeometry{
			RouteID:  routeIDStr,
			Vertices: verts,
		}
	}

	return out, nil
}
