package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcore/catalog"
	"transitcore/feed"
	"transitcore/position"
	"transitcore/resolver"
	"transitcore/testutil"
)

func buildCatalog(t *testing.T) *catalog.Catalog {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0000,0.0000,0,",
			"S2,Second St,40.0100,0.0000,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,S1,1,08:00:00,08:00:00",
			"T1,S2,2,08:10:00,08:10:00",
		},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	cat, err := catalog.Build(result, catalog.NewMemoryStore())
	require.NoError(t, err)
	return cat
}

func TestOfDwellReturnsStopCoordinates(t *testing.T) {
	cat := buildCatalog(t)

	fix, ok := position.Of(cat, resolver.State{Phase: resolver.Dwell, AtStop: "S1"})
	require.True(t, ok)
	assert.Equal(t, 40.0, fix.Lat)
	assert.Equal(t, 0.0, fix.Lon)
}

func TestOfMoveWithoutGeometryFallsBackToLinear(t *testing.T) {
	cat := buildCatalog(t)

	fix, ok := position.Of(cat, resolver.State{
		Phase:    resolver.Move,
		RouteID:  "R1",
		FromStop: "S1",
		ToStop:   "S2",
		Progress: 0.5,
	})
	require.True(t, ok)
	assert.InDelta(t, 40.005, fix.Lat, 0.0001)
	assert.InDelta(t, 0.0, fix.Lon, 0.0001)
	assert.InDelta(t, 0.0, fix.Bearing, 0.1) // due north
}

func buildCatalogWithGeometry(t *testing.T) *catalog.Catalog {
	geometry := testutil.GeoJSONLineFeature("R1", [][2]float64{
		{0.0, 40.0},    // at S1
		{0.005, 40.01}, // detour east, off the S1->S2 meridian
		{0.0, 40.02},   // at S2
	})

	dir := testutil.BuildFeedDir(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0000,0.0000,0,",
			"S2,Second St,40.0200,0.0000,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,S1,1,08:00:00,08:00:00",
			"T1,S2,2,08:10:00,08:10:00",
		},
		"map.geojson": {geometry},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	cat, err := catalog.Build(result, catalog.NewMemoryStore())
	require.NoError(t, err)
	return cat
}

func TestOfMoveWithGeometryWalksPolylineArcLength(t *testing.T) {
	cat := buildCatalogWithGeometry(t)

	fix, ok := position.Of(cat, resolver.State{
		Phase:    resolver.Move,
		RouteID:  "R1",
		FromStop: "S1",
		ToStop:   "S2",
		Progress: 0.5,
	})
	require.True(t, ok)

	// The route detours east through (40.01, 0.005) instead of running
	// straight up the S1->S2 meridian. Walking the polyline by arc
	// length should land the midpoint near that detour vertex, not at
	// the straight-line midpoint (40.01, 0.0) the linear fallback would
	// produce.
	assert.InDelta(t, 40.01, fix.Lat, 0.001)
	assert.Greater(t, fix.Lon, 0.003)
}

func TestBearingDueNorth(t *testing.T) {
	b := position.Bearing(40.0, 0.0, 41.0, 0.0)
	assert.InDelta(t, 0.0, b, 0.01)
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is ~111.2km.
	d := position.Haversine(40.0, 0.0, 41.0, 0.0)
	assert.InDelta(t, 111195, d, 1000)
}
