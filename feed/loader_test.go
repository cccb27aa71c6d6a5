package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcore/feed"
	"transitcore/testutil"
)

func TestLoadMinimalFeed(t *testing.T) {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0,0.0,0,",
			"S2,Second St,40.01,0.0,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,S1,1,08:00:00,08:00:00",
			"T1,S2,2,08:05:00,08:05:00",
		},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	assert.Len(t, result.Routes, 1)
	assert.Len(t, result.Stops, 2)
	assert.Len(t, result.Trips, 1)
	assert.Len(t, result.Trips["T1"].StopTimes, 2)
	assert.Nil(t, result.Geometry)
}

func TestLoadParsesMapGeoJSON(t *testing.T) {
	geometry := testutil.GeoJSONLineFeature("R1", [][2]float64{
		{0.0, 40.0},
		{0.005, 40.005},
		{0.0, 40.01},
	})

	dir := testutil.BuildFeedDir(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0,0.0,0,",
			"S2,Second St,40.01,0.0,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,S1,1,08:00:00,08:00:00",
			"T1,S2,2,08:05:00,08:05:00",
		},
		"map.geojson": {geometry},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	require.NotNil(t, result.Geometry)
	g, found := result.Geometry["R1"]
	require.True(t, found)
	require.Len(t, g.Vertices, 3)
	assert.Equal(t, [2]float64{0.005, 40.005}, g.Vertices[1])
}

func TestLoadMissingRequiredFile(t *testing.T) {
	dir := t.TempDir()

	_, err := feed.Load(dir)
	require.Error(t, err)

	var missing *feed.FeedMissingError
	assert.ErrorAs(t, err, &missing)
}

func TestLoadDropsTripWithNonMonotonicStopTimes(t *testing.T) {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0,0.0,0,",
			"S2,Second St,40.01,0.0,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,S1,1,08:10:00,08:10:00",
			"T1,S2,2,08:05:00,08:05:00",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	_, found := result.Trips["T1"]
	assert.False(t, found, "non-monotonic trip should be dropped, not returned")
}

func TestLoadKeepsInvalidCoordinateStop(t *testing.T) {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,Bad Coords,not-a-number,also-bad,0,",
		},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	stop, found := result.Stops["S1"]
	require.True(t, found, "invalid-coordinate stops stay in the result")
	assert.True(t, stop.Invalid)
}
