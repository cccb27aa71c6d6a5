package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcore/catalog"
	"transitcore/feed"
	"transitcore/query"
	"transitcore/service"
	"transitcore/testutil"
)

func buildEnv(t *testing.T) (*catalog.Catalog, *service.Calendar) {
	dir := testutil.BuildFeedDir(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type,route_color",
			"R1,1,Downtown Loop,3,FF0000",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"STATION,Central Station,40.0,0.0,1,",
			"PLAT1,Platform 1,40.0001,0.0001,0,STATION",
			"PLAT2,Platform 2,40.0002,0.0002,0,STATION",
			"S2,Second St,40.01,0.0,0,",
		},
		"trips.txt": {
			"trip_id,route_id,service_id,trip_headsign",
			"T1,R1,everyday,Downtown",
			"T2,R1,everyday,Uptown",
		},
		"stop_times.txt": {
			"trip_id,stop_id,stop_sequence,arrival_time,departure_time",
			"T1,PLAT1,1,08:00:00,08:00:00",
			"T1,S2,2,08:10:00,08:10:00",
			"T2,PLAT2,1,08:05:00,08:05:00",
			"T2,S2,2,08:15:00,08:15:00",
		},
	})

	result, err := feed.Load(dir)
	require.NoError(t, err)

	cat, err := catalog.Build(result, catalog.NewMemoryStore())
	require.NoError(t, err)

	cal := service.NewCalendar(result.Rules, result.Exceptions)
	return cat, cal
}

func TestUpcomingDeparturesUnionsChildPlatforms(t *testing.T) {
	cat, cal := buildEnv(t)

	departures := query.UpcomingDepartures(cat, cal, "STATION", 0, "20260301", 5)
	require.Len(t, departures, 2)
	assert.Equal(t, "T1", departures[0].TripID)
	assert.Equal(t, "T2", departures[1].TripID)
	assert.Equal(t, "Second St", departures[0].DestinationName)
	assert.Equal(t, "1", departures[0].RouteShortName)
}

func TestUpcomingDeparturesFiltersByTime(t *testing.T) {
	cat, cal := buildEnv(t)

	departures := query.UpcomingDepartures(cat, cal, "STATION", 29100, "20260301", 5) // at/after 08:05:00
	require.Len(t, departures, 1)
	assert.Equal(t, "T2", departures[0].TripID)
}

func TestUpcomingDeparturesRespectsLimit(t *testing.T) {
	cat, cal := buildEnv(t)

	departures := query.UpcomingDepartures(cat, cal, "STATION", 0, "20260301", 1)
	assert.Len(t, departures, 1)
}

func TestSearchStopsByNamePrefix(t *testing.T) {
	cat, _ := buildEnv(t)

	results := query.SearchStopsByNamePrefix(cat, "sec", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "S2", results[0].ID)

	assert.Empty(t, query.SearchStopsByNamePrefix(cat, "zzz", 5))
}
