package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcore/catalog"
	"transitcore/feed"
	"transitcore/planner"
	"transitcore/service"
	"transitcore/testutil"
	"transitcore/transfer"
)

type env struct {
	cat *catalog.Catalog
	cal *service.Calendar
	idx *transfer.Index
}

func buildEnv(t *testing.T, files map[string][]string) env {
	dir := testutil.BuildFeedDir(t, files)
	result, err := feed.Load(dir)
	require.NoError(t, err)

	cat, err := catalog.Build(result, catalog.NewMemoryStore())
	require.NoError(t, err)

	cal := service.NewCalendar(result.Rules, result.Exceptions)
	idx := transfer.Build(cat.MasterStops(), 500, 1.4)

	return env{cat: cat, cal: cal, idx: idx}
}

func oneHopFeed() map[string][]string {
	return map[string][]string{
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
	}
}

func TestFindItineraryOneHopTrip(t *testing.T) {
	e := buildEnv(t, oneHopFeed())

	outcome := planner.FindItinerary(
		e.cat, e.cal, e.idx,
		planner.LatLon{Lat: 40.0000, Lon: 0.0000},
		planner.LatLon{Lat: 40.0100, Lon: 0.0000},
		"20260301", 28800, 500, 1.4,
	)

	require.Equal(t, planner.Ok, outcome.Kind)
	require.NotEmpty(t, outcome.Legs)

	first := outcome.Legs[0]
	require.NotNil(t, first.Walk, "first leg must be an access walk")

	last := outcome.Legs[len(outcome.Legs)-1]
	require.NotNil(t, last.Walk, "last leg must be an egress walk")

	var rode bool
	for _, l := range outcome.Legs {
		if l.Bus != nil {
			rode = true
			assert.Equal(t, "T1", l.Bus.TripID)
		}
	}
	assert.True(t, rode, "itinerary should include the bus leg")
}

func TestFindItineraryNoServiceOnDate(t *testing.T) {
	files := oneHopFeed()
	files["calendar.txt"] = []string{
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"everyday,0,0,0,0,0,0,0,20200101,20301231",
	}
	e := buildEnv(t, files)

	outcome := planner.FindItinerary(
		e.cat, e.cal, e.idx,
		planner.LatLon{Lat: 40.0, Lon: 0.0},
		planner.LatLon{Lat: 40.01, Lon: 0.0},
		"20260301", 28800, 500, 1.4,
	)

	assert.Equal(t, planner.NoService, outcome.Kind)
}

func TestFindItineraryNoStartStops(t *testing.T) {
	e := buildEnv(t, oneHopFeed())

	outcome := planner.FindItinerary(
		e.cat, e.cal, e.idx,
		planner.LatLon{Lat: -10.0, Lon: -10.0}, // far from every stop
		planner.LatLon{Lat: 40.01, Lon: 0.0},
		"20260301", 28800, 500, 1.4,
	)

	assert.Equal(t, planner.NoStartStops, outcome.Kind)
}

func TestFindItineraryNoEndStops(t *testing.T) {
	e := buildEnv(t, oneHopFeed())

	outcome := planner.FindItinerary(
		e.cat, e.cal, e.idx,
		planner.LatLon{Lat: 40.0, Lon: 0.0},
		planner.LatLon{Lat: -10.0, Lon: -10.0},
		"20260301", 28800, 500, 1.4,
	)

	assert.Equal(t, planner.NoEndStops, outcome.Kind)
}

func TestFindItineraryNoPathFoundWhenDisconnected(t *testing.T) {
	files := map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"R1,1,Downtown Loop,3",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"S1,First St,40.0000,0.0000,0,",
			"S2,Second St,40.0100,0.0000,0,",
			// Far away, walkable only from itself — disconnected island.
			"S3,Island St,10.0000,10.0000,0,",
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
	}
	e := buildEnv(t, files)

	outcome := planner.FindItinerary(
		e.cat, e.cal, e.idx,
		planner.LatLon{Lat: 40.0, Lon: 0.0},
		planner.LatLon{Lat: 10.0, Lon: 10.0},
		"20260301", 28800, 500, 1.4,
	)

	assert.Equal(t, planner.NoPathFound, outcome.Kind)
}
