package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitcore/catalog"
	"transitcore/feed"
	"transitcore/testutil"
)

func loadCatalog(t *testing.T, files map[string][]string, store catalog.Store) *catalog.Catalog {
	dir := testutil.BuildFeedDir(t, files)
	result, err := feed.Load(dir)
	require.NoError(t, err)

	cat, err := catalog.Build(result, store)
	require.NoError(t, err)
	return cat
}

func TestMasterStopGroupingStationWithChildren(t *testing.T) {
	files := map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"STATION,Central Station,40.0,0.0,1,",
			"PLAT1,Platform 1,40.0001,0.0001,0,STATION",
			"PLAT2,Platform 2,40.0002,0.0002,0,STATION",
			"STANDALONE,Corner Stop,41.0,1.0,0,",
		},
	}

	cat := loadCatalog(t, files, catalog.NewMemoryStore())

	master, found := cat.MasterStop("STATION")
	require.True(t, found)
	assert.ElementsMatch(t, []string{"STATION", "PLAT1", "PLAT2"}, master.Children)

	platMaster, found := cat.MasterOf("PLAT1")
	require.True(t, found)
	assert.Equal(t, "STATION", platMaster)

	standaloneMaster, found := cat.MasterOf("STANDALONE")
	require.True(t, found)
	assert.Equal(t, "STANDALONE", standaloneMaster)
}

func TestMasterStopGroupingExcludesInvalidStops(t *testing.T) {
	files := map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"BAD,Bad Coords,nope,nope,0,",
		},
	}

	cat := loadCatalog(t, files, catalog.NewMemoryStore())

	_, found := cat.MasterOf("BAD")
	assert.False(t, found)
}

func TestSQLiteStoreMatchesMemoryStoreSemantics(t *testing.T) {
	files := map[string][]string{
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
	}

	store, err := catalog.NewSQLiteStore()
	require.NoError(t, err)
	defer store.Close()

	cat := loadCatalog(t, files, store)

	trip, found := cat.Trip("T1")
	require.True(t, found)
	assert.Len(t, trip.StopTimes, 2)
	assert.Equal(t, "S1", trip.StopTimes[0].StopID)

	events := cat.EventsAtStop("S1")
	require.Len(t, events, 1)
	assert.Equal(t, "R1", events[0].RouteID)
}
