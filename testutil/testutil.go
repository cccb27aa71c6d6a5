// Package testutil builds throwaway GTFS data directories for tests:
// fill in only the rows a test cares about, and get sane defaults for
// everything else the Feed Loader requires.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildFeedDir writes files (each value a slice of CSV lines, header
// first) into a fresh temp directory and fills in any of the four
// required tables a test didn't supply with minimal valid defaults,
// so a test only needs to specify the rows it's actually exercising.
func BuildFeedDir(t testing.TB, files map[string][]string) string {
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id,route_short_name,route_long_name,route_type"}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id,route_id,service_id,trip_headsign"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,stop_id,stop_sequence,arrival_time,departure_time"}
	}
	if files["calendar.txt"] == nil && files["calendar_dates.txt"] == nil {
		files["calendar.txt"] = []string{
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"everyday,1,1,1,1,1,1,1,20200101,20301231",
		}
	}

	dir := t.TempDir()
	for name, lines := range files {
		path := filepath.Join(dir, name)
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

// GeoJSONLineFeature builds a minimal map.geojson FeatureCollection
// body carrying one LineString feature for routeID, vertices in
// (lon, lat) order. Assign the result to files["map.geojson"] in
// BuildFeedDir to drive tests that need real route geometry, rather
// than the degenerate no-geometry fallback.
func GeoJSONLineFeature(routeID string, vertices [][2]float64) string {
	coords := make([]string, len(vertices))
	for i, v := range vertices {
		coords[i] = fmt.Sprintf("[%g,%g]", v[0], v[1])
	}
	return fmt.Sprintf(
		`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"route_id":%q},"geometry":{"type":"LineString","coordinates":[%s]}}]}`,
		routeID, strings.Join(coords, ","),
	)
}
