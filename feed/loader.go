// Package feed loads a GTFS static feed from a directory of plain text
// files (and an optional map.geojson) into the in-memory model types
// consumed by the catalog package.
package feed

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"transitcore/model"
)

func newReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

func init() {
	// LazyCSVReader tolerates agencies that quote sloppily; the BOM
	// reader strips a leading unicode BOM if Excel put one there.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})
}

// Result is everything the Feed Loader extracts from a data directory.
type Result struct {
	Routes     map[string]model.Route
	Stops      map[string]model.Stop
	Trips      map[string]model.Trip
	Rules      map[string]model.CalendarRule
	Exceptions []model.CalendarException
	Geometry   map[string]model.LineGeometry // nil if map.geojson was absent or malformed
}

var requiredFiles = []string{
	"routes.txt",
	"stops.txt",
	"trips.txt",
	"stop_times.txt",
}

// fileRead is one file's raw bytes (or the error from trying to read it),
// passed back over a channel by the fan-out in Load.
type fileRead struct {
	name string
	data []byte
	err  error
}

// Load reads routes.txt, stops.txt, trips.txt, stop_times.txt,
// calendar.txt, calendar_dates.txt and the optional map.geojson from
// dir, in parallel, then parses them in the dependency order each
// table requires (routes and stops before trips, calendar before
// trips, trips and stops before stop_times).
//
// calendar.txt and calendar_dates.txt are individually optional, but at
// least one of the two must be present or no service could ever be
// active. map.geojson is always optional; its absence only disables
// the Position Interpolator's line-geometry projection.
func Load(dir string) (*Result, error) {
	names := append([]string{}, requiredFiles...)
	names = append(names, "calendar.txt", "calendar_dates.txt", "map.geojson")

	reads := make(chan fileRead, len(names))
	for _, name := range names {
		go func(name string) {
			data, err := os.ReadFile(filepath.Join(dir, name))
			reads <- fileRead{name: name, data: data, err: err}
		}(name)
	}

	files := make(map[string][]byte, len(names))
	for range names {
		r := <-reads
		if r.err != nil {
			if !os.IsNotExist(r.err) {
				return nil, &FeedMalformedError{File: r.name, Reason: r.err.Error()}
			}
			continue
		}
		files[r.name] = r.data
	}

	for _, name := range requiredFiles {
		if _, found := files[name]; !found {
			return nil, &FeedMissingError{File: name}
		}
	}
	if _, hasCal := files["calendar.txt"]; !hasCal {
		if _, hasDates := files["calendar_dates.txt"]; !hasDates {
			return nil, &FeedMissingError{File: "calendar.txt or calendar_dates.txt"}
		}
	}

	routes, err := parseRoutes(newReader(files["routes.txt"]))
	if err != nil {
		return nil, err
	}

	stops, err := parseStops(newReader(files["stops.txt"]))
	if err != nil {
		return nil, err
	}

	rules := map[string]model.CalendarRule{}
	if data, found := files["calendar.txt"]; found {
		rules, err = parseCalendar(newReader(data))
		if err != nil {
			return nil, err
		}
	}

	var exceptions []model.CalendarException
	if data, found := files["calendar_dates.txt"]; found {
		exceptions, err = parseCalendarDates(newReader(data))
		if err != nil {
			return nil, err
		}
	}

	services := knownServiceIDs(rules, exceptions)

	trips, err := parseTrips(newReader(files["trips.txt"]), routes, services)
	if err != nil {
		return nil, err
	}

	trips, err = parseStopTimes(newReader(files["stop_times.txt"]), trips, stops)
	if err != nil {
		return nil, err
	}

	var geometry map[string]model.LineGeometry
	if data, found := files["map.geojson"]; found {
		geometry, err = parseGeometry(newReader(data))
		if err != nil {
			log.Printf("feed: map.geojson present but unusable: %s", err)
			geometry = nil
		}
	} else {
		log.Printf("feed: map.geojson not found, positions will use straight-line interpolation between stops")
	}

	return &Result{
		Routes:     routes,
		Stops:      stops,
		Trips:      trips,
		Rules:      rules,
		Exceptions: exceptions,
		Geometry:   geometry,
	}, nil
}
