package feed

import (
	"io"
	"log"

	"github.com/gocarina/gocsv"

	"transitcore/model"
)

type stopCSV struct {
	ID            string `csv:"stop_id"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	LocationType  string `csv:"location_type"`
	ParentStation string `csv:"parent_station"`
}

// parseStops parses stops.txt. Unlike the other tables, a row with a
// non-numeric stop_lat/stop_lon does not fail the whole load: per
// spec.md §7's InvalidCoordinate handling, the stop is kept (so
// stop_times referencing it still resolve) but flagged Invalid so the
// Catalog excludes it from master-stop grouping and the Transfer Index.
func parseStops(data io.Reader) (map[string]model.Stop, error) {
	rows := []*stopCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "stops.txt", Reason: err.Error()}
	}

	stops := map[string]model.Stop{}
	for _, s := range rows {
		if s.ID == "" {
			return nil, &FeedMalformedError{File: "stops.txt", Reason: "empty stop_id"}
		}
		if _, dup := stops[s.ID]; dup {
			return nil, &FeedMalformedError{File: "stops.txt", Reason: "repeated stop_id: " + s.ID}
		}

		locationType := model.LocationTypeStop
		if s.LocationType != "" {
			switch s.LocationType {
			case "0":
				locationType = model.LocationTypeStop
			case "1":
				locationType = model.LocationTypeStation
			case "2":
				locationType = model.LocationTypeEntranceExit
			case "3":
				locationType = model.LocationTypeGenericNode
			case "4":
				locationType = model.LocationTypeBoardingArea
			default:
				return nil, &FeedMalformedError{File: "stops.txt", Reason: "invalid location_type for stop_id '" + s.ID + "'"}
			}
		}

		lat, latErr := parseCoordinate(s.Lat)
		lon, lonErr := parseCoordinate(s.Lon)
		invalid := latErr != nil || lonErr != nil
		if invalid {
			log.Printf("feed: stop %q has non-numeric coordinates, dropping from master-stop grouping", s.ID)
		}

		stops[s.ID] = model.Stop{
			ID:            s.ID,
			Name:          s.Name,
			Lat:           lat,
			Lon:           lon,
			ParentStation: s.ParentStation,
			LocationType:  locationType,
			Invalid:       invalid,
		}
	}

	for id, stop := range stops {
		if stop.ParentStation == "" {
			continue
		}
		if _, found := stops[stop.ParentStation]; !found {
			return nil, &FeedMalformedError{File: "stops.txt", Reason: "stop '" + id + "' references unknown parent_station '" + stop.ParentStation + "'"}
		}
	}

	return stops, nil
}

func parseCoordinate(s string) (float64, error) {
	return parseFloatStrict(s)
}
