package feed

import (
	"io"

	"github.com/gocarina/gocsv"

	"transitcore/model"
)

type tripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

// parseTrips returns trips keyed by ID, with an empty StopTimes slice —
// parseStopTimes fills that in afterwards. knownServices is the union of
// service IDs seen in calendar.txt and calendar_dates.txt.
func parseTrips(data io.Reader, routes map[string]model.Route, knownServices map[string]bool) (map[string]model.Trip, error) {
	rows := []*tripCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "trips.txt", Reason: err.Error()}
	}

	trips := map[string]model.Trip{}
	for _, t := range rows {
		if t.ID == "" {
			return nil, &FeedMalformedError{File: "trips.txt", Reason: "empty trip_id"}
		}
		if _, dup := trips[t.ID]; dup {
			return nil, &FeedMalformedError{File: "trips.txt", Reason: "repeated trip_id: " + t.ID}
		}
		if t.RouteID == "" {
			return nil, &FeedMalformedError{File: "trips.txt", Reason: "empty route_id for trip_id '" + t.ID + "'"}
		}
		if _, found := routes[t.RouteID]; !found {
			return nil, &FeedMalformedError{File: "trips.txt", Reason: "unknown route_id '" + t.RouteID + "' for trip_id '" + t.ID + "'"}
		}
		if !knownServices[t.ServiceID] {
			return nil, &FeedMalformedError{File: "trips.txt", Reason: "unknown service_id '" + t.ServiceID + "' for trip_id '" + t.ID + "'"}
		}

		trips[t.ID] = model.Trip{
			ID:        t.ID,
			RouteID:   t.RouteID,
			ServiceID: t.ServiceID,
			Headsign:  t.Headsign,
		}
	}

	return trips, nil
}
