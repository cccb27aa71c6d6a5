// Package catalog indexes a loaded feed.Result for the lookups every
// other layer needs: routes and stops by ID, a trip's stop_times in
// order, the events recorded at a stop, and the master-stop grouping
// that collapses a station and its platforms into one addressable
// place.
package catalog

import "transitcore/model"

// Store is the storage backend a Catalog is built on. MemoryStore is
// the default; SQLiteStore trades lookup latency for exercising
// mattn/go-sqlite3's query planner, kept entirely in-memory.
type Store interface {
	PutRoute(model.Route) error
	PutStop(model.Stop) error
	PutTrip(model.Trip) error

	Route(id string) (model.Route, bool)
	Stop(id string) (model.Stop, bool)
	Trip(id string) (model.Trip, bool)
	StopTimesOfTrip(tripID string) []model.StopTime
	EventsAtStop(stopID string) []StopEvent
	AllStops() []model.Stop
	AllTrips() []model.Trip
}

// StopEvent is one scheduled arrival/departure at a stop, with enough
// of the owning trip denormalized that query.UpcomingDepartures doesn't
// need a second lookup per event.
type StopEvent struct {
	TripID       string
	RouteID      string
	StopSequence uint32
	Arrival      int
	Departure    int
	Headsign     string
}
