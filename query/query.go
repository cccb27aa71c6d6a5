// Package query answers the two read-only lookups that don't involve
// pathfinding: what departs a stop soon, and which stops match a
// typed-in name prefix.
package query

import (
	"sort"
	"strings"

	"transitcore/catalog"
	"transitcore/model"
	"transitcore/service"
)

// Departure is one enriched upcoming event at a master stop.
type Departure struct {
	TripID          string
	RouteID         string
	RouteShortName  string
	RouteColor      string
	RouteTextColor  string
	DestinationName string
	StopID          string // the specific child stop the event is at
	Departure       int
}

// UpcomingDepartures unions the events at every child of masterID
// (or the stop itself, if it has no children), keeps only trips whose
// service is active on date with departure >= t, sorts ascending by
// departure time, and returns at most limit results.
func UpcomingDepartures(cat *catalog.Catalog, cal *service.Calendar, masterID string, t int, date string, limit int) []Departure {
	if limit <= 0 {
		limit = 5
	}

	children := cat.ChildrenOfMaster(masterID)
	if len(children) == 0 {
		children = []string{masterID}
	}

	activeServices := cal.ActiveServices(date)

	var out []Departure
	for _, childID := range children {
		for _, e := range cat.EventsAtStop(childID) {
			if e.Departure < t {
				continue
			}
			trip, found := cat.Trip(e.TripID)
			if !found || !activeServices[trip.ServiceID] {
				continue
			}

			route, _ := cat.Route(e.RouteID)
			destination := destinationStopName(cat, trip)

			out = append(out, Departure{
				TripID:          e.TripID,
				RouteID:         e.RouteID,
				RouteShortName:  route.ShortName,
				RouteColor:      route.Color,
				RouteTextColor:  route.TextColor,
				DestinationName: destination,
				StopID:          childID,
				Departure:       e.Departure,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Departure < out[j].Departure })

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func destinationStopName(cat *catalog.Catalog, trip model.Trip) string {
	if len(trip.StopTimes) == 0 {
		return ""
	}
	last := trip.StopTimes[len(trip.StopTimes)-1]
	stop, found := cat.Stop(last.StopID)
	if !found {
		return ""
	}
	return stop.Name
}

// SearchStopsByNamePrefix returns up to limit master stops whose name
// begins with query, case-insensitively, ordered alphabetically.
func SearchStopsByNamePrefix(cat *catalog.Catalog, q string, limit int) []model.MasterStop {
	if limit <= 0 {
		limit = 10
	}

	masters := cat.MasterStops()
	sort.Slice(masters, func(i, j int) bool {
		return strings.ToLower(masters[i].Name) < strings.ToLower(masters[j].Name)
	})

	names := make([]string, len(masters))
	for i, m := range masters {
		names[i] = strings.ToLower(m.Name)
	}

	needle := strings.ToLower(q)
	start := sort.SearchStrings(names, needle)

	var out []model.MasterStop
	for i := start; i < len(masters) && len(out) < limit; i++ {
		if !strings.HasPrefix(names[i], needle) {
			break
		}
		out = append(out, masters[i])
	}
	return out
}
