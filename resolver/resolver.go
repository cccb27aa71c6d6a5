// Package resolver determines what every trip running on a given
// service day is doing at a given instant: sitting at a stop (Dwell)
// or moving between two consecutive stops (Move, with a progress
// fraction).
package resolver

import (
	"transitcore/catalog"
	"transitcore/model"
	"transitcore/service"
)

// Phase distinguishes a trip sitting at a stop from one in transit
// between two stops.
type Phase int

const (
	Dwell Phase = iota
	Move
)

// State is where one trip is at a given instant.
type State struct {
	TripID   string
	RouteID  string
	Phase    Phase
	AtStop   string // set when Phase == Dwell
	FromStop string // set when Phase == Move
	ToStop   string // set when Phase == Move
	Progress float64 // 0..1, meaningful only when Phase == Move
}

// ActiveTrips enumerates every trip whose service runs on date and
// whose StopTime sequence brackets secondsSinceMidnight, returning one
// State per such trip. secondsSinceMidnight may exceed 86400 for
// queries against a service day's post-midnight tail, matching how
// GTFS itself represents times past 24:00:00.
func ActiveTrips(cat *catalog.Catalog, cal *service.Calendar, date string, secondsSinceMidnight int) []State {
	activeServices := cal.ActiveServices(date)

	var out []State
	for _, trip := range cat.AllTrips() {
		if !activeServices[trip.ServiceID] {
			continue
		}
		sts := trip.StopTimes
		if len(sts) == 0 {
			continue
		}

		state, ok := resolveTrip(trip.ID, trip.RouteID, sts, secondsSinceMidnight)
		if ok {
			out = append(out, state)
		}
	}

	return out
}

// resolveTrip finds the segment of sts that brackets t, mirroring the
// dwell/move boundary the Trip Resolver uses everywhere: a trip is
// Dwelling at a stop from that stop's arrival through its departure
// (inclusive both ends so two adjacent legs never both claim "Move"
// across the same dwell instant), and Moving from a stop's departure
// to the next stop's arrival.
func resolveTrip(tripID, routeID string, sts []model.StopTime, t int) (State, bool) {
	if t < sts[0].Arrival || t > sts[len(sts)-1].Departure {
		return State{}, false
	}

	for i, st := range sts {
		if t >= st.Arrival && t <= st.Departure {
			return State{
				TripID:  tripID,
				RouteID: routeID,
				Phase:   Dwell,
				AtStop:  st.StopID,
			}, true
		}

		if i+1 < len(sts) {
			next := sts[i+1]
			if t > st.Departure && t < next.Arrival {
				duration := next.Arrival - st.Departure
				progress := 0.5
				if duration > 0 {
					progress = float64(t-st.Departure) / float64(duration)
				}
				return State{
					TripID:   tripID,
					RouteID:  routeID,
					Phase:    Move,
					FromStop: st.StopID,
					ToStop:   next.StopID,
					Progress: clamp(progress, 0, 1),
				}, true
			}
		}
	}

	return State{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
