package catalog

import (
	"sort"

	"transitcore/model"
)

// MemoryStore is the default Store: plain Go maps, no serialization,
// no locking (a Catalog is built once and read thereafter).
type MemoryStore struct {
	routes map[string]model.Route
	stops  map[string]model.Stop
	trips  map[string]model.Trip

	eventsByStop map[string][]StopEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		routes:       map[string]model.Route{},
		stops:        map[string]model.Stop{},
		trips:        map[string]model.Trip{},
		eventsByStop: map[string][]StopEvent{},
	}
}

func (s *MemoryStore) PutRoute(r model.Route) error {
	s.routes[r.ID] = r
	return nil
}

func (s *MemoryStore) PutStop(st model.Stop) error {
	s.stops[st.ID] = st
	return nil
}

func (s *MemoryStore) PutTrip(t model.Trip) error {
	s.trips[t.ID] = t
	for _, st := range t.StopTimes {
		s.eventsByStop[st.StopID] = append(s.eventsByStop[st.StopID], StopEvent{
			TripID:       t.ID,
			RouteID:      t.RouteID,
			StopSequence: st.StopSequence,
			Arrival:      st.Arrival,
			Departure:    st.Departure,
			Headsign:     t.Headsign,
		})
	}
	return nil
}

func (s *MemoryStore) Route(id string) (model.Route, bool) {
	r, ok := s.routes[id]
	return r, ok
}

func (s *MemoryStore) Stop(id string) (model.Stop, bool) {
	st, ok := s.stops[id]
	return st, ok
}

func (s *MemoryStore) Trip(id string) (model.Trip, bool) {
	t, ok := s.trips[id]
	return t, ok
}

func (s *MemoryStore) StopTimesOfTrip(tripID string) []model.StopTime {
	t, ok := s.trips[tripID]
	if !ok {
		return nil
	}
	return t.StopTimes
}

func (s *MemoryStore) EventsAtStop(stopID string) []StopEvent {
	events := s.eventsByStop[stopID]
	sorted := make([]StopEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Departure < sorted[j].Departure
	})
	return sorted
}

func (s *MemoryStore) AllStops() []model.Stop {
	out := make([]model.Stop, 0, len(s.stops))
	for _, st := range s.stops {
		out = append(out, st)
	}
	return out
}

func (s *MemoryStore) AllTrips() []model.Trip {
	out := make([]model.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		out = append(out, t)
	}
	return out
}
