package feed

import (
	"io"
	"log"
	"sort"

	"github.com/gocarina/gocsv"

	"transitcore/model"
)

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

// parseStopTimes parses stop_times.txt, groups rows by trip, sorts each
// trip's rows by stop_sequence, and drops (with a log line, per
// spec.md §7's InconsistentSchedule rule) any trip whose StopTime
// sequence is not monotonic in time. Trips with no stop_times are
// likewise dropped from the returned map of trips.
func parseStopTimes(data io.Reader, trips map[string]model.Trip, stops map[string]model.Stop) (map[string]model.Trip, error) {
	rows := []*stopTimeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, &FeedMalformedError{File: "stop_times.txt", Reason: err.Error()}
	}

	byTrip := map[string][]model.StopTime{}
	seenSeq := map[string]map[uint32]bool{}

	for _, row := range rows {
		if _, found := trips[row.TripID]; !found {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "unknown trip_id: " + row.TripID}
		}
		if row.StopID == "" {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "missing stop_id for trip_id " + row.TripID}
		}
		if _, found := stops[row.StopID]; !found {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "unknown stop_id: " + row.StopID}
		}

		arrival, err := parseServiceTime(row.ArrivalTime)
		if err != nil {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "arrival_time for trip " + row.TripID + ": " + err.Error()}
		}
		departure, err := parseServiceTime(row.DepartureTime)
		if err != nil {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "departure_time for trip " + row.TripID + ": " + err.Error()}
		}
		if departure < arrival {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "departure before arrival for trip " + row.TripID}
		}

		if seenSeq[row.TripID] == nil {
			seenSeq[row.TripID] = map[uint32]bool{}
		}
		if seenSeq[row.TripID][row.StopSequence] {
			return nil, &FeedMalformedError{File: "stop_times.txt", Reason: "duplicate stop_sequence for trip " + row.TripID}
		}
		seenSeq[row.TripID][row.StopSequence] = true

		byTrip[row.TripID] = append(byTrip[row.TripID], model.StopTime{
			StopID:       row.StopID,
			StopSequence: row.StopSequence,
			Arrival:      arrival,
			Departure:    departure,
		})
	}

	out := map[string]model.Trip{}
	for id, trip := range trips {
		sts, found := byTrip[id]
		if !found || len(sts) == 0 {
			log.Printf("feed: trip %q has no stop_times, dropping", id)
			continue
		}

		sort.Slice(sts, func(i, j int) bool {
			return sts[i].StopSequence < sts[j].StopSequence
		})

		if !monotonic(sts) {
			log.Printf("feed: trip %q has a non-monotonic stop_times sequence, dropping", id)
			continue
		}

		trip.StopTimes = sts
		out[id] = trip
	}

	return out, nil
}

// monotonic reports whether successive StopTime events move forward in
// time: each stop's departure is never before its own arrival (already
// checked per-row above), and each stop's arrival is never before the
// previous stop's departure.
func monotonic(sts []model.StopTime) bool {
	for i := 1; i < len(sts); i++ {
		if sts[i].Arrival < sts[i-1].Departure {
			return false
		}
	}
	return true
}
