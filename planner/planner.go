// Package planner finds the earliest-arrival multimodal itinerary
// between two coordinates using Dijkstra over a time-expanded graph
// of master stops, built fresh for every query from the read-only
// Catalog, Calendar and transfer Index.
package planner

import (
	"container/heap"
	"math"

	"transitcore/catalog"
	"transitcore/service"
	"transitcore/transfer"
)

// LatLon is a free-standing coordinate, used for access/egress legs
// that don't begin or end at a stop.
type LatLon struct {
	Lat float64
	Lon float64
}

// Leg is one homogeneous segment of an itinerary: entirely on foot, or
// entirely aboard one trip.
type Leg struct {
	Walk *WalkLeg
	Bus  *BusLeg
}

type WalkLeg struct {
	FromCoords *LatLon
	FromStop   string // master stop ID, empty if FromCoords is set
	ToCoords   *LatLon
	ToStop     string // master stop ID, empty if ToCoords is set
	DistanceM  float64
	StartTime  int
	EndTime    int
}

type BusLeg struct {
	FromStop string // master stop ID
	ToStop   string // master stop ID
	RouteID  string
	TripID   string
	Headsign string

	StartTime int
	EndTime   int
}

func (l Leg) StartTime() int {
	if l.Walk != nil {
		return l.Walk.StartTime
	}
	return l.Bus.StartTime
}

func (l Leg) EndTime() int {
	if l.Walk != nil {
		return l.Walk.EndTime
	}
	return l.Bus.EndTime
}

// Stats summarizes a completed itinerary.
type Stats struct {
	DepartureTime int
	ArrivalTime   int
	TotalSeconds  int
	Transfers     int
}

// OutcomeKind distinguishes why FindItinerary did or didn't produce a path.
type OutcomeKind int

const (
	Ok OutcomeKind = iota
	NoService
	NoStartStops
	NoEndStops
	NoPathFound
)

type Outcome struct {
	Kind  OutcomeKind
	Legs  []Leg
	Stats Stats
}

const (
	sentinelStart = "" // back-link parent stop ID for the synthetic origin
)

// backLink records how a stop's provisional arrival label was produced,
// so the winning path can be reconstructed by walking parents back to
// the sentinel start.
type backLink struct {
	fromStop string
	leg      Leg
}

// FindItinerary runs Dijkstra from every master stop within
// MaxWalkMeters of from, terminating the instant it dequeues a master
// stop within MaxWalkMeters of to.
func FindItinerary(
	cat *catalog.Catalog,
	cal *service.Calendar,
	idx *transfer.Index,
	from, to LatLon,
	date string,
	departureInstant int,
	maxWalkMeters, walkSpeedMPS float64,
) Outcome {
	if len(cal.ActiveServices(date)) == 0 {
		return Outcome{Kind: NoService}
	}

	startEdges := accessEdges(cat, from, maxWalkMeters, walkSpeedMPS)
	if len(startEdges) == 0 {
		return Outcome{Kind: NoStartStops}
	}

	endCandidates := nearbyMasters(cat, to, maxWalkMeters)
	if len(endCandidates) == 0 {
		return Outcome{Kind: NoEndStops}
	}
	endSet := map[string]float64{} // master stop ID -> distance to `to`
	for _, c := range endCandidates {
		endSet[c.id] = c.distanceM
	}

	labels := map[string]int{}       // master stop ID -> earliest known arrival
	links := map[string]backLink{}   // master stop ID -> how it was reached
	visited := map[string]bool{}

	pq := &priorityQueue{}
	heap.Init(pq)

	for _, e := range startEdges {
		arrival := departureInstant + e.seconds
		if existing, found := labels[e.masterID]; !found || arrival < existing {
			labels[e.masterID] = arrival
			links[e.masterID] = backLink{
				fromStop: sentinelStart,
				leg: Leg{Walk: &WalkLeg{
					FromCoords: &from,
					ToStop:     e.masterID,
					DistanceM:  e.distanceM,
					StartTime:  departureInstant,
					EndTime:    arrival,
				}},
			}
			heap.Push(pq, &pqItem{stopID: e.masterID, arrival: arrival})
		}
	}

	activeServices := cal.ActiveServices(date)

	var destStop string
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if visited[item.stopID] {
			continue
		}
		if current, ok := labels[item.stopID]; !ok || item.arrival > current {
			continue // stale entry, label has since improved
		}
		visited[item.stopID] = true

		if _, isEnd := endSet[item.stopID]; isEnd {
			destStop = item.stopID
			break
		}

		relax(cat, activeServices, idx, item.stopID, item.arrival, labels, links, pq)
	}

	if destStop == "" {
		return Outcome{Kind: NoPathFound}
	}

	legs := reconstructPath(links, destStop)

	egressDistance := endSet[destStop]
	egressSeconds := int(math.Ceil(egressDistance / walkSpeedMPS))
	arrivalAtDest := labels[destStop]
	arrival := arrivalAtDest + egressSeconds
	legs = append(legs, Leg{Walk: &WalkLeg{
		FromStop:  destStop,
		ToCoords:  &to,
		DistanceM: egressDistance,
		StartTime: arrivalAtDest,
		EndTime:   arrival,
	}})

	// Consecutive bus legs on the same trip are one boarding.
	transfers := 0
	prevTrip := ""
	for _, l := range legs {
		if l.Bus == nil {
			prevTrip = ""
			continue
		}
		if l.Bus.TripID != prevTrip {
			transfers++
		}
		prevTrip = l.Bus.TripID
	}
	if transfers > 0 {
		transfers-- // first boarding isn't a "transfer"
	}

	return Outcome{
		Kind: Ok,
		Legs: legs,
		Stats: Stats{
			DepartureTime: departureInstant,
			ArrivalTime:   arrival,
			TotalSeconds:  arrival - departureInstant,
			Transfers:     transfers,
		},
	}
}

// relax proposes new or improved arrival labels for every stop
// reachable from (stopID, t) by either boarding a trip or walking a
// transfer, per spec.md's relaxation rule.
func relax(
	cat *catalog.Catalog,
	activeServices map[string]bool,
	idx *transfer.Index,
	stopID string,
	t int,
	labels map[string]int,
	links map[string]backLink,
	pq *priorityQueue,
) {
	for _, childID := range childStopIDs(cat, stopID) {
		for _, e := range cat.EventsAtStop(childID) {
			trip, found := cat.Trip(e.TripID)
			if !found || !activeServices[trip.ServiceID] {
				continue
			}
			if e.Departure < t {
				continue
			}

			sts := trip.StopTimes
			for i, st := range sts {
				if st.StopSequence != e.StopSequence || st.StopID != childID {
					continue
				}
				if i+1 >= len(sts) {
					break
				}
				next := sts[i+1]
				nextMaster, ok := cat.MasterOf(next.StopID)
				if !ok {
					break
				}

				propose(labels, links, pq, nextMaster, next.Arrival, backLink{
					fromStop: stopID,
					leg: Leg{Bus: &BusLeg{
						FromStop:  stopID,
						ToStop:    nextMaster,
						RouteID:   trip.RouteID,
						TripID:    trip.ID,
						Headsign:  trip.Headsign,
						StartTime: e.Departure,
						EndTime:   next.Arrival,
					}},
				})
				break
			}
		}
	}

	for _, edge := range idx.Neighbors(stopID) {
		arrival := t + edge.Seconds
		from, _ := cat.MasterStop(stopID)
		to, _ := cat.MasterStop(edge.ToMasterID)
		distanceM := greatCircleMeters(from.Lat, from.Lon, to.Lat, to.Lon)

		propose(labels, links, pq, edge.ToMasterID, arrival, backLink{
			fromStop: stopID,
			leg: Leg{Walk: &WalkLeg{
				FromStop:  stopID,
				ToStop:    edge.ToMasterID,
				DistanceM: distanceM,
				StartTime: t,
				EndTime:   arrival,
			}},
		})
	}
}

// propose accepts a candidate arrival only if it strictly improves the
// provisional label, per spec.md's tie-break rule.
func propose(labels map[string]int, links map[string]backLink, pq *priorityQueue, stopID string, arrival int, link backLink) {
	if existing, found := labels[stopID]; found && arrival >= existing {
		return
	}
	labels[stopID] = arrival
	links[stopID] = link
	heap.Push(pq, &pqItem{stopID: stopID, arrival: arrival})
}

func childStopIDs(cat *catalog.Catalog, masterID string) []string {
	if children := cat.ChildrenOfMaster(masterID); len(children) > 0 {
		return children
	}
	return []string{masterID}
}

func reconstructPath(links map[string]backLink, destStop string) []Leg {
	var legs []Leg
	stop := destStop
	for {
		link, found := links[stop]
		if !found {
			break
		}
		legs = append(legs, link.leg)
		if link.fromStop == sentinelStart {
			break
		}
		stop = link.fromStop
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return legs
}
