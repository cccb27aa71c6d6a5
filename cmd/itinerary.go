package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"transitcore/planner"
)

var itineraryCmd = &cobra.Command{
	Use:   "itinerary <from_lat> <from_lon> <to_lat> <to_lon>",
	Short: "Finds the earliest-arrival itinerary between two coordinates",
	Args:  cobra.ExactArgs(4),
	RunE:  itinerary,
}

func itinerary(cmd *cobra.Command, args []string) error {
	coords := make([]float64, 4)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		coords[i] = v
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	from := planner.LatLon{Lat: coords[0], Lon: coords[1]}
	to := planner.LatLon{Lat: coords[2], Lon: coords[3]}

	outcome := engine.FindItinerary(from, to, time.Now())

	switch outcome.Kind {
	case planner.Ok:
		printLegs(outcome)
	case planner.NoService:
		fmt.Println("no service active today")
	case planner.NoStartStops:
		fmt.Println("no stop within walking distance of the origin")
	case planner.NoEndStops:
		fmt.Println("no stop within walking distance of the destination")
	case planner.NoPathFound:
		fmt.Println("no path found")
	}

	return nil
}

func printLegs(outcome planner.Outcome) {
	for _, leg := range outcome.Legs {
		switch {
		case leg.Walk != nil:
			w := leg.Walk
			fmt.Printf("walk %.0fm, %s -> %s\n", w.DistanceM, secondsToClock(w.StartTime), secondsToClock(w.EndTime))
		case leg.Bus != nil:
			b := leg.Bus
			fmt.Printf("ride %s to %s, %s -> %s (trip %s)\n", b.RouteID, b.Headsign, secondsToClock(b.StartTime), secondsToClock(b.EndTime), b.TripID)
		}
	}
	fmt.Printf("total %ds, %d transfer(s)\n", outcome.Stats.TotalSeconds, outcome.Stats.Transfers)
}
