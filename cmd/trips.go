package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transitcore/resolver"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Lists every trip currently running and its position",
	Args:  cobra.NoArgs,
	RunE:  trips,
}

func trips(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, state := range engine.ActiveTrips(now) {
		fix, ok := engine.PositionOf(state)
		if !ok {
			continue
		}

		switch state.Phase {
		case resolver.Dwell:
			fmt.Printf("%s at %s (%.5f,%.5f)\n", state.TripID, state.AtStop, fix.Lat, fix.Lon)
		case resolver.Move:
			fmt.Printf("%s %s->%s %.0f%% (%.5f,%.5f) bearing %.0f\n",
				state.TripID, state.FromStop, state.ToStop, state.Progress*100, fix.Lat, fix.Lon, fix.Bearing)
		}
	}

	return nil
}
