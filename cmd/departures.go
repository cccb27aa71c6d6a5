package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var departuresCmd = &cobra.Command{
	Use:   "departures <master_stop_id>",
	Short: "Lists upcoming departures from a master stop",
	Args:  cobra.ExactArgs(1),
	RunE:  departures,
}

var limit int

func init() {
	departuresCmd.Flags().IntVarP(&limit, "limit", "l", 0, "Limit the number of departures returned (0 uses the configured default)")
}

func departures(cmd *cobra.Command, args []string) error {
	stopID := args[0]

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	for _, d := range engine.UpcomingDepartures(stopID, time.Now(), limit) {
		fmt.Printf("%s %s -> %s (trip %s)\n", d.RouteShortName, secondsToClock(d.Departure), d.DestinationName, d.TripID)
	}

	return nil
}

func secondsToClock(s int) string {
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
