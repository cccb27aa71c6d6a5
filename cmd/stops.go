package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var stopsCmd = &cobra.Command{
	Use:   "stops <name_prefix> [limit]",
	Short: "Searches master stops by name prefix",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  stops,
}

func stops(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	limit := 10
	if len(args) == 2 {
		var err error
		limit, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
		if limit < 0 {
			return fmt.Errorf("limit must be >= 0")
		}
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	for _, m := range engine.SearchStopsByNamePrefix(prefix, limit) {
		fmt.Printf("%s: %s\n", m.ID, m.Name)
	}

	return nil
}
