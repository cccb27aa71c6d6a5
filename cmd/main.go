package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transitcore"
)

var rootCmd = &cobra.Command{
	Use:          "transitcore",
	Short:        "Offline multimodal transit journey planner",
	Long:         "Loads a GTFS static feed and answers journey, departure and stop queries against it",
	SilenceUsage: true,
}

var (
	dataDir   string
	useSqlite bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", ".", "Directory containing the GTFS text files")
	rootCmd.PersistentFlags().BoolVarP(&useSqlite, "sqlite", "", false, "Use the in-memory SQLite catalog store instead of the default map store")

	rootCmd.AddCommand(itineraryCmd)
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(tripsCmd)
	rootCmd.AddCommand(stopsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadEngine() (*transitcore.Engine, error) {
	return transitcore.Load(transitcore.Config{
		DataDir:        dataDir,
		UseSQLiteStore: useSqlite,
	})
}
