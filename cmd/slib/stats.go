package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library-wide counters",
	RunE:  runStatsCmd,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Library: %s\n", viper.GetString("db"))
	fmt.Printf("  Files:       %s\n", humanize.Comma(stats.TotalFiles))
	fmt.Printf("  Tags:        %s\n", humanize.Comma(stats.TotalTags))
	fmt.Printf("  Collections: %s\n", humanize.Comma(stats.TotalCollections))
	fmt.Printf("  Favorites:   %s\n", humanize.Comma(stats.TotalFavorites))

	return nil
}
