package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one file record in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid file id: %s", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := db.GetFileByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", f.Filename)
	fmt.Printf("  ID:       %d\n", f.ID)
	fmt.Printf("  Path:     %s\n", f.Path)
	fmt.Printf("  Kind:     %s (%s)\n", f.Kind, f.Extension)
	fmt.Printf("  Size:     %s\n", humanize.Bytes(uint64(f.SizeBytes)))
	if f.Hash != "" {
		fmt.Printf("  Hash:     %s\n", f.Hash)
	}
	fmt.Printf("  Modified: %s\n", formatEpochMs(f.ModifiedAt))
	fmt.Printf("  Indexed:  %s\n", formatEpochMs(f.IndexedAt))

	if f.Duration != nil {
		fmt.Printf("  Duration: %.2fs\n", *f.Duration)
	}
	if f.SampleRate != nil {
		fmt.Printf("  Sample rate: %d Hz\n", *f.SampleRate)
	}
	if f.BitDepth != nil {
		fmt.Printf("  Bit depth:   %d\n", *f.BitDepth)
	}
	if f.Channels != nil {
		fmt.Printf("  Channels:    %d\n", *f.Channels)
	}
	if f.BPM != nil {
		fmt.Printf("  BPM:      %.1f\n", *f.BPM)
	}
	if f.Key != nil {
		key := *f.Key
		if f.Scale != nil {
			key += " " + *f.Scale
		}
		fmt.Printf("  Key:      %s\n", key)
	}
	if f.EnergyLevel != nil {
		fmt.Printf("  Energy:   %d/10\n", *f.EnergyLevel)
	}

	if f.Rating > 0 {
		fmt.Printf("  Rating:   %d/5\n", f.Rating)
	}
	if f.Favorite {
		fmt.Printf("  Favorite: yes\n")
	}
	if f.UseCount > 0 {
		fmt.Printf("  Used:     %d times\n", f.UseCount)
	}
	if f.Notes != "" {
		fmt.Printf("  Notes:    %s\n", f.Notes)
	}

	if len(f.Tags) > 0 {
		names := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			names[i] = t.Name
		}
		fmt.Printf("  Tags:     %s\n", strings.Join(names, ", "))
	}

	return nil
}

func formatEpochMs(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}
