package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/timok/sample-librarian/internal/analyze"
	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract audio metadata for indexed files",
	Long: `Read audio properties (duration, sample rate, bit depth, channels) and
musical tags (BPM, key) for indexed files that have not been analyzed yet,
and derive an energy level from the BPM.

Uses embedded tags plus ffprobe when available. A file that fails analysis
is counted and skipped; the batch keeps going.`,
	RunE: runAnalyzeCmd,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Int("limit", 0, "analyze at most this many files (0 = all pending)")
	analyzeCmd.Flags().Int64("id", 0, "analyze a single file by id")
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogLevel()

	limit, _ := cmd.Flags().GetInt("limit")
	fileID, _ := cmd.Flags().GetInt64("id")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	if !analyze.CheckFFprobeAvailable() {
		util.WarnLog("ffprobe not found in PATH - using embedded tags only")
		util.WarnLog("Install ffmpeg for audio properties: https://ffmpeg.org/")
	}

	analyzer := analyze.New(&analyze.Config{
		Store:  db,
		Logger: logger,
	})

	var files []*store.File
	if fileID > 0 {
		file, err := db.GetFileByID(fileID)
		if err != nil {
			return err
		}
		files = []*store.File{file}
	} else {
		files, err = db.FilesPendingAnalysis(limit)
		if err != nil {
			return fmt.Errorf("failed to list pending files: %w", err)
		}
	}

	if len(files) == 0 {
		util.InfoLog("Nothing to analyze")
		return nil
	}

	util.InfoLog("Analyzing %d files", len(files))

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	startTime := time.Now()

	result, err := analyzer.BatchAnalyze(ctx, files, func(current, total int, filename string) {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Analyzing %s", filename))
			bar.Set(current - 1)
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	util.SuccessLog("Analysis complete in %v", time.Since(startTime).Round(time.Millisecond))
	util.InfoLog("  Success: %d", result.Success)
	if result.Failed > 0 {
		util.WarnLog("  Failed:  %d (see event log)", result.Failed)
	}

	return nil
}
