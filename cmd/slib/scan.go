package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/timok/sample-librarian/internal/scan"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder> [folder...]",
	Short: "Index folders of samples into the library",
	Long: `Walk one or more folders, classify the files by extension, hash their
content and insert a record for each supported file.

Audio metadata is left empty; run 'slib analyze' afterwards to enrich the
new records. Files whose content hash is already in the library are counted
as duplicates (use --skip-duplicates to leave them out entirely).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("recursive", true, "descend into subfolders")
	scanCmd.Flags().String("tag-policy", "suggest", "heuristic tagging: off, suggest or apply")
	scanCmd.Flags().Bool("skip-duplicates", false, "do not index files whose content is already in the library")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogLevel()

	recursive, _ := cmd.Flags().GetBool("recursive")
	skipDuplicates, _ := cmd.Flags().GetBool("skip-duplicates")
	policyStr, _ := cmd.Flags().GetString("tag-policy")

	policy, err := scan.ParseTagPolicy(policyStr)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	scanner := scan.New(&scan.Config{
		Store:  db,
		Logger: logger,
	})

	// Progress bar only when stdout is a terminal
	var bar *progressbar.ProgressBar
	showBar := util.IsTerminal(os.Stdout.Fd()) && !util.IsQuiet()

	opts := scan.Options{
		Recursive:      recursive,
		TagPolicy:      policy,
		SkipDuplicates: skipDuplicates,
	}
	if showBar {
		opts.OnProgress = func(p scan.Progress) {
			if bar == nil && p.Total > 0 {
				bar = progressbar.NewOptions(p.Total,
					progressbar.OptionSetDescription("Indexing"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("files"),
					progressbar.OptionThrottle(200*time.Millisecond),
					progressbar.OptionClearOnFinish(),
					progressbar.OptionSetRenderBlankState(true),
				)
			}
			if bar == nil {
				return
			}
			bar.Set(p.Processed)
			if p.Status == scan.StatusComplete {
				bar.Finish()
				bar = nil
			}
		}
	}

	startTime := time.Now()

	result, err := scanner.ScanFolders(ctx, args, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var totalBytes int64
	for _, f := range result.Files {
		totalBytes += f.SizeBytes
	}

	util.SuccessLog("Scan complete in %v", time.Since(startTime).Round(time.Millisecond))
	util.InfoLog("  Indexed:    %d files (%s)", result.Indexed, humanize.Bytes(uint64(totalBytes)))
	if result.Duplicates > 0 {
		util.InfoLog("  Duplicates: %d", result.Duplicates)
	}
	if result.AutoTagged > 0 {
		util.InfoLog("  Auto-tagged: %d", result.AutoTagged)
	}
	if result.Errors > 0 {
		util.WarnLog("  Errors:     %d (see event log)", result.Errors)
	}

	if result.Indexed > 0 {
		util.InfoLog("")
		util.InfoLog("Next step: slib analyze")
	}

	return nil
}
