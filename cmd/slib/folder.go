package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/timok/sample-librarian/internal/scan"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage watched folders",
	Long: `Watched folders are library roots remembered in the database. They are
not monitored live; 'slib folder rescan' walks the active ones again and
stamps the time of the last scan.`,
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched folders",
	RunE:  runFolderList,
}

var folderAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderAdd,
}

var folderRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Unregister a folder (indexed files stay in the library)",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderRm,
}

var folderRescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Scan all active watched folders again",
	RunE:  runFolderRescan,
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderListCmd, folderAddCmd, folderRmCmd, folderRescanCmd)

	folderRescanCmd.Flags().String("tag-policy", "suggest", "heuristic tagging: off, suggest or apply")
	folderRescanCmd.Flags().Bool("skip-duplicates", true, "do not re-index files whose content is already in the library")
}

func runFolderList(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	folders, err := db.ListWatchedFolders()
	if err != nil {
		return err
	}

	if len(folders) == 0 {
		util.InfoLog("No watched folders")
		return nil
	}

	for _, f := range folders {
		state := "active"
		if !f.Active {
			state = "inactive"
		}
		lastScan := "never"
		if f.LastScanned != nil {
			lastScan = formatEpochMs(*f.LastScanned)
		}
		fmt.Printf("%6d  %-8s  last scan %-19s  %s\n", f.ID, state, lastScan, f.Path)
	}

	return nil
}

func runFolderAdd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	folder, err := db.AddWatchedFolder(args[0])
	if err != nil {
		return err
	}

	util.SuccessLog("Watching %s (id %d)", folder.Path, folder.ID)
	util.InfoLog("Run 'slib folder rescan' to index it")
	return nil
}

func runFolderRm(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid folder id: %s", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RemoveWatchedFolder(id); err != nil {
		return err
	}

	util.SuccessLog("Removed watched folder %d", id)
	return nil
}

func runFolderRescan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogLevel()

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

	folders, err := db.ListWatchedFolders()
	if err != nil {
		return err
	}

	logger := newEventLogger()
	defer logger.Close()

	scanner := scan.New(&scan.Config{
		Store:  db,
		Logger: logger,
	})

	opts := scan.Options{
		Recursive:      true,
		TagPolicy:      policy,
		SkipDuplicates: skipDuplicates,
	}

	scanned := 0
	combined := &scan.Result{}
	for _, folder := range folders {
		if !folder.Active {
			continue
		}

		result, err := scanner.ScanFolder(ctx, folder.Path, opts)
		if err != nil {
			util.WarnLog("Rescan of %s failed: %v", folder.Path, err)
			continue
		}

		if err := db.MarkFolderScanned(folder.ID, time.Now().UnixMilli()); err != nil {
			util.WarnLog("Failed to stamp folder %d: %v", folder.ID, err)
		}

		combined.Indexed += result.Indexed
		combined.Duplicates += result.Duplicates
		combined.Errors += result.Errors
		scanned++
	}

	if scanned == 0 {
		util.InfoLog("No active folders to rescan")
		return nil
	}

	util.SuccessLog("Rescanned %d folders: %d new, %d duplicates, %d errors",
		scanned, combined.Indexed, combined.Duplicates, combined.Errors)
	return nil
}
