package main

import (
	"fmt"
	"strconv"

	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id> [id...]",
	Short: "Remove file records from the library",
	Long: `Remove records from the library database. The files on disk are never
touched; only the index entries, their tag associations and their collection
memberships are deleted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRmCmd,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRmCmd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	removed := 0
	for _, id := range ids {
		if err := db.DeleteFile(id); err != nil {
			util.WarnLog("Failed to remove file %d: %v", id, err)
			continue
		}
		removed++
	}

	util.SuccessLog("Removed %d of %d records", removed, len(ids))
	return nil
}

// parseIDs converts positional arguments to numeric ids
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %s", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
