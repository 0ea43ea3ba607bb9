package main

import (
	"fmt"
	"strconv"

	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"col"},
	Short:   "Manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections with member counts",
	RunE:  runCollectionList,
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionCreate,
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <collection-id> <file-id> [file-id...]",
	Short: "Add files to a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCollectionAdd,
}

var collectionRmCmd = &cobra.Command{
	Use:   "rm <collection-id> [file-id...]",
	Short: "Remove files from a collection, or delete the collection",
	Long: `With file ids, removes those files from the collection. Without file
ids, deletes the collection itself. Files stay in the library either way.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollectionRm,
}

var collectionFilesCmd = &cobra.Command{
	Use:   "files <collection-id>",
	Short: "List the files in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionFiles,
}

func init() {
	rootCmd.AddCommand(collectionCmd)
	collectionCmd.AddCommand(collectionListCmd, collectionCreateCmd,
		collectionAddCmd, collectionRmCmd, collectionFilesCmd)

	collectionCreateCmd.Flags().String("description", "", "collection description")
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	collections, err := db.ListCollections()
	if err != nil {
		return err
	}

	if len(collections) == 0 {
		util.InfoLog("No collections")
		return nil
	}

	for _, c := range collections {
		fmt.Printf("%6d  %-30s  %d files\n", c.ID, c.Name, c.FileCount)
		if c.Description != "" {
			fmt.Printf("        %s\n", c.Description)
		}
	}

	return nil
}

func runCollectionCreate(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	description, _ := cmd.Flags().GetString("description")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	c := &store.Collection{
		Name:        args[0],
		Description: description,
	}
	if err := db.CreateCollection(c); err != nil {
		return err
	}

	util.SuccessLog("Created collection %q (id %d)", c.Name, c.ID)
	return nil
}

func runCollectionAdd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	collectionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid collection id: %s", args[0])
	}
	fileIDs, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AddFilesToCollection(collectionID, fileIDs); err != nil {
		return err
	}

	util.SuccessLog("Added %d files to collection %d", len(fileIDs), collectionID)
	return nil
}

func runCollectionRm(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	collectionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid collection id: %s", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 1 {
		if err := db.DeleteCollection(collectionID); err != nil {
			return err
		}
		util.SuccessLog("Deleted collection %d", collectionID)
		return nil
	}

	fileIDs, err := parseIDs(args[1:])
	if err != nil {
		return err
	}
	if err := db.RemoveFilesFromCollection(collectionID, fileIDs); err != nil {
		return err
	}

	util.SuccessLog("Removed %d files from collection %d", len(fileIDs), collectionID)
	return nil
}

func runCollectionFiles(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	collectionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid collection id: %s", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	files, err := db.CollectionFiles(collectionID)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		util.InfoLog("Collection is empty")
		return nil
	}

	for _, f := range files {
		fmt.Println(formatFileLine(f))
	}

	return nil
}
