package main

import (
	"fmt"
	"strconv"

	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE:  runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tag and its file associations",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRm,
}

var tagApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Tag many files at once",
	Long: `Associate every given tag with every given file in one transaction.
Associations that already exist are left untouched.`,
	RunE: runTagApply,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagListCmd, tagAddCmd, tagRmCmd, tagApplyCmd)

	tagAddCmd.Flags().String("category", store.CategoryCustom, "tag category: genre, instrument, energy or custom")
	tagAddCmd.Flags().String("color", "", "display color")

	tagApplyCmd.Flags().Int64Slice("tags", nil, "tag ids to apply")
	tagApplyCmd.Flags().Int64Slice("files", nil, "file ids to tag")
	tagApplyCmd.MarkFlagRequired("tags")
	tagApplyCmd.MarkFlagRequired("files")
}

func runTagList(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	tags, err := db.ListTags()
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		util.InfoLog("No tags")
		return nil
	}

	for _, t := range tags {
		fmt.Printf("%6d  %-12s  %s\n", t.ID, t.Category, t.Name)
	}

	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	category, _ := cmd.Flags().GetString("category")
	color, _ := cmd.Flags().GetString("color")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	tag := &store.Tag{
		Name:     args[0],
		Category: category,
		Color:    color,
	}
	if err := db.CreateTag(tag); err != nil {
		return err
	}

	util.SuccessLog("Created tag %q (id %d)", tag.Name, tag.ID)
	return nil
}

func runTagRm(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag id: %s", args[0])
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteTag(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted tag %d", id)
	return nil
}

func runTagApply(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	tagIDs, _ := cmd.Flags().GetInt64Slice("tags")
	fileIDs, _ := cmd.Flags().GetInt64Slice("files")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.BulkTagFiles(fileIDs, tagIDs); err != nil {
		return err
	}

	util.SuccessLog("Applied %d tags to %d files", len(tagIDs), len(fileIDs))
	return nil
}
