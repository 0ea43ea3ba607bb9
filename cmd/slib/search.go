package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Search the library",
	Long: `Search indexed files by free text (matched against filename and notes)
combined with facet filters. All given filters must hold; a file matches the
tag filter when it carries at least one of the named tags.`,
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSlice("tag", nil, "filter by tag name (repeatable, OR across tags)")
	searchCmd.Flags().Float64("bpm-min", 0, "minimum BPM (inclusive)")
	searchCmd.Flags().Float64("bpm-max", 0, "maximum BPM (inclusive)")
	searchCmd.Flags().StringSlice("key", nil, "filter by detected key (repeatable)")
	searchCmd.Flags().StringSlice("kind", nil, "filter by file kind: sample, project, midi, preset, kickchain")
	searchCmd.Flags().Bool("favorite", false, "only favorites")
	searchCmd.Flags().Int64("min-rating", 0, "minimum rating (1-5)")
	searchCmd.Flags().Int64("min-energy", 0, "minimum energy level (1-10)")
	searchCmd.Flags().Int64("max-energy", 0, "maximum energy level (1-10)")
	searchCmd.Flags().String("sort", "", "sort field: filename, modified_at, created_at, indexed_at, file_size, duration, bpm, rating, energy_level, use_count")
	searchCmd.Flags().String("direction", "asc", "sort direction: asc or desc")
	searchCmd.Flags().Int("limit", 50, "page size")
	searchCmd.Flags().Int("offset", 0, "page offset")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	query := store.SearchQuery{
		Text: strings.Join(args, " "),
	}
	query.Limit, _ = cmd.Flags().GetInt("limit")
	query.Offset, _ = cmd.Flags().GetInt("offset")

	tagNames, _ := cmd.Flags().GetStringSlice("tag")
	if len(tagNames) > 0 {
		ids, err := resolveTagIDs(db, tagNames)
		if err != nil {
			return err
		}
		query.Filters.TagIDs = ids
	}

	if cmd.Flags().Changed("bpm-min") || cmd.Flags().Changed("bpm-max") {
		lo, _ := cmd.Flags().GetFloat64("bpm-min")
		hi, _ := cmd.Flags().GetFloat64("bpm-max")
		if !cmd.Flags().Changed("bpm-max") {
			hi = 999
		}
		query.Filters.BPMRange = &[2]float64{lo, hi}
	}

	query.Filters.Keys, _ = cmd.Flags().GetStringSlice("key")

	kindNames, _ := cmd.Flags().GetStringSlice("kind")
	for _, k := range kindNames {
		query.Filters.Kinds = append(query.Filters.Kinds, store.Kind(k))
	}

	if cmd.Flags().Changed("favorite") {
		favorite, _ := cmd.Flags().GetBool("favorite")
		query.Filters.Favorite = &favorite
	}
	if cmd.Flags().Changed("min-rating") {
		v, _ := cmd.Flags().GetInt64("min-rating")
		query.Filters.MinRating = &v
	}
	if cmd.Flags().Changed("min-energy") {
		v, _ := cmd.Flags().GetInt64("min-energy")
		query.Filters.MinEnergy = &v
	}
	if cmd.Flags().Changed("max-energy") {
		v, _ := cmd.Flags().GetInt64("max-energy")
		query.Filters.MaxEnergy = &v
	}

	if cmd.Flags().Changed("sort") {
		field, _ := cmd.Flags().GetString("sort")
		direction, _ := cmd.Flags().GetString("direction")
		query.Sort = &store.Sort{
			Field:     store.SortField(field),
			Direction: store.Direction(direction),
		}
	}

	result, err := db.Search(query)
	if err != nil {
		return err
	}

	if result.Total == 0 {
		util.InfoLog("No matches")
		return nil
	}

	for _, f := range result.Files {
		fmt.Println(formatFileLine(f))
	}

	fmt.Println()
	util.InfoLog("%d of %d matches (offset %d)", len(result.Files), result.Total, query.Offset)

	return nil
}

// resolveTagIDs maps tag names to ids, case-insensitively
func resolveTagIDs(db *store.Store, names []string) ([]int64, error) {
	tags, err := db.ListTags()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(tags))
	for _, t := range tags {
		byName[strings.ToLower(t.Name)] = t.ID
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown tag: %s", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// formatFileLine renders one search hit as a single line
func formatFileLine(f *store.File) string {
	var sb strings.Builder

	marker := " "
	if f.Favorite {
		marker = "*"
	}
	fmt.Fprintf(&sb, "%s %6d  %-8s  %9s", marker, f.ID, f.Kind, humanize.Bytes(uint64(f.SizeBytes)))

	if f.BPM != nil {
		fmt.Fprintf(&sb, "  %5.1f bpm", *f.BPM)
	} else {
		sb.WriteString("          ")
	}

	if f.Key != nil {
		key := *f.Key
		if f.Scale != nil && *f.Scale == "minor" {
			key += "m"
		}
		fmt.Fprintf(&sb, "  %-3s", key)
	} else {
		sb.WriteString("     ")
	}

	fmt.Fprintf(&sb, "  %s", f.Filename)

	return sb.String()
}
