package store

import (
	"fmt"
	"strings"

	"github.com/timok/sample-librarian/internal/util"
)

// SortField names a sortable file attribute
type SortField string

const (
	SortByFilename   SortField = "filename"
	SortByModifiedAt SortField = "modified_at"
	SortByCreatedAt  SortField = "created_at"
	SortByIndexedAt  SortField = "indexed_at"
	SortBySize       SortField = "file_size"
	SortByDuration   SortField = "duration"
	SortByBPM        SortField = "bpm"
	SortByRating     SortField = "rating"
	SortByEnergy     SortField = "energy_level"
	SortByUseCount   SortField = "use_count"
)

// sortColumns is the closed set of sort fields. Requested fields are resolved
// through this map and never interpolated directly into SQL.
var sortColumns = map[SortField]string{
	SortByFilename:   "f.filename",
	SortByModifiedAt: "f.modified_at",
	SortByCreatedAt:  "f.created_at",
	SortByIndexedAt:  "f.indexed_at",
	SortBySize:       "f.file_size",
	SortByDuration:   "f.duration",
	SortByBPM:        "f.bpm",
	SortByRating:     "f.rating",
	SortByEnergy:     "f.energy_level",
	SortByUseCount:   "f.use_count",

	// legacy spelling
	"name": "f.filename",
}

// Direction is a sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort specifies the result order of a search
type Sort struct {
	Field     SortField
	Direction Direction
}

// Filters narrow a search. Nil/empty members impose no constraint; specified
// members combine with AND semantics.
type Filters struct {
	// File must carry at least one of these tags (OR across the list)
	TagIDs []int64

	// Inclusive two-sided BPM range
	BPMRange *[2]float64

	Keys     []string
	Kinds    []Kind
	Favorite *bool

	MinRating *int64
	MinEnergy *int64
	MaxEnergy *int64
}

// SearchQuery combines free text, facet filters, sorting and pagination
type SearchQuery struct {
	Text    string
	Filters Filters
	Sort    *Sort
	Limit   int
	Offset  int
}

// SearchResult carries one page of matches, the total match count ignoring
// pagination, and an echo of the originating query.
type SearchResult struct {
	Files []*File
	Total int
	Query SearchQuery
}

// Search executes a faceted query. The page and the total count are built
// from the same joins and where clauses, so they cannot drift apart.
func (s *Store) Search(q SearchQuery) (*SearchResult, error) {
	orderCol, direction, err := validateSort(q.Sort)
	if err != nil {
		return nil, err
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("negative pagination: %w", util.ErrInvalidQuery)
	}

	limit := q.Limit
	if limit == 0 {
		limit = 100
	}

	var (
		joins  []string
		wheres []string
		args   []any
	)

	if len(q.Filters.TagIDs) > 0 {
		joins = append(joins, "INNER JOIN file_tags ft ON f.id = ft.file_id")
		wheres = append(wheres, "ft.tag_id IN ("+placeholders(len(q.Filters.TagIDs))+")")
		for _, id := range q.Filters.TagIDs {
			args = append(args, id)
		}
	}

	if text := strings.TrimSpace(q.Text); text != "" {
		joins = append(joins, "INNER JOIN files_fts fts ON f.id = fts.rowid")
		wheres = append(wheres, "fts.files_fts MATCH ?")
		args = append(args, ftsQuery(text))
	}

	if q.Filters.BPMRange != nil {
		wheres = append(wheres, "f.bpm BETWEEN ? AND ?")
		args = append(args, q.Filters.BPMRange[0], q.Filters.BPMRange[1])
	}

	if len(q.Filters.Keys) > 0 {
		wheres = append(wheres, "f.detected_key IN ("+placeholders(len(q.Filters.Keys))+")")
		for _, k := range q.Filters.Keys {
			args = append(args, k)
		}
	}

	if len(q.Filters.Kinds) > 0 {
		wheres = append(wheres, "f.file_type IN ("+placeholders(len(q.Filters.Kinds))+")")
		for _, k := range q.Filters.Kinds {
			args = append(args, string(k))
		}
	}

	if q.Filters.Favorite != nil {
		wheres = append(wheres, "f.is_favorite = ?")
		args = append(args, boolToInt(*q.Filters.Favorite))
	}

	if q.Filters.MinRating != nil {
		wheres = append(wheres, "f.rating >= ?")
		args = append(args, *q.Filters.MinRating)
	}

	if q.Filters.MinEnergy != nil {
		wheres = append(wheres, "f.energy_level >= ?")
		args = append(args, *q.Filters.MinEnergy)
	}

	if q.Filters.MaxEnergy != nil {
		wheres = append(wheres, "f.energy_level <= ?")
		args = append(args, *q.Filters.MaxEnergy)
	}

	base := " FROM files f"
	if len(joins) > 0 {
		base += " " + strings.Join(joins, " ")
	}
	if len(wheres) > 0 {
		base += " WHERE " + strings.Join(wheres, " AND ")
	}

	// Page query
	pageSQL := "SELECT DISTINCT " + fileColumns + base +
		fmt.Sprintf(" ORDER BY %s %s, f.id %s LIMIT ? OFFSET ?", orderCol, direction, direction)
	pageArgs := append(append([]any{}, args...), limit, q.Offset)

	rows, err := s.db.Query(pageSQL, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	files, err := collectFiles(rows)
	if err != nil {
		return nil, err
	}

	// Count query: identical filters, no sort or pagination
	var total int
	countSQL := "SELECT COUNT(DISTINCT f.id)" + base
	if err := s.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("search count failed: %w", err)
	}

	return &SearchResult{
		Files: files,
		Total: total,
		Query: q,
	}, nil
}

// validateSort resolves the requested sort against the closed column set.
// Default is most-recently-modified first.
func validateSort(sort *Sort) (column, direction string, err error) {
	if sort == nil {
		return sortColumns[SortByModifiedAt], "DESC", nil
	}

	col, ok := sortColumns[sort.Field]
	if !ok {
		return "", "", fmt.Errorf("unknown sort field %q: %w", sort.Field, util.ErrInvalidSort)
	}

	switch sort.Direction {
	case "", Descending:
		return col, "DESC", nil
	case Ascending:
		return col, "ASC", nil
	default:
		return "", "", fmt.Errorf("unknown sort direction %q: %w", sort.Direction, util.ErrInvalidSort)
	}
}

// ftsQuery quotes each whitespace-separated term so user text with FTS5
// operators cannot malform the match expression
func ftsQuery(text string) string {
	terms := strings.Fields(text)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
