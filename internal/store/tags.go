package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/timok/sample-librarian/internal/util"
)

// Tag categories
const (
	CategoryGenre      = "genre"
	CategoryInstrument = "instrument"
	CategoryEnergy     = "energy"
	CategoryCustom     = "custom"
)

// Tag is a named, optionally categorized label
type Tag struct {
	ID        int64
	Name      string
	Category  string
	Color     string
	CreatedAt int64
}

// CreateTag inserts a new tag. Names are unique; a duplicate fails with
// util.ErrDuplicate.
func (s *Store) CreateTag(t *Tag) error {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UnixMilli()
	}

	result, err := s.db.Exec(`
		INSERT INTO tags (name, category, color, created_at)
		VALUES (?, ?, ?, ?)
	`, t.Name, nullIfEmpty(t.Category), nullIfEmpty(t.Color), t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag %q already exists: %w", t.Name, util.ErrDuplicate)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get tag ID: %w", err)
	}
	t.ID = id

	return nil
}

// EnsureTag returns the tag with the given name, creating it if missing
func (s *Store) EnsureTag(name, category string) (*Tag, error) {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO tags (name, category, created_at)
		VALUES (?, ?, ?)
	`, name, nullIfEmpty(category), time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure tag: %w", err)
	}

	t := &Tag{}
	var cat, color sql.NullString
	err = s.db.QueryRow(`
		SELECT id, name, COALESCE(category, ''), COALESCE(color, ''), COALESCE(created_at, 0)
		FROM tags WHERE name = ?
	`, name).Scan(&t.ID, &t.Name, &cat, &color, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	t.Category = cat.String
	t.Color = color.String

	return t, nil
}

// DeleteTag removes a tag. File associations cascade.
func (s *Store) DeleteTag(id int64) error {
	result, err := s.db.Exec("DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return notFound("tag", id)
	}

	return nil
}

// ListTags returns all tags in alphabetical order
func (s *Store) ListTags() ([]*Tag, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(category, ''), COALESCE(color, ''), COALESCE(created_at, 0)
		FROM tags ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// TagsForFile returns the tags associated with a file
func (s *Store) TagsForFile(fileID int64) ([]*Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, COALESCE(t.category, ''), COALESCE(t.color, ''), COALESCE(t.created_at, 0)
		FROM tags t
		INNER JOIN file_tags ft ON t.id = ft.tag_id
		WHERE ft.file_id = ?
		ORDER BY t.name ASC
	`, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query file tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// AddFileTag associates a tag with a file. Re-adding an existing pair is a no-op.
func (s *Store) AddFileTag(fileID, tagID int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO file_tags (file_id, tag_id) VALUES (?, ?)", fileID, tagID)
	if err != nil {
		return fmt.Errorf("failed to add file tag: %w", err)
	}
	return nil
}

// RemoveFileTag removes a tag association from a file
func (s *Store) RemoveFileTag(fileID, tagID int64) error {
	_, err := s.db.Exec("DELETE FROM file_tags WHERE file_id = ? AND tag_id = ?", fileID, tagID)
	if err != nil {
		return fmt.Errorf("failed to remove file tag: %w", err)
	}
	return nil
}

// BulkTagFiles associates every listed file with every listed tag in one
// transaction. Existing pairs are silently skipped.
func (s *Store) BulkTagFiles(fileIDs, tagIDs []int64) error {
	return s.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT OR IGNORE INTO file_tags (file_id, tag_id) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare bulk tag insert: %w", err)
		}
		defer stmt.Close()

		for _, fileID := range fileIDs {
			for _, tagID := range tagIDs {
				if _, err := stmt.Exec(fileID, tagID); err != nil {
					return fmt.Errorf("failed to tag file %d with %d: %w", fileID, tagID, err)
				}
			}
		}
		return nil
	})
}

func collectTags(rows *sql.Rows) ([]*Tag, error) {
	var tags []*Tag
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
