package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Collection is a named grouping of files. Smart collections carry an opaque
// serialized query instead of explicit members.
type Collection struct {
	ID          int64
	Name        string
	Description string
	Color       string
	Icon        string
	CreatedAt   int64
	UpdatedAt   int64
	IsSmart     bool
	SmartQuery  string

	// Live member count, filled by ListCollections
	FileCount int64
}

// CreateCollection inserts a new collection
func (s *Store) CreateCollection(c *Collection) error {
	now := time.Now().UnixMilli()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	if c.UpdatedAt == 0 {
		c.UpdatedAt = now
	}

	result, err := s.db.Exec(`
		INSERT INTO collections (name, description, color, icon, created_at, updated_at, is_smart, smart_query)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Name, nullIfEmpty(c.Description), nullIfEmpty(c.Color), nullIfEmpty(c.Icon),
		c.CreatedAt, c.UpdatedAt, boolToInt(c.IsSmart), nullIfEmpty(c.SmartQuery))
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get collection ID: %w", err)
	}
	c.ID = id

	return nil
}

// DeleteCollection removes a collection. Memberships cascade.
func (s *Store) DeleteCollection(id int64) error {
	result, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return notFound("collection", id)
	}

	return nil
}

// ListCollections returns all collections with their live file counts,
// alphabetically
func (s *Store) ListCollections() ([]*Collection, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, COALESCE(c.description, ''), COALESCE(c.color, ''),
		       COALESCE(c.icon, ''), COALESCE(c.created_at, 0), COALESCE(c.updated_at, 0),
		       c.is_smart, COALESCE(c.smart_query, ''),
		       COUNT(cf.file_id)
		FROM collections c
		LEFT JOIN collection_files cf ON c.id = cf.collection_id
		GROUP BY c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var collections []*Collection
	for rows.Next() {
		c := &Collection{}
		var isSmart int64
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color,
			&c.Icon, &c.CreatedAt, &c.UpdatedAt,
			&isSmart, &c.SmartQuery, &c.FileCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		c.IsSmart = isSmart != 0
		collections = append(collections, c)
	}

	return collections, rows.Err()
}

// AddFilesToCollection adds files to a collection in one transaction.
// Files already present are silently skipped.
func (s *Store) AddFilesToCollection(collectionID int64, fileIDs []int64) error {
	now := time.Now().UnixMilli()

	return s.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR IGNORE INTO collection_files (collection_id, file_id, added_at)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare membership insert: %w", err)
		}
		defer stmt.Close()

		for _, fileID := range fileIDs {
			if _, err := stmt.Exec(collectionID, fileID, now); err != nil {
				return fmt.Errorf("failed to add file %d to collection: %w", fileID, err)
			}
		}

		_, err = tx.Exec("UPDATE collections SET updated_at = ? WHERE id = ?", now, collectionID)
		return err
	})
}

// RemoveFilesFromCollection removes files from a collection in one transaction
func (s *Store) RemoveFilesFromCollection(collectionID int64, fileIDs []int64) error {
	now := time.Now().UnixMilli()

	return s.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("DELETE FROM collection_files WHERE collection_id = ? AND file_id = ?")
		if err != nil {
			return fmt.Errorf("failed to prepare membership delete: %w", err)
		}
		defer stmt.Close()

		for _, fileID := range fileIDs {
			if _, err := stmt.Exec(collectionID, fileID); err != nil {
				return fmt.Errorf("failed to remove file %d from collection: %w", fileID, err)
			}
		}

		_, err = tx.Exec("UPDATE collections SET updated_at = ? WHERE id = ?", now, collectionID)
		return err
	})
}

// CollectionFiles returns member files, most recently added first
func (s *Store) CollectionFiles(collectionID int64) ([]*File, error) {
	rows, err := s.db.Query(`
		SELECT `+fileColumns+` FROM files f
		INNER JOIN collection_files cf ON f.id = cf.file_id
		WHERE cf.collection_id = ?
		ORDER BY cf.added_at DESC, cf.file_id DESC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection files: %w", err)
	}
	defer rows.Close()

	return collectFiles(rows)
}
