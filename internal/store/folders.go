package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/timok/sample-librarian/internal/util"
)

// WatchedFolder is a root folder rescanned on demand
type WatchedFolder struct {
	ID             int64
	Path           string
	Active         bool
	AutoTagPattern string
	AddedAt        int64
	LastScanned    *int64
}

// AddWatchedFolder registers a folder for rescans
func (s *Store) AddWatchedFolder(path string) (*WatchedFolder, error) {
	now := time.Now().UnixMilli()

	result, err := s.db.Exec(`
		INSERT INTO watched_folders (folder_path, is_active, added_at)
		VALUES (?, 1, ?)
	`, path, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("folder %s already watched: %w", path, util.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to add watched folder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder ID: %w", err)
	}

	return &WatchedFolder{ID: id, Path: path, Active: true, AddedAt: now}, nil
}

// RemoveWatchedFolder unregisters a folder
func (s *Store) RemoveWatchedFolder(id int64) error {
	result, err := s.db.Exec("DELETE FROM watched_folders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove watched folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return notFound("watched folder", id)
	}

	return nil
}

// ListWatchedFolders returns all registered folders, oldest first
func (s *Store) ListWatchedFolders() ([]*WatchedFolder, error) {
	rows, err := s.db.Query(`
		SELECT id, folder_path, is_active, COALESCE(auto_tag_pattern, ''),
		       COALESCE(added_at, 0), last_scanned
		FROM watched_folders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query watched folders: %w", err)
	}
	defer rows.Close()

	var folders []*WatchedFolder
	for rows.Next() {
		f := &WatchedFolder{}
		var active int64
		var lastScanned sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Path, &active, &f.AutoTagPattern, &f.AddedAt, &lastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan watched folder: %w", err)
		}
		f.Active = active != 0
		if lastScanned.Valid {
			f.LastScanned = &lastScanned.Int64
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// MarkFolderScanned stamps a folder with the time of its last rescan
func (s *Store) MarkFolderScanned(id int64, scannedAt int64) error {
	result, err := s.db.Exec("UPDATE watched_folders SET last_scanned = ? WHERE id = ?", scannedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark folder scanned: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return notFound("watched folder", id)
	}

	return nil
}
