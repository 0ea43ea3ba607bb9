package store

import (
	"database/sql"
	"fmt"

	"github.com/timok/sample-librarian/internal/util"
)

// Kind classifies an indexed file
type Kind string

const (
	KindSample    Kind = "sample"
	KindProject   Kind = "project"
	KindMIDI      Kind = "midi"
	KindPreset    Kind = "preset"
	KindKickchain Kind = "kickchain"
)

// File represents one indexed filesystem path. Audio and musical fields are
// nil until the enrichment pass fills them in.
type File struct {
	ID        int64
	Path      string
	Filename  string
	Kind      Kind
	Extension string
	SizeBytes int64

	// Epoch milliseconds
	CreatedAt  int64
	ModifiedAt int64
	AccessedAt int64
	IndexedAt  int64

	// Empty until computed
	Hash string

	Duration    *float64
	SampleRate  *int64
	BitDepth    *int64
	Channels    *int64
	BPM         *float64
	Key         *string
	Scale       *string
	EnergyLevel *int64

	Notes     string
	Rating    int64
	ColorCode string
	Favorite  bool
	UseCount  int64

	// Resolved by GetFileByID, nil elsewhere
	Tags []*Tag
}

const fileColumns = `f.id, f.file_path, f.filename, f.file_type, f.file_extension,
	f.file_size, COALESCE(f.created_at, 0), COALESCE(f.modified_at, 0),
	COALESCE(f.accessed_at, 0), COALESCE(f.hash, ''), COALESCE(f.indexed_at, 0),
	f.duration, f.sample_rate, f.bit_depth, f.channels,
	f.bpm, f.detected_key, f.detected_scale, f.energy_level,
	f.notes, f.rating, COALESCE(f.color_code, ''), f.is_favorite, f.use_count`

// scanFile reads one row produced by a fileColumns select
func scanFile(row interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	var (
		duration   sql.NullFloat64
		sampleRate sql.NullInt64
		bitDepth   sql.NullInt64
		channels   sql.NullInt64
		bpm        sql.NullFloat64
		key        sql.NullString
		scale      sql.NullString
		energy     sql.NullInt64
		favorite   int64
	)

	err := row.Scan(
		&f.ID, &f.Path, &f.Filename, &f.Kind, &f.Extension,
		&f.SizeBytes, &f.CreatedAt, &f.ModifiedAt,
		&f.AccessedAt, &f.Hash, &f.IndexedAt,
		&duration, &sampleRate, &bitDepth, &channels,
		&bpm, &key, &scale, &energy,
		&f.Notes, &f.Rating, &f.ColorCode, &favorite, &f.UseCount,
	)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		f.Duration = &duration.Float64
	}
	if sampleRate.Valid {
		f.SampleRate = &sampleRate.Int64
	}
	if bitDepth.Valid {
		f.BitDepth = &bitDepth.Int64
	}
	if channels.Valid {
		f.Channels = &channels.Int64
	}
	if bpm.Valid {
		f.BPM = &bpm.Float64
	}
	if key.Valid {
		f.Key = &key.String
	}
	if scale.Valid {
		f.Scale = &scale.String
	}
	if energy.Valid {
		f.EnergyLevel = &energy.Int64
	}
	f.Favorite = favorite != 0

	return f, nil
}

// InsertFile creates a new file record. The path must be unique; a second
// insert for the same path fails with util.ErrDuplicate.
func (s *Store) InsertFile(f *File) error {
	var hash any
	if f.Hash != "" {
		hash = f.Hash
	}

	result, err := s.db.Exec(`
		INSERT INTO files (
			file_path, filename, file_type, file_extension, file_size,
			created_at, modified_at, accessed_at, hash, indexed_at,
			notes, rating, color_code, is_favorite, use_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.Path, f.Filename, string(f.Kind), f.Extension, f.SizeBytes,
		f.CreatedAt, f.ModifiedAt, f.AccessedAt, hash, f.IndexedAt,
		f.Notes, f.Rating, f.ColorCode, boolToInt(f.Favorite), f.UseCount)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("path %s already indexed: %w", f.Path, util.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get file ID: %w", err)
	}
	f.ID = id

	return nil
}

// FileUpdate is a sparse set of field changes. Nil fields are left untouched.
type FileUpdate struct {
	Hash        *string
	Duration    *float64
	SampleRate  *int64
	BitDepth    *int64
	Channels    *int64
	BPM         *float64
	Key         *string
	Scale       *string
	EnergyLevel *int64
	Notes       *string
	Rating      *int64
	ColorCode   *string
	Favorite    *bool
	UseCount    *int64
}

// UpdateFile applies a sparse update to a file record. An empty update is a
// no-op; an unknown id fails with util.ErrNotFound.
func (s *Store) UpdateFile(id int64, u FileUpdate) error {
	var (
		sets []string
		args []any
	)

	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if u.Hash != nil {
		add("hash", *u.Hash)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.SampleRate != nil {
		add("sample_rate", *u.SampleRate)
	}
	if u.BitDepth != nil {
		add("bit_depth", *u.BitDepth)
	}
	if u.Channels != nil {
		add("channels", *u.Channels)
	}
	if u.BPM != nil {
		add("bpm", *u.BPM)
	}
	if u.Key != nil {
		add("detected_key", *u.Key)
	}
	if u.Scale != nil {
		add("detected_scale", *u.Scale)
	}
	if u.EnergyLevel != nil {
		add("energy_level", *u.EnergyLevel)
	}
	if u.Notes != nil {
		add("notes", *u.Notes)
	}
	if u.Rating != nil {
		add("rating", *u.Rating)
	}
	if u.ColorCode != nil {
		add("color_code", *u.ColorCode)
	}
	if u.Favorite != nil {
		add("is_favorite", boolToInt(*u.Favorite))
	}
	if u.UseCount != nil {
		add("use_count", *u.UseCount)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE files SET "
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	query += " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return notFound("file", id)
	}

	return nil
}

// DeleteFile removes a file record. Tag and collection associations cascade.
// The file on disk is never touched.
func (s *Store) DeleteFile(id int64) error {
	result, err := s.db.Exec("DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return notFound("file", id)
	}

	return nil
}

// GetFileByID retrieves a file with its resolved tag list
func (s *Store) GetFileByID(id int64) (*File, error) {
	row := s.db.QueryRow("SELECT "+fileColumns+" FROM files f WHERE f.id = ?", id)
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, notFound("file", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	f.Tags, err = s.TagsForFile(id)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// GetFileByHash retrieves a file by its content hash, or nil if none matches
func (s *Store) GetFileByHash(hash string) (*File, error) {
	row := s.db.QueryRow("SELECT "+fileColumns+" FROM files f WHERE f.hash = ? LIMIT 1", hash)
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file by hash: %w", err)
	}
	return f, nil
}

// GetAllFiles returns a page of files ordered by most-recently-modified first
func (s *Store) GetAllFiles(limit, offset int) ([]*File, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(`
		SELECT `+fileColumns+` FROM files f
		ORDER BY f.modified_at DESC, f.id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	return collectFiles(rows)
}

// FilesPendingAnalysis returns files that have no audio metadata yet
func (s *Store) FilesPendingAnalysis(limit int) ([]*File, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.Query(`
		SELECT `+fileColumns+` FROM files f
		WHERE f.duration IS NULL AND f.bpm IS NULL
		ORDER BY f.id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending files: %w", err)
	}
	defer rows.Close()

	return collectFiles(rows)
}

func collectFiles(rows *sql.Rows) ([]*File, error) {
	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
