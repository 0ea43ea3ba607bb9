package store

// Schema v1 - core library tables and the synchronized full-text index.
// All timestamps are epoch milliseconds.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexed files, one row per filesystem path
CREATE TABLE IF NOT EXISTS files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  file_path TEXT UNIQUE NOT NULL,
  filename TEXT NOT NULL,
  file_type TEXT NOT NULL,
  file_extension TEXT NOT NULL,
  file_size INTEGER NOT NULL DEFAULT 0,
  created_at INTEGER,
  modified_at INTEGER,
  accessed_at INTEGER,
  hash TEXT,
  indexed_at INTEGER,

  -- Audio properties, null until enriched
  duration REAL,
  sample_rate INTEGER,
  bit_depth INTEGER,
  channels INTEGER,

  -- Musical properties, null until enriched
  bpm REAL,
  detected_key TEXT,
  detected_scale TEXT,
  energy_level INTEGER CHECK (energy_level BETWEEN 1 AND 10),

  -- User fields
  notes TEXT NOT NULL DEFAULT '',
  rating INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  color_code TEXT,
  is_favorite INTEGER NOT NULL DEFAULT 0,
  use_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_files_hash ON files(hash);
CREATE INDEX IF NOT EXISTS idx_files_modified_at ON files(modified_at);
CREATE INDEX IF NOT EXISTS idx_files_file_type ON files(file_type);

-- Named labels, optionally categorized (genre, instrument, energy, custom)
CREATE TABLE IF NOT EXISTS tags (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT UNIQUE NOT NULL,
  category TEXT,
  color TEXT,
  created_at INTEGER
);

CREATE TABLE IF NOT EXISTS file_tags (
  file_id INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
  PRIMARY KEY (file_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_file_tags_tag_id ON file_tags(tag_id);

-- User-curated or rule-based groupings
CREATE TABLE IF NOT EXISTS collections (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  color TEXT,
  icon TEXT,
  created_at INTEGER,
  updated_at INTEGER,
  is_smart INTEGER NOT NULL DEFAULT 0,
  smart_query TEXT
);

CREATE TABLE IF NOT EXISTS collection_files (
  collection_id INTEGER NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
  file_id INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
  added_at INTEGER,
  sort_order INTEGER,
  PRIMARY KEY (collection_id, file_id)
);

CREATE INDEX IF NOT EXISTS idx_collection_files_file_id ON collection_files(file_id);

-- Full-text index over filename and notes, kept in sync by triggers so the
-- search side effect lives with the schema rather than with callers
CREATE VIRTUAL TABLE IF NOT EXISTS files_fts USING fts5(
  filename,
  notes,
  content='files',
  content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS files_fts_ai AFTER INSERT ON files BEGIN
  INSERT INTO files_fts(rowid, filename, notes)
  VALUES (new.id, new.filename, new.notes);
END;

CREATE TRIGGER IF NOT EXISTS files_fts_ad AFTER DELETE ON files BEGIN
  INSERT INTO files_fts(files_fts, rowid, filename, notes)
  VALUES ('delete', old.id, old.filename, old.notes);
END;

CREATE TRIGGER IF NOT EXISTS files_fts_au AFTER UPDATE ON files BEGIN
  INSERT INTO files_fts(files_fts, rowid, filename, notes)
  VALUES ('delete', old.id, old.filename, old.notes);
  INSERT INTO files_fts(rowid, filename, notes)
  VALUES (new.id, new.filename, new.notes);
END;
`

// Schema v2 - watched folders and performance indexes
const schemaV2 = `
-- Root folders rescanned on demand (no watch daemon)
CREATE TABLE IF NOT EXISTS watched_folders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  folder_path TEXT UNIQUE NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  auto_tag_pattern TEXT,
  added_at INTEGER,
  last_scanned INTEGER
);

CREATE INDEX IF NOT EXISTS idx_files_bpm ON files(bpm);
CREATE INDEX IF NOT EXISTS idx_files_rating ON files(rating);
CREATE INDEX IF NOT EXISTS idx_files_favorite ON files(is_favorite);
`
