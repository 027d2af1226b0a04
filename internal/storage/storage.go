package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"photosift/internal/models"
)

// timeLayout is how timestamps are stored in the catalog.
const timeLayout = "2006-01-02 15:04:05"

// Storage persists photo records, selection decisions, and run history.
type Storage struct {
	db     *sql.DB
	dbPath string
}

// NewStorage opens (and if needed creates) the catalog database.
func NewStorage(dbPath string) (*Storage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{db: db, dbPath: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Current schema version
const schemaVersion = 2

// migrations defines all schema migrations
// Each migration should be idempotent (safe to run multiple times)
var migrations = []struct {
	version     int
	description string
	up          string
}{
	{
		version:     1,
		description: "Initial schema",
		up:          "", // Handled by base schema creation
	},
	{
		version:     2,
		description: "Add image dimension columns for listing",
		up: `
			ALTER TABLE photos ADD COLUMN width INTEGER DEFAULT 0;
			ALTER TABLE photos ADD COLUMN height INTEGER DEFAULT 0;
			ALTER TABLE photos ADD COLUMN format TEXT DEFAULT '';
		`,
	},
}

// init creates the database schema
func (s *Storage) init() error {
	// Create schema_version table first
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Create base schema
	schema := `
	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE NOT NULL,
		file_name TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		content_hash TEXT DEFAULT '',
		taken_at DATETIME,
		camera_make TEXT DEFAULT '',
		camera_model TEXT DEFAULT '',
		exif_fields INTEGER DEFAULT 0,
		mod_time DATETIME NOT NULL,
		class_id INTEGER DEFAULT 0,
		kept INTEGER DEFAULT 1,
		replacement TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_photos_content_hash ON photos(content_hash);
	CREATE INDEX IF NOT EXISTS idx_photos_class_id ON photos(class_id);
	CREATE INDEX IF NOT EXISTS idx_photos_path ON photos(path);
	CREATE INDEX IF NOT EXISTS idx_photos_taken_at ON photos(taken_at);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		folder TEXT NOT NULL,
		scanned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_photos INTEGER NOT NULL,
		total_classes INTEGER NOT NULL,
		total_duplicates INTEGER NOT NULL
	);
	`

	_, err = s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Run migrations
	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// migrate runs pending schema migrations
func (s *Storage) migrate() error {
	currentVersion := s.getSchemaVersion()

	for _, m := range migrations {
		if m.version <= currentVersion || m.up == "" {
			continue
		}

		// Check if migration is needed (column might already exist)
		if m.version == 2 {
			if s.columnExists("photos", "width") {
				s.setSchemaVersion(m.version)
				continue
			}
		}

		// Execute migration
		if _, err := s.db.Exec(m.up); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}

		s.setSchemaVersion(m.version)
	}

	return nil
}

// getSchemaVersion returns the current schema version
func (s *Storage) getSchemaVersion() int {
	var version int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0
	}
	return version
}

// setSchemaVersion records a migration as applied
func (s *Storage) setSchemaVersion(version int) {
	s.db.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, version)
}

// columnExists checks if a column exists in a table
func (s *Storage) columnExists(table, column string) bool {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?
	`, table, column).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SavePhotos saves or updates multiple photo records
func (s *Storage) SavePhotos(records []*models.PhotoRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO photos
			(path, file_name, size_bytes, content_hash, taken_at, camera_make, camera_model,
			 exif_fields, width, height, format, mod_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.Path,
			rec.FileName,
			rec.SizeBytes,
			rec.ContentHash,
			formatTime(rec.TakenAt),
			rec.CameraMake,
			rec.CameraModel,
			rec.ExifFields,
			rec.Width,
			rec.Height,
			rec.Format,
			formatTime(rec.ModTime),
		)
		if err != nil {
			return fmt.Errorf("failed to insert photo %s: %w", rec.Path, err)
		}
	}

	return tx.Commit()
}

// ApplySelection stores class membership and keep/replacement decisions.
// Previous selection state is reset first so stale classes cannot linger.
func (s *Storage) ApplySelection(classes []*models.EquivalenceClass, decisions []models.SelectionDecision) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE photos SET class_id = 0, kept = 1, replacement = ''`)
	if err != nil {
		return fmt.Errorf("failed to reset selection: %w", err)
	}

	classStmt, err := tx.Prepare(`UPDATE photos SET class_id = ? WHERE path = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer classStmt.Close()

	for _, class := range classes {
		for _, rec := range class.Records {
			if _, err := classStmt.Exec(class.ID, rec.Path); err != nil {
				return fmt.Errorf("failed to update class for %s: %w", rec.Path, err)
			}
		}
	}

	decStmt, err := tx.Prepare(`UPDATE photos SET kept = ?, replacement = ? WHERE path = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer decStmt.Close()

	for _, d := range decisions {
		keptInt := 0
		if d.Kept {
			keptInt = 1
		}
		if _, err := decStmt.Exec(keptInt, d.ReplacementID, d.RecordID); err != nil {
			return fmt.Errorf("failed to update decision for %s: %w", d.RecordID, err)
		}
	}

	return tx.Commit()
}

const photoColumns = `path, file_name, size_bytes, content_hash, taken_at, camera_make,
	camera_model, exif_fields, width, height, format, mod_time, class_id, kept, replacement`

// photoRow is one catalog row: a record plus its stored selection state.
type photoRow struct {
	Record      *models.PhotoRecord
	ClassID     int
	Kept        bool
	Replacement string
}

func scanPhotoRow(rows *sql.Rows) (*photoRow, error) {
	rec := &models.PhotoRecord{}
	row := &photoRow{Record: rec}
	var takenAt, modTime string
	var keptInt int

	err := rows.Scan(
		&rec.Path,
		&rec.FileName,
		&rec.SizeBytes,
		&rec.ContentHash,
		&takenAt,
		&rec.CameraMake,
		&rec.CameraModel,
		&rec.ExifFields,
		&rec.Width,
		&rec.Height,
		&rec.Format,
		&modTime,
		&row.ClassID,
		&keptInt,
		&row.Replacement,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	rec.ID = rec.Path
	rec.TakenAt = parseTime(takenAt)
	rec.ModTime = parseTime(modTime)
	row.Kept = keptInt == 1
	return row, nil
}

func (s *Storage) queryPhotoRows(query string, args ...any) ([]*photoRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var result []*photoRow
	for rows.Next() {
		row, err := scanPhotoRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// GetAllPhotos returns all stored records ordered by path.
func (s *Storage) GetAllPhotos() ([]*models.PhotoRecord, error) {
	rows, err := s.queryPhotoRows(`SELECT ` + photoColumns + ` FROM photos ORDER BY path`)
	if err != nil {
		return nil, err
	}

	records := make([]*models.PhotoRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record)
	}
	return records, nil
}

// GetKeptPhotos returns the records marked as kept, ordered by path.
func (s *Storage) GetKeptPhotos() ([]*models.PhotoRecord, error) {
	rows, err := s.queryPhotoRows(`SELECT ` + photoColumns + ` FROM photos WHERE kept = 1 ORDER BY path`)
	if err != nil {
		return nil, err
	}

	records := make([]*models.PhotoRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record)
	}
	return records, nil
}

// GetDuplicateSets returns all multi-record classes with their selection,
// kept record first.
func (s *Storage) GetDuplicateSets() ([]*models.DuplicateSet, error) {
	rows, err := s.queryPhotoRows(`
		SELECT ` + photoColumns + `
		FROM photos
		WHERE class_id IN (SELECT class_id FROM photos WHERE class_id > 0 GROUP BY class_id HAVING COUNT(*) > 1)
		ORDER BY class_id, kept DESC, size_bytes DESC, path
	`)
	if err != nil {
		return nil, err
	}

	var sets []*models.DuplicateSet
	var current *models.DuplicateSet
	for _, row := range rows {
		if current == nil || current.ClassID != row.ClassID {
			current = &models.DuplicateSet{ClassID: row.ClassID}
			sets = append(sets, current)
		}
		current.Photos = append(current.Photos, row.Record)
		if row.Kept {
			current.Keep = row.Record
		} else {
			current.Drop = append(current.Drop, row.Record)
		}
	}

	return sets, nil
}

// DeletePhoto removes a photo from the catalog
func (s *Storage) DeletePhoto(path string) error {
	_, err := s.db.Exec(`DELETE FROM photos WHERE path = ?`, path)
	return err
}

// UpdatePhotoPath records that a photo file moved.
func (s *Storage) UpdatePhotoPath(oldPath, newPath string) error {
	_, err := s.db.Exec(`UPDATE photos SET path = ?, file_name = ? WHERE path = ?`,
		newPath, filepath.Base(newPath), oldPath)
	return err
}

// RecordRun records a scan run in history
func (s *Storage) RecordRun(folder string, totalPhotos, totalClasses, totalDuplicates int) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (folder, total_photos, total_classes, total_duplicates)
		VALUES (?, ?, ?, ?)
	`, folder, totalPhotos, totalClasses, totalDuplicates)
	return err
}

// GetDuplicateSetCount returns the number of stored duplicate sets.
func (s *Storage) GetDuplicateSetCount() (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT class_id FROM photos WHERE class_id > 0 GROUP BY class_id HAVING COUNT(*) > 1
		)
	`).Scan(&count)
	return count, err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(timeLayout, s)
	return t
}
