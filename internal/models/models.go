package models

import "time"

// PhotoRecord is an immutable per-file metadata snapshot taken at analysis
// time. Derived state (class membership, rank, selection) is attached
// externally and never written back onto the record.
type PhotoRecord struct {
	ID          string    `json:"id"`   // stable identifier, unique per run (source path)
	Path        string    `json:"path"` // absolute source location
	FileName    string    `json:"file_name"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentHash string    `json:"content_hash,omitempty"` // SHA-256 hex, empty if unreadable
	TakenAt     time.Time `json:"taken_at,omitempty"`     // EXIF capture time, mtime fallback, zero if unknown
	CameraMake  string    `json:"camera_make,omitempty"`
	CameraModel string    `json:"camera_model,omitempty"`
	ExifFields  int       `json:"exif_fields"` // count of populated EXIF tags, 0 if no EXIF

	// Catalog fields for display and storage only, never consulted by the
	// quality comparator.
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`
	Format  string    `json:"format,omitempty"`
	ModTime time.Time `json:"mod_time"`
}

// HasTimestamp reports whether a capture (or fallback) timestamp is known.
func (r *PhotoRecord) HasTimestamp() bool {
	return !r.TakenAt.IsZero()
}

// EquivalenceClass is a non-empty set of records judged to represent the same
// real-world capture. Classes partition the input record set; singleton
// classes are valid and represent unique photos.
type EquivalenceClass struct {
	ID      int            `json:"id"`
	Records []*PhotoRecord `json:"records"`
}

// SelectionDecision is the per-record output of the pipeline. Within a class
// exactly one record is kept; every excluded record points at it.
type SelectionDecision struct {
	RecordID      string `json:"record_id"`
	Kept          bool   `json:"kept"`
	ReplacementID string `json:"replacement_id,omitempty"` // set only when Kept is false
}

// DuplicateSet is the stored view of a multi-record equivalence class with
// its selection applied.
type DuplicateSet struct {
	ClassID int            `json:"class_id"`
	Photos  []*PhotoRecord `json:"photos"`
	Keep    *PhotoRecord   `json:"keep"`
	Drop    []*PhotoRecord `json:"drop"`
}
