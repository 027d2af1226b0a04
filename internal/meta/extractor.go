package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/webp"

	"photosift/internal/models"
)

// Extractor builds PhotoRecords from files on disk.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract reads one file and produces its metadata record. A hash, EXIF, or
// decode failure degrades the record instead of failing extraction; only a
// stat failure is an error for the file.
func (e *Extractor) Extract(path string) (*models.PhotoRecord, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	rec := &models.PhotoRecord{
		ID:        path,
		Path:      path,
		FileName:  filepath.Base(path),
		SizeBytes: stat.Size(),
		ModTime:   stat.ModTime(),
	}

	hash, err := HashFile(path)
	if err != nil {
		e.log.Debug().Err(err).Str("path", path).Msg("content hash failed")
	} else {
		rec.ContentHash = hash
	}

	e.readExif(path, rec)

	// Fallback timestamp when no EXIF capture time was found.
	if rec.TakenAt.IsZero() {
		rec.TakenAt = stat.ModTime()
	}

	e.readDimensions(path, rec)

	return rec, nil
}

// HashFile computes the SHA-256 hash of a file's bytes.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// EXIF date fields in preference order.
var exifDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// exifDateLayouts covers the date formats cameras actually write.
var exifDateLayouts = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"2006:01:02",
	"2006-01-02",
}

// tagCounter counts populated EXIF tags while walking the IFD.
type tagCounter int

func (c *tagCounter) Walk(name exif.FieldName, tag *tiff.Tag) error {
	*c++
	return nil
}

func (e *Extractor) readExif(path string, rec *models.PhotoRecord) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		e.log.Debug().Err(err).Str("path", path).Msg("no exif data")
		return
	}

	var count tagCounter
	x.Walk(&count)
	rec.ExifFields = int(count)

	for _, field := range exifDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, ok := parseExifDate(raw); ok {
			rec.TakenAt = t
			break
		}
	}

	rec.CameraMake = stringTag(x, exif.Make)
	rec.CameraModel = stringTag(x, exif.Model)
}

func stringTag(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(val)
}

func parseExifDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range exifDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// readDimensions decodes just the image header for width, height, format.
func (e *Extractor) readDimensions(path string, rec *models.PhotoRecord) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		e.log.Debug().Err(err).Str("path", path).Msg("failed to decode image header")
		return
	}

	rec.Width = cfg.Width
	rec.Height = cfg.Height
	rec.Format = strings.ToLower(format)
}

// IsSupportedFile checks if a file has a supported photo extension.
func IsSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tiff", ".tif", ".heic", ".heif":
		return true
	default:
		return false
	}
}
