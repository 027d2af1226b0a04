package organize

import (
	"path/filepath"
	"regexp"
	"strings"

	"photosift/internal/models"
)

// Patterns of camera-generated file names that carry no meaning and should
// be replaced with a timestamp name.
var cameraNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^img_\d+`),
	regexp.MustCompile(`^img\d+`),
	regexp.MustCompile(`^dsc_?\d+`),
	regexp.MustCompile(`^dscn\d+`),
	regexp.MustCompile(`^p\d{8}`),
	regexp.MustCompile(`^vid_\d+`),
	regexp.MustCompile(`^sam_\d+`),
	regexp.MustCompile(`^screenshot`),
	regexp.MustCompile(`^photo\s*\d+`),
	regexp.MustCompile(`^image\s*\d+`),
	regexp.MustCompile(`^pic\.\d+`),
	regexp.MustCompile(`^picture\s*\d+`),
}

// bareDatePattern matches stems that are just a date (not meaningful on
// their own, the date folder already carries that information).
var bareDatePattern = regexp.MustCompile(`^\d{4}[-_]?\d{2}[-_]?\d{2}`)

var invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// IsMeaningfulName reports whether a file stem looks chosen by a person
// rather than generated by a camera. Conservative: when in doubt, the name
// is preserved.
func IsMeaningfulName(stem string) bool {
	lower := strings.ToLower(stem)

	for _, p := range cameraNamePatterns {
		if p.MatchString(lower) {
			return false
		}
	}
	if len(stem) < 5 {
		return false
	}
	if bareDatePattern.MatchString(lower) {
		return false
	}
	return true
}

// SanitizeName makes a file stem filesystem-safe.
func SanitizeName(stem string) string {
	s := invalidNameChars.ReplaceAllString(stem, "_")
	s = strings.Trim(s, ". ")
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// TimestampName generates a YYYY-MM-DD_HH-MM-SS name from the record's date.
func TimestampName(rec *models.PhotoRecord, ext string) string {
	return photoDate(rec).Format("2006-01-02_15-04-05") + ext
}

// FileNameFor returns the destination file name for a record: the original
// name when it is meaningful, a timestamp name otherwise.
func FileNameFor(rec *models.PhotoRecord) string {
	ext := strings.ToLower(filepath.Ext(rec.FileName))
	stem := strings.TrimSuffix(rec.FileName, filepath.Ext(rec.FileName))

	if IsMeaningfulName(stem) {
		if clean := SanitizeName(stem); clean != "" {
			return clean + ext
		}
	}
	return TimestampName(rec, ext)
}
