package dedupe

import (
	"sort"

	"photosift/internal/models"
)

// Rank orders the records of a class best-first. The comparator is a fixed
// priority chain; each criterion only breaks ties left by the previous one,
// and absent values sort lowest for their criterion.
func Rank(class *models.EquivalenceClass) []*models.PhotoRecord {
	ranked := make([]*models.PhotoRecord, len(class.Records))
	copy(ranked, class.Records)

	sort.Slice(ranked, func(i, j int) bool {
		return Better(ranked[i], ranked[j])
	})

	return ranked
}

// Better reports whether a should rank ahead of b:
// file size (larger is better - less lossy compression), EXIF field count
// (richer metadata wins), timestamp presence, file name (alphabetical), and
// finally record ID so the order is total even for same-named files.
func Better(a, b *models.PhotoRecord) bool {
	if a.SizeBytes != b.SizeBytes {
		return a.SizeBytes > b.SizeBytes
	}
	if a.ExifFields != b.ExifFields {
		return a.ExifFields > b.ExifFields
	}
	if a.HasTimestamp() != b.HasTimestamp() {
		return a.HasTimestamp()
	}
	if a.FileName != b.FileName {
		return a.FileName < b.FileName
	}
	return a.ID < b.ID
}
