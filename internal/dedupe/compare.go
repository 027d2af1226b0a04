package dedupe

import (
	"photosift/internal/models"
)

// Verdict classifies a pair of records.
type Verdict int

const (
	// Distinct means the records are different photos.
	Distinct Verdict = iota
	// Likely means the records probably show the same capture (re-encoded,
	// resized, or re-exported by a different tool).
	Likely
	// Identical means the records are byte-for-byte duplicates.
	Identical
)

func (v Verdict) String() string {
	switch v {
	case Identical:
		return "identical"
	case Likely:
		return "likely"
	default:
		return "distinct"
	}
}

// Comparer evaluates the layered similarity rules over record pairs.
type Comparer struct {
	cfg Config
}

// NewComparer creates a Comparer with the given tunables.
func NewComparer(cfg Config) *Comparer {
	return &Comparer{cfg: cfg}
}

// Compare evaluates the decision ladder top-down; the first matching rule
// wins. It is pure and commutative. A missing field on either side never
// counts as a match signal: the comparison falls through to the next rule.
//
//  1. Equal content hashes -> Identical.
//  2. Timestamps within tolerance, similar file names, sizes within
//     tolerance -> Likely.
//  3. Timestamps within tolerance, same camera make and model, sizes within
//     tolerance -> Likely.
//  4. Otherwise -> Distinct.
func (c *Comparer) Compare(a, b *models.PhotoRecord) Verdict {
	if a.ContentHash != "" && b.ContentHash != "" && a.ContentHash == b.ContentHash {
		return Identical
	}

	if c.timestampsClose(a, b) && c.sizesClose(a, b) {
		if FilenameSimilarity(a.FileName, b.FileName) >= c.cfg.FilenameSimilarityThreshold {
			return Likely
		}
		if sameCamera(a, b) {
			return Likely
		}
	}

	return Distinct
}

// timestampsClose reports whether both records carry a timestamp and the two
// fall within the configured tolerance window.
func (c *Comparer) timestampsClose(a, b *models.PhotoRecord) bool {
	if !a.HasTimestamp() || !b.HasTimestamp() {
		return false
	}
	diff := a.TakenAt.Sub(b.TakenAt)
	if diff < 0 {
		diff = -diff
	}
	return diff <= c.cfg.TimestampTolerance
}

// sizesClose reports whether the two file sizes differ by at most the
// configured ratio of the larger one.
func (c *Comparer) sizesClose(a, b *models.PhotoRecord) bool {
	larger, smaller := a.SizeBytes, b.SizeBytes
	if larger < smaller {
		larger, smaller = smaller, larger
	}
	if larger == 0 {
		return true
	}
	return float64(larger-smaller) <= c.cfg.SizeToleranceRatio*float64(larger)
}

// sameCamera requires make and model to be present and equal on both sides.
func sameCamera(a, b *models.PhotoRecord) bool {
	if a.CameraMake == "" || a.CameraModel == "" {
		return false
	}
	return a.CameraMake == b.CameraMake && a.CameraModel == b.CameraModel
}
