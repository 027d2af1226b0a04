package dedupe

import (
	"photosift/internal/models"
)

// Resolve emits one SelectionDecision per input record. The first-ranked
// record of each class is kept; every other record is excluded and points at
// the kept record as its replacement. Resolve performs no I/O and does not
// consult filesystem state.
func Resolve(classes []*models.EquivalenceClass) []models.SelectionDecision {
	var decisions []models.SelectionDecision

	for _, class := range classes {
		ranked := Rank(class)
		keep := ranked[0]

		decisions = append(decisions, models.SelectionDecision{
			RecordID: keep.ID,
			Kept:     true,
		})
		for _, r := range ranked[1:] {
			decisions = append(decisions, models.SelectionDecision{
				RecordID:      r.ID,
				Kept:          false,
				ReplacementID: keep.ID,
			})
		}
	}

	return decisions
}
