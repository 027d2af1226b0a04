package organize

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"photosift/internal/models"
)

// photoDate returns the date used for filing a record: capture time first,
// modification time as fallback.
func photoDate(rec *models.PhotoRecord) time.Time {
	if rec.HasTimestamp() {
		return rec.TakenAt
	}
	return rec.ModTime
}

// DatePath returns the YYYY/MM/DD folder for a record.
func DatePath(rec *models.PhotoRecord) string {
	d := photoDate(rec)
	return filepath.Join(
		fmt.Sprintf("%04d", d.Year()),
		fmt.Sprintf("%02d", int(d.Month())),
		fmt.Sprintf("%02d", d.Day()),
	)
}

// Move describes one planned file relocation.
type Move struct {
	Record *models.PhotoRecord
	Dest   string
}

// BuildPlan maps each record to a destination under root: a date folder plus
// either its own (meaningful) name or a generated timestamp name. Every
// destination in the plan is unique. Records are planned in ID order so the
// plan is reproducible regardless of input order.
func BuildPlan(records []*models.PhotoRecord, root string) []Move {
	ordered := make([]*models.PhotoRecord, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	used := make(map[string]bool, len(ordered))
	plan := make([]Move, 0, len(ordered))

	for _, rec := range ordered {
		name := FileNameFor(rec)
		dest := filepath.Join(root, DatePath(rec), name)
		dest = ensureUnique(dest, used)
		used[dest] = true
		plan = append(plan, Move{Record: rec, Dest: dest})
	}

	return plan
}

// ensureUnique appends a _NNN counter until the path is unused in the plan.
func ensureUnique(path string, used map[string]bool) string {
	if !used[path] {
		return path
	}

	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%03d%s", stem, counter, ext)
		if !used[candidate] {
			return candidate
		}
	}
}
