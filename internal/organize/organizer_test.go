package organize

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photosift/internal/models"
)

func TestDatePath(t *testing.T) {
	tests := []struct {
		name string
		rec  *models.PhotoRecord
		want string
	}{
		{
			name: "capture time",
			rec:  &models.PhotoRecord{TakenAt: time.Date(2023, 7, 4, 18, 12, 5, 0, time.UTC)},
			want: filepath.Join("2023", "07", "04"),
		},
		{
			name: "mtime fallback",
			rec:  &models.PhotoRecord{ModTime: time.Date(2021, 12, 31, 23, 59, 0, 0, time.UTC)},
			want: filepath.Join("2021", "12", "31"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DatePath(tt.rec); got != tt.want {
				t.Errorf("DatePath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPlan(t *testing.T) {
	ts := time.Date(2023, 7, 4, 18, 12, 5, 0, time.UTC)
	records := []*models.PhotoRecord{
		{ID: "/src/wedding_dance.jpg", FileName: "wedding_dance.jpg", TakenAt: ts},
		{ID: "/src/IMG_0042.jpg", FileName: "IMG_0042.jpg", TakenAt: ts.AddDate(0, 0, 1)},
	}

	plan := BuildPlan(records, "/dest")
	if len(plan) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(plan))
	}

	byID := make(map[string]string)
	for _, m := range plan {
		byID[m.Record.ID] = m.Dest
	}

	want := filepath.Join("/dest", "2023", "07", "04", "wedding_dance.jpg")
	if byID["/src/wedding_dance.jpg"] != want {
		t.Errorf("dest = %q, want %q", byID["/src/wedding_dance.jpg"], want)
	}
	want = filepath.Join("/dest", "2023", "07", "05", "2023-07-05_18-12-05.jpg")
	if byID["/src/IMG_0042.jpg"] != want {
		t.Errorf("dest = %q, want %q", byID["/src/IMG_0042.jpg"], want)
	}
}

func TestBuildPlan_UniqueDestinations(t *testing.T) {
	// Three camera-named shots in the same second collapse to the same
	// timestamp name; the plan must still keep every destination distinct.
	ts := time.Date(2023, 7, 4, 18, 12, 5, 0, time.UTC)
	records := []*models.PhotoRecord{
		{ID: "/a/IMG_0001.jpg", FileName: "IMG_0001.jpg", TakenAt: ts},
		{ID: "/b/IMG_0002.jpg", FileName: "IMG_0002.jpg", TakenAt: ts},
		{ID: "/c/IMG_0003.jpg", FileName: "IMG_0003.jpg", TakenAt: ts},
	}

	plan := BuildPlan(records, "/dest")
	seen := make(map[string]bool)
	for _, m := range plan {
		if seen[m.Dest] {
			t.Errorf("duplicate destination %q", m.Dest)
		}
		seen[m.Dest] = true
	}

	counters := 0
	for dest := range seen {
		if strings.Contains(filepath.Base(dest), "_00") {
			counters++
		}
	}
	if counters != 2 {
		t.Errorf("expected 2 counter-suffixed names, got %d", counters)
	}
}

func TestBuildPlan_DeterministicAcrossOrderings(t *testing.T) {
	ts := time.Date(2023, 7, 4, 18, 12, 5, 0, time.UTC)
	records := []*models.PhotoRecord{
		{ID: "/a/IMG_0001.jpg", FileName: "IMG_0001.jpg", TakenAt: ts},
		{ID: "/b/IMG_0002.jpg", FileName: "IMG_0002.jpg", TakenAt: ts},
	}
	reversed := []*models.PhotoRecord{records[1], records[0]}

	p1 := BuildPlan(records, "/dest")
	p2 := BuildPlan(reversed, "/dest")

	for i := range p1 {
		if p1[i].Record.ID != p2[i].Record.ID || p1[i].Dest != p2[i].Dest {
			t.Errorf("plan differs across input orders at %d: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
