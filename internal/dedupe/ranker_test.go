package dedupe

import (
	"testing"
	"time"

	"photosift/internal/models"
)

func TestRank(t *testing.T) {
	ts := time.Date(2021, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		records   []*models.PhotoRecord
		wantFirst string
	}{
		{
			name: "largest file wins",
			records: []*models.PhotoRecord{
				{ID: "small", FileName: "a.jpg", SizeBytes: 100, ExifFields: 40},
				{ID: "large", FileName: "b.jpg", SizeBytes: 1000},
			},
			wantFirst: "large",
		},
		{
			name: "tie size, richer exif wins",
			records: []*models.PhotoRecord{
				{ID: "poor", FileName: "a.jpg", SizeBytes: 100, ExifFields: 2},
				{ID: "rich", FileName: "b.jpg", SizeBytes: 100, ExifFields: 38},
			},
			wantFirst: "rich",
		},
		{
			name: "tie size and exif, timestamp presence wins",
			records: []*models.PhotoRecord{
				{ID: "undated", FileName: "a.jpg", SizeBytes: 100, ExifFields: 5},
				{ID: "dated", FileName: "b.jpg", SizeBytes: 100, ExifFields: 5, TakenAt: ts},
			},
			wantFirst: "dated",
		},
		{
			name: "full tie, name decides",
			records: []*models.PhotoRecord{
				{ID: "z", FileName: "zzz.jpg", SizeBytes: 100, ExifFields: 5, TakenAt: ts},
				{ID: "a", FileName: "aaa.jpg", SizeBytes: 100, ExifFields: 5, TakenAt: ts},
			},
			wantFirst: "a",
		},
		{
			name: "same name in different folders, id decides",
			records: []*models.PhotoRecord{
				{ID: "/backup2/a.jpg", FileName: "a.jpg", SizeBytes: 100},
				{ID: "/backup1/a.jpg", FileName: "a.jpg", SizeBytes: 100},
			},
			wantFirst: "/backup1/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := &models.EquivalenceClass{ID: 1, Records: tt.records}
			ranked := Rank(class)
			if ranked[0].ID != tt.wantFirst {
				t.Errorf("Rank first = %s, want %s", ranked[0].ID, tt.wantFirst)
			}
			if len(ranked) != len(tt.records) {
				t.Errorf("Rank returned %d records, want %d", len(ranked), len(tt.records))
			}
		})
	}
}

func TestRank_DoesNotMutateClass(t *testing.T) {
	class := &models.EquivalenceClass{ID: 1, Records: []*models.PhotoRecord{
		{ID: "1", FileName: "z.jpg", SizeBytes: 10},
		{ID: "2", FileName: "a.jpg", SizeBytes: 999},
	}}

	Rank(class)

	if class.Records[0].ID != "1" || class.Records[1].ID != "2" {
		t.Error("Rank reordered the class's own record slice")
	}
}

func TestRank_TotalOrderAcrossInputOrders(t *testing.T) {
	ts := time.Date(2021, 6, 15, 10, 30, 0, 0, time.UTC)
	records := []*models.PhotoRecord{
		{ID: "a", FileName: "x.jpg", SizeBytes: 100, ExifFields: 3, TakenAt: ts},
		{ID: "b", FileName: "x.jpg", SizeBytes: 100, ExifFields: 3, TakenAt: ts},
		{ID: "c", FileName: "x.jpg", SizeBytes: 100, ExifFields: 3, TakenAt: ts},
	}
	reversed := []*models.PhotoRecord{records[2], records[1], records[0]}

	r1 := Rank(&models.EquivalenceClass{Records: records})
	r2 := Rank(&models.EquivalenceClass{Records: reversed})

	for i := range r1 {
		if r1[i].ID != r2[i].ID {
			t.Fatalf("rank order depends on input order: %s vs %s at %d", r1[i].ID, r2[i].ID, i)
		}
	}
}
