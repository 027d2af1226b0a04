package scan

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewScanner_Defaults(t *testing.T) {
	s := NewScanner()
	if s.workers != 8 {
		t.Errorf("default workers = %d, want 8", s.workers)
	}
	if s.timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", s.timeout)
	}
}

func TestWithWorkers_IgnoresNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		s := NewScanner(WithWorkers(n))
		if s.workers != 8 {
			t.Errorf("WithWorkers(%d): workers = %d, want default 8", n, s.workers)
		}
	}
	if s := NewScanner(WithWorkers(3)); s.workers != 3 {
		t.Errorf("WithWorkers(3): workers = %d, want 3", s.workers)
	}
}

func TestScanFolder_Empty(t *testing.T) {
	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolder(t.TempDir())
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if records != nil {
		t.Errorf("expected nil for empty folder, got %d records", len(records))
	}
}

func TestScanFolder_SkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "photo.jpg"), []byte("jpg-bytes"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("text"))
	writeFile(t, filepath.Join(dir, "movie.mp4"), []byte("video"))

	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].FileName != "photo.jpg" {
		t.Errorf("scanned %q, want photo.jpg", records[0].FileName)
	}
}

func TestScanFolder_SkipsHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "visible.jpg"), []byte("a"))
	writeFile(t, filepath.Join(dir, ".hidden.jpg"), []byte("b"))
	writeFile(t, filepath.Join(dir, ".thumbnails", "thumb.jpg"), []byte("c"))

	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].FileName != "visible.jpg" {
		t.Errorf("scanned %q, want visible.jpg", records[0].FileName)
	}
}

func TestScanFolder_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.jpg"), []byte("1"))
	writeFile(t, filepath.Join(dir, "2021", "summer", "beach.jpg"), []byte("2"))
	writeFile(t, filepath.Join(dir, "2022", "winter.png"), []byte("3"))

	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records across subfolders, got %d", len(records))
	}
}

func TestScanFolder_Progress(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		writeFile(t, filepath.Join(dir, name), []byte(name))
	}

	var mu sync.Mutex
	var calls int
	var lastTotal int
	s := NewScanner(
		WithWorkers(2),
		WithProgress(func(done, total int, current string) {
			mu.Lock()
			calls++
			lastTotal = total
			mu.Unlock()
		}),
	)

	if _, err := s.ScanFolder(dir); err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Errorf("progress called %d times, want 3", calls)
	}
	if lastTotal != 3 {
		t.Errorf("progress total = %d, want 3", lastTotal)
	}
}

func TestScanFolders_Aggregates(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "a.jpg"), []byte("a"))
	writeFile(t, filepath.Join(dirB, "b.jpg"), []byte("b"))
	writeFile(t, filepath.Join(dirB, "c.png"), []byte("c"))

	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolders([]string{dirA, dirB})
	if err != nil {
		t.Fatalf("ScanFolders failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records from both folders, got %d", len(records))
	}
}

func TestScanFolder_RecordIDsArePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.jpg")
	writeFile(t, path, []byte("x"))

	s := NewScanner(WithLogger(zerolog.Nop()))
	records, err := s.ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID != path {
		t.Errorf("record ID = %q, want the file path %q", records[0].ID, path)
	}
}
