package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"photosift/internal/dedupe"
	"photosift/internal/scan"
	"photosift/internal/storage"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Scan a folder and detect duplicate photos",
	Long: `Scan a folder recursively for photos and detect duplicates.

The scan will:
1. Find all supported photos (jpg, png, gif, webp, tiff, heic)
2. Extract metadata for each: content hash, EXIF capture time, camera
3. Partition the photos into duplicate sets
4. Pick the best copy of each set and store the decisions in the catalog

Example:
  photosift scan ./backups
  photosift scan /mnt/old-drive --time-tolerance 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	folder := args[0]

	// Resolve absolute path
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	// Check folder exists
	info, err := os.Stat(absFolder)
	if err != nil {
		return fmt.Errorf("folder not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absFolder)
	}

	fmt.Printf("Scanning: %s\n", absFolder)
	fmt.Printf("Workers: %d\n\n", workers)

	// Initialize catalog
	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	// Create scanner with progress reporting
	lastLine := ""
	s := scan.NewScanner(
		scan.WithWorkers(workers),
		scan.WithLogger(logger),
		scan.WithProgress(func(done, total int, current string) {
			// Clear previous line
			if lastLine != "" {
				fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
			}
			shortPath := current
			if len(shortPath) > 50 {
				shortPath = "..." + shortPath[len(shortPath)-47:]
			}
			lastLine = fmt.Sprintf("Progress: %d/%d  %s", done, total, shortPath)
			fmt.Print(lastLine)
		}),
	)

	records, err := s.ScanFolder(absFolder)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Clear progress line
	if lastLine != "" {
		fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
	}

	fmt.Printf("Scanned: %d photos\n", len(records))

	if len(records) == 0 {
		fmt.Println("No photos found.")
		return nil
	}

	// Detect duplicates and pick keepers
	fmt.Println("Finding duplicates...")
	pipeline := dedupe.NewPipeline(coreConfig(), logger)
	result := pipeline.Run(records)

	if err := store.SavePhotos(records); err != nil {
		return fmt.Errorf("failed to save photos: %w", err)
	}
	if err := store.ApplySelection(result.Classes, result.Decisions); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	sets := result.DuplicateSets()
	totalDuplicates := 0
	for _, set := range sets {
		totalDuplicates += len(set.Drop)
	}
	store.RecordRun(absFolder, len(records), len(result.Classes), totalDuplicates)

	// Print summary
	fmt.Println()
	fmt.Println("=== Scan Complete ===")
	fmt.Printf("Total photos:     %d\n", len(records))
	fmt.Printf("Unique photos:    %d\n", len(result.Classes))
	fmt.Printf("Duplicate sets:   %d\n", len(sets))
	fmt.Printf("Duplicates found: %d\n", totalDuplicates)
	if len(result.Rejected) > 0 {
		fmt.Printf("Rejected records: %d (see log)\n", len(result.Rejected))
	}

	if len(sets) > 0 {
		fmt.Println()
		fmt.Println("Run 'photosift list' to see duplicate sets")
		fmt.Println("Run 'photosift clean --dry-run' to preview duplicate removal")
	}

	return nil
}
