package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"photosift/internal/models"
	"photosift/internal/storage"
)

var (
	listJSON    bool
	listVerbose bool
	listSummary bool
	listLimit   int
	listOffset  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all duplicate sets",
	Long: `Display all detected duplicate sets with their photos.

Each set shows:
- Set ID
- Photos in the set with size and metadata
- Which photo will be kept (best quality) marked with ✓
- Which photos are excluded marked with ✗

Example:
  photosift list              # Show first 10 sets (default)
  photosift list -n 0         # Show all sets
  photosift list -s           # Summary view (compact)
  photosift list --offset 10  # Sets 11-20`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listVerbose, "verbose-photos", "V", false, "Show detailed photo info")
	listCmd.Flags().BoolVarP(&listSummary, "summary", "s", false, "Show summary only (set counts and sizes)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Limit number of sets to display (0 = all)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Skip first N sets (for pagination)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	sets, err := store.GetDuplicateSets()
	if err != nil {
		return fmt.Errorf("failed to get duplicate sets: %w", err)
	}

	if len(sets) == 0 {
		fmt.Println("No duplicate sets found.")
		fmt.Println("Run 'photosift scan <folder>' to scan for duplicates.")
		return nil
	}

	if listJSON {
		return json.NewEncoder(os.Stdout).Encode(sets)
	}

	// Calculate totals
	totalDuplicates := 0
	var totalSavings int64
	for _, set := range sets {
		for _, rec := range set.Drop {
			totalDuplicates++
			totalSavings += rec.SizeBytes
		}
	}

	fmt.Printf("Found %d duplicate sets (%d duplicates, %s reclaimable)\n\n",
		len(sets), totalDuplicates, formatSize(totalSavings))

	// Apply pagination
	totalSets := len(sets)
	startIdx := listOffset
	if startIdx > len(sets) {
		startIdx = len(sets)
	}
	sets = sets[startIdx:]

	if listLimit > 0 && listLimit < len(sets) {
		sets = sets[:listLimit]
	}

	// Display sets
	if len(sets) == 0 {
		fmt.Printf("No sets in range (offset %d exceeds total %d)\n", listOffset, totalSets)
	} else if listSummary {
		printSummaryTable(sets)
	} else {
		for _, set := range sets {
			printSet(set, listVerbose)
		}
	}

	// Show pagination info
	endIdx := startIdx + len(sets)
	if len(sets) > 0 {
		fmt.Printf("Showing sets %d-%d of %d\n", startIdx+1, endIdx, totalSets)
		if endIdx < totalSets {
			limitArg := ""
			if listLimit > 0 {
				limitArg = fmt.Sprintf(" -n %d", listLimit)
			}
			fmt.Printf("Next page: photosift list%s --offset %d\n", limitArg, endIdx)
		}
	}

	fmt.Println()
	fmt.Println("Run 'photosift clean --dry-run' to preview duplicate removal")
	fmt.Println("Run 'photosift organize <dest>' to file kept photos into a date tree")

	return nil
}

func printSummaryTable(sets []*models.DuplicateSet) {
	fmt.Printf("%-8s  %-8s  %-12s  %s\n", "Set", "Photos", "Reclaimable", "Keep (best quality)")
	fmt.Println(strings.Repeat("-", 70))

	for _, set := range sets {
		var reclaimable int64
		for _, rec := range set.Drop {
			reclaimable += rec.SizeBytes
		}

		keepName := ""
		if set.Keep != nil {
			keepName = filepath.Base(set.Keep.Path)
		}
		if len(keepName) > 35 {
			keepName = keepName[:32] + "..."
		}

		fmt.Printf("#%-7d  %-8d  %-12s  %s\n",
			set.ClassID, len(set.Photos), formatSize(reclaimable), keepName)
	}
	fmt.Println()
}

func printSet(set *models.DuplicateSet, verbose bool) {
	fmt.Printf("Set #%d (%d photos)\n", set.ClassID, len(set.Photos))
	fmt.Println(strings.Repeat("-", 60))

	for _, rec := range set.Photos {
		isKeep := set.Keep != nil && rec.Path == set.Keep.Path
		marker := "✗"
		if isKeep {
			marker = "✓"
		}

		shortPath := shortenPath(rec.Path, 40)

		if verbose {
			fmt.Printf("  %s %s\n", marker, rec.Path)
			fmt.Printf("      Size: %s  EXIF tags: %d  Taken: %s\n",
				formatSize(rec.SizeBytes), rec.ExifFields, formatTaken(rec))
			if rec.Width > 0 {
				fmt.Printf("      Resolution: %dx%d  Format: %s\n",
					rec.Width, rec.Height, strings.ToUpper(rec.Format))
			}
			if rec.CameraMake != "" {
				fmt.Printf("      Camera: %s %s\n", rec.CameraMake, rec.CameraModel)
			}
		} else {
			fmt.Printf("  %s %-40s  %8s  EXIF: %-3d  %s\n",
				marker, shortPath, formatSize(rec.SizeBytes), rec.ExifFields, formatTaken(rec))
		}
	}
	fmt.Println()
}

func formatTaken(rec *models.PhotoRecord) string {
	if !rec.HasTimestamp() {
		return "unknown"
	}
	return rec.TakenAt.Format("2006-01-02 15:04:05")
}

func shortenPath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	// Try to show filename and as much of the path as possible
	dir, file := filepath.Split(path)
	if len(file) >= maxLen-3 {
		return "..." + file[len(file)-(maxLen-3):]
	}

	remaining := maxLen - len(file) - 4 // 4 for ".../"
	if remaining > 0 && len(dir) > remaining {
		dir = dir[len(dir)-remaining:]
	}
	return "..." + dir + file
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
