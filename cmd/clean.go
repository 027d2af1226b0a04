package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"photosift/internal/fileutil"
	"photosift/internal/models"
	"photosift/internal/storage"
)

var (
	cleanDryRun    bool
	cleanMoveTo    string
	cleanPermanent bool
	cleanNoConfirm bool
	cleanSetIDs    []int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove or move duplicate photos",
	Long: `Remove duplicate photos, keeping the best quality copy of each set.

The clean command will:
1. Keep the best copy of every duplicate set (largest, richest metadata)
2. Move the excluded copies to trash (default) or delete permanently

Options:
  --dry-run     Preview what would be removed without actually removing
  --permanent   Delete files permanently instead of moving to trash
  --move-to     Move duplicates to a specific folder
  --yes         Skip confirmation prompt
  --set         Specify set IDs to clean (can be used multiple times)

Example:
  photosift clean                     # Move to trash (default)
  photosift clean --permanent         # Delete permanently
  photosift clean --move-to=./backup  # Move to specific folder
  photosift clean --dry-run           # Preview only
  photosift clean --set=1 --set=3     # Clean only sets 1 and 3`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview without removing")
	cleanCmd.Flags().BoolVar(&cleanPermanent, "permanent", false, "Delete permanently instead of moving to trash")
	cleanCmd.Flags().StringVar(&cleanMoveTo, "move-to", "", "Move duplicates to this folder")
	cleanCmd.Flags().BoolVarP(&cleanNoConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().IntSliceVar(&cleanSetIDs, "set", nil, "Set IDs to clean (can be specified multiple times)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
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
		return nil
	}

	// Filter sets if --set is specified
	if len(cleanSetIDs) > 0 {
		setIDSet := make(map[int]bool)
		for _, id := range cleanSetIDs {
			setIDSet[id] = true
		}

		var filtered []*models.DuplicateSet
		for _, set := range sets {
			if setIDSet[set.ClassID] {
				filtered = append(filtered, set)
			}
		}

		if len(filtered) == 0 {
			fmt.Printf("No matching sets found for IDs: %v\n", cleanSetIDs)
			fmt.Println("Run 'photosift list' to see available set IDs.")
			return nil
		}

		sets = filtered
		fmt.Printf("Processing %d selected set(s): %v\n\n", len(sets), cleanSetIDs)
	}

	// Collect files to remove
	var toRemove []string
	var totalSize int64
	for _, set := range sets {
		for _, rec := range set.Drop {
			// Verify file still exists
			if _, err := os.Stat(rec.Path); err == nil {
				toRemove = append(toRemove, rec.Path)
				totalSize += rec.SizeBytes
			}
		}
	}

	if len(toRemove) == 0 {
		fmt.Println("No files to remove (files may have been already deleted).")
		return nil
	}

	// Determine action
	var action string
	if cleanMoveTo != "" {
		action = fmt.Sprintf("move to %s", cleanMoveTo)
	} else if cleanPermanent {
		action = "permanently delete"
	} else {
		action = "move to trash"
	}

	fmt.Printf("Will %s %d files (%s)\n\n", action, len(toRemove), formatSize(totalSize))

	if cleanDryRun {
		fmt.Println("Files to be removed:")
		for _, path := range toRemove {
			fmt.Printf("  %s\n", path)
		}
		fmt.Println()
		fmt.Println("(Dry run - no files were modified)")
		fmt.Println("Run without --dry-run to actually remove files.")
		return nil
	}

	// Confirm unless --yes flag is set
	if !cleanNoConfirm {
		fmt.Printf("Are you sure you want to %s %d files? [y/N]: ", action, len(toRemove))
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Create move-to directory if needed
	if cleanMoveTo != "" {
		if err := os.MkdirAll(cleanMoveTo, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", cleanMoveTo, err)
		}
	}

	// Process files
	var processed, failed int
	for _, path := range toRemove {
		var err error
		if cleanMoveTo != "" {
			err = fileutil.MoveFile(path, cleanMoveTo)
		} else if cleanPermanent {
			err = os.Remove(path)
		} else {
			err = fileutil.MoveToTrash(path)
		}

		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to remove duplicate")
			failed++
		} else {
			processed++
			// Remove from catalog
			store.DeletePhoto(path)
		}
	}

	fmt.Println()
	if cleanMoveTo != "" {
		fmt.Printf("Moved %d files to %s\n", processed, cleanMoveTo)
	} else if cleanPermanent {
		fmt.Printf("Permanently deleted %d files\n", processed)
	} else {
		fmt.Printf("Moved %d files to trash\n", processed)
	}
	if failed > 0 {
		fmt.Printf("Failed: %d files\n", failed)
	}
	fmt.Printf("Space reclaimed: %s\n", formatSize(totalSize))

	return nil
}
