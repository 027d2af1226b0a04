package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"photosift/internal/fileutil"
	"photosift/internal/organize"
	"photosift/internal/storage"
)

var (
	organizeCopy   bool
	organizeDryRun bool
	organizeYes    bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize <dest>",
	Short: "File kept photos into a YYYY/MM/DD tree",
	Long: `Move (or copy) the kept photo of every duplicate set, and every unique
photo, into a date-based folder structure under the destination.

Photos are filed by capture date (EXIF, falling back to modification time)
as <dest>/YYYY/MM/DD/. Meaningful file names are preserved; camera-generated
names (IMG_1234.jpg, DSC01234.jpg, ...) are replaced with the capture
timestamp. Name collisions get a _NNN suffix.

Excluded duplicates are left in place; use 'photosift clean' for those.

Example:
  photosift organize ~/Photos/sorted
  photosift organize ~/Photos/sorted --copy       # Keep originals
  photosift organize ~/Photos/sorted --dry-run    # Preview only`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeCopy, "copy", false, "Copy instead of move")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Preview without touching files")
	organizeCmd.Flags().BoolVarP(&organizeYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	dest, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	kept, err := store.GetKeptPhotos()
	if err != nil {
		return fmt.Errorf("failed to load kept photos: %w", err)
	}

	if len(kept) == 0 {
		fmt.Println("No photos in the catalog.")
		fmt.Println("Run 'photosift scan <folder>' first.")
		return nil
	}

	plan := organize.BuildPlan(kept, dest)

	action := "move"
	if organizeCopy {
		action = "copy"
	}
	fmt.Printf("Will %s %d photos into %s\n\n", action, len(plan), dest)

	if organizeDryRun {
		for _, mv := range plan {
			fmt.Printf("  %s -> %s\n", mv.Record.Path, mv.Dest)
		}
		fmt.Println()
		fmt.Println("(Dry run - no files were modified)")
		return nil
	}

	if !organizeYes {
		fmt.Printf("Are you sure you want to %s %d photos? [y/N]: ", action, len(plan))
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	var processed, failed int
	for _, mv := range plan {
		var err error
		if organizeCopy {
			err = fileutil.CopyTo(mv.Record.Path, mv.Dest)
		} else {
			err = fileutil.MoveTo(mv.Record.Path, mv.Dest)
		}

		if err != nil {
			logger.Error().Err(err).Str("path", mv.Record.Path).Msg("failed to organize photo")
			failed++
			continue
		}
		processed++
		if !organizeCopy {
			store.UpdatePhotoPath(mv.Record.Path, mv.Dest)
		}
	}

	fmt.Println()
	fmt.Printf("Organized %d photos into %s\n", processed, dest)
	if failed > 0 {
		fmt.Printf("Failed: %d photos\n", failed)
	}

	return nil
}
