package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"photosift/internal/dedupe"
)

var (
	dbPath        string
	workers       int
	verbose       bool
	timeTolerance time.Duration
	nameThreshold float64
	sizeTolerance float64

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "photosift",
	Short: "Consolidate messy photo collections",
	Long: `photosift sorts out photo collections accumulated from multiple backup
tools: it finds duplicate photos, keeps the best copy of each, and organizes
the keepers into a clean YYYY/MM/DD folder structure.

Duplicates are detected by content hash (exact copies) and by combined
capture-time, filename, and size evidence (re-encoded or re-exported copies).
The best copy is chosen by file size, then EXIF richness.

Example usage:
  photosift scan ./backups            # Scan and detect duplicates
  photosift list                      # List duplicate sets
  photosift organize ~/Photos/sorted  # File keepers into a date tree
  photosift clean --dry-run           # Preview duplicate removal`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Default catalog path
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".photosift", "catalog.db")

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "Path to SQLite catalog")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 8, "Number of parallel workers for scanning")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeTolerance, "time-tolerance", time.Second,
		"Capture timestamp window for likely duplicates")
	rootCmd.PersistentFlags().Float64Var(&nameThreshold, "name-threshold", 0.8,
		"Filename similarity threshold (0-1) for likely duplicates")
	rootCmd.PersistentFlags().Float64Var(&sizeTolerance, "size-tolerance", 0.05,
		"Relative file size tolerance for likely duplicates")
}

// coreConfig builds the similarity tunables from the CLI flags.
func coreConfig() dedupe.Config {
	cfg := dedupe.DefaultConfig()
	if timeTolerance > 0 {
		cfg.TimestampTolerance = timeTolerance
	}
	if nameThreshold > 0 && nameThreshold <= 1 {
		cfg.FilenameSimilarityThreshold = nameThreshold
	}
	if sizeTolerance > 0 && sizeTolerance < 1 {
		cfg.SizeToleranceRatio = sizeTolerance
	}
	return cfg
}
