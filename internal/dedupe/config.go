package dedupe

import "time"

// Config holds the similarity tunables exposed by the core. Everything else
// (paths, dry-run, verbosity) belongs to the CLI layer.
type Config struct {
	// TimestampTolerance is the window within which two capture timestamps
	// count as the same moment.
	TimestampTolerance time.Duration

	// FilenameSimilarityThreshold is the minimum similarity ratio (0..1)
	// for two file names to count as the same name.
	FilenameSimilarityThreshold float64

	// SizeToleranceRatio is the maximum relative size difference for two
	// files to count as the same size.
	SizeToleranceRatio float64
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		TimestampTolerance:          time.Second,
		FilenameSimilarityThreshold: 0.8,
		SizeToleranceRatio:          0.05,
	}
}
