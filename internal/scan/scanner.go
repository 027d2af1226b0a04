package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"photosift/internal/meta"
	"photosift/internal/models"
)

// Scanner walks folders for photos and extracts their metadata across a
// bounded worker pool.
type Scanner struct {
	extractor  *meta.Extractor
	workers    int
	timeout    time.Duration
	progressFn func(done, total int, current string)
	log        zerolog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithWorkers sets the number of parallel workers
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithTimeout sets the timeout for extracting metadata from each file
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		s.timeout = d
	}
}

// WithProgress sets a progress callback
func WithProgress(fn func(done, total int, current string)) Option {
	return func(s *Scanner) {
		s.progressFn = fn
	}
}

// WithLogger sets the scanner's logger
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) {
		s.log = log
	}
}

// NewScanner creates a new Scanner
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		workers: 8,
		timeout: 30 * time.Second,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = meta.NewExtractor(s.log)
	return s
}

// ScanFolder walks a folder and returns metadata records for every supported
// photo in it. Hidden files and directories are skipped; files that fail
// extraction are skipped and counted, never abort the scan.
func (s *Scanner) ScanFolder(folder string) ([]*models.PhotoRecord, error) {
	// First, collect all candidate paths.
	var paths []string
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		name := info.Name()
		if info.IsDir() {
			if path != folder && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if meta.IsSupportedFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder: %w", err)
	}

	if len(paths) == 0 {
		return nil, nil
	}

	// Extract metadata in parallel.
	var (
		records   []*models.PhotoRecord
		recordsMu sync.Mutex
		wg        sync.WaitGroup
		done      int64
		failed    int64
		total     = len(paths)
	)

	work := make(chan string, len(paths))
	for _, p := range paths {
		work <- p
	}
	close(work)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				rec, err := s.extractWithTimeout(path)
				if err != nil {
					s.log.Debug().Err(err).Str("path", path).Msg("skipping file")
					atomic.AddInt64(&failed, 1)
					atomic.AddInt64(&done, 1)
					continue
				}

				recordsMu.Lock()
				records = append(records, rec)
				recordsMu.Unlock()

				n := atomic.AddInt64(&done, 1)
				if s.progressFn != nil {
					s.progressFn(int(n), total, path)
				}
			}
		}()
	}

	wg.Wait()

	if failed > 0 {
		s.log.Info().Int64("failed", failed).Int("total", total).Msg("some files could not be read")
	}

	return records, nil
}

// ScanFolders scans multiple folders
func (s *Scanner) ScanFolders(folders []string) ([]*models.PhotoRecord, error) {
	var all []*models.PhotoRecord
	for _, folder := range folders {
		records, err := s.ScanFolder(folder)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// extractWithTimeout extracts metadata for one file, failing fast so a stuck
// file cannot stall the pool.
func (s *Scanner) extractWithTimeout(path string) (*models.PhotoRecord, error) {
	type result struct {
		rec *models.PhotoRecord
		err error
	}

	ch := make(chan result, 1)
	go func() {
		rec, err := s.extractor.Extract(path)
		ch <- result{rec, err}
	}()

	select {
	case r := <-ch:
		return r.rec, r.err
	case <-time.After(s.timeout):
		return nil, fmt.Errorf("timeout extracting metadata: %s", path)
	}
}
