package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/localeforge/core/pkg/domain"
)

const (
	// DefaultWorkers indicates that the scanner should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default scan timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size for scanning (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names that are skipped by default during scanning.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	"build",
	".next",
	"coverage",
	".cache",
}

var (
	// ErrScanCancelled is returned when scanning is cancelled via context.
	ErrScanCancelled = errors.New("scanner: scan cancelled")
	// ErrScanTimeout is returned when scanning exceeds the timeout duration.
	ErrScanTimeout = errors.New("scanner: scan timeout")
)

// Scanner discovers source files under a project root and extracts their
// message declarations in parallel. Each file is an independent unit: a fatal
// extraction error fails that file only and is reported as a ScanError.
type Scanner struct {
	extractor *Extractor
	options   *Options
}

// ScanResult contains the outcome of a scan operation.
type ScanResult struct {
	// Catalog contains all in-scope files and their descriptors.
	Catalog *domain.Catalog

	// Errors contains per-file fatal errors encountered during scanning.
	Errors []ScanError

	// Warnings contains non-fatal skipped-declaration warnings across files.
	Warnings []Warning

	// Stats provides scan statistics.
	Stats ScanStats
}

// ScanError represents an error that occurred during a specific phase of scanning.
type ScanError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "extraction"
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// ScanStats provides statistics about the scan operation.
type ScanStats struct {
	// FilesScanned is the total number of source file candidates discovered.
	FilesScanned int

	// FilesInScope is the number of files that imported a recognized form.
	FilesInScope int

	// FilesFailed is the number of files that failed extraction.
	FilesFailed int

	// FilesSkipped is the number of out-of-scope files.
	FilesSkipped int

	// MessagesFound is the total number of descriptors extracted.
	MessagesFound int

	// Duration is the total scan duration.
	Duration time.Duration
}

// NewScanner creates a new scanner with the given options.
func NewScanner(opts ...Option) *Scanner {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Scanner{
		extractor: &Extractor{options: options},
		options:   options,
	}
}

// Scan performs the complete scanning process:
//  1. Discover source file candidates under rootPath
//  2. Extract message declarations from each file in parallel
//  3. Aggregate the per-file catalogs, sorted by path
func (s *Scanner) Scan(ctx context.Context, rootPath string) (*ScanResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	result := &ScanResult{
		Catalog: &domain.Catalog{
			RootPath: rootPath,
			Files:    []domain.MessageFile{},
		},
		Errors: []ScanError{},
	}

	files, errs := s.discoverSourceFiles(ctx, rootPath)
	for _, err := range errs {
		result.Errors = append(result.Errors, ScanError{
			Err:   err,
			Phase: "discovery",
		})
	}
	result.Stats.FilesScanned = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(startTime)
		return result, nil
	}

	s.extractFilesParallel(ctx, rootPath, files, result)

	result.Stats.FilesInScope = len(result.Catalog.Files)
	result.Stats.FilesSkipped = result.Stats.FilesScanned - result.Stats.FilesInScope - result.Stats.FilesFailed
	result.Stats.MessagesFound = result.Catalog.CountMessages()
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrScanTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrScanCancelled
		}
	}

	return result, nil
}

// discoverSourceFiles walks the root to find source file candidates.
// Returns paths relative to rootPath.
func (s *Scanner) discoverSourceFiles(ctx context.Context, rootPath string) ([]string, []error) {
	skipSet := buildSkipSet(append(DefaultSkipPatterns, s.options.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, rootPath, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSourceFileCandidate(path) {
			return nil
		}

		if len(s.options.Patterns) > 0 {
			if !matchesAnyPattern(path, rootPath, s.options.Patterns) {
				return nil
			}
		}

		if s.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > s.options.MaxFileSize {
				return nil
			}
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}

		files = append(files, relPath)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

func (s *Scanner) extractFilesParallel(ctx context.Context, rootPath string, files []string, result *ScanResult) {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			unit, extractErr := s.extractOne(gCtx, rootPath, file)

			mu.Lock()
			defer mu.Unlock()

			if extractErr != nil {
				result.Errors = append(result.Errors, ScanError{
					Err:   extractErr,
					Path:  file,
					Phase: "extraction",
				})
				result.Stats.FilesFailed++
				return nil
			}

			if unit != nil && unit.InScope {
				result.Catalog.Files = append(result.Catalog.Files, *unit.File)
				result.Warnings = append(result.Warnings, unit.Warnings...)
			}

			return nil
		})
	}

	_ = g.Wait()

	// Sort by path for deterministic output order.
	// Parallel goroutines complete in variable order based on file size.
	sort.Slice(result.Catalog.Files, func(i, j int) bool {
		return result.Catalog.Files[i].Path < result.Catalog.Files[j].Path
	})
}

func (s *Scanner) extractOne(ctx context.Context, rootPath, relPath string) (*UnitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(rootPath, relPath))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", relPath, err)
	}

	return s.extractor.ExtractFile(ctx, content, relPath)
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}

	base := filepath.Base(path)
	return skipSet[base]
}

func isSourceFileCandidate(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
	default:
		return false
	}

	// Declaration files and test files carry no extractable UI messages.
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".d.ts") {
		return false
	}
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return false
	}

	return true
}

func matchesAnyPattern(path, rootPath string, patterns []string) bool {
	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Scan scans rootPath with a fresh scanner.
func Scan(ctx context.Context, rootPath string, opts ...Option) (*ScanResult, error) {
	scanner := NewScanner(opts...)
	return scanner.Scan(ctx, rootPath)
}
