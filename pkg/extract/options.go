package extract

import (
	"time"

	"github.com/localeforge/core/pkg/icu"
)

// DefaultModuleSource is the module the recognized imports must come from.
const DefaultModuleSource = "react-intl"

// Options configures extraction and scanning behavior.
type Options struct {
	// EnforceDescriptions requires a description on every stored message.
	EnforceDescriptions bool

	// ExcludePatterns specifies directory names to skip during file discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// GenerateMessageIDs derives content-hash ids for declarations without an
	// explicit id and injects them into the source.
	GenerateMessageIDs bool

	// MaxFileSize is the maximum file size in bytes to process.
	// Files larger than this are skipped.
	MaxFileSize int64

	// MessagesDir is the output root for per-file JSON catalogs.
	// Empty disables persistence.
	MessagesDir string

	// ModuleSource is the module the recognized component and function
	// imports must come from. Defaults to DefaultModuleSource.
	ModuleSource string

	// Normalizer validates and canonicalizes defaultMessage content.
	// Defaults to icu.Normalize.
	Normalizer func(string) (string, error)

	// Patterns specifies glob patterns to filter source files.
	// Empty means all candidates are processed.
	Patterns []string

	// RemoveExtractedData strips extracted literal fields from the rewritten
	// source, leaving only the id for runtime lookup.
	RemoveExtractedData bool

	// Timeout is the maximum duration for a whole scan operation.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file extractions.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring extraction.
type Option func(*Options)

// WithModuleSource overrides the module the recognized imports must come from.
func WithModuleSource(source string) Option {
	return func(o *Options) {
		if source != "" {
			o.ModuleSource = source
		}
	}
}

// WithMessagesDir sets the output root for per-file JSON catalogs.
func WithMessagesDir(dir string) Option {
	return func(o *Options) {
		o.MessagesDir = dir
	}
}

// WithEnforceDescriptions requires a description on every stored message.
func WithEnforceDescriptions(enforce bool) Option {
	return func(o *Options) {
		o.EnforceDescriptions = enforce
	}
}

// WithGenerateMessageIDs enables content-hash id generation.
func WithGenerateMessageIDs(generate bool) Option {
	return func(o *Options) {
		o.GenerateMessageIDs = generate
	}
}

// WithRemoveExtractedData strips extracted fields from the rewritten source.
func WithRemoveExtractedData(remove bool) Option {
	return func(o *Options) {
		o.RemoveExtractedData = remove
	}
}

// WithNormalizer replaces the default interpolation-grammar validator.
func WithNormalizer(normalize func(string) (string, error)) Option {
	return func(o *Options) {
		if normalize != nil {
			o.Normalizer = normalize
		}
	}
}

// WithWorkers sets the number of concurrent file extractions.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the scan timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithExcludePatterns adds directory patterns to skip during file discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithPatterns sets glob patterns to filter source files.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithMaxFileSize sets the maximum file size to process.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.ModuleSource == "" {
		opts.ModuleSource = DefaultModuleSource
	}
	if opts.Normalizer == nil {
		opts.Normalizer = icu.Normalize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
}
