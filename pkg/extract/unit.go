package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/localeforge/core/pkg/domain"
	"github.com/localeforge/core/pkg/extract/tspool"
)

// Extractor extracts message declarations from individual source files.
// It is safe for concurrent use; all per-file state lives in the unit scan.
type Extractor struct {
	options *Options
}

// NewExtractor creates an extractor with the given options.
func NewExtractor(opts ...Option) *Extractor {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Extractor{options: options}
}

func (e *Extractor) normalize(text string) (string, error) {
	return e.options.Normalizer(text)
}

// UnitResult is the outcome of extracting one source file.
type UnitResult struct {
	// File holds the extracted descriptors in first-discovery order.
	File *domain.MessageFile

	// Source is the rewritten source when id injection or field stripping
	// mutated the file; nil when the source is unchanged.
	Source []byte

	// Warnings lists declarations that were skipped non-fatally.
	Warnings []Warning

	// InScope is false when the file imports none of the recognized
	// declaration forms and was skipped without further work.
	InScope bool
}

// unitScan is the per-file extraction state: one registry, one edit set, one
// import table, threaded explicitly through the traversal. Discarded with the
// unit.
type unitScan struct {
	extractor *Extractor
	source    []byte
	path      string
	bindings  importBindings
	registry  *registry
	edits     []edit
	err       error
}

// ExtractFile extracts the message declarations of a single file.
//
// The file goes through the unit lifecycle: parse, import short-circuit,
// scan, export. A fatal site error abandons the whole file; there is no
// partial catalog for a failing unit. When a messages directory is
// configured, the exported descriptors are also persisted as JSON under a
// path mirroring relPath.
func (e *Extractor) ExtractFile(ctx context.Context, source []byte, relPath string) (*UnitResult, error) {
	lang := DetectLanguage(relPath)

	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", relPath, err)
	}
	defer tree.Close()
	root := tree.RootNode()

	bindings := collectImportBindings(root, source, e.options.ModuleSource)
	if !bindings.hasAny() {
		return &UnitResult{InScope: false}, nil
	}

	scan := &unitScan{
		extractor: e,
		source:    source,
		path:      relPath,
		bindings:  bindings,
		registry:  newRegistry(e.options.EnforceDescriptions),
	}

	walkTree(root, func(node *sitter.Node) bool {
		if scan.err != nil {
			return false
		}

		switch node.Type() {
		case "jsx_opening_element", "jsx_self_closing_element":
			handled, err := scan.scanElement(node)
			if err != nil {
				scan.err = err
				return false
			}
			return !handled
		case "call_expression":
			handled, err := scan.scanCall(node)
			if err != nil {
				scan.err = err
				return false
			}
			return !handled
		default:
			return true
		}
	})

	if scan.err != nil {
		return nil, scan.err
	}

	rewritten, err := applyEdits(source, scan.edits)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", relPath, err)
	}

	result := &UnitResult{
		File: &domain.MessageFile{
			Path:     relPath,
			Language: lang,
			Messages: scan.registry.export(),
		},
		Warnings: scan.registry.warnings,
		InScope:  true,
	}
	if len(scan.edits) > 0 {
		result.Source = rewritten
	}

	if e.options.MessagesDir != "" && len(result.File.Messages) > 0 {
		if err := writeMessages(e.options.MessagesDir, relPath, result.File.Messages); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// writeMessages persists one unit's descriptors as a pretty-printed JSON array
// at <dir>/<relPath with .json extension>, creating directories as needed.
func writeMessages(dir, relPath string, messages []domain.MessageDescriptor) error {
	base := filepath.Base(relPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	outPath := filepath.Join(dir, filepath.Dir(relPath), base)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create messages dir for %s: %w", relPath, err)
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode messages for %s: %w", relPath, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write messages for %s: %w", relPath, err)
	}

	return nil
}
