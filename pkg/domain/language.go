// Package domain defines the core types for extracted message catalogs.
package domain

// Language represents a source language handled by the extractor.
type Language string

// Supported source languages.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"
)
