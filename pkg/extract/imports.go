package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Recognized declaration forms importable from the configured module source.
const (
	componentFormatted     = "FormattedMessage"
	componentFormattedHTML = "FormattedHTMLMessage"
	funcDefineMessage      = "defineMessage"
	funcDefineMessages     = "defineMessages"
)

// importBindings maps local names to the names they were imported as from the
// configured module source. It implements the import-binding trace: whether an
// identifier at a site refers to a specific export of a specific module.
type importBindings map[string]string

// collectImportBindings scans the unit's top-level import statements and keeps
// the named imports (including aliases) coming from moduleSource.
func collectImportBindings(root *sitter.Node, source []byte, moduleSource string) importBindings {
	bindings := make(importBindings)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "import_statement" {
			continue
		}

		src := stmt.ChildByFieldName("source")
		if src == nil || unquoteString(nodeText(src, source)) != moduleSource {
			continue
		}

		clause := findChildByType(stmt, "import_clause")
		if clause == nil {
			continue
		}

		named := findChildByType(clause, "named_imports")
		if named == nil {
			continue
		}

		for j := 0; j < int(named.NamedChildCount()); j++ {
			spec := named.NamedChild(j)
			if spec.Type() != "import_specifier" {
				continue
			}

			name := spec.ChildByFieldName("name")
			if name == nil {
				continue
			}
			imported := nodeText(name, source)

			local := imported
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = nodeText(alias, source)
			}

			bindings[local] = imported
		}
	}

	return bindings
}

// references reports whether the local identifier name is bound to one of the
// candidate imported names.
func (b importBindings) references(local string, candidates ...string) bool {
	imported, ok := b[local]
	if !ok {
		return false
	}
	for _, c := range candidates {
		if imported == c {
			return true
		}
	}
	return false
}

// hasAny reports whether any recognized declaration form is imported at all.
// Files importing none are out of scope and skipped without a registry.
func (b importBindings) hasAny() bool {
	for _, imported := range b {
		switch imported {
		case componentFormatted, componentFormattedHTML, funcDefineMessage, funcDefineMessages:
			return true
		}
	}
	return false
}
