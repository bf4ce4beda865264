package extract

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// scanElement recognizes declarative element sites: JSX elements whose tag is
// an import binding of one of the recognized message components.
//
// A site whose defaultMessage does not resolve is assumed to be fully dynamic
// (e.g. spread-only props handled elsewhere) and is left alone. Returns
// handled when the element was a recognized site so traversal skips it.
func (s *unitScan) scanElement(node *sitter.Node) (bool, error) {
	name := node.ChildByFieldName("name")
	if name == nil || name.Type() != "identifier" {
		return false, nil
	}
	if !s.bindings.references(nodeText(name, s.source), componentFormatted, componentFormattedHTML) {
		return false, nil
	}

	pairs := collectAttributePairs(node)
	built, err := s.extractor.buildDescriptor(pairs, s.source, s.path)
	if err != nil {
		return true, err
	}

	desc := built.desc
	if desc.DefaultMessage == "" {
		return true, nil
	}

	opts := s.extractor.options
	if opts.GenerateMessageIDs && desc.ID == "" {
		id, err := generateID(desc)
		if err != nil {
			return true, siteErr(err, nodeLocation(node, s.path))
		}
		desc.ID = id
		s.edits = append(s.edits, edit{
			start: name.EndByte(),
			end:   name.EndByte(),
			text:  fmt.Sprintf(" id=%q", id),
		})
	}

	if err := s.registry.store(desc, nodeLocation(node, s.path)); err != nil {
		return true, err
	}

	if opts.RemoveExtractedData {
		for field, site := range built.sites {
			if field == fieldID {
				continue
			}
			s.edits = append(s.edits, deleteWithLeadingSpace(site, s.source))
		}
	}

	return true, nil
}

// collectAttributePairs gathers the element's literal-named attributes as
// (key, value) pairs. Spread attributes and namespaced names are ignored.
func collectAttributePairs(element *sitter.Node) []sitePair {
	var pairs []sitePair

	for _, attr := range findChildrenByType(element, "jsx_attribute") {
		var key, value *sitter.Node
		for i := 0; i < int(attr.NamedChildCount()); i++ {
			child := attr.NamedChild(i)
			if i == 0 {
				key = child
				continue
			}
			value = child
		}
		if key == nil || key.Type() != "property_identifier" {
			continue
		}
		pairs = append(pairs, sitePair{key: key, value: value, site: attr})
	}

	return pairs
}

// deleteWithLeadingSpace removes a node's byte range together with the
// whitespace run immediately before it, so stripped attributes and properties
// do not leave double spaces behind.
func deleteWithLeadingSpace(node *sitter.Node, source []byte) edit {
	start := node.StartByte()
	for start > 0 && isSourceSpace(source[start-1]) {
		start--
	}
	return edit{start: start, end: node.EndByte()}
}

func isSourceSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
