package extract

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// scanCall recognizes function-call sites: calls whose callee is an import
// binding of the single-descriptor form or the batch form. Returns handled
// when the call was a recognized site so traversal skips its subtree.
func (s *unitScan) scanCall(node *sitter.Node) (bool, error) {
	callee := node.ChildByFieldName("function")
	if callee == nil || callee.Type() != "identifier" {
		return false, nil
	}

	name := nodeText(callee, s.source)
	if !s.bindings.references(name, funcDefineMessage, funcDefineMessages) {
		return false, nil
	}

	args := node.ChildByFieldName("arguments")
	var arg *sitter.Node
	if args != nil && args.NamedChildCount() > 0 {
		arg = args.NamedChild(0)
	}
	if arg == nil || arg.Type() != "object" {
		loc := nodeLocation(node, s.path)
		return true, siteErr(fmt.Errorf("%s(): %w", name, ErrBadCallArgument), loc)
	}

	if s.bindings[name] == funcDefineMessage {
		return true, s.scanDescriptorObject(arg)
	}

	// Batch form: every property value is itself a descriptor object.
	for i := 0; i < int(arg.NamedChildCount()); i++ {
		pair := arg.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		value := pair.ChildByFieldName("value")
		if value == nil || value.Type() != "object" {
			loc := nodeLocation(pair, s.path)
			return true, siteErr(fmt.Errorf("%s(): %w", name, ErrBadCallArgument), loc)
		}
		if err := s.scanDescriptorObject(value); err != nil {
			return true, err
		}
	}

	return true, nil
}

// scanDescriptorObject extracts one object-literal descriptor, mirroring the
// element recognizer's id-generation and storage steps. Stripping replaces the
// whole object with a fresh literal holding only the id, so the call yields
// the bare identifier object at runtime.
func (s *unitScan) scanDescriptorObject(obj *sitter.Node) error {
	pairs := collectObjectPairs(obj)
	built, err := s.extractor.buildDescriptor(pairs, s.source, s.path)
	if err != nil {
		return err
	}

	desc := built.desc
	opts := s.extractor.options

	if opts.GenerateMessageIDs && desc.ID == "" && desc.DefaultMessage != "" {
		id, err := generateID(desc)
		if err != nil {
			return siteErr(err, nodeLocation(obj, s.path))
		}
		desc.ID = id
		if !opts.RemoveExtractedData {
			s.edits = append(s.edits, edit{
				start: obj.StartByte() + 1,
				end:   obj.StartByte() + 1,
				text:  fmt.Sprintf(" id: %q,", id),
			})
		}
	}

	if err := s.registry.store(desc, nodeLocation(obj, s.path)); err != nil {
		return err
	}

	if opts.RemoveExtractedData && desc.DefaultMessage != "" {
		s.edits = append(s.edits, edit{
			start: obj.StartByte(),
			end:   obj.EndByte(),
			text:  fmt.Sprintf("{ id: %q }", desc.ID),
		})
	}

	return nil
}

// collectObjectPairs gathers an object literal's properties as (key, value)
// pairs. Spread elements are ignored; shorthand properties surface with a nil
// value so recognized names fail static evaluation.
func collectObjectPairs(obj *sitter.Node) []sitePair {
	var pairs []sitePair

	for i := 0; i < int(obj.NamedChildCount()); i++ {
		child := obj.NamedChild(i)
		switch child.Type() {
		case "pair":
			pairs = append(pairs, sitePair{
				key:   child.ChildByFieldName("key"),
				value: child.ChildByFieldName("value"),
				site:  child,
			})
		case "shorthand_property_identifier":
			pairs = append(pairs, sitePair{key: child, site: child})
		}
	}

	return pairs
}
