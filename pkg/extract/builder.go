package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/localeforge/core/pkg/domain"
)

// Recognized descriptor field names. All other keys at a declaration site are
// ignored; sites routinely carry unrelated attributes and properties.
const (
	fieldID             = "id"
	fieldDescription    = "description"
	fieldDefaultMessage = "defaultMessage"
)

// sitePair is one (key, value) pair collected at a declaration site, with a
// back-reference to the enclosing attribute/property node so the site can be
// stripped after extraction. value is nil for value-less attributes and
// shorthand properties. Ephemeral: lives for one recognizer invocation.
type sitePair struct {
	key   *sitter.Node
	value *sitter.Node
	site  *sitter.Node
}

// builtDescriptor is a candidate descriptor plus the site node of each
// recognized field, used by the stripping edits.
type builtDescriptor struct {
	desc  domain.MessageDescriptor
	sites map[string]*sitter.Node
}

// buildDescriptor resolves recognized fields from a site's pairs.
//
// Keys are resolved to plain names (identifier text, string literal, or a
// statically evaluated computed key). Values of recognized fields must be
// statically evaluable; the defaultMessage value is additionally validated
// against the interpolation-message grammar. Absent fields stay absent.
func (e *Extractor) buildDescriptor(pairs []sitePair, source []byte, filename string) (builtDescriptor, error) {
	built := builtDescriptor{sites: make(map[string]*sitter.Node)}

	for _, pair := range pairs {
		name, ok := resolveFieldName(pair.key, source)
		if !ok {
			continue
		}
		if name != fieldID && name != fieldDescription && name != fieldDefaultMessage {
			continue
		}

		if pair.value == nil {
			return built, siteErr(ErrNotStaticallyEvaluable, nodeLocation(pair.key, filename))
		}

		value, confident := evaluate(pair.value, source)
		if !confident {
			return built, siteErr(ErrNotStaticallyEvaluable, nodeLocation(pair.value, filename))
		}
		value = strings.TrimSpace(value)

		switch name {
		case fieldID:
			built.desc.ID = value
		case fieldDescription:
			built.desc.Description = value
		case fieldDefaultMessage:
			normalized, err := e.normalize(value)
			if err != nil {
				return built, siteErr(fmt.Errorf("%w: %v", ErrMessageSyntax, err), nodeLocation(pair.value, filename))
			}
			built.desc.DefaultMessage = normalized
		}
		built.sites[name] = pair.site
	}

	return built, nil
}

// resolveFieldName turns a key node into a plain field name.
// Simple name tokens use their literal text; anything else must evaluate to a
// constant string. Unresolvable keys are treated as unrecognized, not errors.
func resolveFieldName(key *sitter.Node, source []byte) (string, bool) {
	if key == nil {
		return "", false
	}

	switch key.Type() {
	case "property_identifier", "identifier", "shorthand_property_identifier":
		return nodeText(key, source), true
	case "string":
		return unquoteString(nodeText(key, source)), true
	case "computed_property_name":
		if value, ok := evaluate(innerExpression(key), source); ok {
			return value, true
		}
		return "", false
	default:
		return "", false
	}
}
