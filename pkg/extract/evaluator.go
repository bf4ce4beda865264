package extract

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// unquoteString strips quotes from a JS string literal and resolves escapes.
func unquoteString(text string) string {
	if len(text) < 2 {
		return text
	}

	if text[0] == '`' && text[len(text)-1] == '`' {
		return text[1 : len(text)-1]
	}

	// Handle single-quoted JavaScript strings.
	// Go's strconv.Unquote only handles double-quoted strings, so we need to
	// convert single-quoted strings to double-quoted format first:
	// 1. Remove outer single quotes and get the inner content
	// 2. Unescape JavaScript's escaped single quotes (\' -> ')
	// 3. Escape any double quotes for Go's strconv.Unquote
	// 4. Wrap in double quotes and parse with strconv.Unquote
	if text[0] == '\'' && text[len(text)-1] == '\'' {
		inner := text[1 : len(text)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		escaped := strings.ReplaceAll(inner, `"`, `\"`)
		converted := `"` + escaped + `"`
		if s, err := strconv.Unquote(converted); err == nil {
			return s
		}
		return text
	}

	if s, err := strconv.Unquote(text); err == nil {
		return s
	}

	return text
}

// evaluate attempts to resolve a node to a compile-time string constant.
// Confident is false for anything with a live sub-expression; absence of a
// confident value is the signal for callers, evaluate itself never fails.
func evaluate(node *sitter.Node, source []byte) (value string, confident bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "string":
		return unquoteString(nodeText(node, source)), true
	case "template_string":
		return evaluateTemplate(node, source)
	case "parenthesized_expression":
		return evaluate(innerExpression(node), source)
	case "jsx_expression":
		return evaluate(innerExpression(node), source)
	case "binary_expression":
		return evaluateConcat(node, source)
	default:
		return "", false
	}
}

// evaluateTemplate folds a template string composed only of literal fragments.
// Any template_substitution child makes the value unresolvable.
func evaluateTemplate(node *sitter.Node, source []byte) (string, bool) {
	var b strings.Builder
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "template_substitution":
			return "", false
		case "string_fragment":
			b.WriteString(nodeText(child, source))
		case "escape_sequence":
			if s, err := strconv.Unquote(`"` + nodeText(child, source) + `"`); err == nil {
				b.WriteString(s)
			} else {
				return "", false
			}
		}
	}
	return b.String(), true
}

// evaluateConcat folds string concatenation with the + operator.
func evaluateConcat(node *sitter.Node, source []byte) (string, bool) {
	op := node.ChildByFieldName("operator")
	if op == nil || nodeText(op, source) != "+" {
		return "", false
	}

	left, ok := evaluate(node.ChildByFieldName("left"), source)
	if !ok {
		return "", false
	}
	right, ok := evaluate(node.ChildByFieldName("right"), source)
	if !ok {
		return "", false
	}

	return left + right, true
}

// innerExpression returns the first named child that is not punctuation or a
// comment, e.g. the expression wrapped by (...) or a JSX {...} container.
func innerExpression(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}
