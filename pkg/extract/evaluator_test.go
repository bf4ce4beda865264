package extract

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localeforge/core/pkg/domain"
	"github.com/localeforge/core/pkg/extract/tspool"
)

// parseValueExpr parses `const x = <expr>;` and returns the value node.
func parseValueExpr(t *testing.T, expr string) (*sitter.Node, []byte) {
	t.Helper()

	source := []byte("const x = " + expr + ";")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	var value *sitter.Node
	walkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() == "variable_declarator" {
			value = node.ChildByFieldName("value")
			return false
		}
		return true
	})
	require.NotNil(t, value, "no value expression found in %q", source)

	return value, source
}

func TestEvaluate_ConfidentValues(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{name: "double quoted string", expr: `"hello"`, expected: "hello"},
		{name: "single quoted string", expr: `'hello'`, expected: "hello"},
		{name: "escaped quotes", expr: `'it\'s'`, expected: "it's"},
		{name: "template without substitutions", expr: "`hello world`", expected: "hello world"},
		{name: "parenthesized literal", expr: `("hello")`, expected: "hello"},
		{name: "string concatenation", expr: `"Hello, " + "world"`, expected: "Hello, world"},
		{name: "nested concatenation", expr: `"a" + "b" + "c"`, expected: "abc"},
		{name: "concatenation with template", expr: "\"Hi \" + `there`", expected: "Hi there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, source := parseValueExpr(t, tt.expr)
			value, confident := evaluate(node, source)
			require.True(t, confident)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestEvaluate_NotConfident(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "identifier", expr: "someVariable"},
		{name: "template with substitution", expr: "`hello ${name}`"},
		{name: "function call", expr: "getMessage()"},
		{name: "member expression", expr: "messages.greeting"},
		{name: "concatenation with identifier", expr: `"Hello " + name`},
		{name: "non-string binary operator", expr: "1 - 2"},
		{name: "conditional", expr: `ok ? "yes" : "no"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, source := parseValueExpr(t, tt.expr)
			_, confident := evaluate(node, source)
			assert.False(t, confident)
		})
	}
}

func TestEvaluate_NilNode(t *testing.T) {
	_, confident := evaluate(nil, nil)
	assert.False(t, confident)
}

func TestUnquoteString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: `"plain"`, expected: "plain"},
		{input: `'single'`, expected: "single"},
		{input: "`backtick`", expected: "backtick"},
		{input: `'don\'t'`, expected: "don't"},
		{input: `"say \"hi\""`, expected: `say "hi"`},
		{input: `""`, expected: ""},
		{input: "x", expected: "x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, unquoteString(tt.input), "input %q", tt.input)
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, domain.LanguageJavaScript, DetectLanguage("app.js"))
	assert.Equal(t, domain.LanguageJavaScript, DetectLanguage("component.jsx"))
	assert.Equal(t, domain.LanguageJavaScript, DetectLanguage("util.mjs"))
	assert.Equal(t, domain.LanguageTypeScript, DetectLanguage("service.ts"))
	assert.Equal(t, domain.LanguageTSX, DetectLanguage("page.tsx"))
}
