// Package icu parses and normalizes ICU MessageFormat interpolation messages.
//
// The subset covered is the one used by message declarations: literal text
// with apostrophe escaping, simple arguments ({name}), formatted arguments
// ({name, number|date|time[, style]}), and branching arguments
// ({name, plural|selectordinal|select, ...}) with nested messages and the
// # shorthand inside plural cases.
package icu

import (
	"fmt"
	"strings"
	"unicode"
)

// Node is one segment of a parsed message.
type Node interface {
	print(b *strings.Builder, inPlural bool)
}

// Literal is a run of plain text.
type Literal struct {
	Value string
}

// Argument is a simple interpolation like {name}.
type Argument struct {
	Name string
}

// Formatted is a typed interpolation like {count, number} or {when, date, short}.
type Formatted struct {
	Name  string
	Kind  string
	Style string
}

// Branch is a plural, selectordinal, or select argument.
type Branch struct {
	Name   string
	Kind   string
	Offset string
	Cases  []Case
}

// Case is one branch alternative, e.g. one {# item}.
type Case struct {
	Key     string
	Message []Node
}

// Pound is the # shorthand for the current plural value.
type Pound struct{}

// SyntaxError describes a message that failed to parse.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid message syntax at offset %d: %s", e.Offset, e.Reason)
}

// Parse parses text into its message segments.
func Parse(text string) ([]Node, error) {
	p := &parser{src: text}
	nodes, err := p.parseMessage(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unmatched '}'")
	}
	return nodes, nil
}

// Normalize parses text and re-prints it in canonical form.
// It is the default grammar validator for defaultMessage content.
func Normalize(text string) (string, error) {
	nodes, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Print(nodes), nil
}

// Print renders parsed segments back to message syntax.
func Print(nodes []Node) string {
	var b strings.Builder
	printMessage(&b, nodes, false)
	return b.String()
}

func printMessage(b *strings.Builder, nodes []Node, inPlural bool) {
	for _, n := range nodes {
		n.print(b, inPlural)
	}
}

func (l Literal) print(b *strings.Builder, inPlural bool) {
	for _, r := range l.Value {
		switch r {
		case '\'':
			b.WriteString("''")
		case '{':
			b.WriteString("'{'")
		case '}':
			b.WriteString("'}'")
		case '#':
			if inPlural {
				b.WriteString("'#'")
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (a Argument) print(b *strings.Builder, _ bool) {
	b.WriteString("{" + a.Name + "}")
}

func (f Formatted) print(b *strings.Builder, _ bool) {
	b.WriteString("{" + f.Name + ", " + f.Kind)
	if f.Style != "" {
		b.WriteString(", " + f.Style)
	}
	b.WriteString("}")
}

func (s Branch) print(b *strings.Builder, _ bool) {
	b.WriteString("{" + s.Name + ", " + s.Kind + ",")
	if s.Offset != "" {
		b.WriteString(" offset:" + s.Offset)
	}
	inPlural := s.Kind != kindSelect
	for _, c := range s.Cases {
		b.WriteString(" " + c.Key + " {")
		printMessage(b, c.Message, inPlural)
		b.WriteString("}")
	}
	b.WriteString("}")
}

func (Pound) print(b *strings.Builder, _ bool) {
	b.WriteString("#")
}

const (
	kindNumber         = "number"
	kindDate           = "date"
	kindTime           = "time"
	kindPlural         = "plural"
	kindSelect         = "select"
	kindSelectOrdinal  = "selectordinal"
	requiredBranchCase = "other"
)

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

// parseMessage consumes segments until end of input or an unconsumed '}'.
func (p *parser) parseMessage(inPlural bool) ([]Node, error) {
	var nodes []Node
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			nodes = append(nodes, Literal{Value: literal.String()})
			literal.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '}':
			flush()
			return nodes, nil
		case c == '{':
			flush()
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, arg)
		case c == '#' && inPlural:
			flush()
			nodes = append(nodes, Pound{})
			p.pos++
		case c == '\'':
			p.parseQuoted(&literal)
		default:
			literal.WriteByte(c)
			p.pos++
		}
	}

	flush()
	return nodes, nil
}

// parseQuoted handles the ICU apostrophe rules: '' is a literal apostrophe,
// and an apostrophe before a syntax character quotes text until the next
// single apostrophe. A lone apostrophe is literal.
func (p *parser) parseQuoted(literal *strings.Builder) {
	p.pos++ // opening apostrophe
	if p.pos < len(p.src) && p.src[p.pos] == '\'' {
		literal.WriteByte('\'')
		p.pos++
		return
	}

	if p.pos >= len(p.src) || !isSyntaxChar(p.src[p.pos]) {
		literal.WriteByte('\'')
		return
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			p.pos++
			if p.pos < len(p.src) && p.src[p.pos] == '\'' {
				literal.WriteByte('\'')
				p.pos++
				continue
			}
			return
		}
		literal.WriteByte(c)
		p.pos++
	}
}

func isSyntaxChar(c byte) bool {
	return c == '{' || c == '}' || c == '#'
}

func (p *parser) parseArgument() (Node, error) {
	p.pos++ // consume '{'
	p.skipSpace()

	name := p.readName()
	if name == "" {
		return nil, p.errorf("expected argument name")
	}
	p.skipSpace()

	if p.pos >= len(p.src) {
		return nil, p.errorf("unclosed argument %q", name)
	}

	if p.src[p.pos] == '}' {
		p.pos++
		return Argument{Name: name}, nil
	}

	if p.src[p.pos] != ',' {
		return nil, p.errorf("expected ',' or '}' in argument %q", name)
	}
	p.pos++
	p.skipSpace()

	kind := p.readName()
	p.skipSpace()

	switch kind {
	case kindNumber, kindDate, kindTime:
		return p.parseFormatted(name, kind)
	case kindPlural, kindSelect, kindSelectOrdinal:
		return p.parseBranch(name, kind)
	default:
		return nil, p.errorf("unknown argument type %q for %q", kind, name)
	}
}

func (p *parser) parseFormatted(name, kind string) (Node, error) {
	style := ""
	if p.pos < len(p.src) && p.src[p.pos] == ',' {
		p.pos++
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != '}' {
			p.pos++
		}
		style = strings.TrimSpace(p.src[start:p.pos])
	}
	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return nil, p.errorf("unclosed argument %q", name)
	}
	p.pos++
	return Formatted{Name: name, Kind: kind, Style: style}, nil
}

func (p *parser) parseBranch(name, kind string) (Node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != ',' {
		return nil, p.errorf("expected ',' after %s in %q", kind, name)
	}
	p.pos++
	p.skipSpace()

	branch := Branch{Name: name, Kind: kind}

	if kind != kindSelect && strings.HasPrefix(p.src[p.pos:], "offset:") {
		p.pos += len("offset:")
		p.skipSpace()
		branch.Offset = p.readNumber()
		if branch.Offset == "" {
			return nil, p.errorf("expected number after offset: in %q", name)
		}
		p.skipSpace()
	}

	inPlural := kind != kindSelect
	for p.pos < len(p.src) && p.src[p.pos] != '}' {
		key := p.readCaseKey()
		if key == "" {
			return nil, p.errorf("expected case key in %q", name)
		}
		p.skipSpace()

		if p.pos >= len(p.src) || p.src[p.pos] != '{' {
			return nil, p.errorf("expected '{' after case %q in %q", key, name)
		}
		p.pos++

		msg, err := p.parseMessage(inPlural)
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != '}' {
			return nil, p.errorf("unclosed case %q in %q", key, name)
		}
		p.pos++
		p.skipSpace()

		branch.Cases = append(branch.Cases, Case{Key: key, Message: msg})
	}

	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return nil, p.errorf("unclosed argument %q", name)
	}
	p.pos++

	if len(branch.Cases) == 0 {
		return nil, p.errorf("%s argument %q has no cases", kind, name)
	}
	if !hasCase(branch.Cases, requiredBranchCase) {
		return nil, p.errorf("%s argument %q is missing an %q case", kind, name, requiredBranchCase)
	}

	return branch, nil
}

func hasCase(cases []Case, key string) bool {
	for _, c := range cases {
		if c.Key == key {
			return true
		}
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) readName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// readCaseKey reads a branch case key: a plain word or an exact match like =2.
func (p *parser) readCaseKey() string {
	if p.pos < len(p.src) && p.src[p.pos] == '=' {
		start := p.pos
		p.pos++
		if num := p.readNumber(); num != "" {
			return p.src[start:p.pos]
		}
		p.pos = start
		return ""
	}
	return p.readName()
}

func (p *parser) readNumber() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return p.src[start:p.pos]
}
