// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modelq/filterexpr/schema"
)

// NewParser returns a parser bound to the model m declared in schema s.
// Filters are parsed from m's point of view: bare field names address m's
// fields, dotted paths traverse m's relations. A parser can be reused but
// is not safe for concurrent use.
func NewParser(s *schema.Schema, m *schema.Model) *Parser {
	return &Parser{schema: s, model: m}
}

type Parser struct {
	schema *schema.Schema
	model  *schema.Model

	input string
	pos   int
	// nextPos is start of the next char.
	nextPos int
	// char is the rune starting at pos. char is set to 0 when pos reaches
	// the end of input.
	char rune
	// lineNum is the number of the current line of the input.
	lineNum int
	// lineStart is the position of the first char of the current line in
	// the input.
	lineStart int
}

// Parse parses filter text into an expression tree. Field paths are
// resolved and literals coerced as they are reached, so an error anywhere
// in the input means no tree at all.
func (p *Parser) Parse(input string) (Expr, error) {
	p.init(input)
	p.skipBlanks()
	e, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	p.skipBlanks()
	if p.pos < len(p.input) {
		return nil, errorAt(fmt.Errorf("unexpected %q after expression", string(p.char)), p.lineNum, p.colNum(), p.input)
	}
	return e, nil
}

// ParseVar parses input as a single field path and nothing else, resolved
// against the schema. It serves callers that take a bare field reference,
// such as sort specifications.
func (p *Parser) ParseVar(input string) (*Var, schema.FieldDefinition, error) {
	p.init(input)
	p.skipBlanks()
	v, ok, err := p.parseVar()
	if err != nil {
		return nil, schema.FieldDefinition{}, err
	}
	if !ok {
		return nil, schema.FieldDefinition{}, errorAt(fmt.Errorf("expected field path"), p.lineNum, p.colNum(), p.input)
	}
	p.skipBlanks()
	if p.pos < len(p.input) {
		return nil, schema.FieldDefinition{}, errorAt(fmt.Errorf("unexpected %q after field path", string(p.char)), p.lineNum, p.colNum(), p.input)
	}
	def, err := ResolveVar(p.schema, p.model, v)
	if err != nil {
		return nil, schema.FieldDefinition{}, err
	}
	return v, def, nil
}

// init resets the state of the parser and sets the input string.
func (p *Parser) init(input string) {
	p.input = input
	p.pos = 0
	p.nextPos = 0
	p.char = 0
	p.lineNum = 1
	p.lineStart = 0
	p.advanceChar()
}

// colNum calculates the current column number taking into account line
// breaks.
func (p *Parser) colNum() int {
	return p.pos - p.lineStart + 1
}

// advanceChar moves the parser to the next character in the input. It also
// takes care of updating the line and column numbers if it encounters line
// breaks.
func (p *Parser) advanceChar() bool {
	if p.nextPos >= len(p.input) {
		p.char = 0
		p.pos = p.nextPos
		return false
	}
	if p.char == '\n' {
		p.lineStart = p.nextPos
		p.lineNum++
	}
	var size int
	p.char, size = utf8.DecodeRuneInString(p.input[p.nextPos:])
	p.pos = p.nextPos
	p.nextPos += size
	return true
}

// errorAt wraps an error with line and column information.
func errorAt(err error, line int, column int, input string) error {
	if strings.ContainsRune(input, '\n') {
		return fmt.Errorf("line %d, column %d: %w", line, column, err)
	} else {
		return fmt.Errorf("column %d: %w", column, err)
	}
}

// A checkpoint struct for saving parser state to restore later.
type checkpoint struct {
	parser    *Parser
	pos       int
	nextPos   int
	char      rune
	lineNum   int
	lineStart int
}

// save takes a snapshot of the state of the parser and returns a pointer to
// a checkpoint that represents it.
func (p *Parser) save() *checkpoint {
	return &checkpoint{
		parser:    p,
		pos:       p.pos,
		nextPos:   p.nextPos,
		char:      p.char,
		lineNum:   p.lineNum,
		lineStart: p.lineStart,
	}
}

// restore sets the internal state of the parser to the values stored in the
// checkpoint.
func (cp *checkpoint) restore() {
	cp.parser.pos = cp.pos
	cp.parser.nextPos = cp.nextPos
	cp.parser.char = cp.char
	cp.parser.lineNum = cp.lineNum
	cp.parser.lineStart = cp.lineStart
}

// colNum calculates the column number of the checkpoint.
func (cp *checkpoint) colNum() int {
	return cp.pos - cp.lineStart + 1
}

// skipChar jumps over the current char if it matches the char passed as a
// parameter. Returns true in that case, false otherwise.
func (p *Parser) skipChar(c rune) bool {
	if p.pos < len(p.input) && p.char == c {
		p.advanceChar()
		return true
	}
	return false
}

// skipBlanks advances the parser past spaces, tabs and newlines. Returns
// whether the parser position was changed.
func (p *Parser) skipBlanks() bool {
	mark := p.pos
	for p.pos < len(p.input) {
		switch p.char {
		case ' ', '\t', '\r', '\n':
			p.advanceChar()
		default:
			return p.pos != mark
		}
	}
	return p.pos != mark
}

// skipString advances the parser and jumps over the string passed as
// parameter. In that case returns true, false otherwise.
// This function is case insensitive.
func (p *Parser) skipString(s string) bool {
	// EqualFold is used here because it is case insensitive.
	if p.pos+len(s) <= len(p.input) &&
		strings.EqualFold(p.input[p.pos:p.pos+len(s)], s) {
		// EqualFold does not advance the parser, so we must manually advance
		// the parser to the end of the string.
		p.pos += len(s)
		var size int
		p.char, size = utf8.DecodeRuneInString(p.input[p.pos:])
		p.nextPos = p.pos + size
		return true
	}
	return false
}

// skipKeyword jumps over the keyword s only when it is not followed by a
// name char, so that e.g. "nullable" is not read as the null keyword.
func (p *Parser) skipKeyword(s string) bool {
	cp := p.save()
	if p.skipString(s) {
		if p.pos >= len(p.input) || !isNameChar(p.char) {
			return true
		}
		cp.restore()
	}
	return false
}

// isNameChar returns true for the chars a field path segment is built from.
func isNameChar(c rune) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// parseName returns the run of name chars under the parser, if any.
func (p *Parser) parseName() (string, bool) {
	mark := p.pos
	for p.pos < len(p.input) && isNameChar(p.char) {
		p.advanceChar()
	}
	return p.input[mark:p.pos], p.pos != mark
}

// parseDisjunction parses one or more conjunctions joined by "||",
// associating to the left.
func (p *Parser) parseDisjunction() (Expr, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for {
		cp := p.save()
		p.skipBlanks()
		if !p.skipString("||") {
			cp.restore()
			return left, nil
		}
		p.skipBlanks()
		right, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = &Disj{left: left, op: Or, right: right}
	}
}

// parseConjunction parses one or more negations joined by "&&", associating
// to the left.
func (p *Parser) parseConjunction() (Expr, error) {
	left, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for {
		cp := p.save()
		p.skipBlanks()
		if !p.skipString("&&") {
			cp.restore()
			return left, nil
		}
		p.skipBlanks()
		right, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		left = &Conj{left: left, op: And, right: right}
	}
}

// parseNegation parses a comparison with any number of "!" prefixes.
func (p *Parser) parseNegation() (Expr, error) {
	if p.skipChar('!') {
		p.skipBlanks()
		inner, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		return &Neg{op: Not, inner: inner}, nil
	}
	return p.parseComparison()
}

// parseComparison parses either a parenthesized disjunction or a single
// comparison. The field path is resolved against the schema and the literal
// coerced to the field's type right here, so the returned node is fully
// typed.
func (p *Parser) parseComparison() (Expr, error) {
	if p.skipChar('(') {
		p.skipBlanks()
		e, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		p.skipBlanks()
		if !p.skipChar(')') {
			return nil, errorAt(fmt.Errorf("missing closing parenthesis"), p.lineNum, p.colNum(), p.input)
		}
		return e, nil
	}

	v, ok, err := p.parseVar()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorAt(fmt.Errorf("expected field path or parenthesized expression"), p.lineNum, p.colNum(), p.input)
	}
	def, err := ResolveVar(p.schema, p.model, v)
	if err != nil {
		return nil, err
	}
	if def.Type.Kind() == schema.KindJson {
		return nil, &IllegalFieldError{Path: v.String()}
	}

	p.skipBlanks()
	op, ok := p.parseCompOp()
	if !ok {
		return nil, errorAt(fmt.Errorf("expected comparison operator after %q", v.String()), p.lineNum, p.colNum(), p.input)
	}

	p.skipBlanks()
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	value, err := coerceLiteral(def.Type, op, lit)
	if err != nil {
		return nil, err
	}
	return &Comp{left: v, op: op, right: &Val{value: value}}, nil
}

// parseVar parses a dotted field path.
func (p *Parser) parseVar() (*Var, bool, error) {
	name, ok := p.parseName()
	if !ok {
		return nil, false, nil
	}
	if p.skipChar('.') {
		rest, ok, err := p.parseVar()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, errorAt(fmt.Errorf("expected field name after %q", name+"."), p.lineNum, p.colNum(), p.input)
		}
		return &Var{name: name, next: rest}, true, nil
	}
	return &Var{name: name}, true, nil
}

// parseCompOp parses a comparison operator. Multi-char operators are tried
// before their single-char prefixes.
func (p *Parser) parseCompOp() (CompOp, bool) {
	switch {
	case p.skipString("!="):
		return Neq, true
	case p.skipString(">="):
		return Gte, true
	case p.skipString("<="):
		return Lte, true
	case p.skipString("="):
		return Eq, true
	case p.skipString(">"):
		return Gt, true
	case p.skipString("<"):
		return Lt, true
	case p.skipKeyword("ILIKE"):
		return Ilike, true
	case p.skipKeyword("LIKE"):
		return Like, true
	}
	return 0, false
}

type literalKind int

const (
	stringLit literalKind = iota
	nullLit
	boolLit
)

// literal is a raw literal token before coercion: a string's unescaped
// text, the null keyword, or a bare bool keyword.
type literal struct {
	kind literalKind
	text string
	b    bool
}

// parseLiteral parses a quoted string, null, true or false.
func (p *Parser) parseLiteral() (literal, error) {
	if text, ok, err := p.parseStringLiteral(); err != nil {
		return literal{}, err
	} else if ok {
		return literal{kind: stringLit, text: text}, nil
	}
	if p.skipKeyword("null") {
		return literal{kind: nullLit}, nil
	}
	if p.skipKeyword("true") {
		return literal{kind: boolLit, text: "true", b: true}, nil
	}
	if p.skipKeyword("false") {
		return literal{kind: boolLit, text: "false"}, nil
	}
	return literal{}, errorAt(fmt.Errorf("expected string literal, null, true or false"), p.lineNum, p.colNum(), p.input)
}

// parseStringLiteral parses a double-quoted string. Backslash escapes a
// quote or another backslash; any other backslash sequence passes through
// literally.
func (p *Parser) parseStringLiteral() (string, bool, error) {
	cp := p.save()
	if !p.skipChar('"') {
		return "", false, nil
	}
	var sb strings.Builder
	for p.pos < len(p.input) {
		switch p.char {
		case '\\':
			p.advanceChar()
			if p.char == '"' || p.char == '\\' {
				sb.WriteRune(p.char)
				p.advanceChar()
			} else {
				sb.WriteByte('\\')
			}
		case '"':
			p.advanceChar()
			return sb.String(), true, nil
		default:
			sb.WriteRune(p.char)
			p.advanceChar()
		}
	}
	err := errorAt(fmt.Errorf("missing closing quote in string literal"), cp.lineNum, cp.colNum(), p.input)
	cp.restore()
	return "", false, err
}

// coerceLiteral turns a raw literal into a value of the field's type. The
// null keyword maps to the type's null for every filterable type. Bare
// bool keywords map directly for Bool fields and are read as their text
// for every other type. Enum variants are only validated against the
// declared set on equality comparisons.
func coerceLiteral(ft schema.FieldType, op CompOp, lit literal) (schema.FieldValue, error) {
	switch lit.kind {
	case nullLit:
		return ft.NullValue(), nil
	case boolLit:
		if ft.Kind() == schema.KindBool {
			return schema.BoolValue(lit.b), nil
		}
	}
	if ft.Kind() == schema.KindEnum && op != Eq {
		return schema.EnumValue(lit.text), nil
	}
	return ft.ParseValue(lit.text)
}
