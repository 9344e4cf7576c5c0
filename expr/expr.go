// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package expr holds the typed filter expression tree, the parser that
// builds it and the SQL renderer that walks it. Trees are immutable once
// parsed: every comparison already carries a resolved field and a coerced
// value.
package expr

import (
	"strings"

	"github.com/modelq/filterexpr/schema"
)

// Expr is a node of a filter expression tree.
type Expr interface {
	// String returns the node in filter syntax. The output of a full tree
	// parses back to an equivalent tree.
	String() string

	// expr is a marker method.
	expr()
}

// Var is a dotted field path, stored right-leaning: the head segment plus
// the rest of the path.
type Var struct {
	name string
	next *Var
}

func (v *Var) expr() {}

// Name returns the head segment of the path.
func (v *Var) Name() string {
	return v.name
}

// Next returns the remainder of the path, nil at the leaf.
func (v *Var) Next() *Var {
	return v.next
}

func (v *Var) String() string {
	var sb strings.Builder
	for seg := v; seg != nil; seg = seg.next {
		if seg != v {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.name)
	}
	return sb.String()
}

// Val is a literal value already coerced to the type of the field it is
// compared against.
type Val struct {
	value schema.FieldValue
}

func (v *Val) expr() {}

// Value returns the coerced value.
func (v *Val) Value() schema.FieldValue {
	return v.value
}

func (v *Val) String() string {
	if v.value.IsNull() {
		return "null"
	}
	return Quote(v.value.String())
}

// Comp is a comparison between a resolved field path and a coerced literal.
type Comp struct {
	left  *Var
	op    CompOp
	right *Val
}

func (c *Comp) expr() {}

func (c *Comp) Left() *Var {
	return c.left
}

func (c *Comp) Op() CompOp {
	return c.op
}

func (c *Comp) Right() *Val {
	return c.right
}

func (c *Comp) String() string {
	return c.left.String() + " " + c.op.String() + " " + c.right.String()
}

// Neg is the negation of a sub-expression.
type Neg struct {
	op    LogicOp
	inner Expr
}

func (n *Neg) expr() {}

func (n *Neg) Op() LogicOp {
	return n.op
}

// Operand returns the negated sub-expression.
func (n *Neg) Operand() Expr {
	return n.inner
}

func (n *Neg) String() string {
	return n.op.String() + "(" + n.inner.String() + ")"
}

// Conj is the conjunction of two sub-expressions.
type Conj struct {
	left  Expr
	op    LogicOp
	right Expr
}

func (c *Conj) expr() {}

func (c *Conj) Left() Expr {
	return c.left
}

func (c *Conj) Op() LogicOp {
	return c.op
}

func (c *Conj) Right() Expr {
	return c.right
}

func (c *Conj) String() string {
	return "(" + c.left.String() + " " + c.op.String() + " " + c.right.String() + ")"
}

// Disj is the disjunction of two sub-expressions.
type Disj struct {
	left  Expr
	op    LogicOp
	right Expr
}

func (d *Disj) expr() {}

func (d *Disj) Left() Expr {
	return d.left
}

func (d *Disj) Op() LogicOp {
	return d.op
}

func (d *Disj) Right() Expr {
	return d.right
}

func (d *Disj) String() string {
	return "(" + d.left.String() + " " + d.op.String() + " " + d.right.String() + ")"
}

// CompOp is a comparison operator.
type CompOp int

const (
	Eq CompOp = iota
	Neq
	Gt
	Gte
	Lt
	Lte
	Like
	Ilike
)

// String returns the operator's filter-syntax token.
func (op CompOp) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Like:
		return "LIKE"
	case Ilike:
		return "ILIKE"
	}
	return "unknown"
}

// SQL returns the operator's SQL token.
func (op CompOp) SQL() string {
	if op == Neq {
		return "<>"
	}
	return op.String()
}

// LogicOp is a logical operator.
type LogicOp int

const (
	Not LogicOp = iota
	And
	Or
)

// String returns the operator's filter-syntax token.
func (op LogicOp) String() string {
	switch op {
	case Not:
		return "!"
	case And:
		return "&&"
	case Or:
		return "||"
	}
	return "unknown"
}

// SQL returns the operator's SQL token.
func (op LogicOp) SQL() string {
	switch op {
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Or:
		return "OR"
	}
	return "unknown"
}

// Quote wraps text in double quotes, escaping backslashes and embedded
// quotes so the result reads back as the same string literal.
func Quote(text string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range text {
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
	}
	sb.WriteByte('"')
	return sb.String()
}
