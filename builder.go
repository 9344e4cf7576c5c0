// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package filterexpr

import (
	"strings"

	"github.com/modelq/filterexpr/expr"
	"github.com/modelq/filterexpr/schema"
)

// Filter assembles a filter programmatically. Calls append tokens in
// writing order; Build serializes the tokens to filter text and runs it
// through the parser, so built filters pass exactly the same resolution and
// coercion as hand-written ones.
//
//	f := filterexpr.NewFilter().
//		Field("name").Eq(schema.StringValue("Madeira")).
//		And().Not().
//		Group(filterexpr.NewFilter().Field("servings").Lt(schema.Int32Value(4)))
//	e, err := f.Build(s, m)
type Filter struct {
	tokens []string
}

// NewFilter returns an empty filter builder.
func NewFilter() *Filter {
	return &Filter{}
}

// Field appends a field path.
func (f *Filter) Field(path string) *Filter {
	f.tokens = append(f.tokens, path)
	return f
}

func (f *Filter) compare(op expr.CompOp, v schema.FieldValue) *Filter {
	f.tokens = append(f.tokens, op.String(), valueToken(v))
	return f
}

// Eq appends an equality comparison with v.
func (f *Filter) Eq(v schema.FieldValue) *Filter {
	return f.compare(expr.Eq, v)
}

// Neq appends an inequality comparison with v.
func (f *Filter) Neq(v schema.FieldValue) *Filter {
	return f.compare(expr.Neq, v)
}

func (f *Filter) Gt(v schema.FieldValue) *Filter {
	return f.compare(expr.Gt, v)
}

func (f *Filter) Gte(v schema.FieldValue) *Filter {
	return f.compare(expr.Gte, v)
}

func (f *Filter) Lt(v schema.FieldValue) *Filter {
	return f.compare(expr.Lt, v)
}

func (f *Filter) Lte(v schema.FieldValue) *Filter {
	return f.compare(expr.Lte, v)
}

func (f *Filter) Like(v schema.FieldValue) *Filter {
	return f.compare(expr.Like, v)
}

func (f *Filter) Ilike(v schema.FieldValue) *Filter {
	return f.compare(expr.Ilike, v)
}

// Not appends the negation operator.
func (f *Filter) Not() *Filter {
	f.tokens = append(f.tokens, expr.Not.String())
	return f
}

// And appends the conjunction operator.
func (f *Filter) And() *Filter {
	f.tokens = append(f.tokens, expr.And.String())
	return f
}

// Or appends the disjunction operator.
func (f *Filter) Or() *Filter {
	f.tokens = append(f.tokens, expr.Or.String())
	return f
}

// Group appends g as a parenthesized sub-expression.
func (f *Filter) Group(g *Filter) *Filter {
	f.tokens = append(f.tokens, "( "+g.String()+" )")
	return f
}

// String returns the filter text the builder has assembled so far.
func (f *Filter) String() string {
	return strings.Join(f.tokens, " ")
}

// Build parses the assembled filter text against model m in schema s.
func (f *Filter) Build(s *schema.Schema, m *schema.Model) (expr.Expr, error) {
	return Parse(s, m, f.String())
}

// valueToken serializes a value as a filter literal. Nulls become the null
// keyword; everything else is a quoted string.
func valueToken(v schema.FieldValue) string {
	if v.IsNull() {
		return "null"
	}
	return expr.Quote(v.String())
}
