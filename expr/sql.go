// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"strconv"

	"github.com/modelq/filterexpr/schema"
)

// Placeholder formats the n-th bind parameter of a rendered predicate.
type Placeholder func(n int) string

// Dollar numbers parameters PostgreSQL style: $1, $2, ...
func Dollar(n int) string {
	return "$" + strconv.Itoa(n)
}

// Question renders the positional marker used by sqlite and mysql drivers.
func Question(n int) string {
	return "?"
}

// ToSQL renders the expression as a SQL predicate with $N placeholders
// numbered from offset+1, returning the placeholder text and the values to
// bind, in placeholder order.
func ToSQL(e Expr, offset int) (string, []schema.FieldValue) {
	return ToSQLWith(e, offset, Dollar)
}

// ToSQLWith is ToSQL with a custom placeholder format.
func ToSQLWith(e Expr, offset int, ph Placeholder) (string, []schema.FieldValue) {
	switch e := e.(type) {
	case *Var:
		return e.String(), nil
	case *Val:
		return ph(offset + 1), []schema.FieldValue{e.value}
	case *Comp:
		left, bindings := ToSQLWith(e.left, offset, ph)
		right, more := ToSQLWith(e.right, offset+len(bindings), ph)
		return left + " " + e.op.SQL() + " " + right, append(bindings, more...)
	case *Neg:
		inner, bindings := ToSQLWith(e.inner, offset, ph)
		return "(" + e.op.SQL() + " (" + inner + "))", bindings
	case *Conj:
		left, bindings := ToSQLWith(e.left, offset, ph)
		right, more := ToSQLWith(e.right, offset+len(bindings), ph)
		return "(" + left + " " + e.op.SQL() + " " + right + ")", append(bindings, more...)
	case *Disj:
		left, bindings := ToSQLWith(e.left, offset, ph)
		right, more := ToSQLWith(e.right, offset+len(bindings), ph)
		return "(" + left + " " + e.op.SQL() + " " + right + ")", append(bindings, more...)
	}
	return "", nil
}
