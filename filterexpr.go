// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package filterexpr

import (
	"fmt"

	"github.com/modelq/filterexpr/expr"
	"github.com/modelq/filterexpr/schema"
)

// Parse parses filter text from the point of view of model m declared in
// schema s, returning a fully typed expression tree: every field path is
// resolved against the schema and every literal coerced to its field's
// type. On any failure no tree is returned.
//
// Errors wrap the structured types expr.UndefinedFieldError,
// expr.IllegalFieldError and schema.CoercionError, reachable with
// errors.As.
func Parse(s *schema.Schema, m *schema.Model, filter string) (expr.Expr, error) {
	e, err := expr.NewParser(s, m).Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return e, nil
}

// MustParse is the same as [Parse] except that it panics on error.
func MustParse(s *schema.Schema, m *schema.Model, filter string) expr.Expr {
	e, err := Parse(s, m, filter)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseField validates a bare dotted field path against the schema and
// returns it together with the definition of the field it resolves to.
func ParseField(s *schema.Schema, m *schema.Model, path string) (*expr.Var, schema.FieldDefinition, error) {
	v, def, err := expr.NewParser(s, m).ParseVar(path)
	if err != nil {
		return nil, schema.FieldDefinition{}, fmt.Errorf("invalid field path: %w", err)
	}
	return v, def, nil
}
