// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import "github.com/modelq/filterexpr/schema"

// ResolveVar walks the dotted path v starting from model m: every interior
// segment must name a relation, whose target model the next segment is
// looked up in, and the leaf segment must name a field. Any miss yields an
// UndefinedFieldError carrying the full path.
func ResolveVar(s *schema.Schema, m *schema.Model, v *Var) (schema.FieldDefinition, error) {
	current := m
	for seg := v; seg != nil; seg = seg.Next() {
		if seg.Next() == nil {
			def, ok := current.Field(seg.Name())
			if !ok {
				return schema.FieldDefinition{}, &UndefinedFieldError{Path: v.String()}
			}
			return def, nil
		}
		rel, ok := current.Relation(seg.Name())
		if !ok {
			return schema.FieldDefinition{}, &UndefinedFieldError{Path: v.String()}
		}
		current, ok = s.Model(rel.Target)
		if !ok {
			return schema.FieldDefinition{}, &UndefinedFieldError{Path: v.String()}
		}
	}
	// Unreachable: a Var always has a leaf segment.
	return schema.FieldDefinition{}, &UndefinedFieldError{Path: v.String()}
}
