// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package filterexpr

import (
	"fmt"

	"github.com/modelq/filterexpr/expr"
	"github.com/modelq/filterexpr/schema"
)

// SortDirection is the direction of a sort specification.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Inverse returns the opposite direction.
func (d SortDirection) Inverse() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SQL returns the ORDER BY keyword for the direction.
func (d SortDirection) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Sort is a validated sort specification: a resolved field path and a
// direction.
type Sort struct {
	Field     *expr.Var
	Direction SortDirection
}

// ParseSort validates a sort specification against model m in schema s.
// sortBy is a dotted field path; direction is "1" for ascending, "-1" for
// descending, or empty for the ascending default. Json fields are not
// sortable.
func ParseSort(s *schema.Schema, m *schema.Model, sortBy, direction string) (*Sort, error) {
	v, def, err := ParseField(s, m, sortBy)
	if err != nil {
		return nil, fmt.Errorf("invalid sort_by field: %w", err)
	}
	if def.Type.Kind() == schema.KindJson {
		return nil, fmt.Errorf("invalid sort_by field: field is not sortable")
	}
	d := Ascending
	switch direction {
	case "", "1":
	case "-1":
		d = Descending
	default:
		return nil, fmt.Errorf("invalid sort direction %q: must be 1 or -1", direction)
	}
	return &Sort{Field: v, Direction: d}, nil
}
