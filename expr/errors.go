// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import "fmt"

// UndefinedFieldError reports a field path that does not resolve against the
// schema: an unknown field, an unknown relation, or a relation pointing at a
// model the schema does not define.
type UndefinedFieldError struct {
	// Path is the full dotted path as written in the filter.
	Path string
}

func (e *UndefinedFieldError) Error() string {
	return fmt.Sprintf("undefined field: %q", e.Path)
}

// IllegalFieldError reports a comparison against a json field. Json fields
// hold documents and cannot be filtered on.
type IllegalFieldError struct {
	// Path is the full dotted path as written in the filter.
	Path string
}

func (e *IllegalFieldError) Error() string {
	return "illegal field: can't filter by json field"
}
