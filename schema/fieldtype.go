// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind enumerates the closed set of field kinds a schema may assign to a
// declared field.
type Kind int

const (
	KindUuid Kind = iota
	KindBool
	KindInt
	KindInt32
	KindFloat
	KindDecimal
	KindString
	KindDate
	KindDateTime
	KindEnum
	KindJson
)

// FieldType is the declared type of a schema field. Enum types additionally
// carry their closed set of variant strings.
type FieldType struct {
	kind     Kind
	variants []string
}

var (
	Uuid     = FieldType{kind: KindUuid}
	Bool     = FieldType{kind: KindBool}
	Int      = FieldType{kind: KindInt}
	Int32    = FieldType{kind: KindInt32}
	Float    = FieldType{kind: KindFloat}
	Decimal  = FieldType{kind: KindDecimal}
	String   = FieldType{kind: KindString}
	Date     = FieldType{kind: KindDate}
	DateTime = FieldType{kind: KindDateTime}
	Json     = FieldType{kind: KindJson}
)

// Enum builds an enum field type over the given variant strings.
func Enum(variants ...string) FieldType {
	return FieldType{kind: KindEnum, variants: variants}
}

func (t FieldType) Kind() Kind {
	return t.kind
}

// Variants returns the declared variant set of an enum type. It is nil for
// every other kind.
func (t FieldType) Variants() []string {
	return t.variants
}

// Name returns the type name used in coercion error messages.
func (t FieldType) Name() string {
	switch t.kind {
	case KindUuid:
		return "uuid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt32:
		return "int32"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindEnum:
		return "enum"
	case KindJson:
		return "json"
	}
	return "unknown"
}

// SQLType returns the column type used when the field is materialized as
// DDL.
func (t FieldType) SQLType() string {
	switch t.kind {
	case KindUuid:
		return "uuid"
	case KindBool:
		return "boolean"
	case KindInt:
		return "int8"
	case KindInt32:
		return "int4"
	case KindFloat:
		return "float8"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "text"
	case KindDate:
		return "date"
	case KindDateTime:
		return "timestamptz"
	case KindJson:
		return "jsonb"
	case KindEnum:
		return "text"
	}
	return "text"
}

// NullValue returns the null representation of the type, used when a filter
// literal is the null token.
func (t FieldType) NullValue() FieldValue {
	return FieldValue{typ: t, null: true}
}

// dateLayout is the only accepted textual form of a Date literal.
const dateLayout = "2006-01-02"

// ParseValue coerces literal text into a value of this type. Enum types
// require the text to match one of the declared variants. Json fields hold
// documents, not comparable scalars, so they never coerce.
func (t FieldType) ParseValue(value string) (FieldValue, error) {
	switch t.kind {
	case KindUuid:
		u, err := uuid.Parse(value)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return UuidValue(u), nil
	case KindBool:
		switch value {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
	case KindInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return IntValue(i), nil
	case KindInt32:
		i, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return Int32Value(int32(i)), nil
	case KindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return FloatValue(f), nil
	case KindDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return DecimalValue(d), nil
	case KindString:
		return StringValue(value), nil
	case KindDate:
		d, err := time.Parse(dateLayout, value)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return DateValue(d), nil
	case KindDateTime:
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
		}
		return DateTimeValue(ts), nil
	case KindEnum:
		for _, v := range t.variants {
			if v == value {
				return EnumValue(value), nil
			}
		}
		return FieldValue{}, &CoercionError{TypeName: "enum variant", Literal: value}
	case KindJson:
		return FieldValue{}, &CoercionError{TypeName: t.Name(), Literal: value}
	}
	return FieldValue{}, fmt.Errorf("internal error: unknown field kind %d", t.kind)
}

// CoercionError reports a literal that could not be coerced to the declared
// type of the field it is compared against.
type CoercionError struct {
	// TypeName is the name of the type that rejected the literal.
	TypeName string
	// Literal is the raw literal text after escape processing.
	Literal string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.TypeName, e.Literal)
}
