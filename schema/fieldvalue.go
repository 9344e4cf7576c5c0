// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldValue is a typed value of a schema field. Values are built by
// FieldType coercion or by the typed constructors below; the zero value is
// not meaningful. Every kind has a distinct null state, carried as a flag
// rather than a sentinel of the underlying Go type.
type FieldValue struct {
	typ  FieldType
	null bool
	data any
}

func UuidValue(u uuid.UUID) FieldValue {
	return FieldValue{typ: Uuid, data: u}
}

func BoolValue(b bool) FieldValue {
	return FieldValue{typ: Bool, data: b}
}

func IntValue(i int64) FieldValue {
	return FieldValue{typ: Int, data: i}
}

func Int32Value(i int32) FieldValue {
	return FieldValue{typ: Int32, data: i}
}

func FloatValue(f float64) FieldValue {
	return FieldValue{typ: Float, data: f}
}

func DecimalValue(d decimal.Decimal) FieldValue {
	return FieldValue{typ: Decimal, data: d}
}

func StringValue(s string) FieldValue {
	return FieldValue{typ: String, data: s}
}

func DateValue(t time.Time) FieldValue {
	return FieldValue{typ: Date, data: t}
}

func DateTimeValue(t time.Time) FieldValue {
	return FieldValue{typ: DateTime, data: t}
}

// EnumValue builds an enum value without variant validation. Validation
// against the declared variant set happens in FieldType.ParseValue.
func EnumValue(variant string) FieldValue {
	return FieldValue{typ: FieldType{kind: KindEnum}, data: variant}
}

// Type returns the field type the value was coerced to.
func (v FieldValue) Type() FieldType {
	return v.typ
}

// IsNull reports whether the value is the null of its type.
func (v FieldValue) IsNull() bool {
	return v.null
}

// Uuid returns the uuid payload. The bool is false for nulls and for values
// of any other kind.
func (v FieldValue) Uuid() (uuid.UUID, bool) {
	u, ok := v.data.(uuid.UUID)
	return u, ok && !v.null
}

func (v FieldValue) Bool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok && !v.null
}

func (v FieldValue) Int() (int64, bool) {
	i, ok := v.data.(int64)
	return i, ok && !v.null
}

func (v FieldValue) Int32() (int32, bool) {
	i, ok := v.data.(int32)
	return i, ok && !v.null
}

func (v FieldValue) Float() (float64, bool) {
	f, ok := v.data.(float64)
	return f, ok && !v.null
}

func (v FieldValue) Decimal() (decimal.Decimal, bool) {
	d, ok := v.data.(decimal.Decimal)
	return d, ok && !v.null
}

// Text returns the string payload of String and Enum values.
func (v FieldValue) Text() (string, bool) {
	s, ok := v.data.(string)
	return s, ok && !v.null
}

func (v FieldValue) Date() (time.Time, bool) {
	t, ok := v.data.(time.Time)
	return t, ok && !v.null && v.typ.kind == KindDate
}

func (v FieldValue) DateTime() (time.Time, bool) {
	t, ok := v.data.(time.Time)
	return t, ok && !v.null && v.typ.kind == KindDateTime
}

// String serializes the value as literal text. The output round-trips
// through FieldType.ParseValue for every non-null value.
func (v FieldValue) String() string {
	if v.null {
		return "null"
	}
	switch v.typ.kind {
	case KindUuid:
		return v.data.(uuid.UUID).String()
	case KindBool:
		return strconv.FormatBool(v.data.(bool))
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindInt32:
		return strconv.FormatInt(int64(v.data.(int32)), 10)
	case KindFloat:
		return strconv.FormatFloat(v.data.(float64), 'g', -1, 64)
	case KindDecimal:
		return v.data.(decimal.Decimal).String()
	case KindString, KindEnum:
		return v.data.(string)
	case KindDate:
		return v.data.(time.Time).Format(dateLayout)
	case KindDateTime:
		return v.data.(time.Time).Format(time.RFC3339)
	}
	return ""
}

// Databind returns the value in a form a database/sql driver can bind: the
// native payload for non-null values, nil for nulls. uuid.UUID and
// decimal.Decimal implement driver.Valuer themselves.
func (v FieldValue) Databind() any {
	if v.null {
		return nil
	}
	return v.data
}

// Equal reports type-aware equality. Decimals compare by numeric value and
// times by instant, so 1.50 equals 1.5 and equal instants in different
// zones are equal.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.typ.kind != o.typ.kind {
		return false
	}
	if v.null || o.null {
		return v.null == o.null
	}
	switch v.typ.kind {
	case KindDecimal:
		return v.data.(decimal.Decimal).Equal(o.data.(decimal.Decimal))
	case KindDate, KindDateTime:
		return v.data.(time.Time).Equal(o.data.(time.Time))
	}
	return v.data == o.data
}
