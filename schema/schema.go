// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package schema declares the model definitions that filter expressions are
// checked against: models with typed fields and named relations to other
// models, collected in a Schema arena keyed by model name. Relations refer
// to their target by name rather than by pointer, so self-referential and
// mutually-referential models need no special handling.
package schema

import (
	"fmt"
	"strings"
)

// Schema is an arena of model definitions addressed by stable model names.
type Schema struct {
	models map[string]*Model
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{models: map[string]*Model{}}
}

// Add registers a model definition. Model names are unique within a schema.
func (s *Schema) Add(m *Model) error {
	if _, ok := s.models[m.Name]; ok {
		return fmt.Errorf("model %q already defined", m.Name)
	}
	s.models[m.Name] = m
	return nil
}

// MustAdd is the same as Add except it panics on error, for use in schema
// declarations at program start.
func (s *Schema) MustAdd(m *Model) *Schema {
	if err := s.Add(m); err != nil {
		panic(err)
	}
	return s
}

// Model returns the model registered under name.
func (s *Schema) Model(name string) (*Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Model describes one model: its table, its typed fields and its relations
// to other models.
type Model struct {
	// Name is the stable name the model is addressed by within a schema.
	Name string
	// Table is the table the model is stored in.
	Table string
	// Fields are the model's columns, in declaration order.
	Fields []FieldDefinition
	// Relations are the model's named links to other models.
	Relations []Relation
}

// Field returns the field definition named name.
func (m *Model) Field(name string) (FieldDefinition, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Relation returns the relation named name.
func (m *Model) Relation(name string) (Relation, bool) {
	for _, r := range m.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// FieldDefinition describes one typed field of a model.
type FieldDefinition struct {
	Name       string
	Type       FieldType
	Immutable  bool
	PrimaryKey bool
	Unique     bool
	Nullable   bool
}

// RelationKind is the cardinality of a relation.
type RelationKind int

const (
	BelongsTo RelationKind = iota
	HasOne
	HasMany
	HasManyVia
)

// Relation links a model to a target model by name.
type Relation struct {
	// Name is the segment used to traverse the relation in a field path.
	Name string
	// Kind is the relation's cardinality.
	Kind RelationKind
	// Target is the name of the model the relation points at.
	Target string
	// Column is the foreign key column: on this model's table for
	// BelongsTo, on the target's table otherwise.
	Column string
	// JunctionTable holds the join table name for HasManyVia relations.
	JunctionTable string
}

// CreateTableDDL renders a CREATE TABLE statement for the model. Column
// types follow FieldType.SQLType.
func (m *Model) CreateTableDDL() string {
	var cols []string
	var pks []string
	for _, f := range m.Fields {
		col := f.Name + " " + f.Type.SQLType()
		if !f.Nullable {
			col += " NOT NULL"
		}
		if f.Unique {
			col += " UNIQUE"
		}
		cols = append(cols, col)
		if f.PrimaryKey {
			pks = append(pks, f.Name)
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", m.Table, strings.Join(cols, ", "))
}
