// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package schema

import (
	. "gopkg.in/check.v1"
)

type SchemaSuite struct{}

var _ = Suite(&SchemaSuite{})

func (s *SchemaSuite) TestAddAndLookup(c *C) {
	sch := New()
	err := sch.Add(&Model{Name: "cake", Table: "cake"})
	c.Assert(err, IsNil)
	err = sch.Add(&Model{Name: "cake", Table: "cake2"})
	c.Assert(err, ErrorMatches, `model "cake" already defined`)

	m, ok := sch.Model("cake")
	c.Assert(ok, Equals, true)
	c.Assert(m.Table, Equals, "cake")
	_, ok = sch.Model("pie")
	c.Assert(ok, Equals, false)
}

func (s *SchemaSuite) TestFieldAndRelationLookup(c *C) {
	m := &Model{
		Name: "cake",
		Fields: []FieldDefinition{
			{Name: "id", Type: Uuid, PrimaryKey: true},
			{Name: "name", Type: String},
		},
		Relations: []Relation{
			{Name: "toppings", Kind: HasMany, Target: "topping", Column: "cake_id"},
		},
	}

	f, ok := m.Field("name")
	c.Assert(ok, Equals, true)
	c.Assert(f.Type.Kind(), Equals, KindString)
	_, ok = m.Field("toppings")
	c.Assert(ok, Equals, false)

	r, ok := m.Relation("toppings")
	c.Assert(ok, Equals, true)
	c.Assert(r.Target, Equals, "topping")
	_, ok = m.Relation("name")
	c.Assert(ok, Equals, false)
}

// Self-referential models need no special declaration: targets are names,
// not pointers.
func (s *SchemaSuite) TestSelfReferentialModel(c *C) {
	sch := New().MustAdd(&Model{
		Name: "employee",
		Fields: []FieldDefinition{
			{Name: "id", Type: Uuid, PrimaryKey: true},
		},
		Relations: []Relation{
			{Name: "manager", Kind: BelongsTo, Target: "employee", Column: "manager_id"},
		},
	})
	m, ok := sch.Model("employee")
	c.Assert(ok, Equals, true)
	r, ok := m.Relation("manager")
	c.Assert(ok, Equals, true)
	target, ok := sch.Model(r.Target)
	c.Assert(ok, Equals, true)
	c.Assert(target, Equals, m)
}

func (s *SchemaSuite) TestCreateTableDDL(c *C) {
	m := &Model{
		Name:  "cake",
		Table: "cake",
		Fields: []FieldDefinition{
			{Name: "id", Type: Uuid, PrimaryKey: true},
			{Name: "name", Type: String, Unique: true},
			{Name: "servings", Type: Int32, Nullable: true},
			{Name: "metadata", Type: Json, Nullable: true},
		},
	}
	c.Assert(m.CreateTableDDL(), Equals,
		"CREATE TABLE cake (id uuid NOT NULL, name text NOT NULL UNIQUE, "+
			"servings int4, metadata jsonb, PRIMARY KEY (id));")
}

func (s *SchemaSuite) TestCreateTableDDLNoPrimaryKey(c *C) {
	m := &Model{
		Name:   "note",
		Table:  "note",
		Fields: []FieldDefinition{{Name: "body", Type: String, Nullable: true}},
	}
	c.Assert(m.CreateTableDDL(), Equals, "CREATE TABLE note (body text);")
}
