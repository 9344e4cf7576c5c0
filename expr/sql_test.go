// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	gc "gopkg.in/check.v1"
)

type SQLSuite struct{}

var _ = gc.Suite(&SQLSuite{})

func (s *SQLSuite) TestToSQLComparison(c *gc.C) {
	sch, cake := bakerySchema()
	e, err := NewParser(sch, cake).Parse(`name = "Madeira"`)
	c.Assert(err, gc.IsNil)

	sql, bindings := ToSQL(e, 0)
	c.Assert(sql, gc.Equals, "name = $1")
	c.Assert(bindings, gc.HasLen, 1)
	text, ok := bindings[0].Text()
	c.Assert(ok, gc.Equals, true)
	c.Assert(text, gc.Equals, "Madeira")
}

func (s *SQLSuite) TestToSQLPrecedenceAndNumbering(c *gc.C) {
	sch, cake := bakerySchema()
	e, err := NewParser(sch, cake).Parse(
		`age > "30" || organic = true && !name != "Madeira"`)
	c.Assert(err, gc.IsNil)

	sql, bindings := ToSQL(e, 0)
	c.Assert(sql, gc.Equals, "(age > $1 OR (organic = $2 AND (NOT (name <> $3))))")
	c.Assert(bindings, gc.HasLen, 3)
	i, _ := bindings[0].Int()
	c.Assert(i, gc.Equals, int64(30))
	b, _ := bindings[1].Bool()
	c.Assert(b, gc.Equals, true)
	text, _ := bindings[2].Text()
	c.Assert(text, gc.Equals, "Madeira")
}

func (s *SQLSuite) TestToSQLOffset(c *gc.C) {
	sch, cake := bakerySchema()
	e, err := NewParser(sch, cake).Parse(`age > "1" && age < "9"`)
	c.Assert(err, gc.IsNil)

	sql, bindings := ToSQL(e, 4)
	c.Assert(sql, gc.Equals, "(age > $5 AND age < $6)")
	c.Assert(bindings, gc.HasLen, 2)
}

func (s *SQLSuite) TestToSQLWithQuestionPlaceholder(c *gc.C) {
	sch, cake := bakerySchema()
	e, err := NewParser(sch, cake).Parse(`toppings.name = "Coconut Flakes" || age = null`)
	c.Assert(err, gc.IsNil)

	sql, bindings := ToSQLWith(e, 0, Question)
	c.Assert(sql, gc.Equals, "(toppings.name = ? OR age = ?)")
	c.Assert(bindings, gc.HasLen, 2)
	c.Assert(bindings[1].IsNull(), gc.Equals, true)
	c.Assert(bindings[1].Databind(), gc.IsNil)
}
