// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package filterexpr_test

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	. "gopkg.in/check.v1"

	"github.com/modelq/filterexpr"
	"github.com/modelq/filterexpr/expr"
	"github.com/modelq/filterexpr/schema"
)

type DBSuite struct{}

var _ = Suite(&DBSuite{})

// setupCakeDB materializes the cake model in an in-memory sqlite database
// and loads a few rows.
func setupCakeDB(c *C) (*sql.DB, *schema.Schema, *schema.Model) {
	s, cake := cakeSchema()

	db, err := sql.Open("sqlite3", ":memory:")
	c.Assert(err, IsNil)
	_, err = db.Exec(cake.CreateTableDDL())
	c.Assert(err, IsNil)

	rows := []struct {
		id, typ, name       string
		servings            any
		price, organic, meta any
	}{
		{"0c4b5b0e-95cf-4a1a-9b5e-000000000001", "ButterCake", "Madeira", int32(8), "12.50", true, nil},
		{"0c4b5b0e-95cf-4a1a-9b5e-000000000002", "SpongeCake", "Genoise", int32(12), "18.00", false, nil},
		{"0c4b5b0e-95cf-4a1a-9b5e-000000000003", "ButterCake", "Pound Cake", nil, "9.95", true, nil},
	}
	for _, r := range rows {
		_, err = db.Exec(
			"INSERT INTO cake (id, cake_type, name, servings, price, organic, metadata) VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.id, r.typ, r.name, r.servings, r.price, r.organic, r.meta)
		c.Assert(err, IsNil)
	}
	return db, s, cake
}

// countWhere parses the filter, renders it with ? placeholders and runs it
// as a WHERE clause.
func countWhere(c *C, db *sql.DB, s *schema.Schema, m *schema.Model, filter string) int {
	e, err := filterexpr.Parse(s, m, filter)
	c.Assert(err, IsNil)
	pred, values := expr.ToSQLWith(e, 0, expr.Question)
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v.Databind()
	}
	var n int
	err = db.QueryRow("SELECT count(*) FROM cake WHERE "+pred, args...).Scan(&n)
	c.Assert(err, IsNil, Commentf("filter: %s\npredicate: %s", filter, pred))
	return n
}

func (ds *DBSuite) TestPredicatesAgainstSqlite(c *C) {
	db, s, cake := setupCakeDB(c)
	defer db.Close()

	c.Assert(countWhere(c, db, s, cake, `cake_type = "ButterCake"`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake, `name != "Madeira"`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake, `servings >= "10"`), Equals, 1)
	c.Assert(countWhere(c, db, s, cake, `price < "15"`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake, `organic = true && cake_type = "ButterCake"`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake, `organic = false || servings > "6"`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake, `name LIKE "%Cake"`), Equals, 1)
	c.Assert(countWhere(c, db, s, cake, `!(cake_type = "SpongeCake")`), Equals, 2)
	c.Assert(countWhere(c, db, s, cake,
		`id = "0c4b5b0e-95cf-4a1a-9b5e-000000000001"`), Equals, 1)
}

// Null bindings travel as SQL NULL: equality with NULL matches nothing,
// which is the SQL behavior the caller opted into.
func (ds *DBSuite) TestNullBinding(c *C) {
	db, s, cake := setupCakeDB(c)
	defer db.Close()

	c.Assert(countWhere(c, db, s, cake, `servings = null`), Equals, 0)

	e, err := filterexpr.Parse(s, cake, `servings = null`)
	c.Assert(err, IsNil)
	_, values := expr.ToSQLWith(e, 0, expr.Question)
	c.Assert(values, HasLen, 1)
	c.Assert(values[0].Databind(), IsNil)
}

func (ds *DBSuite) TestBuilderPredicateAgainstSqlite(c *C) {
	db, s, cake := setupCakeDB(c)
	defer db.Close()

	e, err := filterexpr.NewFilter().
		Field("cake_type").Eq(schema.EnumValue("ButterCake")).
		And().
		Field("servings").Gte(schema.Int32Value(6)).
		Build(s, cake)
	c.Assert(err, IsNil)

	pred, values := expr.ToSQLWith(e, 0, expr.Question)
	c.Assert(pred, Equals, "(cake_type = ? AND servings >= ?)")
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v.Databind()
	}
	var n int
	err = db.QueryRow("SELECT count(*) FROM cake WHERE "+pred, args...).Scan(&n)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 1)
}
