package example

import (
	"database/sql"
	"fmt"

	"github.com/modelq/filterexpr"
	"github.com/modelq/filterexpr/expr"
	"github.com/modelq/filterexpr/schema"

	_ "github.com/mattn/go-sqlite3"
)

// bakery declares a schema with two related models.
func bakery() (*schema.Schema, *schema.Model) {
	cake := &schema.Model{
		Name:  "cake",
		Table: "cake",
		Fields: []schema.FieldDefinition{
			{Name: "id", Type: schema.Uuid, PrimaryKey: true},
			{Name: "cake_type", Type: schema.Enum("ButterCake", "SpongeCake")},
			{Name: "name", Type: schema.String, Unique: true},
			{Name: "servings", Type: schema.Int32, Nullable: true},
			{Name: "organic", Type: schema.Bool, Nullable: true},
		},
		Relations: []schema.Relation{
			{Name: "toppings", Kind: schema.HasMany, Target: "topping", Column: "cake_id"},
		},
	}
	topping := &schema.Model{
		Name:  "topping",
		Table: "topping",
		Fields: []schema.FieldDefinition{
			{Name: "id", Type: schema.Uuid, PrimaryKey: true},
			{Name: "cake_id", Type: schema.Uuid},
			{Name: "name", Type: schema.String},
		},
	}
	s := schema.New().MustAdd(cake).MustAdd(topping)
	return s, cake
}

func example() error {
	s, cake := bakery()

	// A filter string as it would arrive from an API query parameter.
	e, err := filterexpr.Parse(s, cake,
		`cake_type = "ButterCake" && (servings >= "8" || organic = true)`)
	if err != nil {
		return err
	}

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if _, err := sqldb.Exec(cake.CreateTableDDL()); err != nil {
		return err
	}
	inserts := []string{
		`INSERT INTO cake VALUES ('11111111-1111-1111-1111-111111111111', 'ButterCake', 'Madeira', 8, 1)`,
		`INSERT INTO cake VALUES ('22222222-2222-2222-2222-222222222222', 'SpongeCake', 'Genoise', 12, 0)`,
	}
	for _, insert := range inserts {
		if _, err := sqldb.Exec(insert); err != nil {
			return err
		}
	}

	pred, values := expr.ToSQLWith(e, 0, expr.Question)
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v.Databind()
	}
	rows, err := sqldb.Query("SELECT name FROM cake WHERE "+pred, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		fmt.Println(name)
	}
	return rows.Err()
}
