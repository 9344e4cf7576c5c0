/*
Package filterexpr parses user-supplied filter text into typed expression
trees, checked against a declared schema at parse time.

A filter is a boolean combination of comparisons between dotted field paths
and literals:

	cake_type = "ButterCake" && (servings >= "4" || name LIKE "Mad%")

Filters are parsed from the point of view of one model in a schema. Every
field path is resolved as it is reached: bare names address the model's own
fields, dotted paths traverse its relations into other models. Every literal
is coerced to the declared type of the field it is compared against. A
filter that mentions an unknown field, filters on a json field or carries a
literal its field's type rejects fails as a whole; there are no partially
valid filters.

# Grammar

Operator precedence from loosest to tightest is ||, && and !, with
parentheses to group. Comparison operators are =, !=, >, >=, <, <=, LIKE
and ILIKE. Literals are double-quoted strings, null, true or false. Inside
a string, backslash escapes a quote or another backslash; any other
backslash sequence is kept as written.

The null literal compares against a field of any filterable type and means
the type's null. true and false are shorthand for the strings "true" and
"false" and map directly onto bool fields.

# Schemas

Schemas are declared with the schema package: models with typed fields and
named relations, collected in a schema.Schema. Field types form a closed
set (uuid, bool, int, int32, float, decimal, string, date, datetime, enum
and json); enum types carry their variant set, and variants are validated
on equality comparisons.

# Using the tree

The parsed expr.Expr can be walked directly, or rendered to a SQL predicate
with expr.ToSQL, which returns placeholder text plus the values to bind.
Filters can also be assembled programmatically with the Filter builder, and
sort specifications validated with ParseSort.
*/
package filterexpr
