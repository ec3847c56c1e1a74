package database

import "strconv"

// Dialect hides the SQL differences between the supported engines. Statement
// builders only ever talk to a Dialect, never to a concrete engine.
type Dialect interface {
	// Name identifies the dialect in logs.
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) parameter.
	Placeholder(n int) string
	// JSONPlaceholder is Placeholder for a parameter bound to a JSON column.
	JSONPlaceholder(n int) string
	// JSONArrayContains returns a predicate matching rows whose JSON array
	// column holds the string bound at placeholder.
	JSONArrayContains(column, placeholder string) string
	// ContainsCI matches column against the LIKE pattern bound at placeholder,
	// folding case for all letters, not only ASCII.
	ContainsCI(column, placeholder string) string
	// Bool converts a boolean into the engine's stored representation.
	Bool(v bool) any
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) JSONPlaceholder(int) string { return "?" }

func (sqliteDialect) JSONArrayContains(column, placeholder string) string {
	return "EXISTS (SELECT 1 FROM json_each(" + column + ") WHERE json_each.value = " + placeholder + ")"
}

// SQLite's LIKE only folds ASCII, so both sides go through casefold.
func (sqliteDialect) ContainsCI(column, placeholder string) string {
	return casefoldFunc + "(" + column + ") LIKE " + casefoldFunc + "(" + placeholder + `) ESCAPE '\'`
}

func (sqliteDialect) Bool(v bool) any {
	if v {
		return 1
	}
	return 0
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) JSONPlaceholder(n int) string { return "$" + strconv.Itoa(n) + "::jsonb" }

func (postgresDialect) JSONArrayContains(column, placeholder string) string {
	return column + " @> jsonb_build_array(" + placeholder + "::text)"
}

func (postgresDialect) ContainsCI(column, placeholder string) string {
	return column + " ILIKE " + placeholder + ` ESCAPE '\'`
}

func (postgresDialect) Bool(v bool) any { return v }
