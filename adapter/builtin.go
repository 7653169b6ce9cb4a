package adapter

import "github.com/sqlspec-go/sqlspec/param"

// builtinProfiles returns the six profiles the registry is pre-loaded
// with at startup, one per dialect spec.md §3.5 names. Parameter-style
// and list-expansion choices follow the same per-driver conventions the
// teacher's storage.SQLDialect implementations already encode
// (storage/dialects.go: Placeholder(), Name()); SQLite/Oracle/DuckDB/
// BigQuery profiles here extend that table since the teacher only
// carried Postgres/MySQL/SQLite/SQLServer/Oracle dialects for SQL
// rendering, not a parameter-style profile for every adapter spec.md
// requires.
func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Key:                      "postgres",
			DefaultParameterStyle:    param.NumericDollar,
			SupportedParameterStyles: styles(param.NumericDollar, param.NamedDollar),
			ExecutionStyle:           param.ExecPositionOnly,
			NativeListExpansion:      false,
			JSONStrategy:             JSONDriver,
			AutocommitDefault:        false,
		},
		{
			Key:                      "mysql",
			DefaultParameterStyle:    param.PyformatPositional,
			SupportedParameterStyles: styles(param.PyformatPositional, param.Qmark),
			ExecutionStyle:           param.ExecPositionOnly,
			NativeListExpansion:      false,
			JSONStrategy:             JSONHelper,
			AutocommitDefault:        true,
		},
		{
			Key:                      "sqlite",
			DefaultParameterStyle:    param.Qmark,
			SupportedParameterStyles: styles(param.Qmark, param.NamedColon, param.NamedAt, param.NamedDollar),
			ExecutionStyle:           param.ExecEither,
			NativeListExpansion:      false,
			JSONStrategy:             JSONHelper,
			AutocommitDefault:        true,
		},
		{
			Key:                      "oracle",
			DefaultParameterStyle:    param.NumericColon,
			SupportedParameterStyles: styles(param.NumericColon, param.NamedColon),
			ExecutionStyle:           param.ExecEither,
			NativeListExpansion:      false,
			JSONStrategy:             JSONHelper,
			AutocommitDefault:        false,
		},
		{
			Key:                      "duckdb",
			DefaultParameterStyle:    param.Qmark,
			SupportedParameterStyles: styles(param.Qmark, param.NumericDollar),
			ExecutionStyle:           param.ExecPositionOnly,
			NativeListExpansion:      true,
			JSONStrategy:             JSONDriver,
			AutocommitDefault:        true,
		},
		{
			Key:                      "bigquery",
			DefaultParameterStyle:    param.NamedAt,
			SupportedParameterStyles: styles(param.NamedAt),
			ExecutionStyle:           param.ExecNameOnly,
			NativeListExpansion:      true,
			JSONStrategy:             JSONHelper,
			AutocommitDefault:        true,
		},
	}
}

func styles(ss ...param.Style) map[param.Style]bool {
	out := make(map[param.Style]bool, len(ss))
	for _, s := range ss {
		out[s] = true
	}
	return out
}
