// Command sqlspec is a demonstration CLI over the compiler: it reads a
// SQL statement from a file or stdin, compiles it against a chosen
// dialect and target parameter style, and prints the result as JSON
// (rendered SQL, parameters, operation kind, and any validation
// findings). It is not a production driver; it exists to exercise the
// pipeline end to end from the command line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sqlspec-go/sqlspec"
	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/param"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type output struct {
	SQL           string                 `json:"sql"`
	Style         string                 `json:"parameter_style"`
	OperationKind string                 `json:"operation_kind"`
	Positional    []interface{}          `json:"positional_parameters,omitempty"`
	Named         map[string]interface{} `json:"named_parameters,omitempty"`
	Blocked       bool                   `json:"validation_blocked"`
	Findings      []string               `json:"findings,omitempty"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sqlspec", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		input       = fs.String("input", "", "Read SQL from this file instead of stdin")
		dialect     = fs.String("dialect", "postgres", "SQL dialect (postgres, mysql, sqlite, oracle, duckdb, bigquery)")
		targetStyle = fs.String("target-style", "", "Target parameter style; defaults to the chosen dialect's adapter profile default")
		script      = fs.Bool("script", false, "Compile the input as a multi-statement script")
		strict      = fs.Bool("strict", false, "Enable strict mode: a High-severity finding aborts compilation")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var sql []byte
	var err error
	if *input != "" {
		sql, err = os.ReadFile(*input)
	} else {
		sql, err = io.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "sqlspec: reading input: %v\n", err)
		return 1
	}

	profile, ok := adapter.Lookup(*dialect)
	if !ok {
		fmt.Fprintf(stderr, "sqlspec: unknown dialect %q\n", *dialect)
		return 1
	}

	style := profile.DefaultParameterStyle
	if *targetStyle != "" {
		style = param.Style(*targetStyle)
	}

	cfg := sqlspec.NewConfig(
		sqlspec.WithDialect(*dialect),
		sqlspec.WithTargetParameterStyle(style),
		sqlspec.WithStrictMode(*strict),
		sqlspec.WithJSONStrategy(profile.JSONStrategy),
	)

	var opts []sqlspec.CompileOption
	if *script {
		opts = append(opts, sqlspec.AsScript())
	}
	opts = append(opts, sqlspec.WithAdapterProfile(profile))

	compiled, err := sqlspec.Compile(string(sql), param.Empty{}, cfg, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "sqlspec: %v\n", err)
		return 1
	}

	out := output{
		SQL:           compiled.RenderedSQL,
		Style:         string(compiled.PlaceholderStyle),
		OperationKind: string(compiled.OperationKind),
		Positional:    compiled.Parameters.Positional,
		Named:         compiled.Parameters.Named,
		Blocked:       compiled.ValidationSummary.Blocked,
	}
	for _, f := range compiled.ValidationSummary.Findings {
		out.Findings = append(out.Findings, fmt.Sprintf("[%s] %s: %s", f.Severity, f.Kind, f.Message))
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "sqlspec: encoding output: %v\n", err)
		return 1
	}
	return 0
}
