package sqlspec

import (
	"strings"
	"testing"

	"github.com/sqlspec-go/sqlspec/param"
)

// E1: positional input rendered against a numeric-dollar target (spec §8 E1).
func TestCompilePositionalToNumericDollar(t *testing.T) {
	cfg := NewConfig(WithTargetParameterStyle(param.NumericDollar))
	compiled, err := Compile("SELECT * FROM u WHERE id = ? AND name = ?", param.Positional{42, "x"}, cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if compiled.RenderedSQL != "SELECT * FROM u WHERE id = $1 AND name = $2" {
		t.Errorf("unexpected rendered SQL: %q", compiled.RenderedSQL)
	}
	if got := compiled.Parameters.Positional; len(got) != 2 || got[0] != 42 || got[1] != "x" {
		t.Errorf("unexpected parameters: %+v", got)
	}
}

// E2: named input rendered against qmark (spec §8 E2).
func TestCompileNamedToQmark(t *testing.T) {
	cfg := NewConfig(WithDialect("sqlite"), WithTargetParameterStyle(param.Qmark))
	compiled, err := Compile(
		"SELECT 1 WHERE a = :alpha AND b = :beta",
		param.Named{"alpha": 1, "beta": 2},
		cfg,
	)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if compiled.RenderedSQL != "SELECT 1 WHERE a = ? AND b = ?" {
		t.Errorf("unexpected rendered SQL: %q", compiled.RenderedSQL)
	}
	if got := compiled.Parameters.Positional; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected parameters: %+v", got)
	}
}

// E3: literal parameterization hoists bare literals into bound parameters
// (spec §8 E3).
func TestCompileLiteralParameterization(t *testing.T) {
	cfg := NewConfig(
		WithTargetParameterStyle(param.Qmark),
		WithParameterizeLiterals(true),
	)
	compiled, err := Compile(
		"SELECT * FROM u WHERE age > 25 AND status = 'active'",
		param.Empty{},
		cfg,
	)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if strings.Contains(compiled.RenderedSQL, "25") || strings.Contains(compiled.RenderedSQL, "active") {
		t.Errorf("expected literals hoisted out of rendered SQL, got %q", compiled.RenderedSQL)
	}
	if got := compiled.Parameters.Positional; len(got) != 2 {
		t.Fatalf("expected 2 hoisted parameters, got %+v", got)
	}
}

// E6: strict mode blocks an unsafe DELETE (spec §8 E6).
func TestCompileStrictModeBlocksUnsafeDelete(t *testing.T) {
	cfg := NewConfig(
		WithStrictMode(true),
		WithRequireWhereForDelete(true),
	)
	_, err := Compile("DELETE FROM u", param.Empty{}, cfg)
	if err == nil {
		t.Fatal("expected ValidationBlocked for a WHERE-less DELETE under strict mode")
	}
}

// A disallowed placeholder style produces a parameter_style_not_allowed
// finding that blocks compilation under strict mode (spec §4.1 error conditions,
// §7 StyleNotSupported), exercised through the public Compile facade
// rather than by hand-populating a processor test context.
func TestCompileStrictModeBlocksDisallowedStyle(t *testing.T) {
	cfg := NewConfig(
		WithStrictMode(true),
		WithAllowedParameterStyles(param.NumericDollar),
	)
	_, err := Compile("SELECT * FROM u WHERE id = ?", param.Positional{1}, cfg)
	if err == nil {
		t.Fatal("expected ValidationBlocked for a qmark placeholder outside the allowed style set")
	}
}

// Two placeholder styles coexisting in one statement produce a
// mixed_parameter_styles finding that blocks compilation under strict mode when
// allow_mixed_parameter_styles is false (spec §4.1, §7 MixedStyles),
// exercised through the public Compile facade.
func TestCompileStrictModeBlocksMixedStyles(t *testing.T) {
	cfg := NewConfig(WithStrictMode(true))
	_, err := Compile(
		"SELECT * FROM u WHERE id = ? AND name = :name",
		param.Named{"name": "x"},
		cfg,
	)
	if err == nil {
		t.Fatal("expected ValidationBlocked for a statement mixing qmark and named-colon placeholders")
	}
}

// Idempotence via the reusable Statement handle (spec §8 property 1): a
// second Compile() call returns the already-cached CompiledStatement
// rather than re-running the pipeline.
func TestStatementCompileIsCachedAcrossCalls(t *testing.T) {
	cfg := NewConfig(WithTargetParameterStyle(param.NumericDollar))
	stmt := NewStatement("SELECT * FROM u WHERE id = ?", cfg).WithParameters(param.Positional{7})

	first, err := stmt.Compiled()
	if err != nil {
		t.Fatalf("first Compiled: %v", err)
	}
	second, err := stmt.Compiled()
	if err != nil {
		t.Fatalf("second Compiled: %v", err)
	}
	if first != second {
		t.Errorf("expected the same cached *CompiledStatement pointer across calls")
	}
}

// WithParameters produces an independent statement whose cache is
// cleared, leaving the original statement's compiled result untouched
// (spec §3.4 "new statement, cleared cache").
func TestStatementWithParametersProducesIndependentStatement(t *testing.T) {
	cfg := NewConfig(WithTargetParameterStyle(param.NumericDollar))
	base := NewStatement("SELECT * FROM u WHERE id = ?", cfg).WithParameters(param.Positional{1})

	baseCompiled, err := base.Compiled()
	if err != nil {
		t.Fatalf("Compiled: %v", err)
	}

	rebound := base.WithParameters(param.Positional{2})
	reboundCompiled, err := rebound.Compiled()
	if err != nil {
		t.Fatalf("Compiled: %v", err)
	}

	if baseCompiled.Parameters.Positional[0] != 1 {
		t.Errorf("original statement's parameters mutated: %+v", baseCompiled.Parameters)
	}
	if reboundCompiled.Parameters.Positional[0] != 2 {
		t.Errorf("rebound statement did not pick up new parameters: %+v", reboundCompiled.Parameters)
	}
}
