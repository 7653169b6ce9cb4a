package compiler

import (
	"strings"
	"testing"

	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/param"
)

type testConfig struct {
	dialect          string
	strict           bool
	allowRiskyDML    bool
	requireUpdate    bool
	requireDelete    bool
	targetStyle      param.Style
	parameterizeLit  bool
	jsonStrategy     adapter.JSONStrategy
	protectedTables  map[string]bool
}

func newTestConfig(target param.Style) *testConfig {
	return &testConfig{
		dialect:         "postgres",
		allowRiskyDML:   true,
		targetStyle:     target,
		jsonStrategy:    adapter.JSONHelper,
		protectedTables: map[string]bool{},
	}
}

func (c *testConfig) Dialect() string                          { return c.dialect }
func (c *testConfig) EnableParsing() bool                       { return true }
func (c *testConfig) EnableValidation() bool                    { return true }
func (c *testConfig) EnableTransformations() bool                { return true }
func (c *testConfig) EnableAnalysis() bool                       { return true }
func (c *testConfig) StrictMode() bool                           { return c.strict }
func (c *testConfig) ParameterizeLiterals() bool                 { return c.parameterizeLit }
func (c *testConfig) TargetParameterStyle() param.Style          { return c.targetStyle }
func (c *testConfig) AllowedParameterStyles() map[param.Style]bool {
	return map[param.Style]bool{
		param.Qmark: true, param.NumericDollar: true, param.NumericColon: true,
		param.NamedColon: true, param.NamedAt: true, param.NamedDollar: true,
		param.PyformatPositional: true, param.PyformatNamed: true, param.Static: true,
	}
}
func (c *testConfig) AllowMixedParameterStyles() bool { return false }
func (c *testConfig) AllowDDL() bool                  { return true }
func (c *testConfig) AllowRiskyDML() bool             { return c.allowRiskyDML }
func (c *testConfig) RequireWhereForUpdate() bool     { return c.requireUpdate }
func (c *testConfig) RequireWhereForDelete() bool     { return c.requireDelete }
func (c *testConfig) ProtectedTables() map[string]bool { return c.protectedTables }
func (c *testConfig) MaxJoins() int                    { return 8 }
func (c *testConfig) MaxSubqueryDepth() int            { return 6 }
func (c *testConfig) ForbiddenKeywords() []string      { return nil }
func (c *testConfig) PreservePatterns() []string       { return nil }
func (c *testConfig) JSONStrategy() adapter.JSONStrategy { return c.jsonStrategy }

func TestCompilePositionalToNumericDollar(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	compiled, err := Compile("SELECT * FROM users WHERE id = ? AND active = ?", param.Positional{1, true}, cfg, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(compiled.RenderedSQL, "$1") || !strings.Contains(compiled.RenderedSQL, "$2") {
		t.Errorf("expected $1/$2 placeholders, got %q", compiled.RenderedSQL)
	}
	if len(compiled.Parameters.Positional) != 2 {
		t.Fatalf("expected 2 positional parameters, got %d", len(compiled.Parameters.Positional))
	}
}

func TestCompileNamedParameters(t *testing.T) {
	cfg := newTestConfig(param.NamedColon)
	compiled, err := Compile(
		"SELECT * FROM users WHERE email = :email",
		param.Named{"email": "a@example.com"},
		cfg, Options{},
	)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if compiled.Parameters.Named["email"] != "a@example.com" {
		t.Errorf("expected bound email value, got %+v", compiled.Parameters.Named)
	}
}

func TestCompileStrictModeBlocksUnsafeUpdate(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	cfg.strict = true
	cfg.allowRiskyDML = false
	_, err := Compile("UPDATE users SET active = ?", param.Positional{false}, cfg, Options{})
	if err == nil {
		t.Fatal("expected strict mode to block an UPDATE with no WHERE clause")
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	a, err := Compile("SELECT * FROM users WHERE id = ?", param.Positional{1}, cfg, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := Compile("SELECT * FROM users WHERE id = ?", param.Positional{1}, cfg, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if a.RenderedSQL != b.RenderedSQL || a.CacheFingerprint != b.CacheFingerprint {
		t.Errorf("expected two compiles of identical input to agree")
	}
}

func TestCompileStaticRendersLiterals(t *testing.T) {
	cfg := newTestConfig(param.Static)
	compiled, err := Compile("SELECT * FROM users WHERE id = :id", param.Named{"id": 42}, cfg, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(compiled.RenderedSQL, "42") {
		t.Errorf("expected static literal 42 inlined, got %q", compiled.RenderedSQL)
	}
	if len(compiled.Parameters.Positional) != 0 || len(compiled.Parameters.Named) != 0 {
		t.Errorf("static rendering should carry no bound parameters, got %+v", compiled.Parameters)
	}
}

func TestCompileScriptDecomposesStatements(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	compiled, err := Compile(
		"SELECT * FROM a WHERE x = ?; SELECT * FROM b WHERE y = ?;",
		param.Empty{}, cfg, Options{IsScript: true},
	)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if compiled.OperationKind != "script" {
		t.Errorf("expected script operation kind, got %s", compiled.OperationKind)
	}
	if !strings.Contains(compiled.RenderedSQL, "$1") {
		t.Errorf("expected each script statement to be independently numbered from $1, got %q", compiled.RenderedSQL)
	}
	if !strings.Contains(compiled.RenderedSQL, ";\n") {
		t.Errorf("expected sub-statements to be joined with \";\\n\", got %q", compiled.RenderedSQL)
	}
}

func TestCompileEmptyStatementRejected(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	if _, err := Compile("   ", param.Empty{}, cfg, Options{}); err == nil {
		t.Fatal("expected an error for blank input SQL")
	}
}
