package statement

import (
	"testing"

	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/cache"
	"github.com/sqlspec-go/sqlspec/param"
)

type testConfig struct {
	dialect       string
	strict        bool
	allowRiskyDML bool
	targetStyle   param.Style
	astCacheSize  int
	compCacheSize int

	astCache      *cache.ASTCache
	compiledCache *cache.CompiledCache
}

func newTestConfig(target param.Style) *testConfig {
	return &testConfig{
		dialect:       "postgres",
		allowRiskyDML: true,
		targetStyle:   target,
		astCacheSize:  32,
		compCacheSize: 32,
		astCache:      cache.NewASTCache(32),
		compiledCache: cache.NewCompiledCache(32),
	}
}

func (c *testConfig) Dialect() string                 { return c.dialect }
func (c *testConfig) EnableParsing() bool              { return true }
func (c *testConfig) EnableValidation() bool           { return true }
func (c *testConfig) EnableTransformations() bool      { return true }
func (c *testConfig) EnableAnalysis() bool             { return true }
func (c *testConfig) StrictMode() bool                 { return c.strict }
func (c *testConfig) ParameterizeLiterals() bool       { return false }
func (c *testConfig) TargetParameterStyle() param.Style { return c.targetStyle }
func (c *testConfig) AllowedParameterStyles() map[param.Style]bool {
	return map[param.Style]bool{
		param.Qmark: true, param.NumericDollar: true, param.NumericColon: true,
		param.NamedColon: true, param.NamedAt: true, param.NamedDollar: true,
		param.PyformatPositional: true, param.PyformatNamed: true, param.Static: true,
	}
}
func (c *testConfig) AllowMixedParameterStyles() bool   { return false }
func (c *testConfig) AllowDDL() bool                    { return true }
func (c *testConfig) AllowRiskyDML() bool               { return c.allowRiskyDML }
func (c *testConfig) RequireWhereForUpdate() bool       { return false }
func (c *testConfig) RequireWhereForDelete() bool       { return false }
func (c *testConfig) ProtectedTables() map[string]bool  { return map[string]bool{} }
func (c *testConfig) MaxJoins() int                     { return 8 }
func (c *testConfig) MaxSubqueryDepth() int             { return 6 }
func (c *testConfig) ForbiddenKeywords() []string       { return nil }
func (c *testConfig) PreservePatterns() []string        { return nil }
func (c *testConfig) JSONStrategy() adapter.JSONStrategy { return adapter.JSONHelper }
func (c *testConfig) ParsedASTCacheSize() int           { return c.astCacheSize }
func (c *testConfig) CompiledCacheSize() int            { return c.compCacheSize }
func (c *testConfig) ASTCache() *cache.ASTCache         { return c.astCache }
func (c *testConfig) CompiledCache() *cache.CompiledCache { return c.compiledCache }

func TestStatementCompileIsIdempotent(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	stmt := New("SELECT * FROM users WHERE id = ?", cfg).WithParameters(param.Positional{1})

	if err := stmt.Compile(); err != nil {
		t.Fatalf("first Compile: %v", err)
	}
	first := stmt.compiled

	if err := stmt.Compile(); err != nil {
		t.Fatalf("second Compile: %v", err)
	}
	if stmt.compiled != first {
		t.Error("expected the second Compile to reuse the cached CompiledStatement")
	}
}

func TestStatementWithParametersReturnsIndependentCopy(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	base := New("SELECT * FROM users WHERE id = ?", cfg).WithParameters(param.Positional{1})
	if err := base.Compile(); err != nil {
		t.Fatalf("Compile base: %v", err)
	}

	other := base.WithParameters(param.Positional{2})
	if other == base {
		t.Fatal("WithParameters must return a distinct Statement")
	}
	if other.compiled != nil {
		t.Error("a rebound copy must not inherit the original's cached compilation")
	}
	if err := other.Compile(); err != nil {
		t.Fatalf("Compile other: %v", err)
	}

	sql, _ := base.RenderedSQL()
	if sql == "" {
		t.Error("original Statement's compiled SQL should be unaffected by the copy")
	}
}

func TestStatementAsScript(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	stmt := New("SELECT 1; SELECT 2;", cfg).AsScript()
	sql, err := stmt.RenderedSQL()
	if err != nil {
		t.Fatalf("RenderedSQL: %v", err)
	}
	if sql == "" {
		t.Error("expected non-empty rendered script SQL")
	}
}

func TestStatementASTCacheHit(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	raw := "SELECT * FROM users WHERE id = ?"

	a := New(raw, cfg).WithParameters(param.Positional{1})
	if err := a.Compile(); err != nil {
		t.Fatalf("Compile a: %v", err)
	}

	key := cache.ASTKey{SQL: raw, Dialect: cfg.Dialect(), IsScript: false}
	if _, ok := cfg.ASTCache().Get(key); !ok {
		t.Fatal("expected the AST cache to hold an entry after a successful compile")
	}

	// b shares cfg with a, so it shares cfg's AST cache too, without any
	// explicit wiring between the two Statements.
	b := New(raw, cfg).WithParameters(param.Positional{2})
	if err := b.Compile(); err != nil {
		t.Fatalf("Compile b: %v", err)
	}
}

// Two Statements sharing a Config, built over identical SQL with
// differing bound values, hit the same compiled-statement cache entry
// (spec §8 property 6: "for any pair of inputs that differ only in
// parameter values, the compiled cache hits and the output SQL is
// identical") rather than each independently re-running parse through
// render.
func TestStatementCompiledCacheHitAcrossStatements(t *testing.T) {
	cfg := newTestConfig(param.NumericDollar)
	raw := "SELECT * FROM users WHERE id = ?"

	a := New(raw, cfg).WithParameters(param.Positional{1})
	aCompiled, err := a.Compiled()
	if err != nil {
		t.Fatalf("Compiled a: %v", err)
	}

	b := New(raw, cfg).WithParameters(param.Positional{2})
	bCompiled, err := b.Compiled()
	if err != nil {
		t.Fatalf("Compiled b: %v", err)
	}

	if aCompiled.RenderedSQL != bCompiled.RenderedSQL {
		t.Errorf("expected identical rendered SQL from a cache hit, got %q vs %q", aCompiled.RenderedSQL, bCompiled.RenderedSQL)
	}
	if aCompiled.CacheFingerprint != bCompiled.CacheFingerprint {
		t.Errorf("expected identical cache fingerprints, got %v vs %v", aCompiled.CacheFingerprint, bCompiled.CacheFingerprint)
	}
	if aCompiled.Parameters.Positional[0] != 1 || bCompiled.Parameters.Positional[0] != 2 {
		t.Errorf("expected each Statement to keep its own bound values despite sharing the compiled cache, got %+v and %+v",
			aCompiled.Parameters, bCompiled.Parameters)
	}
}
