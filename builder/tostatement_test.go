package builder

import (
	"testing"

	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/cache"
	"github.com/sqlspec-go/sqlspec/param"
)

var (
	sharedTestASTCache      = cache.NewASTCache(16)
	sharedTestCompiledCache = cache.NewCompiledCache(16)
)

type testConfig struct{}

func (testConfig) Dialect() string                          { return "postgres" }
func (testConfig) EnableParsing() bool                       { return true }
func (testConfig) EnableValidation() bool                    { return true }
func (testConfig) EnableTransformations() bool               { return true }
func (testConfig) EnableAnalysis() bool                      { return true }
func (testConfig) StrictMode() bool                          { return false }
func (testConfig) ParameterizeLiterals() bool                { return false }
func (testConfig) TargetParameterStyle() param.Style         { return param.NumericDollar }
func (testConfig) AllowedParameterStyles() map[param.Style]bool {
	return map[param.Style]bool{param.NumericDollar: true, param.Static: true}
}
func (testConfig) AllowMixedParameterStyles() bool  { return false }
func (testConfig) AllowDDL() bool                   { return true }
func (testConfig) AllowRiskyDML() bool              { return true }
func (testConfig) RequireWhereForUpdate() bool      { return false }
func (testConfig) RequireWhereForDelete() bool      { return false }
func (testConfig) ProtectedTables() map[string]bool { return map[string]bool{} }
func (testConfig) MaxJoins() int                    { return 8 }
func (testConfig) MaxSubqueryDepth() int            { return 6 }
func (testConfig) ForbiddenKeywords() []string      { return nil }
func (testConfig) PreservePatterns() []string       { return nil }
func (testConfig) JSONStrategy() adapter.JSONStrategy { return adapter.JSONHelper }
func (testConfig) ParsedASTCacheSize() int          { return 16 }
func (testConfig) CompiledCacheSize() int           { return 16 }
func (testConfig) ASTCache() *cache.ASTCache             { return sharedTestASTCache }
func (testConfig) CompiledCache() *cache.CompiledCache   { return sharedTestCompiledCache }

func TestSelectToStatementCompiles(t *testing.T) {
	stmt := NewSelect("users").
		Where(Eq(Col("id"), Val(1))).
		ToStatement(testConfig{})

	sql, err := stmt.RenderedSQL()
	if err != nil {
		t.Fatalf("RenderedSQL: %v", err)
	}
	if sql == "" {
		t.Error("expected non-empty rendered SQL")
	}

	params, err := stmt.Parameters()
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	if len(params.Positional) != 1 {
		t.Errorf("expected 1 positional parameter after reshape, got %+v", params)
	}
}

func TestInsertToStatementCompiles(t *testing.T) {
	stmt := NewInsert("users").
		Values(map[string]interface{}{"id": 1, "email": "a@example.com"}).
		ToStatement(testConfig{})

	sql, err := stmt.RenderedSQL()
	if err != nil {
		t.Fatalf("RenderedSQL: %v", err)
	}
	if sql == "" {
		t.Error("expected non-empty rendered SQL")
	}
}
