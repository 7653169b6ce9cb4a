// Package sqlspec is a type-safe SQL statement compiler and
// parameter-style normalizer. It accepts SQL from literal strings, the
// fluent builder (package builder), or a prior Statement, and produces a
// CompiledStatement adapters can execute without re-parsing or
// re-writing the SQL (see README-equivalent spec.md / SPEC_FULL.md).
package sqlspec

import (
	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/cache"
	"github.com/sqlspec-go/sqlspec/param"
)

// Config is the immutable, shared-by-reference configuration value bound
// to a Statement (spec §3.5). Build one with NewConfig; there is no
// exported way to mutate a Config after construction — statement.Statement
// and sqlctx.Context both rely on that to treat it as safe to share
// across goroutines without copying.
type Config struct {
	dialect string

	enableParsing         bool
	enableValidation      bool
	enableTransformations bool
	enableAnalysis        bool
	strictMode            bool

	parameterizeLiterals bool
	targetParameterStyle param.Style
	allowedStyles        map[param.Style]bool
	allowMixedStyles      bool

	allowDDL              bool
	allowRiskyDML         bool
	requireWhereForUpdate bool
	requireWhereForDelete bool
	protectedTables       map[string]bool
	maxJoins              int
	maxSubqueryDepth      int
	forbiddenKeywords     []string
	preservePatterns      []string

	parsedASTCacheSize int
	compiledCacheSize  int

	jsonStrategy adapter.JSONStrategy

	// astCache/compiledCache are built once, here, rather than one pair
	// per Statement: every Statement bound to this Config shares them
	// (package statement's New/FromNode/WithConfig pull them from the
	// Config rather than allocating their own), so the compiled-statement
	// cache can actually do cross-statement dedup instead of only ever
	// serving the single *Statement that populated it (spec §4.6 "hit
	// rate in steady state must approach 1").
	astCache      *cache.ASTCache
	compiledCache *cache.CompiledCache
}

// Option mutates a Config under construction. Functional options mirror
// the teacher's own DMLConfig/DefaultDMLConfig pattern
// (transpiler/dml.go), generalized from DML-conversion knobs to the
// pipeline's configuration surface.
type Option func(*Config)

// NewConfig builds a Config with sensible defaults (permissive, no
// validation gating beyond what's explicitly enabled) plus the given
// options applied in order.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		dialect:               "postgres",
		enableParsing:         true,
		enableValidation:      true,
		enableTransformations: true,
		enableAnalysis:        true,
		strictMode:            false,
		parameterizeLiterals:  false,
		targetParameterStyle:  param.NumericDollar,
		allowedStyles:         allStyles(),
		allowMixedStyles:      false,
		allowDDL:              true,
		allowRiskyDML:         true,
		requireWhereForUpdate: false,
		requireWhereForDelete: false,
		protectedTables:       map[string]bool{},
		maxJoins:              8,
		maxSubqueryDepth:      6,
		parsedASTCacheSize:    512,
		compiledCacheSize:     1024,
		jsonStrategy:          adapter.JSONHelper,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.astCache = cache.NewASTCache(c.parsedASTCacheSize)
	c.compiledCache = cache.NewCompiledCache(c.compiledCacheSize)
	return c
}

func allStyles() map[param.Style]bool {
	return map[param.Style]bool{
		param.Qmark: true, param.NumericDollar: true, param.NumericColon: true,
		param.NamedColon: true, param.NamedAt: true, param.NamedDollar: true,
		param.PyformatPositional: true, param.PyformatNamed: true, param.Static: true,
	}
}

// Clone returns a shallow-but-independent copy, so a caller can derive a
// changed Config without mutating the original (which may be shared with
// other statements).
func (c *Config) Clone() *Config {
	cp := *c
	cp.allowedStyles = copyStyleSet(c.allowedStyles)
	cp.protectedTables = copyStringSet(c.protectedTables)
	cp.forbiddenKeywords = append([]string(nil), c.forbiddenKeywords...)
	cp.preservePatterns = append([]string(nil), c.preservePatterns...)
	// A clone is a distinct Config identity, so it gets its own cache
	// pair rather than sharing the original's — otherwise statements
	// bound to the clone would silently pollute/read the original's
	// compiled cache despite being a logically separate configuration.
	cp.astCache = cache.NewASTCache(cp.parsedASTCacheSize)
	cp.compiledCache = cache.NewCompiledCache(cp.compiledCacheSize)
	return &cp
}

func copyStyleSet(m map[param.Style]bool) map[param.Style]bool {
	out := make(map[param.Style]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Option constructors, one per spec §3.5 row.

func WithDialect(d string) Option { return func(c *Config) { c.dialect = d } }
func WithEnableParsing(b bool) Option { return func(c *Config) { c.enableParsing = b } }
func WithEnableValidation(b bool) Option { return func(c *Config) { c.enableValidation = b } }
func WithEnableTransformations(b bool) Option {
	return func(c *Config) { c.enableTransformations = b }
}
func WithEnableAnalysis(b bool) Option { return func(c *Config) { c.enableAnalysis = b } }
func WithStrictMode(b bool) Option     { return func(c *Config) { c.strictMode = b } }
func WithParameterizeLiterals(b bool) Option {
	return func(c *Config) { c.parameterizeLiterals = b }
}
func WithTargetParameterStyle(s param.Style) Option {
	return func(c *Config) { c.targetParameterStyle = s }
}
func WithAllowedParameterStyles(styles ...param.Style) Option {
	return func(c *Config) {
		m := make(map[param.Style]bool, len(styles))
		for _, s := range styles {
			m[s] = true
		}
		c.allowedStyles = m
	}
}
func WithAllowMixedParameterStyles(b bool) Option {
	return func(c *Config) { c.allowMixedStyles = b }
}
func WithAllowDDL(b bool) Option      { return func(c *Config) { c.allowDDL = b } }
func WithAllowRiskyDML(b bool) Option { return func(c *Config) { c.allowRiskyDML = b } }
func WithRequireWhereForUpdate(b bool) Option {
	return func(c *Config) { c.requireWhereForUpdate = b }
}
func WithRequireWhereForDelete(b bool) Option {
	return func(c *Config) { c.requireWhereForDelete = b }
}
func WithProtectedTables(tables ...string) Option {
	return func(c *Config) {
		m := make(map[string]bool, len(tables))
		for _, t := range tables {
			m[t] = true
		}
		c.protectedTables = m
	}
}
func WithMaxJoins(n int) Option         { return func(c *Config) { c.maxJoins = n } }
func WithMaxSubqueryDepth(n int) Option { return func(c *Config) { c.maxSubqueryDepth = n } }
func WithForbiddenKeywords(kw ...string) Option {
	return func(c *Config) { c.forbiddenKeywords = kw }
}
func WithPreservePatterns(p ...string) Option {
	return func(c *Config) { c.preservePatterns = p }
}
func WithParsedASTCacheSize(n int) Option { return func(c *Config) { c.parsedASTCacheSize = n } }
func WithCompiledCacheSize(n int) Option  { return func(c *Config) { c.compiledCacheSize = n } }
func WithJSONStrategy(s adapter.JSONStrategy) Option {
	return func(c *Config) { c.jsonStrategy = s }
}

// ConfigView accessors (satisfies sqlctx.ConfigView).

func (c *Config) Dialect() string                          { return c.dialect }
func (c *Config) EnableParsing() bool                       { return c.enableParsing }
func (c *Config) EnableValidation() bool                    { return c.enableValidation }
func (c *Config) EnableTransformations() bool                { return c.enableTransformations }
func (c *Config) EnableAnalysis() bool                       { return c.enableAnalysis }
func (c *Config) StrictMode() bool                           { return c.strictMode }
func (c *Config) ParameterizeLiterals() bool                 { return c.parameterizeLiterals }
func (c *Config) TargetParameterStyle() param.Style          { return c.targetParameterStyle }
func (c *Config) AllowedParameterStyles() map[param.Style]bool { return c.allowedStyles }
func (c *Config) AllowMixedParameterStyles() bool             { return c.allowMixedStyles }
func (c *Config) AllowDDL() bool                              { return c.allowDDL }
func (c *Config) AllowRiskyDML() bool                         { return c.allowRiskyDML }
func (c *Config) RequireWhereForUpdate() bool                 { return c.requireWhereForUpdate }
func (c *Config) RequireWhereForDelete() bool                 { return c.requireWhereForDelete }
func (c *Config) ProtectedTables() map[string]bool            { return c.protectedTables }
func (c *Config) MaxJoins() int                               { return c.maxJoins }
func (c *Config) MaxSubqueryDepth() int                        { return c.maxSubqueryDepth }
func (c *Config) ForbiddenKeywords() []string                  { return c.forbiddenKeywords }
func (c *Config) PreservePatterns() []string                   { return c.preservePatterns }
func (c *Config) ParsedASTCacheSize() int                      { return c.parsedASTCacheSize }
func (c *Config) CompiledCacheSize() int                       { return c.compiledCacheSize }
func (c *Config) JSONStrategy() adapter.JSONStrategy            { return c.jsonStrategy }

// ASTCache and CompiledCache satisfy statement.Config's cache-tier
// accessors (spec §4.6): every Statement bound to this Config shares the
// same pair of cache instances rather than each Statement instantiating
// its own, one level above "a single Statement owns its cache" the way a
// dedup cache needs to be to ever see a second, structurally-identical
// compile.
func (c *Config) ASTCache() *cache.ASTCache           { return c.astCache }
func (c *Config) CompiledCache() *cache.CompiledCache { return c.compiledCache }
