// Package statement implements Statement, the compile-once, execute-many
// handle spec §3.4 describes: a bound SQL source plus parameters plus
// configuration, whose CompiledStatement is computed lazily on first
// access and cached for the Statement's lifetime (spec §4.2 "idempotence").
package statement

import (
	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/cache"
	"github.com/sqlspec-go/sqlspec/compiler"
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/sqlast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// Filter is the interface a WHERE/ORDER BY/LIMIT/CTE filter satisfies
// (spec §3.7), expressed narrowly here so this package never imports
// package builder — builder's filter types satisfy this structurally,
// the same pattern sqlctx.ConfigView uses to keep compiler independent
// of the root sqlspec package.
type Filter interface {
	Apply(sql string) (string, error)
}

// Config is the subset of *sqlspec.Config Statement needs, mirrored here
// (rather than imported) to avoid a sqlspec <-> statement import cycle:
// the root package's Compile facade constructs a Statement, so Statement
// cannot import sqlspec back. *sqlspec.Config satisfies both this and
// sqlctx.ConfigView.
//
// ASTCache/CompiledCache are owned by the Config, not by any one
// Statement: every Statement built against the same Config shares both
// cache instances, which is what lets the compiled-statement tier ever
// serve a second, structurally-identical compile rather than only ever
// being read back by the single Statement that populated it (spec §4.6).
type Config interface {
	sqlctx.ConfigView
	ParsedASTCacheSize() int
	CompiledCacheSize() int
	ASTCache() *cache.ASTCache
	CompiledCache() *cache.CompiledCache
}

// Statement is a bound, not-yet-necessarily-compiled SQL source. The
// zero value is not usable; construct with New.
type Statement struct {
	rawSQL   string
	astNode  sqlast.Node // non-nil when built from an already-parsed source (e.g. package builder)
	payload  param.Payload
	cfg      Config
	profile  *adapter.Profile
	filters  []Filter
	isScript bool
	isMany   bool

	compiled *compiler.CompiledStatement
}

// New builds a Statement over raw SQL text.
func New(sql string, cfg Config) *Statement {
	return &Statement{
		rawSQL:  sql,
		payload: param.Empty{},
		cfg:     cfg,
	}
}

// FromNode builds a Statement over an already-built AST, the path
// package builder's ToStatement uses. Compile skips its initial parse for
// such a Statement; compiler.Compile still parses the text once after its
// transformers run whenever parsing is enabled.
func FromNode(node sqlast.Node, cfg Config) *Statement {
	return &Statement{
		rawSQL:  node.Render(cfg.Dialect()),
		astNode: node,
		payload: param.Empty{},
		cfg:     cfg,
	}
}

// Copy returns an independent Statement sharing no mutable state with s,
// used by With*-style methods to preserve immutable-looking call chains
// (spec §3.4 "Statement methods that change binding return a new
// Statement rather than mutating the receiver").
func (s *Statement) Copy() *Statement {
	cp := *s
	cp.filters = append([]Filter(nil), s.filters...)
	cp.compiled = nil
	return &cp
}

// WithParameters returns a copy bound to payload instead of s's current
// parameters, invalidating any cached compilation.
func (s *Statement) WithParameters(payload param.Payload) *Statement {
	cp := s.Copy()
	cp.payload = payload
	return cp
}

// WithConfig returns a copy bound to cfg instead of s's current
// configuration, invalidating any cached compilation. The copy now reads
// and writes cfg's own cache tiers (shared with every other Statement
// bound to cfg), not a pair built just for this Statement.
func (s *Statement) WithConfig(cfg Config) *Statement {
	cp := s.Copy()
	cp.cfg = cfg
	return cp
}

// WithProfile returns a copy that will consult profile's
// NativeListExpansion at compile time (spec §4.4 step 8), e.g. as chosen
// by the adapter the Statement will ultimately be executed against. The
// profile's ExecutionStyle and JSONStrategy are not read here: the
// execution shape follows the target style and the JSON strategy comes
// from the Config.
func (s *Statement) WithProfile(profile *adapter.Profile) *Statement {
	cp := s.Copy()
	cp.profile = profile
	return cp
}

// WithFilter returns a copy with f appended to the filter chain, applied
// in order immediately before parsing at compile time (spec §3.7).
func (s *Statement) WithFilter(f Filter) *Statement {
	cp := s.Copy()
	cp.filters = append(cp.filters, f)
	return cp
}

// AsScript returns a copy that compiles rawSQL as a multi-statement
// script (spec §4.4 "script path").
func (s *Statement) AsScript() *Statement {
	cp := s.Copy()
	cp.isScript = true
	return cp
}

// AsMany returns a copy whose parameters are expected to be a Batch
// payload, one record per execution (spec §3.6 "executemany").
func (s *Statement) AsMany() *Statement {
	cp := s.Copy()
	cp.isMany = true
	return cp
}

// Compile runs the pipeline if it has not already run for this
// Statement's current binding, and caches the result: repeated calls are
// free (spec §4.2 idempotence; §8 property 1).
func (s *Statement) Compile() error {
	if s.compiled != nil {
		return nil
	}

	var input compiler.Input
	if s.astNode != nil {
		input = s.astNode
	} else {
		input = s.rawSQL
	}

	// canUseASTCache/canUseCompiledCache both require an unfiltered,
	// string-sourced Statement: a filter rewrites rawSQL per Statement
	// instance (so its result isn't safe to key purely on s.rawSQL), and
	// a builder-sourced astNode has no raw text to key on at all.
	canUseASTCache := s.cfg.EnableParsing() && s.astNode == nil && len(s.filters) == 0
	if canUseASTCache {
		key := cache.ASTKey{SQL: s.rawSQL, Dialect: s.cfg.Dialect(), IsScript: s.isScript}
		if node, ok := s.cfg.ASTCache().Get(key); ok {
			input = node
		} else if node, err := sqlast.Parse(s.rawSQL, s.cfg.Dialect(), sqlast.ParseOptions{AsScript: s.isScript}); err == nil {
			s.cfg.ASTCache().Put(key, node)
			input = node
		}
		// A parse error here is not fatal: compiler.Compile re-attempts the
		// parse itself and surfaces the error through its normal path.
	}

	opts := compiler.Options{
		IsScript: s.isScript,
		IsMany:   s.isMany,
		Profile:  s.profile,
		Filters:  filtersToFuncs(s.filters),
	}

	// The compiled-statement cache is only a safe pre-compile lookup when
	// nothing downstream of the lookup key can still change the SQL shape
	// from bound values: Static rendering inlines values into the SQL
	// text itself, parameterize_literals can change which placeholders
	// exist depending on what the SQL's own literals are (no per-call
	// variance there, but it is cheap enough to just run normally), and a
	// non-native-list-expansion profile can change placeholder count
	// based on how long a bound list is. PreCompileKey's own doc comment
	// tracks this same boundary.
	targetStyle := opts.TargetStyle
	if targetStyle == "" {
		targetStyle = s.cfg.TargetParameterStyle()
	}
	canUseCompiledCache := canUseASTCache &&
		targetStyle != param.Static &&
		!s.cfg.ParameterizeLiterals() &&
		(s.profile == nil || s.profile.NativeListExpansion)

	if canUseCompiledCache {
		preKey := compiler.PreCompileKey(s.rawSQL, s.cfg, opts)
		if tpl, ok := s.cfg.CompiledCache().Get(preKey); ok {
			compiled, err := compiler.Reshape(tpl, s.payload, s.cfg)
			if err != nil {
				return err
			}
			s.compiled = compiled
			return nil
		}
		compiled, err := compiler.Compile(input, s.payload, s.cfg, opts)
		if err != nil {
			return err
		}
		s.cfg.CompiledCache().Put(preKey, compiled)
		s.compiled = compiled
		return nil
	}

	compiled, err := compiler.Compile(input, s.payload, s.cfg, opts)
	if err != nil {
		return err
	}
	s.compiled = compiled
	return nil
}

func filtersToFuncs(filters []Filter) []compiler.Filter {
	if len(filters) == 0 {
		return nil
	}
	out := make([]compiler.Filter, len(filters))
	for i, f := range filters {
		f := f
		out[i] = func(sql string) (string, error) { return f.Apply(sql) }
	}
	return out
}

// RenderedSQL triggers a lazy Compile if needed and returns the
// compiled SQL text.
func (s *Statement) RenderedSQL() (string, error) {
	if err := s.Compile(); err != nil {
		return "", err
	}
	return s.compiled.RenderedSQL, nil
}

// Parameters triggers a lazy Compile if needed and returns the
// adapter-ready parameter set.
func (s *Statement) Parameters() (param.ExecParams, error) {
	if err := s.Compile(); err != nil {
		return param.ExecParams{}, err
	}
	return s.compiled.Parameters, nil
}

// ValidationSummary triggers a lazy Compile if needed and returns the
// accumulated validator findings.
func (s *Statement) ValidationSummary() (compiler.ValidationSummary, error) {
	if err := s.Compile(); err != nil {
		return compiler.ValidationSummary{}, err
	}
	return s.compiled.ValidationSummary, nil
}

// Compiled returns the cached CompiledStatement, triggering a lazy
// Compile if one has not run yet.
func (s *Statement) Compiled() (*compiler.CompiledStatement, error) {
	if err := s.Compile(); err != nil {
		return nil, err
	}
	return s.compiled, nil
}
