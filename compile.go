package sqlspec

import (
	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/compiler"
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/statement"
)

// CompileOption configures a single Compile call (spec §6.1), distinct
// from Config/Option which configure the statement-wide pipeline
// settings a Statement carries across many compiles.
type CompileOption func(*compileSettings)

type compileSettings struct {
	script  bool
	many    bool
	profile *adapter.Profile
}

func AsScript() CompileOption { return func(s *compileSettings) { s.script = true } }
func AsMany() CompileOption   { return func(s *compileSettings) { s.many = true } }
func WithAdapterProfile(p *adapter.Profile) CompileOption {
	return func(s *compileSettings) { s.profile = p }
}

// Compile is the package's one-shot entry point (spec §6.1): parse,
// transform, validate, analyze, and render sql against cfg, binding
// payload as its parameters, without constructing a reusable Statement.
// Reach for package statement's Statement type instead when the same SQL
// will be compiled and executed more than once, so parsing and reshaping
// are only paid for once (spec §4.2 idempotence).
func Compile(sql string, payload param.Payload, cfg *Config, opts ...CompileOption) (*compiler.CompiledStatement, error) {
	settings := &compileSettings{}
	for _, opt := range opts {
		opt(settings)
	}
	return compiler.Compile(sql, payload, cfg, compiler.Options{
		IsScript: settings.script,
		IsMany:   settings.many,
		Profile:  settings.profile,
	})
}

// NewStatement builds a reusable Statement bound to cfg (spec §3.4),
// the entry point for the compile-once/execute-many path.
func NewStatement(sql string, cfg *Config) *statement.Statement {
	return statement.New(sql, cfg)
}
