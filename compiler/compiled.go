// Package compiler implements the nine-step compile algorithm (spec
// §4.4): it takes raw SQL or a builder-produced AST plus a parameter
// payload and a configuration, and produces an immutable
// CompiledStatement an adapter can execute without re-parsing or
// re-writing the SQL (spec §6.5).
package compiler

import (
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/sqlast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// ValidationSummary is the non-fatal record of every finding accumulated
// during compilation, surfaced even on a successful compile (spec §7
// "the compiler surfaces all findings in validation_summary even on
// success").
type ValidationSummary struct {
	Findings []sqlctx.Finding
	Blocked  bool // true if strict mode would have aborted on these findings; under strict mode Compile returns a ValidationBlocked error instead
}

// HasHighSeverity reports whether any finding is at or above High.
func (v ValidationSummary) HasHighSeverity() bool {
	for _, f := range v.Findings {
		if f.Severity >= sqlctx.SeverityHigh {
			return true
		}
	}
	return false
}

// CompiledStatement is the result of the pipeline (spec §3.7). Every
// field is populated exactly once and never mutated afterward; adapters
// and the cache treat a *CompiledStatement as a read-only value safe to
// share across goroutines.
type CompiledStatement struct {
	RenderedSQL      string
	Parameters       param.ExecParams
	PlaceholderStyle param.Style
	ParameterInfo    param.Infos
	OperationKind    sqlast.Kind
	ValidationSummary ValidationSummary
	AnalysisSummary  sqlctx.AnalysisSummary
	CacheFingerprint Fingerprint
}
