// Package sqlctx defines the processing context: the single mutable
// value threaded through one compile() run (spec §4.3). It is built once
// per compile, mutated in place by each processor in declared order, and
// never reused across compiles or re-entered with a prior run's state —
// mirroring the teacher's ExecutionContext (tsqlruntime/context.go),
// generalized from a T-SQL execution session to one pipeline pass.
package sqlctx

import (
	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/sqlast"
)

// Finding is a single validator/transformer observation, non-fatal unless
// Severity reaches High (or Critical) under strict_mode.
type Finding struct {
	Kind     string
	Severity Severity
	Message  string
	Location string
}

// Severity is a closed, ordered scale; validators compare against it to
// decide whether strict_mode should block compilation.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AnalysisSummary is the analyzer's (§4.3.3) non-fatal output.
type AnalysisSummary struct {
	OperationKind  sqlast.Kind
	Tables         []string
	Columns        []string
	JoinCount      int
	CartesianJoins int
	SubqueryDepth  int
	HasWhere       bool
	HasLimit       bool
}

// Context is the value every processor reads and appends to. Config is
// shared by reference and never mutated; RawSQL/RawParams are the
// untouched inputs; everything else accumulates as processors run.
type Context struct {
	Config ConfigView

	RawSQL    string
	RawParams param.Payload

	AST          sqlast.Node // nil when parsing is disabled
	ParsedOK     bool
	ParameterInfo param.Infos

	// HoistedValues accumulates literal-parameterizer output in ordinal
	// order; at reshape time the compiler binds it as named lit_<n> values
	// in place of the payload (see compiler's mergeHoisted).
	HoistedValues []interface{}

	// Values is a scratch map for parameter bookkeeping that leaves
	// RawParams untouched. Compile initializes it empty; no processor in
	// this module reads or writes it.
	Values map[string]interface{}

	IsScript bool
	IsMany   bool

	InputHadPlaceholders bool // true if Detect found any ParameterInfo pre-transform

	Findings []Finding
	Analysis AnalysisSummary

	// ProcessingErrors accumulates non-fatal processor-reported problems;
	// a fatal error is returned directly by Process and short-circuits the
	// pipeline instead of landing here.
	ProcessingErrors []string

	// Trace records which processor ran, in order, for the single-pass
	// guarantee test instrumentation hook (spec §8 property 2). Not part
	// of the contract surface; only processor tests read it.
	Trace []string
}

// ConfigView is the subset of sqlspec.Config a processor needs, expressed
// as an interface here to avoid an import cycle between sqlctx and the
// root sqlspec package (which depends on sqlctx transitively through
// compiler). The concrete *sqlspec.Config satisfies it.
type ConfigView interface {
	Dialect() string
	EnableParsing() bool
	EnableValidation() bool
	EnableTransformations() bool
	EnableAnalysis() bool
	StrictMode() bool
	ParameterizeLiterals() bool
	TargetParameterStyle() param.Style
	AllowedParameterStyles() map[param.Style]bool
	AllowMixedParameterStyles() bool
	AllowDDL() bool
	AllowRiskyDML() bool
	RequireWhereForUpdate() bool
	RequireWhereForDelete() bool
	ProtectedTables() map[string]bool
	MaxJoins() int
	MaxSubqueryDepth() int
	ForbiddenKeywords() []string
	PreservePatterns() []string
	JSONStrategy() adapter.JSONStrategy
}

// RecordTrace appends name to the processor trace.
func (c *Context) RecordTrace(name string) {
	c.Trace = append(c.Trace, name)
}

// AddFinding appends a non-fatal finding.
func (c *Context) AddFinding(f Finding) {
	c.Findings = append(c.Findings, f)
}

// HasBlockingFinding reports whether any finding is at or above High
// severity, the strict_mode abort condition (spec §4.3.2).
func (c *Context) HasBlockingFinding() bool {
	for _, f := range c.Findings {
		if f.Severity >= SeverityHigh {
			return true
		}
	}
	return false
}
