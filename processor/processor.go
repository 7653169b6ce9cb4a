// Package processor implements the ordered pipeline stages that operate
// on a sqlctx.Context: transformers, validators, and the analyzer (spec
// §4.3). Each Processor is pure with respect to the context it is given:
// no I/O, deterministic given the same inputs, and invoked at most once
// per compile (the single-pass guarantee, spec §8 property 2).
package processor

import "github.com/sqlspec-go/sqlspec/sqlctx"

// Processor is one pipeline stage.
type Processor interface {
	Name() string
	ShouldRun(ctx *sqlctx.Context) bool
	Process(ctx *sqlctx.Context) error
}

// Transformers returns the transformer stages in the fixed declared
// order required by spec §4.3.1: identifier sanitizer, literal
// parameterizer, comment stripper.
func Transformers() []Processor {
	return []Processor{
		&IdentifierSanitizer{},
		&LiteralParameterizer{},
		&CommentStripper{},
	}
}

// Validators returns the validator stages in decreasing-severity order
// (spec §4.3.2): security, DML-safety, performance, parameter-style.
func Validators() []Processor {
	return []Processor{
		&SecurityValidator{},
		&DMLSafetyValidator{},
		&PerformanceValidator{},
		&ParameterStyleValidator{},
	}
}

// TheAnalyzer is the single analyzer stage (spec §4.3.3).
func TheAnalyzer() Processor { return &Analyzer{} }

// Run executes stages in order, recording each in ctx.Trace, stopping and
// returning the first error a stage reports. A stage whose ShouldRun
// returns false is skipped entirely (not even recorded in Trace) since it
// did not run at all, preserving the single-pass/short-circuit contract
// literally.
func Run(ctx *sqlctx.Context, stages []Processor) error {
	for _, stage := range stages {
		if !stage.ShouldRun(ctx) {
			continue
		}
		if err := stage.Process(ctx); err != nil {
			return err
		}
		ctx.RecordTrace(stage.Name())
	}
	return nil
}
