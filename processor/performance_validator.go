package processor

import (
	"fmt"

	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// PerformanceValidator flags statements whose join count or subquery
// nesting depth exceeds the configured budget (spec §4.3.2), and notes
// cartesian (condition-less) joins regardless of budget since those are
// almost always a mistake. It computes its own tableJoinInfo rather than
// reading ctx.Analysis because the analyzer (spec §4.3.3) runs after
// validators in the fixed pipeline order (processor.go Transformers /
// Validators / TheAnalyzer) and has not populated it yet.
type PerformanceValidator struct{}

func (v *PerformanceValidator) Name() string { return "performance_validator" }

func (v *PerformanceValidator) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableValidation() && ctx.AST != nil
}

func (v *PerformanceValidator) Process(ctx *sqlctx.Context) error {
	stmt := rootAST(ctx.AST)
	if stmt == nil {
		return nil
	}
	info := analyzeStatement(stmt)

	if info.cartesianJoins > 0 {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "cartesian_join",
			Severity: sqlctx.SeverityHigh,
			Message:  fmt.Sprintf("statement has %d join(s) with no join condition", info.cartesianJoins),
		})
	}
	if max := ctx.Config.MaxJoins(); max > 0 && info.joinCount > max {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "too_many_joins",
			Severity: sqlctx.SeverityMedium,
			Message:  fmt.Sprintf("statement has %d joins, exceeding the configured maximum of %d", info.joinCount, max),
		})
	}
	if max := ctx.Config.MaxSubqueryDepth(); max > 0 && info.subqueryDepth > max {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "subquery_too_deep",
			Severity: sqlctx.SeverityMedium,
			Message:  fmt.Sprintf("statement nests subqueries %d levels deep, exceeding the configured maximum of %d", info.subqueryDepth, max),
		})
	}
	return nil
}
