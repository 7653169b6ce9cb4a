package processor

import (
	"strings"

	"github.com/ha1tch/tsqlparser/ast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// Analyzer is the single analysis stage (spec §4.3.3): it extracts
// non-fatal descriptive metadata about the statement into ctx.Analysis
// for callers that want to introspect a CompiledStatement without
// re-parsing. It never adds findings and never fails; analysis is purely
// informational.
type Analyzer struct{}

func (a *Analyzer) Name() string { return "analyzer" }

func (a *Analyzer) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableAnalysis() && ctx.AST != nil
}

func (a *Analyzer) Process(ctx *sqlctx.Context) error {
	stmt := rootAST(ctx.AST)
	if stmt == nil {
		ctx.Analysis = sqlctx.AnalysisSummary{OperationKind: ctx.AST.Kind()}
		return nil
	}

	info := analyzeStatement(stmt)
	rendered := ctx.AST.Render(ctx.Config.Dialect())

	ctx.Analysis = sqlctx.AnalysisSummary{
		OperationKind:  ctx.AST.Kind(),
		Tables:         info.tables,
		Columns:        selectColumns(stmt),
		JoinCount:      info.joinCount,
		CartesianJoins: info.cartesianJoins,
		SubqueryDepth:  info.subqueryDepth,
		HasWhere:       whereOf(stmt) != nil,
		HasLimit:       hasLimitKeyword(rendered),
	}
	return nil
}

func selectColumns(stmt ast.Statement) []string {
	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		if w, ok := stmt.(*ast.WithStatement); ok && w.Statement != nil {
			return selectColumns(w.Statement)
		}
		return nil
	}
	var out []string
	for _, col := range sel.Columns {
		if col.AllColumns {
			out = append(out, "*")
			continue
		}
		if col.Alias != nil {
			out = append(out, col.Alias.Value)
			continue
		}
		if col.Expression != nil {
			out = append(out, columnExpressionName(col.Expression))
		}
	}
	return out
}

// columnExpressionName extracts a best-effort display name from a SELECT
// column's expression, mirroring SQLDetector.extractColumnFromExpression
// (storage/detector.go) without needing the generator-facing GoName
// side of that helper.
func columnExpressionName(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Value
	case *ast.QualifiedIdentifier:
		parts := strings.Split(e.String(), ".")
		return parts[len(parts)-1]
	case *ast.Variable:
		return e.Name
	case *ast.FunctionCall:
		if len(e.Arguments) > 0 {
			return columnExpressionName(e.Arguments[0])
		}
		return e.String()
	default:
		return e.String()
	}
}
