package processor

import (
	"strings"

	"github.com/ha1tch/tsqlparser/ast"
	"github.com/sqlspec-go/sqlspec/sqlast"
)

// tableJoinInfo is the shared structural summary both PerformanceValidator
// and Analyzer need from a statement's FROM clause. Computing it once in
// one place (rather than duplicating the ast.TableReference walk in two
// processors) mirrors how the teacher's storage.SQLDetector centralizes
// FROM-clause extraction in extractFromClause/extractTableReference
// (storage/detector.go) instead of re-walking per caller.
type tableJoinInfo struct {
	tables         []string
	joinCount      int
	cartesianJoins int
	subqueryDepth  int
}

// fromClauseOf returns the FromClause for the statements that have one, or
// nil otherwise, unwrapping a WITH-wrapped statement to its terminal
// statement first.
func fromClauseOf(stmt ast.Statement) *ast.FromClause {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		return s.From
	case *ast.UpdateStatement:
		return s.From
	case *ast.WithStatement:
		if s.Statement != nil {
			return fromClauseOf(s.Statement)
		}
	}
	return nil
}

func whereOf(stmt ast.Statement) ast.Expression {
	switch s := stmt.(type) {
	case *ast.SelectStatement:
		return s.Where
	case *ast.UpdateStatement:
		return s.Where
	case *ast.DeleteStatement:
		return s.Where
	case *ast.WithStatement:
		if s.Statement != nil {
			return whereOf(s.Statement)
		}
	}
	return nil
}

func targetTableOf(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.InsertStatement:
		if s.Table != nil {
			return s.Table.String()
		}
	case *ast.UpdateStatement:
		if s.Table != nil {
			return s.Table.String()
		}
	case *ast.DeleteStatement:
		if s.Table != nil {
			return s.Table.String()
		}
	case *ast.WithStatement:
		if s.Statement != nil {
			return targetTableOf(s.Statement)
		}
	}
	return ""
}

// analyzeFrom walks a FROM clause (if any) collecting table names and join
// counts, classifying a join as cartesian when it carries no ON condition
// (spec §4.3.3 "cartesian_joins"), and recurses into derived-table
// subqueries for subquery depth, in the manner of SQLDetector's
// extractFromClause/extractTableReference.
func analyzeFrom(from *ast.FromClause, info *tableJoinInfo, depth int) {
	if from == nil {
		return
	}
	if depth > info.subqueryDepth {
		info.subqueryDepth = depth
	}
	for _, ref := range from.Tables {
		analyzeTableRef(ref, info, depth)
	}
}

func analyzeTableRef(ref ast.TableReference, info *tableJoinInfo, depth int) {
	switch t := ref.(type) {
	case *ast.TableName:
		info.tables = append(info.tables, t.Name.String())
	case *ast.JoinClause:
		info.joinCount++
		if t.Condition == nil {
			info.cartesianJoins++
		}
		analyzeTableRef(t.Left, info, depth)
		analyzeTableRef(t.Right, info, depth)
	case *ast.DerivedTable:
		if t.Subquery != nil {
			if t.Subquery.From != nil {
				analyzeFrom(t.Subquery.From, info, depth+1)
			}
			if depth+1 > info.subqueryDepth {
				info.subqueryDepth = depth + 1
			}
		}
	}
}

// analyzeStatement builds a tableJoinInfo for any ast.Statement carrying a
// FROM clause, unwrapping WITH-wrapped statements first.
func analyzeStatement(stmt ast.Statement) tableJoinInfo {
	var info tableJoinInfo
	analyzeFrom(fromClauseOf(stmt), &info, 0)
	return info
}

// hasLimitKeyword is a textual fallback for LIMIT/TOP/OFFSET detection:
// the reference parser's concrete SELECT-statement shape for paging
// clauses is not exercised anywhere in the teacher's own code (it reads
// FROM/WHERE/columns but never a paging field), so rather than guess an
// unconfirmed AST field name, paging presence is read off the rendered
// SQL text, the same way the teacher's own transpiler falls back to
// textual heuristics for T-SQL constructs it does not model structurally.
func hasLimitKeyword(rendered string) bool {
	upper := strings.ToUpper(rendered)
	return strings.Contains(upper, " LIMIT ") || strings.Contains(upper, " TOP ") ||
		strings.Contains(upper, " OFFSET ")
}

func rootAST(node sqlast.Node) ast.Statement {
	stmt, _ := node.Underlying().(ast.Statement)
	return stmt
}
