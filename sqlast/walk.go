package sqlast

import "github.com/ha1tch/tsqlparser/ast"

// Walk visits n, then recursively visits every subquery statement nested
// within it (each wrapped as its own Node), depth-first. Node-level walk
// granularity matches the contract surface in spec §4.2: callers that
// need expression-level traversal (column/table extraction) use the
// helpers in package processor's analysis_helpers.go, which walk the
// underlying parser AST directly rather than promoting every expression
// to a Node; literal hoisting scans the SQL text instead.
func (n *stmtNode) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, sub := range subqueriesOf(n.stmt) {
		Wrap(sub).Walk(fn)
	}
}

// subqueriesOf returns the top-level nested SELECT statements reachable
// from stmt: subquery expressions in WHERE/HAVING/column lists, and the
// source of a derived table in a FROM clause.
func subqueriesOf(stmt ast.Statement) []ast.Statement {
	var out []ast.Statement
	var walkExpr func(e ast.Expression)
	walkExpr = func(e ast.Expression) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case *ast.SubqueryExpression:
			if v.Query != nil {
				out = append(out, v.Query)
				walkStmt(v.Query, &out)
			}
		case *ast.ExistsExpression:
			if v.Query != nil {
				out = append(out, v.Query)
				walkStmt(v.Query, &out)
			}
		case *ast.InfixExpression:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *ast.PrefixExpression:
			walkExpr(v.Right)
		case *ast.BetweenExpression:
			walkExpr(v.Left)
			walkExpr(v.Lower)
			walkExpr(v.Upper)
		case *ast.InExpression:
			walkExpr(v.Left)
		case *ast.IsNullExpression:
			walkExpr(v.Left)
		case *ast.LikeExpression:
			walkExpr(v.Left)
			walkExpr(v.Pattern)
		case *ast.CaseExpression:
			for _, w := range v.WhenClauses {
				walkExpr(w.Condition)
				walkExpr(w.Result)
			}
			walkExpr(v.ElseResult)
		}
	}

	switch s := stmt.(type) {
	case *ast.SelectStatement:
		if s.Where != nil {
			walkExpr(s.Where)
		}
		if s.From != nil {
			for _, t := range s.From.Tables {
				if dt, ok := t.(*ast.DerivedTable); ok && dt.Query != nil {
					out = append(out, dt.Query)
					walkStmt(dt.Query, &out)
				}
			}
		}
	case *ast.UpdateStatement:
		if s.Where != nil {
			walkExpr(s.Where)
		}
	case *ast.DeleteStatement:
		if s.Where != nil {
			walkExpr(s.Where)
		}
	case *ast.WithStatement:
		if s.Statement != nil {
			out = append(out, s.Statement)
		}
	}
	return out
}

func walkStmt(stmt ast.Statement, out *[]ast.Statement) {
	*out = append(*out, subqueriesOf(stmt)...)
}
