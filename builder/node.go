package builder

import "github.com/sqlspec-go/sqlspec/sqlast"

// stmtNode is builder's own sqlast.Node implementation: a rendered SQL
// string plus the closed set of modification points this statement
// still supports after rendering (spec §3.4's Supports contract). The
// filters in this package do not consult Supports; they rewrite the
// rendered SQL text directly.
type stmtNode struct {
	kind     sqlast.Kind
	sql      string
	supports map[sqlast.Op]bool
}

func (n *stmtNode) Kind() sqlast.Kind            { return n.kind }
func (n *stmtNode) Render(dialect string) string { return n.sql }
func (n *stmtNode) Underlying() interface{}      { return n.sql }

func (n *stmtNode) Walk(fn func(sqlast.Node) bool) { fn(n) }

func (n *stmtNode) Supports(op sqlast.Op) bool { return n.supports[op] }

func selectSupports() map[sqlast.Op]bool {
	return map[sqlast.Op]bool{
		sqlast.OpWhere: true, sqlast.OpLimit: true, sqlast.OpOffset: true,
		sqlast.OpOrderBy: true, sqlast.OpGroupBy: true, sqlast.OpHaving: true,
	}
}

func whereOnlySupports() map[sqlast.Op]bool {
	return map[sqlast.Op]bool{sqlast.OpWhere: true}
}
