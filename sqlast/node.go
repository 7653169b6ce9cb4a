// Package sqlast is the thin capability-interface layer over the
// reference SQL parser (github.com/ha1tch/tsqlparser and its ast
// subpackage). It never reimplements parsing or dialect-specific
// rewriting; it exposes exactly the operations spec.md §4.2 requires:
// parse, render, walk, a capability predicate, and a non-mutating
// structural replace. Dynamic attribute probing on the underlying AST
// (checking field presence by reflection) is deliberately avoided —
// Supports is implemented once per concrete wrapper type instead.
package sqlast

import (
	"github.com/ha1tch/tsqlparser/ast"
)

// Kind is the closed set of statement kinds the core distinguishes.
type Kind string

const (
	KindSelect  Kind = "select"
	KindInsert  Kind = "insert"
	KindUpdate  Kind = "update"
	KindDelete  Kind = "delete"
	KindMerge   Kind = "merge"
	KindScript  Kind = "script"
	KindCommand Kind = "command"
	KindOther   Kind = "other"
)

// Op is a builder/processor capability query, per spec §3.4.
type Op string

const (
	OpWhere   Op = "where"
	OpLimit   Op = "limit"
	OpOffset  Op = "offset"
	OpOrderBy Op = "order_by"
	OpGroupBy Op = "group_by"
	OpHaving  Op = "having"
)

// Node is the opaque tagged variant the rest of the pipeline operates on.
type Node interface {
	// Kind reports the statement's closed category.
	Kind() Kind
	// Render serializes the node back to SQL text. dialect is accepted for
	// interface symmetry with the parser library but does not change the
	// token stream: dialect-specific AST rewriting is explicitly out of
	// scope (spec.md §1 non-goals); only placeholder-style conversion
	// (package param) and adapter profile selection vary by dialect.
	Render(dialect string) string
	// Walk visits n and every nested sub-statement node, depth-first.
	// fn returns false to stop descending into a subtree.
	Walk(fn func(Node) bool)
	// Supports reports whether op is a structurally valid modification
	// point for this node.
	Supports(op Op) bool
	// Underlying returns the wrapped parser AST value for processors that
	// need the concrete shape (the analyzer's helpers). It is not
	// part of the portable contract surface; callers outside this module
	// should prefer Kind/Render/Walk/Supports.
	Underlying() interface{}
}

// stmtNode wraps a single concrete ast.Statement from the reference
// parser. One instance is created per parsed top-level statement.
type stmtNode struct {
	stmt ast.Statement
	kind Kind
}

// Wrap adapts a concrete reference-parser statement into a Node. Parse
// calls it for each top-level statement it decodes; package builder does
// not, since it never constructs reference-parser AST literals itself —
// see builder.stmtNode.
func Wrap(stmt ast.Statement) Node {
	return &stmtNode{stmt: stmt, kind: kindOf(stmt)}
}

func kindOf(stmt ast.Statement) Kind {
	switch stmt.(type) {
	case *ast.SelectStatement:
		return KindSelect
	case *ast.InsertStatement:
		return KindInsert
	case *ast.UpdateStatement:
		return KindUpdate
	case *ast.DeleteStatement:
		return KindDelete
	case *ast.MergeStatement:
		return KindMerge
	case *ast.WithStatement:
		return kindOfWith(stmt.(*ast.WithStatement))
	case *ast.CreateTableStatement, *ast.DropTableStatement, *ast.TruncateTableStatement,
		*ast.CreateProcedureStatement:
		return KindCommand
	default:
		return KindOther
	}
}

// kindOfWith classifies a CTE-bearing statement (WITH ... SELECT/INSERT/
// UPDATE/DELETE) by its terminal statement, since the logical operation
// kind callers care about (spec §3.7 operation_kind) is the DML kind, not
// "it has a CTE".
func kindOfWith(w *ast.WithStatement) Kind {
	if w == nil || w.Statement == nil {
		return KindOther
	}
	return kindOf(w.Statement)
}

func (n *stmtNode) Kind() Kind { return n.kind }

func (n *stmtNode) Render(dialect string) string {
	if n.stmt == nil {
		return ""
	}
	return n.stmt.String()
}

func (n *stmtNode) Underlying() interface{} { return n.stmt }

func (n *stmtNode) Supports(op Op) bool {
	switch n.kind {
	case KindSelect:
		switch op {
		case OpWhere, OpLimit, OpOffset, OpOrderBy, OpGroupBy, OpHaving:
			return true
		}
	case KindUpdate, KindDelete:
		return op == OpWhere
	case KindInsert, KindMerge:
		return false
	}
	return false
}
