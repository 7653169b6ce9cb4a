package sqlast

import (
	"strings"

	"github.com/ha1tch/tsqlparser"
	"github.com/ha1tch/tsqlparser/ast"

	"github.com/sqlspec-go/sqlspec/sqlspecerr"
)

// ParseOptions controls Parse's behavior.
type ParseOptions struct {
	// AsScript forces script mode: the input is parsed as an ordered list
	// of statements even if it contains only one.
	AsScript bool
}

// Parse decodes sql using the reference parser and returns either a
// single Node (one top-level statement, AsScript false) or a *Script
// (AsScript true, or more than one top-level statement was found — see
// spec §4.2 "Auto-detection").
func Parse(sql string, dialect string, opts ParseOptions) (Node, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, sqlspecerr.New(sqlspecerr.EmptyStatement, "input SQL is blank")
	}

	program, errs := tsqlparser.Parse(sql)
	if len(errs) > 0 {
		return nil, sqlspecerr.New(sqlspecerr.ParseError, "%s", strings.Join(errs, "; ")).WithSQL(sql)
	}
	if program == nil || len(program.Statements) == 0 {
		return nil, sqlspecerr.New(sqlspecerr.EmptyStatement, "parser produced no statements")
	}

	if opts.AsScript || len(program.Statements) > 1 {
		nodes := make([]Node, len(program.Statements))
		for i, stmt := range program.Statements {
			nodes[i] = Wrap(stmt)
		}
		return NewScript(nodes), nil
	}

	return Wrap(program.Statements[0]), nil
}

// IsScript reports whether node is a script (as opposed to a single
// statement). Callers use this instead of a type assertion so that the
// concrete *Script type can stay unexported from the contract surface if
// the wrapping strategy changes later.
func IsScript(node Node) bool {
	_, ok := node.(*Script)
	return ok
}

// AsScript type-asserts node to *Script, for callers that already know
// (via IsScript or Kind() == KindScript) that it is one.
func AsScript(node Node) (*Script, bool) {
	s, ok := node.(*Script)
	return s, ok
}

// rootStatement returns the underlying ast.Statement for a single
// (non-script) Node, for processors that need the concrete parser shape.
func rootStatement(n Node) (ast.Statement, bool) {
	sn, ok := n.(*stmtNode)
	if !ok {
		return nil, false
	}
	return sn.stmt, true
}

// Underlying exposes rootStatement to other packages in this module that
// need the concrete reference-parser statement (processor, builder).
func Underlying(n Node) (ast.Statement, bool) {
	return rootStatement(n)
}
