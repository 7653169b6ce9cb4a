package sqlast

import "strings"

// Script models a sequence of statements treated as one logical unit
// (spec §3.4, §4.4 step 6 "Script path"). It satisfies Node so the
// pipeline can carry either a single statement or a script through the
// same context field.
type Script struct {
	stmts []Node
}

// NewScript wraps an ordered list of already-parsed statements as a
// single script node.
func NewScript(stmts []Node) *Script {
	return &Script{stmts: stmts}
}

// Statements returns the script's sub-statements in source order.
func (s *Script) Statements() []Node { return s.stmts }

func (s *Script) Kind() Kind { return KindScript }

// Render joins each sub-statement's own rendering with ";\n", ensuring a
// trailing semicolon. Per spec §4.4, placeholder-style conversion must be
// applied per sub-statement before this join — Render here renders each
// sub-statement with no placeholder conversion; the compiler calls
// param.Convert on each sub-statement's SQL before assembling the script,
// which is why script rendering lives partly in package compiler
// (compiler/script.go) rather than only here.
func (s *Script) Render(dialect string) string {
	parts := make([]string, len(s.stmts))
	for i, stmt := range s.stmts {
		parts[i] = strings.TrimRight(stmt.Render(dialect), "; \t\n")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ";\n") + ";"
}

func (s *Script) Walk(fn func(Node) bool) {
	if !fn(s) {
		return
	}
	for _, stmt := range s.stmts {
		stmt.Walk(fn)
	}
}

func (s *Script) Supports(op Op) bool { return false }

func (s *Script) Underlying() interface{} { return s.stmts }
