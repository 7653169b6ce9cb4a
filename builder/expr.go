// Package builder implements the fluent, immutable statement builder
// spec §3.7 describes: Select/Insert/Update/Delete/Merge plus an
// expression algebra for WHERE/ON predicates, and a small set of Filters
// that rewrite an already-bound statement's SQL text (WHERE/ORDER BY/
// LIMIT-OFFSET/CTE). Every builder method returns a new value rather than
// mutating the receiver, mirroring the rest of this module's
// copy-on-write convention (sqlspec.Config.Clone, statement.Statement.Copy).
//
// Builder output is plain SQL text with named placeholders, not a
// reference-parser AST: the reference parser's AST constructors are
// never exercised anywhere in the corpus this was built from (only its
// parse output is ever consumed), so hand-constructing literal ast.*
// values here would be guesswork. A builder statement instead renders to
// text exactly like every processor already rewrites ctx.RawSQL, and
// that text is re-parsed like any other input once handed to package
// statement.
package builder

import "fmt"

// paramSink accumulates bound values encountered while rendering an
// expression tree, assigning each one a fresh named placeholder in
// first-use order.
type paramSink struct {
	values map[string]interface{}
	order  []string
	next   int
}

func newParamSink() *paramSink {
	return &paramSink{values: map[string]interface{}{}}
}

// bind registers v under a fresh name and returns its SQL placeholder
// token. Named-colon syntax is used because param.Detect already
// recognizes it and because it reads unambiguously regardless of the
// statement's eventual target style, which compiler.Compile resolves
// separately via param.Convert.
func (s *paramSink) bind(v interface{}) string {
	name := fmt.Sprintf("p%d", s.next)
	s.next++
	s.values[name] = v
	s.order = append(s.order, name)
	return ":" + name
}

// Expr is an immutable SQL expression fragment. render produces the
// fragment's text, binding any literal values it carries into sink.
type Expr struct {
	render func(sink *paramSink) string
}

func (e Expr) renderWith(sink *paramSink) string {
	if e.render == nil {
		return ""
	}
	return e.render(sink)
}

// Col references a bare column (or qualified table.column) name
// verbatim; callers are responsible for any quoting their dialect needs.
func Col(name string) Expr {
	return Expr{render: func(*paramSink) string { return name }}
}

// Raw splices sql in verbatim, useful for dialect-specific expressions
// the algebra below has no combinator for. args, if any, are appended as
// bound placeholders in order and sql should reference them positionally
// via "?" tokens, which are rewritten in place to the sink's named form.
func Raw(sql string, args ...interface{}) Expr {
	return Expr{render: func(sink *paramSink) string {
		if len(args) == 0 {
			return sql
		}
		out := make([]byte, 0, len(sql))
		argIdx := 0
		for i := 0; i < len(sql); i++ {
			if sql[i] == '?' && argIdx < len(args) {
				out = append(out, sink.bind(args[argIdx])...)
				argIdx++
				continue
			}
			out = append(out, sql[i])
		}
		return string(out)
	}}
}

// Val binds a literal Go value as a fresh placeholder.
func Val(v interface{}) Expr {
	return Expr{render: func(sink *paramSink) string { return sink.bind(v) }}
}

func binary(op string, lhs, rhs Expr) Expr {
	return Expr{render: func(sink *paramSink) string {
		return "(" + lhs.renderWith(sink) + " " + op + " " + rhs.renderWith(sink) + ")"
	}}
}

func Eq(lhs, rhs Expr) Expr  { return binary("=", lhs, rhs) }
func Ne(lhs, rhs Expr) Expr  { return binary("<>", lhs, rhs) }
func Gt(lhs, rhs Expr) Expr  { return binary(">", lhs, rhs) }
func Gte(lhs, rhs Expr) Expr { return binary(">=", lhs, rhs) }
func Lt(lhs, rhs Expr) Expr  { return binary("<", lhs, rhs) }
func Lte(lhs, rhs Expr) Expr { return binary("<=", lhs, rhs) }
func Like(lhs, rhs Expr) Expr {
	return binary("LIKE", lhs, rhs)
}

// IsNull renders "<lhs> IS NULL".
func IsNull(lhs Expr) Expr {
	return Expr{render: func(sink *paramSink) string { return lhs.renderWith(sink) + " IS NULL" }}
}

// IsNotNull renders "<lhs> IS NOT NULL".
func IsNotNull(lhs Expr) Expr {
	return Expr{render: func(sink *paramSink) string { return lhs.renderWith(sink) + " IS NOT NULL" }}
}

// In renders "<lhs> IN (<values...>)", one bound placeholder per value.
// A values slice bound as a single Val (rather than expanded here) is
// the path the compiler's list-expansion step (spec §4.4 step 8) exists
// to handle for adapters that lack native array support; In eagerly
// expands because the builder already knows the concrete element count.
func In(lhs Expr, values ...interface{}) Expr {
	return Expr{render: func(sink *paramSink) string {
		if len(values) == 0 {
			return "FALSE"
		}
		out := lhs.renderWith(sink) + " IN ("
		for i, v := range values {
			if i > 0 {
				out += ", "
			}
			out += sink.bind(v)
		}
		return out + ")"
	}}
}

func logical(op string, exprs []Expr) Expr {
	return Expr{render: func(sink *paramSink) string {
		if len(exprs) == 0 {
			return ""
		}
		out := "(" + exprs[0].renderWith(sink)
		for _, e := range exprs[1:] {
			out += " " + op + " " + e.renderWith(sink)
		}
		return out + ")"
	}}
}

func And(exprs ...Expr) Expr { return logical("AND", exprs) }
func Or(exprs ...Expr) Expr  { return logical("OR", exprs) }

func Not(e Expr) Expr {
	return Expr{render: func(sink *paramSink) string { return "NOT (" + e.renderWith(sink) + ")" }}
}
