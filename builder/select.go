package builder

import (
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlast"
)

type orderTerm struct {
	expr string
	desc bool
}

type cte struct {
	name  string
	query Select
}

// Select is an immutable SELECT statement builder.
type Select struct {
	columns []string
	from    string
	alias   string
	joins   []string
	where   *Expr
	groupBy []string
	having  *Expr
	orderBy []orderTerm
	limit   *int
	offset  *int
	ctes    []cte
}

// NewSelect starts a SELECT over table, selecting every column ("*")
// until Columns narrows it.
func NewSelect(table string) Select {
	return Select{columns: []string{"*"}, from: table}
}

func (s Select) clone() Select {
	cp := s
	cp.columns = append([]string(nil), s.columns...)
	cp.joins = append([]string(nil), s.joins...)
	cp.groupBy = append([]string(nil), s.groupBy...)
	cp.orderBy = append([]orderTerm(nil), s.orderBy...)
	cp.ctes = append([]cte(nil), s.ctes...)
	return cp
}

func (s Select) Columns(cols ...string) Select {
	cp := s.clone()
	cp.columns = append([]string(nil), cols...)
	return cp
}

func (s Select) As(alias string) Select {
	cp := s.clone()
	cp.alias = alias
	return cp
}

// Join appends a raw join clause, e.g. "JOIN orders o ON o.user_id = u.id".
func (s Select) Join(clause string) Select {
	cp := s.clone()
	cp.joins = append(cp.joins, clause)
	return cp
}

func (s Select) Where(e Expr) Select {
	cp := s.clone()
	cp.where = &e
	return cp
}

func (s Select) GroupBy(cols ...string) Select {
	cp := s.clone()
	cp.groupBy = append([]string(nil), cols...)
	return cp
}

func (s Select) Having(e Expr) Select {
	cp := s.clone()
	cp.having = &e
	return cp
}

func (s Select) OrderBy(col string, desc bool) Select {
	cp := s.clone()
	cp.orderBy = append(cp.orderBy, orderTerm{expr: col, desc: desc})
	return cp
}

func (s Select) Limit(n int) Select {
	cp := s.clone()
	cp.limit = &n
	return cp
}

func (s Select) Offset(n int) Select {
	cp := s.clone()
	cp.offset = &n
	return cp
}

// With prepends a named CTE, rendered as "WITH name AS (query)" ahead of
// this SELECT (spec §3.7's CTEFilter covers the same concern for
// already-built statements; this is the builder-native equivalent for a
// statement assembled from scratch).
func (s Select) With(name string, query Select) Select {
	cp := s.clone()
	cp.ctes = append(cp.ctes, cte{name: name, query: query})
	return cp
}

func (s Select) render(sink *paramSink) string {
	var b strings.Builder
	if len(s.ctes) > 0 {
		b.WriteString("WITH ")
		for i, c := range s.ctes {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s AS (%s)", c.name, c.query.render(sink))
		}
		b.WriteString(" ")
	}
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.from)
	if s.alias != "" {
		b.WriteString(" AS ")
		b.WriteString(s.alias)
	}
	for _, j := range s.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.where.renderWith(sink))
	}
	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.groupBy, ", "))
	}
	if s.having != nil {
		b.WriteString(" HAVING ")
		b.WriteString(s.having.renderWith(sink))
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, t := range s.orderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.expr)
			if t.desc {
				b.WriteString(" DESC")
			}
		}
	}
	if s.limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *s.limit)
	}
	if s.offset != nil {
		fmt.Fprintf(&b, " OFFSET %d", *s.offset)
	}
	return b.String()
}

// Build renders the statement to SQL text and its bound parameters.
func (s Select) Build() (string, map[string]interface{}) {
	sink := newParamSink()
	sql := s.render(sink)
	return sql, sink.values
}

func (s Select) node() *stmtNode {
	sql, _ := s.Build()
	return &stmtNode{kind: sqlast.KindSelect, sql: sql, supports: selectSupports()}
}
