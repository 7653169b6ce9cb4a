package builder

import (
	"fmt"
	"regexp"
	"strings"
)

// WhereFilter appends an additional AND-ed predicate to a statement's
// existing WHERE clause (inserting one if none exists), the textual
// equivalent of the builder's native Select.Where for a statement that
// did not originate from this package (spec §3.7). It operates on
// already-rendered SQL, so any bound values the predicate carries must
// already have been substituted by the caller (e.g. via Static
// rendering) or supplied as literal Go values through Raw/Val before the
// statement was first compiled — a filter cannot introduce new bound
// parameters into a statement whose parameter set was already reshaped.
type WhereFilter struct {
	Predicate string
}

var whereRe = regexp.MustCompile(`(?i)\bWHERE\b`)

func (f WhereFilter) Apply(sql string) (string, error) {
	loc := whereRe.FindStringIndex(sql)
	if loc == nil {
		insertAt := insertionPoint(sql)
		rest := sql[insertAt:]
		if rest != "" && rest[0] != ' ' && rest[0] != ';' {
			rest = " " + rest
		}
		return sql[:insertAt] + " WHERE " + f.Predicate + rest, nil
	}
	insertAt := loc[1]
	return sql[:insertAt] + " (" + f.Predicate + ") AND" + sql[insertAt:], nil
}

// OrderByFilter appends (or replaces, if Replace is set) an ORDER BY
// clause.
type OrderByFilter struct {
	Columns string // e.g. "created_at DESC, id ASC"
	Replace bool
}

var orderByRe = regexp.MustCompile(`(?i)\bORDER\s+BY\b[^;]*`)

func (f OrderByFilter) Apply(sql string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(sql), ";")
	if f.Replace {
		if loc := orderByRe.FindStringIndex(trimmed); loc != nil {
			return trimmed[:loc[0]] + "ORDER BY " + f.Columns, nil
		}
	}
	return trimmed + " ORDER BY " + f.Columns, nil
}

// LimitOffsetFilter appends LIMIT/OFFSET clauses to a statement (spec
// §3.7). Offset of 0 is treated as "no offset" and omitted.
type LimitOffsetFilter struct {
	Limit  int
	Offset int
}

func (f LimitOffsetFilter) Apply(sql string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(sql), ";")
	out := fmt.Sprintf("%s LIMIT %d", trimmed, f.Limit)
	if f.Offset > 0 {
		out += fmt.Sprintf(" OFFSET %d", f.Offset)
	}
	return out, nil
}

// CTEFilter prepends a named WITH clause ahead of sql.
type CTEFilter struct {
	Name  string
	Query string
}

func (f CTEFilter) Apply(sql string) (string, error) {
	return fmt.Sprintf("WITH %s AS (%s) %s", f.Name, f.Query, sql), nil
}

// insertionPoint finds where to splice a WHERE clause into a statement
// that has none: just before a trailing GROUP BY/ORDER BY/LIMIT/OFFSET/
// HAVING clause, or at the end if none of those are present.
func insertionPoint(sql string) int {
	re := regexp.MustCompile(`(?i)\b(GROUP\s+BY|ORDER\s+BY|LIMIT|OFFSET|HAVING)\b`)
	loc := re.FindStringIndex(sql)
	if loc == nil {
		return len(strings.TrimRight(sql, "; \t\n"))
	}
	return loc[0]
}
