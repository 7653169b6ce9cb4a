package builder

import (
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlast"
)

// Insert is an immutable INSERT statement builder. Each row is a
// map[string]interface{} keyed by column name; all rows must share the
// same column set, enforced at Build time by rendering against the
// first row's key order.
type Insert struct {
	into    string
	columns []string
	rows    []map[string]interface{}
}

func NewInsert(table string) Insert {
	return Insert{into: table}
}

func (i Insert) clone() Insert {
	cp := i
	cp.columns = append([]string(nil), i.columns...)
	cp.rows = append([]map[string]interface{}(nil), i.rows...)
	return cp
}

// Columns fixes the column order explicitly; without it, Build infers
// the order from the first row's keys the first time Values is called.
func (i Insert) Columns(cols ...string) Insert {
	cp := i.clone()
	cp.columns = append([]string(nil), cols...)
	return cp
}

func (i Insert) Values(row map[string]interface{}) Insert {
	cp := i.clone()
	if len(cp.columns) == 0 {
		cp.columns = sortedKeys(row)
	}
	cp.rows = append(cp.rows, row)
	return cp
}

func sortedKeys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (i Insert) render(sink *paramSink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", i.into, strings.Join(i.columns, ", "))
	for r, row := range i.rows {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c, col := range i.columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(sink.bind(row[col]))
		}
		b.WriteString(")")
	}
	return b.String()
}

func (i Insert) Build() (string, map[string]interface{}) {
	sink := newParamSink()
	sql := i.render(sink)
	return sql, sink.values
}

func (i Insert) node() *stmtNode {
	sql, _ := i.Build()
	return &stmtNode{kind: sqlast.KindInsert, sql: sql, supports: map[sqlast.Op]bool{}}
}
