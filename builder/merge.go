package builder

import (
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlast"
)

// Merge is an immutable MERGE statement builder covering the common
// upsert shape: MERGE INTO target USING source ON <condition>
// WHEN MATCHED THEN UPDATE SET ... WHEN NOT MATCHED THEN INSERT (...)
// VALUES (...).
type Merge struct {
	target       string
	using        string
	on           *Expr
	matchedSet   []string
	matchedOn    map[string]interface{}
	notMatchedCols []string
	notMatchedRow  map[string]interface{}
}

func NewMerge(target, using string) Merge {
	return Merge{target: target, using: using, matchedOn: map[string]interface{}{}}
}

func (m Merge) clone() Merge {
	cp := m
	cp.matchedSet = append([]string(nil), m.matchedSet...)
	cp.matchedOn = make(map[string]interface{}, len(m.matchedOn))
	for k, v := range m.matchedOn {
		cp.matchedOn[k] = v
	}
	cp.notMatchedCols = append([]string(nil), m.notMatchedCols...)
	return cp
}

func (m Merge) On(e Expr) Merge {
	cp := m.clone()
	cp.on = &e
	return cp
}

func (m Merge) WhenMatchedSet(column string, value interface{}) Merge {
	cp := m.clone()
	if _, exists := cp.matchedOn[column]; !exists {
		cp.matchedSet = append(cp.matchedSet, column)
	}
	cp.matchedOn[column] = value
	return cp
}

func (m Merge) WhenNotMatchedInsert(row map[string]interface{}) Merge {
	cp := m.clone()
	cp.notMatchedCols = sortedKeys(row)
	cp.notMatchedRow = row
	return cp
}

func (m Merge) render(sink *paramSink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MERGE INTO %s USING %s ON ", m.target, m.using)
	if m.on != nil {
		b.WriteString(m.on.renderWith(sink))
	}
	if len(m.matchedSet) > 0 {
		b.WriteString(" WHEN MATCHED THEN UPDATE SET ")
		for i, col := range m.matchedSet {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s = %s", col, sink.bind(m.matchedOn[col]))
		}
	}
	if len(m.notMatchedCols) > 0 {
		fmt.Fprintf(&b, " WHEN NOT MATCHED THEN INSERT (%s) VALUES (", strings.Join(m.notMatchedCols, ", "))
		for i, col := range m.notMatchedCols {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(sink.bind(m.notMatchedRow[col]))
		}
		b.WriteString(")")
	}
	return b.String()
}

func (m Merge) Build() (string, map[string]interface{}) {
	sink := newParamSink()
	sql := m.render(sink)
	return sql, sink.values
}

func (m Merge) node() *stmtNode {
	sql, _ := m.Build()
	return &stmtNode{kind: sqlast.KindMerge, sql: sql, supports: map[sqlast.Op]bool{}}
}
