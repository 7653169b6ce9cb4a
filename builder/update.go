package builder

import (
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlast"
)

// Update is an immutable UPDATE statement builder.
type Update struct {
	table string
	sets  []string
	setOn map[string]interface{}
	where *Expr
}

func NewUpdate(table string) Update {
	return Update{table: table, setOn: map[string]interface{}{}}
}

func (u Update) clone() Update {
	cp := u
	cp.sets = append([]string(nil), u.sets...)
	cp.setOn = make(map[string]interface{}, len(u.setOn))
	for k, v := range u.setOn {
		cp.setOn[k] = v
	}
	return cp
}

// Set queues column = value; later calls for the same column replace
// the earlier one.
func (u Update) Set(column string, value interface{}) Update {
	cp := u.clone()
	if _, exists := cp.setOn[column]; !exists {
		cp.sets = append(cp.sets, column)
	}
	cp.setOn[column] = value
	return cp
}

func (u Update) Where(e Expr) Update {
	cp := u.clone()
	cp.where = &e
	return cp
}

func (u Update) render(sink *paramSink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET ", u.table)
	for i, col := range u.sets {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = %s", col, sink.bind(u.setOn[col]))
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(u.where.renderWith(sink))
	}
	return b.String()
}

func (u Update) Build() (string, map[string]interface{}) {
	sink := newParamSink()
	sql := u.render(sink)
	return sql, sink.values
}

func (u Update) node() *stmtNode {
	sql, _ := u.Build()
	return &stmtNode{kind: sqlast.KindUpdate, sql: sql, supports: whereOnlySupports()}
}
