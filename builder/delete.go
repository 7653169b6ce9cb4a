package builder

import (
	"github.com/sqlspec-go/sqlspec/sqlast"
)

// Delete is an immutable DELETE statement builder.
type Delete struct {
	from  string
	where *Expr
}

func NewDelete(table string) Delete {
	return Delete{from: table}
}

func (d Delete) Where(e Expr) Delete {
	cp := d
	cp.where = &e
	return cp
}

func (d Delete) render(sink *paramSink) string {
	sql := "DELETE FROM " + d.from
	if d.where != nil {
		sql += " WHERE " + d.where.renderWith(sink)
	}
	return sql
}

func (d Delete) Build() (string, map[string]interface{}) {
	sink := newParamSink()
	sql := d.render(sink)
	return sql, sink.values
}

func (d Delete) node() *stmtNode {
	sql, _ := d.Build()
	return &stmtNode{kind: sqlast.KindDelete, sql: sql, supports: whereOnlySupports()}
}
