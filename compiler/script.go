package compiler

import (
	"strings"

	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/sqlast"
)

// renderScript renders each of script's sub-statements independently
// (spec §4.4 step 6 "Script path": placeholder conversion is applied
// per sub-statement, not over the joined text), then rejoins them with
// ";\n" and a trailing semicolon (spec §4.4 step 6, seed scenario E4).
// Running param.Convert against the full joined script instead would let
// a numeric/positional target style's slot numbering leak across
// statement boundaries; re-detecting and converting per sub-statement
// keeps each one independently numbered from 1, exactly as if it had
// been compiled alone.
func renderScript(script *sqlast.Script, dialect string, target param.Style) (string, param.Infos) {
	stmts := script.Statements()
	rendered := make([]string, 0, len(stmts))
	var allInfos param.Infos

	offset := 0
	for i, stmt := range stmts {
		sql := stmt.Render(dialect)
		detected := param.Detect(sql, dialect)

		var out string
		var infos param.Infos
		if target == param.Static {
			out = sql
			infos = detected
		} else {
			out = param.Convert(sql, detected, target)
			infos = param.RetargetInfos(detected, target)
		}

		for j := range infos {
			infos[j].Span.Start += offset
			infos[j].Span.End += offset
		}
		allInfos = append(allInfos, infos...)

		rendered = append(rendered, strings.TrimRight(strings.TrimSpace(out), ";"))
		offset += len(rendered[i]) + len(";\n")
	}

	return strings.Join(rendered, ";\n") + ";", allInfos
}
