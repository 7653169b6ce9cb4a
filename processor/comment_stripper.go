package processor

import (
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// CommentStripper removes line and block comments from the SQL text,
// with one deliberate exception: a block comment whose body begins with
// "+" is an optimizer hint (e.g. Oracle/MySQL /*+ INDEX(...) */ or the
// generic preserve-hint convention spec §4.3.1 item 3 calls out) and is
// left untouched. Comments inside quoted strings or identifiers are not
// comments at all and are never reached here since those regions are
// skipped whole.
type CommentStripper struct{}

func (c *CommentStripper) Name() string { return "comment_stripper" }

func (c *CommentStripper) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableTransformations()
}

func (c *CommentStripper) Process(ctx *sqlctx.Context) error {
	ctx.RawSQL = stripComments(ctx.RawSQL)
	return nil
}

func stripComments(sql string) string {
	var b strings.Builder
	n := len(sql)
	i := 0
	for i < n {
		c := sql[i]
		switch {
		case c == '\'':
			j := rawSkipQuoted(sql, i, '\'')
			b.WriteString(sql[i:j])
			i = j
			continue
		case c == '"':
			j := rawSkipQuoted(sql, i, '"')
			b.WriteString(sql[i:j])
			i = j
			continue
		case c == '[':
			j := rawSkipBracket(sql, i)
			b.WriteString(sql[i:j])
			i = j
			continue
		case c == '-' && i+1 < n && sql[i+1] == '-':
			j := rawSkipLineComment(sql, i)
			i = j
			continue
		case c == '/' && i+1 < n && sql[i+1] == '*':
			j := rawSkipBlockComment(sql, i)
			body := sql[i:j]
			if strings.HasPrefix(body, "/*+") {
				b.WriteString(body)
			}
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}
