package processor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// LiteralParameterizer walks the raw SQL once and replaces string/numeric
// literals that sit in comparison position with fresh named placeholders,
// appending the literal's Go value to ctx.HoistedValues in the order
// discovered (spec §4.3.1 item 2). It skips: digits that are part of an
// identifier, literals right after a Postgres `::` cast operator,
// LIMIT/OFFSET literals, literals inside a
// syntactic IN (...) list (the Open Question in spec.md §9 resolved in
// favor of *not* hoisting there, to avoid interacting badly with
// list-expansion), literals inside quoted identifiers (never reached —
// those are skipped as quoting, not scanned as SQL tokens), and any
// literal matching a configured preserve_patterns regex. It never runs if
// the input already contained placeholders (ctx.InputHadPlaceholders),
// preventing double-parameterization.
type LiteralParameterizer struct{}

func (p *LiteralParameterizer) Name() string { return "literal_parameterizer" }

func (p *LiteralParameterizer) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableTransformations() &&
		ctx.Config.ParameterizeLiterals() &&
		!ctx.IsScript &&
		!ctx.InputHadPlaceholders
}

func (p *LiteralParameterizer) Process(ctx *sqlctx.Context) error {
	preserve := compilePatterns(ctx.Config.PreservePatterns())

	out, values := hoistLiterals(ctx.RawSQL, preserve)
	ctx.RawSQL = out
	ctx.HoistedValues = append(ctx.HoistedValues, values...)
	return nil
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

var comparisonOps = []string{"<>", "!=", ">=", "<=", "=", "<", ">"}

// hoistLiterals performs the single scanning pass described above,
// returning the rewritten SQL and the ordered list of hoisted Go values.
func hoistLiterals(sql string, preserve []*regexp.Regexp) (string, []interface{}) {
	var b strings.Builder
	var values []interface{}
	n := len(sql)
	i := 0
	inDepth := 0 // >0 while inside a syntactic IN ( ... ) list
	litIndex := 0

	for i < n {
		c := sql[i]

		switch {
		case c == '\'':
			j := rawSkipQuoted(sql, i, '\'')
			tok := sql[i:j]
			if inDepth == 0 && !precededByIdentifierOrCast(sql, i) && isComparisonAdjacent(sql, i, j) && !matchesAny(preserve, tok) {
				val := strings.ReplaceAll(tok[1:len(tok)-1], "''", "'")
				b.WriteString(fmt.Sprintf(":lit_%d", litIndex))
				values = append(values, val)
				litIndex++
			} else {
				b.WriteString(tok)
			}
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
			b.WriteString(sql[i:j])
			i = j
			continue

		case c == '/' && i+1 < n && sql[i+1] == '*':
			j := rawSkipBlockComment(sql, i)
			b.WriteString(sql[i:j])
			i = j
			continue

		case unicode.IsDigit(rune(c)) && !precededByIdentChar(sql, i):
			j := scanNumber(sql, i)
			tok := sql[i:j]
			if inDepth == 0 && !inLimitOffsetContext(sql, i) && !precededByIdentifierOrCast(sql, i) &&
				isComparisonAdjacent(sql, i, j) && !matchesAny(preserve, tok) {
				b.WriteString(fmt.Sprintf(":lit_%d", litIndex))
				values = append(values, numericLiteralValue(tok))
				litIndex++
			} else {
				b.WriteString(tok)
			}
			i = j
			continue
		}

		if isWordStart(c) {
			j := scanWord(sql, i)
			word := sql[i:j]
			b.WriteString(word)
			switch strings.ToUpper(word) {
			case "IN":
				if k := skipSpaces(sql, j); k < n && sql[k] == '(' {
					inDepth++
				}
			}
			i = j
			continue
		}

		if c == '(' {
			b.WriteByte(c)
			i++
			continue
		}
		if c == ')' {
			if inDepth > 0 {
				inDepth--
			}
			b.WriteByte(c)
			i++
			continue
		}

		b.WriteByte(c)
		i++
	}

	return b.String(), values
}

func matchesAny(patterns []*regexp.Regexp, tok string) bool {
	for _, re := range patterns {
		if re.MatchString(tok) {
			return true
		}
	}
	return false
}

func rawSkipQuoted(sql string, start int, quote byte) int {
	n := len(sql)
	i := start + 1
	for i < n {
		if sql[i] == quote {
			if i+1 < n && sql[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return n
}

func rawSkipBracket(sql string, start int) int {
	n := len(sql)
	i := start + 1
	for i < n {
		if sql[i] == ']' {
			return i + 1
		}
		i++
	}
	return n
}

func rawSkipLineComment(sql string, start int) int {
	n := len(sql)
	i := start
	for i < n && sql[i] != '\n' {
		i++
	}
	return i
}

func rawSkipBlockComment(sql string, start int) int {
	n := len(sql)
	i := start + 2
	for i < n-1 {
		if sql[i] == '*' && sql[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return n
}

func scanNumber(sql string, start int) int {
	n := len(sql)
	i := start
	for i < n && (unicode.IsDigit(rune(sql[i])) || sql[i] == '.') {
		i++
	}
	return i
}

func scanWord(sql string, start int) int {
	n := len(sql)
	i := start
	for i < n && isWordChar(sql[i]) {
		i++
	}
	return i
}

func isWordStart(c byte) bool { return c == '_' || unicode.IsLetter(rune(c)) }
func isWordChar(c byte) bool  { return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) }

func precededByIdentChar(sql string, i int) bool {
	if i == 0 {
		return false
	}
	return isWordChar(sql[i-1])
}

func skipSpaces(sql string, i int) int {
	n := len(sql)
	for i < n && (sql[i] == ' ' || sql[i] == '\t' || sql[i] == '\n' || sql[i] == '\r') {
		i++
	}
	return i
}

func skipSpacesBack(sql string, i int) int {
	for i > 0 && (sql[i-1] == ' ' || sql[i-1] == '\t' || sql[i-1] == '\n' || sql[i-1] == '\r') {
		i--
	}
	return i
}

// isComparisonAdjacent reports whether the token spanning [start,end)
// sits immediately (modulo whitespace) before or after one of the
// recognized comparison operators.
func isComparisonAdjacent(sql string, start, end int) bool {
	before := skipSpacesBack(sql, start)
	for _, op := range comparisonOps {
		if strings.HasSuffix(sql[:before], op) {
			return true
		}
	}
	after := skipSpaces(sql, end)
	for _, op := range comparisonOps {
		if strings.HasPrefix(sql[after:], op) {
			return true
		}
	}
	return false
}

// precededByIdentifierOrCast reports whether the literal at start
// follows the Postgres `::` cast operator (skipping spaces), in which
// case it is not a bare comparison literal. CAST(... AS ...) is not
// recognized here.
func precededByIdentifierOrCast(sql string, start int) bool {
	before := skipSpacesBack(sql, start)
	return strings.HasSuffix(before2(sql, before), "::")
}

func before2(sql string, i int) string {
	if i >= 2 {
		return sql[i-2 : i]
	}
	return sql[:i]
}

// inLimitOffsetContext reports whether the nearest preceding keyword
// (skipping whitespace) is LIMIT or OFFSET.
func inLimitOffsetContext(sql string, start int) bool {
	before := strings.TrimRight(sql[:start], " \t\n\r")
	upper := strings.ToUpper(before)
	return strings.HasSuffix(upper, "LIMIT") || strings.HasSuffix(upper, "OFFSET")
}

func numericLiteralValue(tok string) interface{} {
	if strings.Contains(tok, ".") {
		var f float64
		fmt.Sscanf(tok, "%g", &f)
		return f
	}
	var n int64
	fmt.Sscanf(tok, "%d", &n)
	return n
}
