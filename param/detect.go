package param

import (
	"strings"
	"unicode"
)

// Detect performs a forward scan of sql recognizing every placeholder
// style while honoring single-quoted strings, double-quoted identifiers,
// bracket identifiers, line/block comments, dollar-quoted bodies, and
// escaped quote characters. It never matches a placeholder token that
// lies inside one of those contexts. dialect is accepted for symmetry
// with the rest of the package and does not change the scan: square
// brackets (a SQL Server identifier convention carried over from the
// reference T-SQL parser's token rules) are skipped for every dialect.
func Detect(sql string, dialect string) Infos {
	var infos Infos
	ordinal := 0
	n := len(sql)
	i := 0

	for i < n {
		c := sql[i]

		switch {
		case c == '\'':
			i = skipQuoted(sql, i, '\'')
			continue
		case c == '"':
			i = skipQuoted(sql, i, '"')
			continue
		case c == '[':
			i = skipBracketIdentifier(sql, i)
			continue
		case c == '`':
			i = skipQuoted(sql, i, '`')
			continue
		case c == '-' && i+1 < n && sql[i+1] == '-':
			i = skipLineComment(sql, i)
			continue
		case c == '/' && i+1 < n && sql[i+1] == '*':
			i = skipBlockComment(sql, i)
			continue
		case c == '$' && isDollarQuoteStart(sql, i):
			var tag string
			i, tag = skipDollarQuoted(sql, i)
			_ = tag
			continue
		}

		if info, next, ok := matchPlaceholder(sql, i, ordinal); ok {
			infos = append(infos, info)
			ordinal++
			i = next
			continue
		}

		i++
	}

	return infos
}

func skipQuoted(sql string, start int, quote byte) int {
	n := len(sql)
	i := start + 1
	for i < n {
		if sql[i] == '\\' && quote != '\'' {
			// backslash escapes are not standard SQL string escapes outside
			// MySQL-style dialects, but consuming the next byte is safe
			// since we never interpret content inside quotes.
			i += 2
			continue
		}
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

func skipBracketIdentifier(sql string, start int) int {
	n := len(sql)
	i := start + 1
	for i < n {
		if sql[i] == ']' {
			if i+1 < n && sql[i+1] == ']' {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return n
}

func skipLineComment(sql string, start int) int {
	n := len(sql)
	i := start
	for i < n && sql[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(sql string, start int) int {
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

// isDollarQuoteStart reports whether sql[i:] begins a PostgreSQL-style
// dollar-quoted body: $tag$ ... $tag$, including the empty tag $$.
func isDollarQuoteStart(sql string, i int) bool {
	n := len(sql)
	if i >= n || sql[i] != '$' {
		return false
	}
	j := i + 1
	for j < n && isTagChar(sql[j]) {
		j++
	}
	return j < n && sql[j] == '$'
}

func isTagChar(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func skipDollarQuoted(sql string, start int) (int, string) {
	n := len(sql)
	j := start + 1
	for j < n && isTagChar(sql[j]) {
		j++
	}
	tag := sql[start : j+1] // includes both $ delimiters, e.g. "$tag$"
	bodyStart := j + 1
	idx := strings.Index(sql[bodyStart:], tag)
	if idx < 0 {
		return n, tag
	}
	return bodyStart + idx + len(tag), tag
}

// matchPlaceholder attempts to match any recognized placeholder style at
// position i. Returns the Info (with ordinal assigned by the caller's
// running counter), the index just past the matched token, and whether a
// match occurred.
func matchPlaceholder(sql string, i int, ordinal int) (Info, int, bool) {
	n := len(sql)
	c := sql[i]

	switch c {
	case '?':
		return Info{Ordinal: ordinal, Style: Qmark, Source: SourceUser, Span: Span{i, i + 1}}, i + 1, true

	case '$':
		// $1, $2, ... (NumericDollar) vs $name (NamedDollar) vs a bare '$'
		j := i + 1
		if j < n && isDigit(sql[j]) {
			k := j
			for k < n && isDigit(sql[k]) {
				k++
			}
			return Info{Ordinal: ordinal, Style: NumericDollar, Source: SourceUser, Span: Span{i, k}, key: sql[j:k]}, k, true
		}
		if j < n && isIdentStart(sql[j]) {
			k := j
			for k < n && isIdentCont(sql[k]) {
				k++
			}
			name := sql[j:k]
			return Info{Ordinal: ordinal, Style: NamedDollar, Name: name, Source: SourceUser, Span: Span{i, k}}, k, true
		}
		return Info{}, i, false

	case ':':
		// :1, :2, ... (NumericColon) vs :name (NamedColon); avoid matching
		// a bare ':' (e.g. PL/pgSQL assignment) or "::" cast operator.
		j := i + 1
		if j < n && sql[j] == ':' {
			return Info{}, i, false
		}
		if j < n && isDigit(sql[j]) {
			k := j
			for k < n && isDigit(sql[k]) {
				k++
			}
			return Info{Ordinal: ordinal, Style: NumericColon, Source: SourceUser, Span: Span{i, k}, key: sql[j:k]}, k, true
		}
		if j < n && isIdentStart(sql[j]) {
			k := j
			for k < n && isIdentCont(sql[k]) {
				k++
			}
			name := sql[j:k]
			return Info{Ordinal: ordinal, Style: NamedColon, Name: name, Source: SourceUser, Span: Span{i, k}}, k, true
		}
		return Info{}, i, false

	case '@':
		j := i + 1
		if j < n && isIdentStart(sql[j]) {
			k := j
			for k < n && isIdentCont(sql[k]) {
				k++
			}
			name := sql[j:k]
			return Info{Ordinal: ordinal, Style: NamedAt, Name: name, Source: SourceUser, Span: Span{i, k}}, k, true
		}
		return Info{}, i, false

	case '%':
		// %s (PyformatPositional) vs %(name)s (PyformatNamed)
		if i+1 < n && sql[i+1] == 's' {
			return Info{Ordinal: ordinal, Style: PyformatPositional, Source: SourceUser, Span: Span{i, i + 2}}, i + 2, true
		}
		if i+1 < n && sql[i+1] == '(' {
			close := strings.Index(sql[i+2:], ")s")
			if close >= 0 {
				name := sql[i+2 : i+2+close]
				end := i + 2 + close + 2
				if name != "" {
					return Info{Ordinal: ordinal, Style: PyformatNamed, Name: name, Source: SourceUser, Span: Span{i, end}}, end, true
				}
			}
		}
		return Info{}, i, false
	}

	return Info{}, i, false
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || unicode.IsLetter(rune(c)) }
func isIdentCont(c byte) bool  { return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) }
