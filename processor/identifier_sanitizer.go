package processor

import (
	"strings"
	"unicode"

	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// IdentifierSanitizer rewrites obviously malformed quoted identifiers
// into a safe form while preserving the author's original intent: stray
// control characters are stripped, and existing doubled-quote escapes are
// kept as they are; nothing else inside the identifier is rewritten. If an identifier
// cannot be made safe (e.g. it is missing its closing quote entirely),
// the sanitizer records a finding and leaves the source unchanged rather
// than guessing (spec §4.3.1 item 1).
type IdentifierSanitizer struct{}

func (s *IdentifierSanitizer) Name() string { return "identifier_sanitizer" }

func (s *IdentifierSanitizer) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableParsing() && ctx.Config.EnableTransformations()
}

func (s *IdentifierSanitizer) Process(ctx *sqlctx.Context) error {
	sql := ctx.RawSQL
	out, ok := sanitizeIdentifiers(sql)
	if !ok {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "unterminated_quoted_identifier",
			Severity: sqlctx.SeverityMedium,
			Message:  "a quoted identifier is missing its closing quote; left unchanged",
		})
		return nil
	}
	ctx.RawSQL = out
	return nil
}

// sanitizeIdentifiers scans sql for double-quoted and bracketed
// identifiers and normalizes stray control characters inside them. It
// returns ok=false if any quoted region never terminates, in which case
// the caller should leave the SQL untouched and surface a finding.
func sanitizeIdentifiers(sql string) (string, bool) {
	var b strings.Builder
	n := len(sql)
	i := 0
	for i < n {
		c := sql[i]
		switch {
		case c == '\'':
			j := skipToClosing(sql, i, '\'')
			if j < 0 {
				return sql, false
			}
			b.WriteString(sql[i:j])
			i = j
		case c == '"':
			j, content, closed := scanQuotedIdentifier(sql, i, '"')
			if !closed {
				return sql, false
			}
			b.WriteByte('"')
			b.WriteString(cleanIdentifierContent(content))
			b.WriteByte('"')
			i = j
		case c == '[':
			j, content, closed := scanBracketIdentifier(sql, i)
			if !closed {
				return sql, false
			}
			b.WriteByte('[')
			b.WriteString(cleanIdentifierContent(content))
			b.WriteByte(']')
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), true
}

func skipToClosing(sql string, start int, quote byte) int {
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
	return -1
}

// scanQuotedIdentifier returns the index just past the closing quote, the
// raw content between the quotes (with doubled-quote escapes preserved),
// and whether a closing quote was found.
func scanQuotedIdentifier(sql string, start int, quote byte) (int, string, bool) {
	n := len(sql)
	i := start + 1
	contentStart := i
	for i < n {
		if sql[i] == quote {
			if i+1 < n && sql[i+1] == quote {
				i += 2
				continue
			}
			return i + 1, sql[contentStart:i], true
		}
		i++
	}
	return n, sql[contentStart:], false
}

func scanBracketIdentifier(sql string, start int) (int, string, bool) {
	n := len(sql)
	i := start + 1
	contentStart := i
	for i < n {
		if sql[i] == ']' {
			if i+1 < n && sql[i+1] == ']' {
				i += 2
				continue
			}
			return i + 1, sql[contentStart:i], true
		}
		i++
	}
	return n, sql[contentStart:], false
}

// cleanIdentifierContent strips non-printable control characters (other
// than plain spaces) that cannot be part of a legitimate identifier, and
// leaves everything else — including intentional doubled-quote escapes —
// untouched, per "preserving original intent".
func cleanIdentifierContent(content string) string {
	var b strings.Builder
	for _, r := range content {
		if r == ' ' || unicode.IsPrint(r) {
			b.WriteRune(r)
			continue
		}
	}
	return b.String()
}
