package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sqlspec-go/sqlspec/sqlspecerr"
)

// MaxStaticBinaryBytes bounds how large a []byte value Static rendering
// will inline as a hex literal (spec.md §9 open question: "a sensible
// cap... should be defined by the implementer"). A statement that needs
// to bind a larger blob should use a real placeholder style instead of
// Static.
const MaxStaticBinaryBytes = 1 << 16 // 64 KiB

// RenderStatic substitutes every placeholder described by infos with the
// dialect-escaped literal form of its bound value (spec §6.3 "Static"),
// used for DDL/script rendering where the caller has explicitly opted
// into inlining values rather than binding them. values is keyed the
// same way Reshape's Named payload is: by placeholder name, falling back
// to "param_<ordinal>" for positional placeholders.
func RenderStatic(sql string, infos Infos, values map[string]interface{}, dialect string) (string, error) {
	if len(infos) == 0 {
		return sql, nil
	}
	sorted := make(Infos, len(infos))
	copy(sorted, infos)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Span.Start < sorted[j-1].Span.Start; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var b strings.Builder
	cursor := 0
	for _, info := range sorted {
		if info.Span.Start < cursor {
			continue
		}
		name := info.Name
		if name == "" {
			name = fmt.Sprintf("param_%d", info.Ordinal)
		}
		v, ok := values[name]
		if !ok {
			return "", sqlspecerr.New(sqlspecerr.NoSuchParameter,
				"no value supplied for static rendering of parameter %q", name)
		}
		lit, err := literalFor(v, dialect)
		if err != nil {
			return "", err
		}
		b.WriteString(sql[cursor:info.Span.Start])
		b.WriteString(lit)
		cursor = info.Span.End
	}
	b.WriteString(sql[cursor:])
	return b.String(), nil
}

// literalFor renders a single Go value as a dialect-escaped SQL literal.
func literalFor(v interface{}, dialect string) (string, error) {
	switch vv := v.(type) {
	case nil:
		return "NULL", nil
	case Typed:
		return literalFor(vv.Value, dialect)
	case bool:
		if vv {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return quoteStringLiteral(vv), nil
	case []byte:
		if len(vv) > MaxStaticBinaryBytes {
			return "", sqlspecerr.New(sqlspecerr.CompilationInternal,
				"static binary literal of %d bytes exceeds the %d byte cap", len(vv), MaxStaticBinaryBytes)
		}
		return hexLiteral(vv, dialect), nil
	case decimal.Decimal:
		return vv.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", vv), nil
	case float32, float64:
		return strconv.FormatFloat(toFloat64(vv), 'f', -1, 64), nil
	default:
		return quoteStringLiteral(fmt.Sprintf("%v", vv)), nil
	}
}

func toFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

// quoteStringLiteral single-quotes s, doubling any embedded single quotes
// per standard SQL string-literal escaping.
func quoteStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// hexLiteral renders bin using the dialect's hex-literal syntax:
// PostgreSQL gets the '\x<hex>' bytea escape form, every other dialect
// the x'<hex>' form.
func hexLiteral(bin []byte, dialect string) string {
	hex := fmt.Sprintf("%x", bin)
	if dialect == "postgres" {
		return "'\\x" + hex + "'"
	}
	return "x'" + hex + "'"
}
